package script

import (
	"strings"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spacedlist/internal/logging"
)

// allowedModules lists what require may return.
var allowedModules = map[string]bool{
	"string":   true,
	"table":    true,
	"math":     true,
	ModuleName: true,
}

// sandbox restricts a Lua state to safe operations and counts spaced calls.
type sandbox struct {
	L   *lua.LState
	log *logging.Logger

	limit int64
	calls atomic.Int64

	output []string
}

func newSandbox(L *lua.LState, limit int64, log *logging.Logger) *sandbox {
	return &sandbox{L: L, limit: limit, log: log}
}

// openSafeLibraries opens the standard libraries scripts may use. io, os and
// debug stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenPackage(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// install removes file loading globals and replaces print and require.
func (s *sandbox) install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installPrint()
	s.installRequire()
}

func (s *sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		line := strings.Join(parts, "\t")
		s.output = append(s.output, line)
		s.log.Info("%s", line)
		return 0
	}))
}

// installRequire clears the search paths so only preloaded and built-in
// modules resolve, then whitelists those.
func (s *sandbox) installRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	original := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !allowedModules[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(original)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}

// charge counts one spaced call and raises once the limit is passed.
func (s *sandbox) charge(L *lua.LState) {
	if s.limit <= 0 {
		return
	}
	if s.calls.Add(1) > s.limit {
		L.RaiseError("%s (%d)", ErrCallLimit.Error(), s.limit)
	}
}

func (s *sandbox) reset() {
	s.calls.Store(0)
}

func (s *sandbox) exceeded() bool {
	return s.limit > 0 && s.calls.Load() > s.limit
}
