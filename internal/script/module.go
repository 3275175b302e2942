package script

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spacedlist/internal/engine/anchor"
	"github.com/dshills/spacedlist/internal/engine/spaced"
	"github.com/dshills/spacedlist/internal/logging"
)

// ModuleName is the global and require name of the module.
const ModuleName = "spaced"

// Userdata metatable names.
const (
	listType    = "spaced.list"
	rangesType  = "spaced.ranges"
	anchorsType = "spaced.anchors"
)

// Kind identifies the type of an exported object.
type Kind uint8

const (
	KindList Kind = iota
	KindRanges
	KindAnchors
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindRanges:
		return "ranges"
	case KindAnchors:
		return "anchors"
	}
	return "unknown"
}

// Export is an object a script handed back with spaced.export. Exactly one
// of List, Ranges and Anchors is set, matching Kind.
type Export struct {
	Name    string
	Kind    Kind
	List    *spaced.List[lua.LValue]
	Ranges  *spaced.RangeList[lua.LValue]
	Anchors *anchor.Set
}

// Encode returns the snapshot document of the exported object.
func (e Export) Encode() ([]byte, error) {
	switch e.Kind {
	case KindList:
		return spaced.EncodeList(e.List, toJSON)
	case KindRanges:
		return spaced.EncodeRanges(e.Ranges, toJSON)
	case KindAnchors:
		return spaced.EncodeRanges(e.Anchors.Ranges(), func(name string) any { return name })
	}
	return nil, errors.AssertionFailedf("unknown export kind %d", e.Kind)
}

// module implements the spaced Lua module.
type module struct {
	sandbox *sandbox
	bias    anchor.Bias
	log     *logging.Logger

	exports map[string]Export
}

func newModule(sb *sandbox, bias anchor.Bias, log *logging.Logger) *module {
	return &module{
		sandbox: sb,
		bias:    bias,
		log:     log,
		exports: make(map[string]Export),
	}
}

// register installs the userdata types, the global table and the preload
// entry for require.
func (m *module) register(L *lua.LState) {
	m.registerType(L, listType, m.listMethods())
	m.registerType(L, rangesType, m.rangesMethods())
	m.registerType(L, anchorsType, m.anchorsMethods())

	mod := L.NewTable()
	for name, fn := range map[string]lua.LGFunction{
		"list":          m.newList,
		"ranges":        m.newRanges,
		"anchors":       m.newAnchors,
		"export":        m.export,
		"decode_list":   m.decodeList,
		"decode_ranges": m.decodeRanges,
	} {
		L.SetField(mod, name, L.NewFunction(m.charged(fn)))
	}

	L.SetGlobal(ModuleName, mod)
	L.PreloadModule(ModuleName, func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
}

func (m *module) registerType(L *lua.LState, name string, methods map[string]lua.LGFunction) {
	mt := L.NewTypeMetatable(name)
	index := L.NewTable()
	for method, fn := range methods {
		L.SetField(index, method, L.NewFunction(m.charged(fn)))
	}
	L.SetField(mt, "__index", index)
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(name))
		return 1
	}))
}

// charged wraps fn so every call counts against the call limit.
func (m *module) charged(fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		m.sandbox.charge(L)
		return fn(L)
	}
}

func (m *module) wrap(L *lua.LState, typeName string, value any) int {
	ud := L.NewUserData()
	ud.Value = value
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))
	L.Push(ud)
	return 1
}

// list() -> list
func (m *module) newList(L *lua.LState) int {
	return m.wrap(L, listType, spaced.New[lua.LValue]())
}

// ranges() -> ranges
func (m *module) newRanges(L *lua.LState) int {
	return m.wrap(L, rangesType, spaced.NewRangeList[lua.LValue]())
}

// anchors([bias]) -> anchors
func (m *module) newAnchors(L *lua.LState) int {
	bias := optBias(L, 1, m.bias)
	return m.wrap(L, anchorsType, anchor.NewSet(anchor.WithBias(bias), anchor.WithLogger(m.log)))
}

// decode_list(json) -> list
func (m *module) decodeList(L *lua.LState) int {
	l, err := spaced.DecodeList([]byte(L.CheckString(1)), decoder(L))
	if err != nil {
		return raise(L, "decode_list", err)
	}
	return m.wrap(L, listType, l)
}

// decode_ranges(json) -> ranges
func (m *module) decodeRanges(L *lua.LState) int {
	r, err := spaced.DecodeRanges([]byte(L.CheckString(1)), decoder(L))
	if err != nil {
		return raise(L, "decode_ranges", err)
	}
	return m.wrap(L, rangesType, r)
}

// export(name, obj)
func (m *module) export(L *lua.LState) int {
	name := L.CheckString(1)
	if strings.TrimSpace(name) == "" {
		L.ArgError(1, "export name must not be empty")
		return 0
	}
	if _, ok := m.exports[name]; ok {
		return raise(L, "export", errors.Wrapf(ErrDuplicateExport, "%q", name))
	}

	e := Export{Name: name}
	switch v := L.CheckUserData(2).Value.(type) {
	case *spaced.List[lua.LValue]:
		e.Kind, e.List = KindList, v
	case *spaced.RangeList[lua.LValue]:
		e.Kind, e.Ranges = KindRanges, v
	case *anchor.Set:
		e.Kind, e.Anchors = KindAnchors, v
	default:
		L.ArgError(2, "spaced object expected")
		return 0
	}
	m.exports[name] = e
	m.log.Debug("exported %s %q", e.Kind, name)
	return 0
}

func (m *module) sortedExports() []Export {
	out := make([]Export, 0, len(m.exports))
	for _, e := range m.exports {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Export) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
