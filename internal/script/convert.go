package script

import (
	"math"

	"github.com/tidwall/gjson"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spacedlist/internal/engine/anchor"
	"github.com/dshills/spacedlist/internal/engine/spaced"
)

// maxDepth bounds table nesting when converting to JSON.
const maxDepth = 32

// checkUint returns argument n as a non-negative integer.
func checkUint(L *lua.LState, n int) uint {
	f := float64(L.CheckNumber(n))
	if f < 0 || f != math.Trunc(f) {
		L.ArgError(n, "non-negative integer expected")
		return 0
	}
	return uint(f)
}

func checkIndex(L *lua.LState, n int) spaced.Index {
	return spaced.Index(L.CheckInt(n))
}

// optBias returns argument n as a bias, or def when absent.
func optBias(L *lua.LState, n int, def anchor.Bias) anchor.Bias {
	if L.Get(n) == lua.LNil {
		return def
	}
	b, err := anchor.ParseBias(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return b
}

// raise turns err into a Lua error naming op.
func raise(L *lua.LState, op string, err error) int {
	L.RaiseError("%s: %v", op, err)
	return 0
}

func number(n uint) lua.LNumber {
	return lua.LNumber(n)
}

// toJSON converts a Lua value into something sjson can encode. Tables with a
// positive length become arrays, other tables objects keyed by their string
// form.
func toJSON(v lua.LValue) any {
	return toJSONDepth(v, 0)
}

func toJSONDepth(v lua.LValue, depth int) any {
	switch v := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if depth >= maxDepth {
			return v.String()
		}
		if n := v.Len(); n > 0 {
			arr := make([]any, n)
			for i := range n {
				arr[i] = toJSONDepth(v.RawGetInt(i+1), depth+1)
			}
			return arr
		}
		obj := make(map[string]any)
		v.ForEach(func(k, val lua.LValue) {
			obj[k.String()] = toJSONDepth(val, depth+1)
		})
		return obj
	}
	return v.String()
}

// fromJSON converts a decoded snapshot value back into a Lua value.
func fromJSON(L *lua.LState, r gjson.Result) lua.LValue {
	switch r.Type {
	case gjson.Null:
		return lua.LNil
	case gjson.False:
		return lua.LFalse
	case gjson.True:
		return lua.LTrue
	case gjson.Number:
		return lua.LNumber(r.Float())
	case gjson.String:
		return lua.LString(r.String())
	}
	tbl := L.NewTable()
	if r.IsArray() {
		for _, item := range r.Array() {
			tbl.Append(fromJSON(L, item))
		}
		return tbl
	}
	r.ForEach(func(k, val gjson.Result) bool {
		tbl.RawSetString(k.String(), fromJSON(L, val))
		return true
	})
	return tbl
}

// decoder adapts fromJSON to the snapshot decoders. Missing values decode
// as nil.
func decoder(L *lua.LState) func(gjson.Result) (lua.LValue, error) {
	return func(r gjson.Result) (lua.LValue, error) {
		if !r.Exists() {
			return lua.LNil, nil
		}
		return fromJSON(L, r), nil
	}
}
