package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spacedlist/internal/engine/spaced"
)

func checkList(L *lua.LState) *spaced.List[lua.LValue] {
	if l, ok := L.CheckUserData(1).Value.(*spaced.List[lua.LValue]); ok {
		return l
	}
	L.ArgError(1, "spaced.list expected")
	return nil
}

func (m *module) listMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"push":           listPush,
		"insert_after":   listInsertAfter,
		"insert_before":  listInsertBefore,
		"remove":         listRemove,
		"inflate_after":  listAdjust("inflate_after", (*spaced.List[lua.LValue]).InflateAfter),
		"deflate_after":  listAdjust("deflate_after", (*spaced.List[lua.LValue]).DeflateAfter),
		"inflate_before": listAdjust("inflate_before", (*spaced.List[lua.LValue]).InflateBefore),
		"deflate_before": listAdjust("deflate_before", (*spaced.List[lua.LValue]).DeflateBefore),
		"length":         listLength,
		"len":            listLen,
		"position":       listPosition,
		"value":          listValue,
		"set":            listSet,
		"entries":        listEntries,
		"encode":         listEncode,
	}
}

// push(spacing, value) -> index
func listPush(L *lua.LState) int {
	l := checkList(L)
	idx := l.Push(checkUint(L, 2), L.Get(3))
	L.Push(lua.LNumber(idx))
	return 1
}

// insert_after(position, value) -> index
func listInsertAfter(L *lua.LState) int {
	l := checkList(L)
	idx := l.InsertAfter(checkUint(L, 2), L.Get(3))
	L.Push(lua.LNumber(idx))
	return 1
}

// insert_before(position, value) -> index
func listInsertBefore(L *lua.LState) int {
	l := checkList(L)
	idx := l.InsertBefore(checkUint(L, 2), L.Get(3))
	L.Push(lua.LNumber(idx))
	return 1
}

// remove(index) -> value
func listRemove(L *lua.LState) int {
	l := checkList(L)
	v, err := l.Remove(checkIndex(L, 2))
	if err != nil {
		return raise(L, "remove", err)
	}
	L.Push(v)
	return 1
}

// listAdjust builds the four gap adjustment methods: (position, n).
func listAdjust(op string, fn func(*spaced.List[lua.LValue], uint, uint) error) lua.LGFunction {
	return func(L *lua.LState) int {
		l := checkList(L)
		if err := fn(l, checkUint(L, 2), checkUint(L, 3)); err != nil {
			return raise(L, op, err)
		}
		return 0
	}
}

// length() -> total spacing
func listLength(L *lua.LState) int {
	L.Push(number(checkList(L).Length()))
	return 1
}

// len() -> entry count
func listLen(L *lua.LState) int {
	L.Push(lua.LNumber(checkList(L).Len()))
	return 1
}

// position(index) -> position
func listPosition(L *lua.LState) int {
	pos, err := checkList(L).Position(checkIndex(L, 2))
	if err != nil {
		return raise(L, "position", err)
	}
	L.Push(number(pos))
	return 1
}

// value(index) -> value
func listValue(L *lua.LState) int {
	v, err := checkList(L).Value(checkIndex(L, 2))
	if err != nil {
		return raise(L, "value", err)
	}
	L.Push(v)
	return 1
}

// set(index, value)
func listSet(L *lua.LState) int {
	if err := checkList(L).SetValue(checkIndex(L, 2), L.Get(3)); err != nil {
		return raise(L, "set", err)
	}
	return 0
}

// entries() -> {{index, spacing, position, value}, ...}
func listEntries(L *lua.LState) int {
	l := checkList(L)
	out := L.CreateTable(l.Len(), 0)
	var pos uint
	for idx, e := range l.All() {
		pos += e.Spacing
		row := L.CreateTable(0, 4)
		row.RawSetString("index", lua.LNumber(idx))
		row.RawSetString("spacing", number(e.Spacing))
		row.RawSetString("position", number(pos))
		row.RawSetString("value", e.Value)
		out.Append(row)
	}
	L.Push(out)
	return 1
}

// encode() -> json
func listEncode(L *lua.LState) int {
	doc, err := spaced.EncodeList(checkList(L), toJSON)
	if err != nil {
		return raise(L, "encode", err)
	}
	L.Push(lua.LString(doc))
	return 1
}
