package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spacedlist/internal/engine/anchor"
	"github.com/dshills/spacedlist/internal/engine/spaced"
)

func checkAnchors(L *lua.LState) *anchor.Set {
	if s, ok := L.CheckUserData(1).Value.(*anchor.Set); ok {
		return s
	}
	L.ArgError(1, "spaced.anchors expected")
	return nil
}

func (m *module) anchorsMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"add":    anchorsAdd,
		"remove": anchorsRemove,
		"get":    anchorsGet,
		"insert": anchorsInsert,
		"delete": anchorsDelete,
		"apply":  anchorsApply,
		"marks":  anchorsMarks,
		"len":    anchorsLen,
		"extent": anchorsExtent,
		"encode": anchorsEncode,
	}
}

// add(name, start, end [, bias])
func anchorsAdd(L *lua.LState) int {
	s := checkAnchors(L)
	name := L.CheckString(2)
	if err := s.Add(name, checkUint(L, 3), checkUint(L, 4), optBias(L, 5, s.Bias())); err != nil {
		return raise(L, "add", err)
	}
	return 0
}

// remove(name)
func anchorsRemove(L *lua.LState) int {
	if err := checkAnchors(L).Remove(L.CheckString(2)); err != nil {
		return raise(L, "remove", err)
	}
	return 0
}

// get(name) -> start, end
func anchorsGet(L *lua.LState) int {
	mk, err := checkAnchors(L).Get(L.CheckString(2))
	if err != nil {
		return raise(L, "get", err)
	}
	L.Push(number(mk.Start))
	L.Push(number(mk.End))
	return 2
}

// insert(offset, n [, bias])
func anchorsInsert(L *lua.LState) int {
	s := checkAnchors(L)
	if err := s.Insert(checkUint(L, 2), checkUint(L, 3), optBias(L, 4, s.Bias())); err != nil {
		return raise(L, "insert", err)
	}
	return 0
}

// delete(start, end)
func anchorsDelete(L *lua.LState) int {
	if err := checkAnchors(L).Delete(checkUint(L, 2), checkUint(L, 3)); err != nil {
		return raise(L, "delete", err)
	}
	return 0
}

// apply(start, end, inserted)
func anchorsApply(L *lua.LState) int {
	e := anchor.Edit{Start: checkUint(L, 2), End: checkUint(L, 3), Inserted: checkUint(L, 4)}
	if err := checkAnchors(L).Apply(e); err != nil {
		return raise(L, "apply", err)
	}
	return 0
}

// marks() -> {{name, start, end}, ...}
func anchorsMarks(L *lua.LState) int {
	marks := checkAnchors(L).Marks()
	out := L.CreateTable(len(marks), 0)
	for _, mk := range marks {
		row := L.CreateTable(0, 3)
		row.RawSetString("name", lua.LString(mk.Name))
		row.RawSetString("start", number(mk.Start))
		row.RawSetString("end", number(mk.End))
		out.Append(row)
	}
	L.Push(out)
	return 1
}

// len() -> mark count
func anchorsLen(L *lua.LState) int {
	L.Push(lua.LNumber(checkAnchors(L).Len()))
	return 1
}

// extent() -> offset of the last bound
func anchorsExtent(L *lua.LState) int {
	L.Push(number(checkAnchors(L).Extent()))
	return 1
}

// encode() -> json
func anchorsEncode(L *lua.LState) int {
	doc, err := spaced.EncodeRanges(checkAnchors(L).Ranges(), func(name string) any { return name })
	if err != nil {
		return raise(L, "encode", err)
	}
	L.Push(lua.LString(doc))
	return 1
}
