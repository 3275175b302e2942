package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spacedlist/internal/engine/spaced"
)

type rangeList = spaced.RangeList[lua.LValue]

func checkRanges(L *lua.LState) *rangeList {
	if r, ok := L.CheckUserData(1).Value.(*rangeList); ok {
		return r
	}
	L.ArgError(1, "spaced.ranges expected")
	return nil
}

func (m *module) rangesMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"push":           rangesPush,
		"insert_after":   rangesInsert("insert_after", (*rangeList).InsertAfter),
		"insert_before":  rangesInsert("insert_before", (*rangeList).InsertBefore),
		"remove":         rangesRemove,
		"inflate_after":  rangesAdjust("inflate_after", (*rangeList).InflateAfter),
		"deflate_after":  rangesAdjust("deflate_after", (*rangeList).DeflateAfter),
		"inflate_before": rangesAdjust("inflate_before", (*rangeList).InflateBefore),
		"deflate_before": rangesAdjust("deflate_before", (*rangeList).DeflateBefore),
		"length":         rangesLength,
		"len":            rangesLen,
		"span":           rangesSpan,
		"value":          rangesValue,
		"set":            rangesSet,
		"ranges":         rangesAll,
		"encode":         rangesEncode,
	}
}

// push(spacing, length, value) -> start_index, end_index
func rangesPush(L *lua.LState) int {
	r := checkRanges(L)
	start, end := r.Push(checkUint(L, 2), checkUint(L, 3), L.Get(4))
	L.Push(lua.LNumber(start))
	L.Push(lua.LNumber(end))
	return 2
}

// rangesInsert builds insert_after and insert_before: (start, end, value).
func rangesInsert(op string, fn func(*rangeList, uint, uint, lua.LValue) (spaced.Index, spaced.Index, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		r := checkRanges(L)
		start, end, err := fn(r, checkUint(L, 2), checkUint(L, 3), L.Get(4))
		if err != nil {
			return raise(L, op, err)
		}
		L.Push(lua.LNumber(start))
		L.Push(lua.LNumber(end))
		return 2
	}
}

// remove(index) -> value
func rangesRemove(L *lua.LState) int {
	v, err := checkRanges(L).Remove(checkIndex(L, 2))
	if err != nil {
		return raise(L, "remove", err)
	}
	L.Push(v)
	return 1
}

func rangesAdjust(op string, fn func(*rangeList, uint, uint) error) lua.LGFunction {
	return func(L *lua.LState) int {
		r := checkRanges(L)
		if err := fn(r, checkUint(L, 2), checkUint(L, 3)); err != nil {
			return raise(L, op, err)
		}
		return 0
	}
}

// length() -> position of the last bound
func rangesLength(L *lua.LState) int {
	L.Push(number(checkRanges(L).Length()))
	return 1
}

// len() -> range count
func rangesLen(L *lua.LState) int {
	L.Push(lua.LNumber(checkRanges(L).Len()))
	return 1
}

// span(index) -> start, end
func rangesSpan(L *lua.LState) int {
	start, end, err := checkRanges(L).Span(checkIndex(L, 2))
	if err != nil {
		return raise(L, "span", err)
	}
	L.Push(number(start))
	L.Push(number(end))
	return 2
}

// value(index) -> value
func rangesValue(L *lua.LState) int {
	v, err := checkRanges(L).Value(checkIndex(L, 2))
	if err != nil {
		return raise(L, "value", err)
	}
	L.Push(v)
	return 1
}

// set(index, value)
func rangesSet(L *lua.LState) int {
	if err := checkRanges(L).SetValue(checkIndex(L, 2), L.Get(3)); err != nil {
		return raise(L, "set", err)
	}
	return 0
}

// ranges() -> {{start, end, value, start_index, end_index}, ...}
func rangesAll(L *lua.LState) int {
	r := checkRanges(L)
	out := L.CreateTable(r.Len(), 0)
	for rg := range r.Ranges() {
		row := L.CreateTable(0, 5)
		row.RawSetString("start", number(rg.Start))
		row.RawSetString("end", number(rg.End))
		row.RawSetString("value", rg.Value)
		row.RawSetString("start_index", lua.LNumber(rg.StartIndex))
		row.RawSetString("end_index", lua.LNumber(rg.EndIndex))
		out.Append(row)
	}
	L.Push(out)
	return 1
}

// encode() -> json
func rangesEncode(L *lua.LState) int {
	doc, err := spaced.EncodeRanges(checkRanges(L), toJSON)
	if err != nil {
		return raise(L, "encode", err)
	}
	L.Push(lua.LString(doc))
	return 1
}
