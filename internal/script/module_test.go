package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spacedlist/internal/engine/anchor"
)

const demo = `
local l = spaced.list()
local a = l:push(20, "a")
l:push(5, "b")
local c = l:insert_after(12, "c")
assert(l:length() == 25)
assert(l:len() == 3)
assert(l:position(a) == 20)
assert(l:position(c) == 12)

l:inflate_after(12, 3)
assert(l:position(a) == 23)
assert(l:length() == 28)
l:deflate_before(23, 3)
assert(l:position(a) == 20)

assert(l:remove(c) == "c")
assert(l:position(a) == 20)
local e = l:entries()
assert(#e == 2 and e[1].value == "a" and e[2].position == 25)
spaced.export("points", l)

local r = spaced.ranges()
r:push(0, 10, "outer")
local is, ie = r:insert_after(3, 6, "inner")
local s, t = r:span(ie)
assert(s == 3 and t == 6)
assert(r:value(ie) == "inner")
assert(r:len() == 2 and r:length() == 10)
local all = r:ranges()
assert(all[1].value == "outer" and all[2].value == "inner")
assert(all[2].start_index == is)
spaced.export("ranges", r)

local m = spaced.anchors()
m:add("fn", 10, 20)
m:add("var", 30, 35)
m:apply(12, 18, 2)
local fs, fe = m:get("fn")
assert(fs == 10 and fe == 16)
assert(m:len() == 2 and m:extent() == 31)
spaced.export("marks", m)
`

func TestModuleDemo(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.DoString(context.Background(), demo))

	exports := s.Exports()
	require.Len(t, exports, 3)
	assert.Equal(t, "marks", exports[0].Name)
	assert.Equal(t, KindAnchors, exports[0].Kind)
	assert.Equal(t, "points", exports[1].Name)
	assert.Equal(t, KindList, exports[1].Kind)
	assert.Equal(t, "ranges", exports[2].Name)
	assert.Equal(t, KindRanges, exports[2].Kind)

	doc, err := exports[1].Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"length":25,"entries":[
		{"spacing":20,"value":"a"},
		{"spacing":5,"value":"b"}
	]}`, string(doc))

	assert.Equal(t, []anchor.Mark{{Name: "fn", Start: 10, End: 16}, {Name: "var", Start: 26, End: 31}}, exports[0].Anchors.Marks())

	doc, err = exports[0].Encode()
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"value":"fn"`)

	var values []lua.LValue
	for rg := range exports[2].Ranges.Ranges() {
		values = append(values, rg.Value)
	}
	assert.Equal(t, []lua.LValue{lua.LString("outer"), lua.LString("inner")}, values)
}

func TestModuleErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"deflate empty list", `spaced.list():deflate_after(0, 1)`, "deflate_after"},
		{"underflow", `local l = spaced.list(); l:push(1, "x"); l:deflate_after(0, 5)`, "cannot deflate below zero"},
		{"negative position", `spaced.list():push(-1, "x")`, "non-negative integer expected"},
		{"fractional position", `spaced.list():insert_after(1.5, "x")`, "non-negative integer expected"},
		{"dead index", `spaced.list():remove(99)`, "remove"},
		{"inverted range", `spaced.ranges():insert_after(5, 2, "x")`, "start position must be before or at end position"},
		{"missing mark", `spaced.anchors():get("nope")`, "mark not found"},
		{"bad bias", `spaced.anchors("up")`, "unknown bias"},
		{"wrong receiver", `local r = spaced.ranges(); spaced.list().len(r)`, "spaced.list expected"},
		{"duplicate export", `local l = spaced.list(); spaced.export("x", l); spaced.export("x", l)`, "export name already used"},
		{"export non object", `spaced.export("x", 1)`, "userdata expected"},
		{"bad snapshot", `spaced.decode_list("{")`, "malformed snapshot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			err := s.DoString(context.Background(), tt.code)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.DoString(context.Background(), `
		local l = spaced.list()
		l:push(3, {1, 2})
		l:push(4, {k = "v"})
		l:push(5, nil)
		local doc = l:encode()
		local back = spaced.decode_list(doc)
		assert(back:length() == 12 and back:len() == 3)
		local e = back:entries()
		assert(e[1].value[2] == 2)
		assert(e[2].value.k == "v")
		assert(e[3].value == nil)
		spaced.export("list", l)

		local r = spaced.ranges()
		r:push(2, 3, "x")
		local rb = spaced.decode_ranges(r:encode())
		local a, b = rb:span(0)
		assert(a == 2 and b == 5)
	`))

	doc, err := s.Exports()[0].Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"length":12,"entries":[
		{"spacing":3,"value":[1,2]},
		{"spacing":4,"value":{"k":"v"}},
		{"spacing":5,"value":null}
	]}`, string(doc))
}

func TestDefaultAnchorBias(t *testing.T) {
	s := newTestState(t, WithBias(anchor.BiasRight))
	require.NoError(t, s.DoString(context.Background(), `
		local m = spaced.anchors()
		m:add("a", 5, 10)
		m:insert(5, 2)
		local s, e = m:get("a")
		assert(s == 7 and e == 12, s .. "," .. e)

		local left = spaced.anchors("left")
		left:add("a", 5, 10)
		left:insert(5, 2)
		s, e = left:get("a")
		assert(s == 5 and e == 12, s .. "," .. e)
	`))
}
