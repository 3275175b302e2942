// Package script drives spaced lists from Lua.
//
// Scripts run in a sandboxed gopher-lua state: only the base, string, table
// and math libraries are available, file loading globals are removed, and
// require resolves nothing but those libraries and the spaced module. print
// writes to the run's logger.
//
// # The spaced module
//
// The module is available as the global spaced and through require("spaced").
//
//	local l = spaced.list()           -- LinkedSpacedList of Lua values
//	local r = spaced.ranges()         -- LinkedRangeSpacedList of Lua values
//	local a = spaced.anchors("right") -- named marks, default bias optional
//	spaced.export("points", l)        -- hand an object back to the caller
//	spaced.decode_list(json)          -- rebuild a list from a snapshot
//	spaced.decode_ranges(json)        -- rebuild a range list from a snapshot
//
// List methods:
//
//	push(spacing, value) -> index
//	insert_after(position, value) -> index
//	insert_before(position, value) -> index
//	remove(index) -> value
//	inflate_after(position, n)   deflate_after(position, n)
//	inflate_before(position, n)  deflate_before(position, n)
//	length() -> total spacing     len() -> entry count
//	position(index) -> position   value(index) -> value   set(index, value)
//	entries() -> {{index, spacing, position, value}, ...}
//	encode() -> json
//
// Range list methods mirror the list methods with range arguments:
//
//	push(spacing, length, value) -> start_index, end_index
//	insert_after(start, end, value) -> start_index, end_index
//	insert_before(start, end, value) -> start_index, end_index
//	span(index) -> start, end
//	ranges() -> {{start, end, value, start_index, end_index}, ...}
//
// Anchor set methods:
//
//	add(name, start, end [, bias])   remove(name)   get(name) -> start, end
//	insert(offset, n [, bias])       delete(start, end)
//	apply(start, end, inserted)      marks() -> {{name, start, end}, ...}
//	len() -> count                   extent() -> last bound
//	encode() -> json
//
// Every method call counts against the state's call limit. Go errors are
// raised as Lua errors carrying the operation name.
package script
