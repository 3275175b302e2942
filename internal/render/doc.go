// Package render draws spaced ranges as a ruler on a terminal screen.
//
// A Ruler maps positions to columns by integer division with Scale. Row 0 is
// the axis with a tick wherever a column covers a multiple of 10, row 1 holds
// the tick labels that fit, and every following row shows one Span:
//
//	+---------+---------+---------
//	0         10        20
//	[=========) outer
//	   [==) inner
//	     | point
//
// Spans running past the ruler end in '>'. Rows past the screen height are
// dropped.
package render
