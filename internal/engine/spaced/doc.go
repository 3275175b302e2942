// Package spaced provides position-addressed sequences whose positions are
// stored as gaps.
//
// A [List] keeps its values in order along an integer axis. Instead of an
// absolute position, each entry stores its spacing: the distance from the
// previous entry, or from 0 for the first one. An entry's position is the sum
// of the spacings up to and including its own, and the list's length is the sum
// of all spacings, which is also the position of the last entry.
//
// Because positions are implicit, widening or narrowing a gap moves every later
// entry in one step without touching the entries themselves:
//
//	l := spaced.New[rune]()
//	a := l.Push(20, 'a')        // a at 20
//	l.Push(5, 'b')              // b at 25
//	c := l.InsertAfter(12, 'c') // c at 12, a's spacing becomes 8
//	_ = l.InflateAfter(16, 6)   // a moves to 26, b to 31
//	_, _ = l.Remove(a)          // c at 12, b still at 31
//
// Every entry is addressed by a stable [Index] that survives unrelated
// insertions and removals.
//
// # After and Before
//
// Operations come in After and Before pairs that differ only at ties. An After
// operation treats an entry sitting exactly at the target position as already
// passed, so new material lands beyond it. A Before operation lands ahead of
// it. Range bounds rely on this to keep the end of one range and the start of an
// adjoining range apart.
//
// # Ranges
//
// [RangeList] stores half-open ranges [start, end) as pairs of bounds in one
// shared List. Each bound records the index of its partner. Pairs are created
// and removed together.
//
// # Errors
//
// Adjusting an empty list and deflating a gap below zero are programming
// errors. They are returned marked as assertion failures, see
// errors.HasAssertionFailure, and leave the list unchanged.
//
// # Thread Safety
//
// Lists are not safe for concurrent use; callers must serialize access.
package spaced
