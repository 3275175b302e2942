package spaced

import (
	"iter"

	"github.com/cockroachdb/errors"
)

// BoundKind tells the two bounds of a range apart.
type BoundKind uint8

const (
	// BoundStart opens a range and carries its value.
	BoundStart BoundKind = iota
	// BoundEnd closes a range.
	BoundEnd
)

// String returns the bound kind name.
func (k BoundKind) String() string {
	switch k {
	case BoundStart:
		return "start"
	case BoundEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Bound is one endpoint of a range. Pair is the index of the other endpoint.
// Only a start bound carries a value.
type Bound[T any] struct {
	Kind  BoundKind
	Pair  Index
	Value T
}

// Range describes one stored range.
type Range[T any] struct {
	StartIndex Index
	EndIndex   Index
	Start      uint
	End        uint
	Value      T
}

// RangeList stores half-open ranges [start, end) as pairs of bounds in a
// shared List.
type RangeList[T any] struct {
	bounds *List[Bound[T]]
}

// NewRangeList creates an empty range list.
func NewRangeList[T any]() *RangeList[T] {
	return &RangeList[T]{bounds: New[Bound[T]]()}
}

// Length returns the position of the last bound.
func (r *RangeList[T]) Length() uint {
	return r.bounds.Length()
}

// Len returns the number of ranges.
func (r *RangeList[T]) Len() int {
	return r.bounds.Len() / 2
}

// IsEmpty reports whether the list holds no ranges.
func (r *RangeList[T]) IsEmpty() bool {
	return r.bounds.IsEmpty()
}

// Push appends a range starting spacing units past the last bound and
// spanning length units.
func (r *RangeList[T]) Push(spacing, length uint, value T) (start, end Index) {
	start = r.bounds.Push(spacing, Bound[T]{Kind: BoundStart, Pair: None, Value: value})
	end = r.bounds.Push(length, Bound[T]{Kind: BoundEnd, Pair: start})
	r.pair(start, end)
	return start, end
}

// InsertAfter inserts the range [start, end). Bounds already sitting exactly
// at start or end stay ahead of the new ones.
func (r *RangeList[T]) InsertAfter(start, end uint, value T) (Index, Index, error) {
	if start > end {
		return None, None, errors.Wrapf(ErrInvalidRange, "[%d, %d)", start, end)
	}
	if length := r.bounds.Length(); start >= length {
		s, e := r.Push(start-length, end-start, value)
		return s, e, nil
	}

	s := r.bounds.InsertAfter(start, Bound[T]{Kind: BoundStart, Pair: None, Value: value})
	e := r.bounds.InsertAfter(end, Bound[T]{Kind: BoundEnd, Pair: s})
	r.pair(s, e)
	return s, e, nil
}

// InsertBefore inserts the range [start, end). Bounds already sitting exactly
// at start or end end up after the new ones.
func (r *RangeList[T]) InsertBefore(start, end uint, value T) (Index, Index, error) {
	if start > end {
		return None, None, errors.Wrapf(ErrInvalidRange, "[%d, %d)", start, end)
	}
	if length := r.bounds.Length(); start > length {
		s, e := r.Push(start-length, end-start, value)
		return s, e, nil
	}

	// The end goes in first: with start == end, a before-insert of the start
	// must land ahead of its own end bound.
	e := r.bounds.InsertBefore(end, Bound[T]{Kind: BoundEnd, Pair: None})
	s := r.bounds.InsertBefore(start, Bound[T]{Kind: BoundStart, Pair: e, Value: value})
	r.pair(s, e)
	return s, e, nil
}

// pair points two fresh bounds at each other.
func (r *RangeList[T]) pair(start, end Index) {
	r.bounds.mustEntry(start).Value.Pair = end
	r.bounds.mustEntry(end).Value.Pair = start
}

// Remove deletes the range that either bound index belongs to and returns its
// value.
func (r *RangeList[T]) Remove(idx Index) (T, error) {
	var zero T
	start, end, err := r.ends(idx)
	if err != nil {
		return zero, err
	}

	b, err := r.bounds.Remove(start)
	if err != nil {
		return zero, err
	}
	if _, err := r.bounds.Remove(end); err != nil {
		return zero, errors.NewAssertionErrorWithWrappedErrf(err, "end bound %d of start %d", end, start)
	}
	return b.Value, nil
}

// ends resolves either bound index into the start and end index of its range.
func (r *RangeList[T]) ends(idx Index) (start, end Index, err error) {
	b, err := r.bounds.Value(idx)
	if err != nil {
		return None, None, err
	}
	if b.Kind == BoundStart {
		return idx, b.Pair, nil
	}
	return b.Pair, idx, nil
}

// InflateAfter passes through to List.InflateAfter.
func (r *RangeList[T]) InflateAfter(position, spacing uint) error {
	return r.bounds.InflateAfter(position, spacing)
}

// DeflateAfter passes through to List.DeflateAfter.
func (r *RangeList[T]) DeflateAfter(position, spacing uint) error {
	return r.bounds.DeflateAfter(position, spacing)
}

// InflateBefore passes through to List.InflateBefore.
func (r *RangeList[T]) InflateBefore(position, spacing uint) error {
	return r.bounds.InflateBefore(position, spacing)
}

// DeflateBefore passes through to List.DeflateBefore.
func (r *RangeList[T]) DeflateBefore(position, spacing uint) error {
	return r.bounds.DeflateBefore(position, spacing)
}

// Value returns the value of the range either bound index belongs to.
func (r *RangeList[T]) Value(idx Index) (T, error) {
	var zero T
	start, _, err := r.ends(idx)
	if err != nil {
		return zero, err
	}
	b, err := r.bounds.Value(start)
	if err != nil {
		return zero, err
	}
	return b.Value, nil
}

// SetValue replaces the value of the range either bound index belongs to.
func (r *RangeList[T]) SetValue(idx Index, value T) error {
	start, _, err := r.ends(idx)
	if err != nil {
		return err
	}
	e, err := r.bounds.entries.At(start)
	if err != nil {
		return err
	}
	e.Value.Value = value
	return nil
}

// Span returns the absolute start and end of the range either bound index
// belongs to.
func (r *RangeList[T]) Span(idx Index) (start, end uint, err error) {
	si, ei, err := r.ends(idx)
	if err != nil {
		return 0, 0, err
	}
	var found int
	for i, pos := range r.bounds.Positions() {
		switch i {
		case si:
			start = pos
			found++
		case ei:
			end = pos
			found++
		}
		if found == 2 {
			return start, end, nil
		}
	}
	return 0, 0, errors.Wrapf(ErrCorrupt, "range %d/%d not fully stored", si, ei)
}

// Bounds yields every bound with its spacing in position order.
func (r *RangeList[T]) Bounds() iter.Seq2[Index, Entry[Bound[T]]] {
	return r.bounds.All()
}

// Ranges yields every range ordered by start bound.
func (r *RangeList[T]) Ranges() iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		positions := make(map[Index]uint, r.bounds.Len())
		for idx, pos := range r.bounds.Positions() {
			positions[idx] = pos
		}
		for idx, e := range r.bounds.All() {
			b := e.Value
			if b.Kind != BoundStart {
				continue
			}
			rg := Range[T]{
				StartIndex: idx,
				EndIndex:   b.Pair,
				Start:      positions[idx],
				End:        positions[b.Pair],
				Value:      b.Value,
			}
			if !yield(rg) {
				return
			}
		}
	}
}

// Check verifies the spacing sum and that every start bound is paired with an
// end bound that points back at it and follows it.
func (r *RangeList[T]) Check() error {
	if err := r.bounds.Check(); err != nil {
		return err
	}
	if r.bounds.Len()%2 != 0 {
		return errors.Wrapf(ErrCorrupt, "odd bound count %d", r.bounds.Len())
	}

	open := make(map[Index]bool)
	for idx, e := range r.bounds.All() {
		b := e.Value
		switch b.Kind {
		case BoundStart:
			partner, err := r.bounds.Value(b.Pair)
			if err != nil {
				return errors.Wrapf(ErrCorrupt, "start %d pairs with dead index %d", idx, b.Pair)
			}
			if partner.Kind != BoundEnd || partner.Pair != idx {
				return errors.Wrapf(ErrCorrupt, "start %d and %d are not mutually paired", idx, b.Pair)
			}
			open[idx] = true
		case BoundEnd:
			if !open[b.Pair] {
				return errors.Wrapf(ErrCorrupt, "end %d precedes or lacks start %d", idx, b.Pair)
			}
			delete(open, b.Pair)
		default:
			return errors.Wrapf(ErrCorrupt, "bound %d has kind %d", idx, b.Kind)
		}
	}
	if len(open) != 0 {
		return errors.Wrapf(ErrCorrupt, "%d ranges left open", len(open))
	}
	return nil
}
