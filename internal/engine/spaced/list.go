package spaced

import (
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/dshills/spacedlist/internal/engine/arraylist"
)

// Index is a stable handle to a list entry.
type Index = arraylist.Index

// None is the index of no entry.
const None = arraylist.None

// Entry pairs a value with its distance from the previous entry.
type Entry[T any] struct {
	Spacing uint
	Value   T
}

// List is a sequence of values whose positions are the running sum of the
// entries' spacings.
type List[T any] struct {
	entries *arraylist.List[Entry[T]]
	length  uint // sum of all spacings
}

// New creates an empty list.
func New[T any]() *List[T] {
	return &List[T]{entries: arraylist.New[Entry[T]]()}
}

// Length returns the sum of all spacings, the position of the last entry.
func (l *List[T]) Length() uint {
	return l.length
}

// Len returns the number of entries.
func (l *List[T]) Len() int {
	return l.entries.Len()
}

// IsEmpty reports whether the list has no entries.
func (l *List[T]) IsEmpty() bool {
	return l.entries.IsEmpty()
}

// Push appends value spacing units past the current last entry.
func (l *List[T]) Push(spacing uint, value T) Index {
	l.length += spacing
	return l.entries.PushBack(Entry[T]{Spacing: spacing, Value: value})
}

// InsertAfter places value at position. An entry already sitting exactly at
// position stays ahead of the new one. Positions at or past the length
// extend the list.
func (l *List[T]) InsertAfter(position uint, value T) Index {
	if position >= l.length {
		return l.Push(position-l.length, value)
	}
	return l.split(position, value, false)
}

// InsertBefore places value at position. An entry already sitting exactly at
// position ends up after the new one. Positions past the length extend the
// list.
func (l *List[T]) InsertBefore(position uint, value T) Index {
	if position > l.length {
		return l.Push(position-l.length, value)
	}
	return l.split(position, value, true)
}

// split divides the gap covering position into two gaps, the first closed by
// the new entry. The length is unchanged.
func (l *List[T]) split(position uint, value T, inclusive bool) Index {
	var (
		at  = None
		sum uint
	)
	for idx, e := range l.entries.All() {
		end := sum + e.Spacing
		if end > position || (inclusive && end == position) {
			at = idx
			break
		}
		sum = end
	}
	if at == None {
		// Only reachable for a before-insert into an empty list.
		return l.Push(position-l.length, value)
	}

	e := l.mustEntry(at)
	e.Spacing -= position - sum
	idx, err := l.entries.InsertBefore(at, Entry[T]{Spacing: position - sum, Value: value})
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "split point %d vanished", at))
	}
	return idx
}

// Remove deletes the entry at idx and returns its value. The gap it closed is
// folded into the next entry, so no other entry moves. Removing the last entry
// shortens the list.
func (l *List[T]) Remove(idx Index) (T, error) {
	var zero T
	e, err := l.entries.At(idx)
	if err != nil {
		return zero, err
	}

	next, err := l.entries.Next(idx)
	if err != nil {
		return zero, err
	}
	if next != None {
		l.mustEntry(next).Spacing += e.Spacing
	} else {
		l.length -= e.Spacing
	}

	removed, err := l.entries.Remove(idx)
	if err != nil {
		return zero, err
	}
	return removed.Value, nil
}

// InflateAfter widens by spacing the gap of the first entry past position,
// moving that entry and everything after it. Positions at or past the length
// are ignored.
func (l *List[T]) InflateAfter(position, spacing uint) error {
	if l.IsEmpty() {
		return misuse(ErrEmptyList, "inflate after %d", position)
	}
	if position >= l.length {
		return nil
	}
	l.grow(l.adjustPoint(position, false), spacing)
	return nil
}

// DeflateAfter narrows by spacing the gap of the first entry past position.
// Positions at or past the length are ignored.
func (l *List[T]) DeflateAfter(position, spacing uint) error {
	if l.IsEmpty() {
		return misuse(ErrEmptyList, "deflate after %d", position)
	}
	if position >= l.length {
		return nil
	}
	return l.shrink(l.adjustPoint(position, false), spacing)
}

// InflateBefore widens by spacing the gap of the first entry at or past
// position. Position 0 and positions past the length are ignored.
func (l *List[T]) InflateBefore(position, spacing uint) error {
	if l.IsEmpty() {
		return misuse(ErrEmptyList, "inflate before %d", position)
	}
	if position == 0 || position > l.length {
		return nil
	}
	l.grow(l.adjustPoint(position, true), spacing)
	return nil
}

// DeflateBefore narrows by spacing the gap of the first entry at or past
// position. Position 0 and positions past the length are ignored.
func (l *List[T]) DeflateBefore(position, spacing uint) error {
	if l.IsEmpty() {
		return misuse(ErrEmptyList, "deflate before %d", position)
	}
	if position == 0 || position > l.length {
		return nil
	}
	return l.shrink(l.adjustPoint(position, true), spacing)
}

// adjustPoint finds the first entry whose position is past position, or at it
// when inclusive. Callers guarantee such an entry exists.
func (l *List[T]) adjustPoint(position uint, inclusive bool) Index {
	var sum uint
	for idx, e := range l.entries.All() {
		sum += e.Spacing
		if sum > position || (inclusive && sum == position) {
			return idx
		}
	}
	return l.entries.Back()
}

func (l *List[T]) grow(idx Index, spacing uint) {
	l.mustEntry(idx).Spacing += spacing
	l.length += spacing
}

func (l *List[T]) shrink(idx Index, spacing uint) error {
	e := l.mustEntry(idx)
	if e.Spacing < spacing {
		return misuse(ErrUnderflow, "deflate %d from gap of %d", spacing, e.Spacing)
	}
	e.Spacing -= spacing
	l.length -= spacing
	return nil
}

// Value returns the value stored at idx.
func (l *List[T]) Value(idx Index) (T, error) {
	e, err := l.entries.At(idx)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.Value, nil
}

// SetValue replaces the value stored at idx without moving it.
func (l *List[T]) SetValue(idx Index, value T) error {
	e, err := l.entries.At(idx)
	if err != nil {
		return err
	}
	e.Value = value
	return nil
}

// Spacing returns the gap closed by the entry at idx.
func (l *List[T]) Spacing(idx Index) (uint, error) {
	e, err := l.entries.At(idx)
	if err != nil {
		return 0, err
	}
	return e.Spacing, nil
}

// Position returns the absolute position of the entry at idx.
func (l *List[T]) Position(idx Index) (uint, error) {
	for i, pos := range l.Positions() {
		if i == idx {
			return pos, nil
		}
	}
	return 0, errors.Wrapf(ErrDeadIndex, "position of %d", idx)
}

// All yields every entry in position order.
func (l *List[T]) All() iter.Seq2[Index, Entry[T]] {
	return func(yield func(Index, Entry[T]) bool) {
		for idx, e := range l.entries.All() {
			if !yield(idx, *e) {
				return
			}
		}
	}
}

// Positions yields the absolute position of every entry in order.
func (l *List[T]) Positions() iter.Seq2[Index, uint] {
	return func(yield func(Index, uint) bool) {
		var sum uint
		for idx, e := range l.entries.All() {
			sum += e.Spacing
			if !yield(idx, sum) {
				return
			}
		}
	}
}

// Check verifies that the length equals the sum of all spacings.
func (l *List[T]) Check() error {
	var sum uint
	for _, e := range l.entries.All() {
		sum += e.Spacing
	}
	if sum != l.length {
		return errors.Wrapf(ErrCorrupt, "length %d, spacings sum to %d", l.length, sum)
	}
	return nil
}

// mustEntry returns the entry at an index the list itself just produced.
func (l *List[T]) mustEntry(idx Index) *Entry[T] {
	e, err := l.entries.At(idx)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "internal index %d", idx))
	}
	return e
}
