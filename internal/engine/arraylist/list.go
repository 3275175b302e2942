package arraylist

import (
	"iter"

	"github.com/cockroachdb/errors"
)

// ErrDeadIndex is returned when an index does not name a live element.
var ErrDeadIndex = errors.New("index does not name a live element")

// Index is a stable handle to an element of a List.
type Index int

// None is the index of no element.
const None Index = -1

type slot[T any] struct {
	value T
	prev  Index
	next  Index
	live  bool
}

// List is a slot-backed doubly linked list with stable indices.
type List[T any] struct {
	slots []slot[T]
	head  Index
	tail  Index
	free  Index // head of the free list, chained through next
	count int
}

// New creates an empty list.
func New[T any]() *List[T] {
	return &List[T]{head: None, tail: None, free: None}
}

// Len returns the number of live elements.
func (l *List[T]) Len() int {
	return l.count
}

// IsEmpty reports whether the list holds no elements.
func (l *List[T]) IsEmpty() bool {
	return l.count == 0
}

// Front returns the index of the first element, or None.
func (l *List[T]) Front() Index {
	return l.head
}

// Back returns the index of the last element, or None.
func (l *List[T]) Back() Index {
	return l.tail
}

// Contains reports whether idx names a live element.
func (l *List[T]) Contains(idx Index) bool {
	return idx >= 0 && int(idx) < len(l.slots) && l.slots[idx].live
}

// At returns a pointer to the element at idx.
// The pointer is valid until the next insertion into the list.
func (l *List[T]) At(idx Index) (*T, error) {
	if !l.Contains(idx) {
		return nil, errors.Wrapf(ErrDeadIndex, "index %d", idx)
	}
	return &l.slots[idx].value, nil
}

// Next returns the index following idx, or None.
func (l *List[T]) Next(idx Index) (Index, error) {
	if !l.Contains(idx) {
		return None, errors.Wrapf(ErrDeadIndex, "index %d", idx)
	}
	return l.slots[idx].next, nil
}

// Prev returns the index preceding idx, or None.
func (l *List[T]) Prev(idx Index) (Index, error) {
	if !l.Contains(idx) {
		return None, errors.Wrapf(ErrDeadIndex, "index %d", idx)
	}
	return l.slots[idx].prev, nil
}

// PushBack appends v and returns its index.
func (l *List[T]) PushBack(v T) Index {
	idx := l.alloc(v)
	l.link(idx, l.tail, None)
	return idx
}

// PushFront prepends v and returns its index.
func (l *List[T]) PushFront(v T) Index {
	idx := l.alloc(v)
	l.link(idx, None, l.head)
	return idx
}

// InsertBefore inserts v immediately before the element at at.
func (l *List[T]) InsertBefore(at Index, v T) (Index, error) {
	if !l.Contains(at) {
		return None, errors.Wrapf(ErrDeadIndex, "insert before %d", at)
	}
	idx := l.alloc(v)
	l.link(idx, l.slots[at].prev, at)
	return idx, nil
}

// InsertAfter inserts v immediately after the element at at.
func (l *List[T]) InsertAfter(at Index, v T) (Index, error) {
	if !l.Contains(at) {
		return None, errors.Wrapf(ErrDeadIndex, "insert after %d", at)
	}
	idx := l.alloc(v)
	l.link(idx, at, l.slots[at].next)
	return idx, nil
}

// Remove unlinks the element at idx and returns its value.
// The slot is recycled by a later insertion.
func (l *List[T]) Remove(idx Index) (T, error) {
	var zero T
	if !l.Contains(idx) {
		return zero, errors.Wrapf(ErrDeadIndex, "remove %d", idx)
	}

	s := &l.slots[idx]
	if s.prev == None {
		l.head = s.next
	} else {
		l.slots[s.prev].next = s.next
	}
	if s.next == None {
		l.tail = s.prev
	} else {
		l.slots[s.next].prev = s.prev
	}

	v := s.value
	s.value = zero
	s.live = false
	s.prev = None
	s.next = l.free
	l.free = idx
	l.count--
	return v, nil
}

// Clear removes every element and releases the slot storage.
func (l *List[T]) Clear() {
	l.slots = nil
	l.head, l.tail, l.free = None, None, None
	l.count = 0
}

// All yields every live element with its index, front to back.
func (l *List[T]) All() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for idx := l.head; idx != None; {
			next := l.slots[idx].next
			if !yield(idx, &l.slots[idx].value) {
				return
			}
			idx = next
		}
	}
}

// Values yields every live element front to back.
func (l *List[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, v := range l.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// After yields the indices strictly after idx. Nothing is yielded for a dead idx.
func (l *List[T]) After(idx Index) iter.Seq[Index] {
	return func(yield func(Index) bool) {
		if !l.Contains(idx) {
			return
		}
		for next := l.slots[idx].next; next != None; next = l.slots[next].next {
			if !yield(next) {
				return
			}
		}
	}
}

// alloc stores v in a free slot, growing the slice when none is free.
func (l *List[T]) alloc(v T) Index {
	l.count++
	if l.free != None {
		idx := l.free
		l.free = l.slots[idx].next
		l.slots[idx] = slot[T]{value: v, live: true}
		return idx
	}
	l.slots = append(l.slots, slot[T]{value: v, live: true})
	return Index(len(l.slots) - 1)
}

// link places idx between prev and next, either of which may be None.
func (l *List[T]) link(idx, prev, next Index) {
	s := &l.slots[idx]
	s.prev = prev
	s.next = next
	if prev == None {
		l.head = idx
	} else {
		l.slots[prev].next = idx
	}
	if next == None {
		l.tail = idx
	} else {
		l.slots[next].prev = idx
	}
}
