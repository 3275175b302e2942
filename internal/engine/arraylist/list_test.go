package arraylist

import (
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values[T any](l *List[T]) []T {
	var out []T
	for v := range l.Values() {
		out = append(out, *v)
	}
	return out
}

func TestPushBackAndFront(t *testing.T) {
	l := New[string]()
	assert.True(t, l.IsEmpty())
	assert.Equal(t, None, l.Front())
	assert.Equal(t, None, l.Back())

	b := l.PushBack("b")
	a := l.PushFront("a")
	c := l.PushBack("c")

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, a, l.Front())
	assert.Equal(t, c, l.Back())
	assert.Equal(t, []string{"a", "b", "c"}, values(l))

	next, err := l.Next(a)
	require.NoError(t, err)
	assert.Equal(t, b, next)

	prev, err := l.Prev(a)
	require.NoError(t, err)
	assert.Equal(t, None, prev)
}

func TestInsertBeforeAfter(t *testing.T) {
	l := New[int]()
	one := l.PushBack(1)
	four := l.PushBack(4)

	_, err := l.InsertAfter(one, 2)
	require.NoError(t, err)
	_, err = l.InsertBefore(four, 3)
	require.NoError(t, err)
	_, err = l.InsertAfter(four, 5)
	require.NoError(t, err)
	_, err = l.InsertBefore(one, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, values(l))
	assert.Equal(t, 6, l.Len())
}

func TestIndicesStableAcrossMutation(t *testing.T) {
	l := New[string]()
	a := l.PushBack("a")
	b := l.PushBack("b")
	c := l.PushBack("c")

	_, err := l.InsertBefore(b, "x")
	require.NoError(t, err)
	_, err = l.Remove(a)
	require.NoError(t, err)

	v, err := l.At(b)
	require.NoError(t, err)
	assert.Equal(t, "b", *v)
	v, err = l.At(c)
	require.NoError(t, err)
	assert.Equal(t, "c", *v)
}

func TestRemoveRecyclesSlot(t *testing.T) {
	l := New[string]()
	l.PushBack("a")
	b := l.PushBack("b")
	l.PushBack("c")

	got, err := l.Remove(b)
	require.NoError(t, err)
	assert.Equal(t, "b", got)
	assert.False(t, l.Contains(b))

	d := l.PushBack("d")
	assert.Equal(t, b, d, "freed slot should be reused")
	assert.Equal(t, []string{"a", "c", "d"}, values(l))
}

func TestRemoveHeadAndTail(t *testing.T) {
	l := New[int]()
	a := l.PushBack(1)
	b := l.PushBack(2)
	c := l.PushBack(3)

	_, err := l.Remove(a)
	require.NoError(t, err)
	assert.Equal(t, b, l.Front())

	_, err = l.Remove(c)
	require.NoError(t, err)
	assert.Equal(t, b, l.Back())

	_, err = l.Remove(b)
	require.NoError(t, err)
	assert.True(t, l.IsEmpty())
	assert.Equal(t, None, l.Front())
	assert.Equal(t, None, l.Back())
}

func TestDeadIndex(t *testing.T) {
	l := New[int]()
	a := l.PushBack(1)
	_, err := l.Remove(a)
	require.NoError(t, err)

	tests := []struct {
		name string
		fn   func() error
	}{
		{"remove twice", func() error { _, err := l.Remove(a); return err }},
		{"at", func() error { _, err := l.At(a); return err }},
		{"next", func() error { _, err := l.Next(a); return err }},
		{"prev", func() error { _, err := l.Prev(a); return err }},
		{"insert before", func() error { _, err := l.InsertBefore(a, 2); return err }},
		{"insert after", func() error { _, err := l.InsertAfter(a, 2); return err }},
		{"negative", func() error { _, err := l.At(None); return err }},
		{"out of range", func() error { _, err := l.At(42); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDeadIndex))
		})
	}
	assert.True(t, l.IsEmpty())
}

func TestAfter(t *testing.T) {
	l := New[int]()
	a := l.PushBack(1)
	b := l.PushBack(2)
	c := l.PushBack(3)

	assert.Equal(t, []Index{b, c}, slices.Collect(l.After(a)))
	assert.Empty(t, slices.Collect(l.After(c)))

	_, err := l.Remove(b)
	require.NoError(t, err)
	assert.Empty(t, slices.Collect(l.After(b)))
	assert.Equal(t, []Index{c}, slices.Collect(l.After(a)))
}

func TestAllStopsEarly(t *testing.T) {
	l := New[int]()
	for i := range 10 {
		l.PushBack(i)
	}
	var seen []int
	for _, v := range l.All() {
		seen = append(seen, *v)
		if *v == 3 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
}

func TestAllowsRemovalDuringIteration(t *testing.T) {
	l := New[int]()
	for i := range 6 {
		l.PushBack(i)
	}
	for idx, v := range l.All() {
		if *v%2 == 0 {
			_, err := l.Remove(idx)
			require.NoError(t, err)
		}
	}
	assert.Equal(t, []int{1, 3, 5}, values(l))
}

func TestClear(t *testing.T) {
	l := New[int]()
	a := l.PushBack(1)
	l.PushBack(2)
	l.Clear()

	assert.True(t, l.IsEmpty())
	assert.False(t, l.Contains(a))
	assert.Empty(t, values(l))

	l.PushBack(7)
	assert.Equal(t, []int{7}, values(l))
}
