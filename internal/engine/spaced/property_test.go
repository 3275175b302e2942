package spaced

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/btree"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// modelItem is one entry of the reference model: an index at an explicit
// absolute position.
type modelItem struct {
	pos uint
	idx Index
}

func lessItem(a, b modelItem) bool {
	if a.pos != b.pos {
		return a.pos < b.pos
	}
	return a.idx < b.idx
}

// model tracks absolute positions directly in a btree ordered by position.
type model struct {
	tree *btree.BTreeG[modelItem]
	pos  map[Index]uint
}

func newModel() *model {
	return &model{tree: btree.NewG(8, lessItem), pos: make(map[Index]uint)}
}

func (m *model) length() uint {
	if last, ok := m.tree.Max(); ok {
		return last.pos
	}
	return 0
}

func (m *model) add(idx Index, pos uint) {
	m.tree.ReplaceOrInsert(modelItem{pos, idx})
	m.pos[idx] = pos
}

func (m *model) remove(idx Index) {
	m.tree.Delete(modelItem{m.pos[idx], idx})
	delete(m.pos, idx)
}

// shift moves every item at or past from by delta, which may be negative.
func (m *model) shift(from uint, delta int) {
	var moved []modelItem
	m.tree.AscendGreaterOrEqual(modelItem{pos: from, idx: None}, func(it modelItem) bool {
		moved = append(moved, it)
		return true
	})
	for _, it := range moved {
		m.tree.Delete(it)
	}
	for _, it := range moved {
		it.pos = uint(int(it.pos) + delta)
		m.tree.ReplaceOrInsert(it)
		m.pos[it.idx] = it.pos
	}
}

// gapAt returns the smallest position at or past from and the distance to
// the nearest position below it.
func (m *model) gapAt(from uint) (target, gap uint, ok bool) {
	m.tree.AscendGreaterOrEqual(modelItem{pos: from, idx: None}, func(it modelItem) bool {
		target, ok = it.pos, true
		return false
	})
	if !ok {
		return 0, 0, false
	}
	var below uint
	m.tree.DescendLessOrEqual(modelItem{pos: target, idx: None}, func(it modelItem) bool {
		if it.pos < target {
			below = it.pos
			return false
		}
		return true
	})
	return target, target - below, true
}

// agrees reports whether l matches the model and keeps its invariants.
func (m *model) agrees(l *List[int]) error {
	if err := l.Check(); err != nil {
		return err
	}
	if l.Length() != m.length() {
		return errors.Newf("length %d, model %d", l.Length(), m.length())
	}
	if l.Len() != m.tree.Len() {
		return errors.Newf("len %d, model %d", l.Len(), m.tree.Len())
	}
	var prev uint
	for idx, pos := range l.Positions() {
		if pos < prev {
			return errors.Newf("position %d of %d follows %d", pos, idx, prev)
		}
		if want := m.pos[idx]; pos != want {
			return errors.Newf("index %d at %d, model %d", idx, pos, want)
		}
		prev = pos
	}
	return nil
}

// run applies an operation script to a list and the model. Each operation
// consumes three numbers: opcode, position, amount.
func run(script []uint) error {
	l := New[int]()
	m := newModel()
	var live []Index

	for i := 0; i+2 < len(script); i += 3 {
		op, p, n := script[i]%8, script[i+1], script[i+2]
		switch op {
		case 0:
			idx := l.Push(n, i)
			m.add(idx, m.length()+n)
			live = append(live, idx)
		case 1, 2:
			before := l.Length()
			var idx Index
			if op == 1 {
				idx = l.InsertAfter(p, i)
			} else {
				idx = l.InsertBefore(p, i)
			}
			if p <= before && l.Length() != before {
				return errors.Newf("insert at %d changed length %d to %d", p, before, l.Length())
			}
			m.add(idx, p)
			live = append(live, idx)
		case 3:
			if len(live) == 0 {
				continue
			}
			k := int(p) % len(live)
			if _, err := l.Remove(live[k]); err != nil {
				return err
			}
			m.remove(live[k])
			live = append(live[:k], live[k+1:]...)
		case 4, 5, 6, 7:
			after := op%2 == 0
			inflate := op < 6
			err := adjust(l, after, inflate, p, n)
			if l.IsEmpty() {
				if !errors.Is(err, ErrEmptyList) {
					return errors.Newf("adjusting empty list: %v", err)
				}
				continue
			}
			from := p + 1
			if !after {
				if p == 0 || p > m.length() {
					from = m.length() + 1
				} else {
					from = p
				}
			}
			target, gap, ok := m.gapAt(from)
			switch {
			case !ok:
				if err != nil {
					return errors.Wrap(err, "out of range adjustment")
				}
			case inflate:
				if err != nil {
					return err
				}
				m.shift(target, int(n))
			case n > gap:
				if !errors.Is(err, ErrUnderflow) {
					return errors.Newf("deflate %d of gap %d: %v", n, gap, err)
				}
			default:
				if err != nil {
					return err
				}
				m.shift(target, -int(n))
			}
		}
		if err := m.agrees(l); err != nil {
			return errors.Wrapf(err, "after op %d", i/3)
		}
	}
	return nil
}

func adjust(l *List[int], after, inflate bool, p, n uint) error {
	switch {
	case after && inflate:
		return l.InflateAfter(p, n)
	case after:
		return l.DeflateAfter(p, n)
	case inflate:
		return l.InflateBefore(p, n)
	default:
		return l.DeflateBefore(p, n)
	}
}

func TestListMatchesModel(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	parameters.MaxSize = 90
	properties := gopter.NewProperties(parameters)

	properties.Property("positions match an explicit model", prop.ForAll(
		func(script []uint) bool {
			if err := run(script); err != nil {
				t.Log(err)
				return false
			}
			return true
		},
		gen.SliceOf(gen.UIntRange(0, 40)),
	))

	properties.TestingRun(t)
}

func TestInsertPositionRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	build := func(gaps []uint) *List[int] {
		l := New[int]()
		for i, g := range gaps {
			l.Push(g, i)
		}
		return l
	}

	for name, before := range map[string]bool{"after": false, "before": true} {
		properties.Property("insert "+name+" lands at its position", prop.ForAll(
			func(gaps []uint, p uint) bool {
				l := build(gaps)
				length := l.Length()
				if length > 0 {
					p %= length + 1
				}
				var idx Index
				if before {
					idx = l.InsertBefore(p, -1)
				} else {
					idx = l.InsertAfter(p, -1)
				}
				pos, err := l.Position(idx)
				return err == nil && pos == p && l.Length() == max(length, p)
			},
			gen.SliceOf(gen.UIntRange(0, 20)),
			gen.UIntRange(0, 500),
		))
	}

	properties.TestingRun(t)
}

func TestRangePairingProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("ranges stay paired", prop.ForAll(
		func(script []uint) bool {
			if err := runRanges(script); err != nil {
				t.Log(err)
				return false
			}
			return true
		},
		gen.SliceOf(gen.UIntRange(0, 30)),
	))

	properties.TestingRun(t)
}

// runRanges applies an operation script to a range list, checking pairing
// after every step.
func runRanges(script []uint) error {
	r := NewRangeList[int]()
	var live []Index
	for i := 0; i+2 < len(script); i += 3 {
		op, a, b := script[i]%5, script[i+1], script[i+2]
		start, end := min(a, b), max(a, b)
		switch op {
		case 0:
			s, _ := r.Push(a, b, i)
			live = append(live, s)
		case 1, 2:
			var (
				s, e Index
				err  error
			)
			if op == 1 {
				s, e, err = r.InsertAfter(start, end, i)
			} else {
				s, e, err = r.InsertBefore(start, end, i)
			}
			if err != nil {
				return err
			}
			gotStart, gotEnd, err := r.Span(e)
			if err != nil || gotStart != start || gotEnd != end {
				return errors.Newf("range [%d,%d) stored as [%d,%d): %v", start, end, gotStart, gotEnd, err)
			}
			live = append(live, s)
		case 3:
			if len(live) == 0 {
				continue
			}
			k := int(a) % len(live)
			idx := live[k]
			if b%2 == 1 {
				_, idx, _ = r.ends(idx)
			}
			before := r.bounds.Len()
			if _, err := r.Remove(idx); err != nil {
				return err
			}
			if r.bounds.Len() != before-2 {
				return errors.Newf("removal dropped %d bounds", before-r.bounds.Len())
			}
			live = append(live[:k], live[k+1:]...)
		case 4:
			if r.IsEmpty() {
				continue
			}
			if err := r.InflateAfter(a, b); err != nil {
				return err
			}
		}
		if err := r.Check(); err != nil {
			return err
		}
		if r.Len() != len(live) {
			return errors.Newf("%d ranges, %d live", r.Len(), len(live))
		}
	}
	return nil
}
