// Package anchor keeps named ranges over a text buffer in place while the
// buffer is edited.
//
// A Set stores its marks in a spaced.RangeList, so an edit costs one scan of
// the marks instead of one update per mark: an insertion widens a single gap,
// a deletion narrows the gaps it overlaps.
//
// Bias decides what happens at exact ties. When text is inserted at an offset
// where a mark bound sits, BiasLeft keeps the bound left of the new text and
// BiasRight lets the text push it right. When a mark is added at an offset
// already holding bounds, BiasLeft places the new bounds ahead of them.
package anchor

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/dshills/spacedlist/internal/engine/spaced"
	"github.com/dshills/spacedlist/internal/logging"
)

// Errors returned by Set operations.
var (
	// ErrNotFound indicates no mark has the given name.
	ErrNotFound = errors.New("mark not found")

	// ErrDuplicate indicates a mark with the given name already exists.
	ErrDuplicate = errors.New("mark already exists")

	// ErrInvalidRange indicates a range whose start lies past its end.
	ErrInvalidRange = spaced.ErrInvalidRange
)

// Bias picks the side of a tie an edit or new mark lands on.
type Bias uint8

const (
	// BiasLeft keeps existing bounds right of new marks and left of inserted text.
	BiasLeft Bias = iota
	// BiasRight keeps existing bounds left of new marks and lets inserted text push them.
	BiasRight
)

// String returns the bias name.
func (b Bias) String() string {
	if b == BiasRight {
		return "right"
	}
	return "left"
}

// ParseBias parses "left" or "right".
func ParseBias(s string) (Bias, error) {
	switch s {
	case "left", "":
		return BiasLeft, nil
	case "right":
		return BiasRight, nil
	}
	return BiasLeft, errors.Newf("unknown bias %q", s)
}

// Mark is a named half-open range [Start, End).
type Mark struct {
	Name  string
	Start uint
	End   uint
}

// Len returns the width of the mark.
func (m Mark) Len() uint {
	return m.End - m.Start
}

// Edit replaces [Start, End) with Inserted units of new text.
type Edit struct {
	Start    uint
	End      uint
	Inserted uint
}

// Option configures a Set.
type Option func(*Set)

// WithBias sets the insertion bias used by Apply.
func WithBias(b Bias) Option {
	return func(s *Set) {
		s.bias = b
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Set) {
		s.log = l
	}
}

// Set tracks named marks across buffer edits.
type Set struct {
	ranges *spaced.RangeList[string]
	names  map[string]spaced.Index
	bias   Bias
	log    *logging.Logger
}

// NewSet creates an empty mark set.
func NewSet(opts ...Option) *Set {
	s := &Set{
		ranges: spaced.NewRangeList[string](),
		names:  make(map[string]spaced.Index),
		bias:   BiasLeft,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.OrNop(s.log).WithComponent("anchor")
	return s
}

// Len returns the number of marks.
func (s *Set) Len() int {
	return len(s.names)
}

// Extent returns the offset of the last mark bound.
func (s *Set) Extent() uint {
	return s.ranges.Length()
}

// Bias returns the bias used by Apply.
func (s *Set) Bias() Bias {
	return s.bias
}

// Ranges exposes the underlying range list for read access.
func (s *Set) Ranges() *spaced.RangeList[string] {
	return s.ranges
}

// Add creates the mark name over [start, end).
func (s *Set) Add(name string, start, end uint, bias Bias) error {
	if _, ok := s.names[name]; ok {
		return errors.Wrapf(ErrDuplicate, "%q", name)
	}

	var (
		idx spaced.Index
		err error
	)
	if bias == BiasLeft {
		idx, _, err = s.ranges.InsertBefore(start, end, name)
	} else {
		idx, _, err = s.ranges.InsertAfter(start, end, name)
	}
	if err != nil {
		return errors.Wrapf(err, "adding %q", name)
	}
	s.names[name] = idx
	s.log.Debug("added %q at [%d, %d) bias %s", name, start, end, bias)
	return nil
}

// Remove deletes the mark name.
func (s *Set) Remove(name string) error {
	idx, ok := s.names[name]
	if !ok {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}
	if _, err := s.ranges.Remove(idx); err != nil {
		return errors.Wrapf(err, "removing %q", name)
	}
	delete(s.names, name)
	s.log.Debug("removed %q", name)
	return nil
}

// Get returns the current extent of the mark name.
func (s *Set) Get(name string) (Mark, error) {
	idx, ok := s.names[name]
	if !ok {
		return Mark{}, errors.Wrapf(ErrNotFound, "%q", name)
	}
	start, end, err := s.ranges.Span(idx)
	if err != nil {
		return Mark{}, err
	}
	return Mark{Name: name, Start: start, End: end}, nil
}

// Marks returns every mark ordered by start bound.
func (s *Set) Marks() []Mark {
	marks := make([]Mark, 0, s.Len())
	for r := range s.ranges.Ranges() {
		marks = append(marks, Mark{Name: r.Value, Start: r.Start, End: r.End})
	}
	return marks
}

// Names returns the mark names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Insert records n units of text inserted at offset.
func (s *Set) Insert(offset, n uint, bias Bias) error {
	if n == 0 || s.ranges.IsEmpty() {
		return nil
	}
	var err error
	if bias == BiasLeft {
		err = s.ranges.InflateAfter(offset, n)
	} else {
		err = s.ranges.InflateBefore(offset, n)
	}
	if err != nil {
		return errors.Wrapf(err, "insert %d at %d", n, offset)
	}
	s.log.Debug("insert %d at %d bias %s", n, offset, bias)
	return nil
}

// Delete records the removal of [start, end). Bounds inside the span collapse
// to start; bounds past it move left by its width.
func (s *Set) Delete(start, end uint) error {
	if start > end {
		return errors.Wrapf(ErrInvalidRange, "delete [%d, %d)", start, end)
	}
	if s.ranges.IsEmpty() {
		return nil
	}

	remaining := end - start
	for remaining > 0 && start < s.ranges.Length() {
		next, ok := s.nextBound(start)
		if !ok {
			break
		}
		cut := min(next-start, remaining)
		if err := s.ranges.DeflateAfter(start, cut); err != nil {
			return errors.Wrapf(err, "delete [%d, %d)", start, end)
		}
		remaining -= cut
	}
	s.log.Debug("delete [%d, %d)", start, end)
	return nil
}

// nextBound returns the position of the first bound past offset.
func (s *Set) nextBound(offset uint) (uint, bool) {
	var pos uint
	for _, e := range s.ranges.Bounds() {
		pos += e.Spacing
		if pos > offset {
			return pos, true
		}
	}
	return 0, false
}

// Apply records a replacement: the deletion of [Start, End) followed by an
// insertion at Start, using the set's bias.
func (s *Set) Apply(e Edit) error {
	if err := s.Delete(e.Start, e.End); err != nil {
		return err
	}
	return s.Insert(e.Start, e.Inserted, s.bias)
}

// ApplyAll records edits in the order they were made.
func (s *Set) ApplyAll(edits []Edit) error {
	for i, e := range edits {
		if err := s.Apply(e); err != nil {
			return errors.Wrapf(err, "edit %d", i)
		}
	}
	return nil
}
