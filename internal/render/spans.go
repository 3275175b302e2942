package render

import (
	"github.com/dshills/spacedlist/internal/engine/anchor"
	"github.com/dshills/spacedlist/internal/engine/spaced"
)

// FromRanges returns one span per range, ordered by start.
func FromRanges[T any](r *spaced.RangeList[T], label func(T) string) []Span {
	spans := make([]Span, 0, r.Len())
	for rg := range r.Ranges() {
		spans = append(spans, Span{Start: rg.Start, End: rg.End, Label: label(rg.Value)})
	}
	return spans
}

// FromList returns a zero-width span at every entry position.
func FromList[T any](l *spaced.List[T], label func(T) string) []Span {
	spans := make([]Span, 0, l.Len())
	var pos uint
	for _, e := range l.All() {
		pos += e.Spacing
		spans = append(spans, Span{Start: pos, End: pos, Label: label(e.Value)})
	}
	return spans
}

// FromMarks returns one span per mark.
func FromMarks(marks []anchor.Mark) []Span {
	spans := make([]Span, len(marks))
	for i, m := range marks {
		spans[i] = Span{Start: m.Start, End: m.End, Label: m.Name}
	}
	return spans
}
