package render

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// Span is one labelled half-open range [Start, End).
type Span struct {
	Start uint
	End   uint
	Label string
}

// Ruler draws spans against a position axis.
type Ruler struct {
	// Width is the number of columns. Zero or more than the screen width
	// means the screen width.
	Width int
	// Scale is the number of positions per column. Zero means 1.
	Scale uint
}

var (
	axisStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	spanStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	labelStyle = tcell.StyleDefault
	clipStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

func (r Ruler) scale() uint {
	if r.Scale == 0 {
		return 1
	}
	return r.Scale
}

func (r Ruler) columns(screenWidth int) int {
	if r.Width <= 0 || r.Width > screenWidth {
		return screenWidth
	}
	return r.Width
}

func (r Ruler) col(pos uint) int {
	return int(pos / r.scale())
}

// tick reports whether column x covers a multiple of 10 and returns it.
func (r Ruler) tick(x int) (uint, bool) {
	lo := uint(x) * r.scale()
	mark := (lo + 9) / 10 * 10
	return mark, mark < lo+r.scale()
}

// Draw paints the axis and spans from the top-left corner of s and returns
// the number of rows used.
func (r Ruler) Draw(s tcell.Screen, spans []Span) int {
	sw, sh := s.Size()
	width := r.columns(sw)
	if width <= 0 || sh <= 0 {
		return 0
	}

	r.drawAxis(s, width)
	if sh == 1 {
		return 1
	}
	r.drawTickLabels(s, 1, width)

	rows := 2
	for _, sp := range spans {
		if rows >= sh {
			break
		}
		r.drawSpan(s, rows, width, sp)
		rows++
	}
	return rows
}

func (r Ruler) drawAxis(s tcell.Screen, width int) {
	for x := range width {
		ch := '-'
		if _, ok := r.tick(x); ok {
			ch = '+'
		}
		s.SetContent(x, 0, ch, nil, axisStyle)
	}
}

// drawTickLabels writes the tick positions that fit without touching the
// previous label.
func (r Ruler) drawTickLabels(s tcell.Screen, y, width int) {
	free := 0
	for x := range width {
		mark, ok := r.tick(x)
		if !ok || x < free {
			continue
		}
		text := strconv.FormatUint(uint64(mark), 10)
		if x+len(text) > width {
			break
		}
		putString(s, x, y, width, text, axisStyle)
		free = x + len(text) + 1
	}
}

func (r Ruler) drawSpan(s tcell.Screen, y, width int, sp Span) {
	start, end := r.col(sp.Start), r.col(sp.End)
	if start >= width {
		s.SetContent(width-1, y, '>', nil, clipStyle)
		return
	}

	if start == end {
		s.SetContent(start, y, '|', nil, spanStyle)
	} else {
		s.SetContent(start, y, '[', nil, spanStyle)
		for x := start + 1; x < end && x < width; x++ {
			s.SetContent(x, y, '=', nil, spanStyle)
		}
		if end < width {
			s.SetContent(end, y, ')', nil, spanStyle)
		}
	}

	if end >= width {
		s.SetContent(width-1, y, '>', nil, clipStyle)
		return
	}
	putString(s, end+2, y, width, sp.Label, labelStyle)
}

// putString writes text at (x, y), clipped at width.
func putString(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, ch := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, ch, nil, style)
		x++
	}
}
