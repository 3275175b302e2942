package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/spacedlist/internal/logging"
)

// View shows a ruler on an initialized screen until a key is pressed.
type View struct {
	screen tcell.Screen
	ruler  Ruler
	log    *logging.Logger
	spans  []Span
}

// NewView creates a view over screen. The caller owns Init and Fini.
func NewView(screen tcell.Screen, ruler Ruler, log *logging.Logger) *View {
	return &View{
		screen: screen,
		ruler:  ruler,
		log:    logging.OrNop(log).WithComponent("render"),
	}
}

// Update replaces the displayed spans. Safe to call from any goroutine while
// Run is active.
func (v *View) Update(spans []Span) error {
	return v.screen.PostEvent(tcell.NewEventInterrupt(spans))
}

// Run draws spans and processes events until a key is pressed or the screen
// is finalized.
func (v *View) Run(spans []Span) {
	v.spans = spans
	v.redraw()

	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			v.log.Debug("key %s, closing view", ev.Name())
			return
		case *tcell.EventResize:
			v.screen.Sync()
			v.redraw()
		case *tcell.EventInterrupt:
			if spans, ok := ev.Data().([]Span); ok {
				v.spans = spans
				v.redraw()
			}
		}
	}
}

func (v *View) redraw() {
	v.screen.Clear()
	rows := v.ruler.Draw(v.screen, v.spans)
	v.screen.Show()
	v.log.Debug("drew %d spans in %d rows", len(v.spans), rows)
}
