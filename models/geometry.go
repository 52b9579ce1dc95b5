package models

import (
	"fmt"
	"time"
)

// TickHeight is the visual tier of a ruler tick.
type TickHeight int

const (
	TickShort  TickHeight = 0 // every minor tick
	TickMedium TickHeight = 1 // every label tick
	TickTall   TickHeight = 2 // ticks carrying a label
)

// String returns the tier name.
func (h TickHeight) String() string {
	switch h {
	case TickShort:
		return "short"
	case TickMedium:
		return "medium"
	case TickTall:
		return "tall"
	default:
		return fmt.Sprintf("TickHeight(%d)", int(h))
	}
}

// Tick is a single ruler mark. Index is 1-based, matching the minor tick count.
type Tick struct {
	Index  int        `json:"index"`
	X      float64    `json:"x"`
	Height TickHeight `json:"height"`
}

// Label is a time label centred on a tall tick.
type Label struct {
	Tick   int           `json:"tick"` // Index of the tall tick it belongs to
	X      float64       `json:"x"`    // horizontal centre
	Left   float64       `json:"left"` // X minus half the label box width
	Offset time.Duration `json:"offset"`
	Text   string        `json:"text"`
}

// Geometry is the complete ruler layout for one zoom state and duration.
//
// TotalWidth includes the trailing margin; ContentWidth is the pixel width of
// the media duration itself and is the one used for time/pixel mapping.
type Geometry struct {
	TotalWidth   float64 `json:"total_width"`
	ContentWidth float64 `json:"content_width"`
	Ticks        []Tick  `json:"ticks"`
	Labels       []Label `json:"labels"`
}

// IsEmpty reports whether the geometry has nothing to draw.
func (g *Geometry) IsEmpty() bool {
	return g == nil || len(g.Ticks) == 0
}

// TickAt returns the tick with the given 1-based index.
func (g *Geometry) TickAt(index int) (Tick, bool) {
	if g == nil || index < 1 || index > len(g.Ticks) {
		return Tick{}, false
	}
	return g.Ticks[index-1], true
}

// Validate checks the ordering invariants of the layout:
// tick X strictly increasing and every label sitting on a tall tick.
func (g *Geometry) Validate() error {
	if g.TotalWidth < 0 || g.ContentWidth < 0 {
		return fmt.Errorf("widths cannot be negative")
	}
	for i := 1; i < len(g.Ticks); i++ {
		if g.Ticks[i].X <= g.Ticks[i-1].X {
			return fmt.Errorf("tick %d at %.2f is not right of tick %d at %.2f",
				g.Ticks[i].Index, g.Ticks[i].X, g.Ticks[i-1].Index, g.Ticks[i-1].X)
		}
	}
	for i, label := range g.Labels {
		tick, ok := g.TickAt(label.Tick)
		if !ok {
			return fmt.Errorf("label %d refers to missing tick %d", i+1, label.Tick)
		}
		if tick.Height != TickTall {
			return fmt.Errorf("label %d sits on a %s tick", i+1, tick.Height)
		}
	}
	return nil
}
