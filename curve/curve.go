// Package curve implements the tiered zoom curve that drives the ruler:
// resolving a 0-100 zoom percent into a discrete pixel scale and label span,
// and picking the best-fit percent for a media duration.
//
// The curve is split into segments of equal percent width. Each segment walks
// through every tier in order; a tier adds Increments steps of IncrementStep
// pixels to the scale while labels are LabelInterval label-ticks apart. When a
// segment ends the scale falls back to MinimumScale and the next, finer group
// of spans takes over.
package curve

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultMinimumScale is the pixel distance between minor ticks at 0%.
	DefaultMinimumScale = 5

	// DefaultIncrementStep is the pixel amount added per curve increment.
	DefaultIncrementStep = 0.5

	// DefaultUnitsPerLabelTick is the number of minor ticks per label tick.
	DefaultUnitsPerLabelTick = 5

	// PercentEpsilon is the smallest zoom change worth a relayout.
	PercentEpsilon = 0.005
)

var (
	// ErrInvalidWidth is returned when a viewport width is not positive.
	ErrInvalidWidth = errors.New("available width must be positive")

	// ErrNoDuration is returned when there is no media duration to fit.
	ErrNoDuration = errors.New("duration must be positive")
)

// Tier is one granularity level of the curve.
type Tier struct {
	Increments    int // scale steps spent in this tier
	LabelInterval int // label ticks between two labels
}

// Curve is the immutable zoom curve configuration.
//
// Spans is the flattened list of label spans ordered coarse to fine; span i
// belongs to tier i % len(Tiers), so its length must be a multiple of the
// tier count.
type Curve struct {
	MinimumScale      float64
	IncrementStep     float64
	UnitsPerLabelTick int
	Tiers             []Tier
	Spans             []time.Duration
}

// DefaultTiers returns the three-tier layout: labels every 4, then 2, then 1
// label ticks, with 10, 15 and 20 scale increments respectively.
func DefaultTiers() []Tier {
	return []Tier{
		{Increments: 10, LabelInterval: 4},
		{Increments: 15, LabelInterval: 2},
		{Increments: 20, LabelInterval: 1},
	}
}

// DefaultSpans returns five segments of three spans, from one hour down to
// one second per label.
func DefaultSpans() []time.Duration {
	return []time.Duration{
		time.Hour, 30 * time.Minute, 15 * time.Minute,
		10 * time.Minute, 5 * time.Minute, 150 * time.Second,
		2 * time.Minute, time.Minute, 30 * time.Second,
		20 * time.Second, 10 * time.Second, 5 * time.Second,
		4 * time.Second, 2 * time.Second, time.Second,
	}
}

// Default returns the standard curve.
func Default() *Curve {
	return &Curve{
		MinimumScale:      DefaultMinimumScale,
		IncrementStep:     DefaultIncrementStep,
		UnitsPerLabelTick: DefaultUnitsPerLabelTick,
		Tiers:             DefaultTiers(),
		Spans:             DefaultSpans(),
	}
}

// New creates a validated Curve.
//
// Example:
//
//	c, err := curve.New(5, 0.5, 5, curve.DefaultTiers(), curve.DefaultSpans())
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(minimumScale, incrementStep float64, unitsPerLabelTick int, tiers []Tier, spans []time.Duration) (*Curve, error) {
	c := &Curve{
		MinimumScale:      minimumScale,
		IncrementStep:     incrementStep,
		UnitsPerLabelTick: unitsPerLabelTick,
		Tiers:             append([]Tier(nil), tiers...),
		Spans:             append([]time.Duration(nil), spans...),
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid curve: %w", err)
	}
	return c, nil
}

// Validate checks that the curve can be resolved.
func (c *Curve) Validate() error {
	var problems []string

	if c.MinimumScale <= 0 {
		problems = append(problems, "minimum scale must be positive")
	}
	if c.IncrementStep <= 0 {
		problems = append(problems, "increment step must be positive")
	}
	if c.UnitsPerLabelTick <= 0 {
		problems = append(problems, "units per label tick must be positive")
	}

	if len(c.Tiers) == 0 {
		problems = append(problems, "at least one tier is required")
	}
	for i, tier := range c.Tiers {
		if tier.Increments <= 0 {
			problems = append(problems, fmt.Sprintf("tier %d: increments must be positive", i+1))
		}
		if tier.LabelInterval <= 0 {
			problems = append(problems, fmt.Sprintf("tier %d: label interval must be positive", i+1))
		}
	}

	if len(c.Spans) == 0 {
		problems = append(problems, "at least one span is required")
	} else if len(c.Tiers) > 0 && len(c.Spans)%len(c.Tiers) != 0 {
		problems = append(problems, fmt.Sprintf("span count %d is not a multiple of tier count %d",
			len(c.Spans), len(c.Tiers)))
	}
	for i, span := range c.Spans {
		if span <= 0 {
			problems = append(problems, fmt.Sprintf("span %d must be positive", i+1))
		} else if i > 0 && span >= c.Spans[i-1] {
			problems = append(problems, fmt.Sprintf("span %d (%v) must be shorter than span %d (%v)",
				i+1, span, i, c.Spans[i-1]))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, ", "))
	}
	return nil
}

// Segments returns the number of equal-width percent bands.
func (c *Curve) Segments() int {
	return len(c.Spans) / len(c.Tiers)
}

// PercentPerSegment returns the percent width of one band.
func (c *Curve) PercentPerSegment() float64 {
	return 100 / float64(c.Segments())
}

// TotalIncrements returns the number of scale steps in one segment.
func (c *Curve) TotalIncrements() int {
	total := 0
	for _, tier := range c.Tiers {
		total += tier.Increments
	}
	return total
}

// PercentPerIncrement returns the percent distance of one scale step.
func (c *Curve) PercentPerIncrement() float64 {
	return c.PercentPerSegment() / float64(c.TotalIncrements())
}

// MaximumScale returns the scale reached at the end of every segment.
func (c *Curve) MaximumScale() float64 {
	return c.ScaleAt(c.TotalIncrements())
}

// ScaleAt returns the scale after the given number of increments.
func (c *Curve) ScaleAt(increments int) float64 {
	return c.MinimumScale + c.IncrementStep*float64(increments)
}

// incrementsBefore sums the increments of the tiers preceding tier.
func (c *Curve) incrementsBefore(tier int) int {
	sum := 0
	for i := 0; i < tier && i < len(c.Tiers); i++ {
		sum += c.Tiers[i].Increments
	}
	return sum
}

// PercentEqual reports whether two zoom percents are close enough that a
// relayout would be a no-op.
func PercentEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= PercentEpsilon
}

func clampPercent(percent float64) float64 {
	switch {
	case percent != percent: // NaN
		return 0
	case percent < 0:
		return 0
	case percent > 100:
		return 100
	}
	return percent
}
