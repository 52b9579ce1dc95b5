// Package models provides core data structures for the timeline engine.
package models

import (
	"fmt"
	"time"
)

// ZoomState is the outcome of resolving a zoom percent against a scale curve.
//
// Scale is always MinimumScale + IncrementStep*Increments for the curve that
// produced it. Step is the position on the whole curve
// (Segment*TotalIncrements + Increments) and never decreases as Percent
// grows, while Scale restarts from the minimum at each segment boundary
// because the label span gets finer there.
type ZoomState struct {
	Percent float64 `json:"percent"`
	Scale   float64 `json:"scale"` // pixels per minor tick

	Segment    int `json:"segment"`
	TierIndex  int `json:"tier_index"`
	SpanIndex  int `json:"span_index"` // into the flattened span list, clamped
	Increments int `json:"increments"` // increments above the minimum scale
	Step       int `json:"step"`

	Span          time.Duration `json:"span"`           // time represented by one label
	LabelInterval int           `json:"label_interval"` // label ticks between labels
}

// LabelWidth returns the pixel distance between two labels.
func (z ZoomState) LabelWidth(unitsPerLabelTick int) float64 {
	return float64(z.LabelInterval*unitsPerLabelTick) * z.Scale
}

// PixelsPerSecond returns the effective resolution of the ruler.
func (z ZoomState) PixelsPerSecond(unitsPerLabelTick int) float64 {
	if z.Span <= 0 {
		return 0
	}
	return z.LabelWidth(unitsPerLabelTick) / z.Span.Seconds()
}

// Validate checks that the zoom state can drive a layout.
func (z ZoomState) Validate() error {
	if z.Scale <= 0 {
		return fmt.Errorf("scale must be positive")
	}
	if z.Span <= 0 {
		return fmt.Errorf("span must be positive")
	}
	if z.LabelInterval <= 0 {
		return fmt.Errorf("label interval must be positive")
	}
	return nil
}
