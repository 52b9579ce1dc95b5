// Package ruler lays out the ticks and labels of the time ruler for a
// resolved zoom state.
package ruler

import (
	"math"
	"time"

	"timeline/curve"
	"timeline/internal/timecode"
	"timeline/models"
)

const (
	// DefaultLineOffset aligns one pixel wide ticks on the pixel grid.
	DefaultLineOffset = 0.5

	// DefaultTrailingMargin is the space reserved after the last tick.
	DefaultTrailingMargin = 40

	// DefaultLabelWidth is the width of the box a label is centred in.
	DefaultLabelWidth = 60
)

// Builder produces ruler geometry. The zero value is not usable; create one
// with NewBuilder.
type Builder struct {
	Curve          *curve.Curve
	LineOffset     float64
	TrailingMargin float64
	LabelWidth     float64
}

// NewBuilder returns a Builder for c with the default offsets.
func NewBuilder(c *curve.Curve) *Builder {
	return &Builder{
		Curve:          c,
		LineOffset:     DefaultLineOffset,
		TrailingMargin: DefaultTrailingMargin,
		LabelWidth:     DefaultLabelWidth,
	}
}

// Build returns the layout of a ruler covering duration at the given zoom.
//
// The ruler is rounded up to a whole number of labels. TotalWidth covers all
// of those ticks plus the line offset and trailing margin; ContentWidth covers
// only the duration itself. A zero duration, or a zoom state that cannot drive
// a layout, yields empty geometry.
func (b *Builder) Build(zoom models.ZoomState, duration time.Duration) *models.Geometry {
	if duration <= 0 || zoom.Validate() != nil {
		return &models.Geometry{}
	}

	units := b.Curve.UnitsPerLabelTick
	ticksPerLabel := units * zoom.LabelInterval
	numOfLabels := int((duration + zoom.Span - 1) / zoom.Span)
	numOfLines := numOfLabels * ticksPerLabel

	geom := &models.Geometry{
		TotalWidth:   float64(numOfLines)*zoom.Scale + b.LineOffset + b.TrailingMargin,
		ContentWidth: duration.Seconds()/zoom.Span.Seconds()*zoom.LabelWidth(units) + b.LineOffset,
		Ticks:        make([]models.Tick, 0, numOfLines),
		Labels:       make([]models.Label, 0, numOfLabels),
	}

	for i := 1; i <= numOfLines; i++ {
		geom.Ticks = append(geom.Ticks, models.Tick{
			Index:  i,
			X:      math.Round(float64(i)*zoom.Scale) + b.LineOffset,
			Height: tickHeight(i, units, zoom.LabelInterval),
		})
	}

	for i := 1; i <= numOfLabels; i++ {
		index := i * ticksPerLabel
		// Snap to the tall tick rather than the unrounded label centre.
		x := geom.Ticks[index-1].X
		offset := time.Duration(i) * zoom.Span
		geom.Labels = append(geom.Labels, models.Label{
			Tick:   index,
			X:      x,
			Left:   x - b.LabelWidth/2,
			Offset: offset,
			Text:   timecode.FormatLabel(offset),
		})
	}

	return geom
}

// tickHeight returns the tier of the i-th minor tick.
func tickHeight(i, unitsPerLabelTick, labelInterval int) models.TickHeight {
	switch {
	case i%(unitsPerLabelTick*labelInterval) == 0:
		return models.TickTall
	case i%unitsPerLabelTick == 0:
		return models.TickMedium
	default:
		return models.TickShort
	}
}
