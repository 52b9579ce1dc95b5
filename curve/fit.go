package curve

import (
	"fmt"
	"math"
	"time"
)

// unitRange is the number of labels that fit the viewport at the first and
// last increment of a tier.
type unitRange struct {
	first float64
	last  float64
}

// InitialPercent returns the zoom percent at which a ruler for duration best
// fills availableWidth pixels.
//
// Spans are scanned coarse to fine. For each span the tier it belongs to
// gives a duration range [spanEnd, spanStart] that the span can display
// across the viewport while the tier's increments vary. The first range
// containing duration wins and the increment whose width lands closest to the
// viewport is converted back into a percent. Ties go to the smallest
// increment. Durations that fall between ranges, or below the finest one,
// saturate one increment below the current segment boundary.
//
// Returns ErrInvalidWidth for a non-positive width and ErrNoDuration for a
// non-positive duration; callers treat the latter as idle.
func (c *Curve) InitialPercent(duration time.Duration, availableWidth float64) (float64, error) {
	if availableWidth <= 0 || math.IsNaN(availableWidth) || math.IsInf(availableWidth, 0) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidWidth, availableWidth)
	}
	if duration <= 0 {
		return 0, ErrNoDuration
	}

	target := duration.Seconds()
	ranges := c.unitRanges(availableWidth)
	perSegment := c.PercentPerSegment()
	total := float64(c.TotalIncrements())
	saturated := func(covered float64) float64 {
		return clampPercent(covered - 1/total*perSegment)
	}

	covered := 0.0
	for i, span := range c.Spans {
		tierIndex := i % len(c.Tiers)
		r := ranges[tierIndex]
		spanStart := span.Seconds() * r.first
		spanEnd := span.Seconds() * r.last

		if spanStart >= target && spanEnd <= target {
			k := c.closestIncrement(tierIndex, span, target, availableWidth)
			return clampPercent(covered + float64(k)/total*perSegment), nil
		}
		if spanStart <= target && spanEnd <= target {
			return saturated(covered), nil
		}

		if tierIndex == len(c.Tiers)-1 {
			covered += perSegment
		}
	}
	return saturated(covered), nil
}

// unitRanges computes, per tier, how many labels fit the viewport at the
// tier's first and last increment.
func (c *Curve) unitRanges(availableWidth float64) []unitRange {
	ranges := make([]unitRange, len(c.Tiers))
	for i, tier := range c.Tiers {
		start := c.incrementsBefore(i)
		ranges[i] = unitRange{
			first: c.unitsAt(availableWidth, start, tier.LabelInterval),
			last:  c.unitsAt(availableWidth, start+tier.Increments, tier.LabelInterval),
		}
	}
	return ranges
}

// unitsAt returns how many labels fit the viewport at the given increment.
func (c *Curve) unitsAt(availableWidth float64, increments, labelInterval int) float64 {
	return availableWidth / (c.ScaleAt(increments) * float64(labelInterval*c.UnitsPerLabelTick))
}

// closestIncrement scans every increment of the tier and returns the one
// whose viewport-wide duration is nearest to target. The first minimum wins.
func (c *Curve) closestIncrement(tierIndex int, span time.Duration, target, availableWidth float64) int {
	start := c.incrementsBefore(tierIndex)
	end := start + c.Tiers[tierIndex].Increments
	labelInterval := c.Tiers[tierIndex].LabelInterval

	best := math.Inf(1)
	result := start
	for k := start; k <= end; k++ {
		shown := c.unitsAt(availableWidth, k, labelInterval) * span.Seconds()
		if diff := math.Abs(shown - target); diff < best {
			best = diff
			result = k
		}
	}
	return result
}
