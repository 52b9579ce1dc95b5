package curve

import (
	"math"

	"timeline/models"
)

// Resolve maps a zoom percent onto the curve.
//
// The percent selects a segment and a remainder inside it. Tiers claim
// consecutive slices of the segment proportional to their increments; the
// first tier whose cumulative slice reaches the remainder wins, and the
// remainder's position inside that slice picks the number of increments.
// Percents outside [0, 100] are clamped; 100 resolves to the end of the last
// segment.
func (c *Curve) Resolve(percent float64) models.ZoomState {
	percent = clampPercent(percent)

	segments := c.Segments()
	perSegment := c.PercentPerSegment()
	total := c.TotalIncrements()

	remainder := math.Mod(percent, perSegment)
	segment := int(math.Round((percent - remainder) / perSegment))
	// A plain floor would put 100 in a segment past the end, back at the
	// minimum scale. Keep it on the final increment of the last segment.
	if segment >= segments {
		segment = segments - 1
		remainder = perSegment
	}

	tierIndex := len(c.Tiers) - 1
	inTier := c.Tiers[tierIndex].Increments
	lastRatio := 0.0
	cumulative := 0
	for i, tier := range c.Tiers {
		cumulative += tier.Increments
		ratio := float64(cumulative) / float64(total) * perSegment
		if remainder > ratio {
			lastRatio = ratio
			continue
		}

		tierIndex = i
		inTier = int(math.Round((remainder - lastRatio) / (ratio - lastRatio) * float64(tier.Increments)))
		break
	}

	increments := c.incrementsBefore(tierIndex) + inTier
	spanIndex := segment*len(c.Tiers) + tierIndex
	if spanIndex > len(c.Spans)-1 {
		spanIndex = len(c.Spans) - 1
	}

	return models.ZoomState{
		Percent:       percent,
		Scale:         c.ScaleAt(increments),
		Segment:       segment,
		TierIndex:     tierIndex,
		SpanIndex:     spanIndex,
		Increments:    increments,
		Step:          segment*total + increments,
		Span:          c.Spans[spanIndex],
		LabelInterval: c.Tiers[tierIndex].LabelInterval,
	}
}
