// Package position converts between media time and pixel offsets along the
// ruler content width.
//
// All functions report ok=false when there is no duration or no content to
// map against; callers treat that as "no position" and leave the seeker where
// it is.
package position

import (
	"errors"
	"fmt"
	"time"
)

// ErrNegativeWidth is returned when a collaborator reports a negative seeker
// width.
var ErrNegativeWidth = errors.New("width cannot be negative")

// TimeToOffset returns the pixel offset of t on a ruler whose content width
// represents duration.
func TimeToOffset(t, duration time.Duration, contentWidth float64) (float64, bool) {
	if duration <= 0 || contentWidth <= 0 {
		return 0, false
	}
	return float64(t) / float64(duration) * contentWidth, true
}

// OffsetToTime returns the media time at pixel offset x.
func OffsetToTime(x float64, duration time.Duration, contentWidth float64) (time.Duration, bool) {
	if duration <= 0 || contentWidth <= 0 {
		return 0, false
	}
	return time.Duration(x / contentWidth * float64(duration)), true
}

// SeekerLeft returns the left edge for a seeker of seekerWidth pixels
// centred on t.
func SeekerLeft(t, duration time.Duration, contentWidth, seekerWidth float64) (float64, bool, error) {
	if seekerWidth < 0 {
		return 0, false, fmt.Errorf("seeker: %w: %.2f", ErrNegativeWidth, seekerWidth)
	}
	offset, ok := TimeToOffset(t, duration, contentWidth)
	if !ok {
		return 0, false, nil
	}
	return offset - seekerWidth/2, true, nil
}

// DragTime returns the media time under the centre of a seeker dropped at
// left, clamped to [0, duration].
func DragTime(left, seekerWidth float64, duration time.Duration, contentWidth float64) (time.Duration, bool, error) {
	if seekerWidth < 0 {
		return 0, false, fmt.Errorf("seeker: %w: %.2f", ErrNegativeWidth, seekerWidth)
	}
	t, ok := OffsetToTime(left+seekerWidth/2, duration, contentWidth)
	if !ok {
		return 0, false, nil
	}
	return Clamp(t, duration), true, nil
}

// Clamp limits t to [0, duration]. Without a duration every time clamps to 0.
func Clamp(t, duration time.Duration) time.Duration {
	if t < 0 || duration <= 0 {
		return 0
	}
	if t > duration {
		return duration
	}
	return t
}
