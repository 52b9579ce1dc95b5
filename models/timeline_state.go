package models

import (
	"fmt"
	"strings"
	"time"
)

// TimelineState is the controller's working memory.
//
// Duration and Progress come from the playback collaborator, ZoomPercent from
// user input or the best-fit selection, TimelineWidth is derived from the
// current layout.
type TimelineState struct {
	Duration      time.Duration `json:"duration"`
	Progress      time.Duration `json:"progress"`
	ZoomPercent   float64       `json:"zoom_percent"`
	TimelineWidth float64       `json:"timeline_width"`
}

// Idle reports whether there is no media to lay out.
func (s TimelineState) Idle() bool {
	return s.Duration <= 0
}

// Validate checks the state invariants.
//
// Returns an error if:
//   - Duration is negative
//   - Progress is outside [0, Duration]
//   - ZoomPercent is outside [0, 100]
//   - TimelineWidth is negative
func (s TimelineState) Validate() error {
	var errors []string

	if s.Duration < 0 {
		errors = append(errors, "duration cannot be negative")
	}
	if s.Progress < 0 || s.Progress > s.Duration {
		errors = append(errors, fmt.Sprintf("progress %v outside [0, %v]", s.Progress, s.Duration))
	}
	if s.ZoomPercent < 0 || s.ZoomPercent > 100 {
		errors = append(errors, fmt.Sprintf("zoom percent %.3f outside [0, 100]", s.ZoomPercent))
	}
	if s.TimelineWidth < 0 {
		errors = append(errors, "timeline width cannot be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid timeline state: %s", strings.Join(errors, ", "))
	}
	return nil
}
