package models

import (
	"fmt"
	"time"
)

// PlaybackStatus holds the latest position reported by an external player.
type PlaybackStatus struct {
	Position time.Duration // Current playback position
	Duration time.Duration // Media duration, zero when the player did not report it
	Percent  float64       // Position as a percentage of Duration (0-100)

	State     PlaybackState
	UpdatedAt time.Time
}

// PlaybackState represents what the player is doing.
type PlaybackState string

const (
	PlaybackStateUnknown PlaybackState = "unknown" // Nothing parsed yet
	PlaybackStatePlaying PlaybackState = "playing" // Position is advancing
	PlaybackStatePaused  PlaybackState = "paused"  // Player reported a pause
	PlaybackStateEnded   PlaybackState = "ended"   // Position reached the end
)

// StatusCallback receives status updates while player output is streamed.
type StatusCallback func(status *PlaybackStatus)

// NewPlaybackStatus creates an empty status.
func NewPlaybackStatus() *PlaybackStatus {
	return &PlaybackStatus{
		State:     PlaybackStateUnknown,
		UpdatedAt: time.Now(),
	}
}

// SetPosition records a new position and recomputes Percent.
func (ps *PlaybackStatus) SetPosition(position time.Duration) {
	ps.Position = position
	ps.calculatePercent()
	ps.UpdatedAt = time.Now()
}

// SetDuration records the media duration and recomputes Percent.
func (ps *PlaybackStatus) SetDuration(duration time.Duration) {
	ps.Duration = duration
	ps.calculatePercent()
	ps.UpdatedAt = time.Now()
}

func (ps *PlaybackStatus) calculatePercent() {
	if ps.Duration <= 0 {
		ps.Percent = 0
		return
	}
	ps.Percent = float64(ps.Position) / float64(ps.Duration) * 100
	if ps.Percent > 100 {
		ps.Percent = 100
	}
	if ps.Percent < 0 {
		ps.Percent = 0
	}
}

// Remaining returns the time left until the end of the media.
func (ps *PlaybackStatus) Remaining() time.Duration {
	if ps.Duration <= 0 || ps.Position >= ps.Duration {
		return 0
	}
	return ps.Duration - ps.Position
}

// FormatSummary returns a human-readable summary of the status.
func (ps *PlaybackStatus) FormatSummary() string {
	return fmt.Sprintf(
		"Position: %s / %s (%.1f%%) | State: %s",
		formatDuration(ps.Position),
		formatDuration(ps.Duration),
		ps.Percent,
		ps.State,
	)
}

// formatDuration converts a duration to a short human-readable string
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	seconds = seconds % 60

	if minutes < 60 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}
