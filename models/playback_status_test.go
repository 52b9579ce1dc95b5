package models

import (
	"strings"
	"testing"
	"time"
)

func TestNewPlaybackStatus(t *testing.T) {
	status := NewPlaybackStatus()

	if status == nil {
		t.Fatal("NewPlaybackStatus returned nil")
	}
	if status.State != PlaybackStateUnknown {
		t.Errorf("Expected initial state %s, got %s", PlaybackStateUnknown, status.State)
	}
	if status.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}
}

func TestPlaybackStatus_Percent(t *testing.T) {
	status := NewPlaybackStatus()
	status.SetDuration(30 * time.Second)

	tests := []struct {
		name            string
		position        time.Duration
		expectedPercent float64
	}{
		{"zero position", 0, 0.0},
		{"halfway", 15 * time.Second, 50.0},
		{"end", 30 * time.Second, 100.0},
		{"past the end", 35 * time.Second, 100.0},
		{"fractional", 10500 * time.Millisecond, 35.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status.SetPosition(tt.position)

			if status.Percent != tt.expectedPercent {
				t.Errorf("Expected percent %.2f, got %.2f", tt.expectedPercent, status.Percent)
			}
		})
	}
}

func TestPlaybackStatus_ZeroDuration(t *testing.T) {
	status := NewPlaybackStatus()
	status.SetPosition(15 * time.Second)

	if status.Percent != 0 {
		t.Errorf("Expected 0%% with unknown duration, got %.2f%%", status.Percent)
	}
	if status.Remaining() != 0 {
		t.Errorf("Expected no remaining time with unknown duration, got %v", status.Remaining())
	}
}

func TestPlaybackStatus_Remaining(t *testing.T) {
	status := NewPlaybackStatus()
	status.SetDuration(time.Minute)
	status.SetPosition(45 * time.Second)

	if status.Remaining() != 15*time.Second {
		t.Errorf("Expected 15s remaining, got %v", status.Remaining())
	}

	status.SetPosition(2 * time.Minute)
	if status.Remaining() != 0 {
		t.Errorf("Expected 0 remaining past the end, got %v", status.Remaining())
	}
}

func TestPlaybackStatus_FormatSummary(t *testing.T) {
	status := NewPlaybackStatus()
	status.SetDuration(time.Hour + 30*time.Minute)
	status.SetPosition(90 * time.Second)
	status.State = PlaybackStatePlaying

	summary := status.FormatSummary()

	for _, want := range []string{"1m30s", "1h30m0s", "1.7%", "playing"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Expected summary to contain %q, got %q", want, summary)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{"zero", 0, "0s"},
		{"seconds", 42 * time.Second, "42s"},
		{"minutes", 3*time.Minute + 5*time.Second, "3m5s"},
		{"hours", 2*time.Hour + 1*time.Minute, "2h1m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.d); got != tt.expected {
				t.Errorf("formatDuration(%v) = %s; want %s", tt.d, got, tt.expected)
			}
		})
	}
}
