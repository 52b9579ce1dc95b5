package models

import (
	"strings"
	"testing"
	"time"
)

func TestTickHeight_String(t *testing.T) {
	tests := []struct {
		height   TickHeight
		expected string
	}{
		{TickShort, "short"},
		{TickMedium, "medium"},
		{TickTall, "tall"},
		{TickHeight(7), "TickHeight(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.height.String(); got != tt.expected {
				t.Errorf("String() = %s; want %s", got, tt.expected)
			}
		})
	}
}

func TestGeometry_Validate(t *testing.T) {
	ticks := []Tick{
		{Index: 1, X: 5.5, Height: TickShort},
		{Index: 2, X: 10.5, Height: TickMedium},
		{Index: 3, X: 15.5, Height: TickTall},
	}

	tests := []struct {
		name          string
		geometry      Geometry
		wantError     bool
		errorContains string
	}{
		{
			name:     "valid",
			geometry: Geometry{TotalWidth: 56, ContentWidth: 15.5, Ticks: ticks, Labels: []Label{{Tick: 3, X: 15}}},
		},
		{
			name:     "empty",
			geometry: Geometry{},
		},
		{
			name:          "negative width",
			geometry:      Geometry{TotalWidth: -1},
			wantError:     true,
			errorContains: "cannot be negative",
		},
		{
			name: "ticks out of order",
			geometry: Geometry{Ticks: []Tick{
				{Index: 1, X: 10},
				{Index: 2, X: 10},
			}},
			wantError:     true,
			errorContains: "is not right of",
		},
		{
			name:          "label on missing tick",
			geometry:      Geometry{Ticks: ticks, Labels: []Label{{Tick: 9}}},
			wantError:     true,
			errorContains: "missing tick 9",
		},
		{
			name:          "label on short tick",
			geometry:      Geometry{Ticks: ticks, Labels: []Label{{Tick: 1}}},
			wantError:     true,
			errorContains: "short tick",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.geometry.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("Expected error but got nil")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error to contain '%s', got '%s'", tt.errorContains, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestGeometry_IsEmpty(t *testing.T) {
	var nilGeometry *Geometry
	if !nilGeometry.IsEmpty() {
		t.Error("nil geometry should be empty")
	}
	if !(&Geometry{}).IsEmpty() {
		t.Error("geometry without ticks should be empty")
	}
	if (&Geometry{Ticks: []Tick{{Index: 1, X: 1}}}).IsEmpty() {
		t.Error("geometry with ticks should not be empty")
	}
}

func TestGeometry_TickAt(t *testing.T) {
	g := &Geometry{Ticks: []Tick{{Index: 1, X: 5}, {Index: 2, X: 10}}}

	if tick, ok := g.TickAt(2); !ok || tick.X != 10 {
		t.Errorf("TickAt(2) = %+v, %v; want X=10, true", tick, ok)
	}
	if _, ok := g.TickAt(0); ok {
		t.Error("TickAt(0) should not exist")
	}
	if _, ok := g.TickAt(3); ok {
		t.Error("TickAt(3) should not exist")
	}
}

func TestZoomState(t *testing.T) {
	z := ZoomState{Scale: 13.5, Span: 5 * time.Minute, LabelInterval: 2}

	if got := z.LabelWidth(5); got != 135 {
		t.Errorf("Expected label width 135, got %.2f", got)
	}
	if got := z.PixelsPerSecond(5); got != 0.45 {
		t.Errorf("Expected 0.45 px/s, got %.4f", got)
	}
	if err := z.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if (ZoomState{}).PixelsPerSecond(5) != 0 {
		t.Error("Expected 0 px/s without a span")
	}
	if err := (ZoomState{Scale: 5, Span: time.Second}).Validate(); err == nil {
		t.Error("Expected error for zero label interval")
	}
}

func TestTimelineState_Validate(t *testing.T) {
	tests := []struct {
		name          string
		state         TimelineState
		wantError     bool
		errorContains string
	}{
		{name: "idle", state: TimelineState{}},
		{name: "valid", state: TimelineState{Duration: time.Minute, Progress: 30 * time.Second, ZoomPercent: 50, TimelineWidth: 800}},
		{name: "progress past duration", state: TimelineState{Duration: time.Minute, Progress: 2 * time.Minute}, wantError: true, errorContains: "outside [0, 1m0s]"},
		{name: "negative duration", state: TimelineState{Duration: -1}, wantError: true, errorContains: "duration cannot be negative"},
		{name: "percent too high", state: TimelineState{ZoomPercent: 101}, wantError: true, errorContains: "zoom percent"},
		{name: "negative width", state: TimelineState{TimelineWidth: -5}, wantError: true, errorContains: "timeline width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("Expected error but got nil")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error to contain '%s', got '%s'", tt.errorContains, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestTimelineState_Idle(t *testing.T) {
	if !(TimelineState{}).Idle() {
		t.Error("zero state should be idle")
	}
	if (TimelineState{Duration: time.Second}).Idle() {
		t.Error("state with a duration should not be idle")
	}
}
