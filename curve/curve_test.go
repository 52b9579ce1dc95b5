package curve

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	c := Default()

	if err := c.Validate(); err != nil {
		t.Fatalf("Expected default curve to be valid, got %v", err)
	}
	if c.Segments() != 5 {
		t.Errorf("Expected 5 segments, got %d", c.Segments())
	}
	if c.TotalIncrements() != 45 {
		t.Errorf("Expected 45 increments per segment, got %d", c.TotalIncrements())
	}
	if c.PercentPerSegment() != 20 {
		t.Errorf("Expected 20%% per segment, got %f", c.PercentPerSegment())
	}
	if c.MaximumScale() != 27.5 {
		t.Errorf("Expected maximum scale 27.5, got %f", c.MaximumScale())
	}
}

func TestNew_CopiesInput(t *testing.T) {
	tiers := DefaultTiers()
	spans := DefaultSpans()

	c, err := New(5, 0.5, 5, tiers, spans)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tiers[0].Increments = 99
	spans[0] = time.Second
	if c.Tiers[0].Increments != 10 {
		t.Errorf("Expected curve tiers to be independent of input, got %d", c.Tiers[0].Increments)
	}
	if c.Spans[0] != time.Hour {
		t.Errorf("Expected curve spans to be independent of input, got %v", c.Spans[0])
	}
}

func TestCurve_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *Curve)
		wantError string
	}{
		{
			name:   "default",
			modify: func(c *Curve) {},
		},
		{
			name:      "zero minimum scale",
			modify:    func(c *Curve) { c.MinimumScale = 0 },
			wantError: "minimum scale must be positive",
		},
		{
			name:      "negative increment step",
			modify:    func(c *Curve) { c.IncrementStep = -1 },
			wantError: "increment step must be positive",
		},
		{
			name:      "zero units per label tick",
			modify:    func(c *Curve) { c.UnitsPerLabelTick = 0 },
			wantError: "units per label tick must be positive",
		},
		{
			name:      "no tiers",
			modify:    func(c *Curve) { c.Tiers = nil },
			wantError: "at least one tier is required",
		},
		{
			name:      "tier without increments",
			modify:    func(c *Curve) { c.Tiers[1].Increments = 0 },
			wantError: "tier 2: increments must be positive",
		},
		{
			name:      "tier without label interval",
			modify:    func(c *Curve) { c.Tiers[2].LabelInterval = 0 },
			wantError: "tier 3: label interval must be positive",
		},
		{
			name:      "no spans",
			modify:    func(c *Curve) { c.Spans = nil },
			wantError: "at least one span is required",
		},
		{
			name:      "span count not a multiple of tiers",
			modify:    func(c *Curve) { c.Spans = c.Spans[:14] },
			wantError: "span count 14 is not a multiple of tier count 3",
		},
		{
			name:      "spans out of order",
			modify:    func(c *Curve) { c.Spans[1] = 2 * time.Hour },
			wantError: "span 2 (2h0m0s) must be shorter than span 1 (1h0m0s)",
		},
		{
			name:      "negative span",
			modify:    func(c *Curve) { c.Spans[14] = -time.Second },
			wantError: "span 15 must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)

			err := c.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Expected error containing %q, got %q", tt.wantError, err.Error())
			}
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(0, 0.5, 5, DefaultTiers(), DefaultSpans())
	if err == nil {
		t.Fatal("Expected error for zero minimum scale")
	}
	if !strings.HasPrefix(err.Error(), "invalid curve:") {
		t.Errorf("Expected wrapped error, got %q", err.Error())
	}
}

func TestPercentEqual(t *testing.T) {
	tests := []struct {
		a, b float64
		want bool
	}{
		{10, 10, true},
		{10, 10.004, true},
		{0, 0.005, true},
		{10, 10.0049, true},
		{10, 10.006, false},
		{27.5, 27.4, false},
	}

	for _, tt := range tests {
		if got := PercentEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("PercentEqual(%v, %v): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}
