package config

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"

	"timeline/curve"
	"timeline/ruler"
)

// Config holds all timeline configuration options
type Config struct {
	// Media source: a video file, an HLS media playlist, or a fixed duration
	Input    string   `yaml:"input" toml:"input"`
	Duration Duration `yaml:"duration" toml:"duration"` // used when no input is given
	Position Duration `yaml:"position" toml:"position"` // initial playback position

	// Viewport
	ViewportWidth float64 `yaml:"viewport_width" toml:"viewport_width"` // pixels available to the ruler
	SeekerWidth   float64 `yaml:"seeker_width" toml:"seeker_width"`     // pixels
	Zoom          float64 `yaml:"zoom" toml:"zoom"`                     // 0-100, negative = fit to viewport

	Curve   CurveConfig   `yaml:"curve" toml:"curve"`
	Ruler   RulerConfig   `yaml:"ruler" toml:"ruler"`
	Preview PreviewConfig `yaml:"preview" toml:"preview"`
	Output  OutputConfig  `yaml:"output" toml:"output"`

	// Behavioral flags
	Verbose     bool `yaml:"verbose" toml:"verbose"`         // Debug logging to stderr
	DryRun      bool `yaml:"dry_run" toml:"dry_run"`         // Show config without doing anything
	Interactive bool `yaml:"interactive" toml:"interactive"` // Terminal scrubber
	Follow      bool `yaml:"follow" toml:"follow"`           // Track player output on stdin
}

// CurveConfig describes the zoom curve
type CurveConfig struct {
	MinimumScale      float64      `yaml:"minimum_scale" toml:"minimum_scale"`               // pixels between minor ticks at 0%
	IncrementStep     float64      `yaml:"increment_step" toml:"increment_step"`             // pixels added per increment
	UnitsPerLabelTick int          `yaml:"units_per_label_tick" toml:"units_per_label_tick"` // minor ticks per label tick
	Tiers             []TierConfig `yaml:"tiers" toml:"tiers"`
	Spans             []Duration   `yaml:"spans" toml:"spans"` // coarse to fine, a multiple of len(tiers)
}

// TierConfig is one granularity level of the curve
type TierConfig struct {
	Increments    int `yaml:"increments" toml:"increments"`
	LabelInterval int `yaml:"label_interval" toml:"label_interval"`
}

// RulerConfig holds layout and drawing settings
type RulerConfig struct {
	LineOffset     float64   `yaml:"line_offset" toml:"line_offset"`
	TrailingMargin float64   `yaml:"trailing_margin" toml:"trailing_margin"`
	LabelWidth     float64   `yaml:"label_width" toml:"label_width"`
	TickHeights    []float64 `yaml:"tick_heights" toml:"tick_heights"` // short, medium, tall
}

// PreviewConfig holds thumbnail planning settings
type PreviewConfig struct {
	Enabled     bool    `yaml:"enabled" toml:"enabled"`
	PanelHeight float64 `yaml:"panel_height" toml:"panel_height"` // thumbnail height in pixels
	OutputDir   string  `yaml:"output_dir" toml:"output_dir"`
}

// OutputConfig holds export paths (empty = skip)
type OutputConfig struct {
	SVG string `yaml:"svg" toml:"svg"`
	PNG string `yaml:"png" toml:"png"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		// Required - must be provided by user
		Input:    "",
		Duration: 0,

		ViewportWidth: 800,
		SeekerWidth:   12,
		Zoom:          -1, // Fit

		Curve: DefaultCurveConfig(),

		Ruler: RulerConfig{
			LineOffset:     ruler.DefaultLineOffset,
			TrailingMargin: ruler.DefaultTrailingMargin,
			LabelWidth:     ruler.DefaultLabelWidth,
			TickHeights:    []float64{4, 7, 12},
		},

		Preview: PreviewConfig{
			Enabled:     false,
			PanelHeight: 70,
			OutputDir:   "previews",
		},

		Output: OutputConfig{
			SVG: "timeline.svg",
			PNG: "",
		},

		Verbose:     false,
		DryRun:      false,
		Interactive: false,
		Follow:      false,
	}
}

// DefaultCurveConfig returns the standard five segment, three tier curve
func DefaultCurveConfig() CurveConfig {
	cc := CurveConfig{
		MinimumScale:      curve.DefaultMinimumScale,
		IncrementStep:     curve.DefaultIncrementStep,
		UnitsPerLabelTick: curve.DefaultUnitsPerLabelTick,
	}
	for _, tier := range curve.DefaultTiers() {
		cc.Tiers = append(cc.Tiers, TierConfig{Increments: tier.Increments, LabelInterval: tier.LabelInterval})
	}
	for _, span := range curve.DefaultSpans() {
		cc.Spans = append(cc.Spans, Duration(span))
	}
	return cc
}

// Copy creates a deep copy of the config
func (c *Config) Copy() *Config {
	out := &Config{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		// Config holds only plain values, slices and nested structs.
		panic(fmt.Sprintf("config copy: %v", err))
	}
	return out
}

// FitZoom reports whether the zoom is picked to fit the viewport
func (c *Config) FitZoom() bool {
	return c.Zoom < 0
}

// BuildCurve builds the zoom curve described by the configuration
func (c *Config) BuildCurve() (*curve.Curve, error) {
	tiers := make([]curve.Tier, 0, len(c.Curve.Tiers))
	for _, tier := range c.Curve.Tiers {
		tiers = append(tiers, curve.Tier{Increments: tier.Increments, LabelInterval: tier.LabelInterval})
	}
	spans := make([]time.Duration, 0, len(c.Curve.Spans))
	for _, span := range c.Curve.Spans {
		spans = append(spans, span.Std())
	}
	return curve.New(c.Curve.MinimumScale, c.Curve.IncrementStep, c.Curve.UnitsPerLabelTick, tiers, spans)
}

// RulerBuilder returns a layout builder for cv using the ruler settings
func (c *Config) RulerBuilder(cv *curve.Curve) *ruler.Builder {
	b := ruler.NewBuilder(cv)
	b.LineOffset = c.Ruler.LineOffset
	b.TrailingMargin = c.Ruler.TrailingMargin
	b.LabelWidth = c.Ruler.LabelWidth
	return b
}
