package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MergeFromFlags parses command-line flags and overrides config values.
// The config is left untouched when any flag fails to parse.
func (c *Config) MergeFromFlags(args []string) error {
	next := c.Copy()
	if err := next.applyFlags(args); err != nil {
		return err
	}
	*c = *next
	return nil
}

// applyFlags overrides c with the flags set in args
func (c *Config) applyFlags(args []string) error {
	// Define flags
	fs := flag.NewFlagSet("timeline", flag.ContinueOnError)
	fs.Usage = printUsage

	// Media source
	input := fs.String("input", "", "Video file or HLS playlist to lay out")
	duration := fs.String("duration", "", "Media duration when no input is given, e.g. 30m or 00:30:00")
	position := fs.String("position", "", "Initial playback position, e.g. 12m30s")

	// Config file override (handled by LoadConfig before this function is called)
	_ = fs.String("config", "", "Path to config file (default: search standard locations)")

	// Viewport
	width := fs.Float64("width", -1, "Viewport width in pixels (default: from config)")
	seekerWidth := fs.Float64("seeker-width", -1, "Seeker width in pixels (default: from config)")
	zoom := fs.String("zoom", "", "Zoom percent 0-100, or 'fit' (default: from config)")

	// Outputs
	svg := fs.String("svg", "", "Write the ruler as SVG to this path")
	png := fs.String("png", "", "Write the ruler as PNG to this path")
	noSVG := fs.Bool("no-svg", false, "Skip SVG export")

	// Preview thumbnails
	preview := fs.Bool("preview", false, "Plan preview thumbnails")
	noPreview := fs.Bool("no-preview", false, "Do not plan preview thumbnails")
	previewDir := fs.String("preview-dir", "", "Directory for preview thumbnails (default: from config)")
	panelHeight := fs.Float64("panel-height", -1, "Preview thumbnail height in pixels (default: from config)")

	// Behavioral flags
	interactive := fs.Bool("interactive", false, "Open the terminal scrubber")
	follow := fs.Bool("follow", false, "Follow ffmpeg/mpv/ffplay status lines on stdin")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	dryRun := fs.Bool("dry-run", false, "Show configuration without doing anything")

	// Parse flags
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Override with flag values (only if explicitly set)
	if *input != "" {
		c.Input = *input
	}
	if *duration != "" {
		if err := c.Duration.Set(*duration); err != nil {
			return fmt.Errorf("invalid -duration: %w", err)
		}
	}
	if *position != "" {
		if err := c.Position.Set(*position); err != nil {
			return fmt.Errorf("invalid -position: %w", err)
		}
	}

	// Viewport (only override if explicitly set, -1 means not set)
	if *width >= 0 {
		c.ViewportWidth = *width
	}
	if *seekerWidth >= 0 {
		c.SeekerWidth = *seekerWidth
	}
	if *zoom != "" {
		if strings.EqualFold(*zoom, "fit") {
			c.Zoom = -1
		} else {
			percent, err := strconv.ParseFloat(*zoom, 64)
			if err != nil {
				return fmt.Errorf("invalid -zoom %q: must be a percent or 'fit'", *zoom)
			}
			c.Zoom = percent
		}
	}

	// Outputs
	if *svg != "" {
		c.Output.SVG = *svg
	}
	if *noSVG {
		c.Output.SVG = ""
	}
	if *png != "" {
		c.Output.PNG = *png
	}

	// Preview
	if *preview {
		c.Preview.Enabled = true
	}
	if *noPreview {
		c.Preview.Enabled = false
	}
	if *previewDir != "" {
		c.Preview.OutputDir = *previewDir
	}
	if *panelHeight >= 0 {
		c.Preview.PanelHeight = *panelHeight
	}

	// Behavioral flags
	if *interactive {
		c.Interactive = true
	}
	if *follow {
		c.Follow = true
	}
	if *verbose {
		c.Verbose = true
	}
	if *dryRun {
		c.DryRun = true
	}

	return nil
}

// printUsage prints help text
func printUsage() {
	fmt.Fprintf(os.Stderr, `timeline - Zoomable media timeline ruler

USAGE:
  timeline -input FILE [OPTIONS]
  timeline -duration 30m [OPTIONS]

MEDIA SOURCE:
  -input string
        Video file (probed with ffprobe) or .m3u8 media playlist
  -duration string
        Media duration when no input is given, e.g. 30m, 1h2m, 00:30:00
  -position string
        Initial playback position

CONFIGURATION:
  -config string
        Path to config file (default: search ./timeline.yaml, ./timeline.toml,
        ~/.timeline/config.yaml, /etc/timeline/config.yaml)

VIEWPORT:
  -width float
        Viewport width in pixels (default: 800)
  -seeker-width float
        Seeker width in pixels (default: 12)
  -zoom string
        Zoom percent 0-100, or 'fit' to fit the duration to the viewport (default: fit)

OUTPUT:
  -svg string
        Write the ruler as SVG (default: timeline.svg)
  --no-svg
        Skip SVG export
  -png string
        Write the ruler as PNG

PREVIEW THUMBNAILS:
  --preview
        Print the ffmpeg commands that extract preview thumbnails
  --no-preview
        Skip preview planning
  -preview-dir string
        Directory for thumbnails (default: previews)
  -panel-height float
        Thumbnail height in pixels (default: 70)

BEHAVIORAL FLAGS:
  --interactive
        Open the terminal scrubber (+/- zoom, arrows seek, r refit, q quit)
  --follow
        Read ffmpeg, mpv or ffplay status lines from stdin and move the seeker
  --verbose
        Enable verbose logging
  --dry-run
        Show effective configuration and exit

EXAMPLES:
  # Fit a video into an 800px ruler and write timeline.svg
  timeline -input movie.mp4

  # Fixed zoom, PNG export
  timeline -duration 2h -zoom 35 -png ruler.png

  # Follow a player
  mpv movie.mp4 2>&1 | timeline -input movie.mp4 --follow

  # Use custom config file
  timeline -config custom.toml -input movie.mp4

CONFIGURATION FILES:
  Config files are searched in order:
    1. ./timeline.yaml, ./timeline.yml, ./timeline.toml
    2. ~/.timeline/config.yaml (.yml, .toml)
    3. /etc/timeline/config.yaml (.yml, .toml)

  Priority: CLI flags > Config file > Defaults

`)
}

// PrintConfig prints the effective configuration
func (c *Config) PrintConfig(w io.Writer) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "                 Effective Configuration                  ")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	if c.Input != "" {
		fmt.Fprintf(w, "Input:          %s\n", c.Input)
	} else {
		fmt.Fprintf(w, "Duration:       %s\n", c.Duration)
	}
	if c.Position > 0 {
		fmt.Fprintf(w, "Position:       %s\n", c.Position)
	}
	fmt.Fprintf(w, "Viewport:       %.0f px\n", c.ViewportWidth)
	fmt.Fprintf(w, "Seeker:         %.0f px\n", c.SeekerWidth)
	if c.FitZoom() {
		fmt.Fprintf(w, "Zoom:           fit\n")
	} else {
		fmt.Fprintf(w, "Zoom:           %.2f%%\n", c.Zoom)
	}

	fmt.Fprintln(w, "\nCurve:")
	fmt.Fprintf(w, "  Minimum Scale: %.2f px\n", c.Curve.MinimumScale)
	fmt.Fprintf(w, "  Step:          %.2f px\n", c.Curve.IncrementStep)
	fmt.Fprintf(w, "  Units/Label:   %d\n", c.Curve.UnitsPerLabelTick)
	for i, tier := range c.Curve.Tiers {
		fmt.Fprintf(w, "  Tier %d:        %d increments, label every %d\n", i+1, tier.Increments, tier.LabelInterval)
	}
	spans := make([]string, 0, len(c.Curve.Spans))
	for _, span := range c.Curve.Spans {
		spans = append(spans, span.String())
	}
	fmt.Fprintf(w, "  Spans:         %s\n", strings.Join(spans, ", "))

	fmt.Fprintln(w, "\nRuler:")
	fmt.Fprintf(w, "  Line Offset:   %.2f\n", c.Ruler.LineOffset)
	fmt.Fprintf(w, "  Margin:        %.0f px\n", c.Ruler.TrailingMargin)
	fmt.Fprintf(w, "  Label Width:   %.0f px\n", c.Ruler.LabelWidth)

	fmt.Fprintln(w, "\nOutput:")
	if c.Output.SVG != "" {
		fmt.Fprintf(w, "  SVG:           %s\n", c.Output.SVG)
	}
	if c.Output.PNG != "" {
		fmt.Fprintf(w, "  PNG:           %s\n", c.Output.PNG)
	}
	if c.Preview.Enabled {
		fmt.Fprintf(w, "  Previews:      %s (%.0f px high)\n", c.Preview.OutputDir, c.Preview.PanelHeight)
	}

	fmt.Fprintln(w, "\nBehavioral Flags:")
	fmt.Fprintf(w, "  Interactive:   %v\n", c.Interactive)
	fmt.Fprintf(w, "  Follow:        %v\n", c.Follow)
	fmt.Fprintf(w, "  Verbose:       %v\n", c.Verbose)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
}
