package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timeline/config"
	"timeline/controller"
	"timeline/internal/timecode"
	"timeline/media"
	"timeline/models"
	"timeline/playback"
	"timeline/preview"
	"timeline/render"
)

func main() {
	// Step 1: Load configuration (CLI flags > config file > defaults)
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Verbose)

	// Step 2: Handle dry-run mode
	if cfg.DryRun {
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println("                      DRY RUN MODE")
		fmt.Println("═══════════════════════════════════════════════════════════")
		cfg.PrintConfig(os.Stdout)
		fmt.Println("\n✓ Configuration is valid. Nothing will be written.")
		return
	}

	// Step 3: Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Step 4: Register signal handlers (Ctrl+C, SIGTERM)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Step 5: Run
	if err := run(ctx, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\n⚠️  Cancelled by user")
			os.Exit(130) // Standard exit code for SIGINT
		}
		fmt.Fprintf(os.Stderr, "\n❌ Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs the process-wide slog handler. Logs go to stderr so
// they never mix with exported output or the scrubber.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// run executes the timeline workflow
func run(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()

	fmt.Println("╔════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                       TIMELINE RULER                           ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════╝")

	// PHASE 1: Media Analysis
	fmt.Println("📊 Phase 1: Media Analysis")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	source, err := openSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("media analysis failed: %w", err)
	}

	duration, err := source.Duration()
	if err != nil {
		return fmt.Errorf("failed to get media duration: %w", err)
	}

	fmt.Printf("  Source:     %s\n", describeSource(cfg, source))
	fmt.Printf("  Duration:   %s\n", timecode.Format(duration, true))
	if w, h, ok := source.VideoSize(); ok {
		fmt.Printf("  Video:      %dx%d\n", w, h)
	}
	fmt.Println()

	// PHASE 2: Zoom & Layout
	fmt.Println("📏 Phase 2: Zoom & Layout")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}

	ctrl.SetDuration(duration)
	if !cfg.FitZoom() {
		ctrl.SetZoomPercent(cfg.Zoom)
	}
	ctrl.SetProgress(cfg.Position.Std())

	printLayout(os.Stdout, cfg, ctrl)
	fmt.Println()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if cfg.Interactive {
		return runScrubber(ctx, ctrl, cfg.FitZoom())
	}

	if cfg.Follow {
		fmt.Println("▶️  Following player output on stdin")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		if err := follow(ctx, ctrl, os.Stdin, os.Stdout); err != nil {
			return err
		}
		fmt.Println()
	}

	// PHASE 3: Export
	if cfg.Output.SVG != "" || cfg.Output.PNG != "" {
		fmt.Println("🖼️  Phase 3: Export")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

		opts := renderOptions(cfg, ctrl)
		if cfg.Output.SVG != "" {
			if err := writeFile(cfg.Output.SVG, func(w io.Writer) error {
				return render.WriteSVG(w, ctrl.Geometry(), opts)
			}); err != nil {
				return fmt.Errorf("SVG export failed: %w", err)
			}
			fmt.Printf("  ✓ SVG: %s\n", cfg.Output.SVG)
		}
		if cfg.Output.PNG != "" {
			if err := writeFile(cfg.Output.PNG, func(w io.Writer) error {
				return render.WritePNG(w, ctrl.Geometry(), opts)
			}); err != nil {
				return fmt.Errorf("PNG export failed: %w", err)
			}
			fmt.Printf("  ✓ PNG: %s\n", cfg.Output.PNG)
		}
		fmt.Println()
	}

	// PHASE 4: Preview Plan
	if cfg.Preview.Enabled {
		fmt.Println("🎞️  Phase 4: Preview Plan")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		if err := planPreviews(os.Stdout, cfg, source, ctrl.State()); err != nil {
			return fmt.Errorf("preview planning failed: %w", err)
		}
		fmt.Println()
	}

	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  ✅ Done in %.2fs\n", time.Since(startTime).Seconds())
	fmt.Println("═══════════════════════════════════════════════════════════")

	return nil
}

// openSource picks the duration source: the input when given, the
// configured duration otherwise
func openSource(ctx context.Context, cfg *config.Config) (media.Source, error) {
	if cfg.Input == "" {
		return media.Fixed(cfg.Duration.Std()), nil
	}
	return media.Open(ctx, cfg.Input)
}

func describeSource(cfg *config.Config, source media.Source) string {
	switch s := source.(type) {
	case *media.Playlist:
		kind := "VOD"
		if s.Live {
			kind = "live window"
		}
		return fmt.Sprintf("%s (HLS %s, %d segments)", cfg.Input, kind, s.Segments)
	case media.Fixed:
		return "fixed duration"
	default:
		return cfg.Input
	}
}

// newController wires the configured curve and ruler into a controller
func newController(cfg *config.Config) (*controller.Controller, error) {
	cv, err := cfg.BuildCurve()
	if err != nil {
		return nil, fmt.Errorf("invalid curve: %w", err)
	}

	return controller.New(cv, cfg.RulerBuilder(cv),
		controller.WithLogger(slog.With("component", "controller")),
		controller.WithViewportWidth(cfg.ViewportWidth),
		controller.WithSeekerWidth(cfg.SeekerWidth),
	), nil
}

func printLayout(w io.Writer, cfg *config.Config, ctrl *controller.Controller) {
	zoom := ctrl.Zoom()
	geom := ctrl.Geometry()
	state := ctrl.State()
	units := ctrl.Curve().UnitsPerLabelTick

	mode := "fit"
	if !cfg.FitZoom() {
		mode = "fixed"
	}
	fmt.Fprintf(w, "  Zoom:       %.2f%% (%s)\n", state.ZoomPercent, mode)
	fmt.Fprintf(w, "  Scale:      %.1f px per tick\n", zoom.Scale)
	fmt.Fprintf(w, "  Span:       %s per label, label every %d ticks\n",
		timecode.Format(zoom.Span, false), zoom.LabelInterval*units)
	fmt.Fprintf(w, "  Width:      %.1f px content, %.1f px total (viewport %.0f px)\n",
		geom.ContentWidth, geom.TotalWidth, cfg.ViewportWidth)
	fmt.Fprintf(w, "  Ruler:      %d ticks, %d labels\n", len(geom.Ticks), len(geom.Labels))
	if left, ok := ctrl.SeekerLeft(); ok {
		fmt.Fprintf(w, "  Seeker:     %.2f px at %s\n", left, timecode.Format(state.Progress, true))
	}
}

// follow feeds player status lines from r into the controller until r ends
// or ctx is cancelled. The controller is only touched by the reading
// goroutine.
func follow(ctx context.Context, ctrl *controller.Controller, r io.Reader, out io.Writer) error {
	log := slog.With("component", "follow")

	ctrl.AddListener(controller.Funcs{
		OnLayout: func(geom *models.Geometry) {
			fmt.Fprintf(out, "  layout   %.1f px, %d labels\n", geom.ContentWidth, len(geom.Labels))
		},
		OnSeeker: func(left float64) {
			fmt.Fprintf(out, "  seeker   %8.2f px\n", left)
		},
	})

	parser := playback.NewStatusParser()
	status := models.NewPlaybackStatus()

	done := make(chan error, 1)
	go func() {
		done <- parser.StreamStatus(r, status, func(s *models.PlaybackStatus) {
			if s.Duration > 0 {
				ctrl.SetDuration(s.Duration)
			}
			ctrl.SetProgress(s.Position)
			log.Debug("status", "position", s.Position, "duration", s.Duration, "state", s.State)
		})
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to follow player: %w", err)
		}
		fmt.Fprintf(out, "  ✓ %s\n", status.FormatSummary())
		return nil
	}
}

func renderOptions(cfg *config.Config, ctrl *controller.Controller) render.Options {
	opts := render.DefaultOptions()
	opts.TickHeights = cfg.Ruler.TickHeights
	if left, ok := ctrl.SeekerLeft(); ok && cfg.SeekerWidth > 0 {
		opts.Seeker = &render.Seeker{Left: left, Width: cfg.SeekerWidth}
	}
	return opts
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// planPreviews prints the ffmpeg commands that would fill the thumbnail strip
func planPreviews(w io.Writer, cfg *config.Config, source media.Source, state models.TimelineState) error {
	videoWidth, videoHeight, ok := source.VideoSize()
	if !ok {
		fmt.Fprintln(w, "  ⚠️  No video stream, skipping previews")
		return nil
	}

	planner := preview.NewPlanner(cfg.Input, cfg.Preview.OutputDir).
		SetPanelHeight(int(math.Round(cfg.Preview.PanelHeight)))

	frames, err := planner.Plan(state.Duration, state.TimelineWidth, videoWidth, videoHeight)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "  Frames:     %d\n", len(frames))
	for _, frame := range frames {
		fmt.Fprintf(w, "  %s\n", frame.DryRun())
	}
	return nil
}
