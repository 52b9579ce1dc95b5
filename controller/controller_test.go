package controller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"reflect"
	"testing"
	"time"

	"timeline/curve"
	"timeline/models"
	"timeline/ruler"
)

// recorder collects listener calls as short strings.
type recorder struct {
	events []string
}

func (r *recorder) listener() Funcs {
	return Funcs{
		OnZoom: func(z models.ZoomState) {
			r.events = append(r.events, "zoom")
		},
		OnLayout: func(g *models.Geometry) {
			r.events = append(r.events, "layout")
		},
		OnSeeker: func(left float64) {
			r.events = append(r.events, fmt.Sprintf("seeker %.2f", left))
		},
		OnProgress: func(p time.Duration) {
			r.events = append(r.events, "progress "+p.String())
		},
	}
}

func (r *recorder) take() []string {
	events := r.events
	r.events = nil
	return events
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *recorder) {
	t.Helper()
	c := curve.Default()
	rec := &recorder{}
	opts = append([]Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithListener(rec.listener()),
	}, opts...)
	return New(c, ruler.NewBuilder(c), opts...), rec
}

func expectEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected events %q, got %q", want, got)
	}
}

func TestNew_Idle(t *testing.T) {
	ctrl, rec := newTestController(t)

	if !ctrl.State().Idle() {
		t.Error("Expected new controller to be idle")
	}
	if !ctrl.Geometry().IsEmpty() {
		t.Error("Expected empty geometry")
	}
	if _, ok := ctrl.SeekerLeft(); ok {
		t.Error("Expected no seeker position")
	}
	expectEvents(t, rec.take(), nil)
}

func TestSetDuration_FitsAndLaysOut(t *testing.T) {
	ctrl, rec := newTestController(t, WithViewportWidth(800), WithSeekerWidth(12))

	ctrl.SetDuration(30 * time.Minute)

	expectEvents(t, rec.take(), []string{"zoom", "layout", "seeker -6.00"})

	state := ctrl.State()
	if math.Abs(state.ZoomPercent-(20+17.0/45*20)) > 1e-9 {
		t.Errorf("Expected fitted percent 27.5556, got %.4f", state.ZoomPercent)
	}
	if state.TimelineWidth != 810.5 {
		t.Errorf("Expected timeline width 810.5, got %.2f", state.TimelineWidth)
	}
	if ctrl.Zoom().Scale != 13.5 {
		t.Errorf("Expected scale 13.5, got %.2f", ctrl.Zoom().Scale)
	}
	if err := state.Validate(); err != nil {
		t.Errorf("Expected valid state, got %v", err)
	}

	// Same duration again is a no-op.
	ctrl.SetDuration(30 * time.Minute)
	expectEvents(t, rec.take(), nil)
}

func TestSetDuration_WaitsForViewport(t *testing.T) {
	ctrl, rec := newTestController(t)

	ctrl.SetDuration(30 * time.Minute)
	expectEvents(t, rec.take(), nil)
	if ctrl.State().Duration != 30*time.Minute {
		t.Errorf("Expected duration to be stored, got %v", ctrl.State().Duration)
	}

	if err := ctrl.SetViewportWidth(800); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expectEvents(t, rec.take(), []string{"zoom", "layout", "seeker 0.00"})

	// Later viewport changes keep the current zoom.
	if err := ctrl.SetViewportWidth(1200); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expectEvents(t, rec.take(), nil)
}

func TestSetDuration_Zero(t *testing.T) {
	ctrl, rec := newTestController(t, WithViewportWidth(800))
	ctrl.SetDuration(30 * time.Minute)
	ctrl.SetProgress(10 * time.Minute)
	rec.take()

	ctrl.SetDuration(0)

	expectEvents(t, rec.take(), []string{"layout"})
	state := ctrl.State()
	if state.Progress != 0 || state.TimelineWidth != 0 {
		t.Errorf("Expected idle state, got %+v", state)
	}
	if !ctrl.Geometry().IsEmpty() {
		t.Error("Expected empty geometry")
	}
	if len(ctrl.Geometry().Labels) != 0 {
		t.Error("Expected no labels")
	}

	// Idle ignores seeks.
	if err := ctrl.Tap(100); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	ctrl.SetProgress(time.Minute)
	expectEvents(t, rec.take(), nil)
}

func TestSetDuration_RefitsAfterManualZoom(t *testing.T) {
	ctrl, _ := newTestController(t, WithViewportWidth(800))
	ctrl.SetDuration(30 * time.Minute)
	ctrl.SetZoomPercent(0)

	ctrl.SetDuration(10 * time.Minute)

	if math.Abs(ctrl.State().ZoomPercent-(40+6.0/45*20)) > 1e-9 {
		t.Errorf("Expected refit percent 42.6667, got %.4f", ctrl.State().ZoomPercent)
	}
	if ctrl.State().TimelineWidth != 800.5 {
		t.Errorf("Expected timeline width 800.5, got %.2f", ctrl.State().TimelineWidth)
	}
}

func TestSetZoomPercent(t *testing.T) {
	ctrl, rec := newTestController(t, WithViewportWidth(800))
	ctrl.SetDuration(30 * time.Minute)
	rec.take()
	fitted := ctrl.State().ZoomPercent

	ctrl.SetZoomPercent(fitted + 0.004)
	expectEvents(t, rec.take(), nil)

	ctrl.SetZoomPercent(0)
	expectEvents(t, rec.take(), []string{"zoom", "layout"})

	if ctrl.State().TimelineWidth != 50.5 {
		t.Errorf("Expected timeline width 50.5, got %.2f", ctrl.State().TimelineWidth)
	}
	if ctrl.Zoom().Span != time.Hour {
		t.Errorf("Expected span 1h, got %v", ctrl.Zoom().Span)
	}

	ctrl.SetZoomPercent(-20)
	expectEvents(t, rec.take(), nil)
}

func TestZoomInOut(t *testing.T) {
	ctrl, _ := newTestController(t, WithViewportWidth(800))
	ctrl.SetDuration(30 * time.Minute)
	start := ctrl.Zoom()

	ctrl.ZoomIn()
	if got := ctrl.Zoom(); got.Step != start.Step+1 || got.Scale != 14 {
		t.Errorf("Expected one step finer at scale 14, got %+v", got)
	}

	ctrl.ZoomOut()
	ctrl.ZoomOut()
	if got := ctrl.Zoom(); got.Step != start.Step-1 || got.Scale != 13 {
		t.Errorf("Expected one step coarser at scale 13, got %+v", got)
	}
}

func TestResetZoom(t *testing.T) {
	ctrl, _ := newTestController(t, WithViewportWidth(800))
	ctrl.SetDuration(30 * time.Minute)
	fitted := ctrl.State().ZoomPercent

	ctrl.SetZoomPercent(80)
	ctrl.ResetZoom()

	if ctrl.State().ZoomPercent != fitted {
		t.Errorf("Expected zoom %.4f after reset, got %.4f", fitted, ctrl.State().ZoomPercent)
	}
}

func TestSetProgress(t *testing.T) {
	ctrl, rec := newTestController(t, WithViewportWidth(800), WithSeekerWidth(12))
	ctrl.SetDuration(30 * time.Minute)
	rec.take()

	ctrl.SetProgress(15 * time.Minute)
	expectEvents(t, rec.take(), []string{"seeker 399.25"})

	ctrl.SetProgress(15 * time.Minute)
	expectEvents(t, rec.take(), nil)

	ctrl.SetProgress(2 * time.Hour)
	if ctrl.State().Progress != 30*time.Minute {
		t.Errorf("Expected progress clamped to 30m, got %v", ctrl.State().Progress)
	}
	expectEvents(t, rec.take(), []string{"seeker 804.50"})

	ctrl.SetProgress(-time.Second)
	if ctrl.State().Progress != 0 {
		t.Errorf("Expected progress clamped to 0, got %v", ctrl.State().Progress)
	}
}

func TestTap(t *testing.T) {
	ctrl, rec := newTestController(t, WithViewportWidth(800), WithSeekerWidth(12))
	ctrl.SetDuration(30 * time.Minute)
	rec.take()

	if err := ctrl.Tap(405.25); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expectEvents(t, rec.take(), []string{"progress 15m0s", "seeker 399.25"})
	if ctrl.State().Progress != 15*time.Minute {
		t.Errorf("Expected progress 15m, got %v", ctrl.State().Progress)
	}

	if err := ctrl.Tap(math.NaN()); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("Expected ErrInvalidOffset, got %v", err)
	}
}

func TestSeekerDragged(t *testing.T) {
	ctrl, rec := newTestController(t, WithViewportWidth(800), WithSeekerWidth(12))
	ctrl.SetDuration(30 * time.Minute)
	rec.take()

	if err := ctrl.SeekerDragged(399.25, 12); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expectEvents(t, rec.take(), []string{"progress 15m0s", "seeker 399.25"})

	// Dropping past the end snaps back onto the ruler.
	if err := ctrl.SeekerDragged(2000, 12); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expectEvents(t, rec.take(), []string{"progress 30m0s", "seeker 804.50"})

	if err := ctrl.SeekerDragged(10, -1); !errors.Is(err, ErrNegativeWidth) {
		t.Errorf("Expected ErrNegativeWidth, got %v", err)
	}
}

func TestNegativeWidths(t *testing.T) {
	ctrl, _ := newTestController(t)

	if err := ctrl.SetViewportWidth(-1); !errors.Is(err, ErrNegativeWidth) {
		t.Errorf("Expected ErrNegativeWidth for viewport, got %v", err)
	}
	if err := ctrl.SetSeekerWidth(-1); !errors.Is(err, ErrNegativeWidth) {
		t.Errorf("Expected ErrNegativeWidth for seeker, got %v", err)
	}
}

func TestSetSeekerWidth(t *testing.T) {
	ctrl, rec := newTestController(t, WithViewportWidth(800))
	ctrl.SetDuration(30 * time.Minute)
	ctrl.SetProgress(15 * time.Minute)
	rec.take()

	if err := ctrl.SetSeekerWidth(20); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expectEvents(t, rec.take(), []string{"seeker 395.25"})
}

func TestListener_ReentrantCallsAreQueued(t *testing.T) {
	c := curve.Default()
	var ctrl *Controller
	var events []string

	ctrl = New(c, ruler.NewBuilder(c),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithViewportWidth(800),
		WithListener(Funcs{
			OnZoom: func(z models.ZoomState) {
				events = append(events, "zoom")
				ctrl.SetProgress(15 * time.Minute)
			},
			OnLayout: func(g *models.Geometry) {
				events = append(events, "layout")
			},
			OnSeeker: func(left float64) {
				events = append(events, fmt.Sprintf("seeker %.2f", left))
			},
		}),
	)

	ctrl.SetDuration(30 * time.Minute)

	expectEvents(t, events, []string{"zoom", "layout", "seeker 0.00", "seeker 405.25"})
}

func TestListener_EchoedProgressIsNoop(t *testing.T) {
	c := curve.Default()
	var ctrl *Controller
	var events []string

	ctrl = New(c, ruler.NewBuilder(c),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithViewportWidth(800),
		WithListener(Funcs{
			OnSeeker: func(left float64) {
				events = append(events, fmt.Sprintf("seeker %.2f", left))
			},
			OnProgress: func(p time.Duration) {
				events = append(events, "progress "+p.String())
				// Playback reports the seek straight back.
				ctrl.SetProgress(p)
			},
		}),
	)
	ctrl.SetDuration(30 * time.Minute)
	events = nil

	if err := ctrl.Tap(405.25); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expectEvents(t, events, []string{"progress 15m0s", "seeker 405.25"})
}
