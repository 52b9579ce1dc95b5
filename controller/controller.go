// Package controller keeps the ruler layout and the seeker in step with the
// playback duration, progress and the user's zoom.
//
// The controller owns a models.TimelineState and compares every input with
// the last applied value, so writing back a value it just published is a
// no-op. It is not safe for concurrent use; feed it from one goroutine.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"timeline/curve"
	"timeline/models"
	"timeline/position"
	"timeline/ruler"
)

var (
	// ErrNegativeWidth is returned when a collaborator reports a negative width.
	ErrNegativeWidth = position.ErrNegativeWidth

	// ErrInvalidOffset is returned for a tap that is not a number.
	ErrInvalidOffset = errors.New("offset is not a number")
)

// Controller recomputes zoom, layout and seeker position as inputs change.
type Controller struct {
	curve   *curve.Curve
	builder *ruler.Builder
	log     *slog.Logger

	listeners []Listener

	state    models.TimelineState
	zoom     models.ZoomState
	geom     *models.Geometry
	viewport float64

	seekerWidth  float64
	seekerLeft   float64
	seekerPlaced bool

	laidOut    bool // geometry reflects state.ZoomPercent and state.Duration
	manualZoom bool // the user picked a zoom; duration changes still refit

	busy    bool
	pending []func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default is slog.Default() tagged with the
// component name.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithListener registers a listener.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		c.listeners = append(c.listeners, l)
	}
}

// WithSeekerWidth sets the seeker width used to centre it on the progress.
func WithSeekerWidth(width float64) Option {
	return func(c *Controller) {
		c.seekerWidth = width
	}
}

// WithViewportWidth sets the initial viewport width.
func WithViewportWidth(width float64) Option {
	return func(c *Controller) {
		c.viewport = width
	}
}

// New creates an idle controller.
func New(c *curve.Curve, builder *ruler.Builder, opts ...Option) *Controller {
	ctrl := &Controller{
		curve:   c,
		builder: builder,
		log:     slog.With("component", "controller"),
		geom:    &models.Geometry{},
	}
	for _, opt := range opts {
		opt(ctrl)
	}
	if ctrl.seekerWidth < 0 {
		ctrl.seekerWidth = 0
	}
	if ctrl.viewport < 0 {
		ctrl.viewport = 0
	}
	return ctrl
}

// AddListener registers a listener after construction.
func (c *Controller) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// State returns a copy of the working state.
func (c *Controller) State() models.TimelineState {
	return c.state
}

// Zoom returns the last resolved zoom state.
func (c *Controller) Zoom() models.ZoomState {
	return c.zoom
}

// Geometry returns the current layout. It is empty while idle.
func (c *Controller) Geometry() *models.Geometry {
	return c.geom
}

// SeekerLeft returns the last published seeker position.
func (c *Controller) SeekerLeft() (float64, bool) {
	return c.seekerLeft, c.seekerPlaced
}

// Curve returns the zoom curve the controller resolves against.
func (c *Controller) Curve() *curve.Curve {
	return c.curve
}

// SetViewportWidth records the width available to the ruler. When media is
// loaded but no layout could be fitted yet, the fit runs now.
func (c *Controller) SetViewportWidth(width float64) error {
	if width < 0 {
		return fmt.Errorf("viewport: %w: %.2f", ErrNegativeWidth, width)
	}
	c.dispatch(func() {
		c.viewport = width
		if !c.laidOut && !c.manualZoom && !c.state.Idle() {
			c.fit()
		}
	})
	return nil
}

// SetSeekerWidth records the seeker width and recentres it.
func (c *Controller) SetSeekerWidth(width float64) error {
	if width < 0 {
		return fmt.Errorf("seeker: %w: %.2f", ErrNegativeWidth, width)
	}
	c.dispatch(func() {
		if width == c.seekerWidth {
			return
		}
		c.seekerWidth = width
		c.reposition()
	})
	return nil
}

// SetDuration applies a new media duration. A different positive duration
// refits the zoom and relayouts; zero or negative puts the controller in the
// idle state.
func (c *Controller) SetDuration(duration time.Duration) {
	c.dispatch(func() {
		if duration < 0 {
			c.log.Warn("negative duration treated as none", "duration", duration)
			duration = 0
		}
		if duration == c.state.Duration {
			return
		}

		c.state.Duration = duration
		c.state.Progress = position.Clamp(c.state.Progress, duration)
		if c.state.Idle() {
			c.idle()
			return
		}

		c.log.Debug("duration changed", "duration", duration)
		c.manualZoom = false
		c.fit()
	})
}

// SetZoomPercent applies a user zoom. Changes within curve.PercentEpsilon of
// the current percent are ignored.
func (c *Controller) SetZoomPercent(percent float64) {
	c.dispatch(func() {
		c.setZoom(percent)
	})
}

// ZoomIn moves one curve increment towards finer spans.
func (c *Controller) ZoomIn() {
	c.dispatch(func() {
		c.setZoom(c.state.ZoomPercent + c.curve.PercentPerIncrement())
	})
}

// ZoomOut moves one curve increment towards coarser spans.
func (c *Controller) ZoomOut() {
	c.dispatch(func() {
		c.setZoom(c.state.ZoomPercent - c.curve.PercentPerIncrement())
	})
}

// ResetZoom drops the user's zoom and refits the duration to the viewport.
func (c *Controller) ResetZoom() {
	c.dispatch(func() {
		c.manualZoom = false
		if !c.state.Idle() {
			c.fit()
		}
	})
}

// SetProgress applies a playback position. Only the seeker moves.
func (c *Controller) SetProgress(progress time.Duration) {
	c.dispatch(func() {
		progress = position.Clamp(progress, c.state.Duration)
		if progress == c.state.Progress {
			return
		}
		c.state.Progress = progress
		c.reposition()
	})
}

// Tap seeks to the time under content offset x.
func (c *Controller) Tap(x float64) error {
	if math.IsNaN(x) {
		return fmt.Errorf("tap: %w", ErrInvalidOffset)
	}
	c.dispatch(func() {
		t, ok := position.OffsetToTime(x, c.state.Duration, c.state.TimelineWidth)
		if !ok {
			c.log.Debug("tap ignored without layout", "x", x)
			return
		}
		c.seek(position.Clamp(t, c.state.Duration))
	})
	return nil
}

// SeekerDragged seeks to the time under the centre of a seeker released at
// left.
func (c *Controller) SeekerDragged(left, width float64) error {
	if width < 0 {
		return fmt.Errorf("seeker: %w: %.2f", ErrNegativeWidth, width)
	}
	c.dispatch(func() {
		t, ok, err := position.DragTime(left, width, c.state.Duration, c.state.TimelineWidth)
		if err != nil || !ok {
			c.log.Debug("drag ignored without layout", "left", left)
			return
		}
		c.seek(t)
	})
	return nil
}

// dispatch runs fn now, or after the running cascade when called from a
// listener.
func (c *Controller) dispatch(fn func()) {
	if c.busy {
		c.pending = append(c.pending, fn)
		return
	}

	c.busy = true
	defer func() {
		c.busy = false
		c.pending = nil
	}()

	fn()
	for len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		next()
	}
}

func (c *Controller) setZoom(percent float64) {
	percent = clamp(percent, 0, 100)
	if c.laidOut && curve.PercentEqual(percent, c.state.ZoomPercent) {
		return
	}
	c.manualZoom = true
	c.applyZoom(percent)
}

// fit selects the best-fit percent for the current duration and viewport.
func (c *Controller) fit() {
	percent, err := c.curve.InitialPercent(c.state.Duration, c.viewport)
	if err != nil {
		c.log.Debug("zoom fit postponed", "err", err)
		c.laidOut = false
		return
	}
	c.log.Debug("zoom fitted", "duration", c.state.Duration, "viewport", c.viewport, "percent", percent)
	c.applyZoom(percent)
}

// applyZoom resolves the percent, rebuilds the ruler and moves the seeker.
func (c *Controller) applyZoom(percent float64) {
	c.state.ZoomPercent = percent
	c.zoom = c.curve.Resolve(percent)
	for _, l := range c.listeners {
		l.ZoomChanged(c.zoom)
	}

	if c.state.Idle() {
		return
	}

	c.geom = c.builder.Build(c.zoom, c.state.Duration)
	c.state.TimelineWidth = c.geom.ContentWidth
	c.laidOut = true
	c.log.Debug("layout rebuilt",
		"percent", percent,
		"scale", c.zoom.Scale,
		"span", c.zoom.Span,
		"content_width", c.geom.ContentWidth,
		"ticks", len(c.geom.Ticks))
	for _, l := range c.listeners {
		l.LayoutChanged(c.geom)
	}

	c.reposition()
}

// idle clears the layout after the duration dropped to zero.
func (c *Controller) idle() {
	c.log.Debug("no duration, timeline idle")
	c.state.Progress = 0
	c.state.TimelineWidth = 0
	c.geom = &models.Geometry{}
	c.laidOut = false
	c.seekerPlaced = false
	for _, l := range c.listeners {
		l.LayoutChanged(c.geom)
	}
}

// reposition publishes the seeker position for the current progress if it
// moved.
func (c *Controller) reposition() {
	left, ok, err := position.SeekerLeft(c.state.Progress, c.state.Duration, c.state.TimelineWidth, c.seekerWidth)
	if err != nil || !ok {
		return
	}
	if c.seekerPlaced && left == c.seekerLeft {
		return
	}
	c.seekerLeft = left
	c.seekerPlaced = true
	for _, l := range c.listeners {
		l.SeekerMoved(left)
	}
}

// seek applies progress produced by the user and publishes it. The seeker is
// always republished since the widget may have been dragged away from it.
func (c *Controller) seek(t time.Duration) {
	c.seekerPlaced = false
	if t != c.state.Progress {
		c.state.Progress = t
		for _, l := range c.listeners {
			l.ProgressChanged(t)
		}
	}
	c.reposition()
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
