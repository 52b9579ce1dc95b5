package controller

import (
	"time"

	"timeline/models"
)

// Listener receives the controller's outputs. Calls happen synchronously on
// the goroutine that fed the input, in cascade order: ZoomChanged,
// LayoutChanged, SeekerMoved. ProgressChanged is only raised for progress
// the user produced by tapping or dragging.
//
// A listener may call back into the controller; such calls are queued and
// run after the current cascade finishes.
type Listener interface {
	ZoomChanged(zoom models.ZoomState)
	LayoutChanged(geom *models.Geometry)
	SeekerMoved(left float64)
	ProgressChanged(progress time.Duration)
}

// Funcs adapts optional functions to Listener. Nil fields are ignored.
type Funcs struct {
	OnZoom     func(zoom models.ZoomState)
	OnLayout   func(geom *models.Geometry)
	OnSeeker   func(left float64)
	OnProgress func(progress time.Duration)
}

func (f Funcs) ZoomChanged(zoom models.ZoomState) {
	if f.OnZoom != nil {
		f.OnZoom(zoom)
	}
}

func (f Funcs) LayoutChanged(geom *models.Geometry) {
	if f.OnLayout != nil {
		f.OnLayout(geom)
	}
}

func (f Funcs) SeekerMoved(left float64) {
	if f.OnSeeker != nil {
		f.OnSeeker(left)
	}
}

func (f Funcs) ProgressChanged(progress time.Duration) {
	if f.OnProgress != nil {
		f.OnProgress(progress)
	}
}
