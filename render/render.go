// Package render exports a ruler layout as an image, either as SVG markup or
// as a PNG raster drawn with the basic bitmap font.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"timeline/models"
)

// ErrEmptyGeometry is returned when there is no ruler to draw.
var ErrEmptyGeometry = errors.New("nothing to render: geometry is empty")

// labelFace is the 7x13 bitmap face used for PNG labels and label metrics.
var labelFace = basicfont.Face7x13

// Seeker is the playback marker drawn over the ruler.
type Seeker struct {
	Left  float64
	Width float64
}

// Options controls the look of an exported ruler.
type Options struct {
	Height      int
	TickHeights []float64 // short, medium, tall
	FontFamily  string    // SVG only
	FontSize    int       // SVG only

	Background color.RGBA
	TickColor  color.RGBA
	TextColor  color.RGBA
	SeekerFill color.RGBA

	Seeker *Seeker
}

// DefaultOptions returns the export defaults.
func DefaultOptions() Options {
	return Options{
		Height:      40,
		TickHeights: []float64{4, 7, 12},
		FontFamily:  "monospace",
		FontSize:    11,
		Background:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		TickColor:   color.RGBA{R: 96, G: 96, B: 96, A: 255},
		TextColor:   color.RGBA{R: 32, G: 32, B: 32, A: 255},
		SeekerFill:  color.RGBA{R: 220, G: 60, B: 40, A: 160},
	}
}

// MeasureLabel returns the pixel width of text in the label font.
func MeasureLabel(text string) int {
	return font.MeasureString(labelFace, text).Ceil()
}

// tickLength returns the drawn length of a tick of the given tier.
func (o Options) tickLength(h models.TickHeight) float64 {
	if len(o.TickHeights) == 0 {
		return 0
	}
	i := int(h)
	if i < 0 {
		i = 0
	}
	if i >= len(o.TickHeights) {
		i = len(o.TickHeights) - 1
	}
	return o.TickHeights[i]
}

// labelBaseline is the y of the label text baseline, just under the tall ticks.
func (o Options) labelBaseline() int {
	return int(math.Ceil(o.tickLength(models.TickTall))) + labelFace.Metrics().Ascent.Ceil() + 2
}

func (o Options) validate(geom *models.Geometry) (int, error) {
	if geom.IsEmpty() {
		return 0, ErrEmptyGeometry
	}
	if o.Height <= 0 {
		return 0, fmt.Errorf("image height must be positive, got %d", o.Height)
	}
	return int(math.Ceil(geom.TotalWidth)), nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
