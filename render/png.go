package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"timeline/models"
)

// WritePNG rasterises the ruler and encodes it as PNG.
func WritePNG(w io.Writer, geom *models.Geometry, opts Options) error {
	img, err := Rasterize(geom, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Rasterize draws the ruler into an RGBA image. Ticks are one pixel wide at
// floor(X); labels are centred on their tick.
func Rasterize(geom *models.Geometry, opts Options) (*image.RGBA, error) {
	width, err := opts.validate(geom)
	if err != nil {
		return nil, err
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, opts.Height))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	for _, tick := range geom.Ticks {
		x := int(math.Floor(tick.X))
		length := int(math.Ceil(opts.tickLength(tick.Height)))
		for y := 0; y < length && y < opts.Height; y++ {
			rgba.SetRGBA(x, y, opts.TickColor)
		}
	}

	dr := &font.Drawer{Dst: rgba, Src: image.NewUniform(opts.TextColor), Face: labelFace}
	baseline := opts.labelBaseline()
	for _, label := range geom.Labels {
		x := int(math.Round(label.X)) - MeasureLabel(label.Text)/2
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(baseline)}
		dr.DrawString(label.Text)
	}

	if opts.Seeker != nil {
		left := int(math.Round(opts.Seeker.Left))
		right := int(math.Round(opts.Seeker.Left + opts.Seeker.Width))
		rect := image.Rect(left, 0, right, opts.Height)
		draw.Draw(rgba, rect, image.NewUniform(premultiply(opts.SeekerFill)), image.Point{}, draw.Over)
	}

	return rgba, nil
}

// premultiply converts a straight-alpha colour to the premultiplied form
// color.RGBA expects.
func premultiply(c color.RGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}
