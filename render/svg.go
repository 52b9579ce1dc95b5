package render

import (
	"fmt"
	"io"
	"strings"

	"timeline/models"
)

// WriteSVG writes the ruler as a standalone SVG document.
func WriteSVG(w io.Writer, geom *models.Geometry, opts Options) error {
	width, err := opts.validate(geom)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, generateSVG(geom, opts, width))
	return err
}

func generateSVG(geom *models.Geometry, opts Options, width int) string {
	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, opts.Height, hexColor(opts.Background)))

	svg.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">`, hexColor(opts.TickColor)))
	svg.WriteString("\n")
	for _, tick := range geom.Ticks {
		svg.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="0" x2="%.2f" y2="%.2f"/>`,
			tick.X, tick.X, opts.tickLength(tick.Height)))
		svg.WriteString("\n")
	}
	svg.WriteString("</g>\n")

	baseline := opts.labelBaseline()
	for _, label := range geom.Labels {
		svg.WriteString(fmt.Sprintf(`<text x="%.2f" y="%d" text-anchor="middle" font-family="%s" font-size="%d" fill="%s">%s</text>`,
			label.X, baseline, escapeXML(opts.FontFamily), opts.FontSize, hexColor(opts.TextColor), escapeXML(label.Text)))
		svg.WriteString("\n")
	}

	if opts.Seeker != nil {
		svg.WriteString(fmt.Sprintf(`<rect class="seeker" x="%.2f" y="0" width="%.2f" height="%d" fill="%s" fill-opacity="%.2f"/>`,
			opts.Seeker.Left, opts.Seeker.Width, opts.Height,
			hexColor(opts.SeekerFill), float64(opts.SeekerFill.A)/255))
		svg.WriteString("\n")
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

// escapeXML escapes special XML characters in a string to ensure valid SVG output.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
