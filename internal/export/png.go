package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"radarchart/internal/radar"
)

var namedColors = map[string]drawing.Color{
	"black": drawing.ColorBlack,
	"white": drawing.ColorWhite,
	"red":   drawing.ColorFromHex("ff0000"),
	"green": drawing.ColorFromHex("008000"),
	"blue":  drawing.ColorFromHex("0000ff"),
	"gray":  drawing.ColorFromHex("808080"),
}

// parseColor converts an SVG colour into a drawing colour. ok is false for
// "none" and anything unparseable, meaning "do not paint".
func parseColor(value string, opacity float64) (drawing.Color, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	var c drawing.Color
	switch {
	case value == "" || value == "none":
		return drawing.Color{}, false
	case strings.HasPrefix(value, "#"):
		hex := strings.TrimPrefix(value, "#")
		if len(hex) != 3 && len(hex) != 6 {
			return drawing.Color{}, false
		}
		c = drawing.ColorFromHex(hex)
	default:
		named, ok := namedColors[value]
		if !ok {
			return drawing.Color{}, false
		}
		c = named
	}
	if opacity > 0 && opacity < 1 {
		c = c.WithAlpha(uint8(math.Round(255 * opacity)))
	}
	return c, true
}

// RasterizePNG paints the scene onto a PNG canvas of the scene's size.
func RasterizePNG(scene radar.Scene, w io.Writer) error {
	width := int(math.Ceil(scene.Width))
	height := int(math.Ceil(scene.Height))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("failed to create png renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load default font: %w", err)
	}
	r.SetFont(font)

	// background
	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	if !scene.Empty() {
		paint(r, scene.Root)
	}

	if err := r.Save(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func px(v float64) int {
	return int(math.Round(v))
}

func paint(r chart.Renderer, n radar.Node) {
	switch n.Kind {
	case radar.GroupNode:
		for _, child := range n.Children {
			paint(r, child)
		}
	case radar.LineNode:
		stroke, ok := strokeOf(n.Style)
		if !ok || len(n.Points) != 2 {
			return
		}
		r.SetStrokeColor(stroke)
		r.SetStrokeWidth(n.Style.StrokeWidth)
		r.MoveTo(px(n.Points[0].X), px(n.Points[0].Y))
		r.LineTo(px(n.Points[1].X), px(n.Points[1].Y))
		r.Stroke()
	case radar.PolygonNode:
		if len(n.Points) == 0 {
			return
		}
		fill, hasFill := fillOf(n.Style)
		stroke, hasStroke := strokeOf(n.Style)
		r.MoveTo(px(n.Points[0].X), px(n.Points[0].Y))
		for _, p := range n.Points[1:] {
			r.LineTo(px(p.X), px(p.Y))
		}
		r.Close()
		switch {
		case hasFill && hasStroke:
			r.SetFillColor(fill)
			r.SetStrokeColor(stroke)
			r.SetStrokeWidth(n.Style.StrokeWidth)
			r.FillStroke()
		case hasFill:
			r.SetFillColor(fill)
			r.Fill()
		case hasStroke:
			r.SetStrokeColor(stroke)
			r.SetStrokeWidth(n.Style.StrokeWidth)
			r.Stroke()
		}
	case radar.CircleNode:
		fill, ok := fillOf(n.Style)
		if !ok {
			return
		}
		r.SetFillColor(fill)
		r.Circle(n.Radius, px(n.At.X), px(n.At.Y))
		r.Fill()
	case radar.TextNode:
		paintText(r, n)
	}
}

func paintText(r chart.Renderer, n radar.Node) {
	color, ok := fillOf(n.Style)
	if !ok {
		color = drawing.ColorBlack
	}
	r.SetFontColor(color)
	r.SetFontSize(n.Style.FontSize)

	box := r.MeasureText(n.Text)
	x, y := px(n.At.X), px(n.At.Y)
	switch n.Anchor {
	case "middle":
		x -= box.Width() / 2
	case "end":
		x -= box.Width()
	}
	switch n.Baseline {
	case "hanging":
		y += box.Height()
	case "middle":
		y += box.Height() / 2
	}
	r.Text(n.Text, x, y)
}

func fillOf(s radar.Style) (drawing.Color, bool) {
	return parseColor(s.Fill, opacity(s.Opacity)*opacity(s.FillOpacity))
}

func strokeOf(s radar.Style) (drawing.Color, bool) {
	return parseColor(s.Stroke, opacity(s.Opacity))
}

func opacity(v float64) float64 {
	if v <= 0 || v > 1 {
		return 1
	}
	return v
}
