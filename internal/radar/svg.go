package radar

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/url"
	"strconv"

	svg "github.com/ajstarks/svgo/float"
)

// DataURIPrefix starts every string returned by ToImageDataURI.
const DataURIPrefix = "data:image/svg+xml;charset=utf-8,"

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG writes the scene as a standalone SVG document. An empty scene
// produces a bare canvas.
func (s Scene) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.Width, s.Height)
	if !s.Empty() {
		writeNode(canvas, s.Root)
	}
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("failed to write svg: %w", ew.err)
	}
	return nil
}

// SVG returns the scene as an SVG document.
func (s Scene) SVG() []byte {
	var buf bytes.Buffer
	_ = s.WriteSVG(&buf) // bytes.Buffer writes never fail
	return buf.Bytes()
}

func writeNode(canvas *svg.SVG, n Node) {
	attrs := attributes(n)
	switch n.Kind {
	case GroupNode:
		canvas.Group(attrs...)
		for _, child := range n.Children {
			writeNode(canvas, child)
		}
		canvas.Gend()
	case TextNode:
		canvas.Text(n.At.X, n.At.Y, n.Text, attrs...)
	case LineNode:
		if len(n.Points) == 2 {
			canvas.Line(n.Points[0].X, n.Points[0].Y, n.Points[1].X, n.Points[1].Y, attrs...)
		}
	case PolygonNode:
		xs := make([]float64, len(n.Points))
		ys := make([]float64, len(n.Points))
		for i, p := range n.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		canvas.Polygon(xs, ys, attrs...)
	case CircleNode:
		canvas.Circle(n.At.X, n.At.Y, n.Radius, attrs...)
	}
}

// attributes renders a node's class and style as name="value" pairs,
// which svgo writes verbatim.
func attributes(n Node) []string {
	var out []string
	add := func(name, value string) {
		out = append(out, name+`="`+html.EscapeString(value)+`"`)
	}
	num := func(name string, v float64) {
		if v != 0 {
			add(name, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}

	if n.Class != "" {
		add("class", n.Class)
	}
	if n.Name != "" && n.Kind == GroupNode {
		add("data-name", n.Name)
	}
	if n.Style.Fill != "" {
		add("fill", n.Style.Fill)
	}
	num("fill-opacity", n.Style.FillOpacity)
	if n.Style.Stroke != "" {
		add("stroke", n.Style.Stroke)
	}
	num("stroke-width", n.Style.StrokeWidth)
	num("opacity", n.Style.Opacity)
	num("font-size", n.Style.FontSize)
	if n.Anchor != "" {
		add("text-anchor", n.Anchor)
	}
	if n.Baseline != "" {
		add("dominant-baseline", n.Baseline)
	}
	return out
}

// ToImageDataURI returns the current scene as a URI-escaped SVG data URI,
// ready for a download link.
func (c *Chart) ToImageDataURI() string {
	return DataURIPrefix + url.PathEscape(string(c.scene.SVG()))
}

// SVG returns the current scene as an SVG document.
func (c *Chart) SVG() []byte {
	return c.scene.SVG()
}
