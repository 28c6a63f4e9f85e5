package radar

import "math"

const (
	fullCircle  = 2 * math.Pi
	quarterTurn = fullCircle / 4

	// sign threshold for label alignment; cos(π/2) is ~6e-17, not 0
	alignEpsilon = 1e-9
)

// Point is a canvas position in pixels. Y grows downward.
type Point struct {
	X, Y float64
}

// Layout holds the canvas geometry shared by every scene element.
type Layout struct {
	Width  float64
	Height float64
	Origin Point

	// RadiusX and RadiusY are the usable radius along each canvas axis.
	// They differ on non-square canvases, which turns rings into ellipse
	// projections of regular polygons.
	RadiusX float64
	RadiusY float64
}

// NewLayout computes the origin and usable radii for a canvas.
func NewLayout(width, height, margin float64) Layout {
	return Layout{
		Width:   width,
		Height:  height,
		Origin:  Point{X: width / 2, Y: height / 2},
		RadiusX: margin * width / 2,
		RadiusY: margin * height / 2,
	}
}

// AxisAngle returns the angle in radians of axis i on an n-axis chart.
// Axis 0 points straight up and the rest follow clockwise on screen.
func AxisAngle(i, n int) float64 {
	return float64(i)*(fullCircle/float64(n)) - quarterTurn
}

// Project returns the point at fraction of the usable radius along angle.
func (l Layout) Project(fraction, angle float64) Point {
	return Point{
		X: l.Origin.X + fraction*l.RadiusX*math.Cos(angle),
		Y: l.Origin.Y + fraction*l.RadiusY*math.Sin(angle),
	}
}

// Ring returns the n vertices at fraction of the usable radius, one per axis.
func (l Layout) Ring(fraction float64, n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = l.Project(fraction, AxisAngle(i, n))
	}
	return pts
}

// labelAlignment picks SVG text-anchor and dominant-baseline values so a
// label placed at the end of a spoke extends away from the chart.
func labelAlignment(angle float64) (anchor, baseline string) {
	cos, sin := math.Cos(angle), math.Sin(angle)
	switch {
	case cos > alignEpsilon:
		anchor = "start"
	case cos < -alignEpsilon:
		anchor = "end"
	default:
		anchor = "middle"
	}
	switch {
	case sin > alignEpsilon:
		baseline = "hanging"
	case sin < -alignEpsilon:
		baseline = "auto"
	default:
		baseline = "middle"
	}
	return anchor, baseline
}

// fraction normalises value against limit, clamped to [0, 1]. A
// non-positive or non-finite limit collapses everything to the origin, as
// does a NaN value.
func fraction(value, limit float64) float64 {
	if limit <= 0 || math.IsInf(limit, 0) || math.IsNaN(limit) || math.IsNaN(value) || value <= 0 {
		return 0
	}
	f := value / limit
	if f > 1 {
		return 1
	}
	return f
}
