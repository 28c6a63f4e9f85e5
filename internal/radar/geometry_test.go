package radar

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func nearPoint(a, b Point) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestAxisAngleSpacing(t *testing.T) {
	for n := 3; n <= 12; n++ {
		if got := AxisAngle(0, n); !near(got, -math.Pi/2) {
			t.Fatalf("n=%d: axis 0 angle = %v, want -π/2", n, got)
		}
		step := 2 * math.Pi / float64(n)
		for i := 1; i < n; i++ {
			if d := AxisAngle(i, n) - AxisAngle(i-1, n); !near(d, step) {
				t.Errorf("n=%d: gap between axis %d and %d = %v, want %v", n, i-1, i, d, step)
			}
		}
	}
}

func TestProjectDirections(t *testing.T) {
	l := NewLayout(800, 800, 0.8)
	if l.Origin != (Point{400, 400}) {
		t.Fatalf("origin = %+v, want (400,400)", l.Origin)
	}
	if l.RadiusX != 320 || l.RadiusY != 320 {
		t.Fatalf("radius = (%v,%v), want (320,320)", l.RadiusX, l.RadiusY)
	}

	// Four axes: up, right, down, left.
	want := []Point{{400, 80}, {720, 400}, {400, 720}, {80, 400}}
	for i, w := range want {
		got := l.Project(1, AxisAngle(i, 4))
		if !nearPoint(got, w) {
			t.Errorf("axis %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestProjectEllipse(t *testing.T) {
	l := NewLayout(1000, 500, 0.8)
	if l.RadiusX != 400 || l.RadiusY != 200 {
		t.Fatalf("radius = (%v,%v), want (400,200)", l.RadiusX, l.RadiusY)
	}
	top := l.Project(1, AxisAngle(0, 4))
	right := l.Project(1, AxisAngle(1, 4))
	if !nearPoint(top, Point{500, 50}) {
		t.Errorf("top = %+v, want (500,50)", top)
	}
	if !nearPoint(right, Point{900, 250}) {
		t.Errorf("right = %+v, want (900,250)", right)
	}
}

func TestRingVertexCount(t *testing.T) {
	l := NewLayout(400, 400, 0.8)
	for _, n := range []int{1, 2, 3, 7} {
		if got := len(l.Ring(0.5, n)); got != n {
			t.Errorf("Ring(0.5, %d) has %d vertices", n, got)
		}
	}
	for _, p := range l.Ring(0, 5) {
		if !nearPoint(p, l.Origin) {
			t.Errorf("zero ring vertex %+v is not at origin", p)
		}
	}
}

func TestLabelAlignment(t *testing.T) {
	tests := []struct {
		axis, n          int
		anchor, baseline string
	}{
		{0, 4, "middle", "auto"},
		{1, 4, "start", "middle"},
		{2, 4, "middle", "hanging"},
		{3, 4, "end", "middle"},
		{1, 3, "start", "hanging"},
		{2, 3, "end", "hanging"},
	}
	for _, tt := range tests {
		anchor, baseline := labelAlignment(AxisAngle(tt.axis, tt.n))
		if anchor != tt.anchor || baseline != tt.baseline {
			t.Errorf("axis %d/%d: got (%s,%s), want (%s,%s)",
				tt.axis, tt.n, anchor, baseline, tt.anchor, tt.baseline)
		}
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		value, limit, want float64
	}{
		{4, 4, 1},
		{2, 4, 0.5},
		{0, 4, 0},
		{-1, 4, 0},
		{3, 0, 0},
		{5, 4, 1},
		{math.NaN(), 4, 0},
		{math.Inf(1), 4, 1},
		{2, math.Inf(1), 0},
		{2, math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := fraction(tt.value, tt.limit); !near(got, tt.want) {
			t.Errorf("fraction(%v, %v) = %v, want %v", tt.value, tt.limit, got, tt.want)
		}
	}
}
