package radar

// NodeKind identifies the drawing primitive a Node represents.
type NodeKind int

const (
	GroupNode NodeKind = iota
	TextNode
	LineNode
	PolygonNode
	CircleNode
)

func (k NodeKind) String() string {
	switch k {
	case GroupNode:
		return "g"
	case TextNode:
		return "text"
	case LineNode:
		return "line"
	case PolygonNode:
		return "polygon"
	case CircleNode:
		return "circle"
	default:
		return "unknown"
	}
}

// Node classes emitted by Chart.Render.
const (
	ClassRoot   = "radar"
	ClassLabel  = "label"
	ClassScale  = "scale"
	ClassGuide  = "guide"
	ClassRing   = "ring"
	ClassSeries = "series"
	ClassArea   = "area"
	ClassMarker = "marker"
)

// Style holds presentation attributes. Zero values are omitted on output.
type Style struct {
	Fill        string
	FillOpacity float64
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	FontSize    float64
}

// Node is one element of the scene graph.
//
// Which fields are meaningful depends on Kind: groups use Children, lines
// use the two entries of Points, polygons use all of Points, circles use At
// and Radius, text uses At, Text, Anchor and Baseline.
type Node struct {
	Kind  NodeKind
	Class string
	Name  string
	Style Style

	Children []Node
	Points   []Point

	At     Point
	Radius float64

	Text     string
	Anchor   string
	Baseline string
}

// Walk visits n and its descendants depth-first in paint order. Returning
// false from fn skips the node's children.
func (n Node) Walk(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Scene is a complete drawable description of a chart.
type Scene struct {
	Width  float64
	Height float64
	Root   Node
}

// Empty reports whether the scene has nothing to draw.
func (s Scene) Empty() bool {
	return len(s.Root.Children) == 0
}

// Find returns every node with the given class in paint order.
func (s Scene) Find(class string) []Node {
	var out []Node
	s.Root.Walk(func(n Node) bool {
		if n.Class == class {
			out = append(out, n)
		}
		return true
	})
	return out
}

func emptyScene(width, height float64) Scene {
	return Scene{
		Width:  width,
		Height: height,
		Root:   Node{Kind: GroupNode, Class: ClassRoot},
	}
}
