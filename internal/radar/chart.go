package radar

import (
	"fmt"
	"math"

	"radarchart/internal/logger"
)

// Series is one set of values, one per axis, drawn as an overlay polygon.
type Series struct {
	Name   string
	Color  string
	Values []float64
}

func (s Series) clone() Series {
	s.Values = append([]float64(nil), s.Values...)
	return s
}

// Chart owns axis labels and data series and derives their layout.
//
// Chart is not safe for concurrent use; every mutator recomputes the scale,
// re-renders and mounts the result synchronously before returning.
type Chart struct {
	cfg      Config
	layout   Layout
	labels   []string
	series   []Series
	maxValue float64
	scene    Scene
	sink     Sink
	log      *logger.Logger
}

// NewChart creates an empty chart on a width x height canvas.
func NewChart(width, height float64, cfg Config) *Chart {
	cfg = cfg.withDefaults()
	return &Chart{
		cfg:    cfg,
		layout: NewLayout(width, height, cfg.Margin),
		scene:  emptyScene(width, height),
		log:    logger.Component("radar"),
	}
}

// SetLogger replaces the chart's logger.
func (c *Chart) SetLogger(l *logger.Logger) {
	c.log = l
}

// SetTarget attaches the sink that receives every rendered document and
// mounts the current scene into it.
func (c *Chart) SetTarget(sink Sink) error {
	c.sink = sink
	return c.mount(c.scene)
}

// Config returns the effective configuration.
func (c *Chart) Config() Config { return c.cfg }

// Layout returns the canvas geometry.
func (c *Chart) Layout() Layout { return c.layout }

// MaxValue returns the current normalisation denominator.
func (c *Chart) MaxValue() float64 { return c.maxValue }

// Labels returns a copy of the axis labels.
func (c *Chart) Labels() []string {
	return append([]string(nil), c.labels...)
}

// Series returns a copy of the data series with names and colours resolved.
func (c *Chart) Series() []Series {
	out := make([]Series, len(c.series))
	for i, s := range c.series {
		out[i] = c.resolve(i, s).clone()
	}
	return out
}

// Scene returns the most recently rendered scene.
func (c *Chart) Scene() Scene { return c.scene }

// AddAxis appends an axis. Existing series gain a zero value for it.
func (c *Chart) AddAxis(label string) (Scene, error) {
	c.labels = append(c.labels, label)
	for i := range c.series {
		c.series[i].Values = append(c.series[i].Values, 0)
	}
	c.RecomputeMaxValue()
	return c.update()
}

// AddSeries appends an unnamed series.
func (c *Chart) AddSeries(values []float64) (Scene, error) {
	return c.AddNamedSeries(Series{Values: values})
}

// AddNamedSeries appends a series. It must carry one value per axis.
func (c *Chart) AddNamedSeries(s Series) (Scene, error) {
	if err := c.checkLength(s.Values); err != nil {
		return Scene{}, err
	}
	if err := checkFinite(s.Values); err != nil {
		return Scene{}, err
	}
	c.series = append(c.series, s.clone())
	c.RecomputeMaxValue()
	return c.update()
}

// SetValue edits a single value in place.
func (c *Chart) SetValue(series, axis int, value float64) (Scene, error) {
	if series < 0 || series >= len(c.series) {
		return Scene{}, fmt.Errorf("%w: %d of %d", ErrSeriesIndex, series, len(c.series))
	}
	if axis < 0 || axis >= len(c.labels) {
		return Scene{}, fmt.Errorf("%w: %d of %d", ErrAxisIndex, axis, len(c.labels))
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Scene{}, fmt.Errorf("%w: got %v", ErrInvalidValue, value)
	}
	c.series[series].Values[axis] = value
	c.RecomputeMaxValue()
	return c.update()
}

// Replace swaps labels and series wholesale. Nothing changes if any series
// has the wrong length or a non-finite value.
func (c *Chart) Replace(labels []string, series []Series) (Scene, error) {
	for i, s := range series {
		if len(s.Values) != len(labels) {
			return Scene{}, fmt.Errorf("series %d: %w: got %d values for %d axes",
				i, ErrInvalidSeriesLength, len(s.Values), len(labels))
		}
		if err := checkFinite(s.Values); err != nil {
			return Scene{}, fmt.Errorf("series %d: %w", i, err)
		}
	}
	c.labels = append([]string(nil), labels...)
	c.series = make([]Series, len(series))
	for i, s := range series {
		c.series[i] = s.clone()
	}
	c.RecomputeMaxValue()
	return c.update()
}

// RecomputeMaxValue sets the max value across all series and returns it.
// It is 0 when there are no series. Non-finite values are skipped.
func (c *Chart) RecomputeMaxValue() float64 {
	c.maxValue = 0
	first := true
	for _, s := range c.series {
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if first || v > c.maxValue {
				c.maxValue = v
				first = false
			}
		}
	}
	return c.maxValue
}

func (c *Chart) checkLength(values []float64) error {
	if len(values) != len(c.labels) {
		return fmt.Errorf("%w: got %d values for %d axes",
			ErrInvalidSeriesLength, len(values), len(c.labels))
	}
	return nil
}

func checkFinite(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: value %d is %v", ErrInvalidValue, i, v)
		}
	}
	return nil
}

func (c *Chart) resolve(i int, s Series) Series {
	if s.Name == "" {
		s.Name = fmt.Sprintf("Series %d", i+1)
	}
	if s.Color == "" {
		s.Color = c.cfg.Palette[i%len(c.cfg.Palette)]
	}
	return s
}

func (c *Chart) update() (Scene, error) {
	scene := c.Render()
	c.log.Debug("chart rendered", logger.Fields{
		"axes":     len(c.labels),
		"series":   len(c.series),
		"maxValue": c.maxValue,
		"empty":    scene.Empty(),
	})
	if err := c.mount(scene); err != nil {
		return scene, err
	}
	return scene, nil
}

func (c *Chart) mount(scene Scene) error {
	if c.sink == nil {
		return nil
	}
	if err := c.sink.Mount(scene.SVG()); err != nil {
		return fmt.Errorf("failed to mount scene: %w", err)
	}
	return nil
}

// Render projects the current state into a fresh scene and remembers it.
// With no axes or no series the scene is empty.
func (c *Chart) Render() Scene {
	scene := emptyScene(c.layout.Width, c.layout.Height)
	n := len(c.labels)
	if n == 0 || len(c.series) == 0 {
		c.scene = scene
		return scene
	}

	root := &scene.Root
	for i, label := range c.labels {
		root.Children = append(root.Children, c.labelNode(i, n, label))
	}
	root.Children = append(root.Children, c.scaleNode(n))
	for i, s := range c.series {
		root.Children = append(root.Children, c.seriesNode(c.resolve(i, s), n))
	}

	c.scene = scene
	return scene
}

func (c *Chart) labelNode(i, n int, label string) Node {
	angle := AxisAngle(i, n)
	anchor, baseline := labelAlignment(angle)
	return Node{
		Kind:     TextNode,
		Class:    ClassLabel,
		At:       c.layout.Project(1, angle),
		Text:     label,
		Anchor:   anchor,
		Baseline: baseline,
		Style:    Style{Fill: "black", FontSize: c.cfg.LabelSize},
	}
}

func (c *Chart) scaleNode(n int) Node {
	guide := Style{Stroke: c.cfg.GuideColor, StrokeWidth: 1, Opacity: c.cfg.GuideOpacity}
	group := Node{Kind: GroupNode, Class: ClassScale}

	outer := c.layout.Ring(1, n)
	for _, p := range outer {
		group.Children = append(group.Children, Node{
			Kind:   LineNode,
			Class:  ClassGuide,
			Points: []Point{c.layout.Origin, p},
			Style:  guide,
		})
	}

	ring := guide
	ring.Fill = "none"
	for k := 0; k <= c.cfg.RingCount; k++ {
		group.Children = append(group.Children, Node{
			Kind:   PolygonNode,
			Class:  ClassRing,
			Points: c.layout.Ring(float64(k)/float64(c.cfg.RingCount), n),
			Style:  ring,
		})
	}
	return group
}

func (c *Chart) seriesNode(s Series, n int) Node {
	group := Node{Kind: GroupNode, Class: ClassSeries, Name: s.Name}

	pts := make([]Point, n)
	for i := range pts {
		pts[i] = c.layout.Project(fraction(s.Values[i], c.maxValue), AxisAngle(i, n))
	}
	group.Children = append(group.Children, Node{
		Kind:   PolygonNode,
		Class:  ClassArea,
		Name:   s.Name,
		Points: pts,
		Style: Style{
			Fill:        s.Color,
			FillOpacity: c.cfg.FillOpacity,
			Stroke:      s.Color,
			StrokeWidth: 2,
		},
	})

	if c.cfg.ShowMarkers {
		for _, p := range pts {
			group.Children = append(group.Children, Node{
				Kind:   CircleNode,
				Class:  ClassMarker,
				At:     p,
				Radius: c.cfg.MarkerRadius,
				Style:  Style{Fill: s.Color},
			})
		}
	}
	return group
}
