// Package radar lays out radar (spider) charts.
//
// A Chart owns a list of axis labels and one or more data series. Every
// mutation recomputes the shared scale, rebuilds a scene graph of lines,
// polygons, circles and text, and writes its SVG serialisation into the
// Sink the host attached with SetTarget.
package radar

// DefaultPalette holds the series colours used when a series has none.
var DefaultPalette = []string{
	"#ff0000",
	"#1f77b4",
	"#2ca02c",
	"#ff7f0e",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#17becf",
}

// Config controls chart styling and scale resolution.
type Config struct {
	// RingCount is the number of scale steps between origin and boundary.
	// RingCount+1 ring polygons are drawn, the first one at the origin.
	RingCount int

	// Margin is the fraction of each half-dimension used for plotting.
	Margin float64

	// ShowMarkers adds a circle on every series vertex.
	ShowMarkers bool

	MarkerRadius float64
	LabelSize    float64
	GuideColor   string
	GuideOpacity float64
	FillOpacity  float64
	Palette      []string
}

// DefaultConfig returns the standard chart configuration.
func DefaultConfig() Config {
	return Config{
		RingCount:    10,
		Margin:       0.8,
		ShowMarkers:  true,
		MarkerRadius: 2,
		LabelSize:    12,
		GuideColor:   "black",
		GuideOpacity: 0.3,
		FillOpacity:  0.25,
		Palette:      DefaultPalette,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig. ShowMarkers is
// left alone since false is a meaningful choice.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RingCount <= 0 {
		c.RingCount = d.RingCount
	}
	if c.Margin <= 0 || c.Margin > 1 {
		c.Margin = d.Margin
	}
	if c.MarkerRadius <= 0 {
		c.MarkerRadius = d.MarkerRadius
	}
	if c.LabelSize <= 0 {
		c.LabelSize = d.LabelSize
	}
	if c.GuideColor == "" {
		c.GuideColor = d.GuideColor
	}
	if c.GuideOpacity <= 0 {
		c.GuideOpacity = d.GuideOpacity
	}
	if c.FillOpacity <= 0 {
		c.FillOpacity = d.FillOpacity
	}
	if len(c.Palette) == 0 {
		c.Palette = d.Palette
	}
	return c
}
