// Package source decodes chart definitions from YAML or JSON and replays them
// onto a radar chart.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"radarchart/internal/radar"
)

// Default canvas size used when a definition leaves it unset.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

// ErrInvalidDefinition marks decode and validation failures.
var ErrInvalidDefinition = errors.New("invalid chart definition")

// SeriesDef is one data set in a definition.
type SeriesDef struct {
	Name   string    `yaml:"name" json:"name"`
	Color  string    `yaml:"color,omitempty" json:"color,omitempty"`
	Values []float64 `yaml:"values" json:"values"`
}

// Definition is the serialisable form of a chart.
type Definition struct {
	Title   string      `yaml:"title" json:"title"`
	Caption string      `yaml:"caption,omitempty" json:"caption,omitempty"`
	Width   float64     `yaml:"width,omitempty" json:"width,omitempty"`
	Height  float64     `yaml:"height,omitempty" json:"height,omitempty"`
	Rings   int         `yaml:"rings,omitempty" json:"rings,omitempty"`
	Markers *bool       `yaml:"markers,omitempty" json:"markers,omitempty"`
	Axes    []string    `yaml:"axes" json:"axes"`
	Series  []SeriesDef `yaml:"series" json:"series"`
}

// Decode parses a definition. format is "yaml", "yml", "json" or empty, in
// which case a leading '{' selects JSON and anything else YAML.
func Decode(data []byte, format string) (*Definition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
	}

	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		format = "yaml"
		if trimmed[0] == '{' {
			format = "json"
		}
	}

	var def Definition
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("%w: failed to parse JSON: %v", ErrInvalidDefinition, err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(trimmed))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidDefinition, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidDefinition, format)
	}
	return &def, nil
}

// SetDefaults fills an unset canvas size.
func (d *Definition) SetDefaults(width, height float64) {
	if d.Width == 0 {
		d.Width = width
	}
	if d.Height == 0 {
		d.Height = height
	}
}

// Validate checks the parts of a definition Build cannot recover from.
// Series lengths are left to the chart, which reports ErrInvalidSeriesLength.
func (d *Definition) Validate() error {
	if len(d.Axes) == 0 {
		return fmt.Errorf("%w: at least one axis is required", ErrInvalidDefinition)
	}
	if d.Width < 0 || d.Height < 0 {
		return fmt.Errorf("%w: canvas size must be positive, got %gx%g", ErrInvalidDefinition, d.Width, d.Height)
	}
	if d.Rings < 0 {
		return fmt.Errorf("%w: rings must not be negative", ErrInvalidDefinition)
	}
	for i, axis := range d.Axes {
		if strings.TrimSpace(axis) == "" {
			return fmt.Errorf("%w: axis %d has no label", ErrInvalidDefinition, i)
		}
	}
	return nil
}

// NewChart validates the definition and returns an empty chart sized and
// configured by it. Apply fills it.
func (d *Definition) NewChart(base radar.Config) (*radar.Chart, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	cfg := base
	if d.Rings > 0 {
		cfg.RingCount = d.Rings
	}
	if d.Markers != nil {
		cfg.ShowMarkers = *d.Markers
	}

	width, height := d.Width, d.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	return radar.NewChart(width, height, cfg), nil
}

// Apply replays the definition onto chart: every axis through AddAxis, then
// every series through AddNamedSeries. A chart with a sink attached sees one
// mount per step.
func (d *Definition) Apply(chart *radar.Chart) error {
	for _, axis := range d.Axes {
		if _, err := chart.AddAxis(axis); err != nil {
			return fmt.Errorf("failed to add axis %q: %w", axis, err)
		}
	}
	for i, s := range d.Series {
		_, err := chart.AddNamedSeries(radar.Series{Name: s.Name, Color: s.Color, Values: s.Values})
		if err != nil {
			return fmt.Errorf("series %d (%s): %w", i, s.Name, err)
		}
	}
	return nil
}

// Build is NewChart followed by Apply.
func (d *Definition) Build(base radar.Config) (*radar.Chart, error) {
	chart, err := d.NewChart(base)
	if err != nil {
		return nil, err
	}
	if err := d.Apply(chart); err != nil {
		return nil, err
	}
	return chart, nil
}
