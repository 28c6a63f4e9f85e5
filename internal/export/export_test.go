package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"strings"
	"testing"

	"radarchart/internal/logger"
	"radarchart/internal/radar"
)

func testChart(t *testing.T) *radar.Chart {
	t.Helper()
	c := radar.NewChart(400, 300, radar.DefaultConfig())
	c.SetLogger(logger.Discard())
	_, err := c.Replace(
		[]string{"Speed", "Power", "Range", "Cost"},
		[]radar.Series{
			{Name: "Model A", Values: []float64{4, 3, 5, 2}},
			{Name: "Model B", Color: "#00aa00", Values: []float64{2, 5, 3, 4}},
		},
	)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	return c
}

func TestRasterizePNG(t *testing.T) {
	c := testChart(t)
	var buf bytes.Buffer
	if err := RasterizePNG(c.Scene(), &buf); err != nil {
		t.Fatalf("RasterizePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("image size = %dx%d, want 400x300", b.Dx(), b.Dy())
	}

	// Corner lies outside the chart and stays white.
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("corner pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}

func TestRasterizeEmptyScene(t *testing.T) {
	c := radar.NewChart(120, 80, radar.DefaultConfig())
	var buf bytes.Buffer
	if err := RasterizePNG(c.Scene(), &buf); err != nil {
		t.Fatalf("RasterizePNG on empty scene: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("empty scene output is not a PNG: %v", err)
	}
}

func TestRasterizeInvalidSize(t *testing.T) {
	if err := RasterizePNG(radar.Scene{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for zero-size scene")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		opacity float64
		ok      bool
		alpha   uint8
	}{
		{"#ff0000", 1, true, 255},
		{"#f00", 0.5, true, 128},
		{"black", 0.2, true, 51},
		{"none", 1, false, 0},
		{"", 1, false, 0},
		{"#12", 1, false, 0},
		{"chartreuse", 1, false, 0},
	}
	for _, tt := range tests {
		c, ok := parseColor(tt.in, tt.opacity)
		if ok != tt.ok {
			t.Errorf("parseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && c.A != tt.alpha {
			t.Errorf("parseColor(%q, %v) alpha = %d, want %d", tt.in, tt.opacity, c.A, tt.alpha)
		}
	}
}

func TestRadarSnippet(t *testing.T) {
	c := testChart(t)
	snippet, err := RadarSnippet(c, "chart-radar", "Comparison")
	if err != nil {
		t.Fatalf("RadarSnippet: %v", err)
	}
	if snippet.ID != "chart-radar" || snippet.Title != "Comparison" {
		t.Errorf("snippet = %+v", snippet)
	}
	if !strings.Contains(snippet.Div, `id="chart-radar"`) {
		t.Errorf("div missing id: %s", snippet.Div)
	}
	if !strings.Contains(snippet.HTML, snippet.Div) || !strings.Contains(snippet.HTML, snippet.Script) {
		t.Error("HTML does not combine div and script")
	}

	start := strings.Index(snippet.Script, "var option=") + len("var option=")
	end := strings.Index(snippet.Script, ";c.setOption")
	var option struct {
		Radar struct {
			Indicator []struct {
				Name string  `json:"name"`
				Max  float64 `json:"max"`
			} `json:"indicator"`
			SplitNumber int    `json:"splitNumber"`
			Shape       string `json:"shape"`
		} `json:"radar"`
		Series []struct {
			Type string `json:"type"`
			Data []struct {
				Name  string    `json:"name"`
				Value []float64 `json:"value"`
			} `json:"data"`
		} `json:"series"`
	}
	if err := json.Unmarshal([]byte(snippet.Script[start:end]), &option); err != nil {
		t.Fatalf("option JSON: %v", err)
	}
	if len(option.Radar.Indicator) != 4 || option.Radar.Indicator[0].Name != "Speed" || option.Radar.Indicator[0].Max != 5 {
		t.Errorf("indicators = %+v", option.Radar.Indicator)
	}
	if option.Radar.SplitNumber != 10 || option.Radar.Shape != "polygon" {
		t.Errorf("radar = %+v", option.Radar)
	}
	if len(option.Series) != 1 || option.Series[0].Type != "radar" || len(option.Series[0].Data) != 2 {
		t.Fatalf("series = %+v", option.Series)
	}
	if option.Series[0].Data[1].Name != "Model B" {
		t.Errorf("second series name = %q", option.Series[0].Data[1].Name)
	}
}

func TestRadarSnippetEmpty(t *testing.T) {
	c := radar.NewChart(100, 100, radar.DefaultConfig())
	if _, err := RadarSnippet(c, "x", "x"); !errors.Is(err, ErrEmptyChart) {
		t.Errorf("err = %v, want ErrEmptyChart", err)
	}
}

func TestRadarPage(t *testing.T) {
	var buf bytes.Buffer
	if err := RadarPage(testChart(t), "Comparison", &buf); err != nil {
		t.Fatalf("RadarPage: %v", err)
	}
	page := buf.String()
	for _, want := range []string{"<html", "radar", "Speed", "Model A", "Model B"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestBuildPage(t *testing.T) {
	page, err := BuildPage(PageInput{
		Title:   "Team <skills>",
		Caption: "Scores from the **spring** review.",
		Chart:   testChart(t),
	})
	if err != nil {
		t.Fatalf("BuildPage: %v", err)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Team &lt;skills&gt;",
		"<strong>spring</strong>",
		`class="ring"`,
		`download="radar-chart.svg"`,
		"data:image/svg+xml",
		"echarts.init",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, "<?xml") {
		t.Error("inline svg still carries the xml prolog")
	}
}

func TestBuildPageEmptyChart(t *testing.T) {
	page, err := BuildPage(PageInput{Title: "Empty", Chart: radar.NewChart(100, 100, radar.DefaultConfig())})
	if err != nil {
		t.Fatalf("BuildPage: %v", err)
	}
	if !strings.Contains(page, "no data") {
		t.Error("empty chart page should say there is no data")
	}
	if _, err := BuildPage(PageInput{Title: "nil"}); err == nil {
		t.Error("expected error without chart")
	}
}

func TestBuildPageDropsRawHTMLInCaption(t *testing.T) {
	page, err := BuildPage(PageInput{
		Title:   "Caption",
		Caption: "hi **there** <script>alert(1)</script> <img src=x onerror=alert(2)>",
		Chart:   testChart(t),
	})
	if err != nil {
		t.Fatalf("BuildPage: %v", err)
	}
	for _, bad := range []string{"<script>alert(1)", "onerror", "<img"} {
		if strings.Contains(page, bad) {
			t.Errorf("page contains %q from the caption", bad)
		}
	}
	if !strings.Contains(page, "<strong>there</strong>") {
		t.Error("markdown emphasis in caption was lost")
	}
}
