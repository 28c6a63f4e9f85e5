package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"radarchart/internal/config"
	"radarchart/internal/radar"
)

func cfgWithDir(dir string) *config.Config {
	return &config.Config{LocalChartsDir: dir}
}

func TestGenerateChartFolderPath(t *testing.T) {
	tests := []struct {
		name      string
		chart     string
		timestamp time.Time
		expected  string
	}{
		{
			name:      "standard date and time",
			chart:     "Team Skills",
			timestamp: time.Date(2025, 9, 17, 14, 30, 45, 0, time.UTC),
			expected:  "2025/09/17/team-skills-2025-09-17-14-30-45",
		},
		{
			name:      "single digit month and day",
			chart:     "Q1 / Q2 results!",
			timestamp: time.Date(2025, 3, 5, 8, 7, 6, 0, time.UTC),
			expected:  "2025/03/05/q1-q2-results-2025-03-05-08-07-06",
		},
		{
			name:      "empty name",
			chart:     "",
			timestamp: time.Date(2024, 2, 29, 12, 15, 30, 0, time.UTC),
			expected:  "2024/02/29/radar-chart-2024-02-29-12-15-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateChartFolderPath(tt.chart, tt.timestamp)
			if result != tt.expected {
				t.Errorf("GenerateChartFolderPath() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Hello World":     "hello-world",
		"  --Trim--  ":    "trim",
		"Ünïcode Axis":    "ünïcode-axis",
		"***":             "radar-chart",
		"already-a-slug":  "already-a-slug",
		"Mixed_Case 2025": "mixed-case-2025",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"chart.svg", "image/svg+xml"},
		{"chart.png", "image/png"},
		{"index.html", "text/html"},
		{"meta.json", "application/json"},
		{"def.yaml", "application/yaml"},
		{"notes.txt", "text/plain"},
		{"CHART.SVG", "image/svg+xml"},
		{"archive.tar.gz", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := GetContentType(tt.filename); got != tt.expected {
			t.Errorf("GetContentType(%q) = %q, want %q", tt.filename, got, tt.expected)
		}
	}
}

func TestSceneSinkTracksLatestRender(t *testing.T) {
	client := newTestClient(t)
	sink := NewSceneSink(client, "live/chart.svg")

	c := radar.NewChart(300, 300, radar.DefaultConfig())
	if err := c.SetTarget(sink); err != nil {
		t.Fatalf("SetTarget() error = %v", err)
	}
	if _, err := c.Replace([]string{"A", "B", "C"}, []radar.Series{{Name: "s", Values: []float64{1, 2, 3}}}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	stored, err := client.GetFile(context.Background(), sink.Path())
	if err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}
	if string(stored) != string(c.SVG()) {
		t.Error("stored document differs from the chart's current SVG")
	}
	if !strings.Contains(string(stored), `class="area"`) {
		t.Error("stored document lacks the series area")
	}
}

type failingStore struct{ StorageClient }

func (failingStore) StoreFile(context.Context, string, []byte) error {
	return errors.New("bucket unavailable")
}

func TestSceneSinkPropagatesStoreError(t *testing.T) {
	sink := NewSceneSink(failingStore{}, "x.svg").WithTimeout(time.Second)
	err := sink.Mount([]byte("<svg/>"))
	if err == nil || !strings.Contains(err.Error(), "bucket unavailable") {
		t.Errorf("Mount() error = %v, want store error", err)
	}
}

func TestSceneSinkHonoursContext(t *testing.T) {
	client := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	sink := NewSceneSink(client, "cancelled/chart.svg").WithContext(ctx)

	if err := sink.Mount([]byte("<svg/>")); err != nil {
		t.Fatalf("Mount() before cancel error = %v", err)
	}
	cancel()
	err := sink.Mount([]byte("<svg>second</svg>"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Mount() after cancel error = %v, want context.Canceled", err)
	}
	stored, _ := client.GetFile(context.Background(), sink.Path())
	if string(stored) != "<svg/>" {
		t.Errorf("stored = %q, want the write made before cancel", stored)
	}
}
