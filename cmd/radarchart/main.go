// Command radarchart renders a chart definition to SVG, PNG, HTML or a data
// URI and stores the results in the configured storage.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"radarchart/internal/config"
	"radarchart/internal/export"
	"radarchart/internal/logger"
	"radarchart/internal/source"
	"radarchart/internal/storage"
)

func main() {
	in := flag.String("in", "", "chart definition: file path or http(s) URL (required)")
	out := flag.String("out", "", "output directory; forces local storage (default LOCAL_CHARTS_DIR)")
	formats := flag.String("formats", "svg,png,html", "comma-separated outputs: svg,png,html,echarts,datauri")
	name := flag.String("name", "", "chart name used in the output folder (default: definition title)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "radarchart: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.Environment)
	log := logger.Component("cli")

	mode := storage.DeploymentMode(cfg.StorageMode)
	if *out != "" {
		cfg.LocalChartsDir = *out
		mode = storage.DeploymentLocal
	}

	paths, err := run(ctx, cfg, mode, *in, *name, strings.Split(*formats, ","), log)
	if err != nil {
		log.Fatal("Chart generation failed", err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

func run(ctx context.Context, cfg *config.Config, mode storage.DeploymentMode, in, name string, formats []string, log *logger.Logger) ([]string, error) {
	store, err := storage.NewStorageClient(ctx, mode, cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	def, err := source.NewLoader(cfg.FetchTimeout).Load(ctx, in)
	if err != nil {
		return nil, err
	}
	def.SetDefaults(cfg.ChartWidth, cfg.ChartHeight)
	if name == "" {
		name = def.Title
	}
	folder := storage.GenerateChartFolderPath(name, time.Now())

	chart, err := def.NewChart(cfg.ChartConfig())
	if err != nil {
		return nil, err
	}

	want := map[string]bool{}
	for _, f := range formats {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			want[f] = true
		}
	}

	var paths []string
	if want["svg"] {
		sink := storage.NewSceneSink(store, path.Join(folder, "chart.svg"))
		if err := chart.SetTarget(sink); err != nil {
			return nil, err
		}
		paths = append(paths, sink.Path())
		delete(want, "svg")
	}
	if err := def.Apply(chart); err != nil {
		return nil, err
	}
	log.Info("Chart built", logger.Fields{
		"axes":   len(def.Axes),
		"series": len(def.Series),
		"max":    chart.MaxValue(),
	})

	for _, format := range []string{"png", "html", "echarts", "datauri"} {
		if !want[format] {
			continue
		}
		delete(want, format)

		var (
			file string
			data []byte
		)
		switch format {
		case "png":
			var buf bytes.Buffer
			if err := export.RasterizePNG(chart.Scene(), &buf); err != nil {
				return nil, err
			}
			file, data = "chart.png", buf.Bytes()
		case "html":
			page, err := export.BuildPage(export.PageInput{
				Title:    def.Title,
				Caption:  def.Caption,
				Chart:    chart,
				Filename: storage.Slug(name) + ".svg",
			})
			if err != nil {
				return nil, err
			}
			file, data = "index.html", []byte(page)
		case "echarts":
			var buf bytes.Buffer
			if err := export.RadarPage(chart, def.Title, &buf); err != nil {
				return nil, err
			}
			file, data = "interactive.html", buf.Bytes()
		case "datauri":
			file, data = "chart.datauri.txt", []byte(chart.ToImageDataURI())
		}

		p := path.Join(folder, file)
		if err := store.StoreFile(ctx, p, data); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", p, err)
		}
		paths = append(paths, p)
	}

	for unknown := range want {
		log.Warn("Ignoring unknown output format", logger.Fields{"format": unknown})
	}
	return paths, nil
}
