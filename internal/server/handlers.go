package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"radarchart/internal/export"
	"radarchart/internal/logger"
	"radarchart/internal/radar"
	"radarchart/internal/source"
	"radarchart/internal/storage"
)

var (
	// errBadRequest marks failures caused by the client's input.
	errBadRequest = errors.New("bad request")
	errForbidden  = errors.New("forbidden")
)

func statusFor(err error) int {
	if errors.Is(err, errForbidden) {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error":  msg,
		"status": status,
	})
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"version":   s.Version,
	})
}

// loadDefinition reads the definition from the request body, or from the
// URL or path named by the src query parameter.
func (s *Server) loadDefinition(w http.ResponseWriter, r *http.Request) (*source.Definition, error) {
	if src := r.URL.Query().Get("src"); src != "" {
		if !s.Config.AllowRemoteSources {
			return nil, fmt.Errorf("%w: remote sources are disabled", errForbidden)
		}
		if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
			return nil, fmt.Errorf("%w: src must be an http(s) URL", errBadRequest)
		}
		def, err := s.Loader.Load(r.Context(), src)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return def, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDefinitionBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", errBadRequest, err)
	}
	def, err := source.Decode(body, source.FormatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return def, nil
}

// buildChart turns the request into a rendered chart. Every error it
// returns wraps errBadRequest or errForbidden.
func (s *Server) buildChart(w http.ResponseWriter, r *http.Request) (*source.Definition, *radar.Chart, error) {
	def, err := s.loadDefinition(w, r)
	if err != nil {
		return nil, nil, err
	}
	def.SetDefaults(s.Config.ChartWidth, s.Config.ChartHeight)

	chart, err := def.Build(s.Config.ChartConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	chart.SetLogger(s.log.WithComponent("radar"))
	return def, chart, nil
}

type rendered struct {
	contentType string
	ext         string
	data        []byte
}

func renderAs(format string, def *source.Definition, chart *radar.Chart) (rendered, error) {
	switch format {
	case "", "svg":
		return rendered{"image/svg+xml", ".svg", chart.SVG()}, nil
	case "png":
		var buf bytes.Buffer
		if err := export.RasterizePNG(chart.Scene(), &buf); err != nil {
			return rendered{}, err
		}
		return rendered{"image/png", ".png", buf.Bytes()}, nil
	case "html":
		page, err := export.BuildPage(export.PageInput{
			Title:    def.Title,
			Caption:  def.Caption,
			Chart:    chart,
			Filename: storage.Slug(def.Title) + ".svg",
		})
		if err != nil {
			return rendered{}, err
		}
		return rendered{"text/html; charset=utf-8", ".html", []byte(page)}, nil
	case "echarts":
		var buf bytes.Buffer
		if err := export.RadarPage(chart, def.Title, &buf); err != nil {
			return rendered{}, err
		}
		return rendered{"text/html; charset=utf-8", ".html", buf.Bytes()}, nil
	case "datauri":
		return rendered{"text/plain; charset=utf-8", ".txt", []byte(chart.ToImageDataURI())}, nil
	}
	return rendered{}, fmt.Errorf("%w: unsupported format %q", errBadRequest, format)
}

// HandleRender renders a posted definition and returns it in the requested
// format: svg (default), png, html, echarts or datauri.
func (s *Server) HandleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	def, chart, err := s.buildChart(w, r)
	if err != nil {
		s.log.Warn("Rejected render request", logger.Fields{"error": err.Error()})
		writeError(w, statusFor(err), err.Error())
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	out, err := renderAs(format, def, chart)
	if err != nil {
		s.respondRenderError(w, err)
		return
	}

	s.log.Info("Rendered chart", logger.Fields{
		"format": format,
		"axes":   len(def.Axes),
		"series": len(def.Series),
		"bytes":  len(out.data),
	})
	w.Header().Set("Content-Type", out.contentType)
	w.Write(out.data)
}

func (s *Server) respondRenderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, export.ErrEmptyChart):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("Chart export failed", err)
		writeError(w, http.StatusInternalServerError, "Chart export failed: "+err.Error())
	}
}

// HandleCharts stores a new chart on POST and lists stored charts on GET.
func (s *Server) HandleCharts(w http.ResponseWriter, r *http.Request) {
	if s.Storage == nil {
		writeError(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleListCharts(w, r)
	case http.MethodPost:
		s.handleStoreChart(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleStoreChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	def, chart, err := s.buildChart(w, r)
	if err != nil {
		s.log.Warn("Rejected store request", logger.Fields{"error": err.Error()})
		writeError(w, statusFor(err), err.Error())
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = def.Title
	}
	timestamp := s.now()
	folder := storage.GenerateChartFolderPath(name, timestamp)

	// The SVG goes through the chart's own sink; the rest is exported after.
	sink := storage.NewSceneSink(s.Storage, path.Join(folder, "chart.svg")).WithContext(ctx)
	if err := chart.SetTarget(sink); err != nil {
		s.log.Error("Failed to store chart", err, logger.Fields{"folder": folder})
		writeError(w, http.StatusInternalServerError, "Failed to store chart: "+err.Error())
		return
	}
	files := []string{sink.Path()}

	defJSON, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	outputs := map[string][]byte{"definition.json": defJSON}
	for _, format := range []string{"png", "html"} {
		out, err := renderAs(format, def, chart)
		if err != nil {
			s.respondRenderError(w, err)
			return
		}
		file := "chart" + out.ext
		if format == "html" {
			file = "index.html"
		}
		outputs[file] = out.data
	}
	for _, file := range []string{"chart.png", "index.html", "definition.json"} {
		p := path.Join(folder, file)
		if err := s.Storage.StoreFile(ctx, p, outputs[file]); err != nil {
			s.log.Error("Failed to store chart file", err, logger.Fields{"path": p})
			writeError(w, http.StatusInternalServerError, "Failed to store chart: "+err.Error())
			return
		}
		files = append(files, p)
	}

	s.log.Info("Stored chart", logger.Fields{"folder": folder, "files": len(files)})
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"folder":    folder,
		"files":     files,
		"timestamp": timestamp.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > 100 {
		limit = 100
	}

	files, err := s.Storage.ListDir(r.Context(), "", true)
	if err != nil {
		s.log.Error("Failed to list charts", err)
		writeError(w, http.StatusInternalServerError, "Failed to list charts: "+err.Error())
		return
	}

	var charts []string
	for _, f := range files {
		if path.Base(f) == "chart.svg" {
			charts = append(charts, path.Dir(f))
		}
	}
	// Folder names sort chronologically; newest first.
	for i, j := 0, len(charts)-1; i < j; i, j = i+1, j-1 {
		charts[i], charts[j] = charts[j], charts[i]
	}
	if len(charts) > limit {
		charts = charts[:limit]
	}
	if charts == nil {
		charts = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"charts":    charts,
		"count":     len(charts),
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// HandleFileProxy serves stored chart files
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Storage == nil {
		writeError(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		s.log.Debug("File not found", logger.Fields{"path": filePath, "error": err.Error()})
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}
