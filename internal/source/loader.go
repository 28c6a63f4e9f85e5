package source

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"radarchart/internal/logger"
)

// Loader reads chart definitions from disk or over HTTP.
type Loader struct {
	client *resty.Client
	log    *logger.Logger
}

// NewLoader creates a loader whose HTTP requests time out after timeout.
func NewLoader(timeout time.Duration) *Loader {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(500 * time.Millisecond)
	client.SetHeader("Accept", "application/yaml, application/json;q=0.9, text/plain;q=0.5")

	return &Loader{
		client: client,
		log:    logger.Component("source"),
	}
}

// SetLogger replaces the loader's logger.
func (l *Loader) SetLogger(log *logger.Logger) {
	l.log = log
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Load fetches and decodes the definition at ref, a file path or an
// http(s) URL.
func (l *Loader) Load(ctx context.Context, ref string) (*Definition, error) {
	data, format, err := l.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	def, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ref, err)
	}
	return def, nil
}

// Fetch returns the raw document at ref and the format hinted by its
// extension or content type, empty when unknown.
func (l *Loader) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	if !isRemote(ref) {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read definition: %w", err)
		}
		return data, formatFromExt(filepath.Ext(ref)), nil
	}

	l.log.Info("Fetching chart definition", logger.Fields{"url": ref})
	resp, err := l.client.R().
		SetContext(ctx).
		Get(ref)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch definition: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return nil, "", fmt.Errorf("definition request returned status %d", resp.StatusCode())
	}

	format := FormatFromContentType(resp.Header().Get("Content-Type"))
	if format == "" {
		if u, err := url.Parse(ref); err == nil {
			format = formatFromExt(path.Ext(u.Path))
		}
	}
	return resp.Body(), format, nil
}

func formatFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

// FormatFromContentType maps a media type onto a Decode format, empty when
// it names neither JSON nor YAML.
func FormatFromContentType(ct string) string {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return "json"
	case strings.Contains(mediaType, "yaml"):
		return "yaml"
	}
	return ""
}
