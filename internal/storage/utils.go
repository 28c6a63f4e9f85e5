package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"
)

// GenerateChartFolderPath generates a consistent folder path for a stored chart.
// Format: YYYY/MM/DD/<slug>-YYYY-MM-DD-HH-MM-SS
func GenerateChartFolderPath(name string, timestamp time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d/%s-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		Slug(name),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// Slug lowercases name and collapses every run of non-alphanumerics to a
// single dash. An empty result becomes "radar-chart".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "radar-chart"
	}
	return s
}

var contentTypes = map[string]string{
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".html": "text/html",
	".json": "application/json",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".txt":  "text/plain",
	".md":   "text/markdown",
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}
