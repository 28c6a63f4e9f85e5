package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"radarchart/internal/radar"
)

// Config holds all configuration for the radar chart service and CLI
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Storage configuration
	StorageMode    string `env:"STORAGE_MODE,default=local"`
	LocalChartsDir string `env:"LOCAL_CHARTS_DIR,default=./charts"`
	GCSBucket      string `env:"GCS_BUCKET"`

	// Chart defaults, overridable per definition
	ChartWidth  float64 `env:"CHART_WIDTH,default=800"`
	ChartHeight float64 `env:"CHART_HEIGHT,default=800"`
	RingCount   int     `env:"RING_COUNT,default=10"`
	ShowMarkers bool    `env:"SHOW_MARKERS,default=true"`

	// Remote definition loading. The server only follows ?src= URLs when
	// AllowRemoteSources is set; the CLI always may.
	FetchTimeout       time.Duration `env:"FETCH_TIMEOUT,default=15s"`
	AllowRemoteSources bool          `env:"ALLOW_REMOTE_SOURCES,default=false"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express
func (c *Config) Validate() error {
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("chart dimensions must be positive, got %gx%g", c.ChartWidth, c.ChartHeight)
	}
	if c.RingCount < 1 {
		return fmt.Errorf("RING_COUNT must be at least 1, got %d", c.RingCount)
	}
	switch c.StorageMode {
	case "local":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when STORAGE_MODE=gcs")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_MODE %q", c.StorageMode)
	}
	return nil
}

// ChartConfig maps the chart-related settings onto a radar.Config
func (c *Config) ChartConfig() radar.Config {
	cfg := radar.DefaultConfig()
	cfg.RingCount = c.RingCount
	cfg.ShowMarkers = c.ShowMarkers
	return cfg
}
