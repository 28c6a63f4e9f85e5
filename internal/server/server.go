package server

import (
	"net/http"
	"time"

	"radarchart/internal/config"
	"radarchart/internal/logger"
	"radarchart/internal/source"
	"radarchart/internal/storage"
)

// maxDefinitionBytes caps request bodies carrying a chart definition.
const maxDefinitionBytes = 1 << 20

// Server represents the chart rendering service
type Server struct {
	Config  *config.Config
	Storage storage.StorageClient
	Loader  *source.Loader
	Version string

	log *logger.Logger
	now func() time.Time
}

// NewServer creates a new server instance. store may be nil, in which case
// the /charts and /files endpoints answer 503.
func NewServer(cfg *config.Config, store storage.StorageClient, version string) *Server {
	return &Server{
		Config:  cfg,
		Storage: store,
		Loader:  source.NewLoader(cfg.FetchTimeout),
		Version: version,
		log:     logger.Component("server"),
		now:     time.Now,
	}
}

// SetLogger replaces the server's logger.
func (s *Server) SetLogger(l *logger.Logger) {
	s.log = l
	s.Loader.SetLogger(l.WithComponent("source"))
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/render", s.HandleRender)
	mux.HandleFunc("/charts", s.HandleCharts)
	mux.HandleFunc("/files/", s.HandleFileProxy)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
