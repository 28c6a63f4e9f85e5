package storage

import (
	"context"
	"fmt"
	"time"
)

// DefaultSinkTimeout bounds a single SceneSink write.
const DefaultSinkTimeout = 30 * time.Second

// SceneSink stores every mounted SVG document at a fixed path, so the stored
// file always reflects the chart's latest render.
type SceneSink struct {
	client  StorageClient
	path    string
	ctx     context.Context
	timeout time.Duration
}

// NewSceneSink returns a sink writing to path through client. Writes are
// bounded only by the timeout until WithContext supplies a parent.
func NewSceneSink(client StorageClient, path string) *SceneSink {
	return &SceneSink{client: client, path: path, ctx: context.Background(), timeout: DefaultSinkTimeout}
}

// WithContext ties every write to ctx, so cancelling it stops later mounts.
func (s *SceneSink) WithContext(ctx context.Context) *SceneSink {
	s.ctx = ctx
	return s
}

// WithTimeout overrides the per-write timeout.
func (s *SceneSink) WithTimeout(d time.Duration) *SceneSink {
	s.timeout = d
	return s
}

// Path is where mounted documents are stored.
func (s *SceneSink) Path() string {
	return s.path
}

// Mount implements radar.Sink.
func (s *SceneSink) Mount(svg []byte) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	if err := s.client.StoreFile(ctx, s.path, svg); err != nil {
		return fmt.Errorf("failed to store scene at %s: %w", s.path, err)
	}
	return nil
}
