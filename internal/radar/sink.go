package radar

import "sync"

// Sink receives the serialised SVG document after every render. The host
// owns the sink; a chart only writes to it.
type Sink interface {
	Mount(svg []byte) error
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(svg []byte) error

// Mount calls f(svg).
func (f SinkFunc) Mount(svg []byte) error {
	return f(svg)
}

// MemorySink keeps the most recently mounted document, replacing the
// previous one the way a page element's content is swapped on re-render.
type MemorySink struct {
	mu     sync.Mutex
	doc    []byte
	mounts int
}

// Mount stores a copy of svg.
func (m *MemorySink) Mount(svg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = append(m.doc[:0], svg...)
	m.mounts++
	return nil
}

// Bytes returns a copy of the current document.
func (m *MemorySink) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.doc...)
}

func (m *MemorySink) String() string {
	return string(m.Bytes())
}

// Mounts returns how many documents have been written.
func (m *MemorySink) Mounts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mounts
}
