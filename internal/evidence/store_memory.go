package evidence

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"appeal/pkg/platform/sentinel"
)

// InMemory holds evidence blobs in process. Used by tests and by the
// no-S3 development configuration.
type InMemory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	types map[string]string
}

func NewInMemory() *InMemory {
	return &InMemory{
		blobs: make(map[string][]byte),
		types: make(map[string]string),
	}
}

func (s *InMemory) Put(_ context.Context, key string, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read evidence body: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	s.types[key] = contentType
	return key, nil
}

func (s *InMemory) URL(_ context.Context, ref string, _ time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.blobs[ref]; !ok {
		return "", sentinel.ErrNotFound
	}
	return "memory://" + ref, nil
}

// Bytes returns a stored blob, for test assertions.
func (s *InMemory) Bytes(ref string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[ref]
	return b, ok
}
