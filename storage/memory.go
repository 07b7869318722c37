package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type blob struct {
	data        []byte
	contentType string
}

// MemoryStore backs DB_TYPE=memory mode and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]blob)}
}

func (s *MemoryStore) Store(_ context.Context, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := keyPrefix + uuid.New().String()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = blob{data: stored, contentType: contentType}
	return key, nil
}

func (s *MemoryStore) Retrieve(_ context.Context, key string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, "", ErrNotFound
	}
	return b.data, b.contentType, nil
}
