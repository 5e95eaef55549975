package metastore

import (
	"context"
	"sync"

	"github.com/hupe1980/songchain/model"
)

// Memory is an in-process Store backed by a map.
type Memory struct {
	mu     sync.RWMutex
	tracks map[string]model.Track
}

var _ Store = (*Memory)(nil)

// NewMemory creates a Memory store, optionally seeded with tracks.
func NewMemory(tracks ...model.Track) *Memory {
	m := &Memory{
		tracks: make(map[string]model.Track, len(tracks)),
	}

	for _, t := range tracks {
		m.tracks[t.ID] = t
	}

	return m
}

// Upsert inserts or replaces tracks.
func (m *Memory) Upsert(_ context.Context, tracks ...model.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range tracks {
		m.tracks[t.ID] = t
	}

	return nil
}

// GetMany fetches tracks by id. Ids without a row are absent from the map.
func (m *Memory) GetMany(_ context.Context, ids []string) (map[string]model.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make(map[string]model.Track, len(ids))
	for _, id := range ids {
		if t, ok := m.tracks[id]; ok {
			found[id] = t
		}
	}

	return found, nil
}

// Len returns the number of stored tracks.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.tracks)
}
