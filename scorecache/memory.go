package scorecache

import (
	"context"
	"sync"

	"github.com/hupe1980/songchain/codec"
	"github.com/hupe1980/songchain/model"
)

// MemoryOptions configures a Memory cache.
type MemoryOptions struct {
	// Codec serializes the stored rows. Defaults to codec.Default.
	Codec codec.Codec
}

// Memory is an in-process Cache. Rows pass through the configured codec so
// the store behaves like its persistent siblings.
type Memory struct {
	codec codec.Codec

	mu      sync.RWMutex
	entries map[Key][]byte
}

var _ Cache = (*Memory)(nil)

// NewMemory creates an empty in-process cache.
func NewMemory(optFns ...func(*MemoryOptions)) *Memory {
	opts := MemoryOptions{
		Codec: codec.Default,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Memory{
		codec:   opts.Codec,
		entries: make(map[Key][]byte),
	}
}

// Get returns the cached results for key.
func (m *Memory) Get(_ context.Context, key Key) ([]model.SimilarityCandidate, bool, error) {
	m.mu.RLock()
	data, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	var results []model.SimilarityCandidate
	if err := m.codec.Unmarshal(data, &results); err != nil {
		return nil, false, NewDecodeError(key, err)
	}

	return results, true, nil
}

// Save inserts or overwrites the results for key.
func (m *Memory) Save(_ context.Context, key Key, results []model.SimilarityCandidate) error {
	data, err := m.codec.Marshal(results)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.entries[key] = data
	m.mu.Unlock()

	return nil
}

// Corrupt overwrites the stored bytes for key. Test hook for the decode
// failure path.
func (m *Memory) Corrupt(key Key, data []byte) {
	m.mu.Lock()
	m.entries[key] = data
	m.mu.Unlock()
}

// Len returns the number of cached rows.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
