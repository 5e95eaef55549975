package vectorindex

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/hupe1980/songchain/distance"
)

// MemoryIndexOptions configures a MemoryIndex.
type MemoryIndexOptions struct {
	// Metric selects the distance function. Defaults to cosine, matching
	// the hosted indexes the library is normally pointed at.
	Metric distance.Metric
}

// MemoryIndex is an exact in-process Index. Every query scans the full
// collection, which is fine for tests, examples and small embedded catalogs.
type MemoryIndex struct {
	mu          sync.RWMutex
	metric      distance.Metric
	dist        distance.Func
	collections map[string]map[string]memRecord
}

type memRecord struct {
	vector   []float32
	metadata Document
}

var _ Index = (*MemoryIndex)(nil)

// NewMemoryIndex creates an empty in-process index.
func NewMemoryIndex(optFns ...func(*MemoryIndexOptions)) (*MemoryIndex, error) {
	opts := MemoryIndexOptions{
		Metric: distance.MetricCosine,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	dist, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, err
	}

	return &MemoryIndex{
		metric:      opts.Metric,
		dist:        dist,
		collections: make(map[string]map[string]memRecord),
	}, nil
}

// Upsert inserts or replaces records in a collection.
func (m *MemoryIndex) Upsert(_ context.Context, collection string, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.collections[collection]
	if !ok {
		coll = make(map[string]memRecord)
		m.collections[collection] = coll
	}

	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("record without id")
		}
		if len(rec.Vector) == 0 {
			return fmt.Errorf("record %q has no vector", rec.ID)
		}
		coll[rec.ID] = memRecord{
			vector:   slices.Clone(rec.Vector),
			metadata: maps.Clone(rec.Metadata),
		}
	}

	return nil
}

// Count returns the number of records in a collection.
func (m *MemoryIndex) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.collections[collection])
}

// Get fetches records by id in request order. Missing ids are skipped.
func (m *MemoryIndex) Get(_ context.Context, collection string, ids []string, includeVectors bool) (GetResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var res GetResult

	coll := m.collections[collection]
	for _, id := range ids {
		rec, ok := coll[id]
		if !ok {
			continue
		}
		appendRecord(&res, id, rec, includeVectors)
	}

	return res, nil
}

// Find fetches all records matching the predicate, ordered by id.
func (m *MemoryIndex) Find(_ context.Context, collection string, where Where, includeVectors bool) (GetResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	coll := m.collections[collection]

	ids := make([]string, 0, len(coll))
	for id, rec := range coll {
		if where.Matches(rec.metadata) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	var res GetResult
	for _, id := range ids {
		appendRecord(&res, id, coll[id], includeVectors)
	}

	return res, nil
}

// Query scans the collection and returns up to k nearest neighbors among the
// records matching the predicate, ordered by ascending distance.
func (m *MemoryIndex) Query(_ context.Context, collection string, vector []float32, k int, where Where) (QueryResult, error) {
	if k <= 0 {
		return QueryResult{}, fmt.Errorf("invalid k: %d", k)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	type scored struct {
		id   string
		dist float64
	}

	coll := m.collections[collection]

	hits := make([]scored, 0, len(coll))
	for id, rec := range coll {
		if !where.Matches(rec.metadata) {
			continue
		}
		hits = append(hits, scored{id: id, dist: float64(m.dist(vector, rec.vector))})
	}

	slices.SortFunc(hits, func(a, b scored) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	if len(hits) > k {
		hits = hits[:k]
	}

	res := QueryResult{
		IDs:       make([]string, 0, len(hits)),
		Distances: make([]float64, 0, len(hits)),
		Metadatas: make([]Document, 0, len(hits)),
	}
	for _, h := range hits {
		res.IDs = append(res.IDs, h.id)
		res.Distances = append(res.Distances, h.dist)
		res.Metadatas = append(res.Metadatas, maps.Clone(coll[h.id].metadata))
	}

	return res, nil
}

func appendRecord(res *GetResult, id string, rec memRecord, includeVectors bool) {
	res.IDs = append(res.IDs, id)
	res.Metadatas = append(res.Metadatas, maps.Clone(rec.metadata))
	if includeVectors {
		res.Vectors = append(res.Vectors, slices.Clone(rec.vector))
	}
}
