package vectorindex

import (
	"context"
	"testing"

	"github.com/hupe1980/songchain/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedIndex(t *testing.T) *MemoryIndex {
	t.Helper()

	idx, err := NewMemoryIndex(func(o *MemoryIndexOptions) {
		o.Metric = distance.MetricL2
	})
	require.NoError(t, err)

	err = idx.Upsert(context.Background(), "tracks", []Record{
		{ID: "a", Vector: []float32{0, 0}, Metadata: Document{"source_track_id": "a"}},
		{ID: "b", Vector: []float32{1, 0}, Metadata: Document{"source_track_id": "b"}},
		{ID: "c", Vector: []float32{0, 3}, Metadata: Document{"source_track_id": "c", "excluded_from_search": true}},
	})
	require.NoError(t, err)

	return idx
}

func TestMemoryIndexGet(t *testing.T) {
	idx := seedIndex(t)
	ctx := context.Background()

	t.Run("request order, missing skipped", func(t *testing.T) {
		res, err := idx.Get(ctx, "tracks", []string{"c", "nope", "a"}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, res.IDs)
		assert.Nil(t, res.Vectors)
		assert.Len(t, res.Metadatas, 2)
	})

	t.Run("vectors on request", func(t *testing.T) {
		res, err := idx.Get(ctx, "tracks", []string{"b"}, true)
		require.NoError(t, err)
		require.Len(t, res.Vectors, 1)
		assert.Equal(t, []float32{1, 0}, res.Vectors[0])
	})

	t.Run("unknown collection is empty", func(t *testing.T) {
		res, err := idx.Get(ctx, "nope", []string{"a"}, false)
		require.NoError(t, err)
		assert.Empty(t, res.IDs)
	})
}

func TestMemoryIndexFind(t *testing.T) {
	idx := seedIndex(t)

	res, err := idx.Find(context.Background(), "tracks", Where{Ne("excluded_from_search", true)}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.IDs)
}

func TestMemoryIndexQuery(t *testing.T) {
	idx := seedIndex(t)
	ctx := context.Background()

	t.Run("ascending distances", func(t *testing.T) {
		res, err := idx.Query(ctx, "tracks", []float32{0, 0}, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, res.IDs)
		assert.InDelta(t, 0.0, res.Distances[0], 1e-9)
		assert.InDelta(t, 1.0, res.Distances[1], 1e-9)
		assert.InDelta(t, 9.0, res.Distances[2], 1e-9)
	})

	t.Run("predicate filters", func(t *testing.T) {
		res, err := idx.Query(ctx, "tracks", []float32{0, 0}, 3, Where{Ne("source_track_id", "a")})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, res.IDs)
	})

	t.Run("k truncates", func(t *testing.T) {
		res, err := idx.Query(ctx, "tracks", []float32{0, 0}, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, res.IDs)
	})

	t.Run("invalid k", func(t *testing.T) {
		_, err := idx.Query(ctx, "tracks", []float32{0, 0}, 0, nil)
		assert.Error(t, err)
	})
}

func TestMemoryIndexUpsert(t *testing.T) {
	idx := seedIndex(t)
	ctx := context.Background()

	t.Run("replaces existing record", func(t *testing.T) {
		err := idx.Upsert(ctx, "tracks", []Record{{ID: "a", Vector: []float32{5, 5}}})
		require.NoError(t, err)

		res, err := idx.Get(ctx, "tracks", []string{"a"}, true)
		require.NoError(t, err)
		assert.Equal(t, []float32{5, 5}, res.Vectors[0])
		assert.Equal(t, 3, idx.Count("tracks"))
	})

	t.Run("rejects empty vector", func(t *testing.T) {
		err := idx.Upsert(ctx, "tracks", []Record{{ID: "x"}})
		assert.Error(t, err)
	})

	t.Run("rejects empty id", func(t *testing.T) {
		err := idx.Upsert(ctx, "tracks", []Record{{Vector: []float32{1}}})
		assert.Error(t, err)
	})
}
