package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/songchain/segment"
	"github.com/hupe1980/songchain/vectorindex"
)

func TestUniformVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	assert.LessOrEqual(t, v[0][0], float32(1.0))
	assert.GreaterOrEqual(t, v[1][0], float32(0.0))
}

func TestUnitVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UnitVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))

	// Check normalization
	for _, vec := range v {
		var sum float32
		for _, val := range vec {
			sum += val * val
		}
		assert.InDelta(t, float32(1.0), sum, 1e-5)
	}
}

func TestClusteredVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.ClusteredVectors(100, 32, 5, 0.1)

	assert.Equal(t, 100, len(v))
	assert.Equal(t, 32, len(v[0]))
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)

	v1 := rng.UniformVectors(1, 10)
	rng.Reset()
	v2 := rng.UniformVectors(1, 10)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestSegmentRecords(t *testing.T) {
	rng := NewRNG(4711)

	records := SegmentRecords("track-1", rng.UnitVectors(3, 8))

	require.Len(t, records, 3)
	assert.Equal(t, "track-1::seg_0000", records[0].ID)
	assert.Equal(t, "track-1", records[0].Metadata[segment.KeySourceTrackID])
	assert.Equal(t, 1, records[1].Metadata[segment.KeySegmentIndex])
	assert.Equal(t, 10.0, records[1].Metadata[segment.KeyStartSec])
	assert.Equal(t, 20.0, records[1].Metadata[segment.KeyEndSec])
}

func TestExcludedTrackRecord(t *testing.T) {
	record := ExcludedTrackRecord("track-1", []float32{1, 0})

	assert.Equal(t, "track-1", record.ID)
	assert.Equal(t, true, record.Metadata[segment.KeyExcluded])
}

func TestStaticIndexDefaults(t *testing.T) {
	ctx := context.Background()
	index := &StaticIndex{}

	got, err := index.Get(ctx, "c", []string{"a"}, false)
	require.NoError(t, err)
	assert.Empty(t, got.IDs)

	found, err := index.Find(ctx, "c", vectorindex.Where{}, false)
	require.NoError(t, err)
	assert.Empty(t, found.IDs)

	res, err := index.Query(ctx, "c", []float32{1}, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, res.IDs)
}

func TestStaticIndexOverride(t *testing.T) {
	ctx := context.Background()
	index := &StaticIndex{
		QueryFunc: func(_ context.Context, _ string, _ []float32, _ int, _ vectorindex.Where) (vectorindex.QueryResult, error) {
			return vectorindex.QueryResult{
				IDs:       []string{"track-2"},
				Distances: []float64{0.5},
			}, nil
		},
	}

	res, err := index.Query(ctx, "c", []float32{1}, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"track-2"}, res.IDs)
}
