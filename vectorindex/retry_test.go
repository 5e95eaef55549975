package vectorindex

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyIndex struct {
	*MemoryIndex

	calls    int
	failures int
}

func (f *flakyIndex) Get(ctx context.Context, collection string, ids []string, includeVectors bool) (GetResult, error) {
	f.calls++
	if f.calls <= f.failures {
		return GetResult{}, errors.New("upstream hiccup")
	}
	return f.MemoryIndex.Get(ctx, collection, ids, includeVectors)
}

func fastLookup(o *LookupOptions) {
	o.Backoff = time.Millisecond
}

func TestPointLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("found on first try", func(t *testing.T) {
		idx := seedIndex(t)

		rec, ok, err := PointLookup(ctx, idx, "tracks", "a", true, fastLookup)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "a", rec.ID)
		assert.Equal(t, []float32{0, 0}, rec.Vector)
	})

	t.Run("absent id is not an error", func(t *testing.T) {
		idx := seedIndex(t)

		_, ok, err := PointLookup(ctx, idx, "tracks", "nope", false, fastLookup)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("recovers after transient failures", func(t *testing.T) {
		idx := &flakyIndex{MemoryIndex: seedIndex(t), failures: 2}

		rec, ok, err := PointLookup(ctx, idx, "tracks", "a", false, fastLookup)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "a", rec.ID)
		assert.Equal(t, 3, idx.calls)
	})

	t.Run("exhausted retries degrade to a miss", func(t *testing.T) {
		idx := &flakyIndex{MemoryIndex: seedIndex(t), failures: 10}

		_, ok, err := PointLookup(ctx, idx, "tracks", "a", false, fastLookup)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 3, idx.calls)
	})

	t.Run("cancellation wins over retries", func(t *testing.T) {
		idx := &flakyIndex{MemoryIndex: seedIndex(t), failures: 10}

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, ok, err := PointLookup(cctx, idx, "tracks", "a", false, fastLookup)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, ok)
	})
}
