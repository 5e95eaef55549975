package metastore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/songchain/model"
)

func tempoOf(v float64) *float64 { return &v }

func TestMemoryGetMany(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(
		model.Track{ID: "a", Title: "Alpha", Tempo: tempoOf(120)},
		model.Track{ID: "b", Title: "Beta"},
	)

	t.Run("missing ids stay absent", func(t *testing.T) {
		found, err := m.GetMany(ctx, []string{"a", "nope", "b"})
		require.NoError(t, err)
		assert.Len(t, found, 2)
		assert.Equal(t, "Alpha", found["a"].Title)
		assert.NotContains(t, found, "nope")
	})

	t.Run("upsert replaces", func(t *testing.T) {
		require.NoError(t, m.Upsert(ctx, model.Track{ID: "a", Title: "Alpha II"}))

		found, err := m.GetMany(ctx, []string{"a"})
		require.NoError(t, err)
		assert.Equal(t, "Alpha II", found["a"].Title)
		assert.Equal(t, 2, m.Len())
	})
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "catalog", "tracks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Upsert(ctx,
		model.Track{ID: "a", Title: "Alpha", Artist: "Ann", SourceGroup: "library", Tempo: tempoOf(128), Excluded: false},
		model.Track{ID: "b", Title: "Beta", Excluded: true},
	))

	t.Run("round trip", func(t *testing.T) {
		found, err := s.GetMany(ctx, []string{"a", "b", "missing"})
		require.NoError(t, err)
		require.Len(t, found, 2)

		a := found["a"]
		assert.Equal(t, "Alpha", a.Title)
		assert.Equal(t, "Ann", a.Artist)
		assert.Equal(t, "library", a.SourceGroup)
		require.NotNil(t, a.Tempo)
		assert.InDelta(t, 128, *a.Tempo, 1e-9)
		assert.False(t, a.Excluded)

		b := found["b"]
		assert.Nil(t, b.Tempo)
		assert.True(t, b.Excluded)
	})

	t.Run("empty id list", func(t *testing.T) {
		found, err := s.GetMany(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		require.NoError(t, s.Upsert(ctx, model.Track{ID: "b", Title: "Beta II"}))

		found, err := s.GetMany(ctx, []string{"b"})
		require.NoError(t, err)
		assert.Equal(t, "Beta II", found["b"].Title)
	})
}
