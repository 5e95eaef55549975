package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/songchain/metastore"
	"github.com/hupe1980/songchain/model"
	"github.com/hupe1980/songchain/similarity"
)

// fakeSource serves scripted candidate lists and records the requested
// budgets.
type fakeSource struct {
	candidates map[string][]model.RankedTrack
	errs       map[string]error
	limits     []int
}

var _ Source = (*fakeSource)(nil)

func (f *fakeSource) Candidates(_ context.Context, trackID string, limit int) ([]model.RankedTrack, error) {
	f.limits = append(f.limits, limit)

	if err, ok := f.errs[trackID]; ok {
		return nil, err
	}

	list := f.candidates[trackID]
	if len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

type failingStore struct{}

func (failingStore) GetMany(context.Context, []string) (map[string]model.Track, error) {
	return nil, errors.New("store down")
}

func tempo(v float64) *float64 {
	return &v
}

func chainStore() *metastore.Memory {
	return metastore.NewMemory(
		model.Track{ID: "track-a", Title: "Alpha", SourceGroup: "rock", Tempo: tempo(120)},
		model.Track{ID: "track-b", Title: "Beta", SourceGroup: "rock", Tempo: tempo(124)},
		model.Track{ID: "track-c", Title: "Gamma", SourceGroup: "jazz", Tempo: tempo(110)},
		model.Track{ID: "track-d", Title: "Delta", SourceGroup: "jazz", Tempo: tempo(128)},
		model.Track{ID: "track-e", Title: "Epsilon", SourceGroup: "rock"},
	)
}

func trackIDs(entries []model.ChainEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.TrackID)
	}

	return ids
}

func TestBuild(t *testing.T) {
	t.Run("WalksBestFirst", func(t *testing.T) {
		source := &fakeSource{
			candidates: map[string][]model.RankedTrack{
				"track-a": {{TrackID: "track-b", Score: 1}, {TrackID: "track-c", Score: 2}},
				"track-b": {{TrackID: "track-a", Score: 0.5}, {TrackID: "track-c", Score: 2}},
			},
		}

		params := model.DefaultChainParams()
		params.Length = 3

		entries, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, params)
		require.NoError(t, err)
		require.Equal(t, []string{"track-a", "track-b", "track-c"}, trackIDs(entries))

		assert.Zero(t, entries[0].Score)
		assert.Equal(t, "Alpha", entries[0].Track.Title)
		assert.InDelta(t, 1.0, entries[1].Score, 1e-9)
		assert.InDelta(t, 2.0, entries[2].Score, 1e-9)
		assert.Equal(t, "Gamma", entries[2].Track.Title)
	})

	t.Run("StopsWhenAllVisited", func(t *testing.T) {
		source := &fakeSource{
			candidates: map[string][]model.RankedTrack{
				"track-a": {{TrackID: "track-b", Score: 1}},
				"track-b": {{TrackID: "track-a", Score: 1}},
			},
		}

		params := model.DefaultChainParams()
		params.Length = 5

		entries, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, params)
		require.NoError(t, err)
		assert.Equal(t, []string{"track-a", "track-b"}, trackIDs(entries))
	})

	t.Run("SeedOnlyWithoutCandidates", func(t *testing.T) {
		source := &fakeSource{}

		entries, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, model.DefaultChainParams())
		require.NoError(t, err)
		require.Equal(t, []string{"track-a"}, trackIDs(entries))
		assert.Zero(t, entries[0].Score)
	})

	t.Run("UnknownSeedMetadataDegrades", func(t *testing.T) {
		source := &fakeSource{}

		entries, err := NewBuilder(metastore.NewMemory()).Build(context.Background(), "track-zz", source, model.DefaultChainParams())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, model.Track{ID: "track-zz"}, entries[0].Track)
	})

	t.Run("SeedNotFoundFailsFast", func(t *testing.T) {
		source := &fakeSource{
			errs: map[string]error{
				"track-a": fmt.Errorf("%w: track-a", similarity.ErrTrackNotFound),
			},
		}

		_, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, model.DefaultChainParams())
		require.Error(t, err)
		assert.ErrorIs(t, err, similarity.ErrTrackNotFound)
	})

	t.Run("MidChainNotFoundTerminates", func(t *testing.T) {
		source := &fakeSource{
			candidates: map[string][]model.RankedTrack{
				"track-a": {{TrackID: "track-b", Score: 1}},
			},
			errs: map[string]error{
				"track-b": fmt.Errorf("%w: track-b", similarity.ErrTrackNotFound),
			},
		}

		entries, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, model.DefaultChainParams())
		require.NoError(t, err)
		assert.Equal(t, []string{"track-a", "track-b"}, trackIDs(entries))
	})

	t.Run("EmptyWindowTerminates", func(t *testing.T) {
		source := &fakeSource{
			errs: map[string]error{
				"track-a": similarity.ErrEmptyWindow,
			},
		}

		entries, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, model.DefaultChainParams())
		require.NoError(t, err)
		assert.Equal(t, []string{"track-a"}, trackIDs(entries))
	})

	t.Run("SourceErrorPropagates", func(t *testing.T) {
		boom := errors.New("boom")

		source := &fakeSource{
			errs: map[string]error{"track-a": boom},
		}

		_, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, model.DefaultChainParams())
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("MetadataErrorPropagates", func(t *testing.T) {
		source := &fakeSource{}

		_, err := NewBuilder(failingStore{}).Build(context.Background(), "track-a", source, model.DefaultChainParams())
		require.Error(t, err)
		assert.ErrorContains(t, err, "metadata lookup")
	})

	t.Run("InvalidLength", func(t *testing.T) {
		params := model.DefaultChainParams()
		params.Length = 0

		_, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", &fakeSource{}, params)
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid chain length")
	})
}

func TestBuildFilters(t *testing.T) {
	t.Run("GroupAllowList", func(t *testing.T) {
		source := &fakeSource{
			candidates: map[string][]model.RankedTrack{
				"track-a": {
					{TrackID: "track-b", Score: 1},
					{TrackID: "track-unknown", Score: 2},
					{TrackID: "track-c", Score: 3},
				},
			},
		}

		params := model.DefaultChainParams()
		params.Length = 2
		params.AllowGroups = []string{"jazz"}

		entries, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, params)
		require.NoError(t, err)
		// track-b is rock, track-unknown has no metadata row.
		assert.Equal(t, []string{"track-a", "track-c"}, trackIDs(entries))
	})

	t.Run("MinTempoRejectsMissingAndSlow", func(t *testing.T) {
		source := &fakeSource{
			candidates: map[string][]model.RankedTrack{
				"track-a": {
					{TrackID: "track-e", Score: 1},
					{TrackID: "track-c", Score: 2},
					{TrackID: "track-d", Score: 3},
				},
			},
		}

		params := model.DefaultChainParams()
		params.Length = 2
		params.MinTempo = 120

		entries, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, params)
		require.NoError(t, err)
		// track-e has no tempo, track-c sits at 110.
		assert.Equal(t, []string{"track-a", "track-d"}, trackIDs(entries))
	})

	t.Run("MaxTempo", func(t *testing.T) {
		source := &fakeSource{
			candidates: map[string][]model.RankedTrack{
				"track-a": {
					{TrackID: "track-d", Score: 1},
					{TrackID: "track-c", Score: 2},
				},
			},
		}

		params := model.DefaultChainParams()
		params.Length = 2
		params.MaxTempo = 120

		entries, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, params)
		require.NoError(t, err)
		assert.Equal(t, []string{"track-a", "track-c"}, trackIDs(entries))
	})

	t.Run("AllCandidatesFiltered", func(t *testing.T) {
		source := &fakeSource{
			candidates: map[string][]model.RankedTrack{
				"track-a": {{TrackID: "track-c", Score: 1}},
			},
		}

		params := model.DefaultChainParams()
		params.MinTempo = 200

		entries, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, params)
		require.NoError(t, err)
		assert.Equal(t, []string{"track-a"}, trackIDs(entries))
	})
}

func TestBuildBudget(t *testing.T) {
	t.Run("GrowsWithVisited", func(t *testing.T) {
		source := &fakeSource{
			candidates: map[string][]model.RankedTrack{
				"track-a": {{TrackID: "track-b", Score: 1}},
				"track-b": {{TrackID: "track-c", Score: 1}},
			},
		}

		params := model.DefaultChainParams()
		params.Length = 3

		_, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, params)
		require.NoError(t, err)
		assert.Equal(t, []int{11, 12}, source.limits)
	})

	t.Run("FixedBudget", func(t *testing.T) {
		source := &fakeSource{
			candidates: map[string][]model.RankedTrack{
				"track-a": {{TrackID: "track-b", Score: 1}},
				"track-b": {{TrackID: "track-c", Score: 1}},
			},
		}

		params := model.DefaultChainParams()
		params.Length = 3
		params.CandidateBudget = 5

		_, err := NewBuilder(chainStore()).Build(context.Background(), "track-a", source, params)
		require.NoError(t, err)
		assert.Equal(t, []int{5, 5}, source.limits)
	})
}
