package chain

import (
	"context"

	"github.com/hupe1980/songchain/model"
	"github.com/hupe1980/songchain/similarity"
)

// Source yields ranked next-track candidates for one chain step, best first.
// A current track unknown to the underlying index is reported as
// similarity.ErrTrackNotFound.
type Source interface {
	// Candidates returns up to limit candidates for stepping away from
	// trackID. An empty list is a valid answer.
	Candidates(ctx context.Context, trackID string, limit int) ([]model.RankedTrack, error)
}

// WholeTrackSource ranks candidates by whole-track embedding distance merged
// across all configured collections, closest first.
type WholeTrackSource struct {
	search         *similarity.WholeTrack
	excludeFlagged bool
}

var _ Source = (*WholeTrackSource)(nil)

// NewWholeTrackSource creates a source over a whole-track searcher.
func NewWholeTrackSource(search *similarity.WholeTrack, excludeFlagged bool) *WholeTrackSource {
	return &WholeTrackSource{
		search:         search,
		excludeFlagged: excludeFlagged,
	}
}

// Candidates implements Source. Score carries the raw distance.
func (s *WholeTrackSource) Candidates(ctx context.Context, trackID string, limit int) ([]model.RankedTrack, error) {
	matches, err := s.search.Similar(ctx, trackID, limit, s.excludeFlagged)
	if err != nil {
		return nil, err
	}

	out := make([]model.RankedTrack, 0, len(matches))
	for _, m := range matches {
		out = append(out, model.RankedTrack{TrackID: m.TrackID, Score: m.Distance})
	}

	return out, nil
}

// AggregateSource ranks candidates by aggregated segment similarity, best
// final score first. Rankings go through the pipeline's score cache.
type AggregateSource struct {
	pipeline *similarity.Pipeline
	params   model.SearchParams
}

var _ Source = (*AggregateSource)(nil)

// NewAggregateSource creates a source over a segment similarity pipeline.
func NewAggregateSource(pipeline *similarity.Pipeline, params model.SearchParams) *AggregateSource {
	return &AggregateSource{
		pipeline: pipeline,
		params:   params,
	}
}

// Candidates implements Source. Score carries the final score.
func (s *AggregateSource) Candidates(ctx context.Context, trackID string, limit int) ([]model.RankedTrack, error) {
	params := s.params
	params.NResults = limit

	candidates, err := s.pipeline.Rank(ctx, trackID, params)
	if err != nil {
		return nil, err
	}

	out := make([]model.RankedTrack, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, model.RankedTrack{TrackID: c.TrackID, Score: c.FinalScore})
	}

	return out, nil
}
