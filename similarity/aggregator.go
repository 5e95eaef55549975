package similarity

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/songchain/model"
	"github.com/hupe1980/songchain/segment"
	"github.com/hupe1980/songchain/vectorindex"
)

// AggregatorOptions configures an Aggregator.
type AggregatorOptions struct {
	// Concurrency bounds the number of parallel segment queries. The
	// default of 1 keeps the fan-out sequential.
	Concurrency int
}

// Aggregator runs the per-segment neighbor queries and folds the hits into
// ranked candidates.
type Aggregator struct {
	index       vectorindex.Index
	concurrency int
}

// NewAggregator creates an aggregator over the given index.
func NewAggregator(index vectorindex.Index, optFns ...func(*AggregatorOptions)) *Aggregator {
	opts := AggregatorOptions{
		Concurrency: 1,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	return &Aggregator{
		index:       index,
		concurrency: opts.Concurrency,
	}
}

// accumulator folds the hits of one candidate track. hitSegments records
// which query segments produced at least one hit, keyed by segment index.
type accumulator struct {
	score       float64
	hitCount    int
	densityHits int
	hitSegments *roaring.Bitmap
}

// Aggregate queries the index with every segment and merges the hits into
// per-track candidates ranked by final score. Candidates never include the
// query track: the index is asked to exclude it and the query segment's own
// id is skipped defensively in case the predicate is not honored.
//
// Segments are queried independently, so the fan-out parallelizes cleanly;
// every task owns a private accumulator map and the merge happens once all
// tasks are done.
func (a *Aggregator) Aggregate(ctx context.Context, collection, trackID string, segments []model.Segment, params model.SearchParams) ([]model.SimilarityCandidate, error) {
	if len(segments) == 0 {
		return []model.SimilarityCandidate{}, nil
	}

	where := vectorindex.Where{
		vectorindex.Ne(segment.KeySourceTrackID, trackID),
	}
	if params.ExcludeFlagged {
		where = append(where, vectorindex.Ne(segment.KeyExcluded, true))
	}

	locals := make([]map[string]*accumulator, len(segments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, seg := range segments {
		g.Go(func() error {
			res, err := a.index.Query(gctx, collection, seg.Vector, params.SearchTopK, where)
			if err != nil {
				return fmt.Errorf("query segment %s: %w", seg.ID(), err)
			}

			local := make(map[string]*accumulator)

			for j, hitID := range res.IDs {
				if hitID == seg.ID() {
					continue
				}

				owner := segment.OwnerID(hitID)

				acc, ok := local[owner]
				if !ok {
					acc = &accumulator{hitSegments: roaring.NewBitmap()}
					local[owner] = acc
				}

				dist := res.Distances[j]

				acc.score += Normalize(dist, params.DistanceMax)
				acc.hitCount++
				acc.hitSegments.Add(uint32(seg.Index))
				if dist < params.DistanceMax {
					acc.densityHits++
				}
			}

			locals[i] = local
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]*accumulator)
	for _, local := range locals {
		for owner, acc := range local {
			dst, ok := merged[owner]
			if !ok {
				merged[owner] = acc
				continue
			}
			dst.score += acc.score
			dst.hitCount += acc.hitCount
			dst.densityHits += acc.densityHits
			dst.hitSegments.Or(acc.hitSegments)
		}
	}

	return finalize(merged, len(segments), params), nil
}

// finalize computes coverage, density and the weighted final score, then
// ranks and truncates.
func finalize(merged map[string]*accumulator, totalSegments int, params model.SearchParams) []model.SimilarityCandidate {
	out := make([]model.SimilarityCandidate, 0, len(merged))

	denom := float64(totalSegments * params.SearchTopK)

	for trackID, acc := range merged {
		coverage := float64(acc.hitSegments.GetCardinality()) / float64(totalSegments)
		density := float64(acc.densityHits) / denom
		final := acc.score * (0.5 + 0.5*coverage) * (0.5 + 0.5*density)

		out = append(out, model.SimilarityCandidate{
			TrackID:    trackID,
			Score:      acc.score,
			HitCount:   acc.hitCount,
			Coverage:   coverage,
			Density:    density,
			FinalScore: final,
		})
	}

	slices.SortFunc(out, func(a, b model.SimilarityCandidate) int {
		if c := cmp.Compare(b.FinalScore, a.FinalScore); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.HitCount, a.HitCount); c != 0 {
			return c
		}
		return cmp.Compare(a.TrackID, b.TrackID)
	})

	if params.NResults > 0 && len(out) > params.NResults {
		out = out[:params.NResults]
	}

	return out
}
