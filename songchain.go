package songchain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/songchain/chain"
	"github.com/hupe1980/songchain/metastore"
	"github.com/hupe1980/songchain/model"
	"github.com/hupe1980/songchain/similarity"
	"github.com/hupe1980/songchain/vectorindex"
)

// SongChain is the similarity and chain-building facade. It is safe for
// concurrent use; all mutable state lives in the external index, metadata
// store and cache.
type SongChain struct {
	index      vectorindex.Index
	meta       metastore.Store
	pipeline   *similarity.Pipeline
	wholeTrack *similarity.WholeTrack
	builder    *chain.Builder
	metrics    MetricsCollector
	logger     *Logger
}

// New creates a SongChain over the given vector index and metadata store.
func New(index vectorindex.Index, meta metastore.Store, optFns ...Option) (*SongChain, error) {
	if index == nil {
		return nil, fmt.Errorf("songchain: index is required")
	}
	if meta == nil {
		return nil, fmt.Errorf("songchain: metadata store is required")
	}

	opts := applyOptions(optFns)

	sc := &SongChain{
		index:   index,
		meta:    meta,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}

	observer := &facadeObserver{
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}

	sc.pipeline = similarity.NewPipeline(index, opts.segmentCollection, func(o *similarity.PipelineOptions) {
		o.Cache = opts.cache
		o.Concurrency = opts.concurrency
		o.Logger = opts.logger.Logger
		o.Observer = observer
	})

	sc.wholeTrack = similarity.NewWholeTrack(index, opts.trackCollections, func(o *similarity.WholeTrackOptions) {
		o.Lookup = opts.lookupOptions
	})

	sc.builder = chain.NewBuilder(meta, func(o *chain.Options) {
		o.Logger = opts.logger.Logger
	})

	return sc, nil
}

// facadeObserver forwards cache hit/miss notifications from the similarity
// pipeline to the configured metrics collector and logger.
type facadeObserver struct {
	metrics MetricsCollector
	logger  *Logger
}

var _ similarity.Observer = (*facadeObserver)(nil)

func (f *facadeObserver) OnCacheHit(collection, trackID string) {
	f.metrics.RecordCacheHit()
	f.logger.LogCacheHit(collection, trackID)
}

func (f *facadeObserver) OnCacheMiss(collection, trackID string) {
	f.metrics.RecordCacheMiss()
	f.logger.LogCacheMiss(collection, trackID)
}

// Similar returns ranked candidates similar to trackID, best first, based on
// aggregated segment neighbor hits.
//
// An unknown track or an empty search window yields an empty result, not an
// error. Upstream failures surface as ErrUpstreamUnavailable.
func (sc *SongChain) Similar(ctx context.Context, trackID string, optFns ...func(*model.SearchParams)) ([]model.SimilarityCandidate, error) {
	start := time.Now()

	params := model.DefaultSearchParams()
	for _, fn := range optFns {
		fn(&params)
	}

	candidates, err := sc.pipeline.Rank(ctx, trackID, params)
	if err != nil {
		if errors.Is(err, similarity.ErrTrackNotFound) || errors.Is(err, similarity.ErrEmptyWindow) {
			sc.metrics.RecordSimilarity(time.Since(start), nil)
			sc.logger.LogEmptyWindow(ctx, trackID, err)
			return []model.SimilarityCandidate{}, nil
		}

		err = translateError(err)
		sc.metrics.RecordSimilarity(time.Since(start), err)
		sc.logger.LogSimilarity(ctx, trackID, 0, err)
		return nil, err
	}

	duration := time.Since(start)
	sc.metrics.RecordSimilarity(duration, nil)
	sc.logger.LogSimilarity(ctx, trackID, len(candidates), nil)
	return candidates, nil
}

// Recommend returns Similar's candidates joined with track metadata,
// preserving rank order. Candidates without a metadata row carry only the
// track id.
func (sc *SongChain) Recommend(ctx context.Context, trackID string, optFns ...func(*model.SearchParams)) ([]model.Recommendation, error) {
	candidates, err := sc.Similar(ctx, trackID, optFns...)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return []model.Recommendation{}, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.TrackID)
	}

	metas, err := sc.meta.GetMany(ctx, ids)
	if err != nil {
		return nil, translateError(fmt.Errorf("metadata lookup: %w", err))
	}

	out := make([]model.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		track, ok := metas[c.TrackID]
		if !ok {
			track = model.Track{ID: c.TrackID}
		}
		out = append(out, model.Recommendation{
			Track:     track,
			Candidate: c,
		})
	}

	return out, nil
}

// SimilarByTrack returns up to k tracks closest to trackID by whole-track
// embedding distance, merged across all configured track collections.
//
// An unknown track yields an empty result, not an error.
func (sc *SongChain) SimilarByTrack(ctx context.Context, trackID string, k int, optFns ...func(*model.WholeTrackParams)) ([]model.TrackDistance, error) {
	start := time.Now()

	if k <= 0 {
		err := ErrInvalidK
		sc.metrics.RecordWholeTrack(time.Since(start), err)
		sc.logger.LogWholeTrack(ctx, trackID, k, 0, err)
		return nil, err
	}

	params := model.DefaultWholeTrackParams()
	for _, fn := range optFns {
		fn(&params)
	}

	matches, err := sc.wholeTrack.Similar(ctx, trackID, k, params.ExcludeFlagged)
	if err != nil {
		if errors.Is(err, similarity.ErrTrackNotFound) {
			sc.metrics.RecordWholeTrack(time.Since(start), nil)
			sc.logger.LogEmptyWindow(ctx, trackID, err)
			return []model.TrackDistance{}, nil
		}

		err = translateError(err)
		sc.metrics.RecordWholeTrack(time.Since(start), err)
		sc.logger.LogWholeTrack(ctx, trackID, k, 0, err)
		return nil, err
	}

	duration := time.Since(start)
	sc.metrics.RecordWholeTrack(duration, nil)
	sc.logger.LogWholeTrack(ctx, trackID, k, len(matches), nil)
	return matches, nil
}

// BuildChain builds an ordered, duplicate-free chain of tracks starting at
// seedID. The chain may be shorter than requested when no eligible candidate
// remains; that is a normal terminal state, not an error.
//
// A seed unknown to the index fails with ErrNotFound.
func (sc *SongChain) BuildChain(ctx context.Context, seedID string, optFns ...func(*model.ChainParams)) ([]model.ChainEntry, error) {
	start := time.Now()

	params := model.DefaultChainParams()
	for _, fn := range optFns {
		fn(&params)
	}

	if params.Length < 1 {
		err := ErrInvalidChainLength
		sc.metrics.RecordChain(0, time.Since(start), err)
		sc.logger.LogChain(ctx, seedID, 0, err)
		return nil, err
	}

	source, err := sc.chainSource(params)
	if err != nil {
		sc.metrics.RecordChain(0, time.Since(start), err)
		sc.logger.LogChain(ctx, seedID, 0, err)
		return nil, err
	}

	entries, err := sc.builder.Build(ctx, seedID, source, params)
	if err != nil {
		err = translateError(err)
		sc.metrics.RecordChain(0, time.Since(start), err)
		sc.logger.LogChain(ctx, seedID, 0, err)
		return nil, err
	}

	duration := time.Since(start)
	sc.metrics.RecordChain(len(entries), duration, nil)
	sc.logger.LogChain(ctx, seedID, len(entries), nil)
	return entries, nil
}

// chainSource maps a strategy to its candidate source.
func (sc *SongChain) chainSource(params model.ChainParams) (chain.Source, error) {
	switch params.Strategy {
	case model.StrategyWholeTrack:
		return chain.NewWholeTrackSource(sc.wholeTrack, params.ExcludeFlagged), nil
	case model.StrategySegment:
		return chain.NewAggregateSource(sc.pipeline, params.Search), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, params.Strategy)
	}
}
