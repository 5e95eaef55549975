package similarity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hupe1980/songchain/model"
	"github.com/hupe1980/songchain/scorecache"
	"github.com/hupe1980/songchain/segment"
	"github.com/hupe1980/songchain/vectorindex"
)

var (
	// ErrTrackNotFound is returned when the query track has no rows in the
	// index.
	ErrTrackNotFound = errors.New("track not found in index")

	// ErrEmptyWindow is returned when the window filter leaves no query
	// segments.
	ErrEmptyWindow = errors.New("no query segments left in search window")
)

// PipelineOptions configures a Pipeline.
type PipelineOptions struct {
	// Cache stores computed rankings. Nil disables caching.
	Cache scorecache.Cache

	// Concurrency bounds the parallel segment queries, see
	// AggregatorOptions.
	Concurrency int

	// SchemaVersion is folded into cache keys. Defaults to SchemaVersion.
	SchemaVersion int

	// Logger receives cache warnings. Cache failures never fail a request.
	Logger *slog.Logger

	// Observer receives cache hit/miss notifications.
	Observer Observer
}

// Pipeline is the cached segment-similarity path: segments are read from
// the index, narrowed to the search window, aggregated and ranked, with the
// score cache consulted first.
type Pipeline struct {
	catalog       *segment.Catalog
	aggregator    *Aggregator
	collection    string
	cache         scorecache.Cache
	schemaVersion int
	logger        *slog.Logger
	observer      Observer
}

// NewPipeline creates a pipeline over one segment collection.
func NewPipeline(index vectorindex.Index, collection string, optFns ...func(*PipelineOptions)) *Pipeline {
	opts := PipelineOptions{
		SchemaVersion: SchemaVersion,
		Logger:        slog.New(slog.DiscardHandler),
		Observer:      NoopObserver{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Pipeline{
		catalog: segment.NewCatalog(index),
		aggregator: NewAggregator(index, func(o *AggregatorOptions) {
			o.Concurrency = opts.Concurrency
		}),
		collection:    collection,
		cache:         opts.Cache,
		schemaVersion: opts.SchemaVersion,
		logger:        opts.Logger,
		observer:      opts.Observer,
	}
}

// Collection returns the segment collection the pipeline ranks on.
func (p *Pipeline) Collection() string {
	return p.collection
}

// Rank returns the ranked candidates for trackID.
//
// A cache row that exists is returned as is. Unreadable rows are logged and
// treated as misses. Computed rankings are written back unless empty; an
// empty ranking is a valid response but a poor cache entry, the index may
// simply not have neighbors yet.
func (p *Pipeline) Rank(ctx context.Context, trackID string, params model.SearchParams) ([]model.SimilarityCandidate, error) {
	key := scorecache.Key{
		Collection: p.collection,
		TrackID:    trackID,
		ParamsHash: scorecache.HashParams(params, p.schemaVersion),
	}

	if p.cache != nil {
		results, ok, err := p.cache.Get(ctx, key)
		switch {
		case err != nil:
			p.logger.WarnContext(ctx, "score cache read failed",
				slog.String("collection", p.collection),
				slog.String("track_id", trackID),
				slog.String("error", err.Error()),
			)
			p.observer.OnCacheMiss(p.collection, trackID)
		case ok:
			p.observer.OnCacheHit(p.collection, trackID)
			return results, nil
		default:
			p.observer.OnCacheMiss(p.collection, trackID)
		}
	}

	segments, err := p.catalog.Segments(ctx, p.collection, trackID)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, ErrTrackNotFound
	}

	segments = segment.WindowFromParams(params).Apply(segments)
	if len(segments) == 0 {
		return nil, ErrEmptyWindow
	}

	results, err := p.aggregator.Aggregate(ctx, p.collection, trackID, segments, params)
	if err != nil {
		return nil, err
	}

	if p.cache != nil && len(results) > 0 {
		if err := p.cache.Save(ctx, key, results); err != nil {
			p.logger.WarnContext(ctx, "score cache write failed",
				slog.String("collection", p.collection),
				slog.String("track_id", trackID),
				slog.String("error", err.Error()),
			)
		}
	}

	return results, nil
}
