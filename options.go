package songchain

import (
	"log/slog"

	"github.com/hupe1980/songchain/scorecache"
	"github.com/hupe1980/songchain/vectorindex"
)

// DefaultSegmentCollection is the index collection queried for segment
// embeddings unless WithSegmentCollection overrides it.
const DefaultSegmentCollection = "segments_full"

// DefaultTrackCollection is the index collection queried for whole-track
// embeddings unless WithTrackCollections overrides it.
const DefaultTrackCollection = "tracks_full"

type options struct {
	cache             scorecache.Cache
	segmentCollection string
	trackCollections  []string
	concurrency       int
	lookupOptions     []func(*vectorindex.LookupOptions)
	metricsCollector  MetricsCollector
	logger            *Logger
}

// Option configures SongChain constructor behavior.
type Option func(*options)

// WithScoreCache configures a cache for computed segment rankings.
// Without a cache every request recomputes.
//
// Example with the embedded SQLite cache:
//
//	cache, _ := scorecache.NewSQLite("./data/scores.db")
//	sc, _ := songchain.New(index, meta, songchain.WithScoreCache(cache))
func WithScoreCache(cache scorecache.Cache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithSegmentCollection configures the collection holding segment
// embeddings.
func WithSegmentCollection(name string) Option {
	return func(o *options) {
		if name != "" {
			o.segmentCollection = name
		}
	}
}

// WithTrackCollections configures the collections holding whole-track
// embeddings. Several collections mean several embedding resolutions of the
// same catalog; whole-track results are merged across all of them.
func WithTrackCollections(names ...string) Option {
	return func(o *options) {
		if len(names) > 0 {
			o.trackCollections = names
		}
	}
}

// WithConcurrency bounds the parallel per-segment neighbor queries inside
// one aggregation. The default of 1 keeps them sequential; raising it helps
// against a remote index with per-request latency.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithLookupOptions tunes the retry policy of point lookups, e.g. shorter
// backoff in tests.
func WithLookupOptions(optFns ...func(*vectorindex.LookupOptions)) Option {
	return func(o *options) {
		o.lookupOptions = optFns
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &songchain.BasicMetricsCollector{}
//	sc, _ := songchain.New(index, meta, songchain.WithMetricsCollector(metrics))
//	// ... use sc ...
//	stats := metrics.GetStats()
//	fmt.Printf("Rankings: %d, cache hits: %d\n", stats.SimilarityCount, stats.CacheHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := songchain.NewJSONLogger(slog.LevelInfo)
//	sc, _ := songchain.New(index, meta, songchain.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		segmentCollection: DefaultSegmentCollection,
		trackCollections:  []string{DefaultTrackCollection},
		concurrency:       1,
		metricsCollector:  NoopMetricsCollector{},
		logger:            NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
