package songchain

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the prom
// subpackage ships a Prometheus-backed implementation.
type MetricsCollector interface {
	// RecordSimilarity is called after each segment similarity request.
	// duration is the total time taken, err is nil if successful.
	RecordSimilarity(duration time.Duration, err error)

	// RecordWholeTrack is called after each whole-track similarity request.
	RecordWholeTrack(duration time.Duration, err error)

	// RecordChain is called after each chain build. length is the number of
	// entries in the finished chain, zero on failure.
	RecordChain(length int, duration time.Duration, err error)

	// RecordCacheHit is called when a ranking is served from the score cache.
	RecordCacheHit()

	// RecordCacheMiss is called when a ranking has to be computed.
	RecordCacheMiss()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSimilarity(time.Duration, error)  {}
func (NoopMetricsCollector) RecordWholeTrack(time.Duration, error)  {}
func (NoopMetricsCollector) RecordChain(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordCacheHit()                        {}
func (NoopMetricsCollector) RecordCacheMiss()                       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SimilarityCount      atomic.Int64
	SimilarityErrors     atomic.Int64
	SimilarityTotalNanos atomic.Int64
	WholeTrackCount      atomic.Int64
	WholeTrackErrors     atomic.Int64
	WholeTrackTotalNanos atomic.Int64
	ChainCount           atomic.Int64
	ChainErrors          atomic.Int64
	ChainEntries         atomic.Int64
	CacheHits            atomic.Int64
	CacheMisses          atomic.Int64
}

// RecordSimilarity implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSimilarity(duration time.Duration, err error) {
	b.SimilarityCount.Add(1)
	b.SimilarityTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SimilarityErrors.Add(1)
	}
}

// RecordWholeTrack implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWholeTrack(duration time.Duration, err error) {
	b.WholeTrackCount.Add(1)
	b.WholeTrackTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WholeTrackErrors.Add(1)
	}
}

// RecordChain implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChain(length int, duration time.Duration, err error) {
	b.ChainCount.Add(1)
	b.ChainEntries.Add(int64(length))
	if err != nil {
		b.ChainErrors.Add(1)
	}
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit() {
	b.CacheHits.Add(1)
}

// RecordCacheMiss implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheMiss() {
	b.CacheMisses.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SimilarityCount:     b.SimilarityCount.Load(),
		SimilarityErrors:    b.SimilarityErrors.Load(),
		SimilarityAvgNanos:  b.getAvgSimilarityNanos(),
		WholeTrackCount:     b.WholeTrackCount.Load(),
		WholeTrackErrors:    b.WholeTrackErrors.Load(),
		WholeTrackAvgNanos:  b.getAvgWholeTrackNanos(),
		ChainCount:          b.ChainCount.Load(),
		ChainErrors:         b.ChainErrors.Load(),
		ChainEntries:        b.ChainEntries.Load(),
		CacheHits:           b.CacheHits.Load(),
		CacheMisses:         b.CacheMisses.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSimilarityNanos() int64 {
	count := b.SimilarityCount.Load()
	if count == 0 {
		return 0
	}
	return b.SimilarityTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgWholeTrackNanos() int64 {
	count := b.WholeTrackCount.Load()
	if count == 0 {
		return 0
	}
	return b.WholeTrackTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SimilarityCount     int64
	SimilarityErrors    int64
	SimilarityAvgNanos  int64
	WholeTrackCount     int64
	WholeTrackErrors    int64
	WholeTrackAvgNanos  int64
	ChainCount          int64
	ChainErrors         int64
	ChainEntries        int64
	CacheHits           int64
	CacheMisses         int64
}
