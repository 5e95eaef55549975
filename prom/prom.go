// Package prom provides a Prometheus-backed songchain.MetricsCollector.
//
// Usage:
//
//	reg := prometheus.NewRegistry()
//	sc, err := songchain.New(index, meta,
//	    songchain.WithMetricsCollector(prom.NewCollector(reg)),
//	)
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/songchain"
)

// Options configures a Collector.
type Options struct {
	// Namespace prefixes all metric names. Defaults to "songchain".
	Namespace string
}

// Collector implements songchain.MetricsCollector on Prometheus.
type Collector struct {
	similarityTotal   *prometheus.CounterVec
	similaritySeconds prometheus.Histogram
	wholeTrackTotal   *prometheus.CounterVec
	wholeTrackSeconds prometheus.Histogram
	chainTotal        *prometheus.CounterVec
	chainSeconds      prometheus.Histogram
	chainEntries      prometheus.Histogram
	cacheHitsTotal    prometheus.Counter
	cacheMissesTotal  prometheus.Counter
}

var _ songchain.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer, optFns ...func(*Options)) *Collector {
	opts := Options{
		Namespace: "songchain",
	}

	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	factory := promauto.With(reg)

	return &Collector{
		similarityTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "similarity_requests_total",
			Help:      "Total number of segment similarity requests",
		}, []string{"status"}),
		similaritySeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "similarity_duration_seconds",
			Help:      "Segment similarity request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		wholeTrackTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "whole_track_requests_total",
			Help:      "Total number of whole-track similarity requests",
		}, []string{"status"}),
		wholeTrackSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "whole_track_duration_seconds",
			Help:      "Whole-track similarity request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		chainTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "chain_builds_total",
			Help:      "Total number of chain builds",
		}, []string{"status"}),
		chainSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "chain_build_duration_seconds",
			Help:      "Chain build latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		chainEntries: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "chain_entries",
			Help:      "Number of entries in finished chains",
			Buckets:   prometheus.LinearBuckets(1, 1, 20),
		}),
		cacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "score_cache_hits_total",
			Help:      "Total number of rankings served from the score cache",
		}),
		cacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "score_cache_misses_total",
			Help:      "Total number of rankings that had to be computed",
		}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordSimilarity implements songchain.MetricsCollector.
func (c *Collector) RecordSimilarity(duration time.Duration, err error) {
	c.similarityTotal.WithLabelValues(status(err)).Inc()
	c.similaritySeconds.Observe(duration.Seconds())
}

// RecordWholeTrack implements songchain.MetricsCollector.
func (c *Collector) RecordWholeTrack(duration time.Duration, err error) {
	c.wholeTrackTotal.WithLabelValues(status(err)).Inc()
	c.wholeTrackSeconds.Observe(duration.Seconds())
}

// RecordChain implements songchain.MetricsCollector.
func (c *Collector) RecordChain(length int, duration time.Duration, err error) {
	c.chainTotal.WithLabelValues(status(err)).Inc()
	c.chainSeconds.Observe(duration.Seconds())

	if err == nil {
		c.chainEntries.Observe(float64(length))
	}
}

// RecordCacheHit implements songchain.MetricsCollector.
func (c *Collector) RecordCacheHit() {
	c.cacheHitsTotal.Inc()
}

// RecordCacheMiss implements songchain.MetricsCollector.
func (c *Collector) RecordCacheMiss() {
	c.cacheMissesTotal.Inc()
}
