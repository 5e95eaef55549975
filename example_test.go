package songchain_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/songchain"
	"github.com/hupe1980/songchain/distance"
	"github.com/hupe1980/songchain/metastore"
	"github.com/hupe1980/songchain/model"
	"github.com/hupe1980/songchain/scorecache"
	"github.com/hupe1980/songchain/segment"
	"github.com/hupe1980/songchain/vectorindex"
)

// newExampleEngine seeds an in-memory index with three tracks, each embedded
// once as a whole-track vector and once as a pair of segment vectors.
func newExampleEngine(optFns ...songchain.Option) *songchain.SongChain {
	ctx := context.Background()

	index, _ := vectorindex.NewMemoryIndex(func(o *vectorindex.MemoryIndexOptions) {
		o.Metric = distance.MetricL2
	})

	_ = index.Upsert(ctx, "tracks_full", []vectorindex.Record{
		{ID: "track-a", Vector: []float32{0, 0}},
		{ID: "track-b", Vector: []float32{1, 0}},
		{ID: "track-c", Vector: []float32{0, 2}},
	})

	seg := func(trackID string, idx int, vector ...float32) vectorindex.Record {
		return vectorindex.Record{
			ID:     model.Segment{TrackID: trackID, Index: idx}.ID(),
			Vector: vector,
			Metadata: vectorindex.Document{
				segment.KeySourceTrackID: trackID,
				segment.KeySegmentIndex:  idx,
			},
		}
	}

	_ = index.Upsert(ctx, "segments_full", []vectorindex.Record{
		seg("track-a", 0, 0, 0),
		seg("track-a", 1, 10, 10),
		seg("track-b", 0, 0.1, 0),
		seg("track-b", 1, 10, 10.2),
		seg("track-c", 0, 0.2, 0),
	})

	meta := metastore.NewMemory(
		model.Track{ID: "track-a", Title: "Alpha", Artist: "Ann", SourceGroup: "rock", Tempo: tempo(120)},
		model.Track{ID: "track-b", Title: "Beta", Artist: "Bob", SourceGroup: "rock", Tempo: tempo(124)},
		model.Track{ID: "track-c", Title: "Gamma", Artist: "Cleo", SourceGroup: "jazz", Tempo: tempo(110)},
	)

	sc, _ := songchain.New(index, meta, optFns...)

	return sc
}

// Example_similar demonstrates ranking candidates by aggregated segment hits.
func Example_similar() {
	ctx := context.Background()

	sc := newExampleEngine()
	defer sc.Close()

	candidates, err := sc.Similar(ctx, "track-a", func(p *model.SearchParams) {
		p.SearchTopK = 2
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range candidates {
		fmt.Printf("%s score=%.1f coverage=%.1f\n", c.TrackID, c.FinalScore, c.Coverage)
	}
	// Output:
	// track-b score=112.5 coverage=1.0
	// track-c score=37.5 coverage=1.0
}

// Example_similarByTrack demonstrates whole-track distance search.
func Example_similarByTrack() {
	ctx := context.Background()

	sc := newExampleEngine()
	defer sc.Close()

	matches, err := sc.SimilarByTrack(ctx, "track-a", 2)
	if err != nil {
		log.Fatal(err)
	}

	for _, m := range matches {
		fmt.Printf("%s distance=%.1f\n", m.TrackID, m.Distance)
	}
	// Output:
	// track-b distance=1.0
	// track-c distance=4.0
}

// Example_buildChain demonstrates playlist chain construction.
func Example_buildChain() {
	ctx := context.Background()

	sc := newExampleEngine()
	defer sc.Close()

	entries, err := sc.BuildChain(ctx, "track-a", func(p *model.ChainParams) {
		p.Length = 3
	})
	if err != nil {
		log.Fatal(err)
	}

	for i, e := range entries {
		fmt.Printf("%d. %s\n", i+1, e.Track.Title)
	}
	// Output:
	// 1. Alpha
	// 2. Beta
	// 3. Gamma
}

// Example_playlistBuilder demonstrates the fluent playlist API.
func Example_playlistBuilder() {
	ctx := context.Background()

	sc := newExampleEngine()
	defer sc.Close()

	playlist, err := sc.Playlist("track-a").
		Length(3).
		TempoRange(100, 140).
		Named("Friday Warmup").
		Build(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %d tracks\n", playlist.Name, len(playlist.Entries))
	// Output: Friday Warmup: 3 tracks
}

// Example_scoreCache demonstrates serving repeated rankings from the cache.
func Example_scoreCache() {
	ctx := context.Background()

	metrics := &songchain.BasicMetricsCollector{}

	sc := newExampleEngine(
		songchain.WithScoreCache(scorecache.NewMemory()),
		songchain.WithMetricsCollector(metrics),
	)
	defer sc.Close()

	// The second identical request is served from the cache.
	if _, err := sc.Similar(ctx, "track-a"); err != nil {
		log.Fatal(err)
	}
	if _, err := sc.Similar(ctx, "track-a"); err != nil {
		log.Fatal(err)
	}

	stats := metrics.GetStats()
	fmt.Printf("misses=%d hits=%d\n", stats.CacheMisses, stats.CacheHits)
	// Output: misses=1 hits=1
}
