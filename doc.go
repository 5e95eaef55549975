// Package songchain ranks similar music tracks and builds playlist chains on
// top of an external vector index.
//
// Tracks are embedded twice: once as a single whole-track vector and once as
// a series of fixed-duration segment vectors. Songchain aggregates
// per-segment neighbor hits into ranked candidates (score, coverage,
// density), caches the rankings, and walks either similarity mode into an
// ordered, duplicate-free chain of tracks.
//
// # Quick Start
//
// Point it at an index and a metadata store:
//
//	ctx := context.Background()
//
//	index := chroma.New("http://localhost:8000")
//	meta, _ := metastore.NewSQLite("./data/tracks.db")
//
//	sc, _ := songchain.New(index, meta,
//	    songchain.WithTrackCollections("tracks_full", "tracks_minimal"),
//	)
//	defer sc.Close()
//
// Ranked candidates for a track:
//
//	candidates, err := sc.Similar(ctx, "track-42", func(p *model.SearchParams) {
//	    p.NResults = 20
//	    p.SkipSeconds = 30
//	})
//
// A playlist chain from a seed:
//
//	entries, err := sc.BuildChain(ctx, "track-42", func(p *model.ChainParams) {
//	    p.Length = 12
//	    p.MinTempo = 120
//	})
//
// Or fluent:
//
//	playlist, err := sc.Playlist("track-42").
//	    Length(12).
//	    TempoRange(118, 132).
//	    Named("Friday Warmup").
//	    Build(ctx)
//
// # Caching
//
// Segment aggregations are expensive (one index query per segment), so
// rankings can be cached by (collection, track, params hash):
//
//	cache, _ := scorecache.NewSQLite("./data/scores.db")
//	sc, _ := songchain.New(index, meta, songchain.WithScoreCache(cache))
//
// Cache failures never fail a request; unreadable rows are recomputed.
package songchain
