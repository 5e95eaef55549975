package similarity

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/hupe1980/songchain/model"
	"github.com/hupe1980/songchain/segment"
	"github.com/hupe1980/songchain/vectorindex"
)

// WholeTrackOptions configures a WholeTrack searcher.
type WholeTrackOptions struct {
	// Lookup is applied to every point lookup, e.g. to tune the retry.
	Lookup []func(*vectorindex.LookupOptions)
}

// WholeTrack finds similar tracks by their single whole-track embedding. A
// track may be embedded in several collections (different embedding
// resolutions); results are merged across all of them.
type WholeTrack struct {
	index       vectorindex.Index
	collections []string
	lookupOpts  []func(*vectorindex.LookupOptions)
}

// NewWholeTrack creates a searcher over the given collections.
func NewWholeTrack(index vectorindex.Index, collections []string, optFns ...func(*WholeTrackOptions)) *WholeTrack {
	opts := WholeTrackOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &WholeTrack{
		index:       index,
		collections: collections,
		lookupOpts:  opts.Lookup,
	}
}

// Similar returns up to k tracks closest to trackID, ordered by ascending
// distance. Hits from all collections are flattened and a track seen in
// several keeps its smallest distance. ErrTrackNotFound reports a track
// absent from every collection.
func (w *WholeTrack) Similar(ctx context.Context, trackID string, k int, excludeFlagged bool) ([]model.TrackDistance, error) {
	if k <= 0 {
		return nil, fmt.Errorf("invalid k: %d", k)
	}

	var (
		found bool
		best  = make(map[string]float64)
	)

	var where vectorindex.Where
	if excludeFlagged {
		where = vectorindex.Where{vectorindex.Ne(segment.KeyExcluded, true)}
	}

	for _, collection := range w.collections {
		rec, ok, err := vectorindex.PointLookup(ctx, w.index, collection, trackID, true, w.lookupOpts...)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		found = true

		// One extra neighbor, the query itself comes back at distance 0.
		res, err := w.index.Query(ctx, collection, rec.Vector, k+1, where)
		if err != nil {
			return nil, fmt.Errorf("query collection %s: %w", collection, err)
		}

		for i, id := range res.IDs {
			if id == trackID {
				continue
			}

			d := res.Distances[i]
			if cur, ok := best[id]; !ok || d < cur {
				best[id] = d
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, trackID)
	}

	out := make([]model.TrackDistance, 0, len(best))
	for id, d := range best {
		out = append(out, model.TrackDistance{TrackID: id, Distance: d})
	}

	slices.SortFunc(out, func(a, b model.TrackDistance) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.TrackID, b.TrackID)
	})

	if len(out) > k {
		out = out[:k]
	}

	return out, nil
}
