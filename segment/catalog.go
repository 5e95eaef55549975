package segment

import (
	"cmp"
	"context"
	"slices"

	"github.com/hupe1980/songchain/model"
	"github.com/hupe1980/songchain/vectorindex"
)

// Metadata keys of segment rows in the vector index.
const (
	KeySourceTrackID = "source_track_id"
	KeySegmentIndex  = "segment_index"
	KeyStartSec      = "start_sec"
	KeyEndSec        = "end_sec"
	KeyModelTag      = "model_tag"
	KeyExcluded      = "excluded_from_search"
)

// Catalog reads a track's segments from the vector index.
type Catalog struct {
	index vectorindex.Index
}

// NewCatalog creates a catalog over the given index.
func NewCatalog(index vectorindex.Index) *Catalog {
	return &Catalog{index: index}
}

// Segments returns the track's segments with vectors, ordered by segment
// index. An empty slice means the track has no rows in the collection.
func (c *Catalog) Segments(ctx context.Context, collection, trackID string) ([]model.Segment, error) {
	res, err := c.index.Find(ctx, collection, vectorindex.Where{
		vectorindex.Eq(KeySourceTrackID, trackID),
	}, true)
	if err != nil {
		return nil, err
	}

	segments := make([]model.Segment, 0, len(res.IDs))

	for i, id := range res.IDs {
		seg := model.Segment{TrackID: trackID}

		var doc vectorindex.Document
		if i < len(res.Metadatas) {
			doc = res.Metadatas[i]
		}

		if owner, index, ok := ParseID(id); ok {
			seg.TrackID = owner
			seg.Index = index
		} else if v, ok := docFloat(doc, KeySegmentIndex); ok {
			seg.Index = int(v)
		}

		if v, ok := docFloat(doc, KeyStartSec); ok {
			seg.StartSec = &v
		}
		if v, ok := docFloat(doc, KeyEndSec); ok {
			seg.EndSec = &v
		}
		if v, ok := doc[KeyModelTag].(string); ok {
			seg.ModelTag = v
		}

		if i < len(res.Vectors) {
			seg.Vector = res.Vectors[i]
		}

		segments = append(segments, seg)
	}

	slices.SortFunc(segments, func(a, b model.Segment) int {
		return cmp.Compare(a.Index, b.Index)
	})

	return segments, nil
}

func docFloat(doc vectorindex.Document, key string) (float64, bool) {
	switch v := doc[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
