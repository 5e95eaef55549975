package testutil

import (
	"github.com/hupe1980/songchain/model"
	"github.com/hupe1980/songchain/segment"
	"github.com/hupe1980/songchain/vectorindex"
)

// SegmentDuration is the fixed segment length, in seconds, used by fixture
// records.
const SegmentDuration = 10.0

// SegmentRecords builds the segment index records for one track, one record
// per vector, with timing metadata at SegmentDuration steps.
func SegmentRecords(trackID string, vectors [][]float32) []vectorindex.Record {
	records := make([]vectorindex.Record, 0, len(vectors))

	for i, vec := range vectors {
		records = append(records, vectorindex.Record{
			ID:     model.Segment{TrackID: trackID, Index: i}.ID(),
			Vector: vec,
			Metadata: vectorindex.Document{
				segment.KeySourceTrackID: trackID,
				segment.KeySegmentIndex:  i,
				segment.KeyStartSec:      float64(i) * SegmentDuration,
				segment.KeyEndSec:        float64(i+1) * SegmentDuration,
			},
		})
	}

	return records
}

// TrackRecord builds a whole-track index record.
func TrackRecord(trackID string, vector []float32) vectorindex.Record {
	return vectorindex.Record{
		ID:     trackID,
		Vector: vector,
	}
}

// ExcludedTrackRecord builds a whole-track index record flagged as excluded
// from search.
func ExcludedTrackRecord(trackID string, vector []float32) vectorindex.Record {
	return vectorindex.Record{
		ID:     trackID,
		Vector: vector,
		Metadata: vectorindex.Document{
			segment.KeyExcluded: true,
		},
	}
}
