package model

import (
	"fmt"
	"time"
)

// Track is the catalog metadata for one track.
type Track struct {
	ID          string   `json:"track_id"`
	Title       string   `json:"title,omitempty"`
	Artist      string   `json:"artist,omitempty"`
	SourceGroup string   `json:"source_group,omitempty"`
	Tempo       *float64 `json:"tempo,omitempty"`
	Excluded    bool     `json:"excluded,omitempty"`
}

// Segment is one embedded slice of a track as stored in the vector index.
// Timing fields are nil when the index row carries no timing metadata.
type Segment struct {
	TrackID  string
	Index    int
	StartSec *float64
	EndSec   *float64
	Vector   []float32
	ModelTag string
}

// ID returns the index identifier of the segment.
func (s Segment) ID() string {
	return fmt.Sprintf("%s::seg_%04d", s.TrackID, s.Index)
}

// SimilarityCandidate is one aggregated match from segment-level search.
//
// Score is the plain sum of normalized per-hit scores. FinalScore weights
// that sum by coverage and density and is the ranking key.
type SimilarityCandidate struct {
	TrackID    string  `json:"track_id"`
	Score      float64 `json:"score"`
	HitCount   int     `json:"hit_count"`
	Coverage   float64 `json:"coverage"`
	Density    float64 `json:"density"`
	FinalScore float64 `json:"final_score"`
}

// TrackDistance is one whole-track match, reported as the raw embedding
// distance (smaller is closer).
type TrackDistance struct {
	TrackID  string  `json:"track_id"`
	Distance float64 `json:"distance"`
}

// RankedTrack is one entry of a ranked candidate list. Score carries the
// strategy's native figure (distance or final score); ordering is positional.
type RankedTrack struct {
	TrackID string
	Score   float64
}

// ChainEntry is one step of a playlist chain. The seed entry has Score 0.
type ChainEntry struct {
	TrackID string  `json:"track_id"`
	Score   float64 `json:"score"`
	Track   Track   `json:"track"`
}

// Recommendation joins an aggregated candidate with its track metadata.
// Track may carry only the ID when the metadata store has no row for it.
type Recommendation struct {
	Track     Track               `json:"track"`
	Candidate SimilarityCandidate `json:"candidate"`
}

// Playlist is an archivable chain with identity and provenance.
type Playlist struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	SeedTrack string       `json:"seed_track"`
	CreatedAt time.Time    `json:"created_at"`
	Entries   []ChainEntry `json:"entries"`
}
