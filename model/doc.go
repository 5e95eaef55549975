// Package model defines core types used throughout SongChain.
//
// # Catalog Types
//
//   - Track: catalog metadata for one track (title, artist, group, tempo)
//   - Segment: one embedded slice of a track with optional timing
//
// # Result Types
//
//   - SimilarityCandidate: aggregated segment-level match with score breakdown
//   - TrackDistance: whole-track match as raw embedding distance
//   - RankedTrack: positional entry of a ranked candidate list
//   - ChainEntry: one step of a playlist chain
//   - Recommendation: candidate joined with its track metadata
//   - Playlist: archivable chain with identity and provenance
//
// # Parameter Types
//
// SearchParams, WholeTrackParams and ChainParams carry per-call knobs.
// Construct them through the Default constructors and mutate per call:
//
//	p := model.DefaultSearchParams()
//	p.NResults = 25
package model
