package model

// SearchParams controls segment-level similarity aggregation.
type SearchParams struct {
	// NResults is the maximum number of candidates to return.
	NResults int

	// SearchTopK is the number of neighbors fetched per query segment.
	SearchTopK int

	// DistanceMax is the distance where a hit's normalized score reaches 0.
	// Hits at or beyond it still count toward HitCount but add no score.
	DistanceMax float64

	// MaxSeconds drops query segments starting at or beyond this offset.
	// Zero disables the bound.
	MaxSeconds float64

	// SkipSeconds drops query segments starting before this offset.
	SkipSeconds float64

	// SkipEndSeconds drops query segments ending within this many seconds
	// of the latest segment end. Zero disables the bound.
	SkipEndSeconds float64

	// ExcludeFlagged hides tracks flagged as excluded from search.
	ExcludeFlagged bool
}

// DefaultSearchParams returns the standard aggregation parameters.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		NResults:       10,
		SearchTopK:     5,
		DistanceMax:    0.1,
		ExcludeFlagged: true,
	}
}

// WholeTrackParams controls whole-track similarity queries.
type WholeTrackParams struct {
	// ExcludeFlagged hides tracks flagged as excluded from search.
	ExcludeFlagged bool
}

// DefaultWholeTrackParams returns the standard whole-track parameters.
func DefaultWholeTrackParams() WholeTrackParams {
	return WholeTrackParams{ExcludeFlagged: true}
}

// ChainStrategy selects how chain candidates are ranked.
type ChainStrategy int

const (
	// StrategyWholeTrack ranks candidates by whole-track embedding distance.
	StrategyWholeTrack ChainStrategy = iota

	// StrategySegment ranks candidates by aggregated segment final score.
	StrategySegment
)

// String returns the name of the strategy.
func (s ChainStrategy) String() string {
	switch s {
	case StrategyWholeTrack:
		return "whole_track"
	case StrategySegment:
		return "segment"
	default:
		return "unknown"
	}
}

// ChainParams controls playlist chain construction.
type ChainParams struct {
	// Length is the target chain length including the seed.
	Length int

	// Strategy selects the candidate ranking source.
	Strategy ChainStrategy

	// AllowGroups restricts transitions to tracks whose source group is in
	// the list. Empty means no restriction.
	AllowGroups []string

	// MinTempo and MaxTempo bound the tempo of accepted tracks. A bound is
	// active when non-zero; tracks with unknown tempo are rejected while any
	// bound is active.
	MinTempo float64
	MaxTempo float64

	// CandidateBudget is the number of ranked candidates requested per step.
	// Zero grows the budget with the visited set.
	CandidateBudget int

	// ExcludeFlagged hides tracks flagged as excluded from search.
	ExcludeFlagged bool

	// Search parametrizes the segment strategy.
	Search SearchParams
}

// DefaultChainParams returns the standard chain parameters.
func DefaultChainParams() ChainParams {
	return ChainParams{
		Length:         10,
		Strategy:       StrategyWholeTrack,
		ExcludeFlagged: true,
		Search:         DefaultSearchParams(),
	}
}

// Budget returns the candidate budget for a step given the current visited
// set size.
func (p ChainParams) Budget(visited int) int {
	if p.CandidateBudget > 0 {
		return p.CandidateBudget
	}
	return visited + 10
}
