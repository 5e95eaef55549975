// Package songchain ranks similar music tracks and builds playlist chains.
//
// This file implements a fluent API for building playlists from a seed track.
package songchain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/songchain/model"
)

// Playlist creates a new fluent playlist builder from the given seed track.
//
// Example:
//
//	playlist, err := sc.Playlist("track-42").
//	    Length(12).
//	    TempoRange(118, 132).
//	    Named("Friday Warmup").
//	    Build(ctx)
//
//	// Or just the next track:
//	next, err := sc.Playlist("track-42").Segment().Next(ctx)
func (sc *SongChain) Playlist(seedID string) *PlaylistBuilder {
	return &PlaylistBuilder{
		sc:     sc,
		seedID: seedID,
		params: model.DefaultChainParams(),
	}
}

// PlaylistBuilder is a fluent builder for chain construction requests.
type PlaylistBuilder struct {
	sc     *SongChain
	seedID string
	name   string
	params model.ChainParams
}

// Length sets the target chain length, seed included.
func (pb *PlaylistBuilder) Length(n int) *PlaylistBuilder {
	pb.params.Length = n
	return pb
}

// WholeTrack selects the whole-track distance strategy (the default).
func (pb *PlaylistBuilder) WholeTrack() *PlaylistBuilder {
	pb.params.Strategy = model.StrategyWholeTrack
	return pb
}

// Segment selects the aggregated segment similarity strategy.
func (pb *PlaylistBuilder) Segment() *PlaylistBuilder {
	pb.params.Strategy = model.StrategySegment
	return pb
}

// Search tweaks the aggregation parameters used by the segment strategy.
func (pb *PlaylistBuilder) Search(optFns ...func(*model.SearchParams)) *PlaylistBuilder {
	for _, fn := range optFns {
		fn(&pb.params.Search)
	}
	return pb
}

// Groups restricts transitions to tracks from the given source groups.
func (pb *PlaylistBuilder) Groups(groups ...string) *PlaylistBuilder {
	pb.params.AllowGroups = groups
	return pb
}

// TempoRange bounds the tempo of accepted tracks. A zero bound is inactive.
func (pb *PlaylistBuilder) TempoRange(min, max float64) *PlaylistBuilder {
	pb.params.MinTempo = min
	pb.params.MaxTempo = max
	return pb
}

// Budget fixes the number of ranked candidates requested per step. Without
// it the budget grows with the visited set.
func (pb *PlaylistBuilder) Budget(n int) *PlaylistBuilder {
	pb.params.CandidateBudget = n
	return pb
}

// IncludeFlagged also considers tracks flagged as excluded from search.
func (pb *PlaylistBuilder) IncludeFlagged() *PlaylistBuilder {
	pb.params.ExcludeFlagged = false
	pb.params.Search.ExcludeFlagged = false
	return pb
}

// Named sets the playlist name.
func (pb *PlaylistBuilder) Named(name string) *PlaylistBuilder {
	pb.name = name
	return pb
}

// Entries builds the chain and returns its raw entries.
func (pb *PlaylistBuilder) Entries(ctx context.Context) ([]model.ChainEntry, error) {
	return pb.sc.BuildChain(ctx, pb.seedID, func(p *model.ChainParams) {
		*p = pb.params
	})
}

// Build builds the chain and wraps it into a Playlist with a fresh id.
func (pb *PlaylistBuilder) Build(ctx context.Context) (model.Playlist, error) {
	entries, err := pb.Entries(ctx)
	if err != nil {
		return model.Playlist{}, err
	}

	return model.Playlist{
		ID:        uuid.NewString(),
		Name:      pb.name,
		SeedTrack: pb.seedID,
		CreatedAt: time.Now().UTC(),
		Entries:   entries,
	}, nil
}

// Next returns the single best transition from the seed, or ErrNotFound when
// no eligible candidate exists.
func (pb *PlaylistBuilder) Next(ctx context.Context) (model.ChainEntry, error) {
	pb.params.Length = 2

	entries, err := pb.Entries(ctx)
	if err != nil {
		return model.ChainEntry{}, err
	}
	if len(entries) < 2 {
		return model.ChainEntry{}, ErrNotFound
	}

	return entries[1], nil
}
