package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hupe1980/songchain/metastore"
	"github.com/hupe1980/songchain/model"
	"github.com/hupe1980/songchain/similarity"
)

// Options configures a Builder.
type Options struct {
	// Logger receives per-step debug logs.
	Logger *slog.Logger
}

// Builder walks a similarity source into a chain. One Builder serves any
// number of concurrent Build calls, all state lives on the stack.
type Builder struct {
	meta   metastore.Store
	logger *slog.Logger
}

// NewBuilder creates a chain builder over the given metadata store.
func NewBuilder(meta metastore.Store, optFns ...func(*Options)) *Builder {
	opts := Options{
		Logger: slog.New(slog.DiscardHandler),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Builder{
		meta:   meta,
		logger: opts.Logger,
	}
}

// Build extends a chain from seedID until params.Length entries exist or no
// eligible candidate remains. The seed is always the first entry with Score
// 0. A seed unknown to the source fails with similarity.ErrTrackNotFound;
// running out of candidates mid-chain is a normal terminal state and yields
// a shorter chain.
func (b *Builder) Build(ctx context.Context, seedID string, source Source, params model.ChainParams) ([]model.ChainEntry, error) {
	if params.Length < 1 {
		return nil, fmt.Errorf("invalid chain length: %d", params.Length)
	}

	seed, err := b.trackMeta(ctx, seedID)
	if err != nil {
		return nil, err
	}

	visited := map[string]struct{}{seedID: {}}
	entries := []model.ChainEntry{{TrackID: seedID, Track: seed}}

	current := seedID

	for len(entries) < params.Length {
		next, ok, err := b.step(ctx, source, current, visited, params)
		if err != nil {
			switch {
			case errors.Is(err, similarity.ErrEmptyWindow):
				ok = false
			case errors.Is(err, similarity.ErrTrackNotFound) && len(entries) > 1:
				ok = false
			default:
				return nil, err
			}
		}

		if !ok {
			b.logger.DebugContext(ctx, "chain exhausted",
				slog.String("current", current),
				slog.Int("length", len(entries)),
			)
			break
		}

		entries = append(entries, next)
		visited[next.TrackID] = struct{}{}
		current = next.TrackID
	}

	return entries, nil
}

// step picks the best ranked unvisited candidate that passes the group and
// tempo filters. ok is false when no candidate survives.
func (b *Builder) step(ctx context.Context, source Source, current string, visited map[string]struct{}, params model.ChainParams) (model.ChainEntry, bool, error) {
	candidates, err := source.Candidates(ctx, current, params.Budget(len(visited)))
	if err != nil {
		return model.ChainEntry{}, false, err
	}

	unvisited := make([]model.RankedTrack, 0, len(candidates))
	ids := make([]string, 0, len(candidates))

	for _, cand := range candidates {
		if _, seen := visited[cand.TrackID]; seen {
			continue
		}
		unvisited = append(unvisited, cand)
		ids = append(ids, cand.TrackID)
	}

	if len(unvisited) == 0 {
		return model.ChainEntry{}, false, nil
	}

	metas, err := b.meta.GetMany(ctx, ids)
	if err != nil {
		return model.ChainEntry{}, false, fmt.Errorf("metadata lookup: %w", err)
	}

	for _, cand := range unvisited {
		track, ok := metas[cand.TrackID]
		if !ok {
			track = model.Track{ID: cand.TrackID}
		}

		if !eligible(track, params) {
			continue
		}

		b.logger.DebugContext(ctx, "chain step",
			slog.String("from", current),
			slog.String("to", cand.TrackID),
			slog.Float64("score", cand.Score),
		)

		return model.ChainEntry{
			TrackID: cand.TrackID,
			Score:   cand.Score,
			Track:   track,
		}, true, nil
	}

	return model.ChainEntry{}, false, nil
}

// eligible applies the group allow-list and the tempo bounds. While a tempo
// bound is active, a track with unknown tempo never qualifies.
func eligible(track model.Track, params model.ChainParams) bool {
	if len(params.AllowGroups) > 0 && !slices.Contains(params.AllowGroups, track.SourceGroup) {
		return false
	}

	if params.MinTempo > 0 || params.MaxTempo > 0 {
		if track.Tempo == nil {
			return false
		}
		if params.MinTempo > 0 && *track.Tempo < params.MinTempo {
			return false
		}
		if params.MaxTempo > 0 && *track.Tempo > params.MaxTempo {
			return false
		}
	}

	return true
}

// trackMeta fetches one track's metadata, degrading to an id-only record
// when the store has no row.
func (b *Builder) trackMeta(ctx context.Context, id string) (model.Track, error) {
	metas, err := b.meta.GetMany(ctx, []string{id})
	if err != nil {
		return model.Track{}, fmt.Errorf("metadata lookup: %w", err)
	}

	if track, ok := metas[id]; ok {
		return track, nil
	}

	return model.Track{ID: id}, nil
}
