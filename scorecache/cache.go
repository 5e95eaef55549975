// Package scorecache persists aggregated similarity results keyed by query
// track, collection and a digest of the search parameters.
//
// Aggregation fans a query's segments out against the vector index, which is
// the expensive part of serving a request. Results are deterministic for a
// fixed index state, so they are cached aggressively: writers simply
// overwrite (last write wins) and concurrent identical requests are allowed
// to race. A corrupt row is reported as a DecodeError; callers treat it as a
// miss.
package scorecache

import (
	"context"
	"fmt"

	"github.com/hupe1980/songchain/model"
)

// Key identifies one cached result set.
type Key struct {
	// Collection is the segment collection the results were computed on.
	Collection string

	// TrackID is the query track.
	TrackID string

	// ParamsHash is the digest of the search parameters, see HashParams.
	ParamsHash string
}

// Cache stores aggregated similarity results.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached results for key. ok reports a hit. A stored
	// row that fails to decode is returned as a DecodeError.
	Get(ctx context.Context, key Key) (results []model.SimilarityCandidate, ok bool, err error)

	// Save inserts or overwrites the results for key. An existing row keeps
	// its creation timestamp.
	Save(ctx context.Context, key Key, results []model.SimilarityCandidate) error
}

// DecodeError reports a cached row that could not be decoded.
type DecodeError struct {
	Key   Key
	cause error
}

// NewDecodeError wraps a decoding failure for the given key.
func NewDecodeError(key Key, cause error) *DecodeError {
	return &DecodeError{Key: key, cause: cause}
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode cached results for %s/%s: %v", e.Key.Collection, e.Key.TrackID, e.cause)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.cause
}
