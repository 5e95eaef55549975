// Package metastore provides lookups into the track metadata catalog.
//
// The catalog is owned by the ingestion side; SongChain only reads it to
// decorate results and to filter chain transitions. Missing rows are never
// errors, they simply stay absent from the result map.
package metastore

import (
	"context"

	"github.com/hupe1980/songchain/model"
)

// Store is a read view of the track catalog.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// GetMany fetches tracks by id. Ids without a row are absent from the
	// returned map.
	GetMany(ctx context.Context, ids []string) (map[string]model.Track, error)
}
