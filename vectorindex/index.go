package vectorindex

import (
	"context"
)

// Document is the metadata attached to one index record.
type Document map[string]any

// Record is one materialized index record.
type Record struct {
	ID       string
	Vector   []float32
	Metadata Document
}

// GetResult holds records returned by Get or Find. The slices are parallel;
// Vectors is nil when vectors were not requested. Records that do not exist
// are absent, so the result may be shorter than the request.
type GetResult struct {
	IDs       []string
	Vectors   [][]float32
	Metadatas []Document
}

// QueryResult holds the neighbors returned by Query, ordered by ascending
// distance. The slices are parallel.
type QueryResult struct {
	IDs       []string
	Distances []float64
	Metadatas []Document
}

// Index is a read view of a vector index.
//
// Implementations must be safe for concurrent use.
type Index interface {
	// Get fetches records by id. Missing ids are skipped, not errors.
	Get(ctx context.Context, collection string, ids []string, includeVectors bool) (GetResult, error)

	// Find fetches all records matching the predicate.
	Find(ctx context.Context, collection string, where Where, includeVectors bool) (GetResult, error)

	// Query returns up to k nearest neighbors of vector among the records
	// matching the predicate, ordered by ascending distance.
	Query(ctx context.Context, collection string, vector []float32, k int, where Where) (QueryResult, error)
}
