package testutil

import (
	"context"

	"github.com/hupe1980/songchain/vectorindex"
)

// StaticIndex is a function-field vectorindex.Index stub. Unset functions
// return empty results, so tests only wire the calls they care about.
type StaticIndex struct {
	GetFunc   func(ctx context.Context, collection string, ids []string, includeVectors bool) (vectorindex.GetResult, error)
	FindFunc  func(ctx context.Context, collection string, where vectorindex.Where, includeVectors bool) (vectorindex.GetResult, error)
	QueryFunc func(ctx context.Context, collection string, vector []float32, k int, where vectorindex.Where) (vectorindex.QueryResult, error)
}

var _ vectorindex.Index = (*StaticIndex)(nil)

// Get implements vectorindex.Index.
func (s *StaticIndex) Get(ctx context.Context, collection string, ids []string, includeVectors bool) (vectorindex.GetResult, error) {
	if s.GetFunc == nil {
		return vectorindex.GetResult{}, nil
	}
	return s.GetFunc(ctx, collection, ids, includeVectors)
}

// Find implements vectorindex.Index.
func (s *StaticIndex) Find(ctx context.Context, collection string, where vectorindex.Where, includeVectors bool) (vectorindex.GetResult, error) {
	if s.FindFunc == nil {
		return vectorindex.GetResult{}, nil
	}
	return s.FindFunc(ctx, collection, where, includeVectors)
}

// Query implements vectorindex.Index.
func (s *StaticIndex) Query(ctx context.Context, collection string, vector []float32, k int, where vectorindex.Where) (vectorindex.QueryResult, error) {
	if s.QueryFunc == nil {
		return vectorindex.QueryResult{}, nil
	}
	return s.QueryFunc(ctx, collection, vector, k, where)
}
