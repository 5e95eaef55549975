// Package testutil provides testing utilities for SongChain.
//
// This package is intended for use in tests and examples only. It provides
// seeded random vector generation, fixture builders for track and segment
// index records, and a function-field Index stub.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := make([]float32, 128)
//	rng.FillUniform(vec) // uniform [0, 1)
//
// # Fixtures
//
//	records := testutil.SegmentRecords("track-1", rng.UnitVectors(4, 128))
//	err := index.Upsert(ctx, "segments_full", records)
package testutil
