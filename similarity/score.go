// Package similarity turns raw vector-index distances into ranked track
// candidates.
//
// The segment path queries the index once per query segment, folds the hits
// into per-track accumulators and weights the summed score by how many query
// segments a candidate matched (coverage) and how many of its hits were
// close (density). The whole-track path compares single embeddings per track
// across one or more collections. Pipeline binds the segment path to the
// score cache.
package similarity

// SchemaVersion is folded into the cache key digest. Bump it whenever the
// shape or meaning of cached results changes; every previously cached row
// turns into a miss.
const SchemaVersion = 1

// Normalize maps a raw embedding distance onto a 0 to 100 score. A distance
// of zero scores 100, anything at or beyond max scores 0, and the score
// falls linearly in between. A non-positive max disables scoring entirely.
func Normalize(d, max float64) float64 {
	if d <= 0 {
		return 100
	}
	if max <= 0 || d >= max {
		return 0
	}
	return 100 * (1 - d/max)
}
