package scorecache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/songchain/model"
)

// HashParams digests the search parameters together with a schema version
// into a stable hex string.
//
// The digest is computed over canonical JSON from the standard library
// (sorted map keys, compact form) on purpose: cache keys must not move when
// the configured payload codec changes. Bumping schemaVersion invalidates
// every previously cached row.
func HashParams(p model.SearchParams, schemaVersion int) string {
	payload := map[string]any{
		"schema_version":   schemaVersion,
		"n_results":        p.NResults,
		"search_topk":      p.SearchTopK,
		"distance_max":     p.DistanceMax,
		"max_seconds":      p.MaxSeconds,
		"skip_seconds":     p.SkipSeconds,
		"skip_end_seconds": p.SkipEndSeconds,
		"exclude_flagged":  p.ExcludeFlagged,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Errorf("hash params: %w", err))
	}

	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
