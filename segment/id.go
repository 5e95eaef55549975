// Package segment reads a track's embedded segments from the vector index
// and filters them down to the query window.
//
// Segment rows are identified as "<track_id>::seg_<index>" with the index
// zero-padded to four digits. The owning track is everything before the
// first "::", which keeps track ids with colons unambiguous as long as they
// avoid the double colon.
package segment

import (
	"strconv"
	"strings"
)

// OwnerID extracts the owning track from a segment identifier. Identifiers
// without a "::" separator are returned unchanged, so whole-track ids pass
// through.
func OwnerID(segmentID string) string {
	owner, _, _ := strings.Cut(segmentID, "::")
	return owner
}

// ParseID splits a segment identifier into its track id and segment index.
func ParseID(segmentID string) (trackID string, index int, ok bool) {
	owner, rest, found := strings.Cut(segmentID, "::")
	if !found || owner == "" {
		return "", 0, false
	}

	num, hasPrefix := strings.CutPrefix(rest, "seg_")
	if !hasPrefix {
		return "", 0, false
	}

	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return "", 0, false
	}

	return owner, n, true
}
