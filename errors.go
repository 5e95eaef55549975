package songchain

import (
	"errors"
	"fmt"

	"github.com/hupe1980/songchain/similarity"
)

var (
	// ErrNotFound is returned when a track is not found in the index.
	ErrNotFound = errors.New("not found")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidChainLength is returned when a chain length is not positive.
	ErrInvalidChainLength = errors.New("chain length must be positive")

	// ErrUnknownStrategy is returned when a chain strategy has no source.
	ErrUnknownStrategy = errors.New("unknown chain strategy")

	// ErrUpstreamUnavailable is returned when the index or metadata store
	// fails. Point-lookup retries have already happened by the time this
	// surfaces; the request is not retried as a whole.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// translateError maps internal errors onto the exported sentinels. The
// original error stays reachable through errors.Is and errors.Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, similarity.ErrTrackNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}
