package songchain

import "io"

// Close releases resources held by the configured clients.
//
// The index and the metadata store are closed when they implement io.Closer
// (the chroma client and the SQLite stores do). Closing is idempotent for
// those clients.
func (sc *SongChain) Close() error {
	if sc == nil {
		return nil
	}

	var firstErr error
	if c, ok := sc.index.(io.Closer); ok {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c, ok := sc.meta.(io.Closer); ok {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
