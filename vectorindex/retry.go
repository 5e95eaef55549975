package vectorindex

import (
	"context"
	"log/slog"
	"time"
)

// LookupOptions configures PointLookup.
type LookupOptions struct {
	// Attempts is the maximum number of tries.
	Attempts int

	// Backoff is the base wait between tries; attempt n waits n times it.
	Backoff time.Duration

	// Logger receives a warning per failed attempt.
	Logger *slog.Logger
}

// PointLookup fetches a single record by id, retrying transient upstream
// errors with linear backoff. When every attempt fails the record is
// reported as absent, so a flaky index degrades a lookup to a miss instead
// of failing the surrounding operation. Context cancellation stops the
// retries and is returned as the error.
func PointLookup(ctx context.Context, idx Index, collection, id string, includeVectors bool, optFns ...func(*LookupOptions)) (Record, bool, error) {
	opts := LookupOptions{
		Attempts: 3,
		Backoff:  500 * time.Millisecond,
		Logger:   slog.New(slog.DiscardHandler),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	for attempt := 1; attempt <= opts.Attempts; attempt++ {
		res, err := idx.Get(ctx, collection, []string{id}, includeVectors)
		if err == nil {
			if len(res.IDs) == 0 {
				return Record{}, false, nil
			}

			rec := Record{ID: res.IDs[0]}
			if len(res.Metadatas) > 0 {
				rec.Metadata = res.Metadatas[0]
			}
			if includeVectors && len(res.Vectors) > 0 {
				rec.Vector = res.Vectors[0]
			}

			return rec, true, nil
		}

		if ctx.Err() != nil {
			return Record{}, false, ctx.Err()
		}

		opts.Logger.WarnContext(ctx, "point lookup attempt failed",
			slog.String("collection", collection),
			slog.String("id", id),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)

		if attempt == opts.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return Record{}, false, ctx.Err()
		case <-time.After(time.Duration(attempt) * opts.Backoff):
		}
	}

	return Record{}, false, nil
}
