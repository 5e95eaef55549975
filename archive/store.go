package archive

import (
	"context"
	"os"
)

// ErrNotFound is returned when an archived object does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
// The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// Store is the object storage behind an Archive. Objects are small opaque
// payloads addressed by name; implementations must be safe for concurrent
// use.
type Store interface {
	// Put writes the object under name, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the object's content, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names under prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}
