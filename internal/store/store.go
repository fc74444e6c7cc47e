// internal/store/store.go
//
// Persistence for the single JSON document that holds every user and chirp.
//
// Characteristics:
//   - Each Store instance owns one mutex. Update holds it for the whole
//     load → fn → save cycle, so concurrent writers never lose updates.
//     View holds it only while loading; fn runs on a private copy
//     after the lock is released.
//   - Update persists only when fn returns nil; on error the document is
//     discarded and the backing state is untouched.
//   - Load failures are returned, never replaced by an empty document. A
//     store that has never been written is empty.

package store

import (
	"context"
	"errors"
)

var (
	// ErrCorrupt means the backing document exists but cannot be decoded.
	ErrCorrupt = errors.New("store document is corrupt")
	// ErrUnavailable means the backing document could not be read or written.
	ErrUnavailable = errors.New("store is unavailable")
)

// Store is the read-modify-write interface the services depend on.
type Store interface {
	// View loads the document and passes it to fn. Changes made by fn are
	// not persisted.
	View(ctx context.Context, fn func(doc *Document) error) error

	// Update loads the document, passes it to fn and saves it if fn
	// returns nil. The returned error is fn's error or a store error.
	Update(ctx context.Context, fn func(doc *Document) error) error
}
