// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used by tests and by `serve --db :memory:` when durability is not required.
//
// Characteristics:
//   - Holds one *Document guarded by a mutex.
//   - Update runs fn on a clone and swaps it in only on success.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// memory holds the document in process memory.
type memory struct {
	mu  sync.Mutex // guards doc
	doc *Document
}

// NewMemory constructs an empty in-memory Store.
func NewMemory() Store {
	return &memory{doc: newDocument()}
}

// View passes a copy of the current document to fn.
func (m *memory) View(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	doc := m.doc.Clone()
	m.mu.Unlock()
	return fn(doc)
}

// Update applies fn to a copy and commits the copy if fn succeeds.
func (m *memory) Update(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.normalize()
	m.doc = next
	return nil
}
