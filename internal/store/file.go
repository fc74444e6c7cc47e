// internal/store/file.go
//
// FileStore keeps the document as one indented JSON file on local disk.
//
// Save never writes the target in place: it writes a temp file in the same
// directory, fsyncs it and renames it over the target, so a crash mid-write
// leaves the previous document intact.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// FileStore is a Store backed by a JSON file.
type FileStore struct {
	mu   sync.Mutex // serializes every load/save cycle
	path string
}

// NewFileStore returns a store for path. The file is created lazily on the
// first successful Update; its parent directory is created if missing.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the document under the store lock.
func (s *FileStore) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) View(ctx context.Context, fn func(doc *Document) error) error {
	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *FileStore) Update(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// load must be called with s.mu held.
func (s *FileStore) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return newDocument(), nil
	}
	if err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("read store document")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return newDocument(), nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("decode store document")
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	doc.normalize()
	return &doc, nil
}

// save must be called with s.mu held.
func (s *FileStore) save(doc *Document) error {
	doc.normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: write: %w", ErrUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: sync: %w", ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: close: %w", ErrUnavailable, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		log.Error().Err(err).Str("path", s.path).Msg("replace store document")
		return fmt.Errorf("%w: rename: %w", ErrUnavailable, err)
	}
	return nil
}
