package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound signals the requested collection blob does not exist yet.
var ErrNotFound = errors.New("store: collection not found")

// Store persists each collection as one JSON blob under the data directory.
// Last write wins; the mutex only keeps a concurrent write from interleaving
// with a read of the same file.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// EnsureDir creates the data directory if it does not exist.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", s.dir, err)
	}
	return nil
}

// Read returns the raw bytes of a collection, or ErrNotFound.
func (s *Store) Read(collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}
	return data, nil
}

// Write replaces a collection blob. The write goes through a temp file and
// rename so a crash mid-write never leaves a truncated collection behind.
func (s *Store) Write(collection string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", s.dir, err)
	}

	target := s.path(collection)
	tmp, err := os.CreateTemp(s.dir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", collection, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp for %s: %w", collection, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace collection %s: %w", collection, err)
	}
	return nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}
