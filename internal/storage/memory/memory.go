// Package memory is an in-memory implementation of the storage.Store
// interface, used in tests and for running without a data directory.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"sync"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/storage"
)

// Store keeps file contents in a map keyed by directory and name.
type Store struct {
	mu   sync.RWMutex
	dirs map[string]map[string][]byte
}

// New creates an in-memory store with every asset directory present.
func New() *Store {
	dirs := make(map[string]map[string][]byte)
	for _, dir := range storage.Dirs() {
		dirs[dir] = make(map[string][]byte)
	}
	return &Store{dirs: dirs}
}

func (s *Store) files(dir string) (map[string][]byte, error) {
	files, ok := s.dirs[dir]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStorageUnavailable, dir)
	}
	return files, nil
}

// Save reads r fully and stores the bytes under dir/name.
func (s *Store) Save(ctx context.Context, dir, name string, r io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.files(dir)
	if err != nil {
		return err
	}
	files[name] = buf.Bytes()
	return nil
}

// Rename moves dir/oldName to dir/newName, replacing the target if present.
func (s *Store) Rename(ctx context.Context, dir, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.files(dir)
	if err != nil {
		return err
	}
	content, ok := files[oldName]
	if !ok {
		return fmt.Errorf("failed to rename %s/%s: %w", dir, oldName, fs.ErrNotExist)
	}
	if oldName != newName {
		files[newName] = content
		delete(files, oldName)
	}
	return nil
}

// Delete removes dir/name.
func (s *Store) Delete(ctx context.Context, dir, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.files(dir)
	if err != nil {
		return err
	}
	if _, ok := files[name]; !ok {
		return fmt.Errorf("failed to delete %s/%s: %w", dir, name, fs.ErrNotExist)
	}
	delete(files, name)
	return nil
}

// Exists reports whether dir/name is present.
func (s *Store) Exists(ctx context.Context, dir, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.files(dir)
	if err != nil {
		return false, err
	}
	_, ok := files[name]
	return ok, nil
}

// List returns the file names in dir, sorted for determinism.
func (s *Store) List(ctx context.Context, dir string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.files(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Content returns the stored bytes for dir/name, for test assertions.
func (s *Store) Content(dir, name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, ok := s.dirs[dir]
	if !ok {
		return nil, false
	}
	content, ok := files[name]
	return content, ok
}
