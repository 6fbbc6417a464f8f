// Package fs is a filesystem implementation of the storage.Store interface.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/storage"
)

// Store keeps assets under a base directory with one subdirectory per asset
// kind.
type Store struct {
	baseDir string
}

// Config options for the filesystem store
type Config struct {
	BaseDir string // Base directory for storing files
}

// New creates a filesystem store, creating the base directory and every asset
// subdirectory if absent.
func New(config Config) (*Store, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	for _, dir := range storage.Dirs() {
		if err := os.MkdirAll(filepath.Join(config.BaseDir, dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return &Store{baseDir: config.BaseDir}, nil
}

// BaseDir returns the storage root, for mounting static file serving.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Save streams r into dir/name. The destination directory must already exist;
// a missing directory reports domain.ErrStorageUnavailable so the caller can
// retry once storage is back.
func (s *Store) Save(ctx context.Context, dir, name string, r io.Reader) error {
	dirPath := filepath.Join(s.baseDir, dir)
	if _, err := os.Stat(dirPath); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, dir, err)
	}

	file, err := os.Create(filepath.Join(dirPath, name))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Rename moves dir/oldName to dir/newName, replacing the target if present.
func (s *Store) Rename(ctx context.Context, dir, oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	oldPath := filepath.Join(s.baseDir, dir, oldName)
	newPath := filepath.Join(s.baseDir, dir, newName)
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", oldName, newName, err)
	}
	return nil
}

// Delete removes dir/name. Deleting an absent file returns an error wrapping
// fs.ErrNotExist.
func (s *Store) Delete(ctx context.Context, dir, name string) error {
	if err := os.Remove(filepath.Join(s.baseDir, dir, name)); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", dir, name, err)
	}
	return nil
}

// Exists reports whether dir/name is present.
func (s *Store) Exists(ctx context.Context, dir, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.baseDir, dir, name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// List returns the file names in dir, skipping subdirectories.
func (s *Store) List(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, dir))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
