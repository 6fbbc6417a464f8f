// Package storage defines the interface for asset storage backends.
package storage

import (
	"context"
	"io"
)

// Asset directory names, relative to the storage root. The static-serving
// layer mounts these same directories.
const (
	DirCovers   = "covers"
	DirImages   = "images"
	DirMusic    = "music"
	DirPackages = "packages"
)

// Dirs lists every asset directory a store must provide.
func Dirs() []string {
	return []string{DirCovers, DirImages, DirMusic, DirPackages}
}

// Store is the interface for asset storage backends. Files are addressed by
// (directory, name); directories are the fixed set returned by Dirs.
type Store interface {
	// Save streams r into dir under name, overwriting any existing file.
	Save(ctx context.Context, dir, name string, r io.Reader) error

	// Rename moves a file within dir, overwriting the target if present.
	Rename(ctx context.Context, dir, oldName, newName string) error

	// Delete removes a file. Deleting an absent file returns an error that
	// wraps fs.ErrNotExist.
	Delete(ctx context.Context, dir, name string) error

	// Exists reports whether a file is present.
	Exists(ctx context.Context, dir, name string) (bool, error)

	// List returns the file names in dir.
	List(ctx context.Context, dir string) ([]string, error)
}
