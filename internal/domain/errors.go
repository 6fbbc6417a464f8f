package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error types
var (
	// ErrNotFound indicates a referenced catalog row is absent
	ErrNotFound = errors.New("not found")

	// ErrMissingField indicates a required request field is missing or empty
	ErrMissingField = errors.New("missing required field")

	// ErrUnsupportedMediaType indicates an uploaded part violates its field's
	// content-type policy
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrStorageUnavailable indicates the destination directory or disk is not
	// accessible; the caller may retry
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrPartialWriteOrphan indicates asset files were written but the catalog
	// write failed; the files are orphaned and are not rolled back
	ErrPartialWriteOrphan = errors.New("files written but catalog write failed")

	// ErrPartialDelete indicates some but not all ordered delete steps completed
	ErrPartialDelete = errors.New("delete partially completed")

	// ErrNoneAvailable indicates no distributable package matched the expected
	// naming pattern
	ErrNoneAvailable = errors.New("no package available")
)

// IngestError reports a failure while ingesting one uploaded part.
type IngestError struct {
	Field string
	Op    string
	Err   error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest %s failed for field %q: %v", e.Op, e.Field, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// OrphanError reports a catalog write that failed after asset files were
// already written. Files lists the orphaned on-disk names so an operator can
// reconcile.
type OrphanError struct {
	Files []string
	Err   error
}

func (e *OrphanError) Error() string {
	return fmt.Sprintf("%v: orphaned files [%s]: %v", ErrPartialWriteOrphan, strings.Join(e.Files, ", "), e.Err)
}

func (e *OrphanError) Unwrap() error {
	return ErrPartialWriteOrphan
}

// PartialDeleteError reports an ordered multi-step delete that stopped partway.
// Completed lists the steps that succeeded before the failing one.
type PartialDeleteError struct {
	Completed []string
	Step      string
	Err       error
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("%v: step %q failed after [%s]: %v", ErrPartialDelete, e.Step, strings.Join(e.Completed, ", "), e.Err)
}

func (e *PartialDeleteError) Unwrap() error {
	return ErrPartialDelete
}
