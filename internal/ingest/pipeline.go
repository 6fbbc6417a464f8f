// Package ingest accepts multipart upload parts, derives deterministic
// filesystem-safe names from their companion text fields, enforces the
// per-field content-type policy and writes the bytes to asset storage.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/storage"
)

// Part is one uploaded file of a multipart request.
type Part struct {
	Field       string
	FileName    string
	ContentType string
	Content     io.Reader
}

// Request is one upload operation: the textual fields plus every file part.
type Request struct {
	Fields Fields
	Parts  []Part
}

// Pipeline validates upload requests against the asset policies and streams
// accepted parts into the store.
type Pipeline struct {
	store  storage.Store
	logger *slog.Logger
}

// New creates an ingestion pipeline on top of store.
func New(store storage.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{store: store, logger: logger}
}

// Ingest processes every part of req and returns the stored file name per
// field. Validation (required fields, content types) happens for all parts
// before any byte reaches storage; if a later write fails, parts already
// written in the same call are removed best-effort.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (map[string]string, error) {
	if len(req.Parts) == 0 {
		return nil, fmt.Errorf("%w: no file parts", domain.ErrMissingField)
	}

	// Resolve policies and validate before touching storage.
	parts := make([]Policy, len(req.Parts))
	for i, part := range req.Parts {
		policy, ok := PolicyFor(part.Field)
		if !ok {
			return nil, fmt.Errorf("%w: unknown upload field %q", domain.ErrMissingField, part.Field)
		}
		if missing := policy.missing(req.Fields); len(missing) > 0 {
			return nil, fmt.Errorf("%w: %v", domain.ErrMissingField, missing)
		}
		if part.ContentType != policy.ContentType {
			return nil, &domain.IngestError{
				Field: part.Field,
				Op:    "content-type check",
				Err:   fmt.Errorf("%w: got %q, want %q", domain.ErrUnsupportedMediaType, part.ContentType, policy.ContentType),
			}
		}
		parts[i] = policy
	}

	names := make(map[string]string, len(req.Parts))
	var done []written

	for i, part := range req.Parts {
		policy := parts[i]
		name := policy.FileName(req.Fields, part.FileName)
		if err := p.store.Save(ctx, policy.Dir, name, part.Content); err != nil {
			p.cleanup(ctx, done)
			return nil, &domain.IngestError{Field: part.Field, Op: "write", Err: err}
		}
		done = append(done, written{dir: policy.Dir, name: name})
		names[part.Field] = name
	}

	return names, nil
}

type written struct{ dir, name string }

// cleanup removes parts written earlier in a failed call. Failures here are
// logged and otherwise ignored; the operation already failed.
func (p *Pipeline) cleanup(ctx context.Context, done []written) {
	for _, w := range done {
		if err := p.store.Delete(ctx, w.dir, w.name); err != nil {
			p.logger.Warn("failed to clean up partial upload", "dir", w.dir, "file", w.name, "err", err)
		}
	}
}
