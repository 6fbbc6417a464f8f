package service

import (
	"context"
	"log/slog"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/ingest"
	"github.com/echoplay/echoplay/internal/storage"
	"github.com/echoplay/echoplay/internal/version"
)

// PackageService manages distributable application packages. Packages live on
// disk only; the packages directory is the catalog.
type PackageService struct {
	pipeline *ingest.Pipeline
	store    storage.Store
	logger   *slog.Logger
}

// NewPackageService creates a new package service
func NewPackageService(pipeline *ingest.Pipeline, store storage.Store, logger *slog.Logger) *PackageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PackageService{pipeline: pipeline, store: store, logger: logger}
}

// Upload ingests a package archive and returns its stored name.
func (s *PackageService) Upload(ctx context.Context, req UploadPackageRequest) (string, error) {
	names, err := s.pipeline.Ingest(ctx, ingest.Request{
		Fields: ingest.Fields{Version: req.Version},
		Parts:  []ingest.Part{req.Archive},
	})
	if err != nil {
		return "", err
	}

	name := names[ingest.FieldApk]
	s.logger.Info("package uploaded", "file", name, "version", req.Version)
	return name, nil
}

// List returns the stored packages, newest version first.
func (s *PackageService) List(ctx context.Context) ([]domain.Package, error) {
	names, err := s.store.List(ctx, storage.DirPackages)
	if err != nil {
		return nil, err
	}
	return version.Sort(names), nil
}

// Latest resolves the highest-versioned stored package.
func (s *PackageService) Latest(ctx context.Context) (domain.Package, error) {
	names, err := s.store.List(ctx, storage.DirPackages)
	if err != nil {
		return domain.Package{}, err
	}
	return version.Latest(names)
}
