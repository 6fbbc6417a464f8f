// Package service implements the catalog operations: it ties ingested asset
// files to catalog rows and sequences the multi-step update and delete flows.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/ingest"
	"github.com/echoplay/echoplay/internal/repository"
	"github.com/echoplay/echoplay/internal/storage"
)

// SongService manages songs and their cover/audio assets.
type SongService struct {
	repo     repository.Repository
	pipeline *ingest.Pipeline
	store    storage.Store
	logger   *slog.Logger
}

// NewSongService creates a new song service
func NewSongService(repo repository.Repository, pipeline *ingest.Pipeline, store storage.Store, logger *slog.Logger) *SongService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SongService{repo: repo, pipeline: pipeline, store: store, logger: logger}
}

// Create ingests the cover and audio parts and writes exactly one song row
// referencing the stored names. If the row write fails the files stay on disk
// and the error reports them as orphans; no rollback is attempted.
func (s *SongService) Create(ctx context.Context, req CreateSongRequest) (*domain.Song, error) {
	names, err := s.pipeline.Ingest(ctx, ingest.Request{
		Fields: ingest.Fields{Title: req.Title, Artist: req.Artist},
		Parts:  []ingest.Part{req.Cover, req.Audio},
	})
	if err != nil {
		return nil, err
	}

	song := &domain.Song{
		ID:     uuid.New(),
		Name:   req.Title,
		Artist: req.Artist,
		Cover:  names[ingest.FieldCover],
		File:   names[ingest.FieldAudio],
	}

	if err := s.repo.CreateSong(ctx, song); err != nil {
		return nil, &domain.OrphanError{Files: []string{song.Cover, song.File}, Err: err}
	}

	s.logger.Info("song created", "song_id", song.ID, "cover", song.Cover, "file", song.File)
	return song, nil
}

// Get returns one song.
func (s *SongService) Get(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	return s.repo.GetSong(ctx, id)
}

// List returns all songs.
func (s *SongService) List(ctx context.Context) ([]*domain.Song, error) {
	return s.repo.ListSongs(ctx)
}

// Delete removes a song in order: playlist memberships, the catalog row, then
// the cover and audio files. The steps are sequential, not transactional; a
// failure partway reports which steps completed.
func (s *SongService) Delete(ctx context.Context, id uuid.UUID) error {
	song, err := s.repo.GetSong(ctx, id)
	if err != nil {
		return err
	}

	var completed []string

	if err := s.repo.DeleteMembershipsBySong(ctx, id); err != nil {
		return fmt.Errorf("delete song memberships: %w", err)
	}
	completed = append(completed, "memberships")

	if err := s.repo.DeleteSong(ctx, id); err != nil {
		return &domain.PartialDeleteError{Completed: completed, Step: "song row", Err: err}
	}
	completed = append(completed, "song row")

	if err := s.deleteAsset(ctx, storage.DirCovers, song.Cover); err != nil {
		return &domain.PartialDeleteError{Completed: completed, Step: "cover file", Err: err}
	}
	completed = append(completed, "cover file")

	if err := s.deleteAsset(ctx, storage.DirMusic, song.File); err != nil {
		return &domain.PartialDeleteError{Completed: completed, Step: "audio file", Err: err}
	}

	s.logger.Info("song deleted", "song_id", id)
	return nil
}

// deleteAsset removes an asset file; an already-absent file is only an
// observation, not a failure.
func (s *SongService) deleteAsset(ctx context.Context, dir, name string) error {
	exists, err := s.store.Exists(ctx, dir, name)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Warn("asset file already absent", "dir", dir, "file", name)
		return nil
	}
	return s.store.Delete(ctx, dir, name)
}
