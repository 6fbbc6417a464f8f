package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/repository"
)

// PlaylistService manages playlists and their song memberships.
type PlaylistService struct {
	repo   repository.Repository
	logger *slog.Logger
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(repo repository.Repository, logger *slog.Logger) *PlaylistService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaylistService{repo: repo, logger: logger}
}

// Create creates a playlist owned by an existing user.
func (s *PlaylistService) Create(ctx context.Context, req CreatePlaylistRequest) (*domain.Playlist, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name", domain.ErrMissingField)
	}
	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId", domain.ErrMissingField)
	}

	if _, err := s.repo.GetUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	playlist := &domain.Playlist{
		ID:     uuid.New(),
		Name:   req.Name,
		UserID: req.UserID,
	}
	if err := s.repo.CreatePlaylist(ctx, playlist); err != nil {
		return nil, err
	}

	s.logger.Info("playlist created", "playlist_id", playlist.ID, "user_id", req.UserID)
	return playlist, nil
}

// ListByUser returns the playlists owned by a user.
func (s *PlaylistService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	return s.repo.ListPlaylistsByUser(ctx, userID)
}

// AddSong adds a song to a playlist. Adding an already-present pair is a
// no-op, not an error; the return reports whether a row was inserted.
func (s *PlaylistService) AddSong(ctx context.Context, playlistID, songID uuid.UUID) (bool, error) {
	if _, err := s.repo.GetPlaylist(ctx, playlistID); err != nil {
		return false, err
	}
	if _, err := s.repo.GetSong(ctx, songID); err != nil {
		return false, err
	}

	added, err := s.repo.AddPlaylistSong(ctx, playlistID, songID)
	if err != nil {
		return false, err
	}
	if !added {
		s.logger.Info("song already in playlist", "playlist_id", playlistID, "song_id", songID)
	}
	return added, nil
}

// RemoveSong removes a song from a playlist; a pair that is not present
// reports domain.ErrNotFound.
func (s *PlaylistService) RemoveSong(ctx context.Context, playlistID, songID uuid.UUID) error {
	return s.repo.RemovePlaylistSong(ctx, playlistID, songID)
}

// ListSongs returns the songs of a playlist.
func (s *PlaylistService) ListSongs(ctx context.Context, playlistID uuid.UUID) ([]*domain.Song, error) {
	if _, err := s.repo.GetPlaylist(ctx, playlistID); err != nil {
		return nil, err
	}
	return s.repo.ListPlaylistSongs(ctx, playlistID)
}
