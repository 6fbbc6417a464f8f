// Package repository defines the catalog persistence interface.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/echoplay/echoplay/internal/domain"
)

// Repository is the persistence interface for the media catalog. Row-level
// isolation is the store's own; callers sequence multi-step operations
// themselves.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// Song operations
	CreateSong(ctx context.Context, song *domain.Song) error
	GetSong(ctx context.Context, id uuid.UUID) (*domain.Song, error)
	ListSongs(ctx context.Context) ([]*domain.Song, error)
	DeleteSong(ctx context.Context, id uuid.UUID) error

	// Playlist operations
	CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error
	GetPlaylist(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	ListPlaylistsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error)
	DeletePlaylistsByUser(ctx context.Context, userID uuid.UUID) error

	// Playlist membership operations. AddPlaylistSong is idempotent: adding an
	// already-present pair reports added=false without error.
	AddPlaylistSong(ctx context.Context, playlistID, songID uuid.UUID) (added bool, err error)
	RemovePlaylistSong(ctx context.Context, playlistID, songID uuid.UUID) error
	ListPlaylistSongs(ctx context.Context, playlistID uuid.UUID) ([]*domain.Song, error)
	DeleteMembershipsByUser(ctx context.Context, userID uuid.UUID) error
	DeleteMembershipsBySong(ctx context.Context, songID uuid.UUID) error
}
