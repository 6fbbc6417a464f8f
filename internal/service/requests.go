package service

import (
	"github.com/google/uuid"

	"github.com/echoplay/echoplay/internal/ingest"
)

// Request DTOs

// CreateSongRequest contains parameters for creating a song. Both parts are
// mandatory; a song only exists once its cover and audio are ingested.
type CreateSongRequest struct {
	Title  string
	Artist string
	Cover  ingest.Part
	Audio  ingest.Part
}

// CreateUserRequest contains parameters for creating a user.
type CreateUserRequest struct {
	Name  string
	Image ingest.Part
}

// UpdateUserRequest contains parameters for updating a user. Image is optional;
// when nil only the display name changes.
type UpdateUserRequest struct {
	ID    uuid.UUID
	Name  string
	Image *ingest.Part
}

// CreatePlaylistRequest contains parameters for creating a playlist.
type CreatePlaylistRequest struct {
	Name   string
	UserID uuid.UUID
}

// UploadPackageRequest contains parameters for storing a distributable
// package. Version is caller-supplied and not validated beyond presence.
type UploadPackageRequest struct {
	Version string
	Archive ingest.Part
}
