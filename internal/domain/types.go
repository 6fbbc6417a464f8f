package domain

import (
	"github.com/google/uuid"
)

// User is a listener profile. ImageFile is the on-disk name of the profile
// image inside the images directory; it is fixed at creation time and never
// regenerated from the (mutable) display name.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ImageFile string    `json:"image_file"`
}

// Song is a catalog entry. Cover and File are on-disk asset names inside the
// covers and music directories respectively. Songs are immutable after
// creation.
type Song struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Artist string    `json:"artist"`
	Cover  string    `json:"cover"`
	File   string    `json:"file"`
}

// Playlist is a named, user-owned collection of songs.
type Playlist struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	UserID uuid.UUID `json:"user_id"`
}

// PlaylistSong is the playlist membership relation, unique per pair.
type PlaylistSong struct {
	PlaylistID uuid.UUID `json:"playlist_id"`
	SongID     uuid.UUID `json:"song_id"`
}

// Package is a distributable application archive stored on disk. Name is the
// file name in the packages directory, Version the dotted version embedded in
// it.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
