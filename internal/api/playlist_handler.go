package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/service"
	"github.com/echoplay/echoplay/internal/urls"
)

// PlaylistHandler handles HTTP requests for playlists and their memberships
type PlaylistHandler struct {
	playlists *service.PlaylistService
	urls      urls.Builder
}

// NewPlaylistHandler creates a new playlist handler
func NewPlaylistHandler(playlists *service.PlaylistService, urls urls.Builder) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, urls: urls}
}

// Routes returns the routes for playlists
func (h *PlaylistHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreatePlaylist)
	r.Get("/{id}/songs", h.ListSongs)
	r.Post("/{id}/songs", h.AddSong)
	r.Delete("/{id}/songs/{songId}", h.RemoveSong)

	return r
}

// CreatePlaylistRequest is the request body for creating a playlist
type CreatePlaylistRequest struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// AddSongRequest is the request body for adding a song to a playlist
type AddSongRequest struct {
	SongID string `json:"songId"`
}

// MembershipResponse reports the outcome of an add-song call. Added is false
// when the pair was already present; the call still succeeds.
type MembershipResponse struct {
	PlaylistID string `json:"playlistId"`
	SongID     string `json:"songId"`
	Added      bool   `json:"added"`
}

// CreatePlaylist creates a playlist for an existing user.
func (h *PlaylistHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid body: %v", domain.ErrMissingField, err))
		return
	}

	userID := uuid.Nil
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: userId", domain.ErrMissingField))
			return
		}
		userID = parsed
	}

	playlist, err := h.playlists.Create(r.Context(), service.CreatePlaylistRequest{
		Name:   req.Name,
		UserID: userID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, PlaylistResponse{
		ID:     playlist.ID.String(),
		Name:   playlist.Name,
		UserID: playlist.UserID.String(),
	})
}

// ListSongs returns the songs of a playlist with their asset URLs.
func (h *PlaylistHandler) ListSongs(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	songs, err := h.playlists.ListSongs(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]SongResponse, 0, len(songs))
	for _, song := range songs {
		resp = append(resp, SongResponse{
			ID:     song.ID.String(),
			Name:   song.Name,
			Artist: song.Artist,
			Cover:  h.urls.Cover(song.Cover),
			File:   h.urls.Music(song.File),
		})
	}
	render.JSON(w, r, resp)
}

// AddSong adds a song to a playlist; re-adding an existing pair succeeds
// without inserting a duplicate.
func (h *PlaylistHandler) AddSong(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	var req AddSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid body: %v", domain.ErrMissingField, err))
		return
	}
	songID, err := uuid.Parse(req.SongID)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: songId", domain.ErrMissingField))
		return
	}

	added, err := h.playlists.AddSong(r.Context(), playlistID, songID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if added {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, MembershipResponse{
		PlaylistID: playlistID.String(),
		SongID:     songID.String(),
		Added:      added,
	})
}

// RemoveSong removes a song from a playlist.
func (h *PlaylistHandler) RemoveSong(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	songID, err := uuid.Parse(chi.URLParam(r, "songId"))
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := h.playlists.RemoveSong(r.Context(), playlistID, songID); err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"status": "removed"})
}
