package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/service"
	"github.com/echoplay/echoplay/internal/urls"
)

// SongHandler handles HTTP requests for songs
type SongHandler struct {
	songs *service.SongService
	urls  urls.Builder
}

// NewSongHandler creates a new song handler
func NewSongHandler(songs *service.SongService, urls urls.Builder) *SongHandler {
	return &SongHandler{songs: songs, urls: urls}
}

// Routes returns the routes for songs
func (h *SongHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListSongs)
	r.Post("/", h.CreateSong)
	r.Get("/{id}", h.GetSong)
	r.Delete("/{id}", h.DeleteSong)

	return r
}

// SongResponse is the response body for a song
type SongResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Cover  string `json:"cover"`
	File   string `json:"file"`
}

func (h *SongHandler) songResponse(song *domain.Song) SongResponse {
	return SongResponse{
		ID:     song.ID.String(),
		Name:   song.Name,
		Artist: song.Artist,
		Cover:  h.urls.Cover(song.Cover),
		File:   h.urls.Music(song.File),
	}
}

// ListSongs returns the whole song catalog.
func (h *SongHandler) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songs.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]SongResponse, 0, len(songs))
	for _, song := range songs {
		resp = append(resp, h.songResponse(song))
	}
	render.JSON(w, r, resp)
}

// GetSong returns one song.
func (h *SongHandler) GetSong(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	song, err := h.songs.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, h.songResponse(song))
}

// CreateSong creates a song from a multipart form with title and artist
// fields plus cover and audio parts.
func (h *SongHandler) CreateSong(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, r, err)
		return
	}

	cover, err := formPart(r, "cover")
	if err != nil {
		writeError(w, r, err)
		return
	}
	audio, err := formPart(r, "audio")
	if err != nil {
		writeError(w, r, err)
		return
	}

	song, err := h.songs.Create(r.Context(), service.CreateSongRequest{
		Title:  r.FormValue("title"),
		Artist: r.FormValue("artist"),
		Cover:  cover,
		Audio:  audio,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.songResponse(song))
}

// DeleteSong removes a song, its memberships and its asset files.
func (h *SongHandler) DeleteSong(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := h.songs.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"status": "deleted"})
}
