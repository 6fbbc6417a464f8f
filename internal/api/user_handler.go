// Package api exposes the catalog over HTTP. Handlers parse JSON and
// multipart bodies, call the services and render structured JSON; asset bytes
// are never served from here.
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

// UserHandler handles HTTP requests for users
type UserHandler struct {
	users     *service.UserService
	playlists *service.PlaylistService
	urls      urls.Builder
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, playlists *service.PlaylistService, urls urls.Builder) *UserHandler {
	return &UserHandler{users: users, playlists: playlists, urls: urls}
}

// Routes returns the routes for users
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListUsers)
	r.Post("/", h.CreateUser)
	r.Put("/{id}", h.UpdateUser)
	r.Delete("/{id}", h.DeleteUser)
	r.Get("/{id}/playlists", h.ListUserPlaylists)

	return r
}

// UserResponse is the response body for a user
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// PlaylistResponse is the response body for a playlist
type PlaylistResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

func (h *UserHandler) userResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Image: h.urls.Image(user.ImageFile),
	}
}

// ListUsers returns every user profile.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, h.userResponse(user))
	}
	render.JSON(w, r, resp)
}

// CreateUser creates a user from a multipart form with a name field and an
// image part.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, r, err)
		return
	}

	image, err := formPart(r, "image")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateUserRequest{
		Name:  r.FormValue("name"),
		Image: image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.userResponse(user))
}

// UpdateUser updates a user's name and optionally replaces the profile image
// in place.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, r, err)
		return
	}

	image, err := optionalFormPart(r, "image")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.Update(r.Context(), service.UpdateUserRequest{
		ID:    id,
		Name:  r.FormValue("name"),
		Image: image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, h.userResponse(user))
}

// DeleteUser removes a user, their playlists, memberships and image file.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"status": "deleted"})
}

// ListUserPlaylists returns the playlists owned by a user.
func (h *UserHandler) ListUserPlaylists(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	playlists, err := h.playlists.ListByUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]PlaylistResponse, 0, len(playlists))
	for _, playlist := range playlists {
		resp = append(resp, PlaylistResponse{
			ID:     playlist.ID.String(),
			Name:   playlist.Name,
			UserID: playlist.UserID.String(),
		})
	}
	render.JSON(w, r, resp)
}
