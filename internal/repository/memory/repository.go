// Package memory implements repository.Repository with in-memory maps, used
// in tests and for running without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/repository"
)

type pair struct {
	playlistID uuid.UUID
	songID     uuid.UUID
}

// Repository implements repository.Repository using in-memory storage
type Repository struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]*domain.User
	songs       map[uuid.UUID]*domain.Song
	playlists   map[uuid.UUID]*domain.Playlist
	memberships map[pair]struct{}
	order       []pair // insertion order of memberships
}

// New creates a new in-memory repository
func New() repository.Repository {
	return &Repository{
		users:       make(map[uuid.UUID]*domain.User),
		songs:       make(map[uuid.UUID]*domain.Song),
		playlists:   make(map[uuid.UUID]*domain.Playlist),
		memberships: make(map[pair]struct{}),
	}
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userCopy := *user
	r.users[user.ID] = &userCopy
	return nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		userCopy := *user
		users = append(users, &userCopy)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return domain.ErrNotFound
	}
	userCopy := *user
	r.users[user.ID] = &userCopy
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[id]; !exists {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// Song operations

func (r *Repository) CreateSong(ctx context.Context, song *domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	songCopy := *song
	r.songs[song.ID] = &songCopy
	return nil
}

func (r *Repository) GetSong(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	song, exists := r.songs[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	songCopy := *song
	return &songCopy, nil
}

func (r *Repository) ListSongs(ctx context.Context) ([]*domain.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	songs := make([]*domain.Song, 0, len(r.songs))
	for _, song := range r.songs {
		songCopy := *song
		songs = append(songs, &songCopy)
	}
	sort.Slice(songs, func(i, j int) bool { return songs[i].Name < songs[j].Name })
	return songs, nil
}

func (r *Repository) DeleteSong(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.songs[id]; !exists {
		return domain.ErrNotFound
	}
	delete(r.songs, id)
	return nil
}

// Playlist operations

func (r *Repository) CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlistCopy := *playlist
	r.playlists[playlist.ID] = &playlistCopy
	return nil
}

func (r *Repository) GetPlaylist(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	playlist, exists := r.playlists[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	playlistCopy := *playlist
	return &playlistCopy, nil
}

func (r *Repository) ListPlaylistsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var playlists []*domain.Playlist
	for _, playlist := range r.playlists {
		if playlist.UserID == userID {
			playlistCopy := *playlist
			playlists = append(playlists, &playlistCopy)
		}
	}
	sort.Slice(playlists, func(i, j int) bool { return playlists[i].Name < playlists[j].Name })
	return playlists, nil
}

func (r *Repository) DeletePlaylistsByUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, playlist := range r.playlists {
		if playlist.UserID == userID {
			delete(r.playlists, id)
		}
	}
	return nil
}

// Playlist membership operations

func (r *Repository) AddPlaylistSong(ctx context.Context, playlistID, songID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := pair{playlistID: playlistID, songID: songID}
	if _, exists := r.memberships[p]; exists {
		return false, nil
	}
	r.memberships[p] = struct{}{}
	r.order = append(r.order, p)
	return true, nil
}

func (r *Repository) RemovePlaylistSong(ctx context.Context, playlistID, songID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := pair{playlistID: playlistID, songID: songID}
	if _, exists := r.memberships[p]; !exists {
		return domain.ErrNotFound
	}
	r.removeLocked(p)
	return nil
}

func (r *Repository) ListPlaylistSongs(ctx context.Context, playlistID uuid.UUID) ([]*domain.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	songs := make([]*domain.Song, 0)
	for _, p := range r.order {
		if p.playlistID != playlistID {
			continue
		}
		if song, exists := r.songs[p.songID]; exists {
			songCopy := *song
			songs = append(songs, &songCopy)
		}
	}
	return songs, nil
}

func (r *Repository) DeleteMembershipsByUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for p := range r.memberships {
		playlist, exists := r.playlists[p.playlistID]
		if exists && playlist.UserID == userID {
			r.removeLocked(p)
		}
	}
	return nil
}

func (r *Repository) DeleteMembershipsBySong(ctx context.Context, songID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for p := range r.memberships {
		if p.songID == songID {
			r.removeLocked(p)
		}
	}
	return nil
}

func (r *Repository) removeLocked(p pair) {
	delete(r.memberships, p)
	for i, q := range r.order {
		if q == p {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
