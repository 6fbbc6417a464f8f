// Package psql implements repository.Repository using PostgreSQL via pgx.
package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/repository"
)

// DBTX is satisfied by both a pgx pool and a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements repository.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) repository.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository from a connection pool
func NewWithPool(pool *pgxpool.Pool) repository.Repository {
	return &Repository{db: pool}
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, name, image_file) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, user.ID, user.Name, user.ImageFile); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, name, image_file FROM users WHERE id = $1`

	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.ImageFile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, name, image_file FROM users ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.ImageFile); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET name = $2, image_file = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, user.ID, user.Name, user.ImageFile)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Song operations

func (r *Repository) CreateSong(ctx context.Context, song *domain.Song) error {
	query := `INSERT INTO songs (id, name, artist, cover, file) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.Exec(ctx, query, song.ID, song.Name, song.Artist, song.Cover, song.File); err != nil {
		return fmt.Errorf("create song: %w", err)
	}
	return nil
}

func (r *Repository) GetSong(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	query := `SELECT id, name, artist, cover, file FROM songs WHERE id = $1`

	var song domain.Song
	err := r.db.QueryRow(ctx, query, id).Scan(&song.ID, &song.Name, &song.Artist, &song.Cover, &song.File)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get song: %w", err)
	}
	return &song, nil
}

func (r *Repository) ListSongs(ctx context.Context) ([]*domain.Song, error) {
	query := `SELECT id, name, artist, cover, file FROM songs ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	return scanSongs(rows)
}

func (r *Repository) DeleteSong(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Playlist operations

func (r *Repository) CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error {
	query := `INSERT INTO playlists (id, name, user_id) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, playlist.ID, playlist.Name, playlist.UserID); err != nil {
		return fmt.Errorf("create playlist: %w", err)
	}
	return nil
}

func (r *Repository) GetPlaylist(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	query := `SELECT id, name, user_id FROM playlists WHERE id = $1`

	var playlist domain.Playlist
	err := r.db.QueryRow(ctx, query, id).Scan(&playlist.ID, &playlist.Name, &playlist.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return &playlist, nil
}

func (r *Repository) ListPlaylistsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	query := `SELECT id, name, user_id FROM playlists WHERE user_id = $1 ORDER BY name`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*domain.Playlist
	for rows.Next() {
		var playlist domain.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.UserID); err != nil {
			return nil, err
		}
		playlists = append(playlists, &playlist)
	}
	return playlists, rows.Err()
}

func (r *Repository) DeletePlaylistsByUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM playlists WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete playlists: %w", err)
	}
	return nil
}

// Playlist membership operations

func (r *Repository) AddPlaylistSong(ctx context.Context, playlistID, songID uuid.UUID) (bool, error) {
	query := `INSERT INTO playlist_songs (playlist_id, song_id) VALUES ($1, $2)
		ON CONFLICT (playlist_id, song_id) DO NOTHING`

	tag, err := r.db.Exec(ctx, query, playlistID, songID)
	if err != nil {
		return false, fmt.Errorf("add playlist song: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) RemovePlaylistSong(ctx context.Context, playlistID, songID uuid.UUID) error {
	query := `DELETE FROM playlist_songs WHERE playlist_id = $1 AND song_id = $2`

	tag, err := r.db.Exec(ctx, query, playlistID, songID)
	if err != nil {
		return fmt.Errorf("remove playlist song: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) ListPlaylistSongs(ctx context.Context, playlistID uuid.UUID) ([]*domain.Song, error) {
	query := `
		SELECT s.id, s.name, s.artist, s.cover, s.file
		FROM playlist_songs ps
		JOIN songs s ON ps.song_id = s.id
		WHERE ps.playlist_id = $1`

	rows, err := r.db.Query(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	return scanSongs(rows)
}

func (r *Repository) DeleteMembershipsByUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM playlist_songs WHERE playlist_id IN
		(SELECT id FROM playlists WHERE user_id = $1)`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("delete memberships: %w", err)
	}
	return nil
}

func (r *Repository) DeleteMembershipsBySong(ctx context.Context, songID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM playlist_songs WHERE song_id = $1`, songID); err != nil {
		return fmt.Errorf("delete memberships: %w", err)
	}
	return nil
}

func scanSongs(rows pgx.Rows) ([]*domain.Song, error) {
	var songs []*domain.Song
	for rows.Next() {
		var song domain.Song
		if err := rows.Scan(&song.ID, &song.Name, &song.Artist, &song.Cover, &song.File); err != nil {
			return nil, err
		}
		songs = append(songs, &song)
	}
	return songs, rows.Err()
}
