package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/echoplay/internal/domain"
	memoryrepo "github.com/echoplay/echoplay/internal/repository/memory"
)

func TestPlaylistAddSongIsIdempotent(t *testing.T) {
	repo := memoryrepo.New()
	svc := NewPlaylistService(repo, nil)
	ctx := context.Background()

	user := &domain.User{ID: newUUID(t), Name: "ana", ImageFile: "ana.jpg"}
	require.NoError(t, repo.CreateUser(ctx, user))
	song := &domain.Song{ID: newUUID(t), Name: "Imagine", Artist: "John Lennon", Cover: "c.jpg", File: "f.mp3"}
	require.NoError(t, repo.CreateSong(ctx, song))

	playlist, err := svc.Create(ctx, CreatePlaylistRequest{Name: "mix", UserID: user.ID})
	require.NoError(t, err)

	added, err := svc.AddSong(ctx, playlist.ID, song.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddSong(ctx, playlist.ID, song.ID)
	require.NoError(t, err, "second add reports success")
	assert.False(t, added, "second add inserts nothing")

	songs, err := svc.ListSongs(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Len(t, songs, 1, "exactly one membership row")
}

func TestPlaylistCreateValidation(t *testing.T) {
	repo := memoryrepo.New()
	svc := NewPlaylistService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePlaylistRequest{Name: "", UserID: newUUID(t)})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = svc.Create(ctx, CreatePlaylistRequest{Name: "mix"})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = svc.Create(ctx, CreatePlaylistRequest{Name: "mix", UserID: newUUID(t)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "owner must exist")
}

func TestPlaylistRemoveSong(t *testing.T) {
	repo := memoryrepo.New()
	svc := NewPlaylistService(repo, nil)
	ctx := context.Background()

	user := &domain.User{ID: newUUID(t), Name: "ana", ImageFile: "ana.jpg"}
	require.NoError(t, repo.CreateUser(ctx, user))
	song := &domain.Song{ID: newUUID(t), Name: "Imagine", Artist: "John Lennon", Cover: "c.jpg", File: "f.mp3"}
	require.NoError(t, repo.CreateSong(ctx, song))

	playlist, err := svc.Create(ctx, CreatePlaylistRequest{Name: "mix", UserID: user.ID})
	require.NoError(t, err)

	_, err = svc.AddSong(ctx, playlist.ID, song.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSong(ctx, playlist.ID, song.ID))

	err = svc.RemoveSong(ctx, playlist.ID, song.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "pair no longer present")
}

func TestPlaylistAddSongUnknownReferences(t *testing.T) {
	repo := memoryrepo.New()
	svc := NewPlaylistService(repo, nil)
	ctx := context.Background()

	user := &domain.User{ID: newUUID(t), Name: "ana", ImageFile: "ana.jpg"}
	require.NoError(t, repo.CreateUser(ctx, user))
	playlist, err := svc.Create(ctx, CreatePlaylistRequest{Name: "mix", UserID: user.ID})
	require.NoError(t, err)

	_, err = svc.AddSong(ctx, playlist.ID, newUUID(t))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddSong(ctx, newUUID(t), newUUID(t))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
