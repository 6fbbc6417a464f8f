package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/ingest"
	"github.com/echoplay/echoplay/internal/repository"
	memoryrepo "github.com/echoplay/echoplay/internal/repository/memory"
	memorystorage "github.com/echoplay/echoplay/internal/storage/memory"
)

// failingDeleteRepo completes the relation cleanup but fails the user row
// delete, leaving the documented partially-deleted state.
type failingDeleteRepo struct {
	repository.Repository
}

func (r *failingDeleteRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return errors.New("connection reset")
}

func TestUserDeleteReportsPartialProgress(t *testing.T) {
	inner := memoryrepo.New()
	repo := &failingDeleteRepo{Repository: inner}
	store := memorystorage.New()
	svc := NewUserService(repo, ingest.New(store, nil), store, nil)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserRequest{Name: "Ana", Image: imagePart("img")})
	require.NoError(t, err)

	playlist := &domain.Playlist{ID: uuid.New(), Name: "mix", UserID: user.ID}
	require.NoError(t, inner.CreatePlaylist(ctx, playlist))

	err = svc.Delete(ctx, user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPartialDelete)

	var partial *domain.PartialDeleteError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, "user row", partial.Step)
	assert.Equal(t, []string{"memberships", "playlists"}, partial.Completed)

	// The playlists really are gone while the user row survives.
	playlists, listErr := inner.ListPlaylistsByUser(ctx, user.ID)
	require.NoError(t, listErr)
	assert.Empty(t, playlists)
	_, getErr := inner.GetUser(ctx, user.ID)
	assert.NoError(t, getErr)
}
