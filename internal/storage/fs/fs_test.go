package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/storage"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	return store
}

func TestNewCreatesAssetDirs(t *testing.T) {
	store := newStore(t)

	for _, dir := range storage.Dirs() {
		info, err := os.Stat(filepath.Join(store.BaseDir(), dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestSaveAndExists(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	err := store.Save(ctx, storage.DirCovers, "imagine-john-lennon-cover.jpg", strings.NewReader("cover-bytes"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(store.BaseDir(), storage.DirCovers, "imagine-john-lennon-cover.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("cover-bytes"), content)

	ok, err := store.Exists(ctx, storage.DirCovers, "imagine-john-lennon-cover.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, storage.DirCovers, "missing.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveMissingDirIsStorageUnavailable(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, os.RemoveAll(filepath.Join(store.BaseDir(), storage.DirMusic)))

	err := store.Save(ctx, storage.DirMusic, "track.mp3", strings.NewReader("audio"))
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestRenameReplacesTarget(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, storage.DirImages, "ana.jpg", strings.NewReader("old")))
	require.NoError(t, store.Save(ctx, storage.DirImages, "ana-belen.jpg", strings.NewReader("new")))

	require.NoError(t, store.Rename(ctx, storage.DirImages, "ana-belen.jpg", "ana.jpg"))

	content, err := os.ReadFile(filepath.Join(store.BaseDir(), storage.DirImages, "ana.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), content)

	ok, err := store.Exists(ctx, storage.DirImages, "ana-belen.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteAbsentFile(t *testing.T) {
	store := newStore(t)

	err := store.Delete(context.Background(), storage.DirCovers, "missing.jpg")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestListSkipsDirectories(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, storage.DirPackages, "app-1.0.0.apk", strings.NewReader("a")))
	require.NoError(t, store.Save(ctx, storage.DirPackages, "app-1.10.0.apk", strings.NewReader("b")))
	require.NoError(t, os.Mkdir(filepath.Join(store.BaseDir(), storage.DirPackages, "nested"), 0755))

	names, err := store.List(ctx, storage.DirPackages)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"app-1.0.0.apk", "app-1.10.0.apk"}, names)

	_, err = store.List(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
