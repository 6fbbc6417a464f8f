package ingest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/storage"
	memorystorage "github.com/echoplay/echoplay/internal/storage/memory"
)

func songRequest() Request {
	return Request{
		Fields: Fields{Title: "Imagine", Artist: "John Lennon"},
		Parts: []Part{
			{Field: FieldCover, FileName: "cover.jpg", ContentType: "image/jpeg", Content: strings.NewReader("jpeg-bytes")},
			{Field: FieldAudio, FileName: "imagine.mp3", ContentType: "audio/mpeg", Content: strings.NewReader("mp3-bytes")},
		},
	}
}

func TestIngestSong(t *testing.T) {
	store := memorystorage.New()
	p := New(store, nil)

	names, err := p.Ingest(context.Background(), songRequest())
	require.NoError(t, err)

	assert.Equal(t, "imagine-john-lennon-cover.jpg", names[FieldCover])
	assert.Equal(t, "john-lennon-imagine.mp3", names[FieldAudio])

	cover, ok := store.Content(storage.DirCovers, "imagine-john-lennon-cover.jpg")
	require.True(t, ok)
	assert.Equal(t, "jpeg-bytes", string(cover))

	audio, ok := store.Content(storage.DirMusic, "john-lennon-imagine.mp3")
	require.True(t, ok)
	assert.Equal(t, "mp3-bytes", string(audio))
}

func TestIngestRejectsWrongContentType(t *testing.T) {
	store := memorystorage.New()
	p := New(store, nil)

	req := songRequest()
	req.Parts[0].ContentType = "image/png"

	_, err := p.Ingest(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedMediaType)

	var ingestErr *domain.IngestError
	require.True(t, errors.As(err, &ingestErr))
	assert.Equal(t, FieldCover, ingestErr.Field)

	// Nothing may be written, not even the valid sibling part.
	for _, dir := range storage.Dirs() {
		names, listErr := store.List(context.Background(), dir)
		require.NoError(t, listErr)
		assert.Empty(t, names)
	}
}

func TestIngestRejectsMissingFields(t *testing.T) {
	store := memorystorage.New()
	p := New(store, nil)

	req := songRequest()
	req.Fields.Artist = "   "

	_, err := p.Ingest(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrMissingField)

	names, listErr := store.List(context.Background(), storage.DirCovers)
	require.NoError(t, listErr)
	assert.Empty(t, names)
}

func TestIngestRejectsUnknownField(t *testing.T) {
	p := New(memorystorage.New(), nil)

	_, err := p.Ingest(context.Background(), Request{
		Fields: Fields{Title: "x", Artist: "y"},
		Parts:  []Part{{Field: "banner", ContentType: "image/jpeg", Content: strings.NewReader("x")}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestIngestRejectsEmptyRequest(t *testing.T) {
	p := New(memorystorage.New(), nil)

	_, err := p.Ingest(context.Background(), Request{})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestIngestUserImageForcesExtension(t *testing.T) {
	store := memorystorage.New()
	p := New(store, nil)

	names, err := p.Ingest(context.Background(), Request{
		Fields: Fields{Name: "Café del Mar"},
		Parts:  []Part{{Field: FieldImage, FileName: "photo.jpeg", ContentType: "image/jpeg", Content: strings.NewReader("img")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "cafe-del-mar.jpg", names[FieldImage])
}

func TestIngestPackage(t *testing.T) {
	store := memorystorage.New()
	p := New(store, nil)

	names, err := p.Ingest(context.Background(), Request{
		Fields: Fields{Version: "1.2.0"},
		Parts:  []Part{{Field: FieldApk, FileName: "build.apk", ContentType: "application/vnd.android.package-archive", Content: strings.NewReader("apk")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "app-1.2.0.apk", names[FieldApk])
}

// failingStore fails every Save into failDir, to exercise sibling cleanup.
type failingStore struct {
	*memorystorage.Store
	failDir string
}

func (s *failingStore) Save(ctx context.Context, dir, name string, r io.Reader) error {
	if dir == s.failDir {
		return errors.New("disk full")
	}
	return s.Store.Save(ctx, dir, name, r)
}

func TestIngestCleansUpOnWriteFailure(t *testing.T) {
	inner := memorystorage.New()
	store := &failingStore{Store: inner, failDir: storage.DirMusic}
	p := New(store, nil)

	_, err := p.Ingest(context.Background(), songRequest())
	require.Error(t, err)

	var ingestErr *domain.IngestError
	require.True(t, errors.As(err, &ingestErr))
	assert.Equal(t, FieldAudio, ingestErr.Field)

	// The cover written before the audio failure must be gone again.
	names, listErr := inner.List(context.Background(), storage.DirCovers)
	require.NoError(t, listErr)
	assert.Empty(t, names)
}
