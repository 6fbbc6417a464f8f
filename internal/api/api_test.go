package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/echoplay/echoplay/internal/ingest"
	"github.com/echoplay/echoplay/internal/repository"
	memoryrepo "github.com/echoplay/echoplay/internal/repository/memory"
	"github.com/echoplay/echoplay/internal/service"
	memorystorage "github.com/echoplay/echoplay/internal/storage/memory"
	"github.com/echoplay/echoplay/internal/urls"
)

const testBaseURL = "http://media.test"

type testEnv struct {
	router chi.Router
	repo   repository.Repository
	store  *memorystorage.Store
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	repo := memoryrepo.New()
	store := memorystorage.New()
	pipeline := ingest.New(store, nil)
	builder := urls.NewBuilder(testBaseURL)

	userService := service.NewUserService(repo, pipeline, store, nil)
	songService := service.NewSongService(repo, pipeline, store, nil)
	playlistService := service.NewPlaylistService(repo, nil)
	packageService := service.NewPackageService(pipeline, store, nil)

	r := chi.NewRouter()
	r.Mount("/users", NewUserHandler(userService, playlistService, builder).Routes())
	r.Mount("/songs", NewSongHandler(songService, builder).Routes())
	r.Mount("/playlists", NewPlaylistHandler(playlistService, builder).Routes())
	r.Mount("/packages", NewPackageHandler(packageService, builder).Routes())

	return &testEnv{router: r, repo: repo, store: store}
}

// multipartBody assembles a multipart form from text fields and file parts.
type filePart struct {
	field       string
	fileName    string
	contentType string
	content     string
}

func multipartBody(t *testing.T, fields map[string]string, parts ...filePart) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	for _, p := range parts {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.fileName))
		header.Set("Content-Type", p.contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("create part %s: %v", p.field, err)
		}
		if _, err := io.WriteString(part, p.content); err != nil {
			t.Fatalf("write part %s: %v", p.field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func jpegPart(field, content string) filePart {
	return filePart{field: field, fileName: field + ".jpg", contentType: "image/jpeg", content: content}
}

func mp3Part(content string) filePart {
	return filePart{field: "audio", fileName: "track.mp3", contentType: "audio/mpeg", content: content}
}

func apkFilePart(content string) filePart {
	return filePart{field: "apk", fileName: "build.apk", contentType: "application/vnd.android.package-archive", content: content}
}

func doRequest(t *testing.T, env *testEnv, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := newRequest(t, method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func newRequest(t *testing.T, method, path string, body io.Reader) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return req
}
