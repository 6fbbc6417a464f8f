package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/echoplay/echoplay/internal/domain"
)

// ErrorResponse is the structured error body every failure propagates as.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// writeError maps the domain error taxonomy onto HTTP statuses. Nothing is
// swallowed: unknown errors surface as 500s.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	kind := "internal"

	switch {
	case errors.Is(err, domain.ErrMissingField):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		status, kind = http.StatusUnsupportedMediaType, "unsupported_media_type"
	case errors.Is(err, domain.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrStorageUnavailable):
		status, kind = http.StatusServiceUnavailable, "storage_unavailable"
	case errors.Is(err, domain.ErrNoneAvailable):
		status, kind = http.StatusNotFound, "none_available"
	case errors.Is(err, domain.ErrPartialWriteOrphan):
		kind = "partial_write_orphan"
	case errors.Is(err, domain.ErrPartialDelete):
		kind = "partial_delete"
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "kind", kind, "err", err)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error(), Kind: kind})
}
