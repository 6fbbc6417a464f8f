package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/ingest"
)

// maxUploadMemory bounds how much of a multipart body is held in memory;
// larger parts spill to temp files and stream from there.
const maxUploadMemory = 32 << 20

// formPart extracts one uploaded file part from a parsed multipart request.
// A missing part reports domain.ErrMissingField.
func formPart(r *http.Request, field string) (ingest.Part, error) {
	part, err := optionalFormPart(r, field)
	if err != nil {
		return ingest.Part{}, err
	}
	if part == nil {
		return ingest.Part{}, fmt.Errorf("%w: %s", domain.ErrMissingField, field)
	}
	return *part, nil
}

// optionalFormPart is formPart for parts that may legitimately be absent.
func optionalFormPart(r *http.Request, field string) (*ingest.Part, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMissingField, field, err)
	}
	return &ingest.Part{
		Field:       field,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}, nil
}
