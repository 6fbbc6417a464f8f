package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/echoplay/echoplay/internal/ingest"
)

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func imagePart(content string) ingest.Part {
	return ingest.Part{Field: ingest.FieldImage, FileName: "photo.jpg", ContentType: "image/jpeg", Content: strings.NewReader(content)}
}
