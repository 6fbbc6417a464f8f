package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/echoplay/echoplay/internal/slug"
	"github.com/echoplay/echoplay/internal/storage"
)

// Upload field names accepted by the pipeline.
const (
	FieldCover = "cover"
	FieldAudio = "audio"
	FieldImage = "image"
	FieldApk   = "apk"
)

// Fields are the textual companion fields of an upload request. Which ones are
// required depends on the policies of the uploaded parts.
type Fields struct {
	Title   string
	Artist  string
	Name    string
	Version string
}

// Policy binds an upload field to its content-type requirement, destination
// directory and file-name derivation.
type Policy struct {
	Field       string
	ContentType string
	Dir         string

	// required lists the Fields members that must be non-empty.
	required []string

	// fileName derives the stored name from the request fields and the
	// original upload file name.
	fileName func(f Fields, uploadName string) string
}

var policies = map[string]Policy{
	FieldCover: {
		Field:       FieldCover,
		ContentType: "image/jpeg",
		Dir:         storage.DirCovers,
		required:    []string{"title", "artist"},
		fileName: func(f Fields, uploadName string) string {
			return fmt.Sprintf("%s-%s-cover%s",
				slug.Make(f.Title, slug.SongExtra),
				slug.Make(f.Artist, slug.SongExtra),
				ext(uploadName))
		},
	},
	FieldAudio: {
		Field:       FieldAudio,
		ContentType: "audio/mpeg",
		Dir:         storage.DirMusic,
		required:    []string{"title", "artist"},
		fileName: func(f Fields, uploadName string) string {
			return fmt.Sprintf("%s-%s%s",
				slug.Make(f.Artist, slug.SongExtra),
				slug.Make(f.Title, slug.SongExtra),
				ext(uploadName))
		},
	},
	FieldImage: {
		Field:       FieldImage,
		ContentType: "image/jpeg",
		Dir:         storage.DirImages,
		required:    []string{"name"},
		fileName: func(f Fields, uploadName string) string {
			// Extension forced regardless of the uploaded name.
			return slug.Make(f.Name, "") + ".jpg"
		},
	},
	FieldApk: {
		Field:       FieldApk,
		ContentType: "application/vnd.android.package-archive",
		Dir:         storage.DirPackages,
		required:    []string{"version"},
		fileName: func(f Fields, uploadName string) string {
			return "app-" + f.Version + ext(uploadName)
		},
	},
}

// PolicyFor resolves the policy of an upload field.
func PolicyFor(field string) (Policy, bool) {
	p, ok := policies[field]
	return p, ok
}

// missing returns the required text fields that are empty.
func (p Policy) missing(f Fields) []string {
	values := map[string]string{
		"title":   f.Title,
		"artist":  f.Artist,
		"name":    f.Name,
		"version": f.Version,
	}
	var missing []string
	for _, name := range p.required {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// FileName derives the stored file name for a part governed by this policy.
func (p Policy) FileName(f Fields, uploadName string) string {
	return p.fileName(f, uploadName)
}

// ImageFileName returns the stable on-disk name a user image gets at creation
// time, without going through an upload.
func ImageFileName(userName string) string {
	return policies[FieldImage].FileName(Fields{Name: userName}, "")
}

func ext(uploadName string) string {
	e := filepath.Ext(uploadName)
	if e == "" {
		return e
	}
	return strings.ToLower(e)
}
