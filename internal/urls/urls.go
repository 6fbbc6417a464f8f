// Package urls builds the fully-qualified asset URLs handed to clients. The
// server never serves asset bytes from handlers; the static-serving layer does,
// under these same paths.
package urls

import (
	"fmt"
	"net/url"
	"strings"
)

// Serving path prefixes of the static collaborator.
const (
	CoversPath   = "/covers"
	ImagesPath   = "/images"
	MusicPath    = "/music"
	PackagesPath = "/apk"
)

// Builder derives absolute asset URLs from the configured public base URL.
type Builder struct {
	baseURL string
}

// NewBuilder creates a URL builder; a trailing slash on baseURL is ignored.
func NewBuilder(baseURL string) Builder {
	return Builder{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Cover returns the public URL of a cover asset.
func (b Builder) Cover(file string) string {
	return b.join(CoversPath, file)
}

// Image returns the public URL of a profile image asset.
func (b Builder) Image(file string) string {
	return b.join(ImagesPath, file)
}

// Music returns the public URL of an audio asset.
func (b Builder) Music(file string) string {
	return b.join(MusicPath, file)
}

// Package returns the public URL of a distributable package file.
func (b Builder) Package(file string) string {
	return b.join(PackagesPath, file)
}

func (b Builder) join(prefix, file string) string {
	return fmt.Sprintf("%s%s/%s", b.baseURL, prefix, url.PathEscape(file))
}
