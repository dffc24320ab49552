// Package drawing persists rendered drawings.
//
// Drawings are content-addressed: a [Key] names the assembly, the cache
// revision and the format, and maps to
//
//	<root>/<assemblyId>/<revision>/drawing.<format>
//
// on disk and to the public URL
//
//	/drawings/<assemblyId>/<revision>/drawing.<format>
//
// Writes are atomic (temp file, fsync, rename), so a reader never observes a
// partial drawing and two writers of the same revision are harmless.
package drawing

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/cabledraw/pkg/errors"
)

// FileBase is the base name of every stored drawing.
const FileBase = "drawing"

// URLPrefix is the path under which drawings are served.
const URLPrefix = "/drawings"

// Formats a drawing may be stored as.
var Formats = map[string]bool{
	"svg": true,
	"pdf": true,
	"png": true,
}

// Key locates a stored drawing.
type Key struct {
	AssemblyID string
	Revision   string
	Format     string
}

// Validate checks that every part of k is safe to use as a path segment.
func (k Key) Validate() error {
	if err := errors.ValidatePathSegment("assembly id", k.AssemblyID); err != nil {
		return err
	}
	if err := errors.ValidatePathSegment("revision", k.Revision); err != nil {
		return err
	}
	if !Formats[k.Format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported drawing format %q", k.Format)
	}
	return nil
}

// FileName returns the stored file name, e.g. "drawing.svg".
func (k Key) FileName() string {
	return FileBase + "." + k.Format
}

// URL returns the public path of the drawing.
func (k Key) URL() string {
	return URLPrefix + "/" + url.PathEscape(k.AssemblyID) + "/" + url.PathEscape(k.Revision) + "/" + k.FileName()
}

// ParseFileName extracts the format from a stored file name.
func ParseFileName(name string) (string, error) {
	format, ok := strings.CutPrefix(name, FileBase+".")
	if !ok || !Formats[format] {
		return "", errors.New(errors.ErrCodeDrawingNotFound, "no drawing named %q", name)
	}
	return format, nil
}

// ContentType returns the MIME type for a drawing format.
func ContentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	}
	return "application/octet-stream"
}

// Store persists drawings by key.
type Store interface {
	// Exists reports whether a drawing is stored under k.
	Exists(ctx context.Context, k Key) (bool, error)

	// Read returns the stored drawing, or DRAWING_NOT_FOUND.
	Read(ctx context.Context, k Key) ([]byte, error)

	// Write stores data under k, replacing any previous content atomically.
	Write(ctx context.Context, k Key, data []byte) error
}
