package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxSegmentLength bounds identifiers that end up as path segments.
const maxSegmentLength = 128

// ValidatePathSegment validates an identifier that is used as a single directory
// name in the drawing store (assembly ids, revisions).
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidatePathSegment(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "%s cannot be empty", kind)
	}
	if len(name) > maxSegmentLength {
		return New(ErrCodeInvalidPath, "%s too long (max %d characters)", kind, maxSegmentLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "%s contains invalid control characters", kind)
		}
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidPath, "%s must be a single path segment: %q", kind, name)
	}
	return nil
}

// templateIDRegex matches template pack ids such as "basic-a3" or "STD-A3-IPC620".
var templateIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateTemplateID validates a template pack id before it is used to scan
// template roots.
func ValidateTemplateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTemplate, "template pack id cannot be empty")
	}
	if len(id) > maxSegmentLength || !templateIDRegex.MatchString(id) {
		return New(ErrCodeInvalidTemplate, "invalid template pack id: %q", id)
	}
	return nil
}

// ValidatePath validates a relative file path below a storage root.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
