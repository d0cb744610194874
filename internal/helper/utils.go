package helper

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[\\/*?"<>|]`)

// NewChapterID returns a short random chapter identifier (first 8 hex chars
// of a v4 UUID), matching the artifact naming scheme.
func NewChapterID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %v", err)
	}
	return id.String()[:8], nil
}

// SlugFromURL derives a stable chapter identifier from the last path segment
// of a source URL, used by chain walks so re-walking the same book keeps the
// same artifact and index keys.
func SlugFromURL(rawURL string) string {
	trimmed := strings.Trim(rawURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	trimmed = strings.ReplaceAll(trimmed, " ", "_")
	trimmed = strings.ReplaceAll(trimmed, "-", "_")
	return CleanFilename(trimmed)
}

// CleanFilename strips characters that are unsafe in file names.
func CleanFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "")
}

// CreateFolder makes the directory and any missing parents.
func CreateFolder(path string) error {
	return os.MkdirAll(path, 0o755)
}
