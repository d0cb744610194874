package index

import (
	"fmt"
	"strings"
)

const previewChars = 400

// FormatResults renders similarity hits into human-readable snippets:
// a chapter/title line, the feedback score with two decimals, and a bounded
// content preview.
func FormatResults(results []Result) []string {
	formatted := make([]string, 0, len(results))
	for _, r := range results {
		title := r.Title
		if title == "" {
			title = "Untitled"
		}
		formatted = append(formatted, fmt.Sprintf(
			"Chapter %s: %s\nScore: %.2f\n\n%s",
			r.ChapterID, title, float64(r.Score), preview(r.Content),
		))
	}
	return formatted
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewChars {
		return content
	}
	return strings.TrimSpace(string(runes[:previewChars])) + "..."
}
