// Package ingest turns a local book file into raw chapter text so files that
// were never scraped can enter the same pipeline.
package ingest

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ParseFile extracts a title and plain text from a local .pdf, .docx, .txt,
// or .md file. The title is derived from the file name.
func ParseFile(path string) (title, text string, err error) {
	title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	title = strings.ReplaceAll(title, "_", " ")

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		text, err = parsePDF(path)
	case ".docx":
		text, err = parseDOCX(path)
	case ".txt":
		text, err = parseText(path)
	case ".md":
		text, err = parseMarkdown(path)
	default:
		return "", "", fmt.Errorf("unsupported file format: %s", ext)
	}
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", "", fmt.Errorf("no text content in %s", path)
	}
	return title, text, nil
}

func parsePDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}
	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		pageText, err := reader.Page(i).GetPlainText(nil)
		if err != nil {
			return "", err
		}
		out.WriteString(pageText)
		out.WriteString("\n\n")
	}
	return out.String(), nil
}

func parseDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer r.Close()
	// GetContent returns the document XML; keep only the text runs.
	content := htmlTagRe.ReplaceAllString(r.Editable().GetContent(), " ")
	return html.UnescapeString(content), nil
}

func parseText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// parseMarkdown renders the markdown and strips the markup, leaving the prose.
func parseMarkdown(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(data, &buf); err != nil {
		return "", err
	}
	text := htmlTagRe.ReplaceAllString(buf.String(), "")
	return html.UnescapeString(text), nil
}
