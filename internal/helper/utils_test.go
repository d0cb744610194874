package helper

import "testing"

func TestNewChapterID(t *testing.T) {
	id, err := NewChapterID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(id) != 8 {
		t.Fatalf("expected 8-char id, got %q", id)
	}
}

func TestSlugFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://en.wikisource.org/wiki/The_Gates_of_Morning/Book_1/Chapter_1", "Chapter_1"},
		{"https://example.com/book/ch-one/", "ch_one"},
		{"https://example.com/spaced name", "spaced_name"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := SlugFromURL(tt.url); got != tt.want {
			t.Fatalf("SlugFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestCleanFilename(t *testing.T) {
	if got := CleanFilename(`a/b\c*d?e"f<g>h|i`); got != "abcdefghi" {
		t.Fatalf("unexpected cleaned name: %q", got)
	}
}
