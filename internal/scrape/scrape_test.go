package scrape

import "testing"

func TestResolveNext(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"empty href means no next", "https://example.com/book/ch1", "", ""},
		{"relative path", "https://example.com/book/ch1", "/book/ch2", "https://example.com/book/ch2"},
		{"sibling path", "https://example.com/book/ch1", "ch2", "https://example.com/book/ch2"},
		{"absolute url", "https://example.com/book/ch1", "https://other.org/ch2", "https://other.org/ch2"},
		{"wiki path", "https://en.wikisource.org/wiki/Book/Chapter_1", "/wiki/Book/Chapter_2", "https://en.wikisource.org/wiki/Book/Chapter_2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveNext(tt.base, tt.href)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ResolveNext(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
			}
		})
	}
}

func TestResolveNext_BadBase(t *testing.T) {
	if _, err := ResolveNext("://not-a-url", "ch2"); err == nil {
		t.Fatal("expected error for unparseable base URL")
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	err := &FetchError{URL: "https://example.com", Err: ErrContentMissing}
	if err.Unwrap() != ErrContentMissing {
		t.Fatal("FetchError must unwrap to its cause")
	}
}
