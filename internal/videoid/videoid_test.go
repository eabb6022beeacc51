package videoid

import (
	"errors"
	"testing"

	"snip/internal/services"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"watch page", "https://www.youtube.com/watch?v=wJ2Y4yQzuqE", "wJ2Y4yQzuqE"},
		{"watch page with trailing params", "https://www.youtube.com/watch?v=ABC123&t=42s&list=PL9", "ABC123"},
		{"v not first param", "https://www.youtube.com/watch?app=desktop&v=ABC123", "ABC123"},
		{"short link", "https://youtu.be/ABC123", "ABC123"},
		{"short link with query", "https://youtu.be/ABC123?t=4", "ABC123"},
		{"bare path", "example.com/videos/ABC123", "ABC123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Extract(tc.url)
			if err != nil {
				t.Fatalf("extract %q: %v", tc.url, err)
			}
			if got != tc.want {
				t.Fatalf("extract %q = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestExtractSameURLSameKey(t *testing.T) {
	const url = "https://www.youtube.com/watch?v=wJ2Y4yQzuqE"
	first, err := Extract(url)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	second, err := Extract(url)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if first != second {
		t.Fatalf("keys differ: %q vs %q", first, second)
	}
}

func TestExtractInvalid(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"bare domain", "https://example.com"},
		{"trailing slash", "https://example.com/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Extract(tc.url)
			if err == nil {
				t.Fatalf("expected error for %q", tc.url)
			}
			if !errors.Is(err, services.ErrInvalidURL) {
				t.Fatalf("expected ErrInvalidURL, got %v", err)
			}
		})
	}
}
