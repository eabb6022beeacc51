// Package videoid derives stable cache keys from source video URLs.
package videoid

import (
	"strings"

	"snip/internal/services"
)

// Extract returns the video identifier token embedded in url. Two shapes are
// recognized: a query parameter named "v" (watch-page form) and the final
// path segment (short-link form). The first match wins and is returned
// verbatim; it doubles as the cache key, so no normalization is applied.
func Extract(url string) (string, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return "", services.Wrap(services.ErrInvalidURL, "videoid", "extract", "empty url", nil)
	}

	if token, ok := queryParam(trimmed); ok {
		return token, nil
	}
	if token, ok := lastSegment(trimmed); ok {
		return token, nil
	}
	return "", services.Wrap(services.ErrInvalidURL, "videoid", "extract", "no video identifier in "+trimmed, nil)
}

// queryParam locates the first v= query parameter and returns its value,
// truncated at the next '&' or end-of-string.
func queryParam(url string) (string, bool) {
	for _, marker := range []string{"?v=", "&v="} {
		idx := strings.Index(url, marker)
		if idx < 0 {
			continue
		}
		token := url[idx+len(marker):]
		if amp := strings.IndexByte(token, '&'); amp >= 0 {
			token = token[:amp]
		}
		if token != "" {
			return token, true
		}
	}
	return "", false
}

// lastSegment returns the final path segment of url, with any query or
// fragment suffix stripped.
func lastSegment(url string) (string, bool) {
	for _, sep := range []byte{'?', '#', '&'} {
		if idx := strings.IndexByte(url, sep); idx >= 0 {
			url = url[:idx]
		}
	}
	rest := url
	if idx := strings.Index(rest, "://"); idx >= 0 {
		rest = rest[idx+3:]
	}
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return "", false
	}
	segment := rest[strings.LastIndexByte(rest, '/')+1:]
	if segment == "" {
		return "", false
	}
	return segment, true
}
