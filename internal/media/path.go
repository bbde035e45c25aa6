package media

import (
	"errors"
	"fmt"
	"strings"
)

// StoragePath is a canonical CDN-relative object path. Values are normalized
// once, at construction; rendering a URL is pure string concatenation with no
// runtime correction.
type StoragePath string

var ErrEmptyPath = errors.New("media: empty storage path")

// NewStoragePath validates and canonicalizes a stored path. Legacy rows
// sometimes carry a full URL that already embeds the CDN host; those are
// stripped back down to the relative path here so they never round-trip.
func NewStoragePath(raw, cdnBase string) (StoragePath, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", ErrEmptyPath
	}

	host := strings.TrimSuffix(cdnBase, "/")
	if host != "" {
		// Repeated prefixes collapse to the last occurrence.
		if idx := strings.LastIndex(p, host); idx >= 0 {
			p = p[idx+len(host):]
		}
	}

	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "", ErrEmptyPath
	}
	if strings.Contains(p, "://") {
		return "", fmt.Errorf("media: path %q points outside the CDN", raw)
	}

	return StoragePath(p), nil
}

func (p StoragePath) String() string {
	return string(p)
}

// URL renders the absolute CDN URL.
func (p StoragePath) URL(cdnBase string) string {
	return strings.TrimSuffix(cdnBase, "/") + "/" + string(p)
}

// ResolveURL is a convenience for nullable image columns.
func ResolveURL(path *string, cdnBase string) string {
	if path == nil {
		return ""
	}
	p, err := NewStoragePath(*path, cdnBase)
	if err != nil {
		return ""
	}
	return p.URL(cdnBase)
}
