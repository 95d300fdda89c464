// Package gallery holds the canonical video entry model and the pure logic
// that shapes raw discovery records into it: path resolution, record
// normalization, deduplication, ordering and sensitivity classification.
package gallery

import (
	"net/url"
	"path"
	"strings"
)

// VideoEntry is the canonical, presentation-ready form of one video.
type VideoEntry struct {
	// Name is a human-readable label, decoded and never empty.
	Name string `json:"name"`
	// URL is the canonical, percent-encoded resource path: an absolute
	// HTTP(S) URL or a path rooted at the video base directory.
	URL string `json:"url"`
	// Poster is an optional preview-image URL ("" when absent).
	Poster string `json:"poster,omitempty"`
}

// Normalizer converts loosely-shaped raw records from either discovery
// source into VideoEntry values.
type Normalizer struct {
	resolver Resolver
}

// NewNormalizer creates a normalizer using the given path resolver.
func NewNormalizer(r Resolver) Normalizer {
	return Normalizer{resolver: r}
}

// Normalize shapes one raw record into a VideoEntry. Records are bare
// strings (a file name or path) or objects with optional name/file/title,
// url and poster/thumbnail fields. It never fails; any record from which
// neither a name nor a URL can be derived reports ok == false.
func (n Normalizer) Normalize(raw any) (VideoEntry, bool) {
	switch rec := raw.(type) {
	case string:
		return n.fromString(rec)
	case map[string]any:
		return n.fromObject(rec)
	default:
		return VideoEntry{}, false
	}
}

func (n Normalizer) fromString(raw string) (VideoEntry, bool) {
	if strings.TrimSpace(raw) == "" {
		return VideoEntry{}, false
	}
	resolved := n.resolver.Resolve(raw)
	name := displayName(resolved)
	if name == "" {
		return VideoEntry{}, false
	}
	return VideoEntry{Name: name, URL: resolved}, true
}

func (n Normalizer) fromObject(rec map[string]any) (VideoEntry, bool) {
	name := firstString(rec, "name", "file", "title")
	rawURL := firstString(rec, "url")
	if name == "" && rawURL == "" {
		return VideoEntry{}, false
	}
	if rawURL == "" {
		rawURL = name
	}

	resolved := n.resolver.Resolve(rawURL)
	if name == "" {
		name = displayName(resolved)
	}
	if name == "" {
		return VideoEntry{}, false
	}

	return VideoEntry{
		Name:   name,
		URL:    resolved,
		Poster: firstString(rec, "poster", "thumbnail"),
	}, true
}

// firstString returns the first present, non-empty string value among the
// given keys, in priority order.
func firstString(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := rec[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// displayName derives a label from the final path segment of a resolved
// URL: decoded, extension stripped, dashes and underscores read as spaces.
func displayName(resolved string) string {
	seg := resolved
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if decoded, err := url.PathUnescape(seg); err == nil {
		seg = decoded
	}
	seg = strings.TrimSuffix(seg, path.Ext(seg))
	seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	return strings.TrimSpace(seg)
}
