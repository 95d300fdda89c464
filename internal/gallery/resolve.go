package gallery

import (
	"net/url"
	"strings"
)

// Resolver normalizes raw, possibly relative or pre-encoded paths into
// canonical resource URLs rooted at a fixed base directory.
type Resolver struct {
	baseDir string
}

// NewResolver creates a resolver rooted at baseDir (e.g. "videos").
func NewResolver(baseDir string) Resolver {
	return Resolver{baseDir: strings.Trim(baseDir, "/")}
}

// Resolve turns a raw path into a canonical resource URL. Absolute HTTP(S)
// URLs pass through unchanged; anything else is rooted under the base
// directory with every segment after the first percent-escaped exactly once.
// Resolve is idempotent: Resolve(Resolve(x)) == Resolve(x).
func (r Resolver) Resolve(raw string) string {
	if isAbsoluteURL(raw) {
		return raw
	}

	p := raw
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	p = strings.TrimLeft(p, "/")

	if p != r.baseDir && !strings.HasPrefix(p, r.baseDir+"/") {
		p = r.baseDir + "/" + p
	}

	segs := strings.Split(p, "/")
	for i := 1; i < len(segs); i++ {
		segs[i] = escapeSegment(segs[i])
	}
	return strings.Join(segs, "/")
}

// escapeSegment percent-escapes one path segment. Decoding first collapses
// any pre-existing encoding so already-escaped input is not escaped twice;
// a malformed escape leaves the raw segment to be encoded as-is.
func escapeSegment(seg string) string {
	if decoded, err := url.PathUnescape(seg); err == nil {
		seg = decoded
	}
	return url.PathEscape(seg)
}

func isAbsoluteURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
