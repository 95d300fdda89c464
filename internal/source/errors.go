// Package source implements the two discovery sources: the declared JSON
// manifest and the directory-listing fallback. Failures carry a kind so the
// pipeline can branch on them explicitly.
package source

import (
	"errors"
	"fmt"
)

// ErrManifestNotFound reports that the manifest resource does not exist.
// The pipeline treats it as an expected condition and falls back silently.
var ErrManifestNotFound = errors.New("manifest not found")

// ErrNoMedia reports that a directory listing contained no candidate media
// links after filtering. There is no further fallback behind it.
var ErrNoMedia = errors.New("no media links in directory listing")

// FetchError is a non-success transport status from either source.
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Status, e.URL)
}

// FormatError reports a manifest payload that could not be used: malformed
// JSON, or valid JSON of the wrong shape.
type FormatError struct {
	URL    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unusable manifest at %s: %s", e.URL, e.Reason)
}
