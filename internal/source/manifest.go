package source

import (
	"context"
	"net/http"
)

// Fetcher is the injected fetch capability both sources depend on.
// Implementations report the HTTP status to the caller; only transport
// (and, for JSON, decode) failures are errors.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (int, string, error)
	FetchJSON(ctx context.Context, url string, v any) (int, error)
}

// Manifest loads raw records from the declared JSON manifest.
type Manifest struct {
	fetcher Fetcher
	url     string
}

// NewManifest creates a manifest source for the given manifest URL.
func NewManifest(f Fetcher, manifestURL string) *Manifest {
	return &Manifest{fetcher: f, url: manifestURL}
}

// Load fetches and shape-checks the manifest, returning its records
// unnormalized. The payload must be a JSON array or an object with a
// "files" array; anything else is a *FormatError. A not-found status is
// ErrManifestNotFound, other non-success statuses are a *FetchError.
func (m *Manifest) Load(ctx context.Context) ([]any, error) {
	var payload any
	status, err := m.fetcher.FetchJSON(ctx, m.url, &payload)
	switch {
	case err != nil && status >= 200 && status <= 299:
		// Fetched fine but the body is not JSON.
		return nil, &FormatError{URL: m.url, Reason: err.Error()}
	case err != nil:
		return nil, err
	case status == http.StatusNotFound:
		return nil, ErrManifestNotFound
	case status < 200 || status > 299:
		return nil, &FetchError{URL: m.url, Status: status}
	}

	switch v := payload.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if files, ok := v["files"].([]any); ok {
			return files, nil
		}
	}
	return nil, &FormatError{URL: m.url, Reason: "expected an array or an object with a files array"}
}
