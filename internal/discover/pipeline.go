// Package discover orchestrates the manifest-first, listing-fallback
// discovery of video entries.
package discover

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vidshelf/vidshelf/internal/gallery"
	"github.com/vidshelf/vidshelf/internal/source"
)

// Pipeline turns the two partially-trusted sources into one clean,
// deduplicated, ordered entry list.
type Pipeline struct {
	manifest *source.Manifest
	listing  *source.Listing
	norm     gallery.Normalizer
	log      *logrus.Logger
}

// New creates a discovery pipeline.
func New(manifest *source.Manifest, listing *source.Listing, norm gallery.Normalizer, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		manifest: manifest,
		listing:  listing,
		norm:     norm,
		log:      log,
	}
}

// Discover runs one discovery pass. Manifest-stage failures never
// propagate: a missing, unreadable or empty manifest only moves discovery
// on to the directory listing. A listing-stage failure is the overall
// failure. An empty result with a nil error means "nothing found".
func (p *Pipeline) Discover(ctx context.Context) ([]gallery.VideoEntry, error) {
	entries, err := p.fromManifest(ctx)
	switch {
	case err != nil:
		p.logFallback(err)
	case len(entries) == 0:
		// A manifest that parses but yields nothing usable is treated
		// the same as a missing one.
		p.log.Debug("manifest yielded no usable entries, trying directory listing")
	}

	if err != nil || len(entries) == 0 {
		entries, err = p.listing.Load(ctx)
		if errors.Is(err, source.ErrNoMedia) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("discovering videos: %w", err)
		}
	}

	entries = gallery.Dedupe(entries)
	gallery.SortByName(entries)
	return entries, nil
}

func (p *Pipeline) fromManifest(ctx context.Context) ([]gallery.VideoEntry, error) {
	records, err := p.manifest.Load(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]gallery.VideoEntry, 0, len(records))
	for _, rec := range records {
		if e, ok := p.norm.Normalize(rec); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// logFallback reports why the manifest was skipped. A missing manifest is
// expected and stays quiet; anything else deserves a warning.
func (p *Pipeline) logFallback(err error) {
	var fetchErr *source.FetchError
	var formatErr *source.FormatError
	switch {
	case errors.Is(err, source.ErrManifestNotFound):
		p.log.Debug("no manifest, trying directory listing")
	case errors.As(err, &fetchErr):
		p.log.WithField("status", fetchErr.Status).Warn("manifest fetch failed, trying directory listing")
	case errors.As(err, &formatErr):
		p.log.WithError(err).Warn("manifest has unexpected shape, trying directory listing")
	default:
		p.log.WithError(err).Warn("manifest unusable, trying directory listing")
	}
}
