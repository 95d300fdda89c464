package source

import (
	"context"
	"path"
	"strings"

	"golang.org/x/net/html"

	"github.com/vidshelf/vidshelf/internal/gallery"
)

// Listing discovers videos by scraping the directory listing page.
// It is the fallback behind the manifest, so unlike the manifest it hands
// back fully normalized entries: listing links carry no independent name.
type Listing struct {
	fetcher Fetcher
	dirURL  string
	ext     string
	norm    gallery.Normalizer
}

// NewListing creates a listing source for the directory at dirURL that
// accepts files with the given extension (e.g. ".mp4").
func NewListing(f Fetcher, dirURL, ext string, norm gallery.Normalizer) *Listing {
	return &Listing{
		fetcher: f,
		dirURL:  dirURL,
		ext:     strings.ToLower(ext),
		norm:    norm,
	}
}

// Load fetches the directory page and maps its candidate media links to
// entries. A non-success status is a *FetchError; a page with zero
// candidates after filtering is ErrNoMedia.
func (l *Listing) Load(ctx context.Context) ([]gallery.VideoEntry, error) {
	status, body, err := l.fetcher.FetchText(ctx, l.dirURL)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &FetchError{URL: l.dirURL, Status: status}
	}

	var entries []gallery.VideoEntry
	for _, href := range extractHrefs(body) {
		href = cleanHref(href)
		if !l.isCandidate(href) {
			continue
		}
		if e, ok := l.norm.Normalize(href); ok {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return nil, ErrNoMedia
	}
	return entries, nil
}

// cleanHref drops any query string or fragment and strips a single
// leading "./".
func cleanHref(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	return strings.TrimPrefix(href, "./")
}

// isCandidate reports whether a cleaned href looks like a media file:
// non-empty, not a parent-directory traversal, and carrying the supported
// extension on its final segment in any letter case.
func (l *Listing) isCandidate(href string) bool {
	if href == "" || strings.HasPrefix(href, "../") {
		return false
	}
	return strings.EqualFold(path.Ext(href), l.ext)
}

// extractHrefs collects every anchor href attribute in document order.
// All other markup is ignored. Malformed markup is not an error: html.Parse
// always produces a tree.
func extractHrefs(body string) []string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
					break
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return hrefs
}
