package gallery

import "strings"

// Classifier tags entries whose name or URL carries a marker token as
// sensitive. The tag is advisory metadata for the presentation layer; it
// never removes entries from a discovered list.
type Classifier struct {
	marker string
}

// NewClassifier creates a classifier for the given marker token.
// An empty marker falls back to "nsfw".
func NewClassifier(marker string) Classifier {
	marker = strings.ToLower(strings.TrimSpace(marker))
	if marker == "" {
		marker = "nsfw"
	}
	return Classifier{marker: marker}
}

// IsSensitive reports whether the entry's name or URL contains the marker,
// in any letter case.
func (c Classifier) IsSensitive(e VideoEntry) bool {
	return strings.Contains(strings.ToLower(e.Name), c.marker) ||
		strings.Contains(strings.ToLower(e.URL), c.marker)
}
