package gallery

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Dedupe removes entries whose URL was already seen, comparing URLs
// case-insensitively and keeping the first occurrence in source order.
func Dedupe(entries []VideoEntry) []VideoEntry {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, e := range entries {
		key := strings.ToLower(e.URL)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

// SortByName orders entries by name using locale-aware, case-insensitive,
// numeric-aware comparison, so "video2" sorts before "video10".
func SortByName(entries []VideoEntry) {
	// Collators are not safe for concurrent use; build one per call.
	c := collate.New(language.Und, collate.Loose, collate.Numeric)
	sort.SliceStable(entries, func(i, j int) bool {
		return c.CompareString(entries[i].Name, entries[j].Name) < 0
	})
}
