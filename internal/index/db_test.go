package index

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReplaceAll_PreservesOrderAndReplaces(t *testing.T) {
	db := openTestDB(t)

	first := []Record{
		{Name: "clip one", URL: "videos/clip%20one.mp4"},
		{Name: "clip2", URL: "videos/clip2.mp4", Poster: "p.jpg", Sensitive: true},
	}
	if err := db.ReplaceAll(first); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	got, err := db.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 2 || got[0].Name != "clip one" || got[1].Name != "clip2" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if !got[1].Sensitive || got[1].Poster != "p.jpg" {
		t.Fatalf("lost fields on round trip: %+v", got[1])
	}

	// A new snapshot fully replaces the old one.
	if err := db.ReplaceAll([]Record{{Name: "solo", URL: "videos/solo.mp4"}}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	got, err = db.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 1 || got[0].Name != "solo" {
		t.Fatalf("expected replaced snapshot, got %+v", got)
	}
}

func TestSearch_FindsByName(t *testing.T) {
	db := openTestDB(t)

	records := []Record{
		{Name: "summer trip", URL: "videos/summer-trip.mp4"},
		{Name: "winter hike", URL: "videos/winter-hike.mp4"},
	}
	if err := db.ReplaceAll(records); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	results, err := db.Search("summer", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "summer trip" {
		t.Fatalf("unexpected results: %+v", results)
	}

	// Operator characters in user input must not break the query.
	if _, err := db.Search(`trip (usa) "quoted"`, 10); err != nil {
		t.Fatalf("Search with special chars: %v", err)
	}
}

func TestGetStats(t *testing.T) {
	db := openTestDB(t)

	if err := db.ReplaceAll([]Record{
		{Name: "a", URL: "videos/a.mp4"},
		{Name: "b", URL: "videos/b.mp4", Sensitive: true},
	}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Videos != 2 || stats.Sensitive != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.IndexedAt == "" {
		t.Fatalf("expected indexed_at to be recorded")
	}
}
