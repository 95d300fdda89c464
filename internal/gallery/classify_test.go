package gallery

import "testing"

func TestClassifier_MarkerMatchesAnyCase(t *testing.T) {
	c := NewClassifier("nsfw")

	sensitive := []VideoEntry{
		{Name: "trip", URL: "videos/NSFW-trip.mp4"},
		{Name: "My nSfW thing", URL: "videos/thing.mp4"},
		{Name: "nsfw", URL: "videos/a.mp4"},
	}
	for _, e := range sensitive {
		if !c.IsSensitive(e) {
			t.Fatalf("expected sensitive: %+v", e)
		}
	}

	if c.IsSensitive(VideoEntry{Name: "trip", URL: "videos/trip.mp4"}) {
		t.Fatalf("plain entry should not be sensitive")
	}
}

func TestClassifier_EmptyMarkerDefaults(t *testing.T) {
	c := NewClassifier("")
	if !c.IsSensitive(VideoEntry{Name: "x", URL: "videos/nsfw/x.mp4"}) {
		t.Fatalf("empty marker should fall back to nsfw")
	}
}
