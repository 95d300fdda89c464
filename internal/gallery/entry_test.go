package gallery

import "testing"

func newTestNormalizer() Normalizer {
	return NewNormalizer(NewResolver("videos"))
}

func TestNormalize_StringRecord(t *testing.T) {
	n := newTestNormalizer()

	e, ok := n.Normalize("intro-clip.mp4")
	if !ok {
		t.Fatalf("expected entry for string record")
	}
	if e.Name != "intro clip" {
		t.Fatalf("expected dashes read as spaces, got %q", e.Name)
	}
	if e.URL != "videos/intro-clip.mp4" {
		t.Fatalf("unexpected URL: %q", e.URL)
	}
	if e.Poster != "" {
		t.Fatalf("string records carry no poster, got %q", e.Poster)
	}
}

func TestNormalize_StringRecordDecodesName(t *testing.T) {
	n := newTestNormalizer()

	e, ok := n.Normalize("clip%20one.mp4")
	if !ok || e.Name != "clip one" {
		t.Fatalf("expected decoded name %q, got %+v ok=%v", "clip one", e, ok)
	}
}

func TestNormalize_RejectsUnusableInput(t *testing.T) {
	n := newTestNormalizer()

	for _, raw := range []any{nil, 42, 3.14, true, "", "   ", map[string]any{}, map[string]any{"name": 42}} {
		if e, ok := n.Normalize(raw); ok {
			t.Fatalf("expected rejection for %#v, got %+v", raw, e)
		}
	}
}

func TestNormalize_ObjectFieldPriority(t *testing.T) {
	n := newTestNormalizer()

	cases := []struct {
		rec  map[string]any
		name string
	}{
		{map[string]any{"name": "N", "file": "F", "title": "T", "url": "a.mp4"}, "N"},
		{map[string]any{"file": "F", "title": "T", "url": "a.mp4"}, "F"},
		{map[string]any{"title": "T", "url": "a.mp4"}, "T"},
	}
	for _, tc := range cases {
		e, ok := n.Normalize(tc.rec)
		if !ok || e.Name != tc.name {
			t.Fatalf("record %#v: expected name %q, got %+v ok=%v", tc.rec, tc.name, e, ok)
		}
	}
}

func TestNormalize_ObjectURLFallsBackToName(t *testing.T) {
	n := newTestNormalizer()

	e, ok := n.Normalize(map[string]any{"name": "clip2.mp4"})
	if !ok {
		t.Fatalf("expected entry")
	}
	if e.URL != "videos/clip2.mp4" {
		t.Fatalf("expected URL derived from name, got %q", e.URL)
	}
}

func TestNormalize_ObjectNameFallsBackToBasename(t *testing.T) {
	n := newTestNormalizer()

	e, ok := n.Normalize(map[string]any{"url": "videos/some_trip.mp4"})
	if !ok {
		t.Fatalf("expected entry")
	}
	if e.Name != "some trip" {
		t.Fatalf("expected derived name %q, got %q", "some trip", e.Name)
	}
}

func TestNormalize_PosterFallbackChain(t *testing.T) {
	n := newTestNormalizer()

	e, _ := n.Normalize(map[string]any{"name": "x", "poster": "p.jpg", "thumbnail": "t.jpg"})
	if e.Poster != "p.jpg" {
		t.Fatalf("poster should win over thumbnail, got %q", e.Poster)
	}

	e, _ = n.Normalize(map[string]any{"name": "x", "thumbnail": "t.jpg"})
	if e.Poster != "t.jpg" {
		t.Fatalf("expected thumbnail fallback, got %q", e.Poster)
	}

	e, _ = n.Normalize(map[string]any{"name": "x"})
	if e.Poster != "" {
		t.Fatalf("expected empty poster, got %q", e.Poster)
	}
}
