package gallery

import "testing"

func TestResolve_AbsoluteURLPassesThrough(t *testing.T) {
	r := NewResolver("videos")
	abs := "https://cdn.example.com/media/trip.mp4"
	if got := r.Resolve(abs); got != abs {
		t.Fatalf("expected absolute URL unchanged, got %q", got)
	}
	if got := r.Resolve("HTTP://cdn.example.com/x.mp4"); got != "HTTP://cdn.example.com/x.mp4" {
		t.Fatalf("expected scheme match to be case-insensitive, got %q", got)
	}
}

func TestResolve_PrefixesBaseDir(t *testing.T) {
	r := NewResolver("videos")

	cases := map[string]string{
		"trip.mp4":         "videos/trip.mp4",
		"./trip.mp4":       "videos/trip.mp4",
		"/videos/trip.mp4": "videos/trip.mp4",
		"videos/trip.mp4":  "videos/trip.mp4",
		"sub/dir/trip.mp4": "videos/sub/dir/trip.mp4",
		"clip one.mp4":     "videos/clip%20one.mp4",
		"videos/a%20b.mp4": "videos/a%20b.mp4",
		"./././twice.mp4":  "videos/twice.mp4",
	}
	for in, want := range cases {
		if got := r.Resolve(in); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve_MalformedEscapeEncodesRawSegment(t *testing.T) {
	r := NewResolver("videos")
	got := r.Resolve("bad%zz.mp4")
	if got != "videos/bad%25zz.mp4" {
		t.Fatalf("expected raw segment encoded, got %q", got)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := NewResolver("videos")
	inputs := []string{
		"trip.mp4",
		"clip one.mp4",
		"videos/clip%20one.mp4",
		"bad%zz.mp4",
		"./sub dir/file name.mp4",
		"https://cdn.example.com/a%20b.mp4",
	}
	for _, in := range inputs {
		once := r.Resolve(in)
		twice := r.Resolve(once)
		if once != twice {
			t.Fatalf("Resolve not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
