package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchText_ReturnsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cache-Control") != "no-cache" {
			t.Errorf("expected cache-bypass header, got %q", r.Header.Get("Cache-Control"))
		}
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	status, body, err := New(100).FetchText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchText returned error: %v", err)
	}
	if status != http.StatusOK || body != "hello" {
		t.Fatalf("unexpected response: %d %q", status, body)
	}
}

func TestFetchText_NonSuccessStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	status, _, err := New(100).FetchText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("status mapping belongs to the sources, got error: %v", err)
	}
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestFetchJSON_DecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["a.mp4"]`))
	}))
	defer srv.Close()

	var v any
	status, err := New(100).FetchJSON(context.Background(), srv.URL, &v)
	if err != nil {
		t.Fatalf("FetchJSON returned error: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 1 {
		t.Fatalf("unexpected decoded value: %#v", v)
	}
}

func TestFetchJSON_MalformedBodyReturnsStatusAndError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{oops`))
	}))
	defer srv.Close()

	var v any
	status, err := New(100).FetchJSON(context.Background(), srv.URL, &v)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if status != http.StatusOK {
		t.Fatalf("expected the 2xx status alongside the error, got %d", status)
	}
}

func TestFetchJSON_SkipsDecodeOnNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	var v any
	status, err := New(100).FetchJSON(context.Background(), srv.URL, &v)
	if err != nil {
		t.Fatalf("non-2xx body must not be decoded: %v", err)
	}
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if v != nil {
		t.Fatalf("v should be untouched, got %#v", v)
	}
}
