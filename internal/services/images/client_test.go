package images_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"reelforge/internal/config"
	"reelforge/internal/services/images"
)

func TestSearchSelectsOrientationVariant(t *testing.T) {
	var gotAuth, gotQuery, gotOrientation, gotPerPage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		gotOrientation = r.URL.Query().Get("orientation")
		gotPerPage = r.URL.Query().Get("per_page")
		w.Write([]byte(`{"photos":[
			{"id":1,"src":{"large2x":"http://img/large","portrait":"http://img/portrait"},"alt":"kelp forest"},
			{"id":2,"src":{"large2x":"http://img/large2"},"alt":""}
		]}`))
	}))
	defer server.Close()

	client := images.NewClient(config.Images{APIKey: "px-key", BaseURL: server.URL, PerQuery: 2})
	photos, err := client.Search(context.Background(), "kelp forest", "portrait")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotAuth != "px-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotQuery != "kelp forest" || gotOrientation != "portrait" || gotPerPage != "2" {
		t.Fatalf("unexpected query params: query=%q orientation=%q per_page=%q", gotQuery, gotOrientation, gotPerPage)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}
	if photos[0].URL != "http://img/portrait" {
		t.Fatalf("expected portrait variant, got %q", photos[0].URL)
	}
	if photos[1].URL != "http://img/large2" {
		t.Fatalf("expected large2x fallback, got %q", photos[1].URL)
	}
}

func TestSearchRequiresKey(t *testing.T) {
	client := images.NewClient(config.Images{BaseURL: "http://127.0.0.1:0"})
	if client.Enabled() {
		t.Fatal("expected client disabled without key")
	}
	if _, err := client.Search(context.Background(), "reef", "portrait"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestDownloadWritesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	client := images.NewClient(config.Images{APIKey: "k", BaseURL: server.URL})
	dest := filepath.Join(t.TempDir(), "art", "scene-1.jpg")
	if err := client.Download(context.Background(), server.URL+"/photo.jpg", dest); err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected file contents: %q", data)
	}
}

func TestDownloadSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := images.NewClient(config.Images{APIKey: "k", BaseURL: server.URL})
	dest := filepath.Join(t.TempDir(), "scene.jpg")
	if err := client.Download(context.Background(), server.URL+"/photo.jpg", dest); err == nil {
		t.Fatal("expected error for http 403")
	}
	if _, err := os.Stat(dest); err == nil {
		t.Fatal("expected no file written on failure")
	}
}
