package transcribe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"reelforge/internal/config"
	"reelforge/internal/services/transcribe"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "narration.mp3")
	if err := os.WriteFile(path, []byte("fake-mp3"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestTranscribeFileParsesWords(t *testing.T) {
	var gotModel, gotFormat, gotGranularity, gotFile string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		gotModel = r.FormValue("model")
		gotFormat = r.FormValue("response_format")
		gotGranularity = r.FormValue("timestamp_granularities[]")
		if _, header, err := r.FormFile("file"); err == nil {
			gotFile = header.Filename
		}
		w.Write([]byte(`{
			"duration": 1.2,
			"words": [
				{"word": "hello", "start": 0.0, "end": 0.5},
				{"word": "world", "start": 0.5, "end": 1.2}
			]
		}`))
	}))
	defer server.Close()

	client := transcribe.NewClient(config.Transcribe{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "whisper-1",
	})
	result, err := client.TranscribeFile(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}

	if gotModel != "whisper-1" || gotFormat != "verbose_json" || gotGranularity != "word" {
		t.Fatalf("unexpected form fields: model=%q format=%q granularity=%q", gotModel, gotFormat, gotGranularity)
	}
	if gotFile != "narration.mp3" {
		t.Fatalf("unexpected uploaded filename: %q", gotFile)
	}
	if len(result.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(result.Words))
	}
	if result.Words[0].Text != "hello" || result.Words[1].Text != "world" {
		t.Fatalf("unexpected words: %+v", result.Words)
	}
	if len(result.Raw) == 0 {
		t.Fatal("expected raw payload preserved")
	}
}

func TestTranscribeFileRejectsMissingAudio(t *testing.T) {
	client := transcribe.NewClient(config.Transcribe{APIKey: "k", BaseURL: "http://127.0.0.1:0"})
	if _, err := client.TranscribeFile(context.Background(), filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTranscribeFileSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad audio"}}`))
	}))
	defer server.Close()

	client := transcribe.NewClient(config.Transcribe{APIKey: "k", BaseURL: server.URL, Model: "whisper-1"})
	if _, err := client.TranscribeFile(context.Background(), writeAudio(t)); err == nil {
		t.Fatal("expected error for http 400")
	}
}

func TestTranscribeFileRejectsEmptyTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"duration": 0, "words": []}`))
	}))
	defer server.Close()

	client := transcribe.NewClient(config.Transcribe{APIKey: "k", BaseURL: server.URL, Model: "whisper-1"})
	if _, err := client.TranscribeFile(context.Background(), writeAudio(t)); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}
