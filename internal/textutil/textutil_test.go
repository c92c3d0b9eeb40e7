package textutil_test

import (
	"reflect"
	"testing"

	"reelforge/internal/textutil"
)

func TestTokenizeFiltersShortTokens(t *testing.T) {
	got := textutil.Tokenize("The fog rolled in, to be at sea!")
	want := []string{"the", "fog", "rolled", "sea"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize mismatch: got %v want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := textutil.Tokenize("a b c!"); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	got := textutil.SanitizeFileName(` The Lost City: Part 1/2? `)
	if got != "The Lost City- Part 1-2" {
		t.Fatalf("unexpected sanitized name: %q", got)
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := textutil.SanitizeToken("Deep Sea #7"); got != "deep_sea__7" {
		t.Fatalf("unexpected token: %q", got)
	}
	if got := textutil.SanitizeToken("  "); got != "unknown" {
		t.Fatalf("expected unknown for blank, got %q", got)
	}
}
