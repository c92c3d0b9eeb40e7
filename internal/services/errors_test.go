package services_test

import (
	"errors"
	"strings"
	"testing"

	"reelforge/internal/queue"
	"reelforge/internal/services"
)

func TestWrapTagsMarkerAndDetail(t *testing.T) {
	base := errors.New("timeout dialing host")
	err := services.Wrap(services.ErrExternalTool, "rendering", "ffmpeg", "encode failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	for _, want := range []string{"rendering", "ffmpeg", "encode failed"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := services.Wrap(nil, "scripting", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestFailureStatus(t *testing.T) {
	if got := services.FailureStatus(services.Wrap(services.ErrValidation, "planning", "", "bad plan", nil)); got != queue.StatusReview {
		t.Fatalf("expected review for validation error, got %s", got)
	}
	if got := services.FailureStatus(services.Wrap(services.ErrExternalTool, "rendering", "", "boom", nil)); got != queue.StatusFailed {
		t.Fatalf("expected failed for tool error, got %s", got)
	}
}
