package main

import (
	"testing"
	"time"

	"reelforge/internal/queue"
)

func TestFormatStatusLabel(t *testing.T) {
	cases := map[string]string{
		"pending":      "Pending",
		"synthesizing": "Synthesizing",
		"  review ":    "Review",
		"":             "",
	}
	for input, want := range cases {
		if got := formatStatusLabel(input); got != want {
			t.Fatalf("formatStatusLabel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestBuildProjectRowsOrdersNewestFirst(t *testing.T) {
	older := &queue.Project{
		ID:        1,
		Topic:     "older topic",
		Status:    queue.StatusPending,
		CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	newer := &queue.Project{
		ID:        2,
		Title:     "Newer Title",
		Topic:     "newer topic",
		Status:    queue.StatusRendering,
		CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
	newer.SetProgress("Rendering", "Encoding video", 60)

	rows := buildProjectRows([]*queue.Project{older, newer})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "2" || rows[1][0] != "1" {
		t.Fatalf("expected newest project first, got %v", rows)
	}
	if rows[0][1] != "Newer Title" {
		t.Fatalf("expected title to win over topic, got %q", rows[0][1])
	}
	if rows[1][1] != "older topic" {
		t.Fatalf("expected topic fallback, got %q", rows[1][1])
	}
	if rows[0][3] != "Rendering 60%" {
		t.Fatalf("unexpected progress cell %q", rows[0][3])
	}
	if rows[1][4] != "2026-01-01 10:00" {
		t.Fatalf("unexpected created cell %q", rows[1][4])
	}
}

func TestFormatProgressTerminalShowsMessage(t *testing.T) {
	project := &queue.Project{Status: queue.StatusFailed}
	project.SetFailed("script generation failed")
	if got := formatProgress(project); got != "script generation failed" {
		t.Fatalf("unexpected progress %q", got)
	}

	completed := &queue.Project{Status: queue.StatusCompleted}
	if got := formatProgress(completed); got != "-" {
		t.Fatalf("unexpected progress %q", got)
	}
}
