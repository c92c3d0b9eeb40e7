package queue

import (
	"fmt"
	"path/filepath"
	"strings"

	"reelforge/internal/textutil"
)

// StagingRoot returns the per-project staging directory rooted at base.
// The segment combines the project ID with a sanitized topic slug so
// directories stay unique and recognizable.
func (p Project) StagingRoot(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	slug := textutil.SanitizeToken(p.Topic)
	segment := fmt.Sprintf("project-%d", p.ID)
	if slug != "unknown" {
		segment = fmt.Sprintf("project-%d-%s", p.ID, slug)
	}
	return filepath.Join(base, segment)
}

// OutputBasename returns the filesystem-safe filename (without extension) for
// the finished video. The title wins over the topic when present.
func (p Project) OutputBasename() string {
	name := textutil.SanitizeFileName(p.Title)
	if name == "" {
		name = textutil.SanitizeFileName(p.Topic)
	}
	if name == "" {
		return fmt.Sprintf("project-%d", p.ID)
	}
	return name
}
