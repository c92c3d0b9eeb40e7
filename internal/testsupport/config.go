package testsupport

import (
	"path/filepath"
	"testing"

	"reelforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StagingDir = filepath.Join(base, "staging")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.LLM.APIKey = "test-llm"
	cfgVal.TTS.APIKey = "test-tts"
	cfgVal.Transcribe.APIKey = "test-stt"
	cfgVal.Images.APIKey = "test-images"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithOrientation sets the render orientation on the test config.
func WithOrientation(orientation string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.Orientation = orientation
		if orientation == "landscape" {
			b.cfg.Render.Width, b.cfg.Render.Height = 1920, 1080
		} else {
			b.cfg.Render.Width, b.cfg.Render.Height = 1080, 1920
		}
	}
}

// WithStorage enables the storage section with the given endpoint.
func WithStorage(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.Enabled = true
		b.cfg.Storage.BaseURL = baseURL
		b.cfg.Storage.ServiceKey = "test-storage"
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StagingDir)
}
