package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"reelforge/internal/config"
	"reelforge/internal/logging"
	"reelforge/internal/queue"
	"reelforge/internal/scriptgen"
	"reelforge/internal/services"
	"reelforge/internal/services/tts"
	"reelforge/internal/stage"
)

// narrationFileName is the fixed staging artifact name for synthesized audio.
const narrationFileName = "narration.mp3"

// Service is the speech synthesis surface the stage depends on.
type Service interface {
	Synthesize(ctx context.Context, text, destPath string) error
	HealthCheck(ctx context.Context) error
}

// Synthesizer voices the narration script into an audio file.
type Synthesizer struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
	tts    Service
}

// NewSynthesizer constructs the synthesis stage handler using default dependencies.
func NewSynthesizer(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Synthesizer {
	return NewSynthesizerWithDependencies(cfg, store, logger, tts.NewClient(cfg.TTS))
}

// NewSynthesizerWithDependencies allows injecting the TTS client (used in tests).
func NewSynthesizerWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, svc Service) *Synthesizer {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With("component", "synthesizer")
	}
	return &Synthesizer{cfg: cfg, store: store, logger: stageLogger, tts: svc}
}

func (s *Synthesizer) Prepare(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, s.logger)
	project.SetProgress("Synthesizing", "Preparing narration synthesis", 0)
	project.ErrorMessage = ""
	logger.Info("starting synthesis preparation", "title", strings.TrimSpace(project.Title))
	return nil
}

func (s *Synthesizer) Execute(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, s.logger)

	var script scriptgen.Script
	if err := json.Unmarshal([]byte(project.ScriptJSON), &script); err != nil {
		return services.Wrap(services.ErrValidation, "synthesizing", "decode script",
			"Stored script is not valid JSON; retry the scripting stage", err)
	}
	narration := strings.TrimSpace(script.Narration)
	if narration == "" {
		return services.Wrap(services.ErrValidation, "synthesizing", "validate inputs",
			"Script has no narration text", nil)
	}

	staging := project.StagingRoot(s.cfg.Paths.StagingDir)
	if staging == "" {
		return services.Wrap(services.ErrConfiguration, "synthesizing", "resolve staging dir",
			"staging_dir is not configured", nil)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return services.Wrap(services.ErrTransient, "synthesizing", "create staging dir", "", err)
	}

	dest := filepath.Join(staging, narrationFileName)
	project.SetProgress("Synthesizing", "Synthesizing narration audio", 25)
	if err := s.tts.Synthesize(ctx, narration, dest); err != nil {
		return services.Wrap(services.ErrExternalTool, "synthesizing", "synthesize narration", "", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return services.Wrap(services.ErrTransient, "synthesizing", "verify narration file", "", err)
	}
	if info.Size() == 0 {
		return services.Wrap(services.ErrExternalTool, "synthesizing", "verify narration file",
			fmt.Sprintf("Synthesis produced an empty file at %s", dest), nil)
	}

	project.NarrationFile = dest
	project.SetProgress("Synthesizing", "Narration synthesized", 90)
	logger.Info("narration synthesized", "file", dest, "bytes", info.Size())
	return nil
}

func (s *Synthesizer) HealthCheck(ctx context.Context) stage.Health {
	if strings.TrimSpace(s.cfg.TTS.APIKey) == "" {
		return stage.Unhealthy("synthesizer", "TTS API key not configured")
	}
	if err := s.tts.HealthCheck(ctx); err != nil {
		return stage.Unhealthy("synthesizer", err.Error())
	}
	return stage.Healthy("synthesizer")
}
