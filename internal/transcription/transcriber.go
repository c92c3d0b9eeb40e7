package transcription

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"reelforge/internal/config"
	"reelforge/internal/logging"
	"reelforge/internal/queue"
	"reelforge/internal/services"
	"reelforge/internal/services/transcribe"
	"reelforge/internal/stage"
)

// transcriptFileName is the fixed staging artifact name for the raw
// verbose-JSON transcript payload.
const transcriptFileName = "transcript.json"

// Service is the speech-to-text surface the stage depends on.
type Service interface {
	TranscribeFile(ctx context.Context, audioPath string) (transcribe.Result, error)
}

// Transcriber produces word-level timings from the narration audio.
type Transcriber struct {
	cfg        *config.Config
	store      *queue.Store
	logger     *slog.Logger
	transcribe Service
}

// NewTranscriber constructs the transcription stage handler using default dependencies.
func NewTranscriber(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Transcriber {
	return NewTranscriberWithDependencies(cfg, store, logger, transcribe.NewClient(cfg.Transcribe))
}

// NewTranscriberWithDependencies allows injecting the transcription client (used in tests).
func NewTranscriberWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, svc Service) *Transcriber {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With("component", "transcriber")
	}
	return &Transcriber{cfg: cfg, store: store, logger: stageLogger, transcribe: svc}
}

func (t *Transcriber) Prepare(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, t.logger)
	project.SetProgress("Transcribing", "Preparing transcription", 0)
	project.ErrorMessage = ""
	logger.Info("starting transcription preparation", "narration_file", project.NarrationFile)
	return nil
}

func (t *Transcriber) Execute(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, t.logger)

	narration := strings.TrimSpace(project.NarrationFile)
	if narration == "" {
		return services.Wrap(services.ErrValidation, "transcribing", "validate inputs",
			"No narration file present; run synthesis before transcription", nil)
	}
	if _, err := os.Stat(narration); err != nil {
		return services.Wrap(services.ErrNotFound, "transcribing", "validate inputs",
			"Narration file is missing from staging", err)
	}

	project.SetProgress("Transcribing", "Transcribing narration", 25)
	result, err := t.transcribe.TranscribeFile(ctx, narration)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "transcribing", "transcribe narration", "", err)
	}

	dest := filepath.Join(filepath.Dir(narration), transcriptFileName)
	if err := os.WriteFile(dest, result.Raw, 0o644); err != nil {
		return services.Wrap(services.ErrTransient, "transcribing", "write transcript", "", err)
	}

	project.TranscriptFile = dest
	project.SetProgress("Transcribing", "Transcript ready", 90)
	logger.Info("transcript ready", "file", dest, "words", len(result.Words))
	return nil
}

func (t *Transcriber) HealthCheck(context.Context) stage.Health {
	if strings.TrimSpace(t.cfg.Transcribe.APIKey) == "" {
		return stage.Unhealthy("transcriber", "transcription API key not configured")
	}
	return stage.Healthy("transcriber")
}
