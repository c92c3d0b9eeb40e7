package rendering

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"reelforge/internal/align"
	"reelforge/internal/config"
	"reelforge/internal/encode"
	"reelforge/internal/logging"
	"reelforge/internal/queue"
	"reelforge/internal/services"
	"reelforge/internal/stage"
	"reelforge/internal/timeline"
	"reelforge/internal/transcript"
)

// Driver is the encoding surface the stage depends on.
type Driver interface {
	Render(ctx context.Context, comp *timeline.Composition, job encode.Job) error
	ProbeDuration(ctx context.Context, path string) (float64, error)
	Available() error
}

// Renderer assembles the final video from the scene plan and transcript.
type Renderer struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
	driver Driver
}

// NewRenderer constructs the render stage handler using default dependencies.
func NewRenderer(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Renderer {
	return NewRendererWithDependencies(cfg, store, logger, encode.NewDriver(cfg, logger))
}

// NewRendererWithDependencies allows injecting the encode driver (used in tests).
func NewRendererWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, driver Driver) *Renderer {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With("component", "renderer")
	}
	return &Renderer{cfg: cfg, store: store, logger: stageLogger, driver: driver}
}

func (r *Renderer) Prepare(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, r.logger)
	project.SetProgress("Rendering", "Preparing render", 0)
	project.ErrorMessage = ""
	logger.Info("starting render preparation", "title", strings.TrimSpace(project.Title))
	return nil
}

func (r *Renderer) Execute(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, r.logger)

	scenes, words, err := r.loadInputs(project)
	if err != nil {
		return err
	}

	narration := strings.TrimSpace(project.NarrationFile)
	if narration != "" {
		duration, err := r.driver.ProbeDuration(ctx, narration)
		if err != nil {
			return services.Wrap(services.ErrExternalTool, "rendering", "probe narration", "", err)
		}
		if duration <= 0 {
			return services.Wrap(services.ErrValidation, "rendering", "probe narration",
				"Narration audio has zero duration", nil)
		}
		logger.Info("narration probed", "seconds", duration)
	}

	opts := []timeline.Option{
		timeline.WithTitle(project.Title),
		timeline.WithNarration(narration),
	}
	if music := r.resolveMusicTrack(logger); music != "" {
		opts = append(opts, timeline.WithMusic(music))
	}

	comp := timeline.NewComposition(
		timeline.NewClock(r.cfg.Render.FPS),
		timeline.Orientation(r.cfg.Render.Orientation),
		scenes, words, opts...,
	)
	if comp.TotalFrames() == 0 {
		return services.Wrap(services.ErrValidation, "rendering", "build composition",
			"Composition is empty; transcript and scene plan carry no usable timing", nil)
	}

	outputDir := strings.TrimSpace(r.cfg.Paths.OutputDir)
	if outputDir == "" {
		return services.Wrap(services.ErrConfiguration, "rendering", "resolve output dir",
			"output_dir is not configured", nil)
	}
	outputPath := filepath.Join(outputDir, project.OutputBasename()+".mp4")

	project.SetProgress("Rendering", "Encoding video", 25)
	job := encode.Job{
		StagingDir: project.StagingRoot(r.cfg.Paths.StagingDir),
		OutputPath: outputPath,
	}
	if err := r.driver.Render(ctx, comp, job); err != nil {
		return services.Wrap(services.ErrExternalTool, "rendering", "encode video", "", err)
	}

	project.FinalFile = outputPath
	project.SetProgress("Rendering", "Video rendered", 90)
	logger.Info("video rendered", "file", outputPath, "frames", comp.TotalFrames())
	return nil
}

func (r *Renderer) loadInputs(project *queue.Project) ([]align.Scene, []transcript.Word, error) {
	planJSON := strings.TrimSpace(project.ScenePlanJSON)
	if planJSON == "" {
		return nil, nil, services.Wrap(services.ErrValidation, "rendering", "validate inputs",
			"No scene plan present; run planning before rendering", nil)
	}
	scenes, err := align.DecodePlan(planJSON)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrValidation, "rendering", "decode scene plan", "", err)
	}

	transcriptPath := strings.TrimSpace(project.TranscriptFile)
	if transcriptPath == "" {
		return nil, nil, services.Wrap(services.ErrValidation, "rendering", "validate inputs",
			"No transcript file present; run transcription before rendering", nil)
	}
	words, err := transcript.LoadFile(transcriptPath)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrValidation, "rendering", "load transcript", "", err)
	}
	return scenes, words, nil
}

// resolveMusicTrack returns the configured music bed path, or empty when no
// track is configured or the file is missing. A missing track degrades to a
// narration-only mix instead of failing the render.
func (r *Renderer) resolveMusicTrack(logger *slog.Logger) string {
	track := strings.TrimSpace(r.cfg.Render.MusicTrack)
	if track == "" {
		return ""
	}
	if !filepath.IsAbs(track) {
		track = filepath.Join(r.cfg.Paths.MusicDir, track)
	}
	if _, err := os.Stat(track); err != nil {
		logger.Warn("music track unavailable; rendering without music", "track", track, "error", err)
		return ""
	}
	return track
}

func (r *Renderer) HealthCheck(context.Context) stage.Health {
	if err := r.driver.Available(); err != nil {
		return stage.Unhealthy("renderer", err.Error())
	}
	return stage.Healthy("renderer")
}
