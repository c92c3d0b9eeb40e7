package planning

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"reelforge/internal/align"
	"reelforge/internal/config"
	"reelforge/internal/logging"
	"reelforge/internal/queue"
	"reelforge/internal/sceneplan"
	"reelforge/internal/services"
	"reelforge/internal/services/images"
	"reelforge/internal/services/llm"
	"reelforge/internal/stage"
	"reelforge/internal/transcript"
)

// Service is the language-model surface the planner depends on.
type Service interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	HealthCheck(ctx context.Context) error
}

// ImageService is the stock imagery surface the planner depends on.
type ImageService interface {
	Enabled() bool
	Search(ctx context.Context, query, orientation string) ([]images.Photo, error)
	Download(ctx context.Context, photoURL, destPath string) error
}

// Planner turns a transcript into an aligned, imagery-backed scene plan.
type Planner struct {
	cfg     *config.Config
	store   *queue.Store
	logger  *slog.Logger
	llm     Service
	images  ImageService
	planner *sceneplan.Planner
}

// NewPlanner constructs the planning stage handler using default dependencies.
func NewPlanner(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Planner {
	return NewPlannerWithDependencies(cfg, store, logger,
		llm.NewClient(cfg.GetLLM()), images.NewClient(cfg.Images))
}

// NewPlannerWithDependencies allows injecting the model and image clients (used in tests).
func NewPlannerWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, svc Service, imgs ImageService) *Planner {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With("component", "planner")
	}
	return &Planner{
		cfg:     cfg,
		store:   store,
		logger:  stageLogger,
		llm:     svc,
		images:  imgs,
		planner: sceneplan.NewPlanner(svc, llm.DecodeJSON),
	}
}

func (p *Planner) Prepare(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, p.logger)
	project.SetProgress("Planning", "Preparing scene planning", 0)
	project.ErrorMessage = ""
	logger.Info("starting planning preparation", "transcript_file", project.TranscriptFile)
	return nil
}

func (p *Planner) Execute(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, p.logger)

	transcriptPath := strings.TrimSpace(project.TranscriptFile)
	if transcriptPath == "" {
		return services.Wrap(services.ErrValidation, "planning", "validate inputs",
			"No transcript file present; run transcription before planning", nil)
	}
	words, err := transcript.LoadFile(transcriptPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, "planning", "load transcript", "", err)
	}

	project.SetProgress("Planning", "Proposing scenes", 20)
	proposals, err := p.planner.Plan(ctx, words)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "planning", "propose scenes", "", err)
	}

	scenes := align.Align(words, proposals, transcript.TotalDuration(words))
	logger.Info("scenes aligned", "proposed", len(proposals), "aligned", len(scenes))

	project.SetProgress("Planning", "Attaching imagery", 60)
	p.attachImagery(ctx, project, scenes)

	planJSON, err := align.EncodePlan(scenes)
	if err != nil {
		return services.Wrap(services.ErrTransient, "planning", "encode scene plan", "", err)
	}
	project.ScenePlanJSON = planJSON
	project.SetProgress("Planning", "Scene plan ready", 90)
	return nil
}

// attachImagery resolves each scene's image prompt against the stock image
// service. Failures are logged and skipped; the scene keeps its gradient
// fallback rather than failing the stage.
func (p *Planner) attachImagery(ctx context.Context, project *queue.Project, scenes []align.Scene) {
	logger := logging.WithContext(ctx, p.logger)
	if p.images == nil || !p.images.Enabled() {
		logger.Info("image service disabled; scenes keep gradient fallbacks")
		return
	}

	imageDir := filepath.Join(project.StagingRoot(p.cfg.Paths.StagingDir), "images")
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		logger.Warn("create image dir failed; skipping imagery", "error", err)
		return
	}
	orientation := strings.TrimSpace(p.cfg.Render.Orientation)

	for i := range scenes {
		prompt := strings.TrimSpace(scenes[i].ImagePrompt)
		if prompt == "" {
			continue
		}
		photos, err := p.images.Search(ctx, prompt, orientation)
		if err != nil {
			logger.Warn("image search failed", "scene", scenes[i].Index, "error", err)
			continue
		}
		if len(photos) == 0 {
			logger.Info("no image match", "scene", scenes[i].Index, "prompt", prompt)
			continue
		}
		dest := filepath.Join(imageDir, fmt.Sprintf("scene-%02d.jpg", scenes[i].Index))
		if err := p.images.Download(ctx, photos[0].URL, dest); err != nil {
			logger.Warn("image download failed", "scene", scenes[i].Index, "error", err)
			continue
		}
		scenes[i].ImageRef = dest
	}
}

func (p *Planner) HealthCheck(ctx context.Context) stage.Health {
	if p.cfg.GetLLM().APIKey == "" {
		return stage.Unhealthy("planner", "LLM API key not configured")
	}
	if err := p.llm.HealthCheck(ctx); err != nil {
		return stage.Unhealthy("planner", err.Error())
	}
	return stage.Healthy("planner")
}
