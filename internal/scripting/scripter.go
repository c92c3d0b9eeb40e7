package scripting

import (
	"context"
	"encoding/json"
	"strings"

	"log/slog"

	"reelforge/internal/config"
	"reelforge/internal/logging"
	"reelforge/internal/queue"
	"reelforge/internal/scriptgen"
	"reelforge/internal/services"
	"reelforge/internal/services/llm"
	"reelforge/internal/stage"
)

// Service is the language-model surface the scripter depends on.
type Service interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	HealthCheck(ctx context.Context) error
}

// Scripter generates the narration script for a queued topic.
type Scripter struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
	llm    Service
	gen    *scriptgen.Generator
}

// NewScripter constructs the scripting stage handler using default dependencies.
func NewScripter(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Scripter {
	return NewScripterWithDependencies(cfg, store, logger, llm.NewClient(cfg.GetLLM()))
}

// NewScripterWithDependencies allows injecting the model client (used in tests).
func NewScripterWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, svc Service) *Scripter {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With("component", "scripter")
	}
	return &Scripter{
		cfg:    cfg,
		store:  store,
		logger: stageLogger,
		llm:    svc,
		gen:    scriptgen.NewGenerator(svc, llm.DecodeJSON),
	}
}

func (s *Scripter) Prepare(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, s.logger)
	project.SetProgress("Scripting", "Preparing script generation", 0)
	project.ErrorMessage = ""
	logger.Info("starting script preparation", "topic", strings.TrimSpace(project.Topic))
	return nil
}

func (s *Scripter) Execute(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, s.logger)

	topic := strings.TrimSpace(project.Topic)
	if topic == "" {
		return services.Wrap(services.ErrValidation, "scripting", "validate inputs",
			"Project has no topic; re-add it with a non-empty topic", nil)
	}
	if s.cfg.GetLLM().APIKey == "" {
		return services.Wrap(services.ErrConfiguration, "scripting", "validate configuration",
			"LLM API key is not configured; set llm.api_key or OPENROUTER_API_KEY", nil)
	}

	project.SetProgress("Scripting", "Generating narration script", 25)
	script, err := s.gen.Generate(ctx, topic)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "scripting", "generate script", "", err)
	}

	payload, err := json.Marshal(script)
	if err != nil {
		return services.Wrap(services.ErrTransient, "scripting", "encode script", "", err)
	}

	project.ScriptJSON = string(payload)
	project.Title = script.Title
	project.SetProgress("Scripting", "Script generated", 90)

	logger.Info("script generated",
		"title", script.Title,
		"narration_words", len(strings.Fields(script.Narration)),
	)
	return nil
}

func (s *Scripter) HealthCheck(ctx context.Context) stage.Health {
	if s.cfg.GetLLM().APIKey == "" {
		return stage.Unhealthy("scripter", "LLM API key not configured")
	}
	if err := s.llm.HealthCheck(ctx); err != nil {
		return stage.Unhealthy("scripter", err.Error())
	}
	return stage.Healthy("scripter")
}
