package upload

import (
	"context"
	"fmt"
	"os"
	"strings"

	"log/slog"

	"reelforge/internal/config"
	"reelforge/internal/logging"
	"reelforge/internal/queue"
	"reelforge/internal/services"
	"reelforge/internal/services/storage"
	"reelforge/internal/stage"
)

// Service is the object storage surface the stage depends on.
type Service interface {
	UploadFile(ctx context.Context, sourcePath, objectKey, contentType string) (string, error)
}

// Uploader publishes finished videos to object storage.
type Uploader struct {
	cfg     *config.Config
	store   *queue.Store
	logger  *slog.Logger
	storage Service
}

// NewUploader constructs the upload stage handler using default dependencies.
func NewUploader(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Uploader {
	return NewUploaderWithDependencies(cfg, store, logger, storage.NewClient(cfg.Storage))
}

// NewUploaderWithDependencies allows injecting the storage client (used in tests).
func NewUploaderWithDependencies(cfg *config.Config, store *queue.Store, logger *slog.Logger, svc Service) *Uploader {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With("component", "uploader")
	}
	return &Uploader{cfg: cfg, store: store, logger: stageLogger, storage: svc}
}

func (u *Uploader) Prepare(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, u.logger)
	project.SetProgress("Uploading", "Preparing upload", 0)
	project.ErrorMessage = ""
	logger.Info("starting upload preparation", "final_file", project.FinalFile)
	return nil
}

func (u *Uploader) Execute(ctx context.Context, project *queue.Project) error {
	logger := logging.WithContext(ctx, u.logger)

	final := strings.TrimSpace(project.FinalFile)
	if final == "" {
		return services.Wrap(services.ErrValidation, "uploading", "validate inputs",
			"No rendered file present; run rendering before upload", nil)
	}
	if _, err := os.Stat(final); err != nil {
		return services.Wrap(services.ErrNotFound, "uploading", "validate inputs",
			"Rendered file is missing from the output directory", err)
	}
	if strings.TrimSpace(u.cfg.Storage.ServiceKey) == "" {
		return services.Wrap(services.ErrConfiguration, "uploading", "validate configuration",
			"Storage service key is not configured; set storage.service_key or SUPABASE_SERVICE_KEY", nil)
	}

	objectKey := fmt.Sprintf("videos/%d-%s.mp4", project.ID, project.OutputBasename())
	project.SetProgress("Uploading", "Uploading video", 25)
	url, err := u.storage.UploadFile(ctx, final, objectKey, "video/mp4")
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "uploading", "upload video", "", err)
	}

	project.UploadedURL = url
	project.SetProgress("Uploading", "Video uploaded", 90)
	logger.Info("video uploaded", "key", objectKey, "url", url)
	return nil
}

func (u *Uploader) HealthCheck(context.Context) stage.Health {
	if !u.cfg.Storage.Enabled {
		return stage.Unhealthy("uploader", "storage upload disabled")
	}
	if strings.TrimSpace(u.cfg.Storage.ServiceKey) == "" {
		return stage.Unhealthy("uploader", "storage service key not configured")
	}
	return stage.Healthy("uploader")
}
