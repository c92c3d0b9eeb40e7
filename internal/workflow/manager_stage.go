package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"reelforge/internal/logging"
	"reelforge/internal/queue"
	"reelforge/internal/services"
)

func (m *Manager) processProject(ctx context.Context, project *queue.Project) {
	stg, ok := m.stageForStatus(project.Status)
	if !ok {
		m.logger.Warn("no stage registered for status",
			"component", "workflow",
			"project_id", project.ID,
			"status", string(project.Status),
		)
		return
	}

	stageCtx := services.WithProjectID(ctx, project.ID)
	stageCtx = services.WithStage(stageCtx, stg.name)
	stageCtx = services.WithRequestID(stageCtx, uuid.NewString())
	logger := logging.WithContext(stageCtx, m.logger)

	if err := m.transitionToProcessing(stageCtx, project, stg); err != nil {
		m.setLastError(err)
		logger.Error("failed to mark project processing", "error", err)
		return
	}
	m.setLastProject(project)

	if err := m.executeStage(stageCtx, logger, project, stg); err != nil {
		m.handleStageFailure(stageCtx, logger, project, stg, err)
		return
	}
	m.setLastProject(project)
}

func (m *Manager) transitionToProcessing(ctx context.Context, project *queue.Project, stg pipelineStage) error {
	project.Status = stg.processingStatus
	project.SetProgress(stg.name, "Starting "+stg.name, 0)
	project.ErrorMessage = ""
	if err := m.store.Update(ctx, project); err != nil {
		return fmt.Errorf("update project %d to %s: %w", project.ID, stg.processingStatus, err)
	}
	return nil
}

func (m *Manager) executeStage(ctx context.Context, logger *slog.Logger, project *queue.Project, stg pipelineStage) error {
	started := time.Now()
	logger.Info("stage started", "status", string(stg.processingStatus))

	if err := stg.handler.Prepare(ctx, project); err != nil {
		return fmt.Errorf("prepare %s: %w", stg.name, err)
	}
	if err := m.store.Update(ctx, project); err != nil {
		return fmt.Errorf("persist %s preparation: %w", stg.name, err)
	}

	if err := stg.handler.Execute(ctx, project); err != nil {
		return fmt.Errorf("execute %s: %w", stg.name, err)
	}

	project.Status = stg.doneStatus
	project.SetProgressComplete(stg.name, "Completed "+stg.name)
	if err := m.store.Update(ctx, project); err != nil {
		return fmt.Errorf("persist %s result: %w", stg.name, err)
	}

	logger.Info("stage completed",
		"status", string(stg.doneStatus),
		"duration", time.Since(started).Round(time.Millisecond).String(),
	)
	return nil
}
