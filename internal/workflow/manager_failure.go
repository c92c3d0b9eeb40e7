package workflow

import (
	"context"
	"log/slog"

	"reelforge/internal/queue"
	"reelforge/internal/services"
)

// handleStageFailure classifies a stage error and persists the outcome.
// Validation and configuration problems park the project for review, other
// failures are retried from the start of the stage until the attempt budget
// is exhausted.
func (m *Manager) handleStageFailure(ctx context.Context, logger *slog.Logger, project *queue.Project, stg pipelineStage, stageErr error) {
	m.setLastError(stageErr)

	if services.FailureStatus(stageErr) == queue.StatusReview {
		project.SetReview(stageErr.Error())
		if err := m.store.Update(ctx, project); err != nil {
			logger.Error("failed to persist review status", "error", err)
			return
		}
		logger.Warn("project parked for review", "reason", stageErr.Error())
		m.setLastProject(project)
		return
	}

	if project.RetryCount+1 < m.cfg.Workflow.MaxAttempts {
		project.RetryCount++
		project.Status = stg.startStatus
		project.ErrorMessage = stageErr.Error()
		project.SetProgress(stg.name, "Retrying "+stg.name, 0)
		if err := m.store.Update(ctx, project); err != nil {
			logger.Error("failed to persist retry", "error", err)
			return
		}
		logger.Warn("stage failed, will retry",
			"error", stageErr,
			"attempt", project.RetryCount,
			"max_attempts", m.cfg.Workflow.MaxAttempts,
		)
		m.setLastProject(project)
		return
	}

	project.SetFailed(stageErr.Error())
	if err := m.store.Update(ctx, project); err != nil {
		logger.Error("failed to persist failure", "error", err)
		return
	}
	logger.Error("stage failed permanently", "error", stageErr)
	m.setLastProject(project)
}
