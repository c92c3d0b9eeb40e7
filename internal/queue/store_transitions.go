package queue

import (
	"context"
	"fmt"
	"time"
)

// ResetStuckProcessing resets projects left in processing states back to the
// start of their current stage. Called on startup so a crashed run can resume.
func (s *Store) ResetStuckProcessing(ctx context.Context) (int64, error) {
	caseClauses := ""
	whereArgs := make([]any, 0, len(stageRollbackTransitions))
	caseArgs := make([]any, 0, len(stageRollbackTransitions)*2)
	for _, transition := range stageRollbackTransitions {
		caseClauses += " WHEN ? THEN ?"
		caseArgs = append(caseArgs, transition.from, transition.to)
		whereArgs = append(whereArgs, transition.from)
	}

	args := make([]any, 0, len(caseArgs)+1+len(whereArgs))
	args = append(args, caseArgs...)
	args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
	args = append(args, whereArgs...)

	res, err := s.execWithRetry(
		ctx,
		`UPDATE projects
         SET status = CASE status`+caseClauses+` ELSE status END,
             progress_stage = 'Reset from stuck processing',
             progress_percent = 0, progress_message = NULL, updated_at = ?
         WHERE status IN (`+makePlaceholders(len(whereArgs))+`)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck projects: %w", err)
	}
	return res.RowsAffected()
}

// RetryFailed moves failed projects back to pending for reprocessing. With no
// IDs every failed project is retried.
func (s *Store) RetryFailed(ctx context.Context, ids ...int64) (int64, error) {
	if len(ids) == 0 {
		res, err := s.execWithRetry(
			ctx,
			`UPDATE projects
            SET status = ?, progress_stage = 'Retry requested', progress_percent = 0,
                progress_message = NULL, error_message = NULL, updated_at = ?
            WHERE status = ?`,
			StatusPending,
			time.Now().UTC().Format(time.RFC3339Nano),
			StatusFailed,
		)
		if err != nil {
			return 0, fmt.Errorf("retry failed projects: %w", err)
		}
		return res.RowsAffected()
	}

	placeholders := makePlaceholders(len(ids))
	args := make([]any, 0, len(ids)+2)
	args = append(args, StatusPending, time.Now().UTC().Format(time.RFC3339Nano))
	for _, id := range ids {
		args = append(args, id)
	}
	query := `UPDATE projects
        SET status = ?, progress_stage = 'Retry requested', progress_percent = 0,
            progress_message = NULL, error_message = NULL, updated_at = ?
        WHERE id IN (` + placeholders + `) AND status = '` + string(StatusFailed) + `'`
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("retry selected projects: %w", err)
	}
	return res.RowsAffected()
}

// FailInFlight marks every processing project as failed with the given reason.
// Used during daemon shutdown so restarts see a clean queue.
func (s *Store) FailInFlight(ctx context.Context, reason string) (int64, error) {
	whereArgs := make([]any, 0, len(processingStatuses))
	for status := range processingStatuses {
		whereArgs = append(whereArgs, status)
	}
	args := make([]any, 0, len(whereArgs)+2)
	args = append(args, reason, time.Now().UTC().Format(time.RFC3339Nano))
	args = append(args, whereArgs...)

	res, err := s.execWithRetry(
		ctx,
		`UPDATE projects
         SET status = '`+string(StatusFailed)+`', error_message = ?, progress_percent = 0, updated_at = ?
         WHERE status IN (`+makePlaceholders(len(whereArgs))+`)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("fail in-flight projects: %w", err)
	}
	return res.RowsAffected()
}
