package workflow

import (
	"context"

	"reelforge/internal/queue"
)

// StatusSummary is a point-in-time snapshot of the workflow state.
type StatusSummary struct {
	Running     bool
	LastError   string
	LastProject *queue.Project
	Queue       queue.HealthSummary
}

// Status reports whether the manager is running, the most recent error, the
// last project it touched, and the queue health buckets.
func (m *Manager) Status(ctx context.Context) (StatusSummary, error) {
	m.mu.RLock()
	summary := StatusSummary{Running: m.running}
	if m.lastErr != nil {
		summary.LastError = m.lastErr.Error()
	}
	if m.lastProject != nil {
		cp := *m.lastProject
		summary.LastProject = &cp
	}
	m.mu.RUnlock()

	health, err := m.store.Health(ctx)
	if err != nil {
		return summary, err
	}
	summary.Queue = health
	return summary, nil
}
