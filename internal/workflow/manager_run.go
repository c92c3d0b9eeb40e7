package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reelforge/internal/queue"
)

// Start launches the polling loop. It returns an error when the manager is
// already running or no stages have been configured.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow manager already running")
	}
	if len(m.stages) == 0 {
		m.mu.Unlock()
		return errors.New("workflow manager has no stages configured")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.running = true
	m.cancel = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.run(runCtx)
	}()

	m.logger.Info("workflow manager started",
		"component", "workflow",
		"poll_interval", m.pollInterval.String(),
	)
	return nil
}

// Stop halts the polling loop and waits for any in-flight stage to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
	m.logger.Info("workflow manager stopped", "component", "workflow")
}

func (m *Manager) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		project, err := m.nextActionable(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.handleNextItemError(ctx, err)
			continue
		}
		if project == nil {
			if !m.waitForItemOrShutdown(ctx, m.pollInterval) {
				return
			}
			continue
		}

		m.setLastError(nil)
		m.processProject(ctx, project)
	}
}

func (m *Manager) nextActionable(ctx context.Context) (*queue.Project, error) {
	m.mu.RLock()
	order := make([]queue.Status, len(m.statusOrder))
	copy(order, m.statusOrder)
	m.mu.RUnlock()

	project, err := m.store.NextForStatuses(ctx, order...)
	if err != nil {
		return nil, fmt.Errorf("fetch next project: %w", err)
	}
	return project, nil
}

func (m *Manager) handleNextItemError(ctx context.Context, err error) {
	m.setLastError(err)
	m.logger.Error("workflow queue poll failed",
		"component", "workflow",
		"error", err,
	)
	retry := time.Duration(m.cfg.Workflow.ErrorRetryInterval) * time.Second
	m.waitForItemOrShutdown(ctx, retry)
}

// waitForItemOrShutdown sleeps for the given interval. It returns false when
// the context was cancelled while waiting.
func (m *Manager) waitForItemOrShutdown(ctx context.Context, interval time.Duration) bool {
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
