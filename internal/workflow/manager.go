package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"reelforge/internal/config"
	"reelforge/internal/queue"
	"reelforge/internal/stage"
)

// Manager coordinates queue processing using registered stage handlers.
type Manager struct {
	cfg          *config.Config
	store        *queue.Store
	logger       *slog.Logger
	pollInterval time.Duration

	stages       []pipelineStage
	statusOrder  []queue.Status
	stageByStart map[queue.Status]pipelineStage

	mu          sync.RWMutex
	running     bool
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	lastErr     error
	lastProject *queue.Project
}

// StageSet bundles the concrete workflow handlers the manager orchestrates.
type StageSet struct {
	Scripter    stage.Handler
	Synthesizer stage.Handler
	Transcriber stage.Handler
	Planner     stage.Handler
	Renderer    stage.Handler
	Uploader    stage.Handler
}

type pipelineStage struct {
	name             string
	handler          stage.Handler
	startStatus      queue.Status
	processingStatus queue.Status
	doneStatus       queue.Status
}

// NewManager constructs a new workflow manager.
func NewManager(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:          cfg,
		store:        store,
		logger:       logger,
		pollInterval: time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
	}
}

// ConfigureStages registers the concrete stage handlers the workflow will run.
// A nil handler removes its stage; the surrounding statuses chain directly.
func (m *Manager) ConfigureStages(set StageSet) {
	var stages []pipelineStage

	if set.Scripter != nil {
		stages = append(stages, pipelineStage{
			name:             "scripter",
			handler:          set.Scripter,
			startStatus:      queue.StatusPending,
			processingStatus: queue.StatusScripting,
			doneStatus:       queue.StatusScripted,
		})
	}
	if set.Synthesizer != nil {
		stages = append(stages, pipelineStage{
			name:             "synthesizer",
			handler:          set.Synthesizer,
			startStatus:      queue.StatusScripted,
			processingStatus: queue.StatusSynthesizing,
			doneStatus:       queue.StatusSynthesized,
		})
	}
	if set.Transcriber != nil {
		stages = append(stages, pipelineStage{
			name:             "transcriber",
			handler:          set.Transcriber,
			startStatus:      queue.StatusSynthesized,
			processingStatus: queue.StatusTranscribing,
			doneStatus:       queue.StatusTranscribed,
		})
	}
	if set.Planner != nil {
		stages = append(stages, pipelineStage{
			name:             "planner",
			handler:          set.Planner,
			startStatus:      queue.StatusTranscribed,
			processingStatus: queue.StatusPlanning,
			doneStatus:       queue.StatusPlanned,
		})
	}
	if set.Renderer != nil {
		rendererDone := queue.StatusRendered
		if set.Uploader == nil {
			rendererDone = queue.StatusCompleted
		}
		stages = append(stages, pipelineStage{
			name:             "renderer",
			handler:          set.Renderer,
			startStatus:      queue.StatusPlanned,
			processingStatus: queue.StatusRendering,
			doneStatus:       rendererDone,
		})
	}
	if set.Uploader != nil {
		stages = append(stages, pipelineStage{
			name:             "uploader",
			handler:          set.Uploader,
			startStatus:      queue.StatusRendered,
			processingStatus: queue.StatusUploading,
			doneStatus:       queue.StatusCompleted,
		})
	}

	byStart := make(map[queue.Status]pipelineStage, len(stages))
	order := make([]queue.Status, 0, len(stages))
	for _, stg := range stages {
		byStart[stg.startStatus] = stg
		order = append(order, stg.startStatus)
	}

	m.mu.Lock()
	m.stages = stages
	m.stageByStart = byStart
	m.statusOrder = order
	m.mu.Unlock()
}

func (m *Manager) stageForStatus(status queue.Status) (pipelineStage, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stg, ok := m.stageByStart[status]
	return stg, ok
}

func (m *Manager) setLastError(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

func (m *Manager) setLastProject(project *queue.Project) {
	m.mu.Lock()
	if project != nil {
		cp := *project
		m.lastProject = &cp
	} else {
		m.lastProject = nil
	}
	m.mu.Unlock()
}
