package workflow

import (
	"context"
	"testing"
	"time"

	"reelforge/internal/logging"
	"reelforge/internal/queue"
	"reelforge/internal/services"
	"reelforge/internal/stage"
	"reelforge/internal/testsupport"
)

type stubHandler struct {
	name       string
	prepareErr error
	executeErr error
	executions int
	onExecute  func(*queue.Project)
}

func (h *stubHandler) Prepare(ctx context.Context, project *queue.Project) error {
	return h.prepareErr
}

func (h *stubHandler) Execute(ctx context.Context, project *queue.Project) error {
	h.executions++
	if h.executeErr != nil {
		return h.executeErr
	}
	if h.onExecute != nil {
		h.onExecute(project)
	}
	return nil
}

func (h *stubHandler) HealthCheck(ctx context.Context) stage.Health {
	return stage.Healthy(h.name)
}

func newTestManager(t *testing.T) (*Manager, *queue.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	return NewManager(cfg, store, logging.NewNop()), store
}

func fullStageSet() (StageSet, map[string]*stubHandler) {
	handlers := map[string]*stubHandler{
		"scripter":    {name: "scripter"},
		"synthesizer": {name: "synthesizer"},
		"transcriber": {name: "transcriber"},
		"planner":     {name: "planner"},
		"renderer":    {name: "renderer"},
		"uploader":    {name: "uploader"},
	}
	return StageSet{
		Scripter:    handlers["scripter"],
		Synthesizer: handlers["synthesizer"],
		Transcriber: handlers["transcriber"],
		Planner:     handlers["planner"],
		Renderer:    handlers["renderer"],
		Uploader:    handlers["uploader"],
	}, handlers
}

func TestManagerProcessesFullPipeline(t *testing.T) {
	mgr, store := newTestManager(t)
	set, handlers := fullStageSet()
	mgr.ConfigureStages(set)

	ctx := context.Background()
	project := testsupport.NewProject(t, store, "ocean volcanoes")

	for i := 0; i < len(mgr.stages); i++ {
		current, err := store.GetByID(ctx, project.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		mgr.processProject(ctx, current)
	}

	final, err := store.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if final.Status != queue.StatusCompleted {
		t.Fatalf("expected completed, got %s", final.Status)
	}
	for name, h := range handlers {
		if h.executions != 1 {
			t.Errorf("handler %s executed %d times, want 1", name, h.executions)
		}
	}
}

func TestManagerSkipsUnsetUploader(t *testing.T) {
	mgr, store := newTestManager(t)
	set, _ := fullStageSet()
	set.Uploader = nil
	mgr.ConfigureStages(set)

	ctx := context.Background()
	project := testsupport.NewProject(t, store, "desert ecosystems")
	project.Status = queue.StatusPlanned
	if err := store.Update(ctx, project); err != nil {
		t.Fatalf("Update: %v", err)
	}

	mgr.processProject(ctx, project)

	final, err := store.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if final.Status != queue.StatusCompleted {
		t.Fatalf("expected completed after render, got %s", final.Status)
	}
}

func TestManagerParksValidationFailuresForReview(t *testing.T) {
	mgr, store := newTestManager(t)
	set, handlers := fullStageSet()
	handlers["scripter"].executeErr = services.Wrap(services.ErrValidation, "scripter", "parse", "script was empty", nil)
	mgr.ConfigureStages(set)

	ctx := context.Background()
	project := testsupport.NewProject(t, store, "glacier caves")
	mgr.processProject(ctx, project)

	final, err := store.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if final.Status != queue.StatusReview {
		t.Fatalf("expected review, got %s", final.Status)
	}
	if !final.NeedsReview || final.ReviewReason == "" {
		t.Fatalf("expected review metadata, got %+v", final)
	}
}

func TestManagerRetriesTransientFailures(t *testing.T) {
	mgr, store := newTestManager(t)
	mgr.cfg.Workflow.MaxAttempts = 3
	set, handlers := fullStageSet()
	handlers["scripter"].executeErr = services.Wrap(services.ErrTransient, "scripter", "request", "upstream 503", nil)
	mgr.ConfigureStages(set)

	ctx := context.Background()
	project := testsupport.NewProject(t, store, "deep sea vents")

	// Two failed attempts roll back to pending, the third marks failed.
	for attempt := 0; attempt < 3; attempt++ {
		current, err := store.GetByID(ctx, project.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		mgr.processProject(ctx, current)

		updated, err := store.GetByID(ctx, project.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if attempt < 2 {
			if updated.Status != queue.StatusPending {
				t.Fatalf("attempt %d: expected pending rollback, got %s", attempt, updated.Status)
			}
			if updated.RetryCount != attempt+1 {
				t.Fatalf("attempt %d: expected retry count %d, got %d", attempt, attempt+1, updated.RetryCount)
			}
		} else if updated.Status != queue.StatusFailed {
			t.Fatalf("expected failed after exhausting retries, got %s", updated.Status)
		}
	}
}

func TestManagerPersistsPrepareArtifacts(t *testing.T) {
	mgr, store := newTestManager(t)
	set, handlers := fullStageSet()
	handlers["scripter"].onExecute = func(p *queue.Project) {
		p.ScriptJSON = `{"title":"Glacier Caves"}`
		p.Title = "Glacier Caves"
	}
	mgr.ConfigureStages(set)

	ctx := context.Background()
	project := testsupport.NewProject(t, store, "glacier caves")
	mgr.processProject(ctx, project)

	stored, err := store.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != queue.StatusScripted {
		t.Fatalf("expected scripted, got %s", stored.Status)
	}
	if stored.ScriptJSON == "" || stored.Title != "Glacier Caves" {
		t.Fatalf("expected persisted artifacts, got %+v", stored)
	}
}

func TestManagerStartStop(t *testing.T) {
	mgr, store := newTestManager(t)
	set, _ := fullStageSet()
	mgr.ConfigureStages(set)
	mgr.pollInterval = 10 * time.Millisecond

	ctx := context.Background()
	project := testsupport.NewProject(t, store, "aurora storms")

	if err := mgr.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := mgr.Start(ctx); err == nil {
		t.Fatal("expected second Start to fail")
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		current, err := store.GetByID(ctx, project.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if current.Status == queue.StatusCompleted {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("pipeline did not complete, status %s", current.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	mgr.Stop()

	summary, err := mgr.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if summary.Running {
		t.Fatal("expected manager stopped")
	}
	if summary.Queue.Completed != 1 {
		t.Fatalf("expected one completed project, got %+v", summary.Queue)
	}
}

func TestManagerRequiresConfiguredStages(t *testing.T) {
	mgr, _ := newTestManager(t)
	if err := mgr.Start(context.Background()); err == nil {
		t.Fatal("expected Start without stages to fail")
	}
}
