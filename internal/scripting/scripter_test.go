package scripting

import (
	"context"
	"errors"
	"strings"
	"testing"

	"reelforge/internal/logging"
	"reelforge/internal/queue"
	"reelforge/internal/services"
	"reelforge/internal/testsupport"
)

type fakeModel struct {
	response  string
	err       error
	healthErr error
	prompts   []string
}

func (f *fakeModel) CompleteJSON(_ context.Context, _, userPrompt string) (string, error) {
	f.prompts = append(f.prompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeModel) HealthCheck(context.Context) error { return f.healthErr }

func TestScripterGeneratesScript(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, store, "ocean currents")

	model := &fakeModel{response: `{"title":"Hidden Rivers","narration":"The ocean   moves in vast loops."}`}
	scripter := NewScripterWithDependencies(cfg, store, logging.NewNop(), model)

	ctx := context.Background()
	if err := scripter.Prepare(ctx, project); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := scripter.Execute(ctx, project); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if project.Title != "Hidden Rivers" {
		t.Errorf("Title = %q", project.Title)
	}
	if !strings.Contains(project.ScriptJSON, `"narration":"The ocean moves in vast loops."`) {
		t.Errorf("ScriptJSON = %q", project.ScriptJSON)
	}
	if len(model.prompts) != 1 || !strings.Contains(model.prompts[0], "ocean currents") {
		t.Errorf("model prompts = %v", model.prompts)
	}
}

func TestScripterRejectsEmptyTopic(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, store, "placeholder")
	project.Topic = "   "

	scripter := NewScripterWithDependencies(cfg, store, logging.NewNop(), &fakeModel{})
	err := scripter.Execute(context.Background(), project)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if services.FailureStatus(err) != queue.StatusReview {
		t.Errorf("expected review classification")
	}
}

func TestScripterRequiresAPIKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.LLM.APIKey = ""
	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, store, "ocean currents")

	scripter := NewScripterWithDependencies(cfg, store, logging.NewNop(), &fakeModel{})
	err := scripter.Execute(context.Background(), project)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestScripterWrapsModelFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, store, "ocean currents")

	model := &fakeModel{err: errors.New("upstream 503")}
	scripter := NewScripterWithDependencies(cfg, store, logging.NewNop(), model)
	err := scripter.Execute(context.Background(), project)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if services.FailureStatus(err) != queue.StatusFailed {
		t.Errorf("model failures should stay retryable")
	}
}

func TestScripterHealthCheck(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	healthy := NewScripterWithDependencies(cfg, store, logging.NewNop(), &fakeModel{})
	if h := healthy.HealthCheck(context.Background()); !h.Ready {
		t.Errorf("expected healthy, got %+v", h)
	}

	failing := NewScripterWithDependencies(cfg, store, logging.NewNop(), &fakeModel{healthErr: errors.New("no route")})
	if h := failing.HealthCheck(context.Background()); h.Ready {
		t.Errorf("expected unhealthy")
	}

	cfg.LLM.APIKey = ""
	unconfigured := NewScripterWithDependencies(cfg, store, logging.NewNop(), &fakeModel{})
	if h := unconfigured.HealthCheck(context.Background()); h.Ready || h.Detail == "" {
		t.Errorf("expected unhealthy with detail, got %+v", h)
	}
}
