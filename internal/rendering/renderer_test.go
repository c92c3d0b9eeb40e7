package rendering

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reelforge/internal/align"
	"reelforge/internal/config"
	"reelforge/internal/encode"
	"reelforge/internal/logging"
	"reelforge/internal/queue"
	"reelforge/internal/services"
	"reelforge/internal/testsupport"
	"reelforge/internal/timeline"
)

type fakeDriver struct {
	renderErr error
	probeErr  error
	availErr  error
	duration  float64
	comp      *timeline.Composition
	job       encode.Job
	probed    []string
}

func (f *fakeDriver) Render(_ context.Context, comp *timeline.Composition, job encode.Job) error {
	f.comp = comp
	f.job = job
	if f.renderErr != nil {
		return f.renderErr
	}
	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(job.OutputPath, []byte("mp4"), 0o644)
}

func (f *fakeDriver) ProbeDuration(_ context.Context, path string) (float64, error) {
	f.probed = append(f.probed, path)
	if f.probeErr != nil {
		return 0, f.probeErr
	}
	if f.duration == 0 {
		return 2.0, nil
	}
	return f.duration, nil
}

func (f *fakeDriver) Available() error { return f.availErr }

func stageRenderInputs(t *testing.T, cfg *config.Config, project *queue.Project) {
	t.Helper()
	staging := project.StagingRoot(cfg.Paths.StagingDir)

	narration := filepath.Join(staging, "narration.mp3")
	testsupport.WriteFile(t, narration, 256)
	project.NarrationFile = narration

	transcriptPath := filepath.Join(staging, "transcript.json")
	payload := `{"words":[{"word":"hello","start":0,"end":1.0},{"word":"world","start":1.0,"end":2.0}]}`
	if err := os.WriteFile(transcriptPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	project.TranscriptFile = transcriptPath

	plan, err := align.EncodePlan([]align.Scene{
		{Index: 0, Title: "Opening", StartSec: 0, EndSec: 2, Transition: align.TransitionCrossfade},
	})
	if err != nil {
		t.Fatalf("encode plan: %v", err)
	}
	project.ScenePlanJSON = plan
}

func TestRendererProducesFinalFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, store, "ocean currents")
	project.Title = "Hidden Rivers"
	stageRenderInputs(t, cfg, project)

	driver := &fakeDriver{}
	renderer := NewRendererWithDependencies(cfg, store, logging.NewNop(), driver)

	ctx := context.Background()
	if err := renderer.Prepare(ctx, project); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := renderer.Execute(ctx, project); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := filepath.Join(cfg.Paths.OutputDir, "Hidden Rivers.mp4")
	if project.FinalFile != want {
		t.Errorf("FinalFile = %q, want %q", project.FinalFile, want)
	}
	if _, err := os.Stat(project.FinalFile); err != nil {
		t.Errorf("final file not written: %v", err)
	}
	if driver.comp == nil {
		t.Fatal("driver never received a composition")
	}
	if got := len(driver.comp.Spans()); got != 1 {
		t.Errorf("composition spans = %d, want 1", got)
	}
	if driver.comp.Audio().NarrationRef != project.NarrationFile {
		t.Errorf("narration ref = %q", driver.comp.Audio().NarrationRef)
	}
	if driver.job.StagingDir != project.StagingRoot(cfg.Paths.StagingDir) {
		t.Errorf("job staging dir = %q", driver.job.StagingDir)
	}
	if len(driver.probed) != 1 || driver.probed[0] != project.NarrationFile {
		t.Errorf("probed = %v", driver.probed)
	}
}

func TestRendererAttachesMusicTrack(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.MusicDir = t.TempDir()
	cfg.Render.MusicTrack = "bed.mp3"
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.MusicDir, "bed.mp3"), 64)

	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, store, "ocean currents")
	stageRenderInputs(t, cfg, project)

	driver := &fakeDriver{}
	renderer := NewRendererWithDependencies(cfg, store, logging.NewNop(), driver)
	if err := renderer.Execute(context.Background(), project); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	audio := driver.comp.Audio()
	if audio.MusicRef != filepath.Join(cfg.Paths.MusicDir, "bed.mp3") {
		t.Errorf("music ref = %q", audio.MusicRef)
	}
	if !audio.MusicLoop {
		t.Error("music should loop")
	}
}

func TestRendererSkipsMissingMusicTrack(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.MusicDir = t.TempDir()
	cfg.Render.MusicTrack = "absent.mp3"

	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, store, "ocean currents")
	stageRenderInputs(t, cfg, project)

	driver := &fakeDriver{}
	renderer := NewRendererWithDependencies(cfg, store, logging.NewNop(), driver)
	if err := renderer.Execute(context.Background(), project); err != nil {
		t.Fatalf("a missing music track must not fail the render: %v", err)
	}
	if driver.comp.Audio().MusicRef != "" {
		t.Errorf("music ref should be empty, got %q", driver.comp.Audio().MusicRef)
	}
}

func TestRendererRequiresScenePlan(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, store, "ocean currents")

	renderer := NewRendererWithDependencies(cfg, store, logging.NewNop(), &fakeDriver{})
	err := renderer.Execute(context.Background(), project)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRendererWrapsProbeFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, store, "ocean currents")
	stageRenderInputs(t, cfg, project)

	renderer := NewRendererWithDependencies(cfg, store, logging.NewNop(),
		&fakeDriver{probeErr: errors.New("no such stream")})
	err := renderer.Execute(context.Background(), project)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestRendererWrapsEncodeFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, store, "ocean currents")
	stageRenderInputs(t, cfg, project)

	renderer := NewRendererWithDependencies(cfg, store, logging.NewNop(),
		&fakeDriver{renderErr: errors.New("exit status 1")})
	err := renderer.Execute(context.Background(), project)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if project.FinalFile != "" {
		t.Errorf("FinalFile should stay empty on failure")
	}
}

func TestRendererHealthCheck(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	healthy := NewRendererWithDependencies(cfg, store, logging.NewNop(), &fakeDriver{})
	if h := healthy.HealthCheck(context.Background()); !h.Ready {
		t.Errorf("expected healthy, got %+v", h)
	}

	failing := NewRendererWithDependencies(cfg, store, logging.NewNop(),
		&fakeDriver{availErr: errors.New("ffmpeg not found")})
	if h := failing.HealthCheck(context.Background()); h.Ready {
		t.Errorf("expected unhealthy")
	}
}
