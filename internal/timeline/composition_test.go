package timeline

import (
	"math"
	"testing"

	"reelforge/internal/align"
	"reelforge/internal/transcript"
)

func threeScenes() []align.Scene {
	return []align.Scene{
		{Index: 0, Title: "Opening", StartSec: 0, EndSec: 4, ImageRef: "img-0"},
		{Index: 1, Title: "Middle", StartSec: 4, EndSec: 8, ImageRef: "img-1"},
		{Index: 2, Title: "Closing", StartSec: 8, EndSec: 12, ImageRef: "img-2"},
	}
}

func TestBuildSpansOverlapExtension(t *testing.T) {
	comp := NewComposition(NewClock(30), Landscape, threeScenes(), nil)
	spans := comp.Spans()
	if len(spans) != 3 {
		t.Fatalf("span count = %d, want 3", len(spans))
	}

	overlap := 18 // round(30 * 0.6)
	if spans[0].RenderEndFrame != spans[0].EndFrame+overlap {
		t.Errorf("scene 0 render end = %d, want %d", spans[0].RenderEndFrame, spans[0].EndFrame+overlap)
	}
	if spans[1].RenderEndFrame != spans[1].EndFrame+overlap {
		t.Errorf("scene 1 render end = %d, want %d", spans[1].RenderEndFrame, spans[1].EndFrame+overlap)
	}
	// The final scene is never extended.
	if spans[2].RenderEndFrame != spans[2].EndFrame {
		t.Errorf("final scene render end = %d, want %d", spans[2].RenderEndFrame, spans[2].EndFrame)
	}
}

func TestBuildSpansFadeWindows(t *testing.T) {
	comp := NewComposition(NewClock(30), Landscape, threeScenes(), nil)
	spans := comp.Spans()

	if spans[0].FadeInFrames != 9 { // round(30 * 0.3)
		t.Errorf("scene 0 fade-in = %d frames, want 9", spans[0].FadeInFrames)
	}
	if spans[1].FadeInFrames != 18 { // full overlap window
		t.Errorf("scene 1 fade-in = %d frames, want 18", spans[1].FadeInFrames)
	}
	if spans[0].FadeOutFrames != 0 || spans[1].FadeOutFrames != 0 {
		t.Error("intermediate scenes must not fade out")
	}
	if spans[2].FadeOutFrames != 15 { // round(30 * 0.5)
		t.Errorf("final scene fade-out = %d frames, want 15", spans[2].FadeOutFrames)
	}
}

func TestCrossfadeBoundary(t *testing.T) {
	// Scenario: 3 scenes at fps=30. At scene 1's first frame both layers
	// render: scene 0 beneath at full opacity, scene 1 above at the very
	// start of its fade-in.
	comp := NewComposition(NewClock(30), Landscape, threeScenes(), nil)
	boundary := comp.Spans()[1].StartFrame

	frame, _ := comp.RenderFrame(boundary, NoLine)
	if len(frame.Background) != 2 {
		t.Fatalf("layer count at boundary = %d, want 2", len(frame.Background))
	}
	if frame.Background[0].SceneIndex != 0 || frame.Background[1].SceneIndex != 1 {
		t.Fatalf("layers out of z-order: %d then %d",
			frame.Background[0].SceneIndex, frame.Background[1].SceneIndex)
	}
	if frame.Background[0].Opacity != 1.0 {
		t.Errorf("outgoing scene opacity = %f, want 1.0 (covered, not faded)", frame.Background[0].Opacity)
	}
	if frame.Background[1].Opacity != 0.0 {
		t.Errorf("incoming scene opacity = %f, want 0.0 at fade-in start", frame.Background[1].Opacity)
	}

	// Halfway through the overlap the incoming layer is at half opacity and
	// the outgoing layer is still rendered beneath it.
	mid, _ := comp.RenderFrame(boundary+9, NoLine)
	if len(mid.Background) != 2 {
		t.Fatalf("layer count mid-overlap = %d, want 2", len(mid.Background))
	}
	if math.Abs(mid.Background[1].Opacity-0.5) > 0.01 {
		t.Errorf("incoming opacity mid-overlap = %f, want 0.5", mid.Background[1].Opacity)
	}

	// Once the overlap expires only the incoming scene remains.
	after, _ := comp.RenderFrame(boundary+18, NoLine)
	if len(after.Background) != 1 || after.Background[0].SceneIndex != 1 {
		t.Fatalf("expected only scene 1 after overlap, got %+v", after.Background)
	}
}

func TestFirstSceneFadeIn(t *testing.T) {
	comp := NewComposition(NewClock(30), Landscape, threeScenes(), nil)

	start, _ := comp.RenderFrame(0, NoLine)
	if start.Background[0].Opacity != 0 {
		t.Errorf("frame 0 opacity = %f, want 0", start.Background[0].Opacity)
	}
	settled, _ := comp.RenderFrame(9, NoLine)
	if settled.Background[0].Opacity != 1.0 {
		t.Errorf("opacity after fade-in = %f, want 1.0", settled.Background[0].Opacity)
	}
}

func TestFinalSceneFadesToBlack(t *testing.T) {
	comp := NewComposition(NewClock(30), Landscape, threeScenes(), nil)
	last := comp.Spans()[2]

	end, _ := comp.RenderFrame(last.RenderEndFrame-1, NoLine)
	if len(end.Background) != 1 {
		t.Fatalf("layer count at final frame = %d, want 1", len(end.Background))
	}
	if end.Background[0].Opacity > 0.1 {
		t.Errorf("final frame opacity = %f, want near 0", end.Background[0].Opacity)
	}
}

func TestShortSceneCombinesFades(t *testing.T) {
	// A two-scene timeline where the last scene is shorter than its fade
	// windows: opacity must take the more restrictive of in/out ramps.
	scenes := []align.Scene{
		{Index: 0, StartSec: 0, EndSec: 4, ImageRef: "a"},
		{Index: 1, StartSec: 4, EndSec: 4.4, ImageRef: "b"},
	}
	comp := NewComposition(NewClock(30), Landscape, scenes, nil)
	span := comp.Spans()[1]

	for f := span.StartFrame; f < span.RenderEndFrame; f++ {
		frame, _ := comp.RenderFrame(f, NoLine)
		for _, layer := range frame.Background {
			if layer.SceneIndex != 1 {
				continue
			}
			if layer.Opacity < 0 || layer.Opacity > 1 {
				t.Fatalf("frame %d opacity %f out of range", f, layer.Opacity)
			}
		}
	}
}

func TestSanitizeScenesFilters(t *testing.T) {
	scenes := []align.Scene{
		{Index: 0, StartSec: 0, EndSec: 2},
		{Index: 1, StartSec: math.NaN(), EndSec: 3},
		{Index: 2, StartSec: 4, EndSec: math.Inf(1)},
		{Index: 3, StartSec: 5, EndSec: 4},
		{Index: 4, StartSec: -2, EndSec: 1},
	}
	comp := NewComposition(NewClock(30), Landscape, scenes, nil)
	if len(comp.Spans()) != 1 {
		t.Fatalf("span count = %d, want 1 (only the valid scene)", len(comp.Spans()))
	}
}

func TestTotalFramesFromScenes(t *testing.T) {
	comp := NewComposition(NewClock(30), Landscape, threeScenes(), nil)
	if comp.TotalFrames() != 360 {
		t.Errorf("total frames = %d, want 360", comp.TotalFrames())
	}
}

func TestTotalFramesFallsBackToTranscript(t *testing.T) {
	words := []transcript.Word{{Text: "end", StartSec: 0, EndSec: 2.0}}
	comp := NewComposition(NewClock(30), Landscape, nil, words)
	if comp.TotalFrames() != 60 {
		t.Errorf("total frames = %d, want 60", comp.TotalFrames())
	}
}

func TestAudioPlanDefaults(t *testing.T) {
	comp := NewComposition(NewClock(30), Landscape, nil, nil,
		WithNarration("narration.mp3"), WithMusic("bed.mp3"))
	audio := comp.Audio()

	if audio.NarrationVolume != 1.0 {
		t.Errorf("narration volume = %f, want 1.0", audio.NarrationVolume)
	}
	if audio.MusicVolume != 0.12 {
		t.Errorf("music volume = %f, want 0.12", audio.MusicVolume)
	}
	if !audio.MusicLoop {
		t.Error("music should loop when a reference is attached")
	}
}
