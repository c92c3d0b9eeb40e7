package timeline

import (
	"math"
	"testing"

	"reelforge/internal/align"
)

func TestClockRounding(t *testing.T) {
	clock := NewClock(30)
	tests := []struct {
		sec  float64
		want int
	}{
		{0, 0},
		{0.6, 18},
		{0.3, 9},
		{0.016, 0},
		{0.017, 1},
		{4.0, 120},
	}
	for _, tt := range tests {
		if got := clock.FrameForSeconds(tt.sec); got != tt.want {
			t.Errorf("FrameForSeconds(%f) = %d, want %d", tt.sec, got, tt.want)
		}
	}

	if got := clock.FrameForSeconds(math.NaN()); got != 0 {
		t.Errorf("FrameForSeconds(NaN) = %d, want 0", got)
	}
}

func TestNewClockDefaultsFPS(t *testing.T) {
	if NewClock(0).FPS != DefaultFPS {
		t.Errorf("zero fps should default to %d", DefaultFPS)
	}
	if NewClock(-5).FPS != DefaultFPS {
		t.Errorf("negative fps should default to %d", DefaultFPS)
	}
}

func TestKenBurnsDeterministic(t *testing.T) {
	a := kenBurnsAt(2, 0.4)
	b := kenBurnsAt(2, 0.4)
	if a != b {
		t.Fatal("identical inputs must yield identical transforms")
	}
	// Preset selection wraps at the palette size.
	wrapped := kenBurnsAt(2+len(kenBurnsPresets), 0.4)
	if a != wrapped {
		t.Error("preset selection should wrap modulo the preset count")
	}
}

func TestKenBurnsEndpoints(t *testing.T) {
	start := kenBurnsAt(0, 0)
	end := kenBurnsAt(0, 1)
	preset := kenBurnsPresets[0]

	if start.Scale != preset.scaleFrom {
		t.Errorf("scale at t=0 is %f, want %f", start.Scale, preset.scaleFrom)
	}
	if end.Scale != preset.scaleTo {
		t.Errorf("scale at t=1 is %f, want %f", end.Scale, preset.scaleTo)
	}
}

func TestSmoothstepCurve(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.125},
		{0.5, 0.5},
		{0.75, 0.875},
		{1, 1},
		{-1, 0},
		{2, 1},
	}
	for _, tt := range tests {
		if got := smoothstep(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("smoothstep(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestGradientFallbackDeterministic(t *testing.T) {
	scenes := []align.Scene{
		{Index: 0, Title: "No Image Here", StartSec: 0, EndSec: 4},
	}
	comp := NewComposition(NewClock(30), Landscape, scenes, nil)

	frame, _ := comp.RenderFrame(60, NoLine)
	layer := frame.Background[0]
	if layer.Gradient == nil {
		t.Fatal("scene without image must render a gradient card")
	}
	if layer.Gradient.Title != "No Image Here" {
		t.Errorf("gradient title = %q", layer.Gradient.Title)
	}
	if layer.Gradient.TopColor != gradientPalette[0][0] {
		t.Errorf("gradient color = %q, want palette entry 0", layer.Gradient.TopColor)
	}

	again, _ := comp.RenderFrame(60, NoLine)
	if *again.Background[0].Gradient != *layer.Gradient {
		t.Error("gradient selection must be reproducible")
	}
}

func TestTitleCardWhenNoScenes(t *testing.T) {
	comp := NewComposition(NewClock(30), Portrait, nil, nil, WithTitle("Fallback Title"))

	frame, _ := comp.RenderFrame(0, NoLine)
	if len(frame.Background) != 1 {
		t.Fatalf("layer count = %d, want 1 title card", len(frame.Background))
	}
	card := frame.Background[0]
	if card.Opacity != 1.0 || card.Gradient == nil || card.Gradient.Title != "Fallback Title" {
		t.Errorf("title card wrong: %+v", card)
	}
}

func TestRenderFrameOutOfOrder(t *testing.T) {
	comp := NewComposition(NewClock(30), Landscape, threeScenes(), continuousWords(24, 0.5))

	forward, _ := comp.RenderFrame(150, NoLine)
	_, _ = comp.RenderFrame(10, NoLine)
	repeat, _ := comp.RenderFrame(150, NoLine)

	if len(forward.Background) != len(repeat.Background) {
		t.Fatal("frame evaluation must be order-independent")
	}
	for i := range forward.Background {
		if forward.Background[i] != repeat.Background[i] {
			t.Errorf("layer %d differs between evaluations", i)
		}
	}
}

func TestRenderFrameNeverPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("RenderFrame panicked: %v", r)
		}
	}()

	scenes := []align.Scene{
		{Index: 0, StartSec: math.NaN(), EndSec: math.Inf(1)},
		{Index: 1, StartSec: 3, EndSec: 1},
	}
	comp := NewComposition(Clock{FPS: -1}, Orientation("sideways"), scenes, nil)
	for f := -10; f < 50; f++ {
		_, _ = comp.RenderFrame(f, NoLine)
	}
}
