package timeline

import (
	"testing"

	"reelforge/internal/transcript"
)

// continuousWords builds a back-to-back transcript with count words of the
// given length in seconds.
func continuousWords(count int, step float64) []transcript.Word {
	words := make([]transcript.Word, count)
	for i := range words {
		words[i] = transcript.Word{
			Text:     "word",
			StartSec: float64(i) * step,
			EndSec:   float64(i)*step + step,
		}
	}
	return words
}

func TestCaptionContinuity(t *testing.T) {
	// With no gaps over the bridge threshold, every frame inside the
	// narration must carry a caption.
	words := continuousWords(20, 0.3)
	comp := NewComposition(NewClock(30), Portrait, nil, words)

	lastEnd := comp.Clock().FrameForSeconds(6.0)
	hint := NoLine
	for f := 0; f <= lastEnd; f++ {
		var frame Frame
		frame, hint = comp.RenderFrame(f, hint)
		if frame.Caption == nil {
			t.Fatalf("frame %d: caption blackout mid-narration", f)
		}
	}
}

func TestCaptionLinePreRoll(t *testing.T) {
	words := []transcript.Word{
		{Text: "late", StartSec: 1.0, EndSec: 1.5},
	}
	comp := NewComposition(NewClock(100), Landscape, nil, words)

	// 0.96s: line start minus pre-roll is 0.95, so the line is active.
	frame, _ := comp.RenderFrame(96, NoLine)
	if frame.Caption == nil {
		t.Fatal("caption should be active within the 50ms pre-roll")
	}
	// 0.90s: not yet.
	frame, _ = comp.RenderFrame(90, NoLine)
	if frame.Caption != nil {
		t.Fatal("caption active too early")
	}
}

func TestCaptionHoldsPreviousLine(t *testing.T) {
	words := continuousWords(4, 0.5)
	comp := NewComposition(NewClock(30), Portrait, nil, words)

	// Evaluate a frame before any line qualifies while carrying a hint from
	// a previous evaluation: the held line must be returned, not blank.
	caption, hint := comp.captionAt(-1.0, 0)
	if caption == nil || caption.LineIndex != 0 {
		t.Fatalf("expected held line 0, got %+v", caption)
	}
	if hint != 0 {
		t.Errorf("hint = %d, want 0", hint)
	}

	// Without a hint the same instant renders no caption.
	caption, _ = comp.captionAt(-1.0, NoLine)
	if caption != nil {
		t.Fatalf("expected no caption without hint, got %+v", caption)
	}
}

func TestKaraokeWordLevels(t *testing.T) {
	words := continuousWords(4, 0.5) // one portrait line
	comp := NewComposition(NewClock(30), Portrait, nil, words)

	// t = 1.1s: word 2 (starting at 1.0) is active.
	caption, _ := comp.captionAt(1.1, NoLine)
	if caption == nil {
		t.Fatal("expected active caption")
	}
	if len(caption.Words) != 4 {
		t.Fatalf("word count = %d, want 4", len(caption.Words))
	}

	if caption.Words[0].Opacity != spokenWordOpacity || caption.Words[1].Opacity != spokenWordOpacity {
		t.Errorf("spoken words opacity = %f/%f, want %f",
			caption.Words[0].Opacity, caption.Words[1].Opacity, spokenWordOpacity)
	}
	active := caption.Words[2]
	if !active.Active || active.Opacity != 1.0 || active.Scale != activeWordScale || !active.Glow {
		t.Errorf("active word styling wrong: %+v", active)
	}
	if caption.Words[3].Opacity != upcomingWordOpacity || caption.Words[3].Scale != 1.0 {
		t.Errorf("upcoming word styling wrong: %+v", caption.Words[3])
	}
}

func TestWordPreRoll(t *testing.T) {
	words := continuousWords(4, 0.5)
	comp := NewComposition(NewClock(30), Portrait, nil, words)

	// 20ms before word 1 starts it already highlights.
	caption, _ := comp.captionAt(0.48, NoLine)
	if caption == nil || !caption.Words[1].Active {
		t.Fatalf("word 1 should be active at t=0.48, got %+v", caption)
	}
}

func TestAllWordsUpcomingBeforeFirstWord(t *testing.T) {
	words := []transcript.Word{
		{Text: "a", StartSec: 0.5, EndSec: 0.9},
		{Text: "b", StartSec: 0.9, EndSec: 1.3},
	}
	comp := NewComposition(NewClock(30), Portrait, nil, words)

	// The line is active via pre-roll but no word is yet.
	caption, _ := comp.captionAt(0.46, NoLine)
	if caption == nil {
		t.Fatal("expected caption")
	}
	for i, w := range caption.Words {
		if w.Active || w.Opacity != upcomingWordOpacity {
			t.Errorf("word %d should be upcoming, got %+v", i, w)
		}
	}
}

func TestLineFadeInAndOut(t *testing.T) {
	words := continuousWords(8, 0.5) // two portrait lines, second follows immediately
	comp := NewComposition(NewClock(30), Portrait, nil, words)
	lines := comp.Lines()
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}

	// Halfway through the 0.15s fade-in.
	caption, _ := comp.captionAt(lines[0].StartSec+0.075, NoLine)
	if caption == nil || caption.Opacity < 0.45 || caption.Opacity > 0.55 {
		t.Errorf("fade-in opacity = %+v, want ~0.5", caption)
	}

	// 0.05s before line end, with line 1 following immediately: fading out.
	caption, _ = comp.captionAt(lines[0].EndSec-0.051, NoLine)
	if caption == nil || caption.LineIndex != 0 {
		t.Fatalf("expected line 0 near its end, got %+v", caption)
	}
	if caption.Opacity > 0.6 {
		t.Errorf("fade-out opacity = %f, want ~0.5", caption.Opacity)
	}
}

func TestNoCaptionsForEmptyTranscript(t *testing.T) {
	comp := NewComposition(NewClock(30), Portrait, threeScenes(), nil)
	frame, _ := comp.RenderFrame(30, NoLine)
	if frame.Caption != nil {
		t.Errorf("expected nil caption, got %+v", frame.Caption)
	}
	if len(frame.Background) == 0 {
		t.Error("background must still render without captions")
	}
}

func TestCaptionAnchorByOrientation(t *testing.T) {
	words := continuousWords(4, 0.5)
	portrait := NewComposition(NewClock(30), Portrait, nil, words)
	landscape := NewComposition(NewClock(30), Landscape, nil, words)

	pc, _ := portrait.captionAt(0.5, NoLine)
	lc, _ := landscape.captionAt(0.5, NoLine)
	if pc.AnchorY == lc.AnchorY {
		t.Error("portrait and landscape caption anchors should differ")
	}
}
