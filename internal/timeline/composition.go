package timeline

import (
	"math"

	"reelforge/internal/align"
	"reelforge/internal/transcript"
)

const (
	// overlapSec extends every non-final scene's render window past its
	// nominal end so the incoming scene's fade-in always blends over live
	// pixels instead of a gap or flash.
	overlapSec = 0.6

	// firstSceneFadeInSec is the establishing-shot fade at the very start of
	// the video. Later scenes fade in over the full overlap window instead.
	firstSceneFadeInSec = 0.3

	// finalFadeOutSec fades the last scene to black. Intermediate scenes
	// never fade out; the next scene's fade-in covers them.
	finalFadeOutSec = 0.5

	narrationVolume = 1.0
	musicVolume     = 0.12
)

// AudioPlan describes the audio mix handed to the encoding driver: narration
// at full volume and an optional looping music bed at a fixed attenuation.
type AudioPlan struct {
	NarrationRef    string
	NarrationVolume float64
	MusicRef        string
	MusicVolume     float64
	MusicLoop       bool
}

// SceneSpan is a scene mapped onto the frame clock. EndFrame is the nominal
// boundary (the next scene's StartFrame); RenderEndFrame includes the
// overlap extension.
type SceneSpan struct {
	Scene          align.Scene
	StartFrame     int
	EndFrame       int
	RenderEndFrame int
	FadeInFrames   int
	FadeOutFrames  int
}

// Composition is the memoized derived state for one render: scene spans in
// frames, gap-filled caption lines, and the audio plan. Building it never
// fails; malformed records are filtered and missing data degrades to
// documented fallbacks. A Composition is immutable after construction and
// safe for concurrent frame evaluation.
type Composition struct {
	clock       Clock
	orientation Orientation
	title       string
	spans       []SceneSpan
	lines       []transcript.Line
	totalFrames int
	audio       AudioPlan
}

// Option customizes composition construction.
type Option func(*Composition)

// WithTitle sets the project title used by the static title-card fallback
// when no valid scenes remain.
func WithTitle(title string) Option {
	return func(c *Composition) { c.title = title }
}

// WithNarration attaches the narration audio reference.
func WithNarration(ref string) Option {
	return func(c *Composition) { c.audio.NarrationRef = ref }
}

// WithMusic attaches a looping background music reference.
func WithMusic(ref string) Option {
	return func(c *Composition) {
		c.audio.MusicRef = ref
		c.audio.MusicLoop = ref != ""
	}
}

// NewComposition derives the frame-addressable timeline from aligned scenes
// and a word-level transcript.
func NewComposition(clock Clock, orientation Orientation, scenes []align.Scene, words []transcript.Word, opts ...Option) *Composition {
	if orientation != Portrait {
		orientation = Landscape
	}
	c := &Composition{
		clock:       NewClock(clock.FPS),
		orientation: orientation,
		audio: AudioPlan{
			NarrationVolume: narrationVolume,
			MusicVolume:     musicVolume,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	filtered := sanitizeScenes(scenes)
	c.spans = buildSpans(c.clock, filtered)
	if len(c.spans) > 0 {
		c.totalFrames = c.spans[len(c.spans)-1].EndFrame
	}

	captionWords := transcript.FillGaps(words)
	c.lines = transcript.GroupLines(captionWords, orientation.WordsPerLine())
	if c.totalFrames == 0 {
		c.totalFrames = c.clock.FrameForSeconds(transcript.TotalDuration(captionWords))
	}

	return c
}

// sanitizeScenes drops scene records with non-finite or inverted timing.
func sanitizeScenes(scenes []align.Scene) []align.Scene {
	out := make([]align.Scene, 0, len(scenes))
	for _, s := range scenes {
		if math.IsNaN(s.StartSec) || math.IsInf(s.StartSec, 0) {
			continue
		}
		if math.IsNaN(s.EndSec) || math.IsInf(s.EndSec, 0) {
			continue
		}
		if s.EndSec <= s.StartSec || s.StartSec < 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

// buildSpans maps scenes onto the frame clock and applies the overlap
// extension and fade windows.
func buildSpans(clock Clock, scenes []align.Scene) []SceneSpan {
	if len(scenes) == 0 {
		return nil
	}

	overlapFrames := clock.FrameForSeconds(overlapSec)
	spans := make([]SceneSpan, len(scenes))
	for i, s := range scenes {
		start := clock.FrameForSeconds(s.StartSec)
		var end int
		if i+1 < len(scenes) {
			end = clock.FrameForSeconds(scenes[i+1].StartSec)
		} else {
			end = clock.FrameForSeconds(s.EndSec)
		}
		if end < start {
			end = start
		}

		span := SceneSpan{
			Scene:      s,
			StartFrame: start,
			EndFrame:   end,
		}
		if i == 0 {
			span.FadeInFrames = clock.FrameForSeconds(firstSceneFadeInSec)
		} else {
			span.FadeInFrames = overlapFrames
		}
		if i == len(scenes)-1 {
			span.FadeOutFrames = clock.FrameForSeconds(finalFadeOutSec)
			span.RenderEndFrame = end
		} else {
			span.RenderEndFrame = end + overlapFrames
		}
		spans[i] = span
	}
	return spans
}

// Clock returns the composition's frame clock.
func (c *Composition) Clock() Clock { return c.clock }

// Orientation returns the output orientation.
func (c *Composition) Orientation() Orientation { return c.orientation }

// TotalFrames returns the number of frames in the nominal timeline.
func (c *Composition) TotalFrames() int { return c.totalFrames }

// Spans returns the scene spans in ascending scene order.
func (c *Composition) Spans() []SceneSpan { return c.spans }

// Lines returns the gap-filled caption lines.
func (c *Composition) Lines() []transcript.Line { return c.lines }

// Audio returns the audio mix plan.
func (c *Composition) Audio() AudioPlan { return c.audio }

// Title returns the project title used for fallback cards.
func (c *Composition) Title() string { return c.title }
