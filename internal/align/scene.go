package align

import "strings"

// Transition identifies the visual transition style used when a scene begins.
type Transition string

const (
	TransitionCrossfade   Transition = "crossfade"
	TransitionFadeToBlack Transition = "fade-to-black"
	TransitionSlideLeft   Transition = "slide-left"
	TransitionZoomIn      Transition = "zoom-in"
)

// ParseTransition normalizes an untrusted transition string. Unknown values
// fall back to crossfade.
func ParseTransition(value string) Transition {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")
	switch Transition(normalized) {
	case TransitionCrossfade, TransitionFadeToBlack, TransitionSlideLeft, TransitionZoomIn:
		return Transition(normalized)
	default:
		return TransitionCrossfade
	}
}

// Proposal is a scene suggestion from the planning model. All fields are
// advisory; indices may be out of range and narration text may paraphrase
// the transcript.
type Proposal struct {
	Title                string `json:"title"`
	NarrationText        string `json:"narration"`
	ImagePrompt          string `json:"image_prompt"`
	ApproxStartWordIndex int    `json:"start_word"`
	ApproxEndWordIndex   int    `json:"end_word"`
	Transition           string `json:"transition"`
}

// Scene is an aligned, transcript-grounded narrative segment. Scenes are
// produced in index order and partition the narration duration. ImageRef is
// attached by the imagery stage after alignment; the zero value means no
// image was assigned and the renderer falls back to a gradient card.
type Scene struct {
	Index       int        `json:"index"`
	Title       string     `json:"title"`
	StartSec    float64    `json:"start_sec"`
	EndSec      float64    `json:"end_sec"`
	Transition  Transition `json:"transition"`
	ImagePrompt string     `json:"image_prompt,omitempty"`
	ImageRef    string     `json:"image_ref,omitempty"`
}

// DurationSec returns the scene's nominal duration.
func (s Scene) DurationSec() float64 {
	return s.EndSec - s.StartSec
}
