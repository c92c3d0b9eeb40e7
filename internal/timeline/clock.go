package timeline

import "math"

// DefaultFPS is the render frame rate used when a clock is not configured.
const DefaultFPS = 30

// Clock converts between seconds and frame indices at a fixed frame rate.
// The frame counter is the single source of truth for every time-dependent
// decision in the renderer.
type Clock struct {
	FPS int
}

// NewClock returns a clock at the given rate, substituting DefaultFPS for
// non-positive values.
func NewClock(fps int) Clock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return Clock{FPS: fps}
}

// FrameForSeconds converts a duration in seconds to a frame count.
func (c Clock) FrameForSeconds(sec float64) int {
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return 0
	}
	return int(math.Round(sec * float64(c.FPS)))
}

// SecondsForFrame converts a frame index back to seconds.
func (c Clock) SecondsForFrame(frame int) float64 {
	return float64(frame) / float64(c.FPS)
}

// Orientation selects the output aspect class. It is the only configuration
// surface the renderer exposes: it controls caption line length and the
// caption block's vertical placement.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// WordsPerLine returns the caption grouping size for the orientation.
func (o Orientation) WordsPerLine() int {
	if o == Portrait {
		return 4
	}
	return 7
}

// CaptionAnchorY returns the caption block's vertical anchor as a fraction
// of frame height. Portrait output floats captions near the lower third;
// landscape keeps them close to the bottom edge.
func (o Orientation) CaptionAnchorY() float64 {
	if o == Portrait {
		return 0.70
	}
	return 0.85
}
