package timeline

const (
	// linePreRollSec makes a caption line eligible slightly before its audio
	// so the text never appears to lag the voice.
	linePreRollSec = 0.05

	// wordPreRollSec is the same lead applied to word-level highlighting.
	wordPreRollSec = 0.02

	lineFadeInSec  = 0.15
	lineFadeOutSec = 0.10

	// lineFollowGapSec bounds what "another line follows immediately" means
	// for the outgoing fade; past a real pause the line just holds.
	lineFollowGapSec = 0.4

	upcomingWordOpacity = 0.55
	spokenWordOpacity   = 0.70
	activeWordScale     = 1.05
)

// LineHint carries the previously selected caption line index between
// sequential frame evaluations of one render pass. It exists so a one-frame
// qualification gap can never flicker the captions to blank. Start a pass
// with NoLine; treat the returned value as a monotonic hint, not a global.
type LineHint int

// NoLine is the hint value before any line has been selected.
const NoLine LineHint = -1

// CaptionWord is one word of the rendered caption with its karaoke styling.
type CaptionWord struct {
	Text    string
	Opacity float64
	Scale   float64
	Active  bool
	Glow    bool
}

// CaptionFrame is the caption overlay state at a single frame.
type CaptionFrame struct {
	LineIndex int
	Opacity   float64
	AnchorY   float64
	Words     []CaptionWord
}

// activeLine returns the last line whose pre-rolled start has passed. When
// none qualifies the previous hint is held.
func (c *Composition) activeLine(t float64, hint LineHint) LineHint {
	selected := NoLine
	for i := range c.lines {
		if c.lines[i].StartSec-linePreRollSec <= t {
			selected = LineHint(i)
		} else {
			break
		}
	}
	if selected == NoLine {
		return hint
	}
	return selected
}

// captionAt evaluates the caption overlay at time t. Returns nil when the
// transcript produced no lines or no line is active yet.
func (c *Composition) captionAt(t float64, hint LineHint) (*CaptionFrame, LineHint) {
	if len(c.lines) == 0 {
		return nil, hint
	}
	idx := c.activeLine(t, hint)
	if idx == NoLine || int(idx) >= len(c.lines) {
		return nil, idx
	}
	line := c.lines[idx]

	opacity := clamp01((t - line.StartSec) / lineFadeInSec)
	if next := int(idx) + 1; next < len(c.lines) {
		if c.lines[next].StartSec-line.EndSec < lineFollowGapSec {
			out := clamp01((line.EndSec - t) / lineFadeOutSec)
			if out < opacity {
				opacity = out
			}
		}
	}

	activeWord := -1
	for i := range line.Words {
		if line.Words[i].StartSec-wordPreRollSec <= t {
			activeWord = i
		} else {
			break
		}
	}

	words := make([]CaptionWord, len(line.Words))
	for i, w := range line.Words {
		cw := CaptionWord{Text: w.Text, Scale: 1.0}
		switch {
		case i == activeWord:
			cw.Opacity = 1.0
			cw.Scale = activeWordScale
			cw.Active = true
			cw.Glow = true
		case activeWord >= 0 && i < activeWord:
			cw.Opacity = spokenWordOpacity
		default:
			cw.Opacity = upcomingWordOpacity
		}
		words[i] = cw
	}

	return &CaptionFrame{
		LineIndex: int(idx),
		Opacity:   opacity,
		AnchorY:   c.orientation.CaptionAnchorY(),
		Words:     words,
	}, idx
}
