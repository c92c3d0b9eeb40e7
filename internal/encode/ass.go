package encode

import (
	"fmt"
	"strings"

	"reelforge/internal/timeline"
	"reelforge/internal/transcript"
)

// Karaoke caption styling shared by both orientations. The unsung text color
// mirrors the upcoming-word dimming; \k tags promote words to the primary
// color as they are spoken.
const (
	assFontName       = "Arial"
	assPrimaryColour  = "&H00FFFFFF" // white, spoken
	assSecondary      = "&H00B3B3B3" // dimmed, upcoming
	assOutlineColour  = "&H00000000"
	assLineFadeInMs   = 150
	assLineFadeOutMs  = 100
	assFontSizeFactor = 0.055
)

// BuildASS renders the composition's caption lines as an ASS karaoke track.
// Returns the empty string when the transcript produced no lines.
func BuildASS(comp *timeline.Composition, width, height int) string {
	lines := comp.Lines()
	if len(lines) == 0 {
		return ""
	}

	fontSize := int(float64(height) * assFontSizeFactor)
	if fontSize < 18 {
		fontSize = 18
	}
	// Alignment 2 is bottom-center; MarginV positions the block at the
	// orientation's caption anchor.
	marginV := int((1.0 - comp.Orientation().CaptionAnchorY()) * float64(height))

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\nPlayResY: %d\n", width, height)
	b.WriteString("WrapStyle: 2\nScaledBorderAndShadow: yes\n\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&b,
		"Style: Karaoke,%s,%d,%s,%s,%s,&H00000000,-1,0,0,0,100,100,0,0,1,3,1,2,40,40,%d,1\n\n",
		assFontName, fontSize, assPrimaryColour, assSecondary, assOutlineColour, marginV,
	)

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for i, line := range lines {
		end := line.EndSec
		// Hold the line until the next one takes over so captions never
		// blank out between lines.
		if i+1 < len(lines) && lines[i+1].StartSec > end {
			end = lines[i+1].StartSec
		}
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Karaoke,,0,0,0,,%s\n",
			assTimestamp(line.StartSec),
			assTimestamp(end),
			assLineText(line.Words),
		)
	}
	return b.String()
}

// assLineText emits the karaoke payload for one line. Each \k duration is
// centiseconds from the word's start to the next word's start, so the
// highlight moves exactly when the voice does.
func assLineText(words []transcript.Word) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{\\fad(%d,%d)}", assLineFadeInMs, assLineFadeOutMs)
	for i, w := range words {
		end := w.EndSec
		if i+1 < len(words) && words[i+1].StartSec > end {
			end = words[i+1].StartSec
		}
		cs := int((end - w.StartSec) * 100)
		if cs < 1 {
			cs = 1
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "{\\k%d}%s", cs, escapeASSText(w.Text))
	}
	return b.String()
}

func escapeASSText(text string) string {
	replacer := strings.NewReplacer("{", "(", "}", ")", "\n", " ", "\r", " ")
	return replacer.Replace(text)
}

func assTimestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec * 100)
	cs := total % 100
	s := (total / 100) % 60
	m := (total / 6000) % 60
	h := total / 360000
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}
