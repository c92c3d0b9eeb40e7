package transcript

// Words-per-line counts for the two supported output orientations. Portrait
// frames have far less horizontal room, so lines stay short.
const (
	WordsPerLinePortrait  = 4
	WordsPerLineLandscape = 7
)

// Line is a fixed-size run of consecutive words displayed together as one
// caption. Lines are recomputed per render and never persisted.
type Line struct {
	Words    []Word
	StartSec float64
	EndSec   float64
}

// GroupLines splits words into caption lines of at most wordsPerLine words,
// preserving order. Each line spans its first word's start to its last
// word's end. A wordsPerLine below 1 falls back to the landscape default.
func GroupLines(words []Word, wordsPerLine int) []Line {
	if wordsPerLine < 1 {
		wordsPerLine = WordsPerLineLandscape
	}
	if len(words) == 0 {
		return nil
	}
	lines := make([]Line, 0, (len(words)+wordsPerLine-1)/wordsPerLine)
	for start := 0; start < len(words); start += wordsPerLine {
		end := start + wordsPerLine
		if end > len(words) {
			end = len(words)
		}
		run := words[start:end]
		lines = append(lines, Line{
			Words:    run,
			StartSec: run[0].StartSec,
			EndSec:   run[len(run)-1].EndSec,
		})
	}
	return lines
}
