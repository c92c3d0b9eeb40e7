package transcript

import "testing"

func makeWords(n int, step float64) []Word {
	words := make([]Word, n)
	for i := range words {
		words[i] = Word{
			Text:     "w",
			StartSec: float64(i) * step,
			EndSec:   float64(i)*step + step,
		}
	}
	return words
}

func TestGroupLinesFixedSize(t *testing.T) {
	tests := []struct {
		name         string
		wordCount    int
		wordsPerLine int
		wantLines    int
		wantLastLen  int
	}{
		{"portrait even", 8, WordsPerLinePortrait, 2, 4},
		{"portrait remainder", 10, WordsPerLinePortrait, 3, 2},
		{"landscape", 7, WordsPerLineLandscape, 1, 7},
		{"single word", 1, WordsPerLinePortrait, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := GroupLines(makeWords(tt.wordCount, 0.5), tt.wordsPerLine)
			if len(lines) != tt.wantLines {
				t.Fatalf("line count = %d, want %d", len(lines), tt.wantLines)
			}
			last := lines[len(lines)-1]
			if len(last.Words) != tt.wantLastLen {
				t.Errorf("last line word count = %d, want %d", len(last.Words), tt.wantLastLen)
			}
		})
	}
}

func TestGroupLinesTiming(t *testing.T) {
	words := makeWords(6, 0.5)
	lines := GroupLines(words, 4)

	if lines[0].StartSec != 0 || lines[0].EndSec != 2.0 {
		t.Errorf("line 0 window = [%f, %f], want [0, 2.0]", lines[0].StartSec, lines[0].EndSec)
	}
	if lines[1].StartSec != 2.0 || lines[1].EndSec != 3.0 {
		t.Errorf("line 1 window = [%f, %f], want [2.0, 3.0]", lines[1].StartSec, lines[1].EndSec)
	}
}

func TestGroupLinesEmpty(t *testing.T) {
	if lines := GroupLines(nil, 4); lines != nil {
		t.Errorf("expected nil lines for empty transcript, got %+v", lines)
	}
}

func TestGroupLinesInvalidSizeFallsBack(t *testing.T) {
	lines := GroupLines(makeWords(7, 0.5), 0)
	if len(lines) != 1 {
		t.Errorf("expected landscape fallback grouping, got %d lines", len(lines))
	}
}
