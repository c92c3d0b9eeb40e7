package transcript

import (
	"math"
	"sort"
)

// Word is a single transcribed token with timing in seconds.
type Word struct {
	Text     string  `json:"word"`
	StartSec float64 `json:"start"`
	EndSec   float64 `json:"end"`
}

// Duration returns the displayed duration of the word in seconds.
func (w Word) Duration() float64 {
	return w.EndSec - w.StartSec
}

// valid reports whether the word passes basic numeric sanity checks.
func (w Word) valid() bool {
	if math.IsNaN(w.StartSec) || math.IsInf(w.StartSec, 0) {
		return false
	}
	if math.IsNaN(w.EndSec) || math.IsInf(w.EndSec, 0) {
		return false
	}
	if w.StartSec < 0 || w.EndSec < w.StartSec {
		return false
	}
	return true
}

// Sanitize drops words with non-finite or inverted timing and returns the
// survivors ordered by start time. Ties keep their input order. The input
// slice is not modified.
func Sanitize(words []Word) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if w.valid() {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartSec < out[j].StartSec
	})
	return out
}

// TotalDuration returns the end time of the last word, or zero for an empty
// transcript.
func TotalDuration(words []Word) float64 {
	var end float64
	for _, w := range words {
		if w.EndSec > end {
			end = w.EndSec
		}
	}
	return end
}
