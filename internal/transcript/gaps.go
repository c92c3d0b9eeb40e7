package transcript

const (
	// maxBridgeGapSec is the largest silence between consecutive words that
	// still gets covered by extending the earlier word. Longer gaps are real
	// pauses and stay caption-free.
	maxBridgeGapSec = 0.4

	// minWordDurationSec guards against zero-length words from noisy
	// transcription output.
	minWordDurationSec = 0.08
)

// FillGaps prepares words for caption display: words are ordered by start
// time, sub-threshold gaps between consecutive words are bridged by extending
// the earlier word's end, and every word receives a minimum displayed
// duration. The operation is idempotent; running it on already-filled words
// changes nothing.
func FillGaps(words []Word) []Word {
	out := Sanitize(words)
	for i := range out {
		if out[i].EndSec < out[i].StartSec+minWordDurationSec {
			out[i].EndSec = out[i].StartSec + minWordDurationSec
		}
		if i+1 >= len(out) {
			continue
		}
		gap := out[i+1].StartSec - out[i].EndSec
		if gap > 0 && gap < maxBridgeGapSec {
			out[i].EndSec = out[i+1].StartSec
		}
	}
	return out
}
