package align

import (
	"math"
	"strings"

	"reelforge/internal/textutil"
	"reelforge/internal/transcript"
)

const (
	// leadInSec pulls each scene's visual start ahead of its matched
	// narration word so imagery lands before the voice reaches it. Tunable.
	leadInSec = 1.0

	// maxSeedWindows caps how many 3-token windows of a proposal are tried
	// before falling back to pair matching.
	maxSeedWindows = 8

	// minSeedTokens is the minimum number of significant tokens a text needs
	// before fuzzy matching is attempted at all.
	minSeedTokens = 3

	// pairAnchorLen is the minimum length one token of an adjacent pair must
	// have; short common words alone produce false positives.
	pairAnchorLen = 5
)

// Align converts scene proposals into transcript-grounded scenes covering
// [0, totalDurationSec]. The output scene count always equals the proposal
// count, scene 0 always starts at zero, and every scene ends up with a
// strictly positive duration. Align never fails; unmatched proposals degrade
// to clamped word-index hints and, past that, to even time splitting.
func Align(words []transcript.Word, proposals []Proposal, totalDurationSec float64) []Scene {
	if len(proposals) == 0 {
		return nil
	}

	words = transcript.Sanitize(words)
	scenes := make([]Scene, 0, len(proposals))

	// lastMatched is the first transcript index later scenes are allowed to
	// claim. Advancing it past every match keeps scene starts monotonic even
	// when proposals repeat phrasing.
	lastMatched := 0

	for i, p := range proposals {
		idx, ok := matchProposal(words, p, lastMatched)
		if !ok {
			idx = clampIndex(p.ApproxStartWordIndex, len(words))
			if idx < lastMatched {
				idx = lastMatched
			}
			idx = clampIndex(idx, len(words))
		}
		if i == 0 {
			// Narration always begins at the transcript's first word.
			idx = 0
		}

		startSec := 0.0
		if i > 0 && idx < len(words) {
			startSec = words[idx].StartSec - leadInSec
			if startSec < 0 {
				startSec = 0
			}
		}

		scenes = append(scenes, Scene{
			Index:       i,
			Title:       strings.TrimSpace(p.Title),
			StartSec:    startSec,
			Transition:  ParseTransition(p.Transition),
			ImagePrompt: strings.TrimSpace(p.ImagePrompt),
		})
		lastMatched = idx + 1
	}

	stitchScenes(scenes, totalDurationSec)
	return scenes
}

// stitchScenes closes each scene at the next scene's start, ends the final
// scene at the narration duration, and repairs degenerate intervals by
// granting them an even share of the total duration. Repairs push the next
// scene's start forward so the timeline stays gap-free; under total
// alignment failure this reduces to even time splitting.
func stitchScenes(scenes []Scene, totalDurationSec float64) {
	for i := range scenes {
		if i+1 < len(scenes) {
			scenes[i].EndSec = scenes[i+1].StartSec
		} else {
			scenes[i].EndSec = totalDurationSec
		}
	}

	share := totalDurationSec / float64(len(scenes))
	if !(share > 0) || math.IsInf(share, 0) || math.IsNaN(share) {
		share = 1.0
	}
	for i := range scenes {
		if scenes[i].EndSec <= scenes[i].StartSec {
			scenes[i].EndSec = scenes[i].StartSec + share
			if i+1 < len(scenes) {
				scenes[i+1].StartSec = scenes[i].EndSec
			}
		}
	}
}

// matchProposal locates the transcript index where a proposal's narration
// begins, scanning no earlier than from. The narration excerpt is tried
// first, then the title.
func matchProposal(words []transcript.Word, p Proposal, from int) (int, bool) {
	if idx, ok := matchText(words, p.NarrationText, from); ok {
		return idx, true
	}
	return matchText(words, p.Title, from)
}

// matchText runs the 3-token sequence search and the 2-token adjacent-pair
// fallback for one piece of proposal text.
func matchText(words []transcript.Word, text string, from int) (int, bool) {
	tokens := textutil.Tokenize(text)
	if len(tokens) < minSeedTokens {
		return 0, false
	}

	windows := len(tokens) - 2
	if windows > maxSeedWindows {
		windows = maxSeedWindows
	}
	for w := 0; w < windows; w++ {
		if idx, ok := findSequence(words, tokens[w:w+3], from); ok {
			return idx, true
		}
	}

	for w := 0; w+1 < len(tokens); w++ {
		if len(tokens[w]) < pairAnchorLen && len(tokens[w+1]) < pairAnchorLen {
			continue
		}
		if idx, ok := findSequence(words, tokens[w:w+2], from); ok {
			return idx, true
		}
	}

	return 0, false
}

// findSequence scans the transcript from index from for consecutive words
// that each contain the corresponding token. Containment rather than
// equality tolerates the punctuation and stemming noise in paraphrased
// narration. First match wins.
func findSequence(words []transcript.Word, tokens []string, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(tokens) <= len(words); i++ {
		matched := true
		for j, token := range tokens {
			if !strings.Contains(normalizeWord(words[i+j].Text), token) {
				matched = false
				break
			}
		}
		if matched {
			return i, true
		}
	}
	return 0, false
}

// normalizeWord lowercases a transcript token and strips everything outside
// [a-z0-9].
func normalizeWord(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clampIndex(idx, length int) int {
	if idx < 0 {
		return 0
	}
	if length == 0 {
		return 0
	}
	if idx > length-1 {
		return length - 1
	}
	return idx
}
