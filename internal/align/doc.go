// Package align grounds LLM-proposed scene boundaries to word-level
// transcript timestamps.
//
// Scene proposals arrive from a language model and are untrusted: word
// indices can be out of range and narration excerpts are frequently
// paraphrased rather than quoted. The aligner fuzzy-matches each proposal's
// narration back onto the transcript using short token sequences with
// substring containment, which tolerates stemming and punctuation noise.
// Every failure mode degrades to a heuristic fallback; Align never returns
// an error.
package align
