// Package transcript models word-level transcription output and the derived
// caption line structure used by the timeline renderer.
//
// A transcript is an ordered slice of Words with start/end times in seconds.
// Word timestamps come from an external speech-to-text service and are noisy:
// gaps, zero-length words, and out-of-order ties all occur in practice. The
// package provides sanitization, gap bridging for flicker-free
// captions, and fixed-size line grouping.
package transcript
