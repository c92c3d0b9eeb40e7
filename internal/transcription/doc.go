// Package transcription implements the transcription stage: narration audio
// is sent to the speech-to-text service and the word-level transcript is
// persisted for scene planning and captions.
package transcription
