// Package tts wraps the ElevenLabs text-to-speech API used for narration
// synthesis. Synthesized audio is written straight to a staging file so the
// downstream transcription and render stages work from disk.
package tts
