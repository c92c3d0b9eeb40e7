// Package transcribe wraps the OpenAI Whisper transcription API. Audio is
// uploaded as multipart form data with word timestamp granularity requested,
// and the verbose JSON payload is parsed into transcript words.
package transcribe
