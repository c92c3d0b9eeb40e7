package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type verboseSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

type verbosePayload struct {
	Duration float64          `json:"duration"`
	Words    []Word           `json:"words"`
	Segments []verboseSegment `json:"segments"`
}

// Parse decodes whisper-style verbose JSON into a sanitized word list.
// Word-granularity payloads carry a top-level words array; whisper-style
// payloads nest words inside segments. Both shapes are accepted.
func Parse(data []byte) ([]Word, error) {
	var payload verbosePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse transcript json: %w", err)
	}
	words := payload.Words
	if len(words) == 0 {
		for _, seg := range payload.Segments {
			words = append(words, seg.Words...)
		}
	}
	for i := range words {
		words[i].Text = strings.TrimSpace(words[i].Text)
	}
	return Sanitize(words), nil
}

// LoadFile reads and parses a transcript JSON file.
func LoadFile(path string) ([]Word, error) {
	if strings.TrimSpace(path) == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
