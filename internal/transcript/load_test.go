package transcript

import "testing"

func TestParseWordGranularity(t *testing.T) {
	payload := `{
		"duration": 2.5,
		"words": [
			{"word": " Hello", "start": 0.0, "end": 0.4},
			{"word": "world ", "start": 0.4, "end": 0.9}
		]
	}`

	words, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].Text != "Hello" {
		t.Errorf("word 0 text = %q, want Hello (trimmed)", words[0].Text)
	}
}

func TestParseSegmentNestedWords(t *testing.T) {
	payload := `{
		"segments": [
			{"text": "hi there", "start": 0, "end": 1, "words": [
				{"word": "hi", "start": 0.0, "end": 0.5},
				{"word": "there", "start": 0.5, "end": 1.0}
			]}
		]
	}`

	words, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed json")
	}
}
