package scriptgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Completer is the narrow LLM surface the generator needs.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Script is the generated narration script.
type Script struct {
	Title     string `json:"title"`
	Narration string `json:"narration"`
}

// Decoder parses a model payload into a target. It exists so the generator
// shares the llm package's lenient JSON handling without importing it.
type Decoder func(content string, target any) error

// Generator produces narration scripts from topics.
type Generator struct {
	completer Completer
	decode    Decoder
}

// NewGenerator constructs a script generator.
func NewGenerator(completer Completer, decode Decoder) *Generator {
	if decode == nil {
		decode = func(content string, target any) error {
			return json.Unmarshal([]byte(content), target)
		}
	}
	return &Generator{completer: completer, decode: decode}
}

// Generate asks the model for a narration script on the given topic.
func (g *Generator) Generate(ctx context.Context, topic string) (Script, error) {
	var empty Script
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return empty, errors.New("scriptgen: topic required")
	}

	content, err := g.completer.CompleteJSON(ctx, ScriptPrompt, topic)
	if err != nil {
		return empty, fmt.Errorf("scriptgen: completion: %w", err)
	}

	var script Script
	if err := g.decode(content, &script); err != nil {
		return empty, fmt.Errorf("scriptgen: parse payload: %w", err)
	}
	script.Title = strings.TrimSpace(script.Title)
	script.Narration = normalizeNarration(script.Narration)
	if script.Narration == "" {
		return empty, errors.New("scriptgen: empty narration in payload")
	}
	if script.Title == "" {
		script.Title = topic
	}
	return script, nil
}

// normalizeNarration collapses whitespace so the TTS input is a single
// paragraph of spoken text.
func normalizeNarration(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
