package sceneplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"reelforge/internal/align"
	"reelforge/internal/transcript"
)

// Completer is the narrow LLM surface the planner needs.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Decoder parses a model payload into a target.
type Decoder func(content string, target any) error

// Planner produces scene proposals from a transcript.
type Planner struct {
	completer Completer
	decode    Decoder
}

// NewPlanner constructs a scene planner.
func NewPlanner(completer Completer, decode Decoder) *Planner {
	if decode == nil {
		decode = func(content string, target any) error {
			return json.Unmarshal([]byte(content), target)
		}
	}
	return &Planner{completer: completer, decode: decode}
}

type planPayload struct {
	Scenes []align.Proposal `json:"scenes"`
}

// Plan asks the model for scene proposals over the given transcript words.
// Proposals come back cleaned but still advisory; callers must run them
// through align.Align before trusting any timing.
func (p *Planner) Plan(ctx context.Context, words []transcript.Word) ([]align.Proposal, error) {
	if len(words) == 0 {
		return nil, errors.New("sceneplan: transcript required")
	}

	content, err := p.completer.CompleteJSON(ctx, PlanPrompt, FormatTranscript(words))
	if err != nil {
		return nil, fmt.Errorf("sceneplan: completion: %w", err)
	}

	var payload planPayload
	if err := p.decode(content, &payload); err != nil {
		// Some models return a bare array instead of the documented object.
		var bare []align.Proposal
		if arrErr := p.decode(content, &bare); arrErr != nil || len(bare) == 0 {
			return nil, fmt.Errorf("sceneplan: parse payload: %w", err)
		}
		payload.Scenes = bare
	}

	proposals := cleanProposals(payload.Scenes, len(words))
	if len(proposals) == 0 {
		return nil, errors.New("sceneplan: no usable scenes in payload")
	}
	return proposals, nil
}

// FormatTranscript renders words as the numbered list the prompt expects.
func FormatTranscript(words []transcript.Word) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: %s", i, w.Text)
	}
	return b.String()
}

func cleanProposals(raw []align.Proposal, wordCount int) []align.Proposal {
	out := make([]align.Proposal, 0, len(raw))
	for _, prop := range raw {
		prop.Title = strings.TrimSpace(prop.Title)
		prop.NarrationText = strings.TrimSpace(prop.NarrationText)
		prop.ImagePrompt = strings.TrimSpace(prop.ImagePrompt)
		if prop.NarrationText == "" && prop.Title == "" {
			continue
		}
		if prop.ApproxStartWordIndex < 0 {
			prop.ApproxStartWordIndex = 0
		}
		if prop.ApproxStartWordIndex >= wordCount {
			prop.ApproxStartWordIndex = wordCount - 1
		}
		if prop.ApproxEndWordIndex < prop.ApproxStartWordIndex {
			prop.ApproxEndWordIndex = prop.ApproxStartWordIndex
		}
		if prop.ApproxEndWordIndex >= wordCount {
			prop.ApproxEndWordIndex = wordCount - 1
		}
		out = append(out, prop)
	}
	return out
}
