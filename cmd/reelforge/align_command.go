package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reelforge/internal/align"
	"reelforge/internal/transcript"
)

// newAlignCommand exposes the scene aligner for offline debugging: it runs
// the same alignment the planning stage performs, without touching the queue.
func newAlignCommand() *cobra.Command {
	var totalDuration float64

	cmd := &cobra.Command{
		Use:         "align <transcript.json> <proposals.json>",
		Short:       "Align scene proposals against a transcript and print the result",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := transcript.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("load transcript: %w", err)
			}

			proposals, err := loadProposals(args[1])
			if err != nil {
				return fmt.Errorf("load proposals: %w", err)
			}

			duration := totalDuration
			if duration <= 0 {
				duration = transcript.TotalDuration(words)
			}

			scenes := align.Align(words, proposals, duration)
			encoded, err := json.MarshalIndent(scenes, "", "  ")
			if err != nil {
				return fmt.Errorf("encode scenes: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().Float64Var(&totalDuration, "duration", 0, "Override the total narration duration in seconds")
	return cmd
}

// loadProposals accepts either a bare JSON array of proposals or the
// {"scenes": [...]} envelope produced by the scene-plan model.
func loadProposals(path string) ([]align.Proposal, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proposals []align.Proposal
	if err := json.Unmarshal(payload, &proposals); err == nil {
		return proposals, nil
	}

	var envelope struct {
		Scenes []align.Proposal `json:"scenes"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("parse proposals: %w", err)
	}
	return envelope.Scenes, nil
}
