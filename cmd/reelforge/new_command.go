package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelforge/internal/queue"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "new <topic>",
		Aliases: []string{"add"},
		Short:   "Queue a new video topic for production",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.TrimSpace(strings.Join(args, " "))
			if topic == "" {
				return errors.New("topic is required")
			}

			return ctx.withStore(func(store *queue.Store) error {
				project, err := store.NewProject(cmd.Context(), topic)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued project #%d (%s)\n", project.ID, project.Topic)
				return nil
			})
		},
	}
}
