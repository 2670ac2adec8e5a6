package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		artist   string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Queue a track request for the next run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			item, err := store.Add(cmd.Context(), args[0], artist, duration)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Queued %s (item %d)\n", item.DisplayTitle(), item.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&artist, "artist", "a", "", "Artist name")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Expected track duration in seconds")
	return cmd
}
