package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warp/workforce-sim/config"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List named configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.Presets()
			out := cmd.OutOrStdout()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return writeJSON(out, presets)
			}
			for _, p := range presets {
				fmt.Fprintf(out, "%-24s %s\n", p.ID, p.Description)
			}
			return nil
		},
	}
}
