package main

import (
	"github.com/spf13/cobra"

	"github.com/Cyclone1070/vsh/internal/ui"
)

func newReplCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := g.open()
			return ui.Run(cmd.Context(), s.Tools, g.cfg.Shell.HistorySize)
		},
	}
}
