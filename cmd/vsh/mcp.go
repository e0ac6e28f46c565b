package main

import (
	"github.com/spf13/cobra"

	"github.com/Cyclone1070/vsh/internal/mcpserver"
)

func newMcpCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve every tool over MCP on stdio",
		Long: `Serve every tool over the Model Context Protocol on stdio.

Expected to be executed by an MCP client, not by a human.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := g.open()
			return mcpserver.Serve(cmd.Context(), s.Tools, Version)
		},
	}
}
