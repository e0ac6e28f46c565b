package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

func newCallCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call TOOL [JSON]",
		Short: "Call one tool with JSON arguments",
		Long: `Call one tool with JSON arguments and print the result as JSON.

Arguments are read from stdin when JSON is "-". Rejected arguments are reported without running anything.`,
		Example: `  $ vsh call ls '{"long": true}'
  $ echo '{"command": "git status"}' | vsh call shell -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw json.RawMessage
			if len(args) == 2 {
				raw = json.RawMessage(args[1])
				if args[1] == "-" {
					data, err := io.ReadAll(cmd.InOrStdin())
					if err != nil {
						return err
					}
					raw = data
				}
			}

			s := g.open()
			res, err := s.Tools.CallJSON(cmd.Context(), args[0], raw)
			if err != nil {
				return err
			}
			return report(cmd, res, true)
		},
	}
	return cmd
}
