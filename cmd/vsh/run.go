package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/vsh/internal/shell/command"
)

func newRunCommand(g *globals) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "run LINE...",
		Short: "Run one command line",
		Long: `Run one command line and exit with its exit code.

Arguments are joined with spaces, so quote the line to keep operators away from your own shell.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := g.open()
			res := s.Tools.Execute(cmd.Context(), strings.Join(args, " "))
			return report(cmd, res, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

// report prints a result and turns a non-zero exit code into an exitError.
func report(cmd *cobra.Command, res command.Result, asJSON bool) error {
	if asJSON {
		if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	} else {
		writeText(cmd.OutOrStdout(), res.Stdout)
		writeText(cmd.ErrOrStderr(), res.Stderr)
	}
	if !res.Success() {
		return &exitError{code: res.ExitCode}
	}
	return nil
}

func writeText(w io.Writer, s string) {
	if s != "" {
		fmt.Fprintln(w, s)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
