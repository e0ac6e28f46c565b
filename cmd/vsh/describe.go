package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/Cyclone1070/vsh/internal/shell/toolset"
)

func newDescribeCommand(g *globals) *cobra.Command {
	var (
		render bool
		width  int
	)
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the command reference given to models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := g.open()
			if !render {
				_, err := fmt.Fprint(cmd.OutOrStdout(), s.Tools.Describe())
				return err
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return err
			}
			out, err := r.Render(markdown(s.Tools))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Render as formatted markdown for a terminal")
	cmd.Flags().IntVar(&width, "width", 100, "Word wrap width for --render")
	return cmd
}

// markdown lays the catalogue out as a table followed by the reference.
func markdown(ts *toolset.Toolset) string {
	var b strings.Builder
	b.WriteString("# vsh tools\n\n| Tool | Description |\n|---|---|\n")
	for _, t := range ts.Tools() {
		fmt.Fprintf(&b, "| `%s` | %s |\n", t.Name(), strings.ReplaceAll(t.Description(), "|", `\|`))
	}
	b.WriteString("\n```text\n")
	b.WriteString(toolset.Reference)
	b.WriteString("```\n")
	return b.String()
}
