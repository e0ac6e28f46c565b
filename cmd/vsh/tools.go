package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/Cyclone1070/vsh/internal/provider/gemini"
)

func newToolsCommand(g *globals) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool declarations",
		Long: `Print the tool declarations in catalogue order.

Formats: json and yaml print provider-neutral declarations; gemini prints genai tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := g.open()
			decls := s.Tools.Declarations()
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(out, decls)
			case "yaml":
				b, err := yaml.Marshal(decls)
				if err != nil {
					return err
				}
				_, err = out.Write(b)
				return err
			case "gemini":
				return writeJSON(out, gemini.Tools(decls))
			default:
				return fmt.Errorf("unsupported format: %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format [json, yaml, gemini]")
	return cmd
}
