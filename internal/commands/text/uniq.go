package text

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// Uniq collapses adjacent duplicate lines.
func Uniq() command.Command {
	return filter{
		name:        "uniq",
		description: "Collapse adjacent duplicate lines",
		flags: func(fs *pflag.FlagSet) func([]string) (string, error) {
			withCount := fs.BoolP("count", "c", false, "")
			return func(lines []string) (string, error) {
				var out []string
				for i := 0; i < len(lines); {
					j := i
					for j < len(lines) && lines[j] == lines[i] {
						j++
					}
					if *withCount {
						out = append(out, fmt.Sprintf("%7d %s", j-i, lines[i]))
					} else {
						out = append(out, lines[i])
					}
					i = j
				}
				return vfs.JoinLines(out), nil
			}
		},
	}.command()
}
