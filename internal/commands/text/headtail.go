package text

import (
	"github.com/spf13/pflag"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

const defaultLines = 10

// Head prints the first lines of its input.
func Head() command.Command {
	return filter{
		name:        "head",
		description: "Print the first lines of input",
		flags: func(fs *pflag.FlagSet) func([]string) (string, error) {
			n := fs.IntP("lines", "n", defaultLines, "")
			return func(lines []string) (string, error) {
				if *n < 0 {
					return "", cmdutil.Usagef("invalid number of lines: %d", *n)
				}
				return vfs.JoinLines(lines[:min(*n, len(lines))]), nil
			}
		},
	}.command()
}

// Tail prints the last lines of its input.
func Tail() command.Command {
	return filter{
		name:        "tail",
		description: "Print the last lines of input",
		flags: func(fs *pflag.FlagSet) func([]string) (string, error) {
			n := fs.IntP("lines", "n", defaultLines, "")
			return func(lines []string) (string, error) {
				if *n < 0 {
					return "", cmdutil.Usagef("invalid number of lines: %d", *n)
				}
				return vfs.JoinLines(lines[max(len(lines)-*n, 0):]), nil
			}
		},
	}.command()
}
