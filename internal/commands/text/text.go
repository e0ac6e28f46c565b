// Package text implements line-oriented text filters. Each reads the named
// files, or piped input when none are given, and prints lines joined by
// newlines without a trailing one.
package text

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// Commands returns every command in this family.
func Commands() []command.Command {
	return []command.Command{Head(), Tail(), Wc(), Sort(), Uniq(), Tr()}
}

// filter is the common shape of a line filter: flags are declared on fs,
// then transform maps the input lines to output.
type filter struct {
	name        string
	description string
	flags       func(fs *pflag.FlagSet) func(lines []string) (string, error)
}

func (f filter) command() command.Command {
	return command.New(f.name, f.description, func(ctx context.Context, env *command.Env, args []string) (command.Result, error) {
		fs := cmdutil.NewFlags(f.name)
		transform := f.flags(fs)
		if err := cmdutil.Parse(fs, args); err != nil {
			return cmdutil.Failure(f.name, err), nil
		}
		lines, err := cmdutil.Lines(env, cmdutil.Args(fs))
		if err != nil {
			return cmdutil.Failure(f.name, err), nil
		}
		out, err := transform(lines)
		if err != nil {
			return cmdutil.Failure(f.name, err), nil
		}
		return command.OK(out), nil
	})
}
