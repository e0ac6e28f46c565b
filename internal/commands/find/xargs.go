package find

import (
	"context"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// Xargs runs a command with words from stdin appended to its arguments,
// in batches of at most -n words. The command defaults to echo.
func Xargs() command.Command {
	return command.New("xargs", "Build command lines from piped input", func(ctx context.Context, env *command.Env, args []string) (command.Result, error) {
		var batch int
		fs := cmdutil.NewFlags("xargs")
		fs.SetInterspersed(false)
		fs.IntVarP(&batch, "max-args", "n", 0, "")
		if err := cmdutil.Parse(fs, args); err != nil {
			return cmdutil.Failure("xargs", err), nil
		}
		if fs.Changed("max-args") && batch < 1 {
			return command.Usage("xargs", cmdutil.Usagef("value for -n must be at least 1")), nil
		}
		if env.Spawn == nil {
			return command.Fail("xargs: command execution is not available in this context"), nil
		}

		cmdline := cmdutil.Args(fs)
		if len(cmdline) == 0 {
			cmdline = []string{"echo"}
		}
		words := strings.Fields(env.StdinText())

		var groups [][]string
		switch {
		case len(words) == 0:
			groups = [][]string{nil}
		case batch == 0:
			groups = [][]string{words}
		default:
			for start := 0; start < len(words); start += batch {
				groups = append(groups, words[start:min(start+batch, len(words))])
			}
		}

		var stdout, stderr []string
		exit := command.ExitOK
		for _, g := range groups {
			if err := ctx.Err(); err != nil {
				return command.Result{}, err
			}
			argv := append(append([]string(nil), cmdline[1:]...), g...)
			res := env.Spawn(ctx, cmdline[0], argv, nil)
			if res.Stdout != "" {
				stdout = append(stdout, res.Stdout)
			}
			if res.Stderr != "" {
				stderr = append(stderr, res.Stderr)
			}
			if !res.Success() && exit == command.ExitOK {
				exit = res.ExitCode
			}
		}
		return command.Result{
			ExitCode: exit,
			Stdout:   strings.Join(stdout, "\n"),
			Stderr:   strings.Join(stderr, "\n"),
		}, nil
	})
}

// Commands returns every command in this family.
func Commands() []command.Command {
	return []command.Command{Find(), Xargs()}
}
