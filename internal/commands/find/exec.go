package find

import (
	"context"
	"strings"

	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// execute runs the -exec command for the matches and concatenates the
// outputs. Any failing invocation makes the whole result exit 1.
func execute(ctx context.Context, env *command.Env, a FindArgs, matches []string) command.Result {
	if len(matches) == 0 {
		return command.OK("")
	}
	name, template := a.Exec[0], a.Exec[1:]

	var runs [][]string
	if a.ExecBatch {
		runs = append(runs, expandBatch(template, matches))
	} else {
		for _, m := range matches {
			runs = append(runs, expandOne(template, m))
		}
	}

	var (
		stdout, stderr []string
		failed         bool
	)
	for _, args := range runs {
		if ctx.Err() != nil {
			break
		}
		res := env.Spawn(ctx, name, args, nil)
		if res.Stdout != "" {
			stdout = append(stdout, res.Stdout)
		}
		if res.Stderr != "" {
			stderr = append(stderr, res.Stderr)
		}
		if !res.Success() {
			failed = true
		}
	}

	res := command.OK(strings.Join(stdout, "\n"))
	res.Stderr = strings.Join(stderr, "\n")
	if failed {
		res.ExitCode = command.ExitFailure
	}
	return res
}

// expandBatch replaces a standalone {} with every match as separate
// arguments and an embedded {} with the space-joined matches. Without a
// placeholder the matches are appended.
func expandBatch(template, matches []string) []string {
	var (
		args  []string
		found bool
	)
	for _, tok := range template {
		switch {
		case tok == Placeholder:
			args = append(args, matches...)
			found = true
		case strings.Contains(tok, Placeholder):
			args = append(args, strings.ReplaceAll(tok, Placeholder, strings.Join(matches, " ")))
			found = true
		default:
			args = append(args, tok)
		}
	}
	if !found {
		args = append(args, matches...)
	}
	return args
}

func expandOne(template []string, match string) []string {
	args := make([]string, len(template))
	for i, tok := range template {
		args[i] = strings.ReplaceAll(tok, Placeholder, match)
	}
	return args
}
