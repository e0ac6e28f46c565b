package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vcs"
)

func remote(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	var verbose bool
	fs := cmdutil.NewFlags("remote")
	fs.SetInterspersed(false)
	fs.BoolVarP(&verbose, "verbose", "v", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return command.Result{}, err
	}
	rest := cmdutil.Args(fs)

	if len(rest) > 0 {
		if rest[0] != "add" || len(rest) != 3 {
			return command.Result{}, cmdutil.Usagef("usage: git remote [-v] | git remote add NAME URL")
		}
		return command.OK(""), repo.AddRemote(ctx, rest[1], rest[2])
	}

	remotes, err := repo.Remotes(ctx)
	if err != nil {
		return command.Result{}, err
	}
	lines := make([]string, len(remotes))
	for i, r := range remotes {
		lines[i] = r.Name
		if verbose {
			lines[i] = fmt.Sprintf("%s\t%s", r.Name, r.URL)
		}
	}
	return command.OK(strings.Join(lines, "\n")), nil
}

// transfer builds push, pull and fetch: each takes an optional remote that
// defaults to the configured one.
func transfer(verb string, op func(vcs.Repository, context.Context, string) error) subcommand {
	return func(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
		fs := cmdutil.NewFlags(verb)
		if err := cmdutil.Parse(fs, args); err != nil {
			return command.Result{}, err
		}
		rest := cmdutil.Args(fs)
		if len(rest) > 1 {
			return command.Result{}, cmdutil.Usagef("expected at most one remote")
		}
		name := env.GitConfig().Remote
		if len(rest) == 1 {
			name = rest[0]
		}
		if err := op(repo, ctx, name); err != nil {
			return command.Result{}, err
		}
		return command.OK(fmt.Sprintf("%s %s: done", verb, name)), nil
	}
}

var (
	push  = transfer("push", vcs.Repository.Push)
	pull  = transfer("pull", vcs.Repository.Pull)
	fetch = transfer("fetch", vcs.Repository.Fetch)
)
