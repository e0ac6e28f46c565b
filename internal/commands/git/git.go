// Package git implements the git command: a thin router whose subcommands
// each parse their own flags and call the session's vcs.Repository.
package git

import (
	"context"
	"sort"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vcs"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// GitArgs are the typed arguments of git.
type GitArgs struct {
	Subcommand string   `json:"subcommand" jsonschema:"enum=status,enum=add,enum=commit,enum=log,enum=branch,enum=checkout,enum=push,enum=pull,enum=fetch,enum=diff,enum=reset,enum=stash,enum=tag,enum=remote" jsonschema_description:"The git subcommand to run."`
	Args       []string `json:"args,omitempty" jsonschema_description:"Arguments for the subcommand exactly as on a command line, e.g. [\"-m\", \"fix parser\"] for commit."`
}

// subcommand runs with the repository already checked for presence.
type subcommand func(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error)

var subcommands = map[string]subcommand{
	"status":   status,
	"add":      add,
	"commit":   commit,
	"log":      log,
	"diff":     diff,
	"branch":   branch,
	"checkout": checkout,
	"reset":    reset,
	"tag":      tag,
	"stash":    stash,
	"remote":   remote,
	"push":     push,
	"pull":     pull,
	"fetch":    fetch,
}

// Names lists the supported subcommands in order.
func Names() []string {
	names := make([]string, 0, len(subcommands))
	for name := range subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Git dispatches to a subcommand.
func Git() *command.Dual[GitArgs] {
	return command.NewDual(command.Spec[GitArgs]{
		Name:        "git",
		Description: "Version control: " + strings.Join(Names(), ", "),
		Usage:       "git SUBCOMMAND [ARGS...]",
		Example:     `git commit -m "fix parser"`,
		Parse:       parseGit,
		Execute:     runGit,
	})
}

func parseGit(args []string) (GitArgs, error) {
	if len(args) == 0 {
		return GitArgs{}, cmdutil.Usagef("missing subcommand; available: %s", strings.Join(Names(), ", "))
	}
	a := GitArgs{Subcommand: args[0]}
	if len(args) > 1 {
		a.Args = args[1:]
	}
	if _, ok := subcommands[a.Subcommand]; !ok {
		return a, cmdutil.Usagef("%q is not a git command; available: %s", a.Subcommand, strings.Join(Names(), ", "))
	}
	return a, nil
}

func runGit(ctx context.Context, env *command.Env, a GitArgs) (command.Result, error) {
	run, ok := subcommands[a.Subcommand]
	if !ok {
		return command.Usage("git", cmdutil.Usagef("%q is not a git command", a.Subcommand)), nil
	}
	if env.Git == nil {
		return cmdutil.Failure("git", &cmdutil.GitUnavailableError{}), nil
	}
	res, err := run(ctx, env, env.Git, a.Args)
	if err != nil {
		if ctx.Err() != nil {
			return command.Result{}, err
		}
		return cmdutil.Failure("git "+a.Subcommand, err), nil
	}
	return res, nil
}

// repoPaths converts user paths to repository paths.
func repoPaths(env *command.Env, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = vfs.RepoPath(env.Resolve(p))
	}
	return out
}
