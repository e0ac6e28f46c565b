package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vcs"
)

func branch(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	var del string
	fs := cmdutil.NewFlags("branch")
	fs.StringVarP(&del, "delete", "d", "", "")
	fs.StringVarP(&del, "force-delete", "D", "", "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return command.Result{}, err
	}
	rest := cmdutil.Args(fs)

	switch {
	case del != "":
		if err := repo.DeleteBranch(ctx, del); err != nil {
			return command.Result{}, err
		}
		return command.OK("Deleted branch " + del), nil
	case len(rest) == 1:
		return command.OK(""), repo.CreateBranch(ctx, rest[0])
	case len(rest) > 1:
		return command.Result{}, cmdutil.Usagef("expected a single branch name")
	}

	names, err := repo.Branches(ctx)
	if err != nil {
		return command.Result{}, err
	}
	current, err := repo.CurrentBranch(ctx)
	if err != nil {
		return command.Result{}, err
	}
	lines := make([]string, len(names))
	for i, name := range names {
		marker := "  "
		if name == current {
			marker = "* "
		}
		lines[i] = marker + name
	}
	return command.OK(strings.Join(lines, "\n")), nil
}

func checkout(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	var create bool
	fs := cmdutil.NewFlags("checkout")
	fs.BoolVarP(&create, "branch", "b", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return command.Result{}, err
	}
	rest := cmdutil.Args(fs)
	if len(rest) != 1 {
		return command.Result{}, cmdutil.Usagef("expected exactly one branch or commit")
	}
	target := rest[0]
	if err := repo.Checkout(ctx, target, create); err != nil {
		return command.Result{}, err
	}
	if create {
		return command.OK(fmt.Sprintf("Switched to a new branch '%s'", target)), nil
	}
	return command.OK(fmt.Sprintf("Switched to '%s'", target)), nil
}

func tag(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	var del string
	fs := cmdutil.NewFlags("tag")
	fs.StringVarP(&del, "delete", "d", "", "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return command.Result{}, err
	}
	rest := cmdutil.Args(fs)

	switch {
	case del != "":
		if err := repo.DeleteTag(ctx, del); err != nil {
			return command.Result{}, err
		}
		return command.OK(fmt.Sprintf("Deleted tag '%s'", del)), nil
	case len(rest) == 1:
		return command.OK(""), repo.CreateTag(ctx, rest[0])
	case len(rest) > 1:
		return command.Result{}, cmdutil.Usagef("expected a single tag name")
	}

	names, err := repo.Tags(ctx)
	if err != nil {
		return command.Result{}, err
	}
	return command.OK(strings.Join(names, "\n")), nil
}
