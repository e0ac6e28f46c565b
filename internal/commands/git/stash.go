package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vcs"
)

// stash supports push (the default), pop and list.
func stash(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	action := "push"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		action, args = args[0], args[1:]
	}

	switch action {
	case "push", "save":
		var message string
		fs := cmdutil.NewFlags("stash")
		fs.StringVarP(&message, "message", "m", "", "")
		if err := cmdutil.Parse(fs, args); err != nil {
			return command.Result{}, err
		}
		e, err := repo.StashPush(ctx, message)
		if err != nil {
			return command.Result{}, err
		}
		return command.OK(fmt.Sprintf("Saved working directory and index state On %s: %s", e.Branch, e.Message)), nil
	case "pop":
		e, err := repo.StashPop(ctx)
		if err != nil {
			return command.Result{}, err
		}
		return command.OK(fmt.Sprintf("Restored %d file(s) from stash: %s", len(e.Files), e.Message)), nil
	case "list":
		entries, err := repo.StashList(ctx)
		if err != nil {
			return command.Result{}, err
		}
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = fmt.Sprintf("stash@{%d}: On %s: %s", i, e.Branch, e.Message)
		}
		return command.OK(strings.Join(lines, "\n")), nil
	}
	return command.Result{}, cmdutil.Usagef("unknown stash action %q (push, pop, list)", action)
}
