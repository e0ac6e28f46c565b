package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vcs"
)

const logTimeFormat = "Mon Jan 2 15:04:05 2006 -0700"

func status(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	var short bool
	fs := cmdutil.NewFlags("status")
	fs.BoolVarP(&short, "short", "s", false, "")
	fs.Bool("porcelain", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return command.Result{}, err
	}
	short = short || fs.Changed("porcelain")

	entries, err := repo.Status(ctx)
	if err != nil {
		return command.Result{}, err
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Short()
	}
	if short {
		return command.OK(strings.Join(lines, "\n")), nil
	}

	current, err := repo.CurrentBranch(ctx)
	if err != nil {
		return command.Result{}, err
	}
	out := []string{"On branch " + current}
	if len(lines) == 0 {
		out = append(out, "nothing to commit, working tree clean")
	} else {
		out = append(out, lines...)
	}
	return command.OK(strings.Join(out, "\n")), nil
}

func add(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	var all bool
	fs := cmdutil.NewFlags("add")
	fs.BoolVarP(&all, "all", "A", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return command.Result{}, err
	}
	paths := repoPaths(env, cmdutil.Args(fs))
	for _, p := range paths {
		if p == "" {
			all = true
		}
	}
	switch {
	case all:
		err := repo.AddAll(ctx)
		return command.OK(""), err
	case len(paths) == 0:
		return command.Result{}, cmdutil.Usagef("nothing specified, nothing added (try git add -A)")
	}
	return command.OK(""), repo.Add(ctx, paths...)
}

func commit(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	var (
		messages []string
		all      bool
	)
	fs := cmdutil.NewFlags("commit")
	fs.StringArrayVarP(&messages, "message", "m", nil, "")
	fs.BoolVarP(&all, "all", "a", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return command.Result{}, err
	}
	if len(messages) == 0 {
		return command.Result{}, cmdutil.Usagef("a commit message is required (-m MESSAGE)")
	}
	if all {
		if err := stageTracked(ctx, repo); err != nil {
			return command.Result{}, err
		}
	}

	c, err := repo.Commit(ctx, strings.Join(messages, "\n\n"))
	if err != nil {
		return command.Result{}, err
	}
	current, err := repo.CurrentBranch(ctx)
	if err != nil {
		return command.Result{}, err
	}
	return command.OK(fmt.Sprintf("[%s %s] %s", current, c.ShortHash(), c.Subject())), nil
}

// stageTracked stages modified and deleted tracked files, like commit -a.
func stageTracked(ctx context.Context, repo vcs.Repository) error {
	entries, err := repo.Status(ctx)
	if err != nil {
		return err
	}
	var paths []string
	for _, e := range entries {
		if !e.Untracked() && e.Worktree != vcs.StatusUnmodified {
			paths = append(paths, e.Path)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	return repo.Add(ctx, paths...)
}

func log(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	var (
		limit   int
		oneline bool
	)
	fs := cmdutil.NewFlags("log")
	fs.IntVarP(&limit, "max-count", "n", 0, "")
	fs.BoolVar(&oneline, "oneline", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return command.Result{}, err
	}
	commits, err := repo.Log(ctx, limit)
	if err != nil {
		return command.Result{}, err
	}

	var out []string
	for _, c := range commits {
		if oneline {
			out = append(out, c.ShortHash()+" "+c.Subject())
			continue
		}
		entry := fmt.Sprintf("commit %s\nAuthor: %s <%s>\nDate:   %s\n\n    %s",
			c.Hash, c.Author, c.Email, c.When.Format(logTimeFormat),
			strings.ReplaceAll(strings.TrimRight(c.Message, "\n"), "\n", "\n    "))
		out = append(out, entry)
	}
	sep := "\n"
	if !oneline {
		sep = "\n\n"
	}
	return command.OK(strings.Join(out, sep)), nil
}

// diff takes an optional revision and paths. A lone operand before "--"
// is a path when it exists in the workspace, otherwise a revision.
func diff(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	fs := cmdutil.NewFlags("diff")
	if err := cmdutil.Parse(fs, args); err != nil {
		return command.Result{}, err
	}
	operands := fs.Args()
	before, paths := operands, []string(nil)
	if dash := fs.ArgsLenAtDash(); dash >= 0 {
		before, paths = operands[:dash], operands[dash:]
	}

	var from string
	if len(before) > 0 {
		if _, err := env.FS.Stat(env.Resolve(before[0])); err != nil {
			from, before = before[0], before[1:]
		}
		paths = append(before, paths...)
	}

	out, err := repo.Diff(ctx, from, repoPaths(env, paths)...)
	if err != nil {
		return command.Result{}, err
	}
	return command.OK(strings.TrimRight(out, "\n")), nil
}

func reset(ctx context.Context, env *command.Env, repo vcs.Repository, args []string) (command.Result, error) {
	var soft, mixed, hard bool
	fs := cmdutil.NewFlags("reset")
	fs.BoolVar(&soft, "soft", false, "")
	fs.BoolVar(&mixed, "mixed", false, "")
	fs.BoolVar(&hard, "hard", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return command.Result{}, err
	}

	mode := vcs.ResetMixed
	switch {
	case countTrue(soft, mixed, hard) > 1:
		return command.Result{}, cmdutil.Usagef("--soft, --mixed and --hard are mutually exclusive")
	case soft:
		mode = vcs.ResetSoft
	case hard:
		mode = vcs.ResetHard
	}

	rest := cmdutil.Args(fs)
	if len(rest) > 1 {
		return command.Result{}, cmdutil.Usagef("expected at most one commit")
	}
	target := "HEAD"
	if len(rest) == 1 {
		target = rest[0]
	}
	if err := repo.Reset(ctx, target, mode); err != nil {
		return command.Result{}, err
	}
	if mode != vcs.ResetHard {
		return command.OK(""), nil
	}
	head, err := repo.Log(ctx, 1)
	if err != nil || len(head) == 0 {
		return command.OK("HEAD is now at " + target), nil
	}
	return command.OK(fmt.Sprintf("HEAD is now at %s %s", head[0].ShortHash(), head[0].Subject())), nil
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
