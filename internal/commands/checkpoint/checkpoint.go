// Package checkpoint implements named snapshots of the workspace on top of
// the session's git repository. A checkpoint is a commit of the whole tree
// whose message carries the configured prefix.
package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vcs"
)

const timeFormat = "2006-01-02 15:04:05"

// Args are the typed arguments of checkpoint.
type Args struct {
	Action  string `json:"action" jsonschema:"enum=save,enum=list,enum=rollback,enum=diff,enum=status" jsonschema_description:"save snapshots the workspace, list shows checkpoints, rollback restores one, diff shows changes since one, status shows uncommitted changes."`
	Message string `json:"message,omitempty" jsonschema_description:"Description for save."`
	ID      string `json:"id,omitempty" jsonschema_description:"Checkpoint id (hash prefix) for rollback and diff."`
	Limit   int    `json:"limit,omitempty" jsonschema:"minimum=0" jsonschema_description:"Maximum number of checkpoints to list. 0 lists all."`
}

// SaveArgs are the arguments of the checkpoint_save tool.
type SaveArgs struct {
	Message string `json:"message,omitempty" jsonschema_description:"Description of the snapshot."`
}

// RollbackArgs are the arguments of the checkpoint_rollback tool.
type RollbackArgs struct {
	ID string `json:"id" jsonschema:"minLength=1" jsonschema_description:"Checkpoint id as shown by checkpoint list."`
}

// Checkpoint saves and restores workspace snapshots.
func Checkpoint() *command.Dual[Args] {
	d := command.NewDual(command.Spec[Args]{
		Name:        "checkpoint",
		Description: "Save, list, diff and roll back workspace checkpoints",
		Usage:       "checkpoint save [MESSAGE] | list [-n N] | rollback ID | diff [ID] | status",
		Example:     `checkpoint save "before refactor"`,
		Parse:       parse,
		Execute:     execute,
	})
	command.AddVariant(d, "checkpoint_save", "Snapshot the whole workspace as a checkpoint", `{"message": "before refactor"}`,
		func(a SaveArgs) Args { return Args{Action: "save", Message: a.Message} })
	command.AddVariant(d, "checkpoint_rollback", "Restore the workspace to a checkpoint, discarding later changes to tracked files", `{"id": "a1b2c3d"}`,
		func(a RollbackArgs) Args { return Args{Action: "rollback", ID: a.ID} })
	return d
}

func parse(args []string) (Args, error) {
	if len(args) == 0 {
		return Args{}, cmdutil.Usagef("missing action (save, list, rollback, diff, status)")
	}
	a := Args{Action: args[0]}
	rest := args[1:]

	switch a.Action {
	case "save":
		a.Message = strings.Join(rest, " ")
	case "list":
		fs := cmdutil.NewFlags("checkpoint list")
		fs.IntVarP(&a.Limit, "max-count", "n", 0, "")
		if err := cmdutil.Parse(fs, rest); err != nil {
			return a, err
		}
		if fs.NArg() > 0 {
			return a, cmdutil.Usagef("list takes no operands")
		}
	case "rollback":
		if len(rest) != 1 {
			return a, cmdutil.Usagef("rollback needs exactly one checkpoint id")
		}
		a.ID = rest[0]
	case "diff":
		if len(rest) > 1 {
			return a, cmdutil.Usagef("diff takes at most one checkpoint id")
		}
		if len(rest) == 1 {
			a.ID = rest[0]
		}
	case "status":
		if len(rest) > 0 {
			return a, cmdutil.Usagef("status takes no operands")
		}
	}
	return a, nil
}

func execute(ctx context.Context, env *command.Env, a Args) (command.Result, error) {
	if env.Git == nil {
		return cmdutil.Failure("checkpoint", &cmdutil.GitUnavailableError{}), nil
	}
	m := &manager{repo: env.Git, prefix: env.GitConfig().CheckpointPrefix}

	var (
		res command.Result
		err error
	)
	switch a.Action {
	case "save":
		res, err = m.save(ctx, a.Message)
	case "list":
		res, err = m.list(ctx, a.Limit)
	case "rollback":
		res, err = m.rollback(ctx, a.ID)
	case "diff":
		res, err = m.diff(ctx, a.ID)
	case "status":
		res, err = m.status(ctx)
	default:
		return command.Usage("checkpoint", cmdutil.Usagef("unknown action %q", a.Action)), nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return command.Result{}, err
		}
		return cmdutil.Failure("checkpoint "+a.Action, err), nil
	}
	return res, nil
}

// manager holds the repository and prefix for one invocation.
type manager struct {
	repo   vcs.Repository
	prefix string
}

func (m *manager) save(ctx context.Context, message string) (command.Result, error) {
	if err := m.repo.AddAll(ctx); err != nil {
		return command.Result{}, err
	}
	if message == "" {
		n, err := m.count(ctx)
		if err != nil {
			return command.Result{}, err
		}
		message = "checkpoint " + strconv.Itoa(n+1)
	}
	c, err := m.repo.Commit(ctx, m.prefix+message)
	var nothing *vcs.NothingToCommitError
	if errors.As(err, &nothing) {
		return command.OK("No changes to checkpoint"), nil
	}
	if err != nil {
		return command.Result{}, err
	}
	return command.OK(fmt.Sprintf("Saved checkpoint %s: %s", c.ShortHash(), message)), nil
}

// checkpoints returns the checkpoint commits reachable from HEAD, newest
// first. An empty history has none.
func (m *manager) checkpoints(ctx context.Context) ([]vcs.Commit, error) {
	commits, err := m.repo.Log(ctx, 0)
	var empty *vcs.NoCommitsError
	if errors.As(err, &empty) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []vcs.Commit
	for _, c := range commits {
		if strings.HasPrefix(c.Message, m.prefix) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *manager) count(ctx context.Context) (int, error) {
	cps, err := m.checkpoints(ctx)
	return len(cps), err
}

func (m *manager) label(c vcs.Commit) string {
	return strings.TrimPrefix(c.Subject(), m.prefix)
}

func (m *manager) list(ctx context.Context, limit int) (command.Result, error) {
	cps, err := m.checkpoints(ctx)
	if err != nil {
		return command.Result{}, err
	}
	if len(cps) == 0 {
		return command.OK("No checkpoints"), nil
	}
	page, _ := cmdutil.Paginate(cps, 0, limit)
	lines := make([]string, len(page))
	for i, c := range page {
		lines[i] = fmt.Sprintf("%s  %s  %s", c.ShortHash(), c.When.Format(timeFormat), m.label(c))
	}
	return command.OK(strings.Join(lines, "\n")), nil
}

// lookup resolves an id to a checkpoint by hash prefix.
func (m *manager) lookup(ctx context.Context, id string) (vcs.Commit, error) {
	cps, err := m.checkpoints(ctx)
	if err != nil {
		return vcs.Commit{}, err
	}
	var found []vcs.Commit
	for _, c := range cps {
		if strings.HasPrefix(c.Hash, id) {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 0:
		return vcs.Commit{}, &UnknownCheckpointError{ID: id}
	case 1:
		return found[0], nil
	}
	return vcs.Commit{}, &AmbiguousCheckpointError{ID: id, Matches: len(found)}
}

func (m *manager) rollback(ctx context.Context, id string) (command.Result, error) {
	if id == "" {
		return command.Result{}, cmdutil.Usagef("rollback needs a checkpoint id")
	}
	c, err := m.lookup(ctx, id)
	if err != nil {
		return command.Result{}, err
	}
	if err := m.repo.Reset(ctx, c.Hash, vcs.ResetHard); err != nil {
		return command.Result{}, err
	}
	return command.OK(fmt.Sprintf("Rolled back to checkpoint %s: %s", c.ShortHash(), m.label(c))), nil
}

func (m *manager) diff(ctx context.Context, id string) (command.Result, error) {
	from := ""
	if id != "" {
		c, err := m.lookup(ctx, id)
		if err != nil {
			return command.Result{}, err
		}
		from = c.Hash
	}
	out, err := m.repo.Diff(ctx, from)
	if err != nil {
		return command.Result{}, err
	}
	if out == "" {
		return command.OK("No changes"), nil
	}
	return command.OK(strings.TrimRight(out, "\n")), nil
}

func (m *manager) status(ctx context.Context) (command.Result, error) {
	cps, err := m.checkpoints(ctx)
	if err != nil {
		return command.Result{}, err
	}
	entries, err := m.repo.Status(ctx)
	if err != nil {
		return command.Result{}, err
	}

	var lines []string
	if len(cps) == 0 {
		lines = append(lines, "No checkpoints yet")
	} else {
		lines = append(lines, fmt.Sprintf("Last checkpoint %s: %s", cps[0].ShortHash(), m.label(cps[0])))
	}
	if len(entries) == 0 {
		lines = append(lines, "No changes since last commit")
	}
	for _, e := range entries {
		lines = append(lines, e.Short())
	}
	return command.OK(strings.Join(lines, "\n")), nil
}

// Commands returns every command in this family.
func Commands() []command.Command {
	return []command.Command{Checkpoint()}
}
