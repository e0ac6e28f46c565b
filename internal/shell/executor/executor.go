// Package executor runs parsed command lines against the command registry.
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/shell/parse"
	"github.com/Cyclone1070/vsh/internal/vcs"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// Executor owns the working directory of one shell session. It is not safe
// for concurrent use.
type Executor struct {
	registry *command.Registry
	fs       vfs.FileSystem
	git      vcs.Repository
	cfg      *config.Config
	cwd      string
}

// New creates an executor. git may be nil. cfg may be nil, in which case
// defaults apply.
func New(registry *command.Registry, fs vfs.FileSystem, git vcs.Repository, cfg *config.Config) *Executor {
	if registry == nil {
		panic("registry is required")
	}
	if fs == nil {
		panic("fs is required")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cwd := cfg.Shell.InitialCwd
	if cwd == "" {
		cwd = "/"
	}
	return &Executor{
		registry: registry,
		fs:       fs,
		git:      git,
		cfg:      cfg,
		cwd:      vfs.Clean(cwd),
	}
}

// Cwd returns the session working directory.
func (e *Executor) Cwd() string {
	return e.cwd
}

// Registry returns the registry commands are dispatched through.
func (e *Executor) Registry() *command.Registry {
	return e.registry
}

// Execute parses and runs one command line.
func (e *Executor) Execute(ctx context.Context, line string) command.Result {
	cmds, err := parse.Parse(line)
	if err != nil {
		return command.Result{
			ExitCode: command.ExitUsage,
			Stderr:   fmt.Sprintf("vsh: syntax error: %v", err),
		}
	}
	return e.Run(ctx, cmds)
}

// state is threaded through the steps of one Run.
type state struct {
	cwd      string
	last     command.Result
	stdout   string
	stderr   string
	changed  []string
	executed bool
	stopped  bool
}

// Run executes compound commands in order and returns the aggregate result.
// The exit code is that of the last command that ran.
func (e *Executor) Run(ctx context.Context, cmds []parse.Compound) command.Result {
	st := state{cwd: e.cwd}
	prev := parse.None
	for _, c := range cmds {
		st = e.step(ctx, st, prev, c)
		if st.stopped {
			break
		}
		prev = c.Operator
	}

	res := command.Result{
		ExitCode:     st.last.ExitCode,
		Stdout:       st.stdout,
		Stderr:       st.stderr,
		FilesChanged: st.changed,
	}
	if st.cwd != e.cwd {
		res.NewCwd = st.cwd
		e.cwd = st.cwd
	}
	return res
}

func (e *Executor) step(ctx context.Context, st state, prev parse.Operator, c parse.Compound) state {
	switch {
	case prev == parse.And && st.executed && st.last.ExitCode != command.ExitOK:
		return st
	case prev == parse.Or && st.executed && st.last.ExitCode == command.ExitOK:
		return st
	}

	var stdin *string
	if prev == parse.Pipe {
		piped := st.last.Stdout
		stdin = &piped
	}

	name := c.Command.Name
	var res command.Result
	if err := ctx.Err(); err != nil {
		res = failure(name, err)
		st.stopped = true
	} else {
		res = e.runOne(ctx, st.cwd, name, c.Command.Args, stdin)
		if c.Command.Redirect != nil && res.ExitCode == command.ExitOK {
			res = e.redirect(st.cwd, c.Command.Redirect, res)
		}
	}

	logrus.WithFields(logrus.Fields{
		"command":   name,
		"exit_code": res.ExitCode,
	}).Debug("command finished")

	if res.NewCwd != "" {
		st.cwd = vfs.Clean(res.NewCwd)
	}
	if c.Operator != parse.Pipe {
		st.stdout = joinSegment(st.stdout, res.Stdout)
	}
	st.stderr = joinSegment(st.stderr, res.Stderr)
	st.changed = append(st.changed, res.FilesChanged...)
	st.last = res
	st.executed = true
	return st
}

// Invoke runs a validated tool invocation through the same single-command
// boundary the shell path uses.
func (e *Executor) Invoke(ctx context.Context, inv command.Invocation, stdin *string) command.Result {
	if err := ctx.Err(); err != nil {
		return failure(inv.Command, err)
	}
	env := e.env(e.cwd, stdin)
	res := guard(inv.Command, func() (command.Result, error) {
		return inv.Run(ctx, env)
	})
	logrus.WithFields(logrus.Fields{
		"command":   inv.Command,
		"tool":      inv.Tool,
		"exit_code": res.ExitCode,
	}).Debug("tool invocation finished")

	if res.NewCwd != "" {
		e.cwd = vfs.Clean(res.NewCwd)
	}
	return res
}

func (e *Executor) runOne(ctx context.Context, cwd, name string, args []string, stdin *string) command.Result {
	cmd, ok := e.registry.Get(name)
	if !ok {
		return command.NotFound(name)
	}
	env := e.env(cwd, stdin)
	return guard(name, func() (command.Result, error) {
		return cmd.Run(ctx, env, args)
	})
}

func (e *Executor) env(cwd string, stdin *string) *command.Env {
	env := &command.Env{
		FS:       e.fs,
		Cwd:      cwd,
		Git:      e.git,
		Stdin:    stdin,
		Commands: e.registry,
		Config:   e.cfg,
	}
	// Spawned commands see the caller's cwd; their NewCwd is not applied.
	env.Spawn = func(ctx context.Context, name string, args []string, stdin *string) command.Result {
		if err := ctx.Err(); err != nil {
			return failure(name, err)
		}
		return e.runOne(ctx, cwd, name, args, stdin)
	}
	return env
}

func (e *Executor) redirect(cwd string, r *parse.Redirect, res command.Result) command.Result {
	path := vfs.Resolve(cwd, r.Path)
	data := res.Stdout
	if r.Mode == parse.Append {
		existing, err := e.fs.ReadFile(path)
		if err != nil && !vfs.IsMissing(err) {
			return redirectFailure(&RedirectError{Path: r.Path, Cause: err})
		}
		prefix := string(existing)
		if prefix != "" && !strings.HasSuffix(prefix, "\n") {
			prefix += "\n"
		}
		data = prefix + data
	}
	if err := e.fs.WriteFile(path, []byte(data)); err != nil {
		return redirectFailure(&RedirectError{Path: r.Path, Cause: err})
	}
	res.Stdout = ""
	return res.Changed(path)
}

func redirectFailure(err *RedirectError) command.Result {
	logrus.WithError(err).Debug("redirect failed")
	return command.Result{ExitCode: command.ExitFailure, Stderr: err.Error()}
}

// guard converts returned errors and panics into exit 1 results.
func guard(name string, fn func() (command.Result, error)) (res command.Result) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("command", name).Errorf("command panicked: %v", r)
			res = failure(name, fmt.Errorf("%v", r))
		}
	}()
	res, err := fn()
	if err != nil {
		logrus.WithError(err).WithField("command", name).Debug("command returned error")
		return failure(name, err)
	}
	return res
}

func failure(name string, err error) command.Result {
	msg := err.Error()
	if errors.Is(err, context.Canceled) {
		msg = "cancelled"
	} else if errors.Is(err, context.DeadlineExceeded) {
		msg = "timed out"
	}
	return command.Result{
		ExitCode: command.ExitFailure,
		Stderr:   fmt.Sprintf("Error executing %s: %s", name, msg),
	}
}

func joinSegment(agg, seg string) string {
	switch {
	case seg == "":
		return agg
	case agg == "":
		return seg
	default:
		return agg + "\n" + seg
	}
}
