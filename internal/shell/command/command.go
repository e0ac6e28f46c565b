// Package command defines the contract shared by every shell command, the
// execution context handed to it, the dual-mode adapter that exposes a typed
// command as both an argv command and a schema-validated tool, and the
// registry the executor dispatches through.
package command

import "context"

// Command is the capability every registered command provides.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, env *Env, args []string) (Result, error)
}

// ToolCommand is a command that is also reachable as one or more typed tools.
// The first tool is the primary one and carries the command's name.
type ToolCommand interface {
	Command
	Usage() string
	Tools() []*Tool
}

// RunFunc is the argv entrypoint of a plain command.
type RunFunc func(ctx context.Context, env *Env, args []string) (Result, error)

type funcCommand struct {
	name        string
	description string
	run         RunFunc
}

// New builds a plain command that is only reachable through the shell.
func New(name, description string, run RunFunc) Command {
	if run == nil {
		panic("run is required")
	}
	return &funcCommand{name: name, description: description, run: run}
}

func (c *funcCommand) Name() string        { return c.name }
func (c *funcCommand) Description() string { return c.description }

func (c *funcCommand) Run(ctx context.Context, env *Env, args []string) (Result, error) {
	return c.run(ctx, env, args)
}
