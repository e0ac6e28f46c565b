package command

import (
	"context"
	"fmt"
	"strings"
)

// Spec describes a dual-mode command. Parse maps argv onto the typed
// arguments and Execute does the work; both the shell and the tool path end
// in Execute.
type Spec[A any] struct {
	Name        string
	Description string
	Usage       string
	Example     string
	Parse       func(args []string) (A, error)
	Execute     func(ctx context.Context, env *Env, a A) (Result, error)
}

// Dual adapts a Spec into a Command that also exposes typed tools.
type Dual[A any] struct {
	spec    Spec[A]
	primary *Tool
	tools   []*Tool
}

// NewDual reflects the argument schema of A and builds the adapter.
// It panics on a missing function or an unreflectable argument struct.
func NewDual[A any](spec Spec[A]) *Dual[A] {
	if spec.Parse == nil {
		panic("parse is required")
	}
	if spec.Execute == nil {
		panic("execute is required")
	}
	primary := NewTool(spec.Name, spec.Name, spec.Description, spec.Example, spec.Execute)
	return &Dual[A]{spec: spec, primary: primary, tools: []*Tool{primary}}
}

// AddVariant registers an additional tool whose arguments V are converted
// into the command's own arguments before execution.
func AddVariant[A, V any](d *Dual[A], name, description, example string, convert func(V) A) {
	execute := func(ctx context.Context, env *Env, v V) (Result, error) {
		return d.spec.Execute(ctx, env, convert(v))
	}
	d.tools = append(d.tools, NewTool(name, d.spec.Name, description, example, execute))
}

func (d *Dual[A]) Name() string        { return d.spec.Name }
func (d *Dual[A]) Description() string { return d.spec.Description }
func (d *Dual[A]) Usage() string       { return d.spec.Usage }
func (d *Dual[A]) Tools() []*Tool      { return d.tools }

// ParseCLI maps argv onto typed arguments without executing.
func (d *Dual[A]) ParseCLI(args []string) (A, error) {
	return d.spec.Parse(args)
}

// Execute runs typed arguments directly.
func (d *Dual[A]) Execute(ctx context.Context, env *Env, a A) (Result, error) {
	return d.spec.Execute(ctx, env, a)
}

// Run is the shell entrypoint. Parsed arguments are checked against the
// same schema the tool path uses.
func (d *Dual[A]) Run(ctx context.Context, env *Env, args []string) (Result, error) {
	a, err := d.spec.Parse(args)
	if err != nil {
		return Usage(d.spec.Name, err), nil
	}
	msgs, err := d.primary.schema.validateValue(a)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode arguments: %w", err)
	}
	if len(msgs) > 0 {
		return Result{
			ExitCode: ExitUsage,
			Stderr:   fmt.Sprintf("%s: invalid arguments: %s", d.spec.Name, strings.Join(msgs, "; ")),
		}, nil
	}
	return d.spec.Execute(ctx, env, a)
}
