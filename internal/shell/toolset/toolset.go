// Package toolset exposes the command registry as an ordered tool catalogue
// for function-calling models, together with the dispatch table that routes
// a structured call back to the command that serves it.
package toolset

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/shell/executor"
	"github.com/Cyclone1070/vsh/internal/tool"
)

// ShellTool is the catch-all tool that accepts a full command line.
const ShellTool = "shell"

type shellArgs struct {
	Command string `json:"command" jsonschema:"minLength=1" jsonschema_description:"Command line to run. Supports pipes, &&, ||, ; and > / >> redirects."`
}

// Route is the dispatch entry for one tool.
type Route struct {
	Tool    *command.Tool
	Command string
	Schema  *tool.Schema
}

// Toolset serialises calls into one executor session.
type Toolset struct {
	mu     sync.Mutex
	exec   *executor.Executor
	tools  []*command.Tool
	routes map[string]Route
}

// New builds the catalogue from the executor's registry.
func New(exec *executor.Executor) *Toolset {
	if exec == nil {
		panic("exec is required")
	}

	shell := command.NewTool(ShellTool, "",
		"Run a shell command line in the workspace. This is the only tool that supports pipes, chaining and redirection.",
		`grep -rn "TODO" src | head -n 5`,
		func(ctx context.Context, _ *command.Env, a shellArgs) (command.Result, error) {
			return exec.Execute(ctx, a.Command), nil
		})

	var discrete []*command.Tool
	for _, c := range exec.Registry().List() {
		if tc, ok := c.(command.ToolCommand); ok {
			discrete = append(discrete, tc.Tools()...)
		}
	}
	sort.SliceStable(discrete, func(i, j int) bool {
		return discrete[i].Name() < discrete[j].Name()
	})

	ts := &Toolset{
		exec:   exec,
		tools:  append([]*command.Tool{shell}, discrete...),
		routes: make(map[string]Route, len(discrete)+1),
	}
	for _, t := range ts.tools {
		ts.routes[t.Name()] = Route{Tool: t, Command: t.Command(), Schema: t.Schema()}
	}
	return ts
}

// Tools returns the catalogue, shell first and the rest sorted by name.
func (t *Toolset) Tools() []*command.Tool {
	return t.tools
}

// Declarations returns the provider-neutral declarations in catalogue order.
func (t *Toolset) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(t.tools))
	for _, tl := range t.tools {
		decls = append(decls, tl.Declaration())
	}
	return decls
}

// Route looks up the dispatch entry for a tool name.
func (t *Toolset) Route(name string) (Route, bool) {
	r, ok := t.routes[name]
	return r, ok
}

// Cwd returns the working directory of the underlying session.
func (t *Toolset) Cwd() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exec.Cwd()
}

// Execute runs a full command line, as the shell tool would.
func (t *Toolset) Execute(ctx context.Context, line string) command.Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exec.Execute(ctx, line)
}

// Call validates args against the tool's schema and runs it. Rejected
// arguments return *command.ValidationError and nothing runs.
func (t *Toolset) Call(ctx context.Context, name string, args map[string]any) (command.Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	route, ok := t.routes[name]
	if !ok {
		return command.Result{}, &UnknownToolError{Name: name}
	}
	inv, err := route.Tool.Bind(args)
	if err != nil {
		return command.Result{}, err
	}
	if name == ShellTool {
		return inv.Run(ctx, nil)
	}
	return t.exec.Invoke(ctx, inv, nil), nil
}

// CallJSON is Call for transports that carry raw JSON arguments. Empty
// input means no arguments.
func (t *Toolset) CallJSON(ctx context.Context, name string, raw json.RawMessage) (command.Result, error) {
	args := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return command.Result{}, &ArgumentsError{Tool: name, Cause: err}
		}
	}
	return t.Call(ctx, name, args)
}
