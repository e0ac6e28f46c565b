package command

import (
	"context"

	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/vsh/internal/tool"
)

// ExecFunc runs a bound tool invocation.
type ExecFunc func(ctx context.Context, env *Env) (Result, error)

// Tool is one typed entrypoint of a command, described by a schema reflected
// from its argument struct.
type Tool struct {
	name        string
	command     string
	description string
	example     string
	schema      *argsSchema
	bind        func(doc any) (ExecFunc, error)
}

// Invocation is a validated, decoded tool call ready to run.
type Invocation struct {
	Tool    string
	Command string
	exec    ExecFunc
}

// Run executes the invocation against env.
func (i Invocation) Run(ctx context.Context, env *Env) (Result, error) {
	return i.exec(ctx, env)
}

// NewTool builds a standalone tool whose schema is reflected from A.
// It panics if A cannot be reflected into a compilable schema.
func NewTool[A any](name, command, description, example string, execute func(ctx context.Context, env *Env, a A) (Result, error)) *Tool {
	var zero A
	schema, err := reflectArgs(name, &zero)
	if err != nil {
		panic(err)
	}
	t := &Tool{
		name:        name,
		command:     command,
		description: description,
		example:     example,
		schema:      schema,
	}
	t.bind = func(doc any) (ExecFunc, error) {
		var a A
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName: "json",
			Result:  &a,
		})
		if err != nil {
			return nil, &DecodeError{Tool: name, Cause: err}
		}
		if err := decoder.Decode(doc); err != nil {
			return nil, &DecodeError{Tool: name, Cause: err}
		}
		return func(ctx context.Context, env *Env) (Result, error) {
			return execute(ctx, env, a)
		}, nil
	}
	return t
}

func (t *Tool) Name() string        { return t.name }
func (t *Tool) Command() string     { return t.command }
func (t *Tool) Description() string { return t.description }
func (t *Tool) Example() string     { return t.example }

// Schema returns the provider-neutral parameter schema.
func (t *Tool) Schema() *tool.Schema {
	return t.schema.decl
}

// InputSchema returns the raw JSON schema document.
func (t *Tool) InputSchema() map[string]any {
	return t.schema.document
}

// Declaration returns the function declaration advertised to a model.
func (t *Tool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        t.name,
		Description: t.description,
		Parameters:  t.schema.decl,
	}
}

// Bind validates structured arguments against the schema and decodes them.
// A *ValidationError means the arguments were rejected.
func (t *Tool) Bind(args map[string]any) (Invocation, error) {
	if args == nil {
		args = map[string]any{}
	}
	doc, err := toDocument(args)
	if err != nil {
		return Invocation{}, &DecodeError{Tool: t.name, Cause: err}
	}
	if msgs := t.schema.validate(doc); len(msgs) > 0 {
		return Invocation{}, &ValidationError{Tool: t.name, Messages: msgs}
	}
	exec, err := t.bind(doc)
	if err != nil {
		return Invocation{}, err
	}
	return Invocation{Tool: t.name, Command: t.command, exec: exec}, nil
}
