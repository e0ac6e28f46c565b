package gemini

import (
	"google.golang.org/genai"

	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/tool"
)

// Tools converts declarations into a single Gemini tool carrying one
// function declaration per entry, in order.
func Tools(decls []tool.Declaration) []*genai.Tool {
	if len(decls) == 0 {
		return nil
	}

	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, d := range decls {
		fd := &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
		}
		if d.Parameters != nil {
			fd.Parameters = toGeminiSchema(d.Parameters)
		}
		functionDeclarations = append(functionDeclarations, fd)
	}

	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts a tool schema, recursing through properties and
// array items.
func toGeminiSchema(s *tool.Schema) *genai.Schema {
	out := &genai.Schema{
		Type:        toGeminiType(s.Type),
		Description: s.Description,
		Minimum:     s.Minimum,
	}
	if len(s.Enum) > 0 {
		out.Enum = s.Enum
	}
	if len(s.Required) > 0 {
		out.Required = s.Required
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGeminiSchema(prop)
		}
		out.PropertyOrdering = s.PropertyOrdering
	}
	if s.Items != nil {
		out.Items = toGeminiSchema(s.Items)
	}
	return out
}

// toGeminiType converts a schema type to the Gemini enum.
func toGeminiType(t tool.Type) genai.Type {
	switch t {
	case tool.TypeString:
		return genai.TypeString
	case tool.TypeNumber:
		return genai.TypeNumber
	case tool.TypeInteger:
		return genai.TypeInteger
	case tool.TypeBoolean:
		return genai.TypeBoolean
	case tool.TypeArray:
		return genai.TypeArray
	case tool.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// resultToResponse renders a command result under the "output" key.
func resultToResponse(res command.Result) map[string]any {
	output := map[string]any{
		"exit_code": res.ExitCode,
		"stdout":    res.Stdout,
		"stderr":    res.Stderr,
	}
	if res.NewCwd != "" {
		output["new_cwd"] = res.NewCwd
	}
	if len(res.FilesChanged) > 0 {
		output["files_changed"] = res.FilesChanged
	}
	return map[string]any{"output": output}
}

// errorToResponse renders a call that never ran under the "error" key.
func errorToResponse(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}
