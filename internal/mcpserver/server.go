// Package mcpserver exposes the tool catalogue over the Model Context
// Protocol. Every catalogue entry becomes one MCP tool whose input schema is
// the entry's JSON schema.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/vsh/internal/shell/command"
)

const instructions = `This MCP server runs a sandboxed POSIX-style shell over one workspace.

Use the "shell" tool for pipelines, chaining and redirection. Every other tool runs a single
command with typed arguments. The working directory persists between calls.
`

// Toolset is the part of the tool catalogue the server needs.
type Toolset interface {
	Tools() []*command.Tool
	CallJSON(ctx context.Context, name string, raw json.RawMessage) (command.Result, error)
}

// New builds an MCP server with one tool per catalogue entry.
func New(tools Toolset, version string) *mcp.Server {
	if tools == nil {
		panic("tools is required")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "vsh",
		Title:   "Virtual shell for sandboxed file, search and version control operations",
		Version: version,
	}, &mcp.ServerOptions{Instructions: instructions})

	for _, t := range tools.Tools() {
		server.AddTool(&mcp.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		}, handler(tools, t.Name()))
	}
	return server
}

// Serve runs the server over stdio until the client disconnects or ctx ends.
func Serve(ctx context.Context, tools Toolset, version string) error {
	logrus.Debug("serving MCP over stdio")
	return New(tools, version).Run(ctx, &mcp.StdioTransport{})
}

func handler(tools Toolset, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}

		res, err := tools.CallJSON(ctx, name, raw)
		if err != nil {
			logrus.WithError(err).WithField("tool", name).Debug("MCP call rejected")
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			}, nil
		}
		return &mcp.CallToolResult{
			IsError:           !res.Success(),
			Content:           []mcp.Content{&mcp.TextContent{Text: render(res)}},
			StructuredContent: res,
		}, nil
	}
}

// render is the text form of a result: stdout, then stderr, then the exit
// code when it is not zero.
func render(res command.Result) string {
	var parts []string
	if res.Stdout != "" {
		parts = append(parts, res.Stdout)
	}
	if res.Stderr != "" {
		parts = append(parts, res.Stderr)
	}
	if !res.Success() {
		parts = append(parts, fmt.Sprintf("[exit code %d]", res.ExitCode))
	}
	return strings.Join(parts, "\n")
}
