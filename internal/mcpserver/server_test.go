package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/vsh/internal/session"
	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// connect serves a fresh session in memory and returns a client session.
func connect(t *testing.T) (*session.Session, *mcp.ClientSession) {
	t.Helper()
	ctx := context.Background()
	s := session.Open(session.Options{})

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := New(s.Tools, "test").Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "client"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = clientSession.Close()
		_ = serverSession.Wait()
	})
	return s, clientSession
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func TestNew_PanicsWithoutToolset(t *testing.T) {
	assert.Panics(t, func() { New(nil, "") })
}

func TestListTools_MirrorsCatalogue(t *testing.T) {
	s, cs := connect(t)

	listed, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	var names []string
	for _, tl := range listed.Tools {
		names = append(names, tl.Name)
	}
	var want []string
	for _, tl := range s.Tools.Tools() {
		want = append(want, tl.Name())
	}
	assert.ElementsMatch(t, want, names)
}

func TestCallTool_Shell(t *testing.T) {
	_, cs := connect(t)
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "shell",
		Arguments: map[string]any{"command": "write a.txt hi && cat a.txt"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "Wrote 2 bytes to a.txt\nhi", text(t, res))

	structured, ok := res.StructuredContent.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"/a.txt"}, structured["files_changed"])
}

func TestCallTool_CwdPersistsAcrossCalls(t *testing.T) {
	s, cs := connect(t)
	ctx := context.Background()

	_, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "mkdir", Arguments: map[string]any{"paths": []string{"src"}}})
	require.NoError(t, err)
	_, err = cs.CallTool(ctx, &mcp.CallToolParams{Name: "shell", Arguments: map[string]any{"command": "cd src"}})
	require.NoError(t, err)
	assert.Equal(t, "/src", s.Tools.Cwd())
}

func TestCallTool_FailureIsToolError(t *testing.T) {
	_, cs := connect(t)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "cat",
		Arguments: map[string]any{"paths": []string{"missing.txt"}},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "[exit code 1]")
}

func TestCallTool_InvalidArguments(t *testing.T) {
	_, cs := connect(t)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "write",
		Arguments: map[string]any{"append": true},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "invalid arguments for write")
}

func TestRender(t *testing.T) {
	assert.Equal(t, "out", render(command.OK("out")))
	assert.Equal(t, "", render(command.OK("")))
	assert.Equal(t, "partial\nboom\n[exit code 2]", render(command.Result{ExitCode: 2, Stdout: "partial", Stderr: "boom"}))
}
