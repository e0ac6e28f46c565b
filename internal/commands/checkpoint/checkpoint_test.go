package checkpoint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/testing/mocks"
	"github.com/Cyclone1070/vsh/internal/vcs"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

func newEnv(repo *mocks.MockRepository) *command.Env {
	return &command.Env{FS: vfs.NewMemory(), Cwd: "/", Git: repo}
}

func run(t *testing.T, env *command.Env, args ...string) command.Result {
	t.Helper()
	res, err := Checkpoint().Run(context.Background(), env, args)
	require.NoError(t, err)
	return res
}

func modified(path string) vcs.FileStatus {
	return vcs.FileStatus{Path: path, Staging: vcs.StatusUnmodified, Worktree: vcs.StatusModified}
}

func TestParse(t *testing.T) {
	tests := []struct {
		args []string
		want Args
	}{
		{[]string{"save", "before", "refactor"}, Args{Action: "save", Message: "before refactor"}},
		{[]string{"save"}, Args{Action: "save"}},
		{[]string{"list", "-n", "3"}, Args{Action: "list", Limit: 3}},
		{[]string{"rollback", "abc"}, Args{Action: "rollback", ID: "abc"}},
		{[]string{"diff"}, Args{Action: "diff"}},
		{[]string{"diff", "abc"}, Args{Action: "diff", ID: "abc"}},
		{[]string{"status"}, Args{Action: "status"}},
	}
	for _, tt := range tests {
		got, err := parse(tt.args)
		require.NoError(t, err, "args %v", tt.args)
		assert.Equal(t, tt.want, got)
	}

	for _, args := range [][]string{nil, {"rollback"}, {"rollback", "a", "b"}, {"diff", "a", "b"}, {"status", "x"}, {"list", "x"}} {
		_, err := parse(args)
		assert.Error(t, err, "args %v", args)
	}
}

func TestSaveAndList(t *testing.T) {
	repo := mocks.NewMockRepository().WithStatus(modified("a.go"))
	repo.WithCommit("cccccccccccc", "ordinary commit")
	env := newEnv(repo)

	res := run(t, env, "save", "before", "refactor")
	assert.Equal(t, command.OK("Saved checkpoint 0000000: before refactor"), res)
	assert.Equal(t, "checkpoint: before refactor", repo.CommitsVal[0].Message)
	assert.Equal(t, []string{"add --all", "commit checkpoint: before refactor"}, repo.Calls)

	res = run(t, env, "save")
	assert.Equal(t, command.OK("No changes to checkpoint"), res)

	repo.StatusVal = []vcs.FileStatus{modified("b.go")}
	res = run(t, env, "save")
	assert.Equal(t, command.OK("Saved checkpoint 0000000: checkpoint 2"), res)

	res = run(t, env, "list")
	assert.Equal(t, "0000000  2024-01-02 15:04:05  checkpoint 2\n0000000  2024-01-02 15:04:05  before refactor", res.Stdout)

	res = run(t, env, "list", "-n", "1")
	assert.Equal(t, "0000000  2024-01-02 15:04:05  checkpoint 2", res.Stdout)
}

func TestListEmpty(t *testing.T) {
	res := run(t, newEnv(mocks.NewMockRepository()), "list")
	assert.Equal(t, command.OK("No checkpoints"), res)
}

func TestRollback(t *testing.T) {
	repo := mocks.NewMockRepository().
		WithCommit("bbbb00000000", "later work").
		WithCommit("aaaa11111111", "checkpoint: stable").
		WithCommit("aaaa22222222", "checkpoint: initial")
	env := newEnv(repo)

	res := run(t, env, "rollback", "aaaa1")
	assert.Equal(t, command.OK("Rolled back to checkpoint aaaa111: stable"), res)
	assert.Equal(t, []string{"reset 2 aaaa11111111"}, repo.Calls)
	assert.Len(t, repo.CommitsVal, 2)

	res = run(t, env, "rollback", "bbbb")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, `no checkpoint matches "bbbb"`)

	res = run(t, env, "rollback", "aaaa")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "ambiguous")
}

func TestDiffAndStatus(t *testing.T) {
	repo := mocks.NewMockRepository().WithCommit("aaaa11111111", "checkpoint: stable")
	env := newEnv(repo)

	res := run(t, env, "diff")
	assert.Equal(t, command.OK("No changes"), res)

	repo.DiffVal = "--- a/x\n+++ b/x\n"
	res = run(t, env, "diff", "aaaa")
	assert.Equal(t, command.OK("--- a/x\n+++ b/x"), res)
	assert.Equal(t, "diff aaaa11111111 --", repo.Calls[len(repo.Calls)-1])

	res = run(t, env, "status")
	assert.Equal(t, command.OK("Last checkpoint aaaa111: stable\nNo changes since last commit"), res)

	repo.StatusVal = []vcs.FileStatus{modified("x")}
	res = run(t, env, "status")
	assert.Equal(t, "Last checkpoint aaaa111: stable\n M x", res.Stdout)
}

func TestVariants(t *testing.T) {
	d := Checkpoint()
	tools := d.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, "checkpoint", tools[0].Name())
	assert.Equal(t, "checkpoint_save", tools[1].Name())
	assert.Equal(t, "checkpoint_rollback", tools[2].Name())

	repo := mocks.NewMockRepository().WithStatus(modified("a.go"))
	env := newEnv(repo)

	inv, err := tools[1].Bind(map[string]any{"message": "via tool"})
	require.NoError(t, err)
	res, err := inv.Run(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, "Saved checkpoint 0000000: via tool", res.Stdout)

	_, err = tools[2].Bind(map[string]any{})
	var ve *command.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = tools[0].Bind(map[string]any{"action": "explode"})
	assert.ErrorAs(t, err, &ve)
}

func TestNoRepository(t *testing.T) {
	env := &command.Env{FS: vfs.NewMemory(), Cwd: "/"}
	res := run(t, env, "list")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "not a git repository")

	res = run(t, env, "explode")
	assert.Equal(t, 2, res.ExitCode)
}
