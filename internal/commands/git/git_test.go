package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/testing/mocks"
	"github.com/Cyclone1070/vsh/internal/vcs"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

func newEnv(t *testing.T, repo *mocks.MockRepository) *command.Env {
	t.Helper()
	fs := vfs.NewMemory()
	require.NoError(t, fs.WriteFile("/src/a.go", []byte("package a")))
	return &command.Env{FS: fs, Cwd: "/", Git: repo}
}

func run(t *testing.T, env *command.Env, args ...string) command.Result {
	t.Helper()
	res, err := Git().Run(context.Background(), env, args)
	require.NoError(t, err)
	return res
}

func TestParseGit(t *testing.T) {
	a, err := parseGit([]string{"commit", "-m", "msg"})
	require.NoError(t, err)
	assert.Equal(t, GitArgs{Subcommand: "commit", Args: []string{"-m", "msg"}}, a)

	a, err = parseGit([]string{"status"})
	require.NoError(t, err)
	assert.Nil(t, a.Args)

	_, err = parseGit(nil)
	assert.ErrorContains(t, err, "missing subcommand")

	_, err = parseGit([]string{"rebase"})
	assert.ErrorContains(t, err, `"rebase" is not a git command`)
}

func TestGit_Unavailable(t *testing.T) {
	env := newEnv(t, nil)
	env.Git = nil
	res := run(t, env, "status")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "not a git repository")

	res = run(t, env, "frobnicate")
	assert.Equal(t, 2, res.ExitCode)
}

func TestGit_StatusAddCommit(t *testing.T) {
	repo := mocks.NewMockRepository().WithStatus(
		vcs.FileStatus{Path: "src/a.go", Staging: vcs.StatusUnmodified, Worktree: vcs.StatusModified},
		vcs.FileStatus{Path: "new.txt", Staging: vcs.StatusUntracked, Worktree: vcs.StatusUntracked},
	)
	env := newEnv(t, repo)

	res := run(t, env, "status")
	assert.Equal(t, command.OK("On branch main\n M src/a.go\n?? new.txt"), res)

	res = run(t, env, "status", "-s")
	assert.Equal(t, " M src/a.go\n?? new.txt", res.Stdout)

	res = run(t, env, "commit")
	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, res.Stderr, "commit message is required")

	res = run(t, env, "commit", "-m", "nothing staged")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "nothing to commit")

	res = run(t, env, "add")
	assert.Equal(t, 2, res.ExitCode)

	env.Cwd = "/src"
	res = run(t, env, "add", "a.go")
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, repo.Calls, "add src/a.go")
	env.Cwd = "/"

	res = run(t, env, "commit", "-m", "first change")
	assert.Equal(t, command.OK("[main 0000000] first change"), res)

	res = run(t, env, "add", ".")
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, repo.Calls, "add --all")

	res = run(t, env, "status")
	assert.Equal(t, "On branch main\nA  new.txt", res.Stdout)
}

func TestGit_CommitAllStagesTrackedOnly(t *testing.T) {
	repo := mocks.NewMockRepository().WithStatus(
		vcs.FileStatus{Path: "a.go", Staging: vcs.StatusUnmodified, Worktree: vcs.StatusModified},
		vcs.FileStatus{Path: "b.txt", Staging: vcs.StatusUntracked, Worktree: vcs.StatusUntracked},
	)
	env := newEnv(t, repo)

	res := run(t, env, "commit", "-a", "-m", "tracked")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.Equal(t, []string{"add a.go", "commit tracked"}, repo.Calls)
	assert.Equal(t, []vcs.FileStatus{{Path: "b.txt", Staging: vcs.StatusUntracked, Worktree: vcs.StatusUntracked}}, repo.StatusVal)
}

func TestGit_Log(t *testing.T) {
	repo := mocks.NewMockRepository().
		WithCommit("bbbbbbbbbbbb", "second\n\nbody line").
		WithCommit("aaaaaaaaaaaa", "first")
	env := newEnv(t, repo)

	res := run(t, env, "log", "--oneline")
	assert.Equal(t, "bbbbbbb second\naaaaaaa first", res.Stdout)

	res = run(t, env, "log", "-n", "1")
	assert.Equal(t, "commit bbbbbbbbbbbb\nAuthor: vsh <vsh@localhost>\nDate:   Tue Jan 2 15:04:05 2024 +0000\n\n    second\n    \n    body line", res.Stdout)

	res = run(t, newEnv(t, mocks.NewMockRepository()), "log")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "does not have any commits")
}

func TestGit_Diff(t *testing.T) {
	repo := mocks.NewMockRepository()
	repo.DiffVal = "diff --git a/src/a.go b/src/a.go\n"
	env := newEnv(t, repo)

	res := run(t, env, "diff")
	assert.Equal(t, command.OK("diff --git a/src/a.go b/src/a.go"), res)

	run(t, env, "diff", "src/a.go")
	run(t, env, "diff", "HEAD~1")
	run(t, env, "diff", "abc123", "--", "src")
	assert.Equal(t, []string{
		"diff  --",
		"diff  -- src/a.go",
		"diff HEAD~1 --",
		"diff abc123 -- src",
	}, repo.Calls)
}

func TestGit_BranchCheckoutTag(t *testing.T) {
	repo := mocks.NewMockRepository().WithCommit("abcdef123456", "init")
	env := newEnv(t, repo)

	assert.Equal(t, 0, run(t, env, "branch", "feature").ExitCode)
	assert.Equal(t, "  feature\n* main", run(t, env, "branch").Stdout)

	res := run(t, env, "branch", "feature")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "already exists")

	res = run(t, env, "checkout", "feature")
	assert.Equal(t, command.OK("Switched to 'feature'"), res)
	res = run(t, env, "checkout", "-b", "topic")
	assert.Equal(t, command.OK("Switched to a new branch 'topic'"), res)
	assert.Equal(t, "topic", repo.Current)

	res = run(t, env, "checkout")
	assert.Equal(t, 2, res.ExitCode)

	res = run(t, env, "branch", "-d", "feature")
	assert.Equal(t, command.OK("Deleted branch feature"), res)

	run(t, env, "tag", "v1")
	run(t, env, "tag", "v0")
	assert.Equal(t, "v0\nv1", run(t, env, "tag").Stdout)
	assert.Equal(t, command.OK("Deleted tag 'v0'"), run(t, env, "tag", "-d", "v0"))
}

func TestGit_Reset(t *testing.T) {
	repo := mocks.NewMockRepository().
		WithCommit("222222222222", "second").
		WithCommit("111111111111", "first")
	env := newEnv(t, repo)

	res := run(t, env, "reset", "--hard", "1111111")
	assert.Equal(t, command.OK("HEAD is now at 1111111 first"), res)
	assert.Equal(t, []string{"reset 2 1111111"}, repo.Calls)

	res = run(t, env, "reset")
	assert.Equal(t, command.OK(""), res)

	res = run(t, env, "reset", "--soft", "--hard")
	assert.Equal(t, 2, res.ExitCode)

	res = run(t, env, "reset", "--hard", "nope")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, `unknown revision "nope"`)
}

func TestGit_Remotes(t *testing.T) {
	repo := mocks.NewMockRepository()
	env := newEnv(t, repo)

	res := run(t, env, "push")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, `remote "origin" does not exist`)

	assert.Equal(t, 0, run(t, env, "remote", "add", "origin", "https://example.com/r.git").ExitCode)
	assert.Equal(t, "origin", run(t, env, "remote").Stdout)
	assert.Equal(t, "origin\thttps://example.com/r.git", run(t, env, "remote", "-v").Stdout)
	assert.Equal(t, 2, run(t, env, "remote", "rm", "origin").ExitCode)

	assert.Equal(t, command.OK("push origin: done"), run(t, env, "push"))
	assert.Equal(t, command.OK("pull origin: done"), run(t, env, "pull", "origin"))
	assert.Equal(t, command.OK("fetch origin: done"), run(t, env, "fetch"))

	repo.OpErrors["Fetch"] = &vcs.RemoteError{Op: "fetch", Remote: "origin", Cause: errors.New("connection refused")}
	res = run(t, env, "fetch")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "connection refused")
}

func TestGit_Stash(t *testing.T) {
	repo := mocks.NewMockRepository().WithStatus(
		vcs.FileStatus{Path: "a.go", Staging: vcs.StatusUnmodified, Worktree: vcs.StatusModified},
	)
	env := newEnv(t, repo)

	res := run(t, env, "stash", "-m", "wip parser")
	assert.Equal(t, command.OK("Saved working directory and index state On main: wip parser"), res)
	assert.Equal(t, "stash@{0}: On main: wip parser", run(t, env, "stash", "list").Stdout)

	res = run(t, env, "stash")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "no local changes to save")

	res = run(t, env, "stash", "pop")
	assert.Equal(t, command.OK("Restored 1 file(s) from stash: wip parser"), res)

	assert.Equal(t, 2, run(t, env, "stash", "drop").ExitCode)
}

func TestGit_Cancelled(t *testing.T) {
	env := newEnv(t, mocks.NewMockRepository())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Git().Run(ctx, env, []string{"status"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGit_ToolSchemaRejectsUnknownSubcommand(t *testing.T) {
	tools := Git().Tools()
	require.Len(t, tools, 1)
	_, err := tools[0].Bind(map[string]any{"subcommand": "rebase"})
	var ve *command.ValidationError
	require.ErrorAs(t, err, &ve)
}
