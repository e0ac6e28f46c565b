package vcs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*GoGit, billy.Filesystem) {
	t.Helper()
	fs := memfs.New()
	repo, err := OpenOrInit(fs, Signature{Name: "tester", Email: "tester@example.com"})
	require.NoError(t, err)
	repo.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return repo, fs
}

func writeFile(t *testing.T, fs billy.Filesystem, path, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644))
}

func readFile(t *testing.T, fs billy.Filesystem, path string) string {
	t.Helper()
	data, err := util.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func commitAll(t *testing.T, repo *GoGit, msg string) Commit {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.AddAll(ctx))
	c, err := repo.Commit(ctx, msg)
	require.NoError(t, err)
	return c
}

func TestOpenOrInit_ReopensExisting(t *testing.T) {
	repo, fs := newTestRepo(t)
	writeFile(t, fs, "a.txt", "a")
	first := commitAll(t, repo, "first")

	reopened, err := OpenOrInit(fs, Signature{Name: "x", Email: "x@y"})
	require.NoError(t, err)

	log, err := reopened.Log(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, first.Hash, log[0].Hash)
}

func TestStatus_UntrackedAndStaged(t *testing.T) {
	repo, fs := newTestRepo(t)
	ctx := context.Background()
	writeFile(t, fs, "a.txt", "a")
	writeFile(t, fs, "b.txt", "b")

	require.NoError(t, repo.Add(ctx, "a.txt"))
	st, err := repo.Status(ctx)
	require.NoError(t, err)

	require.Len(t, st, 2)
	assert.Equal(t, "A  a.txt", st[0].Short())
	assert.Equal(t, "?? b.txt", st[1].Short())
	assert.True(t, st[0].Staged())
	assert.True(t, st[1].Untracked())
}

func TestCommit_NothingStaged(t *testing.T) {
	repo, fs := newTestRepo(t)
	writeFile(t, fs, "a.txt", "a")

	_, err := repo.Commit(context.Background(), "empty")

	var nothing *NothingToCommitError
	assert.True(t, errors.As(err, &nothing))
}

func TestCommitAndLog(t *testing.T) {
	repo, fs := newTestRepo(t)
	writeFile(t, fs, "a.txt", "a")
	commitAll(t, repo, "first")
	writeFile(t, fs, "a.txt", "b")
	second := commitAll(t, repo, "second\n\nbody")

	log, err := repo.Log(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, second.Hash, log[0].Hash)
	assert.Equal(t, "second", log[0].Subject())
	assert.Equal(t, "tester", log[0].Author)
	assert.Len(t, log[0].ShortHash(), 7)

	limited, err := repo.Log(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestLog_EmptyRepository(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Log(context.Background(), 0)

	var noCommits *NoCommitsError
	assert.True(t, errors.As(err, &noCommits))
}

func TestBranches_CreateCheckoutDelete(t *testing.T) {
	repo, fs := newTestRepo(t)
	ctx := context.Background()
	writeFile(t, fs, "a.txt", "main")
	commitAll(t, repo, "first")

	current, err := repo.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "master", current)

	require.NoError(t, repo.Checkout(ctx, "feature", true))
	writeFile(t, fs, "a.txt", "feature")
	commitAll(t, repo, "feature work")

	branches, err := repo.Branches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"feature", "master"}, branches)

	require.NoError(t, repo.Checkout(ctx, "master", false))
	assert.Equal(t, "main", readFile(t, fs, "a.txt"))

	var exists *BranchExistsError
	assert.True(t, errors.As(repo.CreateBranch(ctx, "feature"), &exists))

	require.NoError(t, repo.DeleteBranch(ctx, "feature"))
	branches, err = repo.Branches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"master"}, branches)
}

func TestCheckout_BlockedByLocalChanges(t *testing.T) {
	repo, fs := newTestRepo(t)
	ctx := context.Background()
	writeFile(t, fs, "a.txt", "a")
	commitAll(t, repo, "first")
	require.NoError(t, repo.CreateBranch(ctx, "other"))
	writeFile(t, fs, "a.txt", "dirty")

	err := repo.Checkout(ctx, "other", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "local changes")
	current, _ := repo.CurrentBranch(ctx)
	assert.Equal(t, "master", current)
}

func TestReset_HardKeepsUntracked(t *testing.T) {
	repo, fs := newTestRepo(t)
	ctx := context.Background()
	writeFile(t, fs, "a.txt", "one")
	first := commitAll(t, repo, "first")
	writeFile(t, fs, "a.txt", "two")
	commitAll(t, repo, "second")
	writeFile(t, fs, "notes.txt", "scratch")

	require.NoError(t, repo.Reset(ctx, first.Hash, ResetHard))

	assert.Equal(t, "one", readFile(t, fs, "a.txt"))
	assert.Equal(t, "scratch", readFile(t, fs, "notes.txt"))
	log, err := repo.Log(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, log, 1)
}

func TestReset_UnknownRevision(t *testing.T) {
	repo, fs := newTestRepo(t)
	writeFile(t, fs, "a.txt", "one")
	commitAll(t, repo, "first")

	err := repo.Reset(context.Background(), "nope", ResetHard)

	var rev *RevisionError
	assert.True(t, errors.As(err, &rev))
}

func TestTags(t *testing.T) {
	repo, fs := newTestRepo(t)
	ctx := context.Background()
	writeFile(t, fs, "a.txt", "one")
	commitAll(t, repo, "first")

	require.NoError(t, repo.CreateTag(ctx, "v1.0.0"))
	tags, err := repo.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0.0"}, tags)

	require.NoError(t, repo.DeleteTag(ctx, "v1.0.0"))
	var rev *RevisionError
	assert.True(t, errors.As(repo.DeleteTag(ctx, "v1.0.0"), &rev))
}

func TestRemotes_MissingRemote(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	err := repo.Push(ctx, "origin")

	var missing *RemoteMissingError
	require.True(t, errors.As(err, &missing))
	assert.Contains(t, err.Error(), "git remote add origin")

	require.NoError(t, repo.AddRemote(ctx, "origin", "https://example.com/repo.git"))
	remotes, err := repo.Remotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Remote{{Name: "origin", URL: "https://example.com/repo.git"}}, remotes)
}

func TestStash_PushPop(t *testing.T) {
	repo, fs := newTestRepo(t)
	ctx := context.Background()
	writeFile(t, fs, "a.txt", "one")
	commitAll(t, repo, "first")
	writeFile(t, fs, "a.txt", "changed")

	entry, err := repo.StashPush(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "WIP", entry.Message)
	assert.Equal(t, []string{"a.txt"}, entry.Files)
	assert.Equal(t, "one", readFile(t, fs, "a.txt"))

	list, err := repo.StashList(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.StashPop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "changed", readFile(t, fs, "a.txt"))

	_, err = repo.StashPop(ctx)
	assert.ErrorIs(t, err, ErrNoStash)
}

func TestStash_NothingToSave(t *testing.T) {
	repo, fs := newTestRepo(t)
	writeFile(t, fs, "a.txt", "one")
	commitAll(t, repo, "first")

	_, err := repo.StashPush(context.Background(), "msg")

	assert.ErrorIs(t, err, ErrNothingToStash)
}

func TestCancelledContext(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Status(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRefListing_CorruptPackedRefs(t *testing.T) {
	repo, fs := newTestRepo(t)
	writeFile(t, fs, "a.txt", "a")
	commitAll(t, repo, "first")
	writeFile(t, fs, ".git/packed-refs", "not a ref line with too many fields\n")

	ctx := context.Background()
	_, err := repo.Branches(ctx)
	var gitErr *GitError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, "branch", gitErr.Op)

	_, err = repo.Tags(ctx)
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, "tag", gitErr.Op)
}
