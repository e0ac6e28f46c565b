package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/sirupsen/logrus"
)

// Signature identifies the author of commits made through the shell.
type Signature struct {
	Name  string
	Email string
}

// GitDir is the repository directory inside the worktree.
const GitDir = git.GitDirName

// GoGit implements Repository with go-git. The worktree is the billy
// filesystem root and objects live in its .git directory.
type GoGit struct {
	repo   *git.Repository
	wt     billy.Filesystem
	author Signature
	now    func() time.Time

	mu      sync.Mutex
	stashes []stash
}

type stash struct {
	entry   StashEntry
	files   map[string][]byte
	deleted map[string]bool
}

// OpenOrInit opens the repository stored in fs, creating one if absent.
func OpenOrInit(fs billy.Filesystem, author Signature) (*GoGit, error) {
	if fs == nil {
		panic("fs is required")
	}
	dot, err := fs.Chroot(git.GitDirName)
	if err != nil {
		return nil, &GitError{Op: "init", Cause: err}
	}
	st := filesystem.NewStorage(dot, cache.NewObjectLRUDefault())

	repo, err := git.Open(st, fs)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		logrus.Debug("no repository found, initialising")
		repo, err = git.Init(st, fs)
	}
	if err != nil {
		return nil, &GitError{Op: "init", Cause: err}
	}
	return &GoGit{repo: repo, wt: fs, author: author, now: time.Now}, nil
}

// SetClock replaces the commit timestamp source.
func (g *GoGit) SetClock(now func() time.Time) {
	g.now = now
}

func (g *GoGit) worktree() (*git.Worktree, error) {
	w, err := g.repo.Worktree()
	if err != nil {
		return nil, &GitError{Op: "worktree", Cause: err}
	}
	return w, nil
}

func (g *GoGit) head() (*plumbing.Reference, error) {
	ref, err := g.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, &NoCommitsError{}
	}
	if err != nil {
		return nil, &GitError{Op: "head", Cause: err}
	}
	return ref, nil
}

func (g *GoGit) resolve(rev string) (plumbing.Hash, error) {
	if rev == "" || rev == "HEAD" {
		ref, err := g.head()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return ref.Hash(), nil
	}
	h, err := g.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, &RevisionError{Revision: rev, Cause: err}
	}
	return *h, nil
}

func (g *GoGit) Status(ctx context.Context) ([]FileStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, err := g.worktree()
	if err != nil {
		return nil, err
	}
	st, err := w.Status()
	if err != nil {
		return nil, &GitError{Op: "status", Cause: err}
	}
	out := make([]FileStatus, 0, len(st))
	for path, fs := range st {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		out = append(out, FileStatus{Path: path, Staging: byte(fs.Staging), Worktree: byte(fs.Worktree)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (g *GoGit) Add(ctx context.Context, paths ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w, err := g.worktree()
	if err != nil {
		return err
	}
	for _, p := range paths {
		if p == "" || p == "." {
			if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
				return &GitError{Op: "add", Cause: err}
			}
			continue
		}
		if _, err := w.Add(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &RevisionError{Revision: p, Cause: fmt.Errorf("pathspec %q did not match any files", p)}
			}
			return &GitError{Op: "add", Cause: err}
		}
	}
	return nil
}

func (g *GoGit) AddAll(ctx context.Context) error {
	return g.Add(ctx, ".")
}

func (g *GoGit) Commit(ctx context.Context, message string) (Commit, error) {
	st, err := g.Status(ctx)
	if err != nil {
		return Commit{}, err
	}
	staged := false
	for _, s := range st {
		if s.Staged() {
			staged = true
			break
		}
	}
	if !staged {
		return Commit{}, &NothingToCommitError{}
	}

	w, err := g.worktree()
	if err != nil {
		return Commit{}, err
	}
	hash, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: g.author.Name, Email: g.author.Email, When: g.now()},
	})
	if err != nil {
		return Commit{}, &GitError{Op: "commit", Cause: err}
	}
	c, err := g.repo.CommitObject(hash)
	if err != nil {
		return Commit{}, &GitError{Op: "commit", Cause: err}
	}
	return toCommit(c), nil
}

func toCommit(c *object.Commit) Commit {
	return Commit{
		Hash:    c.Hash.String(),
		Author:  c.Author.Name,
		Email:   c.Author.Email,
		When:    c.Author.When,
		Message: strings.TrimRight(c.Message, "\n"),
	}
}

// Log returns up to limit commits reachable from HEAD, newest first. A
// limit <= 0 means no limit.
func (g *GoGit) Log(ctx context.Context, limit int) ([]Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ref, err := g.head()
	if err != nil {
		return nil, err
	}
	iter, err := g.repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, &GitError{Op: "log", Cause: err}
	}
	defer iter.Close()

	var out []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(out) >= limit {
			return storer.ErrStop
		}
		out = append(out, toCommit(c))
		return nil
	})
	if err != nil {
		return nil, &GitError{Op: "log", Cause: err}
	}
	return out, nil
}

func (g *GoGit) Branches(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	iter, err := g.repo.Branches()
	if err != nil {
		return nil, &GitError{Op: "branch", Cause: err}
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, &GitError{Op: "branch", Cause: err}
	}
	sort.Strings(names)
	return names, nil
}

// CurrentBranch returns the branch HEAD points at, or "HEAD" when detached.
func (g *GoGit) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref, err := g.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", &GitError{Op: "branch", Cause: err}
	}
	if ref.Type() == plumbing.SymbolicReference {
		return ref.Target().Short(), nil
	}
	return "HEAD", nil
}

func (g *GoGit) CreateBranch(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ref, err := g.head()
	if err != nil {
		return err
	}
	refName := plumbing.NewBranchReferenceName(name)
	if _, err := g.repo.Reference(refName, false); err == nil {
		return &BranchExistsError{Name: name}
	}
	if err := g.repo.Storer.SetReference(plumbing.NewHashReference(refName, ref.Hash())); err != nil {
		return &GitError{Op: "branch", Cause: err}
	}
	return nil
}

func (g *GoGit) DeleteBranch(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	current, err := g.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current == name {
		return &GitError{Op: "branch", Cause: fmt.Errorf("cannot delete branch %q checked out", name)}
	}
	refName := plumbing.NewBranchReferenceName(name)
	if _, err := g.repo.Reference(refName, false); err != nil {
		return &RevisionError{Revision: name, Cause: err}
	}
	if err := g.repo.Storer.RemoveReference(refName); err != nil {
		return &GitError{Op: "branch", Cause: err}
	}
	return nil
}

// Checkout switches to a branch, or detaches HEAD at a commit when target
// is not a branch name. With create, a new branch is made at HEAD first.
// Uncommitted changes to tracked files block the switch.
func (g *GoGit) Checkout(ctx context.Context, target string, create bool) error {
	st, err := g.Status(ctx)
	if err != nil {
		return err
	}
	for _, s := range st {
		if !s.Untracked() {
			return &GitError{Op: "checkout", Cause: errors.New("your local changes would be overwritten; commit or stash them first")}
		}
	}
	w, err := g.worktree()
	if err != nil {
		return err
	}
	refName := plumbing.NewBranchReferenceName(target)
	opts := &git.CheckoutOptions{Branch: refName, Create: create}
	if create {
		if _, err := g.head(); err != nil {
			return err
		}
		if _, err := g.repo.Reference(refName, false); err == nil {
			return &BranchExistsError{Name: target}
		}
	} else if _, err := g.repo.Reference(refName, false); err != nil {
		h, rerr := g.resolve(target)
		if rerr != nil {
			return rerr
		}
		opts = &git.CheckoutOptions{Hash: h}
	}
	return g.keepUntracked("checkout", func() error { return w.Checkout(opts) })
}

func (g *GoGit) Reset(ctx context.Context, target string, mode ResetMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h, err := g.resolve(target)
	if err != nil {
		return err
	}
	w, err := g.worktree()
	if err != nil {
		return err
	}
	opts := &git.ResetOptions{Commit: h}
	switch mode {
	case ResetSoft:
		opts.Mode = git.SoftReset
	case ResetHard:
		opts.Mode = git.HardReset
		return g.keepUntracked("reset", func() error { return w.Reset(opts) })
	default:
		opts.Mode = git.MixedReset
	}
	if err := w.Reset(opts); err != nil {
		return &GitError{Op: "reset", Cause: err}
	}
	return nil
}

// keepUntracked snapshots every file the index does not know about, runs
// fn, then restores any of them fn removed. go-git's hard reset deletes
// untracked files, which git itself never does.
func (g *GoGit) keepUntracked(op string, fn func() error) error {
	idx, err := g.repo.Storer.Index()
	if err != nil {
		return &GitError{Op: op, Cause: err}
	}
	tracked := make(map[string]bool, len(idx.Entries))
	for _, e := range idx.Entries {
		tracked[e.Name] = true
	}

	saved := map[string][]byte{}
	err = util.Walk(g.wt, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(filepath.ToSlash(path), "/")
		if info.IsDir() {
			if rel == git.GitDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if tracked[rel] {
			return nil
		}
		data, err := util.ReadFile(g.wt, path)
		if err != nil {
			return err
		}
		saved[rel] = data
		return nil
	})
	if err != nil {
		return &GitError{Op: op, Cause: err}
	}

	if err := fn(); err != nil {
		return &GitError{Op: op, Cause: err}
	}

	for rel, data := range saved {
		if _, err := g.wt.Stat(rel); err == nil {
			continue
		}
		if err := util.WriteFile(g.wt, rel, data, 0o644); err != nil {
			return &GitError{Op: op, Cause: err}
		}
	}
	return nil
}

func (g *GoGit) Tags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	iter, err := g.repo.Tags()
	if err != nil {
		return nil, &GitError{Op: "tag", Cause: err}
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, &GitError{Op: "tag", Cause: err}
	}
	sort.Strings(names)
	return names, nil
}

func (g *GoGit) CreateTag(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ref, err := g.head()
	if err != nil {
		return err
	}
	if _, err := g.repo.CreateTag(name, ref.Hash(), nil); err != nil {
		return &GitError{Op: "tag", Cause: err}
	}
	return nil
}

func (g *GoGit) DeleteTag(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.repo.DeleteTag(name); err != nil {
		if errors.Is(err, git.ErrTagNotFound) {
			return &RevisionError{Revision: name, Cause: err}
		}
		return &GitError{Op: "tag", Cause: err}
	}
	return nil
}

func (g *GoGit) Remotes(ctx context.Context) ([]Remote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	remotes, err := g.repo.Remotes()
	if err != nil {
		return nil, &GitError{Op: "remote", Cause: err}
	}
	out := make([]Remote, 0, len(remotes))
	for _, r := range remotes {
		cfg := r.Config()
		rm := Remote{Name: cfg.Name}
		if len(cfg.URLs) > 0 {
			rm.URL = cfg.URLs[0]
		}
		out = append(out, rm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (g *GoGit) AddRemote(ctx context.Context, name, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := g.repo.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: []string{url}}); err != nil {
		return &GitError{Op: "remote", Cause: err}
	}
	return nil
}

func (g *GoGit) checkRemote(name string) error {
	if _, err := g.repo.Remote(name); err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return &RemoteMissingError{Name: name}
		}
		return &GitError{Op: "remote", Cause: err}
	}
	return nil
}

func remoteResult(op, remote string, err error) error {
	if err == nil || errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return &RemoteError{Op: op, Remote: remote, Cause: err}
}

func (g *GoGit) Push(ctx context.Context, remote string) error {
	if err := g.checkRemote(remote); err != nil {
		return err
	}
	return remoteResult("push", remote, g.repo.PushContext(ctx, &git.PushOptions{RemoteName: remote}))
}

func (g *GoGit) Pull(ctx context.Context, remote string) error {
	if err := g.checkRemote(remote); err != nil {
		return err
	}
	w, err := g.worktree()
	if err != nil {
		return err
	}
	return remoteResult("pull", remote, w.PullContext(ctx, &git.PullOptions{RemoteName: remote}))
}

func (g *GoGit) Fetch(ctx context.Context, remote string) error {
	if err := g.checkRemote(remote); err != nil {
		return err
	}
	return remoteResult("fetch", remote, g.repo.FetchContext(ctx, &git.FetchOptions{RemoteName: remote}))
}
