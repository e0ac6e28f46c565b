package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/util"
)

// StashPush saves local changes to tracked files and resets them to HEAD.
// go-git has no stash support, so entries live in memory for the session.
func (g *GoGit) StashPush(ctx context.Context, message string) (StashEntry, error) {
	st, err := g.Status(ctx)
	if err != nil {
		return StashEntry{}, err
	}
	if _, err := g.head(); err != nil {
		return StashEntry{}, err
	}
	branch, err := g.CurrentBranch(ctx)
	if err != nil {
		return StashEntry{}, err
	}

	s := stash{files: map[string][]byte{}, deleted: map[string]bool{}}
	for _, fs := range st {
		if fs.Untracked() {
			continue
		}
		data, err := util.ReadFile(g.wt, fs.Path)
		switch {
		case err == nil:
			s.files[fs.Path] = data
		case errors.Is(err, os.ErrNotExist):
			s.deleted[fs.Path] = true
		default:
			return StashEntry{}, &GitError{Op: "stash", Cause: err}
		}
		s.entry.Files = append(s.entry.Files, fs.Path)
	}
	if len(s.entry.Files) == 0 {
		return StashEntry{}, ErrNothingToStash
	}
	if message == "" {
		message = "WIP"
	}
	s.entry.Branch = branch
	s.entry.Message = message

	if err := g.Reset(ctx, "HEAD", ResetHard); err != nil {
		return StashEntry{}, err
	}

	g.mu.Lock()
	g.stashes = append(g.stashes, s)
	g.mu.Unlock()
	return s.entry, nil
}

// StashPop restores the most recent stash entry onto the working tree.
func (g *GoGit) StashPop(ctx context.Context) (StashEntry, error) {
	if err := ctx.Err(); err != nil {
		return StashEntry{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.stashes) == 0 {
		return StashEntry{}, ErrNoStash
	}
	s := g.stashes[len(g.stashes)-1]
	for path, data := range s.files {
		if err := util.WriteFile(g.wt, path, data, 0o644); err != nil {
			return StashEntry{}, &GitError{Op: "stash", Cause: fmt.Errorf("restore %s: %w", path, err)}
		}
	}
	for path := range s.deleted {
		if err := g.wt.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return StashEntry{}, &GitError{Op: "stash", Cause: fmt.Errorf("restore %s: %w", path, err)}
		}
	}
	g.stashes = g.stashes[:len(g.stashes)-1]
	return s.entry, nil
}

// StashList returns stash entries newest first.
func (g *GoGit) StashList(ctx context.Context) ([]StashEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]StashEntry, 0, len(g.stashes))
	for i := len(g.stashes) - 1; i >= 0; i-- {
		out = append(out, g.stashes[i].entry)
	}
	return out, nil
}
