// Package vcs is the version-control capability used by the git and
// checkpoint commands. Paths are repository relative and slash separated.
package vcs

import (
	"context"
	"fmt"
	"time"
)

// ResetMode selects how much of the tree a reset touches.
type ResetMode int

const (
	ResetMixed ResetMode = iota
	ResetSoft
	ResetHard
)

// Status codes, matching git's short format letters.
const (
	StatusUnmodified byte = ' '
	StatusUntracked  byte = '?'
	StatusModified   byte = 'M'
	StatusAdded      byte = 'A'
	StatusDeleted    byte = 'D'
	StatusRenamed    byte = 'R'
	StatusCopied     byte = 'C'
	StatusUnmerged   byte = 'U'
)

// FileStatus is one line of `git status --short`.
type FileStatus struct {
	Path     string
	Staging  byte
	Worktree byte
}

// Short renders the entry in porcelain short format.
func (s FileStatus) Short() string {
	return fmt.Sprintf("%c%c %s", s.Staging, s.Worktree, s.Path)
}

// Untracked reports whether the file is unknown to the index.
func (s FileStatus) Untracked() bool {
	return s.Staging == StatusUntracked
}

// Staged reports whether the index differs from HEAD for this file.
func (s FileStatus) Staged() bool {
	return s.Staging != StatusUnmodified && s.Staging != StatusUntracked
}

// Commit is a summary of a commit object.
type Commit struct {
	Hash    string
	Author  string
	Email   string
	When    time.Time
	Message string
}

// ShortHash returns the abbreviated hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Subject returns the first line of the message.
func (c Commit) Subject() string {
	for i := 0; i < len(c.Message); i++ {
		if c.Message[i] == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}

// Remote is a configured remote and its first URL.
type Remote struct {
	Name string
	URL  string
}

// StashEntry describes one saved stash.
type StashEntry struct {
	Branch  string
	Message string
	Files   []string
}

// Repository is the git capability handed to commands.
type Repository interface {
	Status(ctx context.Context) ([]FileStatus, error)
	Add(ctx context.Context, paths ...string) error
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string) (Commit, error)
	Log(ctx context.Context, limit int) ([]Commit, error)

	Branches(ctx context.Context) ([]string, error)
	CurrentBranch(ctx context.Context) (string, error)
	CreateBranch(ctx context.Context, name string) error
	DeleteBranch(ctx context.Context, name string) error
	Checkout(ctx context.Context, target string, create bool) error

	Reset(ctx context.Context, target string, mode ResetMode) error
	// Diff compares the tree at from ("" for HEAD) with the working tree,
	// restricted to paths when given.
	Diff(ctx context.Context, from string, paths ...string) (string, error)

	Tags(ctx context.Context) ([]string, error)
	CreateTag(ctx context.Context, name string) error
	DeleteTag(ctx context.Context, name string) error

	Remotes(ctx context.Context) ([]Remote, error)
	AddRemote(ctx context.Context, name, url string) error
	Push(ctx context.Context, remote string) error
	Pull(ctx context.Context, remote string) error
	Fetch(ctx context.Context, remote string) error

	StashPush(ctx context.Context, message string) (StashEntry, error)
	StashPop(ctx context.Context) (StashEntry, error)
	StashList(ctx context.Context) ([]StashEntry, error)
}
