package vcs

import (
	"errors"
	"fmt"
)

// NoCommitsError is returned by operations that need HEAD on an empty repository.
type NoCommitsError struct{}

func (e *NoCommitsError) Error() string {
	return "your current branch does not have any commits yet"
}
func (e *NoCommitsError) InvalidInput() bool { return true }

// NothingToCommitError is returned by Commit when nothing is staged.
type NothingToCommitError struct{}

func (e *NothingToCommitError) Error() string {
	return "nothing to commit, working tree clean"
}
func (e *NothingToCommitError) InvalidInput() bool { return true }

// RevisionError is returned when a branch, tag or hash cannot be resolved.
type RevisionError struct {
	Revision string
	Cause    error
}

func (e *RevisionError) Error() string {
	return fmt.Sprintf("unknown revision %q", e.Revision)
}
func (e *RevisionError) InvalidInput() bool { return true }
func (e *RevisionError) Unwrap() error      { return e.Cause }

// BranchExistsError is returned when creating a branch that already exists.
type BranchExistsError struct {
	Name string
}

func (e *BranchExistsError) Error() string {
	return fmt.Sprintf("a branch named %q already exists", e.Name)
}
func (e *BranchExistsError) InvalidInput() bool { return true }

// RemoteMissingError is returned when a remote is not configured.
type RemoteMissingError struct {
	Name string
}

func (e *RemoteMissingError) Error() string {
	return fmt.Sprintf("remote %q does not exist (add one with 'git remote add %s <url>')", e.Name, e.Name)
}
func (e *RemoteMissingError) InvalidInput() bool { return true }

// RemoteError wraps a transport failure.
type RemoteError struct {
	Op     string
	Remote string
	Cause  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Remote, e.Cause)
}
func (e *RemoteError) IOError() bool { return true }
func (e *RemoteError) Unwrap() error { return e.Cause }

// GitError wraps any other go-git failure.
type GitError struct {
	Op    string
	Cause error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git %s: %v", e.Op, e.Cause)
}
func (e *GitError) IOError() bool { return true }
func (e *GitError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrNothingToStash = errors.New("no local changes to save")
	ErrNoStash        = errors.New("no stash entries found")
)
