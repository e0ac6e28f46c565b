package vfs

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// GitignoreReadError is returned when .gitignore exists but cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }

// IgnoreMatcher matches virtual paths against the root .gitignore using
// go-git's gitignore implementation.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher loads /.gitignore from fs. A missing file yields a
// matcher that never ignores.
func NewIgnoreMatcher(fs FileSystem) (*IgnoreMatcher, error) {
	if fs == nil {
		panic("fs is required")
	}
	const gitignorePath = "/.gitignore"

	data, err := fs.ReadFile(gitignorePath)
	if err != nil {
		if IsMissing(err) {
			return &IgnoreMatcher{}, nil
		}
		return nil, &GitignoreReadError{Path: gitignorePath, Cause: err}
	}

	var patterns []gitignore.Pattern
	for _, line := range SplitLines(string(data)) {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return &IgnoreMatcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ShouldIgnore reports whether the absolute virtual path is ignored.
// The .git directory is always ignored.
func (m *IgnoreMatcher) ShouldIgnore(path string, isDir bool) bool {
	segments := Segments(path)
	if len(segments) == 0 {
		return false
	}
	for _, s := range segments {
		if s == ".git" {
			return true
		}
	}
	if m == nil || m.matcher == nil {
		return false
	}
	return m.matcher.Match(segments, isDir)
}
