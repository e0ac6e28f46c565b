package cmdutil

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// UsageError reports malformed command arguments.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string      { return e.Message }
func (e *UsageError) InvalidInput() bool { return true }

// Usagef builds a *UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// GitUnavailableError is returned by commands that need a repository when
// none is attached to the session.
type GitUnavailableError struct{}

func (e *GitUnavailableError) Error() string {
	return "not a git repository (no repository attached to this session)"
}

// missingHint is appended to file-not-found messages.
const missingHint = " (use ls to list available paths)"

// Message renders err for stderr, prefixed by the command name. Missing
// paths carry a hint on how to discover valid ones.
func Message(name string, err error) string {
	msg := fmt.Sprintf("%s: %v", name, err)
	if vfs.IsMissing(err) {
		msg += missingHint
	}
	return msg
}

// Failure renders err as a result. Usage errors exit 2, everything else 1.
func Failure(name string, err error) command.Result {
	var ue *UsageError
	if errors.As(err, &ue) {
		return command.Result{ExitCode: command.ExitUsage, Stderr: Message(name, err)}
	}
	return command.Result{ExitCode: command.ExitFailure, Stderr: Message(name, err)}
}

// TooLargeError is returned for files above the configured size limit.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s: file too large (%d bytes, limit %d)", e.Path, e.Size, e.Limit)
}
func (e *TooLargeError) InvalidInput() bool { return true }

// BinaryFileError is returned when text is expected but the file is binary.
type BinaryFileError struct {
	Path string
}

func (e *BinaryFileError) Error() string {
	return fmt.Sprintf("%s: binary file not shown", e.Path)
}
func (e *BinaryFileError) InvalidInput() bool { return true }
