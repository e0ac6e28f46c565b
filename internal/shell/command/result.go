package command

import "fmt"

// Exit codes shared by every command.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 127
)

// Result is the outcome of one command. ExitCode 0 is the only success
// signal. NewCwd and FilesChanged are deltas applied by the executor.
type Result struct {
	ExitCode     int      `json:"exit_code"`
	Stdout       string   `json:"stdout"`
	Stderr       string   `json:"stderr"`
	NewCwd       string   `json:"new_cwd,omitempty"`
	FilesChanged []string `json:"files_changed,omitempty"`
}

// OK is a successful result carrying stdout.
func OK(stdout string) Result {
	return Result{ExitCode: ExitOK, Stdout: stdout}
}

// Fail is a general failure result.
func Fail(format string, args ...any) Result {
	return Result{ExitCode: ExitFailure, Stderr: fmt.Sprintf(format, args...)}
}

// Usage is a usage error result, prefixed with the command name.
func Usage(name string, err error) Result {
	return Result{ExitCode: ExitUsage, Stderr: fmt.Sprintf("%s: %v", name, err)}
}

// NotFound is the result for a name absent from the registry.
func NotFound(name string) Result {
	return Result{ExitCode: ExitNotFound, Stderr: fmt.Sprintf("%s: command not found", name)}
}

// Changed records paths the command wrote or removed.
func (r Result) Changed(paths ...string) Result {
	r.FilesChanged = append(r.FilesChanged, paths...)
	return r
}

// Success reports whether the exit code is zero.
func (r Result) Success() bool {
	return r.ExitCode == ExitOK
}
