package executor

import (
	"fmt"
)

// RedirectError is reported when a redirect target cannot be written. It
// replaces the otherwise successful result of the command.
type RedirectError struct {
	Path  string
	Cause error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("failed to redirect output to %s: %v", e.Path, e.Cause)
}

func (e *RedirectError) IOError() bool { return true }
func (e *RedirectError) Unwrap() error { return e.Cause }
