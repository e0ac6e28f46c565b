package grep

import "fmt"

// PatternError is returned when a pattern does not compile.
type PatternError struct {
	Cause error
}

func (e *PatternError) Error() string      { return fmt.Sprintf("invalid pattern: %v", e.Cause) }
func (e *PatternError) InvalidInput() bool { return true }
func (e *PatternError) Unwrap() error      { return e.Cause }
