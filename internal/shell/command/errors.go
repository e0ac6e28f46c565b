package command

import (
	"fmt"
	"strings"
)

// ValidationError is returned when arguments do not satisfy a tool schema.
// Nothing has been executed when it is returned.
type ValidationError struct {
	Tool     string
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(e.Messages, "; "))
}

func (e *ValidationError) InvalidInput() bool { return true }

// DecodeError is returned when validated arguments cannot be decoded into
// the typed argument struct.
type DecodeError struct {
	Tool  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode arguments for %s: %v", e.Tool, e.Cause)
}

func (e *DecodeError) InvalidInput() bool { return true }
func (e *DecodeError) Unwrap() error      { return e.Cause }
