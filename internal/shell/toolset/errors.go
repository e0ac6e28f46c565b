package toolset

import "fmt"

// UnknownToolError is returned for a tool name with no route.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

func (e *UnknownToolError) InvalidInput() bool { return true }

// ArgumentsError is returned when raw tool arguments are not a JSON object.
type ArgumentsError struct {
	Tool  string
	Cause error
}

func (e *ArgumentsError) Error() string {
	return fmt.Sprintf("arguments for %s must be a JSON object: %v", e.Tool, e.Cause)
}

func (e *ArgumentsError) InvalidInput() bool { return true }
func (e *ArgumentsError) Unwrap() error      { return e.Cause }
