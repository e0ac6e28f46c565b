package fileio

import "fmt"

// ExistsError is returned when a target path is already taken.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("%s: File exists", e.Path)
}
func (e *ExistsError) InvalidInput() bool { return true }

// RecursiveRequiredError is returned when a directory is given to rm or cp
// without -r.
type RecursiveRequiredError struct {
	Op   string
	Path string
}

func (e *RecursiveRequiredError) Error() string {
	return fmt.Sprintf("%s: is a directory (use -r to %s it)", e.Path, e.Op)
}
func (e *RecursiveRequiredError) InvalidInput() bool { return true }

// SameFileError is returned when source and destination are the same path.
type SameFileError struct {
	Path string
}

func (e *SameFileError) Error() string {
	return fmt.Sprintf("%s: source and destination are the same", e.Path)
}
func (e *SameFileError) InvalidInput() bool { return true }
