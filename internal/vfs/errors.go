package vfs

import (
	"errors"
	"fmt"
	"os"
)

// FileMissingError is returned when a path does not exist.
type FileMissingError struct {
	Path string
}

func (e *FileMissingError) Error() string {
	return fmt.Sprintf("%s: No such file or directory", e.Path)
}
func (e *FileMissingError) FileMissing() bool { return true }
func (e *FileMissingError) Unwrap() error     { return os.ErrNotExist }

// IsDirectoryError is returned when a file operation targets a directory.
type IsDirectoryError struct {
	Path string
}

func (e *IsDirectoryError) Error() string {
	return fmt.Sprintf("%s: Is a directory", e.Path)
}
func (e *IsDirectoryError) InvalidInput() bool { return true }

// NotDirectoryError is returned when a directory operation targets a file.
type NotDirectoryError struct {
	Path string
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("%s: Not a directory", e.Path)
}
func (e *NotDirectoryError) InvalidInput() bool { return true }

// DirectoryNotEmptyError is returned by Remove on a populated directory.
type DirectoryNotEmptyError struct {
	Path string
}

func (e *DirectoryNotEmptyError) Error() string {
	return fmt.Sprintf("%s: Directory not empty", e.Path)
}
func (e *DirectoryNotEmptyError) InvalidInput() bool { return true }

// IOError wraps any other failure from the backing store.
type IOError struct {
	Op    string
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}
func (e *IOError) IOError() bool { return true }
func (e *IOError) Unwrap() error { return e.Cause }

// IsMissing reports whether err signals a missing path.
func IsMissing(err error) bool {
	var m interface{ FileMissing() bool }
	return errors.As(err, &m) && m.FileMissing()
}
