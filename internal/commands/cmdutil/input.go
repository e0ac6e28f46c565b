package cmdutil

import (
	"errors"
	"strings"

	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// ReadText reads a file as text, refusing directories, binary content and
// files above the configured size limit.
func ReadText(env *command.Env, path string) (string, error) {
	abs := env.Resolve(path)
	info, err := env.FS.Stat(abs)
	if err != nil {
		return "", OperandError(path, err)
	}
	if info.IsDir() {
		return "", &vfs.IsDirectoryError{Path: path}
	}
	if limit := env.Tools().MaxFileSize; limit > 0 && info.Size() > limit {
		return "", &TooLargeError{Path: path, Size: info.Size(), Limit: limit}
	}
	data, err := env.FS.ReadFile(abs)
	if err != nil {
		return "", OperandError(path, err)
	}
	if vfs.IsBinaryContent(data) {
		return "", &BinaryFileError{Path: path}
	}
	return string(data), nil
}

// OperandError relabels a filesystem error with the path as the user typed it.
func OperandError(path string, err error) error {
	if vfs.IsMissing(err) {
		return &vfs.FileMissingError{Path: path}
	}
	var ioe *vfs.IOError
	if errors.As(err, &ioe) {
		return &vfs.IOError{Op: ioe.Op, Path: path, Cause: ioe.Cause}
	}
	return err
}

// ReadInput concatenates the named files, or returns stdin when no path is
// given. "-" also names stdin.
func ReadInput(env *command.Env, paths []string) (string, error) {
	if len(paths) == 0 {
		return env.StdinText(), nil
	}
	var b strings.Builder
	for _, p := range paths {
		if p == "-" {
			b.WriteString(env.StdinText())
			continue
		}
		text, err := ReadText(env, p)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// Lines is vfs.SplitLines over ReadInput.
func Lines(env *command.Env, paths []string) ([]string, error) {
	text, err := ReadInput(env, paths)
	if err != nil {
		return nil, err
	}
	return vfs.SplitLines(text), nil
}
