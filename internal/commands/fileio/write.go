package fileio

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// WriteArgs are the typed arguments of write.
type WriteArgs struct {
	Path    string  `json:"path" jsonschema:"minLength=1" jsonschema_description:"File to write. Parent directories are created."`
	Content *string `json:"content,omitempty" jsonschema_description:"Exact content to write. When omitted, piped input is written."`
	Append  bool    `json:"append,omitempty" jsonschema_description:"Append instead of replacing the file."`
}

// Write writes content to a file. On the shell the content is the remaining
// arguments joined by spaces, or piped input when there are none.
func Write() *command.Dual[WriteArgs] {
	return command.NewDual(command.Spec[WriteArgs]{
		Name:        "write",
		Description: "Write content to a file",
		Usage:       "write [-a] PATH [CONTENT...]",
		Example:     `write notes.txt "first line"`,
		Parse:       parseWrite,
		Execute:     runWrite,
	})
}

func parseWrite(args []string) (WriteArgs, error) {
	var a WriteArgs
	fs := cmdutil.NewFlags("write")
	fs.BoolVarP(&a.Append, "append", "a", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return a, err
	}
	rest := cmdutil.Args(fs)
	if len(rest) == 0 {
		return a, cmdutil.Usagef("missing file operand")
	}
	a.Path = rest[0]
	if len(rest) > 1 {
		content := strings.Join(rest[1:], " ")
		a.Content = &content
	}
	return a, nil
}

func runWrite(ctx context.Context, env *command.Env, a WriteArgs) (command.Result, error) {
	content := env.StdinText()
	if a.Content != nil {
		content = *a.Content
	}
	abs := env.Resolve(a.Path)
	if a.Append {
		existing, err := env.FS.ReadFile(abs)
		if err == nil {
			content = string(existing) + content
		} else if !vfs.IsMissing(err) {
			return cmdutil.Failure("write", err), nil
		}
	}
	if limit := env.Tools().MaxFileSize; limit > 0 && int64(len(content)) > limit {
		return cmdutil.Failure("write", &cmdutil.TooLargeError{Path: a.Path, Size: int64(len(content)), Limit: limit}), nil
	}
	if err := env.FS.WriteFile(abs, []byte(content)); err != nil {
		return cmdutil.Failure("write", err), nil
	}
	return command.OK(fmt.Sprintf("Wrote %d bytes to %s", len(content), a.Path)).Changed(abs), nil
}
