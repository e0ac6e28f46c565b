package fileio

import (
	"context"
	"path"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// MkdirArgs are the typed arguments of mkdir.
type MkdirArgs struct {
	Paths   []string `json:"paths" jsonschema:"minItems=1" jsonschema_description:"Directories to create."`
	Parents bool     `json:"parents,omitempty" jsonschema_description:"Create missing parents and ignore existing directories."`
}

// Mkdir creates directories.
func Mkdir() *command.Dual[MkdirArgs] {
	return command.NewDual(command.Spec[MkdirArgs]{
		Name:        "mkdir",
		Description: "Create directories",
		Usage:       "mkdir [-p] DIR...",
		Example:     "mkdir -p src/internal/util",
		Parse:       parseMkdir,
		Execute:     runMkdir,
	})
}

func parseMkdir(args []string) (MkdirArgs, error) {
	var a MkdirArgs
	fs := cmdutil.NewFlags("mkdir")
	fs.BoolVarP(&a.Parents, "parents", "p", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return a, err
	}
	a.Paths = cmdutil.Args(fs)
	if len(a.Paths) == 0 {
		return a, cmdutil.Usagef("missing operand")
	}
	return a, nil
}

func runMkdir(ctx context.Context, env *command.Env, a MkdirArgs) (command.Result, error) {
	var (
		created []string
		errs    []string
	)
	for _, p := range a.Paths {
		abs := env.Resolve(p)
		if err := mkdir(env.FS, abs, a.Parents); err != nil {
			errs = append(errs, cmdutil.Message("mkdir", err))
			continue
		}
		created = append(created, abs)
	}
	res := command.OK("").Changed(created...)
	if len(errs) > 0 {
		res.ExitCode = command.ExitFailure
		res.Stderr = strings.Join(errs, "\n")
	}
	return res, nil
}

func mkdir(fs vfs.FileSystem, abs string, parents bool) error {
	info, err := fs.Stat(abs)
	switch {
	case err == nil && info.IsDir() && parents:
		return nil
	case err == nil:
		return &ExistsError{Path: abs}
	case !vfs.IsMissing(err):
		return err
	}
	if !parents {
		parent, err := fs.Stat(path.Dir(abs))
		if err != nil {
			return err
		}
		if !parent.IsDir() {
			return &vfs.NotDirectoryError{Path: path.Dir(abs)}
		}
	}
	return fs.MkdirAll(abs)
}
