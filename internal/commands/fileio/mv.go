package fileio

import (
	"context"
	"path"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// MvArgs are the typed arguments of mv.
type MvArgs struct {
	Sources     []string `json:"sources" jsonschema:"minItems=1" jsonschema_description:"Paths to move."`
	Destination string   `json:"destination" jsonschema:"minLength=1" jsonschema_description:"Target path, or an existing directory to move the sources into."`
}

// Mv moves or renames files and directories.
func Mv() *command.Dual[MvArgs] {
	return command.NewDual(command.Spec[MvArgs]{
		Name:        "mv",
		Description: "Move or rename files and directories",
		Usage:       "mv SOURCE... DEST",
		Example:     "mv notes.txt docs/",
		Parse:       parseMv,
		Execute:     runMv,
	})
}

func parseMv(args []string) (MvArgs, error) {
	fs := cmdutil.NewFlags("mv")
	if err := cmdutil.Parse(fs, args); err != nil {
		return MvArgs{}, err
	}
	rest := cmdutil.Args(fs)
	if len(rest) < 2 {
		return MvArgs{}, cmdutil.Usagef("missing destination operand")
	}
	return MvArgs{Sources: rest[:len(rest)-1], Destination: rest[len(rest)-1]}, nil
}

func runMv(ctx context.Context, env *command.Env, a MvArgs) (command.Result, error) {
	dest := env.Resolve(a.Destination)
	destInfo, err := env.FS.Stat(dest)
	intoDir := err == nil && destInfo.IsDir()
	if len(a.Sources) > 1 && !intoDir {
		return command.Fail("mv: target %s is not a directory", a.Destination), nil
	}

	var (
		changed []string
		errs    []string
	)
	for _, src := range a.Sources {
		from := env.Resolve(src)
		to := dest
		if intoDir {
			to = path.Join(dest, path.Base(from))
		}
		if err := move(env.FS, from, to); err != nil {
			errs = append(errs, cmdutil.Message("mv", err))
			continue
		}
		changed = append(changed, from, to)
	}
	res := command.OK("").Changed(changed...)
	if len(errs) > 0 {
		res.ExitCode = command.ExitFailure
		res.Stderr = strings.Join(errs, "\n")
	}
	return res, nil
}

func move(fs vfs.FileSystem, from, to string) error {
	if from == to {
		return &SameFileError{Path: from}
	}
	info, err := fs.Stat(from)
	if err != nil {
		return err
	}
	if info.IsDir() && strings.HasPrefix(to, from+"/") {
		return cmdutil.Usagef("cannot move %s into itself", from)
	}
	if existing, err := fs.Stat(to); err == nil && existing.IsDir() != info.IsDir() {
		if existing.IsDir() {
			return &vfs.IsDirectoryError{Path: to}
		}
		return &vfs.NotDirectoryError{Path: to}
	}
	if err := ensureParent(fs, to); err != nil {
		return err
	}
	return fs.Rename(from, to)
}

func ensureParent(fs vfs.FileSystem, p string) error {
	parent, err := fs.Stat(path.Dir(p))
	if err != nil {
		return err
	}
	if !parent.IsDir() {
		return &vfs.NotDirectoryError{Path: path.Dir(p)}
	}
	return nil
}

