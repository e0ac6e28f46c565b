package fileio

import (
	"context"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// RmArgs are the typed arguments of rm.
type RmArgs struct {
	Paths     []string `json:"paths" jsonschema:"minItems=1" jsonschema_description:"Files or directories to remove."`
	Recursive bool     `json:"recursive,omitempty" jsonschema_description:"Remove directories and their contents."`
	Force     bool     `json:"force,omitempty" jsonschema_description:"Ignore missing paths."`
}

// Rm removes files and directories.
func Rm() *command.Dual[RmArgs] {
	return command.NewDual(command.Spec[RmArgs]{
		Name:        "rm",
		Description: "Remove files or directories",
		Usage:       "rm [-r] [-f] PATH...",
		Example:     "rm -rf build",
		Parse:       parseRm,
		Execute:     runRm,
	})
}

func parseRm(args []string) (RmArgs, error) {
	var a RmArgs
	fs := cmdutil.NewFlags("rm")
	fs.BoolVarP(&a.Recursive, "recursive", "r", false, "")
	fs.BoolVarP(&a.Recursive, "Recursive", "R", false, "")
	fs.BoolVarP(&a.Force, "force", "f", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return a, err
	}
	a.Paths = cmdutil.Args(fs)
	if len(a.Paths) == 0 {
		return a, cmdutil.Usagef("missing operand")
	}
	return a, nil
}

func runRm(ctx context.Context, env *command.Env, a RmArgs) (command.Result, error) {
	var (
		removed []string
		errs    []string
	)
	for _, p := range a.Paths {
		abs := env.Resolve(p)
		if abs == "/" {
			errs = append(errs, "rm: refusing to remove '/'")
			continue
		}
		if err := remove(env.FS, abs, p, a.Recursive); err != nil {
			if a.Force && vfs.IsMissing(err) {
				continue
			}
			errs = append(errs, cmdutil.Message("rm", err))
			continue
		}
		removed = append(removed, abs)
	}
	res := command.OK("").Changed(removed...)
	if len(errs) > 0 {
		res.ExitCode = command.ExitFailure
		res.Stderr = strings.Join(errs, "\n")
	}
	return res, nil
}

func remove(fs vfs.FileSystem, abs, display string, recursive bool) error {
	info, err := fs.Stat(abs)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if !recursive {
			return &RecursiveRequiredError{Op: "remove", Path: display}
		}
		return fs.RemoveAll(abs)
	}
	return fs.Remove(abs)
}
