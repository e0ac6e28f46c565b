package fileio

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// LsArgs are the typed arguments of ls.
type LsArgs struct {
	Paths     []string `json:"paths,omitempty" jsonschema_description:"Files or directories to list. Defaults to the working directory."`
	All       bool     `json:"all,omitempty" jsonschema_description:"Include entries starting with a dot."`
	Long      bool     `json:"long,omitempty" jsonschema_description:"Show type and size for each entry."`
	Recursive bool     `json:"recursive,omitempty" jsonschema_description:"List subdirectories recursively as relative paths."`
}

// Ls lists directory contents.
func Ls() *command.Dual[LsArgs] {
	return command.NewDual(command.Spec[LsArgs]{
		Name:        "ls",
		Description: "List directory contents",
		Usage:       "ls [-a] [-l] [-R] [PATH...]",
		Example:     "ls -l src",
		Parse:       parseLs,
		Execute:     runLs,
	})
}

func parseLs(args []string) (LsArgs, error) {
	var a LsArgs
	fs := cmdutil.NewFlags("ls")
	fs.BoolVarP(&a.All, "all", "a", false, "")
	fs.BoolVarP(&a.Long, "long", "l", false, "")
	fs.BoolVarP(&a.Recursive, "recursive", "R", false, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return a, err
	}
	a.Paths = cmdutil.Args(fs)
	return a, nil
}

func runLs(ctx context.Context, env *command.Env, a LsArgs) (command.Result, error) {
	paths := a.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var (
		sections []string
		errs     []string
	)
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return command.Result{}, err
		}
		abs := env.Resolve(p)
		info, err := env.FS.Stat(abs)
		if err != nil {
			errs = append(errs, cmdutil.Message("ls", err))
			continue
		}
		if !info.IsDir() {
			sections = append(sections, formatEntry(p, info, a.Long))
			continue
		}

		var lines []string
		if a.Recursive {
			lines, err = listRecursive(env.FS, abs, a)
		} else {
			lines, err = listDir(env.FS, abs, a)
		}
		if err != nil {
			errs = append(errs, cmdutil.Message("ls", err))
			continue
		}
		body := strings.Join(lines, "\n")
		if len(paths) > 1 {
			body = p + ":" + prefixNewline(body)
		}
		sections = append(sections, body)
	}

	res := command.OK(joinSections(sections))
	if len(errs) > 0 {
		res.ExitCode = command.ExitFailure
		res.Stderr = strings.Join(errs, "\n")
	}
	return res, nil
}

func listDir(fs vfs.FileSystem, dir string, a LsArgs) ([]string, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, e := range entries {
		if !a.All && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		lines = append(lines, formatEntry(e.Name(), e, a.Long))
	}
	return lines, nil
}

func listRecursive(fs vfs.FileSystem, dir string, a LsArgs) ([]string, error) {
	var lines []string
	err := vfs.Walk(fs, dir, func(p string, info os.FileInfo, depth int) error {
		if depth == 0 {
			return nil
		}
		if !a.All && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return vfs.SkipDir
			}
			return nil
		}
		lines = append(lines, formatEntry(vfs.Rel(dir, p), info, a.Long))
		return nil
	})
	return lines, err
}

func formatEntry(name string, info os.FileInfo, long bool) string {
	if info.IsDir() {
		name += "/"
	}
	if !long {
		return name
	}
	kind := "-"
	if info.IsDir() {
		kind = "d"
	}
	return fmt.Sprintf("%s %8d %s", kind, info.Size(), name)
}

func prefixNewline(s string) string {
	if s == "" {
		return ""
	}
	return "\n" + s
}

func joinSections(sections []string) string {
	return strings.Join(sections, "\n\n")
}
