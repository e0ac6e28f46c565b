package fileio

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// Echo prints its arguments separated by spaces.
func Echo() command.Command {
	return command.New("echo", "Print arguments", func(ctx context.Context, env *command.Env, args []string) (command.Result, error) {
		return command.OK(strings.Join(args, " ")), nil
	})
}

// Pwd prints the working directory.
func Pwd() command.Command {
	return command.New("pwd", "Print the working directory", func(ctx context.Context, env *command.Env, args []string) (command.Result, error) {
		return command.OK(env.Cwd), nil
	})
}

// Cd changes the working directory. Without an argument it goes to "/".
func Cd() command.Command {
	return command.New("cd", "Change the working directory", func(ctx context.Context, env *command.Env, args []string) (command.Result, error) {
		if len(args) > 1 {
			return command.Usage("cd", cmdutil.Usagef("too many arguments")), nil
		}
		target := "/"
		if len(args) == 1 {
			target = env.Resolve(args[0])
		}
		info, err := env.FS.Stat(target)
		if err != nil {
			return cmdutil.Failure("cd", err), nil
		}
		if !info.IsDir() {
			return cmdutil.Failure("cd", &vfs.NotDirectoryError{Path: args[0]}), nil
		}
		return command.Result{NewCwd: target}, nil
	})
}

// Touch creates empty files. Existing files are left untouched.
func Touch() command.Command {
	return command.New("touch", "Create empty files", func(ctx context.Context, env *command.Env, args []string) (command.Result, error) {
		if len(args) == 0 {
			return command.Usage("touch", cmdutil.Usagef("missing file operand")), nil
		}
		var (
			created []string
			errs    []string
		)
		for _, p := range args {
			abs := env.Resolve(p)
			if _, err := env.FS.Stat(abs); err == nil {
				continue
			} else if !vfs.IsMissing(err) {
				errs = append(errs, cmdutil.Message("touch", err))
				continue
			}
			if err := ensureParent(env.FS, abs); err != nil {
				errs = append(errs, cmdutil.Message("touch", err))
				continue
			}
			if err := env.FS.WriteFile(abs, nil); err != nil {
				errs = append(errs, cmdutil.Message("touch", err))
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
	})
}

// Cp copies files, or directory trees with -r.
func Cp() command.Command {
	return command.New("cp", "Copy files and directories", func(ctx context.Context, env *command.Env, args []string) (command.Result, error) {
		var recursive bool
		fs := cmdutil.NewFlags("cp")
		fs.BoolVarP(&recursive, "recursive", "r", false, "")
		fs.BoolVarP(&recursive, "Recursive", "R", false, "")
		if err := cmdutil.Parse(fs, args); err != nil {
			return cmdutil.Failure("cp", err), nil
		}
		rest := cmdutil.Args(fs)
		if len(rest) < 2 {
			return command.Usage("cp", cmdutil.Usagef("missing destination operand")), nil
		}
		sources, dest := rest[:len(rest)-1], env.Resolve(rest[len(rest)-1])
		destInfo, err := env.FS.Stat(dest)
		intoDir := err == nil && destInfo.IsDir()
		if len(sources) > 1 && !intoDir {
			return command.Fail("cp: target %s is not a directory", rest[len(rest)-1]), nil
		}

		var (
			changed []string
			errs    []string
		)
		for _, src := range sources {
			if err := ctx.Err(); err != nil {
				return command.Result{}, err
			}
			from := env.Resolve(src)
			to := dest
			if intoDir {
				to = path.Join(dest, path.Base(from))
			}
			copied, err := copyPath(env.FS, from, to, src, recursive)
			if err != nil {
				errs = append(errs, cmdutil.Message("cp", err))
				continue
			}
			changed = append(changed, copied...)
		}
		res := command.OK("").Changed(changed...)
		if len(errs) > 0 {
			res.ExitCode = command.ExitFailure
			res.Stderr = strings.Join(errs, "\n")
		}
		return res, nil
	})
}

func copyPath(fs vfs.FileSystem, from, to, display string, recursive bool) ([]string, error) {
	if from == to {
		return nil, &SameFileError{Path: display}
	}
	info, err := fs.Stat(from)
	if err != nil {
		return nil, cmdutil.OperandError(display, err)
	}
	if !info.IsDir() {
		if err := ensureParent(fs, to); err != nil {
			return nil, err
		}
		return []string{to}, copyFile(fs, from, to)
	}
	if !recursive {
		return nil, &RecursiveRequiredError{Op: "copy", Path: display}
	}
	if strings.HasPrefix(to, from+"/") {
		return nil, cmdutil.Usagef("cannot copy %s into itself", display)
	}

	var copied []string
	err = vfs.Walk(fs, from, func(p string, info os.FileInfo, depth int) error {
		target := to
		if rel := vfs.Rel(from, p); rel != "." {
			target = path.Join(to, rel)
		}
		if info.IsDir() {
			return fs.MkdirAll(target)
		}
		copied = append(copied, target)
		return copyFile(fs, p, target)
	})
	return copied, err
}

func copyFile(fs vfs.FileSystem, from, to string) error {
	data, err := fs.ReadFile(from)
	if err != nil {
		return err
	}
	return fs.WriteFile(to, data)
}
