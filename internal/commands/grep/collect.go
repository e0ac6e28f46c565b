package grep

import (
	"context"
	"errors"
	"os"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

const stdinName = "(standard input)"

// target is one searchable text with the name it is reported under.
type target struct {
	name string
	text string
}

// collect resolves the operands into targets. Per-path problems are
// returned as stderr messages; only cancellation aborts.
func collect(ctx context.Context, env *command.Env, a GrepArgs) ([]target, []string, error) {
	paths := a.Paths
	if len(paths) == 0 {
		if !a.Recursive {
			return []target{{name: stdinName, text: env.StdinText()}}, nil, nil
		}
		paths = []string{"."}
	}

	var ignore *vfs.IgnoreMatcher
	if a.Recursive && env.Tools().RespectGitignore {
		m, err := vfs.NewIgnoreMatcher(env.FS)
		if err != nil {
			logrus.WithError(err).Warn("grep: searching without gitignore rules")
		}
		ignore = m
	}

	var (
		targets []target
		errs    []string
	)
	for _, p := range paths {
		if p == "-" {
			targets = append(targets, target{name: stdinName, text: env.StdinText()})
			continue
		}
		abs := env.Resolve(p)
		info, err := env.FS.Stat(abs)
		if err != nil {
			errs = append(errs, cmdutil.Message("grep", cmdutil.OperandError(p, err)))
			continue
		}
		if !info.IsDir() {
			text, err := cmdutil.ReadText(env, p)
			if err != nil {
				errs = append(errs, cmdutil.Message("grep", err))
				continue
			}
			targets = append(targets, target{name: p, text: text})
			continue
		}
		if !a.Recursive {
			errs = append(errs, cmdutil.Message("grep", &vfs.IsDirectoryError{Path: p}))
			continue
		}

		err = vfs.Walk(env.FS, abs, func(file string, info os.FileInfo, depth int) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if depth > 0 && ignore.ShouldIgnore(file, info.IsDir()) {
				if info.IsDir() {
					return vfs.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				return nil
			}
			text, err := cmdutil.ReadText(env, file)
			if err != nil {
				var binary *cmdutil.BinaryFileError
				var tooLarge *cmdutil.TooLargeError
				if !errors.As(err, &binary) && !errors.As(err, &tooLarge) {
					errs = append(errs, cmdutil.Message("grep", err))
				}
				return nil
			}
			targets = append(targets, target{name: path.Join(p, vfs.Rel(abs, file)), text: text})
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, err
			}
			errs = append(errs, cmdutil.Message("grep", err))
		}
	}
	return targets, errs, nil
}
