package find

import (
	"context"
	"errors"
	"os"
	"path"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

var errLimit = errors.New("result limit reached")

// matcher applies the name and type tests to a visited path.
type matcher struct {
	name     string
	iname    string
	fileType string
}

func newMatcher(a FindArgs) (*matcher, error) {
	for _, glob := range []string{a.Name, a.IName} {
		if _, err := path.Match(glob, ""); err != nil {
			return nil, cmdutil.Usagef("invalid pattern %q", glob)
		}
	}
	switch a.Type {
	case "", "f", "d":
	default:
		return nil, cmdutil.Usagef("unknown argument to -type: %s", a.Type)
	}
	return &matcher{name: a.Name, iname: strings.ToLower(a.IName), fileType: a.Type}, nil
}

func (m *matcher) match(p string, isDir bool) bool {
	base := path.Base(p)
	if m.name != "" {
		if ok, _ := path.Match(m.name, base); !ok {
			return false
		}
	}
	if m.iname != "" {
		if ok, _ := path.Match(m.iname, strings.ToLower(base)); !ok {
			return false
		}
	}
	switch m.fileType {
	case "f":
		return !isDir
	case "d":
		return isDir
	}
	return true
}

// display renders a visited path the way it was reached from root.
func display(root, rel string) string {
	if rel == "." {
		return root
	}
	if root == "/" {
		return "/" + rel
	}
	return strings.TrimSuffix(root, "/") + "/" + rel
}

// walk collects matching paths below each starting point, skipping .git.
func walk(ctx context.Context, env *command.Env, a FindArgs, m *matcher) (matches, errs []string, truncated bool, err error) {
	roots := a.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}
	limit := env.Tools().MaxFindResults

	for _, root := range roots {
		abs := env.Resolve(root)
		walkErr := vfs.Walk(env.FS, abs, func(p string, info os.FileInfo, depth int) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if depth > 0 && info.IsDir() && info.Name() == ".git" {
				return vfs.SkipDir
			}
			if m.match(p, info.IsDir()) {
				if limit > 0 && len(matches) >= limit {
					truncated = true
					return errLimit
				}
				matches = append(matches, display(root, vfs.Rel(abs, p)))
			}
			if info.IsDir() && a.MaxDepth != nil && depth >= *a.MaxDepth {
				return vfs.SkipDir
			}
			return nil
		})
		switch {
		case walkErr == nil:
		case errors.Is(walkErr, errLimit):
			return matches, errs, truncated, nil
		case ctx.Err() != nil:
			return nil, nil, false, walkErr
		default:
			errs = append(errs, cmdutil.Message("find", walkErr))
		}
	}
	return matches, errs, truncated, nil
}
