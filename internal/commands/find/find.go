// Package find implements directory traversal with name and type filters,
// optionally running a command for the matches, plus xargs.
package find

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// Placeholder is replaced by matched paths in -exec arguments.
const Placeholder = "{}"

// FindArgs are the typed arguments of find.
type FindArgs struct {
	Paths     []string `json:"paths,omitempty" jsonschema_description:"Starting points. Defaults to the current directory."`
	Name      string   `json:"name,omitempty" jsonschema_description:"Glob matched against the base name, e.g. *.go."`
	IName     string   `json:"iname,omitempty" jsonschema_description:"Like name but case-insensitive."`
	Type      string   `json:"type,omitempty" jsonschema:"enum=f,enum=d" jsonschema_description:"f for files, d for directories."`
	MaxDepth  *int     `json:"max_depth,omitempty" jsonschema:"minimum=0" jsonschema_description:"Descend at most this many levels below the starting points."`
	Exec      []string `json:"exec,omitempty" jsonschema_description:"Command and arguments to run for the matches. {} is replaced by the matched path."`
	// ExecBatch runs exec once for all matches. A standalone {} argument
	// expands to one argument per match, as GNU find does, rather than a
	// single space-joined argument; {} inside a larger word gets the
	// space-joined paths.
	ExecBatch bool     `json:"exec_batch,omitempty" jsonschema_description:"Run exec once with all matches in place of {} instead of once per match."`
}

// Find walks directory trees printing or acting on matching paths.
func Find() *command.Dual[FindArgs] {
	return command.NewDual(command.Spec[FindArgs]{
		Name:        "find",
		Description: "Find files and directories by name and type",
		Usage:       "find [PATH...] [-name GLOB] [-iname GLOB] [-type f|d] [-maxdepth N] [-exec CMD {} ;|+]",
		Example:     `find src -name '*.go' -exec grep -l TODO {} +`,
		Parse:       parseFind,
		Execute:     runFind,
	})
}

// parseFind reads find's single-dash expression syntax. An -exec without a
// terminator runs once per match.
func parseFind(args []string) (FindArgs, error) {
	var a FindArgs
	i := 0
	for ; i < len(args) && !strings.HasPrefix(args[i], "-"); i++ {
		a.Paths = append(a.Paths, args[i])
	}

	value := func(flag string) (string, error) {
		if i+1 >= len(args) {
			return "", cmdutil.Usagef("missing argument to %s", flag)
		}
		i++
		return args[i], nil
	}

	for ; i < len(args); i++ {
		var err error
		switch flag := args[i]; flag {
		case "-name":
			a.Name, err = value(flag)
		case "-iname":
			a.IName, err = value(flag)
		case "-type":
			a.Type, err = value(flag)
		case "-maxdepth":
			var raw string
			if raw, err = value(flag); err == nil {
				n, convErr := strconv.Atoi(raw)
				if convErr != nil {
					return a, cmdutil.Usagef("invalid argument %q to -maxdepth", raw)
				}
				a.MaxDepth = &n
			}
		case "-exec":
			rest := args[i+1:]
			end := len(rest)
			for j, tok := range rest {
				if tok == ";" || tok == "+" {
					end = j
					a.ExecBatch = tok == "+"
					break
				}
			}
			a.Exec = rest[:end]
			if len(a.Exec) == 0 {
				return a, cmdutil.Usagef("missing command for -exec")
			}
			i += end + 1
		default:
			if strings.HasPrefix(flag, "-") {
				return a, cmdutil.Usagef("unknown predicate %s", flag)
			}
			return a, cmdutil.Usagef("paths must precede expression: %s", flag)
		}
		if err != nil {
			return a, err
		}
	}
	return a, nil
}

func runFind(ctx context.Context, env *command.Env, a FindArgs) (command.Result, error) {
	m, err := newMatcher(a)
	if err != nil {
		return cmdutil.Failure("find", err), nil
	}

	matches, errs, truncated, err := walk(ctx, env, a, m)
	if err != nil {
		return command.Result{}, err
	}

	var res command.Result
	if len(a.Exec) == 0 {
		res = command.OK(strings.Join(matches, "\n"))
	} else {
		if env.Spawn == nil {
			return command.Fail("find: -exec is not available in this context"), nil
		}
		res = execute(ctx, env, a, matches)
	}

	if len(errs) > 0 {
		res.ExitCode = command.ExitFailure
	}
	if truncated {
		errs = append(errs, fmt.Sprintf("find: stopped after %d results; narrow the search with -name, -type or -maxdepth", len(matches)))
	}
	if res.Stderr != "" {
		errs = append([]string{res.Stderr}, errs...)
	}
	res.Stderr = strings.Join(errs, "\n")
	return res, nil
}
