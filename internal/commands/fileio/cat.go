package fileio

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// CatArgs are the typed arguments of cat.
type CatArgs struct {
	Paths  []string `json:"paths,omitempty" jsonschema_description:"Files to print in order. Reads piped input when empty."`
	Number bool     `json:"number,omitempty" jsonschema_description:"Prefix each line with its line number."`
	Offset int      `json:"offset,omitempty" jsonschema:"minimum=0" jsonschema_description:"Number of lines to skip."`
	Limit  int      `json:"limit,omitempty" jsonschema:"minimum=0" jsonschema_description:"Maximum number of lines to print. 0 prints everything."`
}

// Cat prints file contents.
func Cat() *command.Dual[CatArgs] {
	return command.NewDual(command.Spec[CatArgs]{
		Name:        "cat",
		Description: "Print file contents",
		Usage:       "cat [-n] [--offset N] [--limit N] [FILE...]",
		Example:     "cat -n --offset 100 --limit 50 main.go",
		Parse:       parseCat,
		Execute:     runCat,
	})
}

func parseCat(args []string) (CatArgs, error) {
	var a CatArgs
	fs := cmdutil.NewFlags("cat")
	fs.BoolVarP(&a.Number, "number", "n", false, "")
	fs.IntVar(&a.Offset, "offset", 0, "")
	fs.IntVar(&a.Limit, "limit", 0, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return a, err
	}
	a.Paths = cmdutil.Args(fs)
	return a, nil
}

func runCat(ctx context.Context, env *command.Env, a CatArgs) (command.Result, error) {
	var (
		b    strings.Builder
		errs []string
	)
	if len(a.Paths) == 0 {
		b.WriteString(env.StdinText())
	}
	for _, p := range a.Paths {
		if err := ctx.Err(); err != nil {
			return command.Result{}, err
		}
		if p == "-" {
			b.WriteString(env.StdinText())
			continue
		}
		text, err := cmdutil.ReadText(env, p)
		if err != nil {
			errs = append(errs, cmdutil.Message("cat", err))
			continue
		}
		b.WriteString(text)
	}

	out := b.String()
	var note string
	if a.Number || a.Offset > 0 || a.Limit > 0 {
		lines := vfs.SplitLines(out)
		page, info := cmdutil.Paginate(lines, a.Offset, a.Limit)
		if a.Number {
			numbered := make([]string, len(page))
			for i, line := range page {
				numbered[i] = fmt.Sprintf("%6d\t%s", a.Offset+i+1, line)
			}
			page = numbered
		}
		out = vfs.JoinLines(page)
		if info.Truncated {
			next := a.Offset + len(page)
			note = fmt.Sprintf("cat: showing lines %d-%d of %d; continue with --offset %d", a.Offset+1, next, info.Total, next)
		}
	}

	res := command.OK(strings.TrimSuffix(out, "\n"))
	if len(errs) > 0 {
		res.ExitCode = command.ExitFailure
	}
	if note != "" {
		errs = append(errs, note)
	}
	res.Stderr = strings.Join(errs, "\n")
	return res, nil
}
