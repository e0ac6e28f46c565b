// Package grep implements regular-expression search over files and piped
// input, with context lines and recursive directory traversal.
package grep

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// GrepArgs are the typed arguments of grep.
type GrepArgs struct {
	Patterns         []string `json:"patterns" jsonschema:"minItems=1" jsonschema_description:"Regular expressions (RE2 syntax). A line matches if any pattern matches."`
	Paths            []string `json:"paths,omitempty" jsonschema_description:"Files or directories to search. Reads piped input when empty, or the current directory with recursive."`
	IgnoreCase       bool     `json:"ignore_case,omitempty" jsonschema_description:"Match case-insensitively."`
	Recursive        bool     `json:"recursive,omitempty" jsonschema_description:"Search directories recursively, skipping .git, gitignored paths and binary files."`
	LineNumber       bool     `json:"line_number,omitempty" jsonschema_description:"Prefix output lines with their line number."`
	FilesWithMatches bool     `json:"files_with_matches,omitempty" jsonschema_description:"Print only the names of files containing a match."`
	Count            bool     `json:"count,omitempty" jsonschema_description:"Print only the number of selected lines per file."`
	Invert           bool     `json:"invert_match,omitempty" jsonschema_description:"Select lines that do not match."`
	WordRegexp       bool     `json:"word_regexp,omitempty" jsonschema_description:"Match only whole words."`
	Fixed            bool     `json:"fixed_strings,omitempty" jsonschema_description:"Treat patterns as literal strings."`
	Before           int      `json:"before_context,omitempty" jsonschema:"minimum=0" jsonschema_description:"Lines of context to print before each match."`
	After            int      `json:"after_context,omitempty" jsonschema:"minimum=0" jsonschema_description:"Lines of context to print after each match."`
}

// Grep searches for lines matching a pattern.
func Grep() *command.Dual[GrepArgs] {
	return command.NewDual(command.Spec[GrepArgs]{
		Name:        "grep",
		Description: "Search for lines matching a regular expression",
		Usage:       "grep [-irnlvcwFE] [-A N] [-B N] [-C N] [-e PATTERN]... PATTERN [PATH...]",
		Example:     "grep -rn -C2 'func main' .",
		Parse:       parseGrep,
		Execute:     runGrep,
	})
}

func parseGrep(args []string) (GrepArgs, error) {
	var (
		a        GrepArgs
		contextN int
		extended bool
	)
	fs := cmdutil.NewFlags("grep")
	fs.BoolVarP(&a.IgnoreCase, "ignore-case", "i", false, "")
	fs.BoolVarP(&a.Recursive, "recursive", "r", false, "")
	fs.BoolVarP(&a.Recursive, "dereference-recursive", "R", false, "")
	fs.BoolVarP(&a.LineNumber, "line-number", "n", false, "")
	fs.BoolVarP(&a.FilesWithMatches, "files-with-matches", "l", false, "")
	fs.BoolVarP(&a.Invert, "invert-match", "v", false, "")
	fs.BoolVarP(&a.Count, "count", "c", false, "")
	fs.BoolVarP(&a.WordRegexp, "word-regexp", "w", false, "")
	fs.BoolVarP(&a.Fixed, "fixed-strings", "F", false, "")
	fs.BoolVarP(&extended, "extended-regexp", "E", false, "")
	fs.IntVarP(&a.After, "after-context", "A", 0, "")
	fs.IntVarP(&a.Before, "before-context", "B", 0, "")
	fs.IntVarP(&contextN, "context", "C", 0, "")
	fs.StringArrayVarP(&a.Patterns, "regexp", "e", nil, "")
	if err := cmdutil.Parse(fs, args); err != nil {
		return a, err
	}

	if fs.Changed("context") {
		if !fs.Changed("after-context") {
			a.After = contextN
		}
		if !fs.Changed("before-context") {
			a.Before = contextN
		}
	}

	rest := cmdutil.Args(fs)
	if len(a.Patterns) == 0 {
		if len(rest) == 0 {
			return a, cmdutil.Usagef("missing pattern")
		}
		a.Patterns, rest = rest[:1], rest[1:]
	}
	if len(rest) > 0 {
		a.Paths = rest
	}
	return a, nil
}

// compile folds the patterns and matching options into one expression.
func compile(a GrepArgs) (*regexp.Regexp, error) {
	alternatives := make([]string, len(a.Patterns))
	for i, p := range a.Patterns {
		if a.Fixed {
			p = regexp.QuoteMeta(p)
		}
		alternatives[i] = "(?:" + p + ")"
	}
	expr := strings.Join(alternatives, "|")
	if a.WordRegexp {
		expr = `\b(?:` + expr + `)\b`
	}
	if a.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Cause: err}
	}
	return re, nil
}

func runGrep(ctx context.Context, env *command.Env, a GrepArgs) (command.Result, error) {
	if len(a.Patterns) == 0 {
		return command.Usage("grep", cmdutil.Usagef("missing pattern")), nil
	}
	re, err := compile(a)
	if err != nil {
		return command.Usage("grep", err), nil
	}

	targets, errs, err := collect(ctx, env, a)
	if err != nil {
		return command.Result{}, err
	}

	s := &searcher{
		args:          a,
		re:            re,
		withFilename:  a.Recursive || len(a.Paths) > 1,
		maxMatches:    env.Tools().MaxGrepMatches,
		maxLineLength: env.Tools().MaxLineLength,
	}
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return command.Result{}, err
		}
		if s.capped() {
			s.truncated = true
			break
		}
		s.search(t)
	}

	res := command.OK(strings.Join(s.out, "\n"))
	switch {
	case len(errs) > 0:
		res.ExitCode = command.ExitUsage
	case s.matched == 0:
		res.ExitCode = command.ExitFailure
	}
	if s.truncated {
		errs = append(errs, fmt.Sprintf("grep: stopped after %d matches; narrow the pattern or paths", s.maxMatches))
	}
	res.Stderr = strings.Join(errs, "\n")
	return res, nil
}
