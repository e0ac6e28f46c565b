package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

type counts struct {
	lines, words, bytes int
}

func count(text string) counts {
	return counts{
		lines: len(vfs.SplitLines(text)),
		words: len(strings.Fields(text)),
		bytes: len(text),
	}
}

// Wc counts lines, words and bytes. A final line without a newline still
// counts as a line.
func Wc() command.Command {
	return command.New("wc", "Count lines, words and bytes", func(ctx context.Context, env *command.Env, args []string) (command.Result, error) {
		var showLines, showWords, showBytes bool
		fs := cmdutil.NewFlags("wc")
		fs.BoolVarP(&showLines, "lines", "l", false, "")
		fs.BoolVarP(&showWords, "words", "w", false, "")
		fs.BoolVarP(&showBytes, "bytes", "c", false, "")
		if err := cmdutil.Parse(fs, args); err != nil {
			return cmdutil.Failure("wc", err), nil
		}
		if !showLines && !showWords && !showBytes {
			showLines, showWords, showBytes = true, true, true
		}

		format := func(c counts, name string) string {
			var fields []string
			if showLines {
				fields = append(fields, fmt.Sprint(c.lines))
			}
			if showWords {
				fields = append(fields, fmt.Sprint(c.words))
			}
			if showBytes {
				fields = append(fields, fmt.Sprint(c.bytes))
			}
			if name != "" {
				fields = append(fields, name)
			}
			return strings.Join(fields, " ")
		}

		paths := cmdutil.Args(fs)
		if len(paths) == 0 {
			return command.OK(format(count(env.StdinText()), "")), nil
		}

		var (
			out   []string
			errs  []string
			total counts
		)
		for _, p := range paths {
			text, err := cmdutil.ReadInput(env, []string{p})
			if err != nil {
				errs = append(errs, cmdutil.Message("wc", err))
				continue
			}
			c := count(text)
			total.lines += c.lines
			total.words += c.words
			total.bytes += c.bytes
			out = append(out, format(c, p))
		}
		if len(paths) > 1 {
			out = append(out, format(total, "total"))
		}
		res := command.OK(strings.Join(out, "\n"))
		if len(errs) > 0 {
			res.ExitCode = command.ExitFailure
			res.Stderr = strings.Join(errs, "\n")
		}
		return res, nil
	})
}
