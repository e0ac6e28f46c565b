package text

import (
	"context"
	"strings"

	"github.com/Cyclone1070/vsh/internal/commands/cmdutil"
	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// Tr translates or deletes characters read from stdin. SET2 is padded with
// its last character when shorter than SET1.
func Tr() command.Command {
	return command.New("tr", "Translate or delete characters from piped input", func(ctx context.Context, env *command.Env, args []string) (command.Result, error) {
		var del bool
		fs := cmdutil.NewFlags("tr")
		fs.BoolVarP(&del, "delete", "d", false, "")
		if err := cmdutil.Parse(fs, args); err != nil {
			return cmdutil.Failure("tr", err), nil
		}
		operands := cmdutil.Args(fs)

		switch {
		case del && len(operands) != 1:
			return command.Usage("tr", cmdutil.Usagef("-d takes exactly one set")), nil
		case !del && len(operands) != 2:
			return command.Usage("tr", cmdutil.Usagef("expected SET1 SET2")), nil
		}

		from, err := expandSet(operands[0])
		if err != nil {
			return cmdutil.Failure("tr", err), nil
		}
		input := env.StdinText()

		if del {
			drop := make(map[rune]bool, len(from))
			for _, r := range from {
				drop[r] = true
			}
			return command.OK(strings.Map(func(r rune) rune {
				if drop[r] {
					return -1
				}
				return r
			}, input)), nil
		}

		to, err := expandSet(operands[1])
		if err != nil {
			return cmdutil.Failure("tr", err), nil
		}
		if len(to) == 0 {
			return command.Usage("tr", cmdutil.Usagef("SET2 must not be empty")), nil
		}
		mapping := make(map[rune]rune, len(from))
		for i, r := range from {
			if _, seen := mapping[r]; seen {
				continue
			}
			mapping[r] = to[min(i, len(to)-1)]
		}
		return command.OK(strings.Map(func(r rune) rune {
			if m, ok := mapping[r]; ok {
				return m
			}
			return r
		}, input)), nil
	})
}

// expandSet expands ranges like a-z and the escapes \n, \t, \r and \\.
func expandSet(set string) ([]rune, error) {
	var chars []rune
	src := []rune(set)
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\\' && i+1 < len(src) {
			i++
			c = unescape(src[i])
		}
		if i+2 < len(src) && src[i+1] == '-' {
			hi := src[i+2]
			skip := 2
			if hi == '\\' && i+3 < len(src) {
				hi = unescape(src[i+3])
				skip = 3
			}
			if hi < c {
				return nil, cmdutil.Usagef("invalid range %c-%c", c, hi)
			}
			for r := c; r <= hi; r++ {
				chars = append(chars, r)
			}
			i += skip
			continue
		}
		chars = append(chars, c)
	}
	return chars, nil
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return r
}
