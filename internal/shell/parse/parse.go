package parse

import (
	"strings"
)

// Parse splits line into compound commands. Empty input yields no commands.
// Empty segments and a trailing operator are dropped. An unterminated quote
// fails the whole line with *SyntaxError.
func Parse(line string) ([]Compound, error) {
	segments, err := splitOperators(line)
	if err != nil {
		return nil, err
	}

	var out []Compound
	for _, seg := range segments {
		cmd, ok := buildCommand(tokenize(seg.text))
		if !ok {
			continue
		}
		out = append(out, Compound{Command: cmd, Operator: seg.op})
	}
	if len(out) > 0 {
		out[len(out)-1].Operator = None
	}
	return out, nil
}

type segment struct {
	text string
	op   Operator
}

// splitOperators is the first pass. Quotes and backslashes are kept in the
// segment text for the word pass.
func splitOperators(line string) ([]segment, error) {
	var (
		segments []segment
		buf      strings.Builder
		inSingle bool
		inDouble bool
		escaped  bool
		quoteAt  int
	)
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case escaped:
			buf.WriteRune(c)
			escaped = false
		case c == '\\' && !inSingle:
			buf.WriteRune(c)
			escaped = true
		case c == '\'' && !inDouble:
			if !inSingle {
				quoteAt = i
			}
			inSingle = !inSingle
			buf.WriteRune(c)
		case c == '"' && !inSingle:
			if !inDouble {
				quoteAt = i
			}
			inDouble = !inDouble
			buf.WriteRune(c)
		case inSingle || inDouble:
			buf.WriteRune(c)
		default:
			op, width := operatorAt(runes, i)
			if op == None {
				buf.WriteRune(c)
				continue
			}
			segments = append(segments, segment{text: buf.String(), op: op})
			buf.Reset()
			i += width - 1
		}
	}

	if inSingle {
		return nil, &SyntaxError{Quote: '\'', Pos: quoteAt}
	}
	if inDouble {
		return nil, &SyntaxError{Quote: '"', Pos: quoteAt}
	}
	segments = append(segments, segment{text: buf.String(), op: None})
	return segments, nil
}

func operatorAt(runes []rune, i int) (Operator, int) {
	next := rune(0)
	if i+1 < len(runes) {
		next = runes[i+1]
	}
	switch {
	case runes[i] == '&' && next == '&':
		return And, 2
	case runes[i] == '|' && next == '|':
		return Or, 2
	case runes[i] == '|':
		return Pipe, 1
	case runes[i] == ';':
		return Sequence, 1
	}
	return None, 0
}

type word struct {
	text   string
	quoted bool
}

// tokenize is the second pass: whitespace splitting, quote removal and
// escapes. Inside double quotes only \" and \\ are escapes.
func tokenize(text string) []word {
	var (
		words    []word
		buf      strings.Builder
		inWord   bool
		quoted   bool
		inSingle bool
		inDouble bool
	)
	runes := []rune(text)

	flush := func() {
		if inWord {
			words = append(words, word{text: buf.String(), quoted: quoted})
		}
		buf.Reset()
		inWord, quoted = false, false
	}

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case inSingle:
			if c == '\'' {
				inSingle = false
			} else {
				buf.WriteRune(c)
			}
		case inDouble:
			switch {
			case c == '"':
				inDouble = false
			case c == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\'):
				i++
				buf.WriteRune(runes[i])
			default:
				buf.WriteRune(c)
			}
		case c == '\\':
			inWord = true
			if i+1 < len(runes) {
				i++
				buf.WriteRune(runes[i])
				quoted = true
			} else {
				buf.WriteRune(c)
			}
		case c == '\'':
			inWord, quoted, inSingle = true, true, true
		case c == '"':
			inWord, quoted, inDouble = true, true, true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			inWord = true
			buf.WriteRune(c)
		}
	}
	flush()
	return words
}

// buildCommand pulls redirects out of the words. Every bare > or >> with a
// following word is removed; the last one wins.
func buildCommand(words []word) (Command, bool) {
	var (
		args     []string
		redirect *Redirect
	)
	for i := 0; i < len(words); i++ {
		w := words[i]
		if !w.quoted && (w.text == ">" || w.text == ">>") && i+1 < len(words) {
			mode := Overwrite
			if w.text == ">>" {
				mode = Append
			}
			redirect = &Redirect{Mode: mode, Path: words[i+1].text}
			i++
			continue
		}
		args = append(args, w.text)
	}
	if len(args) == 0 {
		return Command{}, false
	}
	cmd := Command{Name: args[0], Redirect: redirect}
	if len(args) > 1 {
		cmd.Args = args[1:]
	}
	return cmd, true
}
