// Package parse turns a command line into a sequence of commands joined by
// operators. There is no expansion of any kind: words come out exactly as
// quoted.
package parse

import "fmt"

// Operator relates a command to the one after it.
type Operator int

const (
	None Operator = iota
	And
	Or
	Pipe
	Sequence
)

func (o Operator) String() string {
	switch o {
	case And:
		return "&&"
	case Or:
		return "||"
	case Pipe:
		return "|"
	case Sequence:
		return ";"
	default:
		return ""
	}
}

// RedirectMode selects how a redirect target is written.
type RedirectMode int

const (
	Overwrite RedirectMode = iota
	Append
)

func (m RedirectMode) String() string {
	if m == Append {
		return ">>"
	}
	return ">"
}

// Redirect sends a command's stdout to a file.
type Redirect struct {
	Mode RedirectMode
	Path string
}

// Command is one parsed command. It is built once and never modified.
type Command struct {
	Name     string
	Args     []string
	Redirect *Redirect
}

// Argv returns the name followed by the arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// Compound pairs a command with the operator that links it to the next one.
// The last element of a parsed line always has None.
type Compound struct {
	Command  Command
	Operator Operator
}

// SyntaxError reports input the parser refuses to guess about.
type SyntaxError struct {
	Quote rune
	Pos   int
}

func (e *SyntaxError) Error() string {
	kind := "double"
	if e.Quote == '\'' {
		kind = "single"
	}
	return fmt.Sprintf("unterminated %s quote", kind)
}

func (e *SyntaxError) InvalidInput() bool { return true }
