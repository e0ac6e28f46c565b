package toolset

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// Reference is appended to every description. It must not depend on the
// registry so that its bytes stay stable as commands are added.
const Reference = `Shell reference:

Command families:
  files:      ls, cat, write, mkdir, touch, rm, mv, cp, cd, pwd, echo
  text:       head, tail, wc, sort, uniq, tr
  search:     grep, find, xargs
  versioning: git, checkpoint
  help:       help [COMMAND]

Operators:
  a && b   run b only if a succeeded
  a || b   run b only if a failed
  a | b    feed the stdout of a to b
  a ; b    run b after a regardless
  a > f    write stdout to f (only on success)
  a >> f   append stdout to f (only on success)

Quoting: 'single' keeps text literally, "double" allows \" and \\, a
backslash outside quotes escapes the next character. There is no variable
expansion, globbing, command substitution, subshell or background job.

Common flags:
  grep -i -n -r -l -v -c -w -F -A N -B N -C N -e PATTERN
  find PATH -name GLOB -iname GLOB -type f|d -maxdepth N -exec CMD {} ; | +
  head/tail -n N, sort -r -n -u, uniq -c, wc -l -w -c, ls -a -l -R

Exit codes: 0 success, 1 failure, 2 usage error, 127 command not found.

Not available: interpreters and compilers (python, node, go, sh, bash),
package managers, network clients (curl, wget), editors and sudo. Use the
commands above; write files with write or a redirect.
`

// Describe renders the command surface for a model or a human. Commands
// with a typed schema come first with a usage line and an example, then the
// remaining commands, then Reference.
func (t *Toolset) Describe() string {
	var structured, plain []command.Command
	for _, c := range t.exec.Registry().List() {
		if _, ok := c.(command.ToolCommand); ok {
			structured = append(structured, c)
		} else {
			plain = append(plain, c)
		}
	}

	var b strings.Builder
	b.WriteString("Commands with structured tools:\n")
	for _, c := range structured {
		tc := c.(command.ToolCommand)
		fmt.Fprintf(&b, "  %s - %s\n", c.Name(), c.Description())
		if usage := tc.Usage(); usage != "" {
			fmt.Fprintf(&b, "    usage:   %s\n", usage)
		}
		for _, tl := range tc.Tools() {
			if tl.Example() != "" {
				fmt.Fprintf(&b, "    example: %s\n", tl.Example())
			}
			if tl.Name() != c.Name() {
				fmt.Fprintf(&b, "    tool:    %s - %s\n", tl.Name(), tl.Description())
			}
		}
	}
	if len(plain) > 0 {
		b.WriteString("\nOther commands:\n")
		for _, c := range plain {
			fmt.Fprintf(&b, "  %s - %s\n", c.Name(), c.Description())
		}
	}
	b.WriteString("\n")
	b.WriteString(Reference)
	return b.String()
}
