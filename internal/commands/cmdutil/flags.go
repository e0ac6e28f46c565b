// Package cmdutil holds helpers shared by the command implementations:
// argv flag parsing, input collection and error rendering.
package cmdutil

import (
	"errors"
	"io"

	"github.com/spf13/pflag"
)

// NewFlags returns a silent flag set that reports errors instead of exiting.
func NewFlags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// Parse parses args and converts flag errors into *UsageError.
func Parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return &UsageError{Message: "help requested; run help " + fs.Name()}
		}
		return &UsageError{Message: err.Error()}
	}
	return nil
}

// Args returns the positional arguments left after parsing, nil when none.
func Args(fs *pflag.FlagSet) []string {
	if fs.NArg() == 0 {
		return nil
	}
	return fs.Args()
}
