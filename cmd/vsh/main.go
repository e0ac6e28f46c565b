// Command vsh is a virtual POSIX-flavoured shell over an in-memory or host
// workspace, usable interactively, one line at a time, as typed tool calls
// or as an MCP server.
package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
)

// Version is set at build time.
var Version = "dev"

func main() {
	err := newApp().Execute()
	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	if err != nil {
		logrus.Fatal(err)
	}
}
