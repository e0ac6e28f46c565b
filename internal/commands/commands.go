// Package commands assembles the fixed set of shell commands.
package commands

import (
	"github.com/Cyclone1070/vsh/internal/commands/checkpoint"
	"github.com/Cyclone1070/vsh/internal/commands/fileio"
	"github.com/Cyclone1070/vsh/internal/commands/find"
	"github.com/Cyclone1070/vsh/internal/commands/git"
	"github.com/Cyclone1070/vsh/internal/commands/grep"
	"github.com/Cyclone1070/vsh/internal/commands/text"
	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// All returns every command the shell provides.
func All() []command.Command {
	var cmds []command.Command
	cmds = append(cmds, fileio.Commands()...)
	cmds = append(cmds, text.Commands()...)
	cmds = append(cmds, grep.Grep())
	cmds = append(cmds, find.Commands()...)
	cmds = append(cmds, git.Git())
	cmds = append(cmds, checkpoint.Commands()...)
	return cmds
}

// NewRegistry builds a registry holding All.
func NewRegistry() *command.Registry {
	return command.NewRegistry(All()...)
}
