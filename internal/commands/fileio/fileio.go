// Package fileio implements the file and directory commands.
package fileio

import (
	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// Commands returns every command in this family.
func Commands() []command.Command {
	return []command.Command{
		Echo(),
		Pwd(),
		Cd(),
		Ls(),
		Cat(),
		Mkdir(),
		Touch(),
		Rm(),
		Mv(),
		Cp(),
		Write(),
		Help(),
	}
}
