package fileio

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// Help lists the registered commands, or describes one.
func Help() command.Command {
	return command.New("help", "List commands or show usage for one", func(ctx context.Context, env *command.Env, args []string) (command.Result, error) {
		if env.Commands == nil {
			return command.Fail("help: no command list available"), nil
		}
		cmds := env.Commands.List()

		if len(args) == 0 {
			width := 0
			for _, c := range cmds {
				width = max(width, len(c.Name()))
			}
			lines := make([]string, 0, len(cmds))
			for _, c := range cmds {
				lines = append(lines, fmt.Sprintf("%-*s  %s", width, c.Name(), c.Description()))
			}
			return command.OK(strings.Join(lines, "\n")), nil
		}

		for _, c := range cmds {
			if c.Name() != args[0] {
				continue
			}
			out := fmt.Sprintf("%s - %s", c.Name(), c.Description())
			if tc, ok := c.(command.ToolCommand); ok && tc.Usage() != "" {
				out += "\nusage: " + tc.Usage()
			}
			return command.OK(out), nil
		}
		return command.Fail("help: no such command: %s (run help to list commands)", args[0]), nil
	})
}
