package command

import (
	"context"

	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/Cyclone1070/vsh/internal/vcs"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// SpawnFunc runs another registered command through the executor's
// single-command boundary. stdin may be nil.
type SpawnFunc func(ctx context.Context, name string, args []string, stdin *string) Result

// Lister enumerates registered commands, for help output.
type Lister interface {
	List() []Command
}

// Env is the execution context handed to every command invocation.
// Commands treat it as read-only.
type Env struct {
	FS       vfs.FileSystem
	Cwd      string
	Git      vcs.Repository // nil when no repository is attached
	Stdin    *string        // nil when nothing is piped in
	Spawn    SpawnFunc      // nil when sub-invocation is unavailable
	Commands Lister
	Config   *config.Config
}

// Resolve turns a user supplied path into an absolute virtual path.
func (e *Env) Resolve(p string) string {
	return vfs.Resolve(e.Cwd, p)
}

// HasStdin reports whether piped input is present.
func (e *Env) HasStdin() bool {
	return e.Stdin != nil
}

// StdinText returns piped input or "".
func (e *Env) StdinText() string {
	if e.Stdin == nil {
		return ""
	}
	return *e.Stdin
}

// Tools returns the configured tool limits, falling back to defaults.
func (e *Env) Tools() config.ToolsConfig {
	if e.Config == nil {
		return config.DefaultConfig().Tools
	}
	return e.Config.Tools
}

// GitConfig returns the configured git settings, falling back to defaults.
func (e *Env) GitConfig() config.GitConfig {
	if e.Config == nil {
		return config.DefaultConfig().Git
	}
	return e.Config.Git
}
