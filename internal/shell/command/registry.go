package command

import (
	"sort"
)

// Registry maps command names to implementations. It is built once per
// session and only read afterwards.
type Registry struct {
	commands map[string]Command
}

// NewRegistry builds a registry. A later command replaces an earlier one
// with the same name.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a command.
func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

// Get looks up a command by name.
func (r *Registry) Get(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// List returns all commands sorted by name.
func (r *Registry) List() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Names returns all command names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
