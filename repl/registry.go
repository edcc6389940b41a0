package repl

import (
	"fmt"
	"strings"

	"github.com/repline-tools/repline/argument"
)

// Registry is an insertion-ordered collection of commands. It is built up
// before the dispatch loop starts and read-only while the loop runs; no
// concurrent mutation guarantees are made.
//
// Duplicate alias words across different commands are allowed: Resolve scans
// in insertion order and the first registered match wins. Set a warn logger
// with WarnDuplicateAliases to surface overlaps at registration time.
type Registry struct {
	commands []*Command
	warnLog  Logger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// WarnDuplicateAliases makes Register log a warning whenever a newly
// registered command shares an alias with an earlier one. First-match
// dispatch semantics are unchanged.
func (g *Registry) WarnDuplicateAliases(log Logger) *Registry {
	g.warnLog = log
	return g
}

// Register appends a command. Registering the same command value twice is a
// no-op.
func (g *Registry) Register(cmd *Command) *Registry {
	for _, existing := range g.commands {
		if existing == cmd {
			return g
		}
	}
	if g.warnLog != nil {
		for _, existing := range g.commands {
			for _, w := range cmd.Words() {
				if existing.Matches(w) {
					g.warnLog.Warn("alias %q already registered by %s; first match wins", w, existing.Word())
				}
			}
		}
	}
	g.commands = append(g.commands, cmd)
	return g
}

// Command starts a fluent definition of a new command bound to this
// registry. Call Register on the returned builder to add it.
func (g *Registry) Command(words ...string) *CommandBuilder {
	return &CommandBuilder{registry: g, words: words}
}

// Commands returns the registered commands in insertion order.
func (g *Registry) Commands() []*Command {
	return g.commands
}

// Resolve returns the first command, in insertion order, whose alias list
// contains word, or nil.
func (g *Registry) Resolve(word string) *Command {
	for _, cmd := range g.commands {
		if cmd.Matches(word) {
			return cmd
		}
	}
	return nil
}

// FormattedList renders a help listing of all commands whose primary word
// starts with prefix. An empty prefix lists everything.
func (g *Registry) FormattedList(prefix string) string {
	var sb strings.Builder
	sb.WriteString("Available commands")
	if prefix != "" {
		fmt.Fprintf(&sb, " starting with '%s'", prefix)
	}
	sb.WriteString(":\n")

	found := false
	for _, cmd := range g.commands {
		if prefix != "" && !strings.HasPrefix(cmd.Word(), prefix) {
			continue
		}
		fmt.Fprintf(&sb, "  %-20s %s\n", cmd.Word(), cmd.Description())
		found = true
	}
	if !found {
		sb.WriteString("  (no matching commands)\n")
	}
	return sb.String()
}

// CommandBuilder assembles a Command step by step.
type CommandBuilder struct {
	registry     *Registry
	words        []string
	description  string
	action       Action
	resultAction ResultAction
	async        bool
}

// Description sets the help text.
func (b *CommandBuilder) Description(description string) *CommandBuilder {
	b.description = description
	return b
}

// Action sets the handler.
func (b *CommandBuilder) Action(action Action) *CommandBuilder {
	b.action = action
	return b
}

// Do sets a handler with no return value.
func (b *CommandBuilder) Do(fn func(r *Runner, args *argument.Arguments) error) *CommandBuilder {
	b.action = func(r *Runner, args *argument.Arguments) (any, error) {
		return nil, fn(r, args)
	}
	return b
}

// Result sets the result handler.
func (b *CommandBuilder) Result(resultAction ResultAction) *CommandBuilder {
	b.resultAction = resultAction
	return b
}

// Async marks the command for executor-based execution.
func (b *CommandBuilder) Async() *CommandBuilder {
	b.async = true
	return b
}

// Build constructs the command without registering it.
func (b *CommandBuilder) Build() (*Command, error) {
	cmd, err := NewCommand(b.words, b.description, b.action, b.resultAction)
	if err != nil {
		return nil, err
	}
	cmd.async = b.async
	return cmd, nil
}

// Register builds the command and adds it to the builder's registry.
func (b *CommandBuilder) Register() (*Command, error) {
	cmd, err := b.Build()
	if err != nil {
		return nil, err
	}
	b.registry.Register(cmd)
	return cmd, nil
}

// MustRegister is Register for statically known definitions; it panics on a
// malformed command instead of returning an error.
func (b *CommandBuilder) MustRegister() *Command {
	cmd, err := b.Register()
	if err != nil {
		panic(err)
	}
	return cmd
}
