// Package repl dispatches parsed command lines to registered handlers inside
// an interactive read loop. Commands run synchronously on the loop goroutine
// or fire-and-forget on an executor; all dispatch failures funnel through a
// single error handler.
package repl

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/repline-tools/repline/argument"
)

// Action is the handler bound to a command. The returned value is passed to
// the command's result handler, if one is set.
type Action func(r *Runner, args *argument.Arguments) (any, error)

// ResultAction post-processes a handler's return value.
type ResultAction func(r *Runner, result any)

// Command binds one or more alias words to an Action. Commands are immutable
// after construction; identity is the value itself, so two commands with
// overlapping aliases can coexist in a registry.
type Command struct {
	words        []string
	description  string
	action       Action
	resultAction ResultAction
	async        bool
}

// NewCommand constructs a command. At least one alias word is required;
// registering a command with zero aliases is a construction-time failure,
// not a dispatch-time one.
func NewCommand(words []string, description string, action Action, resultAction ResultAction) (*Command, error) {
	if len(words) == 0 {
		return nil, errors.New("repl: command words must not be empty")
	}
	if action == nil {
		return nil, errors.New("repl: command action must not be nil")
	}
	return &Command{
		words:        append([]string(nil), words...),
		description:  description,
		action:       action,
		resultAction: resultAction,
	}, nil
}

// Word returns the primary alias.
func (c *Command) Word() string {
	return c.words[0]
}

// Words returns all aliases.
func (c *Command) Words() []string {
	return c.words
}

// Description returns the help text, possibly empty.
func (c *Command) Description() string {
	return c.description
}

// Async reports whether the command runs on the executor.
func (c *Command) Async() bool {
	return c.async
}

// Matches reports whether word equals one of the aliases exactly.
func (c *Command) Matches(word string) bool {
	for _, w := range c.words {
		if w == word {
			return true
		}
	}
	return false
}

func (c *Command) String() string {
	return fmt.Sprintf("Command{words: %v, description: %q}", c.words, c.description)
}

// newArguments re-tokenizes the whole original line and discards the leading
// command word, so a handler's arguments view never includes its own name.
func (c *Command) newArguments(line string) *argument.Arguments {
	args := argument.Parse(line)
	_ = args.Skip()
	return args
}

// execute runs the command inline on the calling goroutine. The result
// handler, when set, always runs, even for a nil result.
func (c *Command) execute(r *Runner, line string) error {
	result, err := c.action(r, c.newArguments(line))
	if err != nil {
		return err
	}
	if c.resultAction != nil {
		c.resultAction(r, result)
	}
	return nil
}

// executeAsync hands the command to the runner's executor. Failures are
// reported through the runner's error funnel inside the task and never
// propagate to the submitting goroutine. A non-nil result goes to the result
// handler when one is set, otherwise it is printed.
func (c *Command) executeAsync(r *Runner, line string) {
	job := uuid.NewString()[:8]
	r.logger().Debug("async job %s: %s", job, c.Word())

	r.executor.Submit(func() {
		result, err := c.action(r, c.newArguments(line))
		if err != nil {
			r.logger().Warn("async job %s failed: %v", job, err)
			r.handleError(err)
			return
		}
		if result != nil {
			if c.resultAction != nil {
				c.resultAction(r, result)
			} else {
				r.Println(result)
			}
		}
		r.logger().Debug("async job %s done", job)
	})
}
