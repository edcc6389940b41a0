package repl

import "fmt"

// UnknownCommandError is returned when a line's leading word matches no
// registered alias. It carries the offending word, the full original line,
// and the registry so callers can build suggestions or help text.
type UnknownCommandError struct {
	Word     string
	Line     string
	Registry *Registry
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Word)
}

var _ error = (*UnknownCommandError)(nil)
