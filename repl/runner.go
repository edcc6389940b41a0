package repl

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

// ErrorHandler receives every dispatch-time failure, synchronous command
// errors and unknown commands alike. Async failures reach the same handler,
// but from inside the executor task.
type ErrorHandler func(r *Runner, err error)

// Runner drives the read loop: it reads bytes into lines, resolves the
// leading word against the registry, and executes commands.
//
// Exactly one goroutine runs Start; it is the only reader of the input and
// the only goroutine resolving lookups. Async commands run concurrently on
// the executor. Writes to the output from the loop goroutine and from async
// tasks are not mutually synchronized: concurrent writers can interleave
// output. That is a known property, not a bug to fix here; serialize in the
// output writer if it matters.
type Runner struct {
	registry *Registry
	running  atomic.Bool

	input  io.Reader
	output io.Writer

	executor     Executor
	ownsExecutor bool

	commandFilterPrefix string

	outputFilters []func(string) string

	errorHandler ErrorHandler
	log          Logger
}

// NewRunner returns a runner over the given registry with the default error
// handler. No executor is configured; set one before registering async
// commands, or construct through RunnerBuilder which always provides one.
func NewRunner(registry *Registry) *Runner {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Runner{
		registry:     registry,
		errorHandler: defaultErrorHandler,
	}
}

func defaultErrorHandler(r *Runner, err error) {
	r.Println("Error: " + err.Error())
}

// Registry returns the command registry.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// SetRegistry replaces the command registry. Must not be called while the
// loop is running.
func (r *Runner) SetRegistry(registry *Registry) {
	r.registry = registry
}

// SetErrorHandler replaces the single error funnel. A nil handler restores
// the default one.
func (r *Runner) SetErrorHandler(handler ErrorHandler) {
	if handler == nil {
		handler = defaultErrorHandler
	}
	r.errorHandler = handler
}

// SetExecutor injects the executor used for async commands.
func (r *Runner) SetExecutor(executor Executor) {
	r.executor = executor
	r.ownsExecutor = false
}

// Executor returns the configured executor, or nil.
func (r *Runner) Executor() Executor {
	return r.executor
}

// SetLogger installs a trace logger. A nil logger disables tracing.
func (r *Runner) SetLogger(log Logger) {
	r.log = log
}

func (r *Runner) logger() Logger {
	if r.log == nil {
		return NopLogger{}
	}
	return r.log
}

// SetCommandFilterPrefix restricts the loop to lines starting with prefix.
// Non-matching lines are silently discarded, which allows mixing command and
// non-command text in one stream. The prefix is not stripped before
// tokenizing: registered alias words must include it.
func (r *Runner) SetCommandFilterPrefix(prefix string) {
	r.commandFilterPrefix = prefix
}

// CommandFilterPrefix returns the configured prefix, possibly empty.
func (r *Runner) CommandFilterPrefix() string {
	return r.commandFilterPrefix
}

// AddOutputFilter appends a text transformation applied to every piece of
// output, in registration order.
func (r *Runner) AddOutputFilter(filter func(string) string) {
	if filter != nil {
		r.outputFilters = append(r.outputFilters, filter)
	}
}

// ClearOutputFilters removes all output filters.
func (r *Runner) ClearOutputFilters() {
	r.outputFilters = nil
}

// Output returns the writer the runner prints to.
func (r *Runner) Output() io.Writer {
	return r.output
}

// SetOutput sets the writer the runner prints to.
func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

// IsRunning reports whether the read loop is active.
func (r *Runner) IsRunning() bool {
	return r.running.Load()
}

func (r *Runner) applyFilters(text string) string {
	for _, f := range r.outputFilters {
		text = f(text)
	}
	return text
}

// Print writes to the output with the filter chain applied. Write failures
// are traced, not raised: handlers have nowhere reasonable to put them.
func (r *Runner) Print(v any) {
	if r.output == nil {
		return
	}
	text := r.applyFilters(fmt.Sprint(v))
	if _, err := io.WriteString(r.output, text); err != nil {
		r.logger().Error("output write failed: %v", err)
	}
}

// Println is Print with a trailing newline.
func (r *Runner) Println(v any) {
	r.Print(fmt.Sprint(v) + "\n")
}

// Printf formats and prints through the filter chain.
func (r *Runner) Printf(format string, args ...any) {
	r.Print(fmt.Sprintf(format, args...))
}

// Execute dispatches a single command line. The leading whitespace-split
// word selects the command; the matched command re-tokenizes the entire
// original line itself. Returns an *UnknownCommandError when no alias
// matches, or the command's own error for synchronous commands. Async
// commands never return an error here.
func (r *Runner) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	word := fields[0]

	cmd := r.registry.Resolve(word)
	if cmd == nil {
		return &UnknownCommandError{Word: word, Line: line, Registry: r.registry}
	}

	if cmd.Async() {
		r.executeAsync(cmd, line)
		return nil
	}
	return cmd.execute(r, line)
}

func (r *Runner) executeAsync(cmd *Command, line string) {
	if r.executor == nil {
		// Visible last resort; RunnerBuilder always configures a pool.
		r.logger().Warn("no executor configured, running %s inline", cmd.Word())
		if err := cmd.execute(r, line); err != nil {
			r.handleError(err)
		}
		return
	}
	cmd.executeAsync(r, line)
}

func (r *Runner) handleError(err error) {
	r.errorHandler(r, err)
}

// Start runs the read loop over in, printing to out, until Stop is called or
// the input ends. Bytes are read one at a time; CR is dropped and LF
// terminates a line, which is decoded as UTF-8. Every dispatch failure is
// passed to the error handler; no failure terminates the loop.
func (r *Runner) Start(in io.Reader, out io.Writer) error {
	r.input = in
	r.output = out
	r.running.Store(true)
	defer r.running.Store(false)

	reader := bufio.NewReader(in)
	var lineBuffer bytes.Buffer

	for r.running.Load() {
		b, err := reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch b {
		case '\n':
			line := lineBuffer.String()
			lineBuffer.Reset()
			r.dispatchLine(line)
		case '\r':
			// dropped
		default:
			lineBuffer.WriteByte(b)
		}
	}
	return nil
}

func (r *Runner) dispatchLine(line string) {
	if r.commandFilterPrefix != "" && !strings.HasPrefix(line, r.commandFilterPrefix) {
		r.logger().Debug("ignoring non-command line")
		return
	}
	if err := r.Execute(line); err != nil {
		r.handleError(err)
	}
}

// Stop ends the read loop after the byte currently being waited on. When the
// runner owns its executor, the pool is shut down as well; in-flight async
// tasks are not interrupted.
func (r *Runner) Stop() {
	r.running.Store(false)

	if r.ownsExecutor {
		if pool, ok := r.executor.(*WorkerPool); ok {
			pool.Shutdown()
		}
	}
}
