package repl

import (
	"io"
	"runtime"

	"github.com/repline-tools/repline/argument"
	"github.com/repline-tools/repline/filter"
)

// RunnerBuilder assembles a Runner. Its main job beyond plumbing is the
// executor policy: when none is injected, Build constructs a worker pool the
// runner owns and shuts down on Stop. There is no hidden shared pool.
type RunnerBuilder struct {
	input               io.Reader
	output              io.Writer
	registry            *Registry
	executor            Executor
	autoShutdown        bool
	logger              Logger
	errorHandler        ErrorHandler
	commandFilterPrefix string
	filters             []func(string) string
	registryActions     []func(*Registry)
	useColorizer        bool
	workers             int
}

// NewRunnerBuilder returns a builder with nothing configured.
func NewRunnerBuilder() *RunnerBuilder {
	return &RunnerBuilder{workers: runtime.NumCPU()}
}

// WithInput sets the reader Start defaults to via Run.
func (b *RunnerBuilder) WithInput(in io.Reader) *RunnerBuilder {
	b.input = in
	return b
}

// WithOutput sets the writer Start defaults to via Run.
func (b *RunnerBuilder) WithOutput(out io.Writer) *RunnerBuilder {
	b.output = out
	return b
}

// WithRegistry sets a pre-populated registry.
func (b *RunnerBuilder) WithRegistry(registry *Registry) *RunnerBuilder {
	b.registry = registry
	return b
}

// WithExecutor injects an externally owned executor. The runner will not
// shut it down unless AutoShutdownExecutor is set.
func (b *RunnerBuilder) WithExecutor(executor Executor) *RunnerBuilder {
	b.executor = executor
	return b
}

// WithWorkers sets the size of the owned pool Build constructs when no
// executor is injected.
func (b *RunnerBuilder) WithWorkers(n int) *RunnerBuilder {
	b.workers = n
	return b
}

// AutoShutdownExecutor makes Stop shut down an injected executor too, when
// it is a *WorkerPool.
func (b *RunnerBuilder) AutoShutdownExecutor(v bool) *RunnerBuilder {
	b.autoShutdown = v
	return b
}

// WithLogger sets the trace logger.
func (b *RunnerBuilder) WithLogger(log Logger) *RunnerBuilder {
	b.logger = log
	return b
}

// WithErrorHandler replaces the default error funnel.
func (b *RunnerBuilder) WithErrorHandler(handler ErrorHandler) *RunnerBuilder {
	b.errorHandler = handler
	return b
}

// WithCommandFilterPrefix restricts dispatch to lines with the prefix.
func (b *RunnerBuilder) WithCommandFilterPrefix(prefix string) *RunnerBuilder {
	b.commandFilterPrefix = prefix
	return b
}

// AddFilter appends an output filter.
func (b *RunnerBuilder) AddFilter(f func(string) string) *RunnerBuilder {
	if f != nil {
		b.filters = append(b.filters, f)
	}
	return b
}

// WithColorizer appends the tag-based ANSI colorize filter to the output
// chain.
func (b *RunnerBuilder) WithColorizer() *RunnerBuilder {
	b.useColorizer = true
	return b
}

// WithDefaultCommands registers the built-in help and exit commands.
func (b *RunnerBuilder) WithDefaultCommands() *RunnerBuilder {
	b.registryActions = append(b.registryActions, registerDefaultCommands)
	return b
}

// Configure queues a registry setup step, applied in order at Build time.
func (b *RunnerBuilder) Configure(fn func(*Registry)) *RunnerBuilder {
	if fn != nil {
		b.registryActions = append(b.registryActions, fn)
	}
	return b
}

// Build wires everything together.
func (b *RunnerBuilder) Build() *Runner {
	registry := b.registry
	if registry == nil {
		registry = NewRegistry()
	}
	for _, action := range b.registryActions {
		action(registry)
	}

	r := NewRunner(registry)
	r.input = b.input
	r.output = b.output
	r.log = b.logger
	if b.errorHandler != nil {
		r.errorHandler = b.errorHandler
	}
	r.commandFilterPrefix = b.commandFilterPrefix

	if b.executor != nil {
		r.executor = b.executor
		r.ownsExecutor = b.autoShutdown
	} else {
		r.executor = NewWorkerPool(b.workers)
		r.ownsExecutor = true
	}

	for _, f := range b.filters {
		r.AddOutputFilter(f)
	}
	if b.useColorizer {
		r.AddOutputFilter(filter.NewColorize().Apply)
	}
	return r
}

// Run builds the runner and starts it on the configured input and output.
func (b *RunnerBuilder) Run() error {
	r := b.Build()
	return r.Start(b.input, b.output)
}

func registerDefaultCommands(registry *Registry) {
	registry.Command("help", "?").
		Description("List available commands").
		Do(func(r *Runner, args *argument.Arguments) error {
			prefix := argument.Get(args, "", "--prefix")
			r.Print(registry.FormattedList(prefix))
			return nil
		}).
		MustRegister()

	registry.Command("exit", "quit").
		Description("Stop the read loop").
		Do(func(r *Runner, args *argument.Arguments) error {
			r.Stop()
			return nil
		}).
		MustRegister()
}
