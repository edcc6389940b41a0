// Command repline is an interactive console built on the repline library.
// It ships a handful of demo commands and runs either as a plain stdin/stdout
// read loop or as a full-screen terminal UI.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/repline-tools/repline/argument"
	"github.com/repline-tools/repline/internal/log"
	"github.com/repline-tools/repline/repl"
)

func main() {
	flags := argument.FromSlice(os.Args[1:])

	logger, err := buildLogger(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer func() { _ = logger.Close() }()

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	enableColor := isTTY && !flags.Contains("--no-color")

	builder := repl.NewRunnerBuilder().
		WithWorkers(argument.Get(flags, 4, "--workers", "-w")).
		WithCommandFilterPrefix(argument.Get(flags, "", "--prefix", "-p")).
		WithDefaultCommands().
		Configure(registerDemoCommands)

	if logger != nil {
		builder.WithLogger(logger)
	}
	if enableColor {
		builder.WithColorizer()
	}

	if flags.HasProblem() {
		fmt.Fprintln(os.Stderr, "invalid flag value: "+flags.Problem().Error())
		os.Exit(2)
	}

	// Plain mode reads stdin to EOF; the TUI needs an interactive terminal.
	if flags.Contains("--plain") || !isTTY || !term.IsTerminal(int(os.Stdin.Fd())) {
		err := builder.WithInput(os.Stdin).WithOutput(os.Stdout).Run()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		return
	}

	if err := runConsole(builder); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func buildLogger(flags *argument.Arguments) (*log.Logger, error) {
	logPath := argument.Get(flags, "", "--log")
	if logPath == "" {
		return nil, nil
	}
	level := log.ParseLevel(argument.Get(flags, "warn", "--log-level"))
	logger, err := log.New(logPath, level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return logger, nil
}
