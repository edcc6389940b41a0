package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/repline-tools/repline/argument"
	"github.com/repline-tools/repline/repl"
)

// registerDemoCommands populates the registry with a small command set that
// exercises positional and keyed lookups, sync and async execution, and the
// colorize filter.
func registerDemoCommands(registry *repl.Registry) {
	registry.Command("echo").
		Description("Print the remaining tokens").
		Do(func(r *repl.Runner, args *argument.Arguments) error {
			var tokens []string
			for args.HasNext() {
				tok, err := args.Next()
				if err != nil {
					return err
				}
				tokens = append(tokens, tok)
			}
			r.Println(strings.Join(tokens, " "))
			return nil
		}).
		MustRegister()

	registry.Command("sum").
		Description("Add integers: sum 1 2 3").
		Action(func(_ *repl.Runner, args *argument.Arguments) (any, error) {
			total := 0
			for args.HasNext() {
				n, err := argument.Next[int](args)
				if err != nil {
					return nil, err
				}
				total += n
			}
			return total, nil
		}).
		Result(func(r *repl.Runner, result any) {
			r.Printf("<green>%v<>\n", result)
		}).
		MustRegister()

	registry.Command("fib").
		Description("Compute a Fibonacci number in the background: fib 40").
		Async().
		Action(func(_ *repl.Runner, args *argument.Arguments) (any, error) {
			n, err := argument.Next[int](args)
			if err != nil {
				return nil, err
			}
			if n < 0 || n > 92 {
				return nil, fmt.Errorf("fib: n must be between 0 and 92, got %d", n)
			}
			var a, b int64 = 0, 1
			for i := 0; i < n; i++ {
				a, b = b, a+b
			}
			return a, nil
		}).
		Result(func(r *repl.Runner, result any) {
			r.Printf("<cyan>fib = %v<>\n", result)
		}).
		MustRegister()

	registry.Command("sleep").
		Description("Wait in the background: sleep --ms 500").
		Async().
		Action(func(_ *repl.Runner, args *argument.Arguments) (any, error) {
			ms := argument.Get(args, 1000, "--ms", "-m")
			if args.HasProblem() {
				return nil, args.Problem()
			}
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return fmt.Sprintf("slept %dms", ms), nil
		}).
		MustRegister()

	registry.Command("args").
		Description("Show how a line is tokenized").
		Do(func(r *repl.Runner, args *argument.Arguments) error {
			r.Printf("source:   %s\n", args.Source())
			for i, e := range args.Elements() {
				r.Printf("  [%d] %q\n", i, e)
			}
			return nil
		}).
		MustRegister()
}
