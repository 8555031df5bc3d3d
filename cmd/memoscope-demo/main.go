package main

// cmd/memoscope-demo is a cobra CLI that runs one of a handful of canonical
// end-to-end scenarios against an in-process Space and prints the resulting
// statistics, either as text or JSON.
//
// Build-time flag: `-ldflags "-X main.version=vX.Y.Z"`.
//
// © 2025 memoscope authors. MIT License.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/memoscope/memoscope/pkg/memo"
	"github.com/spf13/cobra"
)

var version = "dev"

type scenarioResult struct {
	Scenario   string `json:"scenario"`
	BeforeCall int    `json:"before_calls"`
	BeforeVal  int    `json:"before_value"`
	Override   string `json:"override"`
	InsideVal  int    `json:"inside_value"`
	InsideCall int    `json:"inside_calls"`
	AfterVal   int    `json:"after_value"`
	AfterCall  int    `json:"after_calls"`
}

func main() {
	var asJSON bool

	root := &cobra.Command{
		Use:     "memoscope-demo",
		Short:   "Run canonical memoscope scenarios and report the results",
		Version: version,
	}
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print the result as JSON instead of text")

	root.AddCommand(fibCommand(&asJSON))
	root.AddCommand(predicateCommand(&asJSON))
	root.AddCommand(dispatchCommand(&asJSON))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func emit(asJSON bool, res scenarioResult) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Printf("scenario:        %s\n", res.Scenario)
	fmt.Printf("before override: value=%d calls=%d\n", res.BeforeVal, res.BeforeCall)
	fmt.Printf("override:        %s\n", res.Override)
	fmt.Printf("inside scope:    value=%d calls=%d\n", res.InsideVal, res.InsideCall)
	fmt.Printf("after exit:      value=%d calls=%d\n", res.AfterVal, res.AfterCall)
	return nil
}

// fibCommand runs fib(7), recomputed after overriding fib(5).
func fibCommand(asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "fib",
		Short: "Recompute fib(7) after overriding fib(5) inside a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			space := memo.NewSpace(memo.WithName("memoscope-demo-fib"))

			calls := 0
			var fib *memo.Wrapper[int, int]
			fib = memo.WrapIn[int, int](space, "fib", func(ctx context.Context, n int) (int, error) {
				calls++
				if n < 2 {
					return n, nil
				}
				a, err := fib.Call(ctx, n-1)
				if err != nil {
					return 0, err
				}
				b, err := fib.Call(ctx, n-2)
				if err != nil {
					return 0, err
				}
				return a + b, nil
			})

			res := scenarioResult{Scenario: "fib", Override: "fib(5) = 3"}
			v, err := fib.Call(ctx, 7)
			if err != nil {
				return err
			}
			res.BeforeVal, res.BeforeCall = v, calls

			err = space.WithScope(func() error {
				if err := fib.Ref(5).Assign(3); err != nil {
					return err
				}
				calls = 0
				v, err := fib.Call(ctx, 7)
				if err != nil {
					return err
				}
				res.InsideVal, res.InsideCall = v, calls
				return nil
			})
			if err != nil {
				return err
			}

			calls = 0
			v, err = fib.Call(ctx, 7)
			if err != nil {
				return err
			}
			res.AfterVal, res.AfterCall = v, calls

			return emit(*asJSON, res)
		},
	}
}

// predicateCommand runs c(27), which dispatches through a predicate g that
// is overridden from true to false mid-scope.
func predicateCommand(asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "predicate",
		Short: "Flip a predicate-driven dispatch (f/h via g) inside a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			space := memo.NewSpace(memo.WithName("memoscope-demo-predicate"))

			calls := 0
			f := memo.WrapIn[int, int](space, "f", func(ctx context.Context, n int) (int, error) {
				calls++
				return 3*n + 1, nil
			})
			g := memo.WrapIn[int, int](space, "g", func(ctx context.Context, n int) (int, error) {
				calls++
				return n & 1, nil
			})
			h := memo.WrapIn[int, int](space, "h", func(ctx context.Context, n int) (int, error) {
				calls++
				return n / 2, nil
			})
			c := memo.WrapIn[int, int](space, "c", func(ctx context.Context, n int) (int, error) {
				calls++
				pred, err := g.Call(ctx, n)
				if err != nil {
					return 0, err
				}
				if pred != 0 {
					return f.Call(ctx, n)
				}
				return h.Call(ctx, n)
			})

			res := scenarioResult{Scenario: "predicate", Override: "g(27) = 0"}
			v, err := c.Call(ctx, 27)
			if err != nil {
				return err
			}
			res.BeforeVal, res.BeforeCall = v, calls

			err = space.WithScope(func() error {
				if err := g.Ref(27).Assign(0); err != nil {
					return err
				}
				calls = 0
				v, err := c.Call(ctx, 27)
				if err != nil {
					return err
				}
				res.InsideVal, res.InsideCall = v, calls
				return nil
			})
			if err != nil {
				return err
			}

			calls = 0
			v, err = c.Call(ctx, 27)
			if err != nil {
				return err
			}
			res.AfterVal, res.AfterCall = v, calls

			return emit(*asJSON, res)
		},
	}
}

// dispatchCommand runs c(27), which dispatches through a function-valued
// entry g, overridden to point at a different wrapper entirely.
func dispatchCommand(asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch",
		Short: "Redirect a function-valued dispatch entry inside a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			space := memo.NewSpace(memo.WithName("memoscope-demo-dispatch"))

			calls := 0
			f := memo.WrapIn[int, int](space, "f", func(ctx context.Context, n int) (int, error) {
				calls++
				return 3*n + 1, nil
			})
			h := memo.WrapIn[int, int](space, "h", func(ctx context.Context, n int) (int, error) {
				calls++
				return n / 2, nil
			})
			var g *memo.Wrapper[int, *memo.Wrapper[int, int]]
			g = memo.WrapIn[int, *memo.Wrapper[int, int]](space, "g", func(ctx context.Context, n int) (*memo.Wrapper[int, int], error) {
				calls++
				if n&1 != 0 {
					return f, nil
				}
				return h, nil
			})
			c := memo.WrapIn[int, int](space, "c", func(ctx context.Context, n int) (int, error) {
				calls++
				target, err := g.Call(ctx, n)
				if err != nil {
					return 0, err
				}
				return target.Call(ctx, n)
			})

			res := scenarioResult{Scenario: "dispatch", Override: "g(27) = h"}
			v, err := c.Call(ctx, 27)
			if err != nil {
				return err
			}
			res.BeforeVal, res.BeforeCall = v, calls

			err = space.WithScope(func() error {
				if err := g.Ref(27).Assign(h); err != nil {
					return err
				}
				calls = 0
				v, err := c.Call(ctx, 27)
				if err != nil {
					return err
				}
				res.InsideVal, res.InsideCall = v, calls
				return nil
			})
			if err != nil {
				return err
			}

			calls = 0
			v, err = c.Call(ctx, 27)
			if err != nil {
				return err
			}
			res.AfterVal, res.AfterCall = v, calls

			return emit(*asJSON, res)
		},
	}
}
