package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"symrand/domain/core"
	"symrand/domain/expr"
	"symrand/internal"
	"symrand/internal/config"
	"symrand/internal/container"
	"symrand/internal/evaluation"
	"symrand/internal/randstate"
	"symrand/internal/summary"
)

type options struct {
	session string
	xlsx    string
	summary bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "symrand",
		Short: "symrand CLI for pseudorandom sampling with persistent generator state",
		Long: `Evaluate RandomInteger, RandomReal, RandomComplex, RandomChoice, RandomSample,
SeedRandom and $RandomState against a session's stored random state.

The store is chosen by STORE_DRIVER (memory, sqlite or postgres). With a
persistent store, pass --session to continue a previous session's stream.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.session, "session", "", "Session id to evaluate in (a new session when empty)")
	flags.StringVar(&opts.xlsx, "xlsx", "", "Also write the result to this .xlsx workbook")
	flags.BoolVar(&opts.summary, "summary", false, "Print summary statistics of the numeric result")

	rootCmd.AddCommand(
		newEvalCmd(opts),
		newRangeCmd(opts, "integer", "RandomInteger", "Draw pseudorandom integers from {min, max}"),
		newRangeCmd(opts, "real", "RandomReal", "Draw pseudorandom reals from [min, max)"),
		newRangeCmd(opts, "complex", "RandomComplex", "Draw pseudorandom complex numbers from the rectangle spanned by two corners"),
		newSelectionCmd(opts, "choice", "RandomChoice", "Choose elements with replacement"),
		newSelectionCmd(opts, "sample", "RandomSample", "Sample elements without replacement"),
		newSeedCmd(opts),
		newStateCmd(opts),
	)
	return rootCmd
}

func newEvalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eval [expression-json]",
		Short: "Evaluate an expression given in JSON form",
		Long: `Evaluate an expression in its JSON form.

Example: symrand eval '{"head": "RandomInteger", "args": [[1, 6], [2, 3]]}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := expr.ParseJSON([]byte(args[0]))
			if err != nil {
				return fmt.Errorf("invalid expression: %w", err)
			}
			return run(cmd, opts, e)
		},
	}
}

func newRangeCmd(opts *options, use, builtin, short string) *cobra.Command {
	var dims []int

	cmd := &cobra.Command{
		Use:   use + " [max | min max]",
		Short: short,
		Long: short + `.

Endpoints are JSON values, so complex corners are written {"complex": [re, im]}.

Example: symrand ` + use + ` 0 10 --dims 2,3`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}

			var callArgs []expr.Expr
			switch len(values) {
			case 1:
				callArgs = values
			case 2:
				callArgs = []expr.Expr{expr.List(values...)}
			}
			if cmd.Flags().Changed("dims") {
				if len(callArgs) == 0 {
					return fmt.Errorf("--dims requires a range")
				}
				callArgs = append(callArgs, dimsExpr(dims))
			}
			return run(cmd, opts, expr.New(builtin, callArgs...))
		},
	}

	cmd.Flags().IntSliceVar(&dims, "dims", nil, "Dimensions of the result array, e.g. 2,3")
	return cmd
}

func newSelectionCmd(opts *options, use, builtin, short string) *cobra.Command {
	var dims []int
	var weights string

	cmd := &cobra.Command{
		Use:   use + " [elements-json]",
		Short: short,
		Long: short + `.

Example: symrand ` + use + ` '["a", "b", "c"]' --weights '[1, 2, 3]' --dims 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := expr.ParseJSON([]byte(args[0]))
			if err != nil {
				return fmt.Errorf("invalid elements: %w", err)
			}
			if weights != "" {
				w, err := expr.ParseJSON([]byte(weights))
				if err != nil {
					return fmt.Errorf("invalid weights: %w", err)
				}
				domain = expr.Rule(w, domain)
			}

			callArgs := []expr.Expr{domain}
			if cmd.Flags().Changed("dims") {
				callArgs = append(callArgs, dimsExpr(dims))
			}
			return run(cmd, opts, expr.New(builtin, callArgs...))
		},
	}

	cmd.Flags().IntSliceVar(&dims, "dims", nil, "Dimensions of the result array, e.g. 2,3")
	cmd.Flags().StringVar(&weights, "weights", "", "JSON list of weights, one per element")
	return cmd
}

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [integer | string]",
		Short: "Reseed the session's generator",
		Long: `Reseed the session's generator with an integer, with the digest of a string,
or from system entropy when no value is given.

Example: symrand seed 42 --session 3f0b...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var callArgs []expr.Expr
			if len(args) == 1 {
				if n, ok := new(big.Int).SetString(strings.TrimSpace(args[0]), 10); ok {
					callArgs = append(callArgs, expr.NewBigInteger(n))
				} else {
					callArgs = append(callArgs, expr.NewString(args[0]))
				}
			}
			return run(cmd, opts, expr.New("SeedRandom", callArgs...))
		},
	}
}

func newStateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the session's Random State Value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, expr.NewSymbol(randstate.StateName))
		},
	}
}

// run evaluates e in the selected session and prints the result
func run(cmd *cobra.Command, opts *options, e expr.Expr) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.NewLogger(cfg.LogLevel()).WithOutput(stderr)

	c, err := container.New(cfg, logger)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := c.OpenStore(ctx); err != nil {
		return err
	}
	defer c.Shutdown(ctx)

	sessionID := core.NewSessionID()
	if opts.session != "" {
		if sessionID, err = core.ParseSessionID(opts.session); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(stderr, "session %s\n", sessionID)
	}

	ev := evaluation.New(sessionID, c.Repo.Scoped(sessionID), logger)
	result, err := c.Kernel.Evaluate(ctx, ev, e)
	if err != nil {
		return fmt.Errorf("failed to evaluate %s: %w", e, err)
	}

	for _, msg := range ev.Drain() {
		fmt.Fprintln(stderr, msg)
	}
	fmt.Fprintln(stdout, result)

	if opts.summary {
		if s, ok := summary.Of(result); ok {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(s); err != nil {
				return fmt.Errorf("failed to print summary: %w", err)
			}
		}
	}

	if opts.xlsx != "" {
		if err := c.Excel.Save(result, opts.xlsx); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "wrote %s\n", opts.xlsx)
	}
	return nil
}

func parseValues(args []string) ([]expr.Expr, error) {
	values := make([]expr.Expr, len(args))
	for i, arg := range args {
		v, err := expr.ParseJSON([]byte(arg))
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", arg, err)
		}
		values[i] = v
	}
	return values, nil
}

func dimsExpr(dims []int) expr.Expr {
	leaves := make([]expr.Expr, len(dims))
	for i, d := range dims {
		leaves[i] = expr.NewInteger(int64(d))
	}
	return expr.List(leaves...)
}
