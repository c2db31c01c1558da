package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mathengine-api/internal/mathengine"
)

type evalOptions struct {
	locale  string
	asJSON  bool
	steps   bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mathcalc",
		Short:         "Evaluate arithmetic expressions step by step",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEvalCmd())
	return root
}

func newEvalCmd() *cobra.Command {
	opts := evalOptions{}

	cmd := &cobra.Command{
		Use:     "eval [expression...]",
		Short:   "Evaluate an expression and print the result",
		Example: `  mathcalc eval "2 + 3 * 4" --steps
  mathcalc eval -- -5+3    # "--" ends flag parsing before a leading minus`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runEval(cmd.OutOrStdout(), strings.Join(args, " "), opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.locale, "locale", mathengine.DefaultLocale, "locale for the formatted result (BCP 47)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&opts.steps, "steps", false, "print every reduction step")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log why an expression was rejected")

	return cmd
}

var errUnclear = errors.New("unclear expression")

func runEval(out io.Writer, expression string, opts evalOptions) error {
	logger := zap.NewNop()
	if opts.verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	engine := mathengine.New(mathengine.WithLocale(opts.locale))

	res, err := engine.Evaluate(expression)
	if err != nil {
		logger.Debug("expression rejected",
			zap.String("input", expression),
			zap.String("stage", string(mathengine.StageOf(err))),
			zap.Error(err),
		)
		return errUnclear
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if opts.steps {
		for i, step := range res.Steps {
			fmt.Fprintf(out, "%d. %s\n", i+1, step.Description)
		}
	}
	fmt.Fprintf(out, "%s = %s\n", res.Expression, res.FormattedResult)
	return nil
}
