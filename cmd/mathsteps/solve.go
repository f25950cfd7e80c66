package main

import (
	"fmt"
	"strings"

	"github.com/njchilds90/mathsteps/internal/api"
	"github.com/njchilds90/mathsteps/internal/cas"
	"github.com/njchilds90/mathsteps/internal/errors"
	"github.com/njchilds90/mathsteps/internal/solver"
	"github.com/spf13/cobra"
)

var solveJSON bool

var solveCmd = &cobra.Command{
	Use:   "solve <equation>",
	Short: "Solve a linear equation in one variable",
	Long: `Solve a single-variable linear equation, printing each step. The
equation must contain exactly one '='. Arguments are joined with spaces.`,
	Example: `  mathsteps solve "2(x+3) = 4x"
  mathsteps solve --json "9x+8762 = 283-8x"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "Print the HTTP response body instead of text")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := solver.Pipeline{Engine: cas.Symbolic{}, MaxInputLength: cfg.Limits.MaxInputLength}
	res, err := p.Run(strings.Join(args, " "))

	out := cmd.OutOrStdout()
	if solveJSON {
		return printEnvelope(out, api.SolveResponse{Status: "ok", Result: res}, err)
	}
	if err != nil {
		if me, ok := errors.As(err); ok && me.Code.IsPolicy() {
			fmt.Fprintln(out, me.Message)
			return nil
		}
		return err
	}
	for i, step := range res.Steps {
		fmt.Fprintf(out, "%d. %s\n", i+1, step)
	}
	fmt.Fprintf(out, "Solution: %s\n", res.Solution)
	return nil
}
