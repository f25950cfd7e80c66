package main

import (
	"fmt"
	"strings"

	"github.com/njchilds90/mathsteps/internal/api"
	"github.com/njchilds90/mathsteps/internal/cas"
	"github.com/njchilds90/mathsteps/internal/simplifier"
	"github.com/spf13/cobra"
)

var simplifyJSON bool

var simplifyCmd = &cobra.Command{
	Use:   "simplify <expression>",
	Short: "Expand, simplify and factor an expression",
	Long: `Run an expression through expand, simplify and factor, printing each
stage that changes it. Arguments are joined with spaces.`,
	Example: `  mathsteps simplify "(x+1)^2"
  mathsteps simplify --json "2*x + 4"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimplify,
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
	simplifyCmd.Flags().BoolVar(&simplifyJSON, "json", false, "Print the HTTP response body instead of text")
}

func runSimplify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := simplifier.Pipeline{Engine: cas.Symbolic{}, MaxInputLength: cfg.Limits.MaxInputLength}
	res, err := p.Run(strings.Join(args, " "))

	out := cmd.OutOrStdout()
	if simplifyJSON {
		return printEnvelope(out, api.SimplifyResponse{Status: "ok", Result: res}, err)
	}
	if err != nil {
		return err
	}
	for i, step := range res.Steps {
		fmt.Fprintf(out, "%d. %s\n", i+1, step)
	}
	fmt.Fprintf(out, "Result: %s\n", res.Result)
	return nil
}
