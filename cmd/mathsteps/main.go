// Command mathsteps simplifies expressions and solves linear equations
// step by step, from the command line or over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/njchilds90/mathsteps/internal/errors"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if me, ok := errors.As(err); ok {
			fmt.Fprintln(os.Stderr, "Error:", me.Message)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
