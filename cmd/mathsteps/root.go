package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/njchilds90/mathsteps/internal/api"
	"github.com/njchilds90/mathsteps/internal/config"
	"github.com/njchilds90/mathsteps/internal/errors"
	"github.com/njchilds90/mathsteps/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// configPath is the --config flag value
	configPath string
	// logLevel overrides logging.level when set
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "mathsteps",
	Short: "Step-by-step algebra: simplify expressions, solve linear equations",
	Long: `mathsteps simplifies algebraic expressions (expand, simplify, factor) and
solves single-variable linear equations, narrating each step. Run it once
from the command line or serve both operations over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default: ./mathsteps.yaml or $HOME/.config/mathsteps/mathsteps.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides config)")
}

// loadConfig resolves the effective configuration.
// Precedence: --log-level > MATHSTEPS_* env > config file > defaults
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(os.Stderr, logging.LevelFromString(cfg.Logging.Level), cfg.Logging.Format)
}

// printEnvelope writes the same JSON body the HTTP API would send. The
// returned error is nil for successes and policy outcomes.
func printEnvelope(w io.Writer, ok interface{}, err error) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err == nil {
		return enc.Encode(ok)
	}
	me, isMath := errors.As(err)
	if !isMath {
		return err
	}
	if encErr := enc.Encode(api.ErrorResponse{Status: "error", Code: me.Code, Message: me.Message}); encErr != nil {
		return encErr
	}
	if me.Code.IsPolicy() {
		return nil
	}
	return err
}
