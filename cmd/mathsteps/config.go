package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configSavePath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration mathsteps would run with, after merging
defaults, the config file and MATHSTEPS_* environment variables. With
--save the result is also written to a file.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVar(&configSavePath, "save", "", "Also write the configuration to this path")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := cfg.YAML()
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}
	if configSavePath != "" {
		if err := cfg.Save(configSavePath); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Configuration saved to %s\n", configSavePath)
	}
	return nil
}
