package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"svw.info/make24/internal/config"
	"svw.info/make24/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "make24",
	Short:         "Make 24 puzzle server and solver",
	Long:          `make24 generates, solves and checks "make 24" puzzles and serves the game over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file (defaults are used when empty)")
	rootCmd.PersistentFlags().String("log-level", "", "debug|info|warn|error (overrides config)")
}

// loadConfig reads --config and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
		if err := cfg.Validate(); err != nil {
			return config.Config{}, nil, err
		}
	}
	return cfg, logging.New(logging.ParseLevel(cfg.Log.Level)), nil
}
