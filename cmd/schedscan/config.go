package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"schedscan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "scan:\n  dir: %s\n  output: %s\n  workers: %d\n",
			cfg.Scan.Dir, cfg.Scan.Output, cfg.Scan.Workers)
		opts := cfg.Options()
		fmt.Fprintf(cmd.OutOrStdout(), "extract:\n  seed_window_pages: %d\n  proximity_threshold_chars: %d\n  backward_max_pages: %d\n  forward_max_pages: %d\n",
			opts.SeedWindowPages, opts.ProximityThresholdChars, opts.BackwardMaxPages, opts.ForwardMaxPages)
		fmt.Fprintf(cmd.OutOrStdout(), "log:\n  level: %s\n", cfg.Log.Level)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
