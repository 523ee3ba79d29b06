package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"schedscan/internal/config"
	"schedscan/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "schedscan",
	Short: "Competition schedule extraction from event handbook PDFs",
	Long: `Schedscan locates and extracts competition schedule sections from
multi-sport event handbook PDFs.

For each handbook it:
  - Scans the front of the document for schedule phrases and tables
  - Grows the matched section backward and forward across page breaks
  - Harvests schedule tables from the matched pages
  - Groups results by sport, flagging duplicate handbooks per sport

A batch run over a directory produces an xlsx report with one row
per sport.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.schedscan/config.yaml)",
	)

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration and builds the process logger from it.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	slog.SetDefault(log)
	return cfg, log, nil
}
