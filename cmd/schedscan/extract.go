package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"schedscan/internal/batch"
	"schedscan/internal/document"
	"schedscan/internal/report"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Extract schedules from every handbook in a directory",
	Long: `Extract runs the full batch: every *.pdf in the directory is scanned,
results are grouped by sport, and an xlsx report is written.

The directory defaults to scan.dir from the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		dir := cfg.Scan.Dir
		if len(args) == 1 {
			dir = args[0]
		}
		out := cfg.Scan.Output
		if extractOutput != "" {
			out = extractOutput
		}

		runner := &batch.Runner{
			Source:  document.NewTabulaSource(),
			Options: cfg.Options(),
			Workers: cfg.Scan.Workers,
			Logger:  log,
		}
		outcome, err := runner.Run(cmd.Context(), dir)
		if err != nil {
			return err
		}

		rows := report.Build(outcome)
		if err := report.WriteWorkbook(out, rows, outcome); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), report.Summary(rows))
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d documents, %d sports, %d failures)\n",
			out, outcome.DocumentCount(), len(outcome.Groups), len(outcome.Failures))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "xlsx report path (default: scan.output)")
}
