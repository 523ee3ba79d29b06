package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"schedscan/internal/batch"
	"schedscan/internal/document"
	"schedscan/internal/report"
	"schedscan/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and re-extract as handbooks arrive",
	Long: `Watch runs an initial batch, then re-runs it whenever PDFs are added,
replaced, or removed in the directory. Each run rewrites the xlsx
report. Stops on interrupt.`,
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

		src := document.NewTabulaSource()
		runner := &batch.Runner{
			Source:  src,
			Options: cfg.Options(),
			Workers: cfg.Scan.Workers,
			Logger:  log,
		}

		w := &watch.Watcher{
			Dir:      dir,
			Prober:   src,
			Debounce: watchDebounce,
			Logger:   log,
			OnBatch: func(ctx context.Context) error {
				outcome, err := runner.Run(ctx, dir)
				if err != nil {
					return err
				}
				rows := report.Build(outcome)
				if err := report.WriteWorkbook(cfg.Scan.Output, rows, outcome); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				log.Info("report updated",
					"output", cfg.Scan.Output,
					"documents", outcome.DocumentCount(),
					"sports", len(outcome.Groups))
				return nil
			},
		}

		err = w.Run(cmd.Context())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "quiet period before re-running the batch")
}
