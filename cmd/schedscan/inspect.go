package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"schedscan/internal/document"
	"schedscan/internal/schedule"
	"schedscan/internal/sportkey"
)

var inspectAll bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Show per-page detection signals for one handbook",
	Long: `Inspect prints the signals the engine sees on each page of a single
handbook, then the section it would extract. Useful when a handbook
matches the wrong pages or nothing at all.

By default only pages with at least one signal are listed; --all prints
every page.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		src := document.NewTabulaSource()
		doc, err := src.Open(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		name := filepath.Base(args[0])
		fmt.Fprintf(out, "File:  %s\n", name)
		fmt.Fprintf(out, "Sport: %s\n", sportkey.Identify(name))
		fmt.Fprintf(out, "Pages: %d\n\n", doc.PageCount())

		for _, page := range doc.Pages {
			sig := schedule.Classify(page)
			notes := describe(page, sig)
			if len(notes) == 0 && !inspectAll {
				continue
			}
			line := "-"
			if len(notes) > 0 {
				line = strings.Join(notes, ", ")
			}
			fmt.Fprintf(out, "page %3d: %s\n", page.Index+1, line)
		}

		res := schedule.Extract(doc, cfg.Options(), log)
		fmt.Fprintln(out)
		if !res.HadAnyMatch {
			fmt.Fprintln(out, "No schedule section found.")
			return nil
		}
		fmt.Fprintf(out, "Matched pages: %v\n", res.PageNumbers())
		for _, mp := range res.MatchedPages {
			fmt.Fprintf(out, "  page %3d: %s (%s), %d tables harvested\n",
				mp.PageNumber, mp.Rule, mp.Source, len(mp.Tables))
		}
		return nil
	},
}

// describe lists the raw signals present on a page, in scoring order.
func describe(page document.Page, sig schedule.Signal) []string {
	var notes []string
	if sig.HasPhrase {
		notes = append(notes, fmt.Sprintf("phrase %q", sig.MatchedPhrase))
	}
	if sig.ProximityDistance >= 0 {
		notes = append(notes, fmt.Sprintf("proximity %d", sig.ProximityDistance))
	}
	if sig.HasScheduleTable {
		n := 0
		for _, t := range page.Tables {
			if schedule.TableSignal(t) {
				n++
			}
		}
		notes = append(notes, fmt.Sprintf("schedule tables %d/%d", n, len(page.Tables)))
	} else if len(page.Tables) > 0 {
		notes = append(notes, fmt.Sprintf("tables %d (no signal)", len(page.Tables)))
	}
	if schedule.HasDateTimeHeader(page.Tables) {
		notes = append(notes, "date+time header")
	}
	if schedule.TextDatePattern(page.Text) {
		notes = append(notes, "date pattern")
	}
	if sig.HasWeakKeyword {
		notes = append(notes, "keyword")
	}
	return notes
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectAll, "all", false, "print every page, not just pages with signals")
}
