package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Summary renders a compact console table of the batch: one line per
// document with its sport key, matched pages, and duplicate flag.
func Summary(rows []Row) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"Sport", "Source File", "Pages", "Duplicate"})
	for _, row := range rows {
		dup := ""
		if row.HasDuplicate {
			dup = "yes"
		}
		tw.AppendRow(table.Row{row.Sport, row.SourceFile, row.PagesFound, dup})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
