// Package report flattens batch outcomes into rows and renders them to a
// workbook and a console summary.
package report

import (
	"fmt"
	"strings"

	"schedscan/internal/batch"
	"schedscan/internal/schedule"
)

// Row is one report line: a flattening of one extraction plus its serialized
// tables and a duplicate flag.
type Row struct {
	Sport        string
	SourceFile   string
	PagesFound   string
	ScheduleText string
	HasDuplicate bool
}

// Build converts a batch outcome into ordered report rows: sport group by
// sport group in first-insertion order, document by document within each
// group.
func Build(o *batch.Outcome) []Row {
	var rows []Row
	for _, g := range o.Groups {
		dup := o.HasDuplicate(g.Key)
		for _, ex := range g.Extractions {
			rows = append(rows, Row{
				Sport:        ex.SportKey,
				SourceFile:   ex.Filename,
				PagesFound:   pagesFound(ex.Result),
				ScheduleText: scheduleText(ex.Result),
				HasDuplicate: dup,
			})
		}
	}
	return rows
}

func pagesFound(res schedule.Result) string {
	nums := res.PageNumbers()
	if len(nums) == 0 {
		return "N/A"
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}

// scheduleText appends the serialized qualifying tables to the combined page
// text, each table prefixed with its originating page and rows pipe-joined.
func scheduleText(res schedule.Result) string {
	tables := res.Tables()
	if len(tables) == 0 {
		return res.CombinedText
	}

	var sb strings.Builder
	sb.WriteString(res.CombinedText)
	sb.WriteString("\n\n--- TABLES FOUND ---\n")
	for _, t := range tables {
		fmt.Fprintf(&sb, "\nTable from Page %d:\n", t.PageNumber)
		for _, row := range t.Rows {
			sb.WriteString(strings.Join(row, " | "))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
