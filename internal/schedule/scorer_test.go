package schedule

import (
	"strings"
	"testing"

	"schedscan/internal/document"
)

// scheduleTable is shaped so TableSignal accepts it.
func scheduleTable() document.Table {
	return document.Table{
		{"Date", "Time", "Event"},
		{"12 Dec", "09:00", "Final"},
	}
}

func TestScorePage(t *testing.T) {
	opts := DefaultOptions()

	tests := []struct {
		name       string
		page       document.Page
		wantOK     bool
		wantSource MatchSource
		wantRule   string
	}{
		{
			name:       "phrase wins without tables",
			page:       document.Page{Index: 2, Text: "Competition Schedule"},
			wantOK:     true,
			wantSource: SourcePhrase,
			wantRule:   "schedule phrase",
		},
		{
			name: "proximity under threshold with table",
			page: document.Page{
				Index:  3,
				Text:   "competition" + strings.Repeat("x", 38) + "schedule",
				Tables: []document.Table{scheduleTable()},
			},
			wantOK:     true,
			wantSource: SourceProximityTable,
			wantRule:   "proximity match + schedule table",
		},
		{
			name: "proximity at threshold is exclusive, table+keyword catches it",
			page: document.Page{
				Index:  3,
				Text:   "competition" + strings.Repeat("x", 39) + "schedule",
				Tables: []document.Table{scheduleTable()},
			},
			wantOK:     true,
			wantSource: SourceTableKeyword,
			wantRule:   "schedule table + keyword",
		},
		{
			name: "proximity under threshold without table",
			page: document.Page{
				Index: 3,
				Text:  "competition" + strings.Repeat("x", 38) + "schedule",
			},
			wantOK: false,
		},
		{
			name: "table alone without schedule vocabulary",
			page: document.Page{
				Index:  4,
				Text:   "Daily sessions at the arena",
				Tables: []document.Table{scheduleTable()},
			},
			wantOK: false,
		},
		{
			name: "table with lone keyword",
			page: document.Page{
				Index:  4,
				Text:   "The schedule below is provisional.",
				Tables: []document.Table{scheduleTable()},
			},
			wantOK:     true,
			wantSource: SourceTableKeyword,
			wantRule:   "schedule table + keyword",
		},
		{
			name: "empty text is inert even with tables",
			page: document.Page{
				Index:  5,
				Tables: []document.Table{scheduleTable()},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, source, ruleName, ok := ScorePage(tt.page, opts)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if source != "" || ruleName != "" {
					t.Errorf("rejected page should carry no source/rule, got %q/%q", source, ruleName)
				}
				return
			}
			if source != tt.wantSource {
				t.Errorf("source = %q, want %q", source, tt.wantSource)
			}
			if ruleName != tt.wantRule {
				t.Errorf("rule = %q, want %q", ruleName, tt.wantRule)
			}
		})
	}
}

func TestSeedWindow(t *testing.T) {
	tests := []struct {
		name      string
		pageCount int
		window    int
		wantStart int
		wantEnd   int
	}{
		{"long document", 30, 10, 1, 9},
		{"exactly window sized", 10, 10, 1, 9},
		{"short document clamps", 5, 10, 1, 4},
		{"single page yields empty window", 1, 10, 1, 0},
		{"custom window", 30, 3, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.SeedWindowPages = tt.window
			start, end := seedWindow(tt.pageCount, opts)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("seedWindow(%d) = (%d, %d), want (%d, %d)",
					tt.pageCount, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
