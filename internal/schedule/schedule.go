// Package schedule locates the competition-schedule section of a handbook.
//
// Detection runs in two phases. The scorer tests each page inside a bounded
// initial window against an ordered list of acceptance rules to build a seed
// set. The stitcher then expands the seed set into a contiguous span: it
// fills gaps between the first and last seeded page, extends backward a
// bounded number of pages, and extends forward a bounded number of pages,
// each pass driven by its own ordered rule list.
package schedule

import (
	"fmt"
	"strings"

	"schedscan/internal/document"
)

// NoScheduleFound is the sentinel combined text for documents where no page
// cleared any acceptance rule.
const NoScheduleFound = "NO SCHEDULE FOUND"

// pageBreak separates labeled page blocks in the combined text.
const pageBreak = "\n\n--- Page Break ---\n\n"

// MatchSource records which class of rule admitted a page.
type MatchSource string

const (
	SourcePhrase         MatchSource = "phrase"
	SourceProximityTable MatchSource = "proximity+table"
	SourceTableKeyword   MatchSource = "table+keyword"
	SourceContinuation   MatchSource = "continuation"
)

// Signal is the result of classifying one page's text and tables.
type Signal struct {
	HasPhrase         bool
	MatchedPhrase     string
	ProximityDistance int // -1 when "competition" and "schedule" do not both occur
	HasScheduleTable  bool
	HasWeakKeyword    bool
}

// PageTable is a qualifying table together with its originating 1-indexed
// page number, for downstream reporting.
type PageTable struct {
	PageNumber int
	Rows       document.Table
}

// MatchedPage is one page admitted to the schedule span.
type MatchedPage struct {
	PageNumber int // 1-indexed
	Source     MatchSource
	Rule       string // name of the rule that admitted the page
	Text       string
	Tables     []PageTable
}

// Result is the extraction outcome for one document. MatchedPages is sorted
// ascending by page number with no duplicates. When HadAnyMatch is false,
// CombinedText holds the NoScheduleFound sentinel.
type Result struct {
	SourceFile   string
	MatchedPages []MatchedPage
	CombinedText string
	HadAnyMatch  bool
}

// PageNumbers returns the 1-indexed page numbers of the matched span.
func (r Result) PageNumbers() []int {
	nums := make([]int, len(r.MatchedPages))
	for i, mp := range r.MatchedPages {
		nums[i] = mp.PageNumber
	}
	return nums
}

// Tables returns every qualifying table across the span in page order.
func (r Result) Tables() []PageTable {
	var out []PageTable
	for _, mp := range r.MatchedPages {
		out = append(out, mp.Tables...)
	}
	return out
}

// Options bound the scorer window and the stitcher expansion passes.
type Options struct {
	// SeedWindowPages is the size of the initial search window. The window
	// covers 0-indexed pages 1 through SeedWindowPages-1 (the cover page is
	// always excluded), clamped to the document.
	SeedWindowPages int

	// ProximityThresholdChars is the exclusive upper bound on the character
	// distance between "competition" and "schedule" for a proximity match.
	ProximityThresholdChars int

	// BackwardMaxPages bounds backward extension before the first seeded
	// page. Extension never walks below the window start (page index 1).
	BackwardMaxPages int

	// ForwardMaxPages bounds forward extension after the last matched page.
	ForwardMaxPages int
}

// DefaultOptions mirrors the bounds the format's handbooks were tuned
// against: a ten-page window, 50-char proximity, two pages back, five
// pages forward.
func DefaultOptions() Options {
	return Options{
		SeedWindowPages:         10,
		ProximityThresholdChars: 50,
		BackwardMaxPages:        2,
		ForwardMaxPages:         5,
	}
}

// combine renders the matched pages as labeled blocks joined by explicit
// page-break separators, in ascending page order.
func combine(pages []MatchedPage) string {
	blocks := make([]string, len(pages))
	for i, mp := range pages {
		blocks[i] = fmt.Sprintf("Page %d: %s", mp.PageNumber, mp.Text)
	}
	return strings.Join(blocks, pageBreak)
}
