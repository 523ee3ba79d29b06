package schedule

import (
	"regexp"
	"strings"

	"schedscan/internal/document"
)

// schedulePhrases are the canonical section headings, tested in order; the
// first hit is recorded. The newline variants catch headings wrapped by the
// text extractor.
var schedulePhrases = []string{
	"competition schedule",
	"competition and training schedule",
	"competition and training",
	"competition\nschedule",
	"competition \nschedule",
}

// headerKeywords are column headings that suggest a schedule-shaped table.
var headerKeywords = []string{"date", "time", "event", "events", "gender", "phase", "day", "remarks"}

// broadKeywords gate the stitcher's date-pattern admissions.
var broadKeywords = []string{"schedule", "competition", "event", "time", "date", "day", "session"}

// Table cells only need a day/month pair; page text requires a full date.
// The two definitions are intentionally different (see the stitcher passes).
var (
	monthPattern     = regexp.MustCompile(`(?i)\d{1,2}\s+(dec|jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov)`)
	cellSlashPattern = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}`)
	textSlashPattern = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
)

// PhraseSignal tests page text for the canonical schedule phrases and
// computes the proximity distance between the first occurrences of
// "competition" and "schedule". distance is -1 when either word is absent.
func PhraseSignal(text string) (hasPhrase bool, matched string, distance int) {
	lower := strings.ToLower(text)

	for _, phrase := range schedulePhrases {
		if strings.Contains(lower, phrase) {
			hasPhrase = true
			matched = phrase
			break
		}
	}

	distance = -1
	compIdx := strings.Index(lower, "competition")
	schedIdx := strings.Index(lower, "schedule")
	if compIdx >= 0 && schedIdx >= 0 {
		distance = schedIdx - compIdx
		if distance < 0 {
			distance = -distance
		}
	}

	return hasPhrase, matched, distance
}

// WeakKeyword reports whether the text contains "competition" or "schedule"
// at all. Low confidence; only ever combined with a table signal.
func WeakKeyword(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "competition") || strings.Contains(lower, "schedule")
}

// TableSignal reports whether a table is schedule-shaped. Degenerate tables
// (fewer than 2 rows) never match. The strongest signal is a header row
// carrying both "date" and "time"; weaker combinations require a date-like
// cell in the first 5 rows.
func TableSignal(t document.Table) bool {
	if t.RowCount() < 2 {
		return false
	}

	header := rowText(t[0])

	hasDateAndTime := strings.Contains(header, "date") && strings.Contains(header, "time")

	hasHeaderKeyword := false
	for _, kw := range headerKeywords {
		if strings.Contains(header, kw) {
			hasHeaderKeyword = true
			break
		}
	}

	hasDatePattern := false
	for i, row := range t {
		if i >= 5 {
			break
		}
		rt := rowText(row)
		if monthPattern.MatchString(rt) || cellSlashPattern.MatchString(rt) {
			hasDatePattern = true
			break
		}
	}

	return hasDateAndTime ||
		(hasHeaderKeyword && hasDatePattern) ||
		(hasDatePattern && t.RowCount() > 3)
}

// HasDateTimeHeader reports whether any table on the page opens with a
// header row containing both "date" and "time". Used by the stitcher as a
// continuation signal independent of full table shape.
func HasDateTimeHeader(tables []document.Table) bool {
	for _, t := range tables {
		if t.RowCount() == 0 {
			continue
		}
		header := rowText(t[0])
		if strings.Contains(header, "date") && strings.Contains(header, "time") {
			return true
		}
	}
	return false
}

// TextDatePattern reports whether page text shows a date: a day/month pair
// like "12 Dec", or a full numeric date like "12/8/2025". Stricter than the
// cell-level pattern so stray fractions in prose do not count.
func TextDatePattern(text string) bool {
	return monthPattern.MatchString(text) || textSlashPattern.MatchString(text)
}

// BroadKeyword reports whether the text contains any of the wider schedule
// vocabulary the stitcher accepts alongside a date pattern.
func BroadKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range broadKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify runs every classifier over one page. The proximity threshold is
// applied by the scorer, not here.
func Classify(page document.Page) Signal {
	hasPhrase, matched, distance := PhraseSignal(page.Text)

	sig := Signal{
		HasPhrase:         hasPhrase,
		MatchedPhrase:     matched,
		ProximityDistance: distance,
		HasWeakKeyword:    WeakKeyword(page.Text),
	}
	for _, t := range page.Tables {
		if TableSignal(t) {
			sig.HasScheduleTable = true
			break
		}
	}
	return sig
}

// rowText joins a row's cells with spaces and lowercases the result.
func rowText(row []string) string {
	return strings.ToLower(strings.Join(row, " "))
}
