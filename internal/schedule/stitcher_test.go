package schedule

import (
	"log/slog"
	"reflect"
	"sort"
	"testing"

	"schedscan/internal/document"
)

var testLog = slog.New(slog.DiscardHandler)

func makeDoc(name string, pages ...document.Page) *document.Document {
	for i := range pages {
		pages[i].Index = i
	}
	return &document.Document{SourceName: name, Pages: pages}
}

func textPage(text string, tables ...document.Table) document.Page {
	return document.Page{Text: text, Tables: tables}
}

func TestExtractNoMatch(t *testing.T) {
	doc := makeDoc("empty.pdf",
		textPage("Handbook"),
		textPage("General information"),
		textPage("Venue maps"),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	if res.HadAnyMatch {
		t.Fatal("expected no match")
	}
	if res.CombinedText != NoScheduleFound {
		t.Errorf("CombinedText = %q, want %q", res.CombinedText, NoScheduleFound)
	}
	if len(res.MatchedPages) != 0 {
		t.Errorf("MatchedPages = %v, want none", res.PageNumbers())
	}
}

func TestExtractCoverPageExcluded(t *testing.T) {
	// The phrase sits on the cover; the window starts at the second page.
	doc := makeDoc("cover.pdf",
		textPage("Competition Schedule"),
		textPage("General information"),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	if res.HadAnyMatch {
		t.Errorf("cover page must not seed, got pages %v", res.PageNumbers())
	}
}

func TestExtractGapFill(t *testing.T) {
	doc := makeDoc("gaps.pdf",
		textPage("Handbook"),
		textPage("General information"),
		textPage("Competition Schedule"),
		textPage("Morning of 12 Dec"),
		textPage(""), // unreadable page splits the span
		textPage("Continued", scheduleTable()),
		textPage("Competition Schedule continued"),
		textPage("Venue maps"),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	want := []int{3, 4, 6, 7}
	if !reflect.DeepEqual(res.PageNumbers(), want) {
		t.Fatalf("PageNumbers = %v, want %v", res.PageNumbers(), want)
	}

	bySource := map[int]MatchSource{}
	for _, mp := range res.MatchedPages {
		bySource[mp.PageNumber] = mp.Source
	}
	if bySource[3] != SourcePhrase || bySource[7] != SourcePhrase {
		t.Errorf("seed pages should be phrase matches, got %v", bySource)
	}
	if bySource[4] != SourceContinuation || bySource[6] != SourceContinuation {
		t.Errorf("gap pages should be continuations, got %v", bySource)
	}
}

func TestExtractBackwardBounded(t *testing.T) {
	// Three qualifying pages precede the seed but only two may be taken.
	doc := makeDoc("backward.pdf",
		textPage("Handbook"),
		textPage("Preliminary schedule from 10 Dec"),
		textPage("Preliminary schedule from 11 Dec"),
		textPage("Preliminary schedule from 12 Dec"),
		textPage("Competition Schedule"),
		textPage("Venue maps"),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	want := []int{3, 4, 5}
	if !reflect.DeepEqual(res.PageNumbers(), want) {
		t.Errorf("PageNumbers = %v, want %v", res.PageNumbers(), want)
	}
}

func TestExtractBackwardNeverTakesCover(t *testing.T) {
	doc := makeDoc("nocover.pdf",
		textPage("Schedule summary 10 Dec"), // cover qualifies on signals alone
		textPage("Preliminary schedule from 11 Dec"),
		textPage("Competition Schedule"),
		textPage("Venue maps"),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	want := []int{2, 3}
	if !reflect.DeepEqual(res.PageNumbers(), want) {
		t.Errorf("PageNumbers = %v, want %v", res.PageNumbers(), want)
	}
}

func TestExtractBackwardStopsAtFirstFailure(t *testing.T) {
	// A qualifying page behind a non-qualifying one stays unreachable.
	doc := makeDoc("backstop.pdf",
		textPage("Handbook"),
		textPage("Filler"),
		textPage("Preliminary schedule from 11 Dec"),
		textPage("Venue maps"),
		textPage("Competition Schedule"),
		textPage("Closing info"),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	want := []int{5}
	if !reflect.DeepEqual(res.PageNumbers(), want) {
		t.Errorf("PageNumbers = %v, want %v", res.PageNumbers(), want)
	}
}

func TestExtractForwardBounded(t *testing.T) {
	// Table pages run well past the seed; only five may be taken, counted
	// from the last page matched before extension started.
	pages := []document.Page{
		textPage("Handbook"),
		textPage("General information"),
		textPage("Competition Schedule"),
	}
	for i := 0; i < 7; i++ {
		pages = append(pages, textPage("Continued", scheduleTable()))
	}
	doc := makeDoc("forward.pdf", pages...)

	res := Extract(doc, DefaultOptions(), testLog)
	want := []int{3, 4, 5, 6, 7, 8}
	if !reflect.DeepEqual(res.PageNumbers(), want) {
		t.Errorf("PageNumbers = %v, want %v", res.PageNumbers(), want)
	}
}

func TestExtractForwardAdjacentDatePattern(t *testing.T) {
	// A bare date pattern extends the span only onto the immediately
	// adjacent page.
	doc := makeDoc("adjacent.pdf",
		textPage("Handbook"),
		textPage("General information"),
		textPage("Competition Schedule"),
		textPage("Finals 12 Dec"),
		textPage("Medals 13 Dec"),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	want := []int{3, 4}
	if !reflect.DeepEqual(res.PageNumbers(), want) {
		t.Fatalf("PageNumbers = %v, want %v", res.PageNumbers(), want)
	}
	if got := res.MatchedPages[1].Rule; got != "adjacent date pattern" {
		t.Errorf("page 4 rule = %q, want %q", got, "adjacent date pattern")
	}
}

func TestExtractForwardStopsAtEmptyPage(t *testing.T) {
	doc := makeDoc("emptystop.pdf",
		textPage("Handbook"),
		textPage("General information"),
		textPage("Competition Schedule"),
		textPage(""),
		textPage("Continued", scheduleTable()),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	want := []int{3}
	if !reflect.DeepEqual(res.PageNumbers(), want) {
		t.Errorf("PageNumbers = %v, want %v", res.PageNumbers(), want)
	}
}

func TestExtractHarvest(t *testing.T) {
	// A phrase-matched page vouches for any non-trivial table; continuation
	// pages only contribute tables that qualify on shape.
	loose3 := document.Table{{"x"}, {"y"}, {"z"}}
	loose2 := document.Table{{"x"}, {"y"}}

	doc := makeDoc("harvest.pdf",
		textPage("Handbook"),
		textPage("General information"),
		textPage("Competition Schedule", loose3, loose2),
		textPage("Continued", scheduleTable(), loose3),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	want := []int{3, 4}
	if !reflect.DeepEqual(res.PageNumbers(), want) {
		t.Fatalf("PageNumbers = %v, want %v", res.PageNumbers(), want)
	}

	tables := res.Tables()
	if len(tables) != 2 {
		t.Fatalf("harvested %d tables, want 2", len(tables))
	}
	if tables[0].PageNumber != 3 || !reflect.DeepEqual(tables[0].Rows, loose3) {
		t.Errorf("table 0 = page %d %v", tables[0].PageNumber, tables[0].Rows)
	}
	if tables[1].PageNumber != 4 || !reflect.DeepEqual(tables[1].Rows, scheduleTable()) {
		t.Errorf("table 1 = page %d %v", tables[1].PageNumber, tables[1].Rows)
	}
}

func TestExtractCombinedText(t *testing.T) {
	doc := makeDoc("combined.pdf",
		textPage("Handbook"),
		textPage("General information"),
		textPage("Competition Schedule"),
		textPage("Finals 12 Dec"),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	want := "Page 3: Competition Schedule\n\n--- Page Break ---\n\nPage 4: Finals 12 Dec"
	if res.CombinedText != want {
		t.Errorf("CombinedText = %q, want %q", res.CombinedText, want)
	}
}

func TestExtractPagesSortedUnique(t *testing.T) {
	doc := makeDoc("sorted.pdf",
		textPage("Handbook"),
		textPage("Preliminary schedule from 11 Dec"),
		textPage("Competition Schedule"),
		textPage("Morning of 12 Dec"),
		textPage("Competition Schedule continued"),
		textPage("Continued", scheduleTable()),
		textPage("Closing info"),
	)

	res := Extract(doc, DefaultOptions(), testLog)
	nums := res.PageNumbers()
	if !sort.IntsAreSorted(nums) {
		t.Errorf("pages not ascending: %v", nums)
	}
	seen := map[int]bool{}
	for _, n := range nums {
		if seen[n] {
			t.Errorf("duplicate page %d in %v", n, nums)
		}
		seen[n] = true
	}
}
