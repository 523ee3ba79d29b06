package schedule

import (
	"strings"
	"testing"

	"schedscan/internal/document"
)

func TestPhraseSignal(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantPhrase   bool
		wantMatched  string
		wantDistance int
	}{
		{
			name:         "canonical phrase",
			text:         "3. Competition Schedule\nThe events run daily.",
			wantPhrase:   true,
			wantMatched:  "competition schedule",
			wantDistance: 12,
		},
		{
			name:         "training variant",
			text:         "Competition and Training Schedule for all venues",
			wantPhrase:   true,
			wantMatched:  "competition and training schedule",
			wantDistance: 25,
		},
		{
			name:         "wrapped heading",
			text:         "COMPETITION\nSCHEDULE",
			wantPhrase:   true,
			wantMatched:  "competition\nschedule",
			wantDistance: 12,
		},
		{
			name:         "words apart is not a phrase",
			text:         "competition" + strings.Repeat("x", 38) + "schedule",
			wantPhrase:   false,
			wantDistance: 49,
		},
		{
			name:         "schedule before competition uses absolute distance",
			text:         "schedule of the competition",
			wantPhrase:   false,
			wantDistance: 16,
		},
		{
			name:         "missing word yields sentinel distance",
			text:         "the competition starts tomorrow",
			wantPhrase:   false,
			wantDistance: -1,
		},
		{
			name:         "empty text",
			text:         "",
			wantPhrase:   false,
			wantDistance: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasPhrase, matched, distance := PhraseSignal(tt.text)
			if hasPhrase != tt.wantPhrase {
				t.Errorf("hasPhrase = %v, want %v", hasPhrase, tt.wantPhrase)
			}
			if matched != tt.wantMatched {
				t.Errorf("matched = %q, want %q", matched, tt.wantMatched)
			}
			if distance != tt.wantDistance {
				t.Errorf("distance = %d, want %d", distance, tt.wantDistance)
			}
		})
	}
}

func TestTableSignal(t *testing.T) {
	tests := []struct {
		name  string
		table document.Table
		want  bool
	}{
		{
			name:  "date and time header",
			table: document.Table{{"Date", "Time", "Event"}, {"tba", "tba", "tba"}},
			want:  true,
		},
		{
			name:  "header keyword with date cell",
			table: document.Table{{"Day", "Gender"}, {"12 Dec", "Men"}},
			want:  true,
		},
		{
			name: "date cells in a long table without header keywords",
			table: document.Table{
				{"aaa", "bbb"},
				{"12/8", "prelims"},
				{"ccc", "ddd"},
				{"eee", "fff"},
			},
			want: true,
		},
		{
			name: "date cells in a short table without header keywords",
			table: document.Table{
				{"aaa"},
				{"12/8"},
				{"ccc"},
			},
			want: false,
		},
		{
			name:  "header keyword without any date",
			table: document.Table{{"Date", "Venue"}, {"tbd", "arena"}},
			want:  false,
		},
		{
			name: "date beyond the first five rows is ignored",
			table: document.Table{
				{"a"}, {"b"}, {"c"}, {"d"}, {"e"}, {"12 Dec"},
			},
			want: false,
		},
		{
			name:  "single row is degenerate",
			table: document.Table{{"Date", "Time"}},
			want:  false,
		},
		{
			name:  "empty table",
			table: document.Table{},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TableSignal(tt.table); got != tt.want {
				t.Errorf("TableSignal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasDateTimeHeader(t *testing.T) {
	// Unlike TableSignal, a single-row table still counts: the header alone
	// is the continuation signal.
	single := []document.Table{{{"Date", "Time"}}}
	if !HasDateTimeHeader(single) {
		t.Error("single-row date/time header should count")
	}

	none := []document.Table{{{"Venue", "Notes"}, {"arena", "tba"}}}
	if HasDateTimeHeader(none) {
		t.Error("header without date and time should not count")
	}

	if HasDateTimeHeader(nil) {
		t.Error("no tables should not count")
	}
}

func TestTextDatePattern(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"day month pair", "Events run 12 Dec through 15 Dec", true},
		{"full month name matches by prefix", "Finals on 3 December 2025", true},
		{"full numeric date", "opening on 12/8/2025", true},
		{"bare day-month fraction is too weak for text", "see section 3/4 below", false},
		{"no date at all", "General information about venues", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextDatePattern(tt.text); got != tt.want {
				t.Errorf("TextDatePattern(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	page := document.Page{
		Index: 3,
		Text:  "Competition Schedule",
		Tables: []document.Table{
			{{"Date", "Time"}, {"12 Dec", "09:00"}},
		},
	}
	sig := Classify(page)
	if !sig.HasPhrase || !sig.HasScheduleTable || !sig.HasWeakKeyword {
		t.Errorf("expected all signals set, got %+v", sig)
	}
	if sig.ProximityDistance != 12 {
		t.Errorf("distance = %d, want 12", sig.ProximityDistance)
	}

	blank := Classify(document.Page{Index: 0})
	if blank.HasPhrase || blank.HasScheduleTable || blank.HasWeakKeyword {
		t.Errorf("blank page should carry no signals, got %+v", blank)
	}
	if blank.ProximityDistance != -1 {
		t.Errorf("blank distance = %d, want -1", blank.ProximityDistance)
	}
}
