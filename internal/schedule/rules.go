package schedule

// evidence carries everything a rule may inspect about one candidate page.
// It is computed once per page, so individual rules stay cheap and pure.
type evidence struct {
	signal       Signal
	tableMatch   bool // any table on the page passes TableSignal
	dateTimeHead bool // any table header row carries both "date" and "time"
	textDate     bool // page text shows a date pattern
	broadKeyword bool // page text carries broad schedule vocabulary
	offset       int  // distance from the span edge, forward pass only
	opts         Options
}

// rule is one named admission predicate. The name doubles as the audit
// reason logged and stored when the rule fires.
type rule struct {
	name   string
	source MatchSource
	match  func(ev evidence) bool
}

// evaluate runs rules in order and returns the first that matches.
func evaluate(rules []rule, ev evidence) (rule, bool) {
	for _, r := range rules {
		if r.match(ev) {
			return r, true
		}
	}
	return rule{}, false
}

// seedRules accept pages inside the initial window. Priority order matters:
// an explicit phrase always wins, proximity needs a table, and a table alone
// needs at least a weak keyword.
var seedRules = []rule{
	{
		name:   "schedule phrase",
		source: SourcePhrase,
		match:  func(ev evidence) bool { return ev.signal.HasPhrase },
	},
	{
		name:   "proximity match + schedule table",
		source: SourceProximityTable,
		match: func(ev evidence) bool {
			d := ev.signal.ProximityDistance
			return d >= 0 && d < ev.opts.ProximityThresholdChars && ev.tableMatch
		},
	},
	{
		name:   "schedule table + keyword",
		source: SourceTableKeyword,
		match:  func(ev evidence) bool { return ev.tableMatch && ev.signal.HasWeakKeyword },
	},
}

// gapRules repair pages between the first and last matched page whose lone
// signal was too weak to clear the seed bar.
var gapRules = []rule{
	{
		name:   "schedule table",
		source: SourceContinuation,
		match:  func(ev evidence) bool { return ev.tableMatch },
	},
	{
		name:   "date+time header",
		source: SourceContinuation,
		match:  func(ev evidence) bool { return ev.dateTimeHead },
	},
	{
		name:   "date pattern",
		source: SourceContinuation,
		match:  func(ev evidence) bool { return ev.textDate },
	},
}

// backwardRules extend the span before its first page. Deliberately stricter
// than the forward rules: a bare date pattern is not enough, it must ride
// with schedule vocabulary.
var backwardRules = []rule{
	{
		name:   "schedule table",
		source: SourceContinuation,
		match:  func(ev evidence) bool { return ev.tableMatch },
	},
	{
		name:   "date pattern + keyword",
		source: SourceContinuation,
		match:  func(ev evidence) bool { return ev.textDate && ev.broadKeyword },
	},
}

// forwardRules extend the span after its last page. The final rule relaxes
// the keyword requirement for the immediately adjacent page only, since
// schedules often run onto the next page under a bare continuation header.
var forwardRules = []rule{
	{
		name:   "schedule table",
		source: SourceContinuation,
		match:  func(ev evidence) bool { return ev.tableMatch },
	},
	{
		name:   "date+time header",
		source: SourceContinuation,
		match:  func(ev evidence) bool { return ev.dateTimeHead },
	},
	{
		name:   "date pattern + keyword",
		source: SourceContinuation,
		match:  func(ev evidence) bool { return ev.textDate && ev.broadKeyword },
	},
	{
		name:   "adjacent date pattern",
		source: SourceContinuation,
		match:  func(ev evidence) bool { return ev.offset == 1 && ev.textDate },
	},
}
