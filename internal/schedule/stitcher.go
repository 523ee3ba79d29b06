package schedule

import (
	"log/slog"
	"sort"

	"schedscan/internal/document"
)

// Extract locates the schedule section of doc: scores pages inside the
// initial window to build a seed set, then stitches the seed set into the
// final span with the gap-fill, backward and forward passes. The passes run
// in that fixed order; each is monotone, and one round reaches the fixpoint
// because both extensions only admit contiguous runs.
func Extract(doc *document.Document, opts Options, log *slog.Logger) Result {
	if log == nil {
		log = slog.Default()
	}

	res := Result{SourceFile: doc.SourceName}

	matched := map[int]MatchedPage{} // keyed by 0-indexed page
	start, end := seedWindow(doc.PageCount(), opts)

	for idx := start; idx <= end; idx++ {
		page := doc.Page(idx)
		_, source, ruleName, ok := ScorePage(page, opts)
		if !ok {
			continue
		}
		log.Info("schedule page accepted",
			"source", doc.SourceName, "page", idx+1, "rule", ruleName)
		matched[idx] = newMatch(page, source, ruleName)
	}

	if len(matched) == 0 {
		res.CombinedText = NoScheduleFound
		return res
	}

	first, last := span(matched)

	// Pass 1: gap fill. Unbounded inside the span; pages already known to
	// sit between schedule pages only need a single weak signal.
	for idx := first + 1; idx < last; idx++ {
		if _, ok := matched[idx]; ok {
			continue
		}
		admitContinuation(doc, idx, 0, gapRules, "gap-fill", opts, matched, log)
	}

	// Pass 2: backward extension, at most BackwardMaxPages and never below
	// the window start. Stops at the first page that fails.
	for k := 1; k <= opts.BackwardMaxPages; k++ {
		idx := first - k
		if idx < start {
			break
		}
		if !admitContinuation(doc, idx, 0, backwardRules, "backward", opts, matched, log) {
			break
		}
	}

	// Pass 3: forward extension, at most ForwardMaxPages and never beyond
	// the document. Stops at the first page that fails.
	for k := 1; k <= opts.ForwardMaxPages; k++ {
		idx := last + k
		if idx > doc.PageCount()-1 {
			break
		}
		if !admitContinuation(doc, idx, k, forwardRules, "forward", opts, matched, log) {
			break
		}
	}

	res.MatchedPages = orderMatches(matched)
	for i := range res.MatchedPages {
		mp := &res.MatchedPages[i]
		mp.Tables = harvestTables(doc.Page(mp.PageNumber-1), mp.Source)
	}
	res.CombinedText = combine(res.MatchedPages)
	res.HadAnyMatch = true
	return res
}

// admitContinuation evaluates one out-of-seed page against a pass's rules
// and records it on success. Pages with no extractable text never match.
func admitContinuation(doc *document.Document, idx, offset int, rules []rule, pass string, opts Options, matched map[int]MatchedPage, log *slog.Logger) bool {
	page := doc.Page(idx)
	if page.Text == "" {
		return false
	}

	ev := gatherEvidence(page, opts, offset)
	r, ok := evaluate(rules, ev)
	if !ok {
		return false
	}

	log.Info("schedule continuation",
		"source", doc.SourceName, "page", idx+1, "pass", pass, "rule", r.name)
	matched[idx] = newMatch(page, r.source, r.name)
	return true
}

// harvestTables picks the tables a matched page contributes to the report.
// Shape-qualified tables always count; pages matched by an explicit phrase
// are additionally trusted to include any non-trivial table, since the
// heading vouches for the page even when shape heuristics are inconclusive.
func harvestTables(page document.Page, source MatchSource) []PageTable {
	var out []PageTable
	for _, t := range page.Tables {
		if TableSignal(t) || (source == SourcePhrase && t.RowCount() > 2) {
			out = append(out, PageTable{PageNumber: page.Index + 1, Rows: t})
		}
	}
	return out
}

func newMatch(page document.Page, source MatchSource, ruleName string) MatchedPage {
	return MatchedPage{
		PageNumber: page.Index + 1,
		Source:     source,
		Rule:       ruleName,
		Text:       page.Text,
	}
}

func span(matched map[int]MatchedPage) (first, last int) {
	first, last = -1, -1
	for idx := range matched {
		if first == -1 || idx < first {
			first = idx
		}
		if idx > last {
			last = idx
		}
	}
	return first, last
}

func orderMatches(matched map[int]MatchedPage) []MatchedPage {
	indices := make([]int, 0, len(matched))
	for idx := range matched {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	out := make([]MatchedPage, 0, len(indices))
	for _, idx := range indices {
		out = append(out, matched[idx])
	}
	return out
}
