package schedule

import "schedscan/internal/document"

// gatherEvidence precomputes every signal the rule lists inspect for one
// page. offset is meaningful only for the forward pass and is zero
// elsewhere.
func gatherEvidence(page document.Page, opts Options, offset int) evidence {
	ev := evidence{
		signal:       Classify(page),
		dateTimeHead: HasDateTimeHeader(page.Tables),
		textDate:     TextDatePattern(page.Text),
		broadKeyword: BroadKeyword(page.Text),
		offset:       offset,
		opts:         opts,
	}
	ev.tableMatch = ev.signal.HasScheduleTable
	return ev
}

// ScorePage runs the seed acceptance rules over one page. Pages with no
// extractable text are inert and never accepted. The returned rule name is
// empty when the page is rejected; rejection is not an error, merely "not
// part of the schedule (yet)".
func ScorePage(page document.Page, opts Options) (Signal, MatchSource, string, bool) {
	if page.Text == "" {
		return Signal{ProximityDistance: -1}, "", "", false
	}

	ev := gatherEvidence(page, opts, 0)
	r, ok := evaluate(seedRules, ev)
	if !ok {
		return ev.signal, "", "", false
	}
	return ev.signal, r.source, r.name, true
}

// seedWindow returns the inclusive 0-indexed bounds of the initial search
// window for a document: pages 1 through SeedWindowPages-1, clamped to the
// document. The cover page (index 0) is always excluded. A one-page
// document yields an empty window (start > end).
func seedWindow(pageCount int, opts Options) (start, end int) {
	start = 1
	end = opts.SeedWindowPages - 1
	if last := pageCount - 1; end > last {
		end = last
	}
	return start, end
}
