// Package batch runs schedule extraction over a directory of handbooks and
// folds the per-document results into sport groups.
//
// Work happens in two phases. Phase 1 opens and extracts each document,
// optionally in parallel; no document's result depends on another's.
// Phase 2 is a single-threaded fold over the results in lexicographic
// filename order, which keeps grouping, duplicate detection, and report row
// order deterministic regardless of worker count.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"schedscan/internal/document"
	"schedscan/internal/schedule"
	"schedscan/internal/sportkey"
)

// Extraction pairs one document's result with its filename and sport key.
type Extraction struct {
	Filename string
	SportKey string
	Result   schedule.Result
}

// Group collects every extraction that resolved to one sport key, in
// document processing order. More than one entry means duplicates.
type Group struct {
	Key         string
	Extractions []Extraction
}

// Duplicate records a sport key collision. The first document under a key is
// never flagged; each later one is.
type Duplicate struct {
	Key      string
	Filename string
}

// Failure records a document that could not be opened. Failed documents are
// excluded from aggregation entirely.
type Failure struct {
	Filename string
	Err      error
}

// Outcome is the aggregate result of one batch run.
type Outcome struct {
	RunID      string
	Groups     []*Group // ordered by first insertion
	Duplicates []Duplicate
	Failures   []Failure
}

// HasDuplicate reports whether key collided during the run.
func (o *Outcome) HasDuplicate(key string) bool {
	for _, d := range o.Duplicates {
		if d.Key == key {
			return true
		}
	}
	return false
}

// DocumentCount returns the number of successfully processed documents.
func (o *Outcome) DocumentCount() int {
	n := 0
	for _, g := range o.Groups {
		n += len(g.Extractions)
	}
	return n
}

// Runner executes batch runs against a document source.
type Runner struct {
	Source  document.Source
	Options schedule.Options
	Workers int // phase-1 parallelism; values < 1 mean sequential
	Logger  *slog.Logger
}

// Run processes every PDF in dir. Per-document failures are collected, not
// fatal; the batch always completes.
func (r *Runner) Run(ctx context.Context, dir string) (*Outcome, error) {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	files, err := listPDFs(dir)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{RunID: uuid.New().String()}
	log.Info("starting batch", "run_id", outcome.RunID, "dir", dir, "files", len(files))

	extractions, failures := r.extractAll(ctx, files, log)
	outcome.Failures = failures

	// Phase 2: sequential fold in filename order.
	byKey := make(map[string]*Group)
	for _, ex := range extractions {
		g, ok := byKey[ex.SportKey]
		if !ok {
			g = &Group{Key: ex.SportKey}
			byKey[ex.SportKey] = g
			outcome.Groups = append(outcome.Groups, g)
		} else {
			outcome.Duplicates = append(outcome.Duplicates, Duplicate{Key: ex.SportKey, Filename: ex.Filename})
			log.Warn("duplicate sport key", "sport", ex.SportKey, "file", ex.Filename)
		}
		g.Extractions = append(g.Extractions, ex)
	}

	if len(outcome.Duplicates) > 0 {
		keys := make([]string, len(outcome.Duplicates))
		for i, d := range outcome.Duplicates {
			keys[i] = fmt.Sprintf("%s (%s)", d.Key, d.Filename)
		}
		log.Warn("duplicate sport keys detected", "run_id", outcome.RunID, "collisions", strings.Join(keys, ", "))
	}

	log.Info("batch complete",
		"run_id", outcome.RunID,
		"documents", outcome.DocumentCount(),
		"sports", len(outcome.Groups),
		"failures", len(outcome.Failures))

	return outcome, nil
}

// extractAll is phase 1: open and extract each file with bounded workers.
// Results come back indexed by position so the fold sees filename order.
func (r *Runner) extractAll(ctx context.Context, files []string, log *slog.Logger) ([]Extraction, []Failure) {
	slots := make([]slot, len(files))

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, path := range files {
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }() // release
			slots[i] = r.extractOne(ctx, path, log)
		}(i, path)
	}
	wg.Wait()

	var extractions []Extraction
	var failures []Failure
	for _, s := range slots {
		switch {
		case s.ex != nil:
			extractions = append(extractions, *s.ex)
		case s.fail != nil:
			failures = append(failures, *s.fail)
		}
	}
	return extractions, failures
}

// slot holds the outcome of phase 1 for one file: exactly one of ex or fail
// is set.
type slot struct {
	ex   *Extraction
	fail *Failure
}

func (r *Runner) extractOne(ctx context.Context, path string, log *slog.Logger) (s slot) {
	name := filepath.Base(path)
	key := sportkey.Identify(name)
	log.Info("processing handbook", "file", name, "sport", key)

	doc, err := r.Source.Open(ctx, path)
	if err != nil {
		log.Error("failed to open document", "file", name, "err", err)
		s.fail = &Failure{Filename: name, Err: err}
		return s
	}

	result := schedule.Extract(doc, r.Options, log)
	if !result.HadAnyMatch {
		log.Warn("no schedule found", "file", name, "sport", key)
	}

	s.ex = &Extraction{Filename: name, SportKey: key, Result: result}
	return s
}

// listPDFs enumerates *.pdf files in dir, sorted, so duplicate detection and
// row order are reproducible.
func listPDFs(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
