package document

import (
	"context"
	"fmt"
	"path/filepath"

	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/tsawler/tabula"
	tabmodel "github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"
	"github.com/tsawler/tabula/text"
)

// TabulaSource reads PDFs with the tabula library. Text comes from the
// fluent per-page extractor; tables from the geometric table detector run
// over each page's raw fragments.
type TabulaSource struct{}

// NewTabulaSource returns a Source backed by tabula.
func NewTabulaSource() *TabulaSource {
	return &TabulaSource{}
}

// Probe performs a cheap structural check with pdfcpu. It fails for files
// that are truncated, encrypted, or not PDFs at all, without paying for a
// full content parse.
func (s *TabulaSource) Probe(path string) error {
	if _, err := pdfcpu.PageCountFile(path); err != nil {
		return fmt.Errorf("probe %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Open materializes every page of the PDF at path. Pages whose text or
// tables cannot be extracted are kept as inert pages so downstream page
// numbering stays aligned with the source file.
func (s *TabulaSource) Open(ctx context.Context, path string) (*Document, error) {
	if err := s.Probe(path); err != nil {
		return nil, err
	}

	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("page count %s: %w", filepath.Base(path), err)
	}

	detector := tables.NewGeometricDetector()

	doc := &Document{
		SourceName: filepath.Base(path),
		Pages:      make([]Page, 0, count),
	}

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc.Pages = append(doc.Pages, s.readPage(r, detector, i))
	}

	return doc, nil
}

// readPage extracts one page. Extraction failures degrade to an inert page.
func (s *TabulaSource) readPage(r *reader.Reader, detector *tables.GeometricDetector, index int) Page {
	page := Page{Index: index}

	pg, err := r.GetPage(index)
	if err != nil {
		return page
	}

	pageText, _, err := tabula.FromReader(r).Pages(index + 1).Text()
	if err == nil {
		page.Text = pageText
	}

	fragments, err := r.ExtractTextFragments(pg)
	if err != nil || len(fragments) == 0 {
		return page
	}

	width, _ := pg.Width()
	height, _ := pg.Height()

	mp := tabmodel.NewPage(width, height)
	mp.Number = index + 1
	mp.RawText = toModelFragments(fragments)

	detected, err := detector.Detect(mp)
	if err != nil {
		return page
	}
	for _, t := range detected {
		page.Tables = append(page.Tables, toTable(t))
	}

	return page
}

func toModelFragments(fragments []text.TextFragment) []tabmodel.TextFragment {
	out := make([]tabmodel.TextFragment, len(fragments))
	for i, f := range fragments {
		out[i] = tabmodel.TextFragment{
			Text:     f.Text,
			BBox:     tabmodel.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
			FontSize: f.FontSize,
			FontName: f.FontName,
		}
	}
	return out
}

func toTable(t *tabmodel.Table) Table {
	rows := make(Table, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cell.Text
		}
		rows = append(rows, cells)
	}
	return rows
}
