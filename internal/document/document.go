// Package document defines the read-only page/table view of a source file
// and the Source collaborator that produces it.
package document

import "context"

// Table is an ordered sequence of rows, each an ordered sequence of cell
// strings. Cells may be empty. A table with fewer than 2 rows is degenerate
// and carries no signal.
type Table [][]string

// RowCount returns the number of rows.
func (t Table) RowCount() int { return len(t) }

// Page is a single page of a document. Index is 0-based; a page with empty
// Text is inert and contributes no signal.
type Page struct {
	Index  int
	Text   string
	Tables []Table
}

// Document is an ordered, immutable sequence of pages read from one source
// file.
type Document struct {
	SourceName string
	Pages      []Page
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// Page returns the page at the given 0-based index, or a zero Page if the
// index is out of range.
func (d *Document) Page(index int) Page {
	if index < 0 || index >= len(d.Pages) {
		return Page{Index: index}
	}
	return d.Pages[index]
}

// Source opens a file and materializes it as a Document. Implementations
// must treat pages whose text cannot be extracted as inert rather than
// failing the whole document.
type Source interface {
	Open(ctx context.Context, path string) (*Document, error)
}

// Prober cheaply checks whether a file is a readable document without
// materializing it. Used by watch mode to wait out partially-copied files.
type Prober interface {
	Probe(path string) error
}
