package model

import "errors"

// ErrInvalidInput reports malformed input at the extraction boundary.
// It is the only fatal condition in the pipeline: heuristic misses
// produce empty results, not errors. Adapters wrap this sentinel so
// callers can test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid layout input")

// Page is one page of a layout description: its dimensions and the
// styled runs reported for it
type Page struct {
	// Number is the 1-based page number
	Number int

	// Width and Height are the page dimensions in points. Zero means
	// the extractor did not report them; geometry-dependent stages fall
	// back to DefaultPageWidth and DefaultPageHeight.
	Width  float64
	Height float64

	// Runs are the page's styled runs in extraction order (block, then
	// line, then run order within the line)
	Runs []StyledRun
}

// Layout is the page-layout description of one document, as produced by
// a text-extraction collaborator. It is the input to outline inference.
type Layout struct {
	Pages []Page
}

// PageCount returns the number of pages in the layout
func (l *Layout) PageCount() int {
	if l == nil {
		return 0
	}
	return len(l.Pages)
}

// Page returns the page with the given 1-based number, or nil when no
// such page exists
func (l *Layout) Page(number int) *Page {
	if l == nil {
		return nil
	}
	for i := range l.Pages {
		if l.Pages[i].Number == number {
			return &l.Pages[i]
		}
	}
	return nil
}

// Runs returns all styled runs across all pages, in page order
func (l *Layout) Runs() []StyledRun {
	if l == nil {
		return nil
	}
	var runs []StyledRun
	for _, p := range l.Pages {
		runs = append(runs, p.Runs...)
	}
	return runs
}

// RunCount returns the total number of styled runs in the layout
func (l *Layout) RunCount() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, p := range l.Pages {
		n += len(p.Runs)
	}
	return n
}
