// Package rubrica infers document outlines from page layout descriptions.
//
// A layout dump lists the positioned, styled text runs of a document. From
// that alone, rubrica detects the title and a nested H1 to H3 outline with
// page numbers, without access to bookmarks or any other document metadata.
//
// Basic usage:
//
//	outline, err := rubrica.Open("report.json").Outline()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(outline.Title)
//
// With options:
//
//	data, err := rubrica.Open("report.hocr").
//	    WithClusterTolerance(0.8).
//	    WithPageNumbering(layout.PageLogical).
//	    JSON()
//
// For advanced use cases, the lower-level layout package is also available.
package rubrica

import (
	"io"

	"github.com/tsawler/rubrica/model"
)

// Open creates an Extractor for the given layout dump file. The format is
// sniffed from the contents, with the filename extension as a tiebreaker.
// The file is read lazily when a terminal operation runs.
//
// Example:
//
//	outline, err := rubrica.Open("report.json").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		source:  &layoutSource{filename: filename},
		options: defaultOptions(),
	}
}

// FromReader creates an Extractor reading a layout dump from r. The format
// is sniffed from the contents alone. The reader is consumed by the first
// terminal operation; later operations on the same chain reuse the parse.
//
// Example:
//
//	outline, err := rubrica.FromReader(resp.Body).Outline()
func FromReader(r io.Reader) *Extractor {
	return &Extractor{
		source:  &layoutSource{reader: r},
		options: defaultOptions(),
	}
}

// FromLayout creates an Extractor over an already-built layout, bypassing
// the input adapters. This is the entry point when the runs come from a
// custom extraction library.
//
// Example:
//
//	outline, err := rubrica.FromLayout(doc).Outline()
func FromLayout(doc *model.Layout) *Extractor {
	return &Extractor{
		source:  &layoutSource{doc: doc},
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	title := rubrica.Must(rubrica.Open("report.json").Title())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
