package model

import "strings"

// StyledRun is one contiguous run of identically-styled characters as
// reported by the text-extraction collaborator. Runs are immutable input;
// the pipeline never modifies them.
type StyledRun struct {
	// Text is the raw run text, possibly with surrounding whitespace
	Text string

	// FontSize is the font size in points. Runs with a zero or negative
	// size are skipped during line building.
	FontSize float64

	// FontName is the font face name as reported by the extractor
	// (e.g. "Helvetica-Bold", "TimesNewRomanPS-ItalicMT")
	FontName string

	// Bold and Italic are style flags, typically derived from the font
	// name via StyleFromFontName
	Bold   bool
	Italic bool

	// BBox is the run's bounding box in page coordinates (top-left
	// origin, Y increasing downward)
	BBox BBox

	// Page is the 1-based page number the run appears on
	Page int

	// Block and Line identify the visual grouping the run belongs to
	// within its page, as supplied by the extractor. Runs sharing a
	// (Page, Block, Line) triple form one visual line.
	Block int
	Line  int
}

// StyleFromFontName derives bold and italic flags from substring matches
// on a font face name. Extraction libraries encode style in the face name
// ("Arial-BoldItalicMT", "Courier-Oblique"); matching is ASCII
// case-insensitive on "bold", "italic" and "oblique".
func StyleFromFontName(name string) (bold, italic bool) {
	lower := strings.ToLower(name)
	bold = strings.Contains(lower, "bold")
	italic = strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
	return bold, italic
}
