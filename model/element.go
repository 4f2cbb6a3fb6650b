package model

import (
	"strings"
	"unicode/utf8"
)

// TextElement is a line-level aggregation of one or more styled runs
// sharing a block/line grouping. Its text is trimmed and non-empty; the
// style fields are taken from the first non-empty run that formed the
// element (first-run-wins), never averaged across runs.
type TextElement struct {
	// Text is the trimmed, space-joined text of the element
	Text string

	// Representative style, from the first contributing run
	FontSize float64
	FontName string
	Bold     bool
	Italic   bool

	// X, Y is the top-left position of the first contributing run;
	// Width and Height are its dimensions. When adjacent lines are
	// merged into one element, Height accumulates.
	X      float64
	Y      float64
	Width  float64
	Height float64

	// Page is the 1-based page number
	Page int

	// Block and Line carry the grouping identifiers of the first
	// contributing run
	Block int
	Line  int
}

// Bottom returns the Y coordinate of the element's bottom edge
func (e TextElement) Bottom() float64 {
	return e.Y + e.Height
}

// BBox returns the element's bounding box
func (e TextElement) BBox() BBox {
	return BBox{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// WordCount returns the number of whitespace-separated words in the text
func (e TextElement) WordCount() int {
	return len(strings.Fields(e.Text))
}

// RuneLen returns the text length in runes, not bytes
func (e TextElement) RuneLen() int {
	return utf8.RuneCountInString(e.Text)
}
