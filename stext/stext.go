// Package stext parses MuPDF structured-text JSON dumps into document
// layouts.
//
// The accepted shape is the stext JSON emitted by MuPDF-based extraction
// collaborators: pages holding blocks, text blocks holding lines, each
// line carrying its font description, position, and text. One styled run
// is produced per line record; block and line indices become the grouping
// identifiers the layout pipeline uses.
//
// Input is validated against an embedded JSON Schema before decoding.
// Malformed documents fail with an error wrapping model.ErrInvalidInput,
// so callers can test for the condition with errors.Is.
package stext

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/rubrica/model"
)

// blockTypeText marks text blocks. Image and vector blocks are skipped.
const blockTypeText = "text"

// document mirrors the structured-text JSON shape
type document struct {
	Pages []page `json:"pages"`
}

type page struct {
	Number int     `json:"number"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Blocks []block `json:"blocks"`
}

type block struct {
	Type  string `json:"type"`
	BBox  bbox   `json:"bbox"`
	Lines []line `json:"lines"`
}

type bbox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type line struct {
	WMode int     `json:"wmode"`
	BBox  bbox    `json:"bbox"`
	Font  font    `json:"font"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
}

type font struct {
	Name   string  `json:"name"`
	Family string  `json:"family"`
	Weight string  `json:"weight"`
	Style  string  `json:"style"`
	Size   float64 `json:"size"`
}

// Parse decodes and validates a structured-text JSON dump, returning the
// layout it describes.
//
// Example:
//
//	doc, err := stext.Parse(data)
//	if errors.Is(err, model.ErrInvalidInput) {
//	    // malformed dump
//	}
func Parse(data []byte) (*model.Layout, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding structured text: %v", model.ErrInvalidInput, err)
	}

	return convert(&doc), nil
}

// ParseReader reads a structured-text dump to the end, then parses it.
func ParseReader(r io.Reader) (*model.Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading structured text: %w", err)
	}
	return Parse(data)
}

// Validate checks a dump against the embedded schema without converting it.
func Validate(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parsing structured text: %v", model.ErrInvalidInput, err)
	}
	if err := layoutSchema.Validate(raw); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	return nil
}

// convert maps the decoded document onto the pipeline's layout model.
// Pages without an explicit number are numbered by position.
func convert(doc *document) *model.Layout {
	out := &model.Layout{}
	for i, p := range doc.Pages {
		number := p.Number
		if number <= 0 {
			number = i + 1
		}

		mp := model.Page{Number: number, Width: p.Width, Height: p.Height}
		for blockNo, b := range p.Blocks {
			if b.Type != "" && b.Type != blockTypeText {
				continue
			}
			for lineNo, l := range b.Lines {
				mp.Runs = append(mp.Runs, convertLine(l, number, blockNo, lineNo))
			}
		}
		out.Pages = append(out.Pages, mp)
	}
	return out
}

// convertLine maps one stext line to a styled run. Style flags come from
// the font weight and style fields, OR'd with the face-name heuristic for
// dumps that only report a face name.
func convertLine(l line, pageNo, blockNo, lineNo int) model.StyledRun {
	bold, italic := model.StyleFromFontName(l.Font.Name)
	if l.Font.Weight == "bold" {
		bold = true
	}
	if l.Font.Style == "italic" || l.Font.Style == "oblique" {
		italic = true
	}

	box := model.BBox{X: l.BBox.X, Y: l.BBox.Y, Width: l.BBox.W, Height: l.BBox.H}
	if box.IsEmpty() && (l.X != 0 || l.Y != 0) {
		box.X = l.X
		box.Y = l.Y
	}

	return model.StyledRun{
		Text:     l.Text,
		FontSize: l.Font.Size,
		FontName: l.Font.Name,
		Bold:     bold,
		Italic:   italic,
		BBox:     box,
		Page:     pageNo,
		Block:    blockNo,
		Line:     lineNo,
	}
}
