package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// HeadingLevel represents the hierarchical level of an outline heading
type HeadingLevel int

const (
	// HeadingLevelUnknown indicates the level could not be determined
	HeadingLevelUnknown HeadingLevel = iota
	// HeadingLevel1 is a top-level heading (H1)
	HeadingLevel1
	// HeadingLevel2 is a second-level heading (H2)
	HeadingLevel2
	// HeadingLevel3 is a third-level heading (H3)
	HeadingLevel3
)

// String returns the level in its serialized form ("H1", "H2", "H3")
func (h HeadingLevel) String() string {
	switch h {
	case HeadingLevel1:
		return "H1"
	case HeadingLevel2:
		return "H2"
	case HeadingLevel3:
		return "H3"
	default:
		return "Unknown"
	}
}

// HTMLTag returns the corresponding HTML tag name
func (h HeadingLevel) HTMLTag() string {
	switch h {
	case HeadingLevel1:
		return "h1"
	case HeadingLevel2:
		return "h2"
	case HeadingLevel3:
		return "h3"
	default:
		return "div"
	}
}

// Depth returns the numeric nesting depth (1 for H1, 3 for H3, 0 when
// unknown). Deeper headings have larger depths.
func (h HeadingLevel) Depth() int {
	if h < HeadingLevel1 || h > HeadingLevel3 {
		return 0
	}
	return int(h)
}

// MarshalJSON encodes the level as its string form
func (h HeadingLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a level from its string form
func (h *HeadingLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "H1":
		*h = HeadingLevel1
	case "H2":
		*h = HeadingLevel2
	case "H3":
		*h = HeadingLevel3
	default:
		return fmt.Errorf("unknown heading level %q", s)
	}
	return nil
}

// OutlineEntry is one heading in a document outline
type OutlineEntry struct {
	// Level is the heading's hierarchical level
	Level HeadingLevel `json:"level"`

	// Text is the heading text
	Text string `json:"text"`

	// Page is the page number the heading appears on. Whether this is
	// the physical page as supplied or a logical page after a cover
	// offset depends on the page numbering policy in effect.
	Page int `json:"page"`
}

// Outline is the inferred structure of one document: its title and an
// ordered list of headings. Entry order follows document reading order
// (page ascending, then vertical, then horizontal position); entries are
// never re-sorted by level.
type Outline struct {
	Title   string         `json:"title"`
	Entries []OutlineEntry `json:"outline"`
}

// NewOutline creates an outline, normalizing nil entries to an empty
// list so the serialized form is always an array
func NewOutline(title string, entries []OutlineEntry) *Outline {
	if entries == nil {
		entries = []OutlineEntry{}
	}
	return &Outline{Title: title, Entries: entries}
}

// Len returns the number of outline entries
func (o *Outline) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Entries)
}

// IsEmpty returns true when the outline has no title and no entries
func (o *Outline) IsEmpty() bool {
	return o == nil || (o.Title == "" && len(o.Entries) == 0)
}

// JSON renders the outline as indented JSON. Non-ASCII characters are
// preserved literally rather than escaped, matching the UTF-8 output
// contract for outline records.
func (o *Outline) JSON() ([]byte, error) {
	out := o
	if out == nil {
		out = NewOutline("", nil)
	}
	if out.Entries == nil {
		out = NewOutline(out.Title, nil)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encoding outline: %w", err)
	}
	return buf.Bytes(), nil
}

// HeadingsByLevel returns the entries at a specific level, in document
// order
func (o *Outline) HeadingsByLevel(level HeadingLevel) []OutlineEntry {
	if o == nil {
		return nil
	}
	var entries []OutlineEntry
	for _, e := range o.Entries {
		if e.Level == level {
			entries = append(entries, e)
		}
	}
	return entries
}

/// TOC renders the outline as an indented plain-text table of contents,
// two spaces per nesting level, each line ending with the page number
func (o *Outline) TOC() string {
	if o == nil || len(o.Entries) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, e := range o.Entries {
		depth := e.Level.Depth()
		if depth < 1 {
			depth = 1
		}
		sb.WriteString(strings.Repeat("  ", depth-1))
		sb.WriteString(fmt.Sprintf("%s  %d\n", e.Text, e.Page))
	}
	return sb.String()
}

// Markdown renders the outline as a Markdown table of contents: the title
// as a top-level header, then one indented bullet per heading with its
// page number
func (o *Outline) Markdown() string {
	if o == nil {
		return ""
	}

	var sb strings.Builder
	if o.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(o.Title)
		sb.WriteString("\n\n")
	}
	for _, e := range o.Entries {
		depth := e.Level.Depth()
		if depth < 1 {
			depth = 1
		}
		sb.WriteString(strings.Repeat("  ", depth-1))
		sb.WriteString(fmt.Sprintf("- %s (p. %d)\n", e.Text, e.Page))
	}
	return sb.String()
}
