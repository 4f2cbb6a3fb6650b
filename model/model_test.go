package model

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"vertical", Point{0, 0}, Point{0, 4}, 4},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// ============================================================================
// BBox Tests
// ============================================================================

func TestNewBBox(t *testing.T) {
	bbox := NewBBox(10, 20, 100, 50)
	if bbox.X != 10 || bbox.Y != 20 || bbox.Width != 100 || bbox.Height != 50 {
		t.Errorf("NewBBox() = %+v, want {10, 20, 100, 50}", bbox)
	}
}

func TestBBoxFromCorners(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           BBox
	}{
		{"normal", 10, 20, 50, 70, BBox{10, 20, 40, 50}},
		{"reversed corners", 50, 70, 10, 20, BBox{10, 20, 40, 50}},
		{"degenerate", 10, 10, 10, 10, BBox{10, 10, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BBoxFromCorners(tt.x0, tt.y0, tt.x1, tt.y1)
			if got != tt.want {
				t.Errorf("BBoxFromCorners() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBBoxEdges(t *testing.T) {
	bbox := NewBBox(10, 20, 100, 50)

	if bbox.Left() != 10 {
		t.Errorf("Left() = %v, want 10", bbox.Left())
	}
	if bbox.Right() != 110 {
		t.Errorf("Right() = %v, want 110", bbox.Right())
	}
	if bbox.Top() != 20 {
		t.Errorf("Top() = %v, want 20", bbox.Top())
	}
	if bbox.Bottom() != 70 {
		t.Errorf("Bottom() = %v, want 70", bbox.Bottom())
	}

	center := bbox.Center()
	if center.X != 60 || center.Y != 45 {
		t.Errorf("Center() = %+v, want {60, 45}", center)
	}
}

func TestBBoxContains(t *testing.T) {
	bbox := NewBBox(10, 20, 100, 50)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{60, 45}, true},
		{"top-left corner", Point{10, 20}, true},
		{"bottom-right corner", Point{110, 70}, true},
		{"left of box", Point{5, 45}, false},
		{"below box", Point{60, 80}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bbox.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBBoxIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want bool
	}{
		{"overlapping", BBox{0, 0, 50, 50}, BBox{25, 25, 50, 50}, true},
		{"touching edges", BBox{0, 0, 50, 50}, BBox{50, 0, 50, 50}, true},
		{"disjoint horizontal", BBox{0, 0, 50, 50}, BBox{60, 0, 50, 50}, false},
		{"disjoint vertical", BBox{0, 0, 50, 50}, BBox{0, 60, 50, 50}, false},
		{"contained", BBox{0, 0, 100, 100}, BBox{25, 25, 10, 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBBoxUnion(t *testing.T) {
	a := BBox{0, 0, 50, 50}
	b := BBox{100, 100, 50, 50}
	got := a.Union(b)
	want := BBox{0, 0, 150, 150}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestBBoxAreaAndEmpty(t *testing.T) {
	if area := NewBBox(0, 0, 10, 5).Area(); area != 50 {
		t.Errorf("Area() = %v, want 50", area)
	}
	if !NewBBox(0, 0, 0, 10).IsEmpty() {
		t.Error("IsEmpty() = false for zero-width box, want true")
	}
	if NewBBox(0, 0, 10, 10).IsEmpty() {
		t.Error("IsEmpty() = true for valid box, want false")
	}
}

// ============================================================================
// StyledRun Tests
// ============================================================================

func TestStyleFromFontName(t *testing.T) {
	tests := []struct {
		name       string
		fontName   string
		wantBold   bool
		wantItalic bool
	}{
		{"plain", "Helvetica", false, false},
		{"bold suffix", "Helvetica-Bold", true, false},
		{"lowercase bold", "arialbold", true, false},
		{"italic", "Times-Italic", false, true},
		{"oblique", "Courier-Oblique", false, true},
		{"bold italic", "Arial-BoldItalicMT", true, true},
		{"subset prefix", "ABCDEF+TimesNewRomanPS-BoldMT", true, false},
		{"empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bold, italic := StyleFromFontName(tt.fontName)
			if bold != tt.wantBold || italic != tt.wantItalic {
				t.Errorf("StyleFromFontName(%q) = (%v, %v), want (%v, %v)",
					tt.fontName, bold, italic, tt.wantBold, tt.wantItalic)
			}
		})
	}
}

// ============================================================================
// TextElement Tests
// ============================================================================

func TestTextElementAccessors(t *testing.T) {
	el := TextElement{
		Text:   "1. Introduction",
		X:      72,
		Y:      100,
		Width:  200,
		Height: 16,
	}

	if el.Bottom() != 116 {
		t.Errorf("Bottom() = %v, want 116", el.Bottom())
	}
	if got := el.BBox(); got != NewBBox(72, 100, 200, 16) {
		t.Errorf("BBox() = %+v, want {72, 100, 200, 16}", got)
	}
	if el.WordCount() != 2 {
		t.Errorf("WordCount() = %d, want 2", el.WordCount())
	}
}

func TestTextElementRuneLen(t *testing.T) {
	el := TextElement{Text: "Über uns"}
	if el.RuneLen() != 8 {
		t.Errorf("RuneLen() = %d, want 8", el.RuneLen())
	}
}

// ============================================================================
// HeadingLevel Tests
// ============================================================================

func TestHeadingLevelString(t *testing.T) {
	tests := []struct {
		level HeadingLevel
		want  string
	}{
		{HeadingLevel1, "H1"},
		{HeadingLevel2, "H2"},
		{HeadingLevel3, "H3"},
		{HeadingLevelUnknown, "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("HeadingLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestHeadingLevelDepth(t *testing.T) {
	if HeadingLevel2.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", HeadingLevel2.Depth())
	}
	if HeadingLevelUnknown.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", HeadingLevelUnknown.Depth())
	}
}

func TestHeadingLevelHTMLTag(t *testing.T) {
	if got := HeadingLevel1.HTMLTag(); got != "h1" {
		t.Errorf("HTMLTag() = %q, want %q", got, "h1")
	}
	if got := HeadingLevelUnknown.HTMLTag(); got != "div" {
		t.Errorf("HTMLTag() = %q, want %q", got, "div")
	}
}

func TestHeadingLevelJSONRoundTrip(t *testing.T) {
	for _, level := range []HeadingLevel{HeadingLevel1, HeadingLevel2, HeadingLevel3} {
		data, err := json.Marshal(level)
		if err != nil {
			t.Fatalf("Marshal(%v) error: %v", level, err)
		}
		var back HeadingLevel
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", data, err)
		}
		if back != level {
			t.Errorf("round trip = %v, want %v", back, level)
		}
	}

	var bad HeadingLevel
	if err := json.Unmarshal([]byte(`"H7"`), &bad); err == nil {
		t.Error("Unmarshal(H7) error = nil, want error")
	}
}

// ============================================================================
// Outline Tests
// ============================================================================

func TestNewOutlineNormalizesNilEntries(t *testing.T) {
	o := NewOutline("Title", nil)
	if o.Entries == nil {
		t.Error("NewOutline() Entries = nil, want empty slice")
	}
	if o.Len() != 0 {
		t.Errorf("Len() = %d, want 0", o.Len())
	}
}

func TestOutlineJSONShape(t *testing.T) {
	o := NewOutline("Project Plan", []OutlineEntry{
		{Level: HeadingLevel1, Text: "1. Introduction", Page: 2},
		{Level: HeadingLevel2, Text: "1.1 Background", Page: 2},
	})

	data, err := o.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var decoded struct {
		Title   string `json:"title"`
		Outline []struct {
			Level string `json:"level"`
			Text  string `json:"text"`
			Page  int    `json:"page"`
		} `json:"outline"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if decoded.Title != "Project Plan" {
		t.Errorf("title = %q, want %q", decoded.Title, "Project Plan")
	}
	if len(decoded.Outline) != 2 {
		t.Fatalf("outline length = %d, want 2", len(decoded.Outline))
	}
	if decoded.Outline[0].Level != "H1" || decoded.Outline[0].Page != 2 {
		t.Errorf("first entry = %+v, want H1 on page 2", decoded.Outline[0])
	}
}

func TestOutlineJSONEmptyOutlineIsArray(t *testing.T) {
	o := NewOutline("", nil)
	data, err := o.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"outline": []`) {
		t.Errorf("JSON() = %s, want outline serialized as []", data)
	}
}

func TestOutlineJSONPreservesNonASCII(t *testing.T) {
	o := NewOutline("Überblick 概要", []OutlineEntry{
		{Level: HeadingLevel1, Text: "Einführung <Teil 1 & 2>", Page: 2},
	})

	data, err := o.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	s := string(data)
	if !strings.Contains(s, "Überblick 概要") {
		t.Errorf("JSON() escaped non-ASCII title: %s", s)
	}
	if !strings.Contains(s, "Einführung <Teil 1 & 2>") {
		t.Errorf("JSON() escaped heading text: %s", s)
	}
	if strings.Contains(s, `\u`) {
		t.Errorf("JSON() contains unicode escapes: %s", s)
	}
}

func TestOutlineNilSafety(t *testing.T) {
	var o *Outline

	if o.Len() != 0 {
		t.Errorf("nil Len() = %d, want 0", o.Len())
	}
	if !o.IsEmpty() {
		t.Error("nil IsEmpty() = false, want true")
	}
	if o.Markdown() != "" {
		t.Errorf("nil Markdown() = %q, want empty", o.Markdown())
	}
	if o.TOC() != "" {
		t.Errorf("nil TOC() = %q, want empty", o.TOC())
	}
	if o.HeadingsByLevel(HeadingLevel1) != nil {
		t.Error("nil HeadingsByLevel() != nil, want nil")
	}
	if _, err := o.JSON(); err != nil {
		t.Errorf("nil JSON() error: %v", err)
	}
}

func TestOutlineHeadingsByLevel(t *testing.T) {
	o := NewOutline("Doc", []OutlineEntry{
		{Level: HeadingLevel1, Text: "A", Page: 2},
		{Level: HeadingLevel2, Text: "B", Page: 2},
		{Level: HeadingLevel1, Text: "C", Page: 3},
	})

	h1s := o.HeadingsByLevel(HeadingLevel1)
	if len(h1s) != 2 || h1s[0].Text != "A" || h1s[1].Text != "C" {
		t.Errorf("HeadingsByLevel(H1) = %+v, want [A C]", h1s)
	}
}

func TestOutlineMarkdown(t *testing.T) {
	o := NewOutline("Project Plan", []OutlineEntry{
		{Level: HeadingLevel1, Text: "1. Introduction", Page: 2},
		{Level: HeadingLevel2, Text: "1.1 Background", Page: 2},
	})

	md := o.Markdown()
	if !strings.Contains(md, "# Project Plan") {
		t.Errorf("Markdown() missing title header:\n%s", md)
	}
	if !strings.Contains(md, "- 1. Introduction (p. 2)") {
		t.Errorf("Markdown() missing H1 bullet:\n%s", md)
	}
	if !strings.Contains(md, "  - 1.1 Background (p. 2)") {
		t.Errorf("Markdown() missing indented H2 bullet:\n%s", md)
	}
}

func TestOutlineTOC(t *testing.T) {
	o := NewOutline("Project Plan", []OutlineEntry{
		{Level: HeadingLevel1, Text: "1. Introduction", Page: 2},
		{Level: HeadingLevel2, Text: "1.1 Background", Page: 2},
		{Level: HeadingLevel3, Text: "1.1.1 Prior Work", Page: 3},
	})

	got := o.TOC()
	want := "1. Introduction  2\n  1.1 Background  2\n    1.1.1 Prior Work  3\n"
	if got != want {
		t.Errorf("TOC() = %q, want %q", got, want)
	}

	empty := NewOutline("Untitled", nil)
	if empty.TOC() != "" {
		t.Errorf("empty TOC() = %q, want empty", empty.TOC())
	}
}

// ============================================================================
// Layout Tests
// ============================================================================

func TestLayoutAccessors(t *testing.T) {
	layout := &Layout{
		Pages: []Page{
			{Number: 1, Width: 595, Height: 842, Runs: []StyledRun{
				{Text: "Title", FontSize: 24, Page: 1},
			}},
			{Number: 2, Width: 595, Height: 842, Runs: []StyledRun{
				{Text: "Heading", FontSize: 16, Page: 2},
				{Text: "Body", FontSize: 11, Page: 2},
			}},
		},
	}

	if layout.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", layout.PageCount())
	}
	if layout.RunCount() != 3 {
		t.Errorf("RunCount() = %d, want 3", layout.RunCount())
	}
	if got := len(layout.Runs()); got != 3 {
		t.Errorf("len(Runs()) = %d, want 3", got)
	}

	p2 := layout.Page(2)
	if p2 == nil || len(p2.Runs) != 2 {
		t.Fatalf("Page(2) = %+v, want page with 2 runs", p2)
	}
	if layout.Page(9) != nil {
		t.Error("Page(9) != nil, want nil")
	}
}

func TestLayoutNilSafety(t *testing.T) {
	var layout *Layout

	if layout.PageCount() != 0 {
		t.Errorf("nil PageCount() = %d, want 0", layout.PageCount())
	}
	if layout.RunCount() != 0 {
		t.Errorf("nil RunCount() = %d, want 0", layout.RunCount())
	}
	if layout.Runs() != nil {
		t.Error("nil Runs() != nil, want nil")
	}
	if layout.Page(1) != nil {
		t.Error("nil Page(1) != nil, want nil")
	}
}
