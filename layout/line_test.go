package layout

import (
	"testing"

	"github.com/tsawler/rubrica/model"
)

// makeLineRun creates a styled run for line builder tests
func makeLineRun(txt string, page, block, line int, x, y, w, h, size float64) model.StyledRun {
	return model.StyledRun{
		Text:     txt,
		FontSize: size,
		FontName: "Helvetica",
		BBox:     model.NewBBox(x, y, w, h),
		Page:     page,
		Block:    block,
		Line:     line,
	}
}

func TestNewLineBuilder(t *testing.T) {
	builder := NewLineBuilder()
	if builder == nil {
		t.Fatal("NewLineBuilder returned nil")
	}
	if builder.config.MergeMaxGap != 15.0 {
		t.Errorf("Expected MergeMaxGap=15.0, got %f", builder.config.MergeMaxGap)
	}
}

func TestDefaultLineConfig(t *testing.T) {
	config := DefaultLineConfig()

	if config.MergeSizeTolerance != 0.2 {
		t.Errorf("Expected MergeSizeTolerance=0.2, got %f", config.MergeSizeTolerance)
	}
	if config.MergeIndentTolerance != 2.0 {
		t.Errorf("Expected MergeIndentTolerance=2.0, got %f", config.MergeIndentTolerance)
	}
	if config.MergeMaxGap != 15.0 {
		t.Errorf("Expected MergeMaxGap=15.0, got %f", config.MergeMaxGap)
	}
}

func TestBuildEmpty(t *testing.T) {
	builder := NewLineBuilder()
	if got := builder.Build(nil); got != nil {
		t.Errorf("Build(nil) = %v, want nil", got)
	}
}

func TestBuildGroupsRunsIntoLines(t *testing.T) {
	builder := NewLineBuilder()
	runs := []model.StyledRun{
		makeLineRun("1.", 1, 0, 0, 72, 100, 12, 16, 16),
		makeLineRun("Introduction", 1, 0, 0, 90, 100, 110, 16, 16),
		makeLineRun("Body text here", 1, 1, 0, 72, 140, 200, 11, 11),
	}

	elements := builder.Build(runs)
	if len(elements) != 2 {
		t.Fatalf("Expected 2 elements, got %d", len(elements))
	}

	if elements[0].Text != "1. Introduction" {
		t.Errorf("Expected joined text %q, got %q", "1. Introduction", elements[0].Text)
	}
	if elements[1].Text != "Body text here" {
		t.Errorf("Expected %q, got %q", "Body text here", elements[1].Text)
	}
}

func TestBuildFirstRunWinsStyle(t *testing.T) {
	builder := NewLineBuilder()
	first := makeLineRun("Mixed", 1, 0, 0, 72, 100, 50, 16, 16.0)
	first.FontName = "Helvetica-Bold"
	first.Bold = true
	second := makeLineRun("style line", 1, 0, 0, 125, 100, 80, 14, 14.0)

	elements := builder.Build([]model.StyledRun{first, second})
	if len(elements) != 1 {
		t.Fatalf("Expected 1 element, got %d", len(elements))
	}

	el := elements[0]
	if el.FontSize != 16.0 {
		t.Errorf("Expected first run's size 16.0, got %f", el.FontSize)
	}
	if el.FontName != "Helvetica-Bold" || !el.Bold {
		t.Errorf("Expected first run's style, got font=%q bold=%v", el.FontName, el.Bold)
	}
}

func TestBuildDropsEmptyRuns(t *testing.T) {
	builder := NewLineBuilder()
	runs := []model.StyledRun{
		makeLineRun("   ", 1, 0, 0, 60, 100, 10, 20, 20),
		makeLineRun("Heading", 1, 0, 0, 72, 100, 80, 16, 16),
	}

	elements := builder.Build(runs)
	if len(elements) != 1 {
		t.Fatalf("Expected 1 element, got %d", len(elements))
	}
	if elements[0].FontSize != 16 {
		t.Errorf("Whitespace run contributed style: got size %f, want 16", elements[0].FontSize)
	}
	if elements[0].Text != "Heading" {
		t.Errorf("Expected %q, got %q", "Heading", elements[0].Text)
	}
}

func TestBuildDropsRunsWithoutFontSize(t *testing.T) {
	builder := NewLineBuilder()
	runs := []model.StyledRun{
		makeLineRun("broken", 1, 0, 0, 72, 100, 50, 12, 0),
		makeLineRun("Valid", 1, 0, 1, 72, 120, 50, 12, 12),
	}

	elements := builder.Build(runs)
	if len(elements) != 1 {
		t.Fatalf("Expected 1 element, got %d", len(elements))
	}
	if elements[0].Text != "Valid" {
		t.Errorf("Expected %q, got %q", "Valid", elements[0].Text)
	}
}

func TestBuildTrimsRunText(t *testing.T) {
	builder := NewLineBuilder()
	runs := []model.StyledRun{
		makeLineRun("  Annual ", 1, 0, 0, 72, 100, 70, 24, 24),
		makeLineRun(" Report  ", 1, 0, 0, 150, 100, 70, 24, 24),
	}

	elements := builder.Build(runs)
	if elements[0].Text != "Annual Report" {
		t.Errorf("Expected %q, got %q", "Annual Report", elements[0].Text)
	}
}

func TestBuildUnionBBox(t *testing.T) {
	builder := NewLineBuilder()
	runs := []model.StyledRun{
		makeLineRun("left", 1, 0, 0, 72, 100, 20, 16, 16),
		makeLineRun("right", 1, 0, 0, 95, 100, 100, 16, 16),
	}

	elements := builder.Build(runs)
	el := elements[0]
	if el.X != 72 || el.Width != 123 {
		t.Errorf("Expected union X=72 Width=123, got X=%f Width=%f", el.X, el.Width)
	}
	if el.Y != 100 || el.Height != 16 {
		t.Errorf("Expected Y=100 Height=16, got Y=%f Height=%f", el.Y, el.Height)
	}
}

func TestBuildOrdering(t *testing.T) {
	builder := NewLineBuilder()
	runs := []model.StyledRun{
		makeLineRun("Second page", 2, 0, 0, 72, 100, 90, 11, 11),
		makeLineRun("First page second block", 1, 1, 0, 72, 200, 90, 11, 11),
		makeLineRun("First page first block", 1, 0, 0, 72, 100, 90, 11, 11),
	}

	elements := builder.Build(runs)
	if len(elements) != 3 {
		t.Fatalf("Expected 3 elements, got %d", len(elements))
	}
	if elements[0].Text != "First page first block" ||
		elements[1].Text != "First page second block" ||
		elements[2].Text != "Second page" {
		t.Errorf("Elements out of order: %q, %q, %q",
			elements[0].Text, elements[1].Text, elements[2].Text)
	}
}

// makeLineElement creates a text element for merge tests
func makeLineElement(txt string, page, block, line int, x, y, h, size float64) model.TextElement {
	return model.TextElement{
		Text:     txt,
		FontSize: size,
		FontName: "Helvetica",
		X:        x,
		Y:        y,
		Width:    100,
		Height:   h,
		Page:     page,
		Block:    block,
		Line:     line,
	}
}

func TestMergeAdjacentEmpty(t *testing.T) {
	builder := NewLineBuilder()
	if got := builder.MergeAdjacent(nil); got != nil {
		t.Errorf("MergeAdjacent(nil) = %v, want nil", got)
	}
}

func TestMergeAdjacentStackedLines(t *testing.T) {
	builder := NewLineBuilder()
	elements := []model.TextElement{
		makeLineElement("A Very Long", 1, 0, 0, 72, 100, 20, 20),
		makeLineElement("Document Title", 1, 0, 1, 72, 125, 20, 20),
	}

	merged := builder.MergeAdjacent(elements)
	if len(merged) != 1 {
		t.Fatalf("Expected 1 merged element, got %d", len(merged))
	}
	if merged[0].Text != "A Very Long Document Title" {
		t.Errorf("Expected merged text, got %q", merged[0].Text)
	}
	if merged[0].Height != 40 {
		t.Errorf("Expected accumulated height 40, got %f", merged[0].Height)
	}
}

func TestMergeAdjacentTrailingEdgeBaseline(t *testing.T) {
	// After a merge the buffer's bottom moves down, so a third line is
	// compared against the accumulated extent, not the first line's.
	builder := NewLineBuilder()
	elements := []model.TextElement{
		makeLineElement("One", 1, 0, 0, 72, 100, 15, 18),
		makeLineElement("Two", 1, 0, 1, 72, 117, 15, 18),
		makeLineElement("Three", 1, 0, 2, 72, 134, 15, 18),
	}

	merged := builder.MergeAdjacent(elements)
	if len(merged) != 1 {
		t.Fatalf("Expected 1 merged element, got %d", len(merged))
	}
	if merged[0].Text != "One Two Three" {
		t.Errorf("Expected %q, got %q", "One Two Three", merged[0].Text)
	}
	if merged[0].Height != 45 {
		t.Errorf("Expected accumulated height 45, got %f", merged[0].Height)
	}
}

func TestMergeAdjacentRejections(t *testing.T) {
	base := makeLineElement("First", 1, 0, 0, 72, 100, 15, 18)

	tests := []struct {
		name string
		next model.TextElement
	}{
		{"different page", makeLineElement("Next", 2, 0, 1, 72, 117, 15, 18)},
		{"different block", makeLineElement("Next", 1, 1, 1, 72, 117, 15, 18)},
		{"size differs", makeLineElement("Next", 1, 0, 1, 72, 117, 15, 18.3)},
		{"indent differs", makeLineElement("Next", 1, 0, 1, 80, 117, 15, 18)},
		{"no gap", makeLineElement("Next", 1, 0, 1, 72, 110, 15, 18)},
		{"gap too large", makeLineElement("Next", 1, 0, 1, 72, 140, 15, 18)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewLineBuilder()
			merged := builder.MergeAdjacent([]model.TextElement{base, tt.next})
			if len(merged) != 2 {
				t.Errorf("Expected no merge (2 elements), got %d", len(merged))
			}
		})
	}
}

func TestMergeAdjacentStyleMismatch(t *testing.T) {
	builder := NewLineBuilder()
	first := makeLineElement("First", 1, 0, 0, 72, 100, 15, 18)
	second := makeLineElement("Second", 1, 0, 1, 72, 117, 15, 18)
	second.Bold = true

	merged := builder.MergeAdjacent([]model.TextElement{first, second})
	if len(merged) != 2 {
		t.Errorf("Expected no merge for bold mismatch, got %d elements", len(merged))
	}

	third := makeLineElement("Third", 1, 0, 1, 72, 117, 15, 18)
	third.FontName = "Times-Roman"
	merged = builder.MergeAdjacent([]model.TextElement{first, third})
	if len(merged) != 2 {
		t.Errorf("Expected no merge for font mismatch, got %d elements", len(merged))
	}
}

func TestMergeAdjacentSortsInput(t *testing.T) {
	builder := NewLineBuilder()
	elements := []model.TextElement{
		makeLineElement("Second", 1, 0, 1, 72, 125, 20, 20),
		makeLineElement("First", 1, 0, 0, 72, 100, 20, 20),
	}

	merged := builder.MergeAdjacent(elements)
	if len(merged) != 1 {
		t.Fatalf("Expected 1 merged element, got %d", len(merged))
	}
	if merged[0].Text != "First Second" {
		t.Errorf("Expected %q, got %q", "First Second", merged[0].Text)
	}
}
