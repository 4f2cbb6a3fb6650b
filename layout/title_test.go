package layout

import (
	"testing"

	"github.com/tsawler/rubrica/model"
)

// makeTitleElement creates a text element for title tests
func makeTitleElement(txt string, page int, x, y, w, size float64) model.TextElement {
	return model.TextElement{
		Text:     txt,
		FontSize: size,
		FontName: "Helvetica-Bold",
		X:        x,
		Y:        y,
		Width:    w,
		Height:   size * 1.2,
		Page:     page,
	}
}

func TestNewTitleDetector(t *testing.T) {
	detector := NewTitleDetector()
	if detector == nil {
		t.Fatal("NewTitleDetector returned nil")
	}
}

func TestDefaultTitleConfig(t *testing.T) {
	config := DefaultTitleConfig()

	if config.Epsilon != 0.2 {
		t.Errorf("Expected Epsilon=0.2, got %f", config.Epsilon)
	}
	if config.TopRegionCutoff != 250.0 {
		t.Errorf("Expected TopRegionCutoff=250.0, got %f", config.TopRegionCutoff)
	}
	if config.MaxLines != 5 {
		t.Errorf("Expected MaxLines=5, got %d", config.MaxLines)
	}
	if !config.Multiline {
		t.Error("Expected Multiline=true")
	}
}

func TestDetectSingleLineTitle(t *testing.T) {
	detector := NewTitleDetector()
	elements := []model.TextElement{
		makeTitleElement("Annual Report 2024", 1, 100, 80, 300, 24),
		makeTitleElement("Body text for the report", 1, 72, 300, 200, 11),
	}

	result := detector.Detect(elements, 595)
	if result.Text != "Annual Report 2024" {
		t.Errorf("Expected title %q, got %q", "Annual Report 2024", result.Text)
	}
	if !result.HasSize || result.Size != 24 {
		t.Errorf("Expected size 24, got %f (has=%v)", result.Size, result.HasSize)
	}
	if !result.Found() {
		t.Error("Expected Found()=true")
	}
}

func TestDetectMultilineTitleJoinsWithDoubleSpace(t *testing.T) {
	detector := NewTitleDetector()
	elements := []model.TextElement{
		makeTitleElement("RFP: Request for Proposal", 1, 100, 80, 380, 28),
		makeTitleElement("Digital Library Services", 1, 100, 120, 360, 28),
		makeTitleElement("Body text", 1, 72, 300, 100, 11),
	}

	result := detector.Detect(elements, 595)
	want := "RFP: Request for Proposal  Digital Library Services"
	if result.Text != want {
		t.Errorf("Expected title %q, got %q", want, result.Text)
	}
	if len(result.Lines) != 2 {
		t.Errorf("Expected 2 title lines, got %d", len(result.Lines))
	}
}

func TestDetectOrdersCandidatesByVerticalPosition(t *testing.T) {
	detector := NewTitleDetector()
	elements := []model.TextElement{
		makeTitleElement("Second Line", 1, 100, 140, 300, 24),
		makeTitleElement("First Line", 1, 100, 90, 300, 24),
	}

	result := detector.Detect(elements, 595)
	if result.Text != "First Line  Second Line" {
		t.Errorf("Expected vertical ordering, got %q", result.Text)
	}
}

func TestDetectIgnoresCandidatesBelowTopRegion(t *testing.T) {
	detector := NewTitleDetector()
	elements := []model.TextElement{
		makeTitleElement("Cover Title", 1, 100, 80, 300, 24),
		makeTitleElement("Large Pull Quote", 1, 100, 400, 300, 24),
	}

	result := detector.Detect(elements, 595)
	if result.Text != "Cover Title" {
		t.Errorf("Expected only top-region candidate, got %q", result.Text)
	}
}

func TestDetectSkipsBoilerplateCandidates(t *testing.T) {
	detector := NewTitleDetector()
	elements := []model.TextElement{
		makeTitleElement("3", 1, 500, 30, 20, 24),
		makeTitleElement("Copyright Acme Inc", 1, 100, 60, 200, 24),
		makeTitleElement("Strategic Plan", 1, 100, 100, 300, 24),
	}

	result := detector.Detect(elements, 595)
	if result.Text != "Strategic Plan" {
		t.Errorf("Expected boilerplate skipped, got %q", result.Text)
	}
}

func TestDetectNoSurvivingCandidateKeepsSize(t *testing.T) {
	detector := NewTitleDetector()
	elements := []model.TextElement{
		makeTitleElement("42", 1, 500, 30, 20, 24),
		makeTitleElement("Body text paragraph", 1, 72, 300, 200, 11),
	}

	result := detector.Detect(elements, 595)
	if result.Text != "" {
		t.Errorf("Expected empty title, got %q", result.Text)
	}
	if !result.HasSize || result.Size != 24 {
		t.Errorf("Expected provisional size 24 for exclusion, got %f (has=%v)",
			result.Size, result.HasSize)
	}
	if result.Found() {
		t.Error("Expected Found()=false for empty title")
	}
}

func TestDetectNoFirstPageElements(t *testing.T) {
	detector := NewTitleDetector()
	elements := []model.TextElement{
		makeTitleElement("Second Page Heading", 2, 72, 100, 200, 16),
	}

	result := detector.Detect(elements, 595)
	if result.Text != "" || result.HasSize {
		t.Errorf("Expected zero result, got %+v", result)
	}
}

func TestDetectEpsilonBand(t *testing.T) {
	detector := NewTitleDetector()
	elements := []model.TextElement{
		makeTitleElement("Main Title", 1, 100, 80, 300, 24.0),
		makeTitleElement("Near Title Size", 1, 100, 120, 300, 23.9),
		makeTitleElement("Subtitle Line", 1, 100, 160, 300, 23.0),
	}

	result := detector.Detect(elements, 595)
	if result.Text != "Main Title  Near Title Size" {
		t.Errorf("Expected only candidates within epsilon, got %q", result.Text)
	}
}

func TestDetectMaxLinesCap(t *testing.T) {
	config := DefaultTitleConfig()
	config.MaxLines = 2
	detector := NewTitleDetectorWithConfig(config)

	elements := []model.TextElement{
		makeTitleElement("Part One", 1, 100, 60, 300, 24),
		makeTitleElement("Part Two", 1, 100, 90, 300, 24),
		makeTitleElement("Part Three", 1, 100, 120, 300, 24),
	}

	result := detector.Detect(elements, 595)
	if result.Text != "Part One  Part Two" {
		t.Errorf("Expected cap at 2 lines, got %q", result.Text)
	}
}

func TestDetectSingleLineModePrefersCenteredTop(t *testing.T) {
	config := DefaultTitleConfig()
	config.Multiline = false
	detector := NewTitleDetectorWithConfig(config)

	elements := []model.TextElement{
		makeTitleElement("Margin Note", 1, 10, 100, 50, 24),
		makeTitleElement("Centered Title", 1, 250, 105, 95, 24),
	}

	result := detector.Detect(elements, 595)
	if result.Text != "Centered Title" {
		t.Errorf("Expected centered candidate, got %q", result.Text)
	}
	if len(result.Lines) != 1 {
		t.Errorf("Expected 1 line, got %d", len(result.Lines))
	}
}

func TestDetectDefaultPageWidth(t *testing.T) {
	config := DefaultTitleConfig()
	config.Multiline = false
	detector := NewTitleDetectorWithConfig(config)

	elements := []model.TextElement{
		makeTitleElement("Solo Title", 1, 200, 90, 200, 24),
	}

	result := detector.Detect(elements, 0)
	if result.Text != "Solo Title" {
		t.Errorf("Expected title with fallback width, got %q", result.Text)
	}
}
