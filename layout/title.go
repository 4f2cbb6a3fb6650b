package layout

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/rubrica/model"
)

// TitleConfig holds configuration for title detection
type TitleConfig struct {
	// Epsilon is the font size band below the first page's maximum size
	// within which an element counts as a title candidate
	// Default: 0.2 points
	Epsilon float64

	// TopRegionCutoff is the vertical position below which (in reading
	// direction, so Y greater than the cutoff) candidates are ignored in
	// multiline mode; the title is expected in the upper part of the page
	// Default: 250 points
	TopRegionCutoff float64

	// MaxLines is the maximum number of candidate lines joined into a
	// multiline title
	// Default: 5
	MaxLines int

	// MinPartLength is the minimum text length for a candidate line to
	// contribute to the title
	// Default: 3 characters
	MinPartLength int

	// Multiline joins all top-region candidates into one title; when false
	// a single best-scored candidate is used
	// Default: true
	Multiline bool

	// CenterWeight scales the horizontal-center distance penalty when
	// scoring candidates in single-line mode; zero ignores centering
	// Default: 0.5
	CenterWeight float64
}

// DefaultTitleConfig returns sensible default configuration
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		Epsilon:         0.2,
		TopRegionCutoff: 250.0,
		MaxLines:        5,
		MinPartLength:   3,
		Multiline:       true,
		CenterWeight:    0.5,
	}
}

// TitleResult holds the outcome of title detection.
type TitleResult struct {
	// Text is the detected title, empty when no candidate survived
	Text string

	// Size is the representative font size of the title. When Text is
	// empty but first-page elements exist, Size still carries the largest
	// first-page size so the assigner can exclude it from the heading
	// hierarchy.
	Size float64

	// HasSize reports whether Size is meaningful; it is false only when
	// the first page has no elements at all
	HasSize bool

	// Lines are the candidate texts joined into the title, in order
	Lines []string
}

// Found reports whether a non-empty title was detected.
func (t TitleResult) Found() bool {
	return t.Text != ""
}

// TitleDetector identifies the document title among the largest-font text
// on the first page.
type TitleDetector struct {
	config TitleConfig
}

// NewTitleDetector creates a new detector with default configuration
func NewTitleDetector() *TitleDetector {
	return &TitleDetector{
		config: DefaultTitleConfig(),
	}
}

// NewTitleDetectorWithConfig creates a detector with custom configuration
func NewTitleDetectorWithConfig(config TitleConfig) *TitleDetector {
	return &TitleDetector{
		config: config,
	}
}

var pureDigitsPattern = regexp.MustCompile(`^\d+$`)

// Detect finds the title among the given elements. Only first-page elements
// are considered. Candidates within Epsilon of the largest first-page font
// size and inside the top region are sorted by vertical position and joined
// with a double space, skipping lines that look like page numbers or
// boilerplate. When no candidate survives, the returned result has empty
// text but still carries the largest size for downstream exclusion.
//
// pageWidth is used for center scoring in single-line mode; zero or
// negative falls back to the A4 default.
func (d *TitleDetector) Detect(elements []model.TextElement, pageWidth float64) TitleResult {
	var firstPage []model.TextElement
	for _, el := range elements {
		if el.Page == 1 {
			firstPage = append(firstPage, el)
		}
	}
	if len(firstPage) == 0 {
		return TitleResult{}
	}
	if pageWidth <= 0 {
		pageWidth = model.DefaultPageWidth
	}

	maxSize := firstPage[0].FontSize
	for _, el := range firstPage[1:] {
		if el.FontSize > maxSize {
			maxSize = el.FontSize
		}
	}

	var candidates []model.TextElement
	for _, el := range firstPage {
		if absFloat(el.FontSize-maxSize) < d.config.Epsilon {
			candidates = append(candidates, el)
		}
	}

	result := TitleResult{Size: maxSize, HasSize: true}
	if len(candidates) == 0 {
		return result
	}

	if d.config.Multiline {
		result.Lines = d.collectLines(candidates)
	} else if best, ok := d.bestCandidate(candidates, pageWidth); ok {
		result.Lines = []string{best.Text}
	}
	result.Text = strings.Join(result.Lines, "  ")
	return result
}

// collectLines gathers top-region candidates in vertical order.
func (d *TitleDetector) collectLines(candidates []model.TextElement) []string {
	var top []model.TextElement
	for _, el := range candidates {
		if el.Y < d.config.TopRegionCutoff {
			top = append(top, el)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Y < top[j].Y
	})
	if d.config.MaxLines > 0 && len(top) > d.config.MaxLines {
		top = top[:d.config.MaxLines]
	}

	var lines []string
	for _, el := range top {
		if d.isBoilerplate(el.Text) {
			continue
		}
		lines = append(lines, el.Text)
	}
	return lines
}

// bestCandidate scores candidates by vertical position plus a weighted
// distance from the horizontal page center, lower is better.
func (d *TitleDetector) bestCandidate(candidates []model.TextElement, pageWidth float64) (model.TextElement, bool) {
	center := pageWidth / 2
	best := model.TextElement{}
	bestScore := 0.0
	found := false
	for _, el := range candidates {
		if d.isBoilerplate(el.Text) {
			continue
		}
		elCenter := el.X + el.Width/2
		score := el.Y + d.config.CenterWeight*absFloat(elCenter-center)
		if !found || score < bestScore {
			best = el
			bestScore = score
			found = true
		}
	}
	return best, found
}

// isBoilerplate reports whether a candidate line is a page-number or
// boilerplate false positive rather than title text.
func (d *TitleDetector) isBoilerplate(text string) bool {
	if utf8.RuneCountInString(text) < d.config.MinPartLength {
		return true
	}
	if pureDigitsPattern.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "copyright") || strings.Contains(lower, "page")
}
