package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/rubrica/model"
)

// LineConfig holds configuration for line building and merging.
type LineConfig struct {
	// MergeSizeTolerance is the maximum font size difference between two
	// lines for them to merge into one element (default: 0.2 points)
	MergeSizeTolerance float64

	// MergeIndentTolerance is the maximum horizontal start difference
	// between two lines for them to merge (default: 2 points)
	MergeIndentTolerance float64

	// MergeMaxGap is the maximum vertical gap between two lines for them
	// to merge; the gap must also be positive (default: 15 points)
	MergeMaxGap float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		MergeSizeTolerance:   0.2,
		MergeIndentTolerance: 2.0,
		MergeMaxGap:          15.0,
	}
}

// LineBuilder groups styled runs into line-level text elements
type LineBuilder struct {
	config LineConfig
}

// NewLineBuilder creates a new line builder with default configuration
func NewLineBuilder() *LineBuilder {
	return &LineBuilder{
		config: DefaultLineConfig(),
	}
}

// NewLineBuilderWithConfig creates a line builder with custom configuration
func NewLineBuilderWithConfig(config LineConfig) *LineBuilder {
	return &LineBuilder{
		config: config,
	}
}

type lineKey struct {
	page  int
	block int
	line  int
}

// Build groups runs by page, block, and line into one element per visual
// line. Run texts are space-joined in run order. The element's style fields
// come from the first run with non-empty trimmed text; that choice is
// deliberate, not an average, so downstream clustering stays deterministic.
// Runs with empty trimmed text or a missing font size are dropped.
func (b *LineBuilder) Build(runs []model.StyledRun) []model.TextElement {
	if len(runs) == 0 {
		return nil
	}

	groups := make(map[lineKey]*lineGroup)
	var order []lineKey

	for _, run := range runs {
		text := strings.TrimSpace(run.Text)
		if text == "" {
			continue
		}
		if run.FontSize <= 0 {
			// Malformed style attributes skip the run rather than
			// failing the document.
			continue
		}

		key := lineKey{page: run.Page, block: run.Block, line: run.Line}
		group, ok := groups[key]
		if !ok {
			group = &lineGroup{key: key}
			groups[key] = group
			order = append(order, key)
		}
		group.add(run, text)
	}

	elements := make([]model.TextElement, 0, len(order))
	for _, key := range order {
		elements = append(elements, groups[key].element())
	}

	sort.SliceStable(elements, func(i, j int) bool {
		a, b := elements[i], elements[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Block != b.Block {
			return a.Block < b.Block
		}
		return a.Line < b.Line
	})

	return elements
}

// lineGroup accumulates the runs of a single visual line.
type lineGroup struct {
	key   lineKey
	texts []string
	first model.StyledRun
	bbox  model.BBox
}

func (g *lineGroup) add(run model.StyledRun, trimmed string) {
	if len(g.texts) == 0 {
		g.first = run
		g.bbox = run.BBox
	} else {
		g.bbox = g.bbox.Union(run.BBox)
	}
	g.texts = append(g.texts, trimmed)
}

func (g *lineGroup) element() model.TextElement {
	return model.TextElement{
		Text:     strings.Join(g.texts, " "),
		FontSize: g.first.FontSize,
		FontName: g.first.FontName,
		Bold:     g.first.Bold,
		Italic:   g.first.Italic,
		X:        g.bbox.X,
		Y:        g.bbox.Y,
		Width:    g.bbox.Width,
		Height:   g.bbox.Height,
		Page:     g.key.page,
		Block:    g.key.block,
		Line:     g.key.line,
	}
}

// MergeAdjacent merges vertically stacked lines that share a block and
// style into single multi-line elements, so that a title or heading broken
// across lines becomes one logical element.
//
// Two lines merge when they are on the same page and block, their font
// sizes differ by less than MergeSizeTolerance, font name and bold/italic
// flags match exactly, their horizontal starts differ by less than
// MergeIndentTolerance, and the vertical gap between them is positive and
// below MergeMaxGap. The scan is greedy and forward-only: after a merge the
// merged element's trailing edge becomes the comparison baseline for the
// next line, and merged height accumulates.
func (b *LineBuilder) MergeAdjacent(elements []model.TextElement) []model.TextElement {
	if len(elements) == 0 {
		return nil
	}

	sorted := make([]model.TextElement, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Block != b.Block {
			return a.Block < b.Block
		}
		return a.Line < b.Line
	})

	merged := make([]model.TextElement, 0, len(sorted))
	buf := sorted[0]

	for _, el := range sorted[1:] {
		if b.canMerge(buf, el) {
			buf.Text += " " + el.Text
			buf.Height += el.Height
			continue
		}
		merged = append(merged, buf)
		buf = el
	}
	merged = append(merged, buf)

	return merged
}

func (b *LineBuilder) canMerge(buf, el model.TextElement) bool {
	if el.Page != buf.Page || el.Block != buf.Block {
		return false
	}
	if absFloat(el.FontSize-buf.FontSize) >= b.config.MergeSizeTolerance {
		return false
	}
	if el.FontName != buf.FontName || el.Bold != buf.Bold || el.Italic != buf.Italic {
		return false
	}
	if absFloat(el.X-buf.X) >= b.config.MergeIndentTolerance {
		return false
	}
	gap := el.Y - buf.Bottom()
	return gap > 0 && gap < b.config.MergeMaxGap
}

// absFloat returns the absolute value of a float64
func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
