package layout

import (
	"regexp"
	"strings"
)

// numberingPattern matches a leading numeric path of one to three
// dot-separated segments followed by a separator: space, tab, dash, colon,
// or a period before the separator ("1. ", "2.1 ", "3.1.4: ").
var numberingPattern = regexp.MustCompile(`^(\d+(?:\.\d+){0,2})\.?[ \t\-:]+`)

// NumberingLevel recognizes a numeric heading prefix in the trimmed text and
// returns its nesting depth: 1 for "1.", 2 for "2.1", 3 for "3.1.4". The
// second return value is false when the text carries no numbering signal.
//
// When the signal is present it overrides the font-size-derived level during
// assignment; numbering is a more reliable hierarchy cue than font size in
// documents that use one heading font for several depths.
func NumberingLevel(text string) (int, bool) {
	m := numberingPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	depth := strings.Count(m[1], ".") + 1
	if depth > 3 {
		depth = 3
	}
	return depth, true
}
