package layout

import "testing"

func TestNumberingLevel(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantDepth int
		wantOK    bool
	}{
		{"single segment with period", "1. Introduction", 1, true},
		{"single segment bare", "4 Evaluation", 1, true},
		{"two segments", "2.1 Background", 2, true},
		{"two segments with period", "2.1. Background", 2, true},
		{"three segments", "3.1.4 Edge Cases", 3, true},
		{"colon separator", "3.1.4: Edge Cases", 3, true},
		{"dash separator", "2.3- Methods", 2, true},
		{"tab separator", "5\tResults", 1, true},
		{"leading whitespace trimmed", "  2.1 Scope", 2, true},
		{"four segments no signal", "1.2.3.4 Deep", 0, false},
		{"no separator", "1.Introduction", 0, false},
		{"plain word", "Introduction", 0, false},
		{"bare year", "2024", 0, false},
		{"digits at end", "Chapter 1", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth, ok := NumberingLevel(tt.text)
			if ok != tt.wantOK || depth != tt.wantDepth {
				t.Errorf("NumberingLevel(%q) = (%d, %v), want (%d, %v)",
					tt.text, depth, ok, tt.wantDepth, tt.wantOK)
			}
		})
	}
}
