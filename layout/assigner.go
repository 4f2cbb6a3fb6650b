package layout

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/rubrica/model"
)

// GuardPolicy controls the structural guard on level transitions.
type GuardPolicy int

const (
	// GuardStrict suppresses any element whose level is shallower than the
	// most recently emitted level. The element is dropped, not re-leveled.
	GuardStrict GuardPolicy = iota

	// GuardPermissive accepts every transition, including jumps such as an
	// H3 directly after an H1.
	GuardPermissive
)

func (g GuardPolicy) String() string {
	if g == GuardPermissive {
		return "permissive"
	}
	return "strict"
}

// ExtraClusterPolicy controls what happens to font clusters beyond the
// third heading size.
type ExtraClusterPolicy int

const (
	// ExtraClustersDrop leaves the fourth and smaller clusters unmapped;
	// elements in them fall out of the outline.
	ExtraClustersDrop ExtraClusterPolicy = iota

	// ExtraClustersCollapse maps the fourth and smaller clusters to H3.
	ExtraClustersCollapse
)

func (e ExtraClusterPolicy) String() string {
	if e == ExtraClustersCollapse {
		return "collapse"
	}
	return "drop"
}

// PageNumbering controls the page number written into outline entries.
type PageNumbering int

const (
	// PagePhysical emits the 1-based page number as supplied by the
	// extraction library.
	PagePhysical PageNumbering = iota

	// PageLogical treats the first page of a multi-page document as a
	// cover and shifts the remaining pages down by one.
	PageLogical
)

func (p PageNumbering) String() string {
	if p == PageLogical {
		return "logical"
	}
	return "physical"
}

// DefaultHeadingWords are section names whose presence marks a text as
// heading-like regardless of capitalization.
var DefaultHeadingWords = []string{
	"introduction", "overview", "content", "references", "acknowledgements",
	"history", "outcomes", "requirements", "structure", "audience", "objectives",
}

// AssignerConfig holds configuration for heading assignment
type AssignerConfig struct {
	// TitleExclusionTolerance is the size distance within which a cluster
	// counts as the title's cluster and is excluded from the heading map
	// Default: 0.3 points
	TitleExclusionTolerance float64

	// ClusterMatchTolerance is the maximum distance from the nearest
	// heading cluster for an element to be assigned at all
	// Default: 0.3 points
	ClusterMatchTolerance float64

	// MinTextLength is the minimum trimmed text length for a candidate
	// Default: 3 characters
	MinTextLength int

	// MinHeadingLength and MaxHeadingLength bound the plausible length of
	// a heading that qualifies only by starting with a capital letter
	// Defaults: 5 and 100 characters
	MinHeadingLength int
	MaxHeadingLength int

	// MaxWords rejects candidates with more words than this; full
	// sentences are body text, not headings. Zero disables the check.
	// Default: 12
	MaxWords int

	// RejectTrailingPeriod rejects candidates ending with a period
	// Default: true
	RejectTrailingPeriod bool

	// HeadingWords are positive content signals checked as lowercase
	// substrings
	// Default: DefaultHeadingWords
	HeadingWords []string

	// Guard is the structural guard policy (default: GuardStrict)
	Guard GuardPolicy

	// ExtraClusters controls clusters beyond the third heading size
	// (default: ExtraClustersDrop)
	ExtraClusters ExtraClusterPolicy

	// Pages is the page numbering policy (default: PagePhysical)
	Pages PageNumbering

	// Diagnostics receives per-element accept/reject events; nil discards
	Diagnostics Diagnostics
}

// DefaultAssignerConfig returns sensible default configuration
func DefaultAssignerConfig() AssignerConfig {
	return AssignerConfig{
		TitleExclusionTolerance: 0.3,
		ClusterMatchTolerance:   0.3,
		MinTextLength:           3,
		MinHeadingLength:        5,
		MaxHeadingLength:        100,
		MaxWords:                12,
		RejectTrailingPeriod:    true,
		HeadingWords:            DefaultHeadingWords,
		Guard:                   GuardStrict,
		ExtraClusters:           ExtraClustersDrop,
		Pages:                   PagePhysical,
	}
}

// HeadingAssigner maps text elements to heading levels by combining the
// font size hierarchy, numbering prefixes, and content checks.
type HeadingAssigner struct {
	config AssignerConfig
	diag   Diagnostics
}

// NewHeadingAssigner creates a new assigner with default configuration
func NewHeadingAssigner() *HeadingAssigner {
	return NewHeadingAssignerWithConfig(DefaultAssignerConfig())
}

// NewHeadingAssignerWithConfig creates an assigner with custom configuration
func NewHeadingAssignerWithConfig(config AssignerConfig) *HeadingAssigner {
	diag := config.Diagnostics
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &HeadingAssigner{
		config: config,
		diag:   diag,
	}
}

// numberedHeadingPattern is the positive content signal for numbered
// headings: digits, then dots, digits, or spaces, then an uppercase letter.
var numberedHeadingPattern = regexp.MustCompile(`^\d+[.\d\s]*\p{Lu}`)

// Assign walks the elements in reading order and emits the outline.
//
// Elements on page 1 are reserved for the title and never emitted. Each
// remaining element passes through the length, content, and sentence gates,
// is matched to the nearest heading cluster, leveled by cluster rank with
// the numbering override applied, and finally checked against the
// structural guard. A reject at any gate excludes the element and scanning
// continues; a heading-free document yields an empty outline, never an
// error.
func (a *HeadingAssigner) Assign(elements []model.TextElement, clusters []FontCluster, title TitleResult, pageCount int) []model.OutlineEntry {
	searchable := a.headingClusters(clusters, title)

	sorted := make([]model.TextElement, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	entries := make([]model.OutlineEntry, 0)
	lastRank := 0

	for _, el := range sorted {
		if el.Page == 1 {
			a.diag.ElementRejected(el, ReasonTitlePage)
			continue
		}
		if el.RuneLen() < a.config.MinTextLength {
			a.diag.ElementRejected(el, ReasonTooShort)
			continue
		}
		if !a.headingLike(el.Text) {
			a.diag.ElementRejected(el, ReasonNotHeadingLike)
			continue
		}
		if a.sentenceLike(el.Text) {
			a.diag.ElementRejected(el, ReasonSentenceLike)
			continue
		}

		if len(searchable) == 0 {
			a.diag.ElementRejected(el, ReasonNoCluster)
			continue
		}
		idx, delta := nearestCluster(searchable, el.FontSize)
		if delta > a.config.ClusterMatchTolerance {
			a.diag.ElementRejected(el, ReasonClusterDistance)
			continue
		}

		level := levelForRank(idx)
		if depth, ok := NumberingLevel(el.Text); ok {
			level = model.HeadingLevel(depth)
		}

		if a.config.Guard == GuardStrict && level.Depth() < lastRank {
			a.diag.ElementRejected(el, ReasonLevelRegression)
			continue
		}
		lastRank = level.Depth()

		entry := model.OutlineEntry{
			Level: level,
			Text:  el.Text,
			Page:  a.outputPage(el.Page, pageCount),
		}
		entries = append(entries, entry)
		a.diag.ElementAccepted(el, entry)
	}

	return entries
}

// headingClusters removes the title's cluster from the hierarchy and
// applies the extra-cluster policy. The returned slice keeps the descending
// order, so index equals heading rank.
func (a *HeadingAssigner) headingClusters(clusters []FontCluster, title TitleResult) []FontCluster {
	var heading []FontCluster
	for _, c := range clusters {
		if title.HasSize && absFloat(c.Size-title.Size) < a.config.TitleExclusionTolerance {
			continue
		}
		heading = append(heading, c)
	}
	if a.config.ExtraClusters == ExtraClustersDrop && len(heading) > 3 {
		heading = heading[:3]
	}
	return heading
}

// levelForRank maps a cluster rank to a heading level; ranks past the
// third are only reachable under ExtraClustersCollapse and map to H3.
func levelForRank(rank int) model.HeadingLevel {
	switch rank {
	case 0:
		return model.HeadingLevel1
	case 1:
		return model.HeadingLevel2
	default:
		return model.HeadingLevel3
	}
}

// headingLike applies the content test: no bare digit strings or
// boilerplate markers, then at least one positive signal. Positive signals
// are a leading numbered pattern, a known section word, or a capital first
// letter with plausible length.
func (a *HeadingAssigner) headingLike(text string) bool {
	if pureDigitsPattern.MatchString(text) {
		return false
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "version") ||
		strings.Contains(lower, "page") ||
		strings.Contains(lower, "copyright") ||
		strings.Contains(text, "©") {
		return false
	}

	if numberedHeadingPattern.MatchString(text) {
		return true
	}
	for _, word := range a.config.HeadingWords {
		if strings.Contains(lower, word) {
			return true
		}
	}

	first, _ := utf8.DecodeRuneInString(text)
	n := utf8.RuneCountInString(text)
	return unicode.IsUpper(first) && n >= a.config.MinHeadingLength && n <= a.config.MaxHeadingLength
}

// sentenceLike reports whether the text reads like body prose.
func (a *HeadingAssigner) sentenceLike(text string) bool {
	if a.config.RejectTrailingPeriod &&
		strings.HasSuffix(strings.TrimRightFunc(text, unicode.IsSpace), ".") {
		return true
	}
	return a.config.MaxWords > 0 && len(strings.Fields(text)) > a.config.MaxWords
}

// outputPage applies the page numbering policy.
func (a *HeadingAssigner) outputPage(page, pageCount int) int {
	if a.config.Pages == PageLogical && pageCount > 1 {
		return page - 1
	}
	return page
}
