package layout

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/rubrica/model"
)

// RegionType indicates whether a repeated pattern was found in the top or
// bottom margin band
type RegionType int

const (
	Header RegionType = iota
	Footer
)

func (r RegionType) String() string {
	if r == Header {
		return "header"
	}
	return "footer"
}

// RepeatedPattern is a normalized text that recurs in a margin band across
// pages and was classified as a header or footer.
type RepeatedPattern struct {
	// Key is the normalized grouping key
	Key string

	// Sample is the raw text of the first occurrence
	Sample string

	// Region is the margin band the pattern was found in
	Region RegionType

	// Pages lists the distinct pages the pattern appears on, ascending
	Pages []int

	// Ratio is len(Pages) divided by the total page count
	Ratio float64
}

// HeaderFooterConfig holds configuration for header/footer detection
type HeaderFooterConfig struct {
	// HeaderRegionHeight is the height from the top of the page treated as
	// the header band; an element with Y below it is a candidate
	// Default: 80 points
	HeaderRegionHeight float64

	// FooterRegionHeight is the height from the bottom of the page treated
	// as the footer band
	// Default: 92 points
	FooterRegionHeight float64

	// MinOccurrenceRatio is the fraction of pages a normalized text must
	// exceed to be removed regardless of its content
	// Default: 0.6
	MinOccurrenceRatio float64

	// BoilerplateOccurrenceRatio is the lower fraction of pages that
	// suffices when the text also looks like boilerplate (page/version/
	// copyright markers, "N of M", or very short text)
	// Default: 0.4
	BoilerplateOccurrenceRatio float64

	// BoilerplateMaxLength is the raw text length below which repeated
	// margin text counts as boilerplate
	// Default: 10 characters
	BoilerplateMaxLength int

	// MinPages is the minimum page count for detection to run at all;
	// shorter documents pass through unfiltered
	// Default: 2
	MinPages int

	// StripVolatileTokens removes "Page N of M" and "Version N" from the
	// text before computing the grouping key, so that per-page variants
	// group together
	// Default: true
	StripVolatileTokens bool
}

// DefaultHeaderFooterConfig returns sensible default configuration
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		HeaderRegionHeight:         80.0,
		FooterRegionHeight:         92.0,
		MinOccurrenceRatio:         0.6,
		BoilerplateOccurrenceRatio: 0.4,
		BoilerplateMaxLength:       10,
		MinPages:                   2,
		StripVolatileTokens:        true,
	}
}

// HeaderFooterDetector finds text that repeats near the page margins across
// a document. Repeated margin text is presumed decorative; one-off margin
// text, such as a genuine heading that happens to sit near a margin on one
// page, survives.
type HeaderFooterDetector struct {
	config HeaderFooterConfig
}

// NewHeaderFooterDetector creates a new detector with default configuration
func NewHeaderFooterDetector() *HeaderFooterDetector {
	return &HeaderFooterDetector{
		config: DefaultHeaderFooterConfig(),
	}
}

// NewHeaderFooterDetectorWithConfig creates a detector with custom configuration
func NewHeaderFooterDetectorWithConfig(config HeaderFooterConfig) *HeaderFooterDetector {
	return &HeaderFooterDetector{
		config: config,
	}
}

// HeaderFooterResult contains the detection results
type HeaderFooterResult struct {
	// Patterns are the texts classified as headers or footers
	Patterns []RepeatedPattern

	// RemovedElements is the number of elements struck from the document
	RemovedElements int

	// TotalPages is the page count detection ran against
	TotalPages int

	// Config used for detection
	Config HeaderFooterConfig
}

// Headers returns the patterns found in the top margin band.
func (r *HeaderFooterResult) Headers() []RepeatedPattern {
	return r.byRegion(Header)
}

// Footers returns the patterns found in the bottom margin band.
func (r *HeaderFooterResult) Footers() []RepeatedPattern {
	return r.byRegion(Footer)
}

func (r *HeaderFooterResult) byRegion(region RegionType) []RepeatedPattern {
	if r == nil {
		return nil
	}
	var out []RepeatedPattern
	for _, p := range r.Patterns {
		if p.Region == region {
			out = append(out, p)
		}
	}
	return out
}

var (
	volatilePagePattern    = regexp.MustCompile(`(?i)page\s+\d+\s+of\s+\d+`)
	volatileVersionPattern = regexp.MustCompile(`(?i)version\s?\d+`)
	nOfMPattern            = regexp.MustCompile(`\d+\s+of\s+\d+`)
)

// Detect analyzes elements against the page count and reports which
// normalized texts qualify as headers or footers, without filtering.
func (d *HeaderFooterDetector) Detect(elements []model.TextElement, pageCount int, pageHeight float64) *HeaderFooterResult {
	_, result := d.Filter(elements, pageCount, pageHeight)
	return result
}

// Filter removes header/footer elements and returns the surviving elements
// along with the detection result. A text classified as a header or footer
// is struck from all its occurrences, not just the ones inside the margin
// bands. When pageHeight is zero or negative the A4 default is used.
func (d *HeaderFooterDetector) Filter(elements []model.TextElement, pageCount int, pageHeight float64) ([]model.TextElement, *HeaderFooterResult) {
	result := &HeaderFooterResult{TotalPages: pageCount, Config: d.config}
	if pageCount < d.config.MinPages || len(elements) == 0 {
		return elements, result
	}
	if pageHeight <= 0 {
		pageHeight = model.DefaultPageHeight
	}

	type occurrence struct {
		pages  map[int]struct{}
		sample string
		region RegionType
	}
	seen := make(map[string]*occurrence)
	volatileOnly := make(map[int]struct{})

	for i, el := range elements {
		region, inBand := d.bandFor(el, pageHeight)
		if !inBand {
			continue
		}
		key := d.normalizeKey(el.Text)
		if key == "" {
			// A margin line that is nothing but volatile tokens
			// ("Page 3 of 10") has no stable key to count; strike
			// it directly.
			if d.config.StripVolatileTokens && isVolatileText(el.Text) {
				volatileOnly[i] = struct{}{}
			}
			continue
		}
		occ, ok := seen[key]
		if !ok {
			occ = &occurrence{
				pages:  make(map[int]struct{}),
				sample: el.Text,
				region: region,
			}
			seen[key] = occ
		}
		occ.pages[el.Page] = struct{}{}
	}

	removed := make(map[string]struct{})
	for key, occ := range seen {
		ratio := float64(len(occ.pages)) / float64(pageCount)
		if ratio > d.config.MinOccurrenceRatio ||
			(ratio > d.config.BoilerplateOccurrenceRatio && d.looksBoilerplate(occ.sample)) {
			removed[key] = struct{}{}

			pages := make([]int, 0, len(occ.pages))
			for p := range occ.pages {
				pages = append(pages, p)
			}
			sort.Ints(pages)
			result.Patterns = append(result.Patterns, RepeatedPattern{
				Key:    key,
				Sample: occ.sample,
				Region: occ.region,
				Pages:  pages,
				Ratio:  ratio,
			})
		}
	}
	sort.Slice(result.Patterns, func(i, j int) bool {
		a, b := result.Patterns[i], result.Patterns[j]
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		return a.Key < b.Key
	})

	if len(removed) == 0 && len(volatileOnly) == 0 {
		return elements, result
	}

	filtered := make([]model.TextElement, 0, len(elements))
	for i, el := range elements {
		if _, drop := volatileOnly[i]; drop {
			result.RemovedElements++
			continue
		}
		if _, drop := removed[d.normalizeKey(el.Text)]; drop {
			result.RemovedElements++
			continue
		}
		filtered = append(filtered, el)
	}
	return filtered, result
}

// bandFor reports which margin band the element falls into, if any.
func (d *HeaderFooterDetector) bandFor(el model.TextElement, pageHeight float64) (RegionType, bool) {
	if el.Y < d.config.HeaderRegionHeight {
		return Header, true
	}
	if el.Y > pageHeight-d.config.FooterRegionHeight {
		return Footer, true
	}
	return Header, false
}

// normalizeKey reduces a text to its grouping key: compatibility-normalized,
// volatile tokens stripped, punctuation removed, whitespace collapsed,
// lowercased.
func (d *HeaderFooterDetector) normalizeKey(text string) string {
	text = norm.NFKC.String(text)
	if d.config.StripVolatileTokens {
		text = volatilePagePattern.ReplaceAllString(text, "")
		text = volatileVersionPattern.ReplaceAllString(text, "")
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}

	return strings.ToLower(strings.Join(strings.Fields(sb.String()), " "))
}

// looksBoilerplate reports whether a raw margin text reads like page
// furniture rather than content.
func (d *HeaderFooterDetector) looksBoilerplate(text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "page") ||
		strings.Contains(lower, "version") ||
		strings.Contains(lower, "copyright") ||
		strings.Contains(lower, "©") {
		return true
	}
	if nOfMPattern.MatchString(lower) {
		return true
	}
	return utf8.RuneCountInString(strings.TrimSpace(text)) < d.config.BoilerplateMaxLength
}

// isVolatileText reports whether the text contains a volatile token such as
// "Page 3 of 10" or "Version 2".
func isVolatileText(text string) bool {
	return volatilePagePattern.MatchString(text) || volatileVersionPattern.MatchString(text)
}
