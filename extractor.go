package rubrica

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tsawler/rubrica/format"
	"github.com/tsawler/rubrica/hocr"
	"github.com/tsawler/rubrica/layout"
	"github.com/tsawler/rubrica/model"
	"github.com/tsawler/rubrica/stext"
)

// Extractor provides a fluent interface for inferring outlines from layout
// dumps. Each configuration method returns a new Extractor instance, making
// it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source (shared across a chain so the dump is parsed at most once)
	source *layoutSource

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		source:  e.source,
		options: e.options.clone(),
		err:     e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithConfig replaces the entire pipeline configuration. Use this to adjust
// settings the dedicated With methods do not cover.
//
// Example:
//
//	config := layout.DefaultAnalyzerConfig()
//	config.FilterHeaderFooter = false
//	outline, err := rubrica.Open("report.json").WithConfig(config).Outline()
func (e *Extractor) WithConfig(config layout.AnalyzerConfig) *Extractor {
	newExt := e.clone()
	newExt.options.config = config
	return newExt
}

// WithClusterTolerance sets the maximum distance in points between font
// sizes grouped into one heading level. Larger values merge more sizes
// into fewer levels.
//
// Example:
//
//	outline, err := rubrica.Open("report.json").WithClusterTolerance(0.8).Outline()
func (e *Extractor) WithClusterTolerance(tolerance float64) *Extractor {
	newExt := e.clone()
	newExt.options.config.ClusterConfig.Tolerance = tolerance
	return newExt
}

// WithTitleEpsilon sets the font size band below the first page's maximum
// size within which an element still counts as a title candidate.
//
// Example:
//
//	title, err := rubrica.Open("report.json").WithTitleEpsilon(0.5).Title()
func (e *Extractor) WithTitleEpsilon(epsilon float64) *Extractor {
	newExt := e.clone()
	newExt.options.config.TitleConfig.Epsilon = epsilon
	return newExt
}

// WithGuardPolicy sets the structural guard on level transitions.
// GuardStrict drops headings that jump shallower than the current level;
// GuardPermissive accepts every transition.
//
// Example:
//
//	outline, err := rubrica.Open("report.json").WithGuardPolicy(layout.GuardPermissive).Outline()
func (e *Extractor) WithGuardPolicy(policy layout.GuardPolicy) *Extractor {
	newExt := e.clone()
	newExt.options.config.AssignerConfig.Guard = policy
	return newExt
}

// WithPageNumbering sets the page numbering policy for outline entries.
// PagePhysical reports pages as supplied; PageLogical treats the first page
// of a multi-page document as a cover.
//
// Example:
//
//	outline, err := rubrica.Open("report.json").WithPageNumbering(layout.PageLogical).Outline()
func (e *Extractor) WithPageNumbering(numbering layout.PageNumbering) *Extractor {
	newExt := e.clone()
	newExt.options.config.AssignerConfig.Pages = numbering
	return newExt
}

// WithExtraClusterPolicy sets the handling of font clusters beyond the
// third heading size. ExtraClustersDrop leaves them unmapped;
// ExtraClustersCollapse maps them all to H3.
//
// Example:
//
//	outline, err := rubrica.Open("report.json").WithExtraClusterPolicy(layout.ExtraClustersCollapse).Outline()
func (e *Extractor) WithExtraClusterPolicy(policy layout.ExtraClusterPolicy) *Extractor {
	newExt := e.clone()
	newExt.options.config.AssignerConfig.ExtraClusters = policy
	return newExt
}

// WithHeaderFooterBands sets the heights in points of the top and bottom
// margin bands searched for repeating headers and footers.
//
// Example:
//
//	outline, err := rubrica.Open("report.json").WithHeaderFooterBands(60, 72).Outline()
func (e *Extractor) WithHeaderFooterBands(header, footer float64) *Extractor {
	newExt := e.clone()
	newExt.options.config.HeaderFooterConfig.HeaderRegionHeight = header
	newExt.options.config.HeaderFooterConfig.FooterRegionHeight = footer
	return newExt
}

// WithDiagnostics sets the sink receiving per-stage pipeline events, such
// as cluster contents and per-element accept or reject decisions.
//
// Example:
//
//	diag := layout.NewSlogDiagnostics(logger)
//	outline, err := rubrica.Open("report.json").WithDiagnostics(diag).Outline()
func (e *Extractor) WithDiagnostics(diag layout.Diagnostics) *Extractor {
	newExt := e.clone()
	newExt.options.config.Diagnostics = diag
	return newExt
}

// WithPageGeometry sets fallback page dimensions in points for layouts
// whose pages carry no geometry of their own. The margin bands and the
// title region are computed against these when nothing better is known.
//
// Example:
//
//	outline, err := rubrica.Open("scan.hocr").WithPageGeometry(612, 792).Outline()
func (e *Extractor) WithPageGeometry(width, height float64) *Extractor {
	newExt := e.clone()
	newExt.options.config.PageWidth = width
	newExt.options.config.PageHeight = height
	return newExt
}

// ============================================================================
// Terminal Operations (run the pipeline and return results)
// ============================================================================

// Analysis parses the input if needed, runs the outline pipeline, and
// returns the full result including the intermediate structures every
// stage produced.
//
// Example:
//
//	result, err := rubrica.Open("report.json").Analysis()
//	fmt.Printf("%d clusters, %d headings\n", len(result.Clusters), result.HeadingCount())
func (e *Extractor) Analysis() (*layout.AnalysisResult, error) {
	if e.err != nil {
		return nil, e.err
	}

	doc, err := e.source.layout()
	if err != nil {
		return nil, err
	}

	analyzer := layout.NewAnalyzerWithConfig(e.options.config)
	return analyzer.Analyze(doc)
}

// Outline runs the pipeline and returns the detected title and entries.
//
// Example:
//
//	outline, err := rubrica.Open("report.json").Outline()
//	for _, entry := range outline.Entries {
//	    fmt.Println(entry.Level, entry.Text, entry.Page)
//	}
func (e *Extractor) Outline() (*model.Outline, error) {
	result, err := e.Analysis()
	if err != nil {
		return nil, err
	}
	return result.Outline(), nil
}

// Title runs the pipeline and returns the detected document title. An
// empty string means no title was found; that is not an error.
//
// Example:
//
//	title, err := rubrica.Open("report.json").Title()
func (e *Extractor) Title() (string, error) {
	result, err := e.Analysis()
	if err != nil {
		return "", err
	}
	return result.Title, nil
}

// JSON runs the pipeline and renders the outline as indented JSON with
// HTML escaping disabled, so non-ASCII text passes through literally.
//
// Example:
//
//	data, err := rubrica.Open("report.json").JSON()
//	os.Stdout.Write(data)
func (e *Extractor) JSON() ([]byte, error) {
	result, err := e.Analysis()
	if err != nil {
		return nil, err
	}
	return result.JSON()
}

// Elements runs the pipeline and returns the line-level text elements the
// heading assigner saw, after header/footer filtering and merging.
//
// Example:
//
//	elements, err := rubrica.Open("report.json").Elements()
func (e *Extractor) Elements() ([]model.TextElement, error) {
	result, err := e.Analysis()
	if err != nil {
		return nil, err
	}
	return result.Elements, nil
}

// Clusters runs the pipeline and returns the font size hierarchy, largest
// first.
//
// Example:
//
//	clusters, err := rubrica.Open("report.json").Clusters()
func (e *Extractor) Clusters() ([]layout.FontCluster, error) {
	result, err := e.Analysis()
	if err != nil {
		return nil, err
	}
	return result.Clusters, nil
}

// ============================================================================
// Internal Helpers
// ============================================================================

// layoutSource is the input shared by every Extractor in a configuration
// chain. Parsing is lazy and happens at most once; clones reuse the result.
type layoutSource struct {
	filename string
	reader   io.Reader
	doc      *model.Layout

	once sync.Once
	err  error
}

// layout returns the parsed layout, reading and parsing the input on the
// first call.
func (s *layoutSource) layout() (*model.Layout, error) {
	s.once.Do(s.load)
	return s.doc, s.err
}

func (s *layoutSource) load() {
	if s.doc != nil {
		return
	}

	var data []byte
	var err error
	switch {
	case s.reader != nil:
		data, err = io.ReadAll(s.reader)
		if err != nil {
			s.err = fmt.Errorf("reading layout dump: %w", err)
			return
		}
	case s.filename != "":
		data, err = os.ReadFile(s.filename)
		if err != nil {
			s.err = fmt.Errorf("opening layout dump: %w", err)
			return
		}
	default:
		s.err = fmt.Errorf("%w: no input source", model.ErrInvalidInput)
		return
	}

	s.doc, s.err = parseLayout(s.filename, data)
}

// parseLayout sniffs the dump format and runs the matching adapter.
func parseLayout(filename string, data []byte) (*model.Layout, error) {
	switch f := format.Sniff(filename, data); f {
	case format.LayoutJSON:
		return stext.Parse(data)
	case format.HOCR:
		return hocr.Parse(data)
	default:
		return nil, fmt.Errorf("%w: unrecognized layout dump format", model.ErrInvalidInput)
	}
}
