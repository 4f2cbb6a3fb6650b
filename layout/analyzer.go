package layout

import (
	"fmt"

	"github.com/tsawler/rubrica/model"
)

// AnalyzerConfig holds configuration options for the outline analyzer.
// Each pipeline stage has its own sub-configuration, and there are flags to
// enable or disable the optional stages.
type AnalyzerConfig struct {
	// Line building and merging configuration
	LineConfig LineConfig

	// Header/footer detection configuration
	HeaderFooterConfig HeaderFooterConfig

	// Font size clustering configuration
	ClusterConfig ClusterConfig

	// Title detection configuration
	TitleConfig TitleConfig

	// Heading assignment configuration
	AssignerConfig AssignerConfig

	// FilterHeaderFooter enables header/footer removal
	FilterHeaderFooter bool

	// MergeLines enables merging of adjacent same-style lines
	MergeLines bool

	// PageWidth and PageHeight are fallback page dimensions for layouts
	// whose pages carry no geometry; zero values mean A4 portrait
	PageWidth  float64
	PageHeight float64

	// Diagnostics receives stage events; nil discards them. The assigner
	// inherits this sink unless its own configuration sets one.
	Diagnostics Diagnostics
}

// DefaultAnalyzerConfig returns a configuration with sensible defaults for
// typical documents, with all pipeline stages enabled.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		LineConfig:         DefaultLineConfig(),
		HeaderFooterConfig: DefaultHeaderFooterConfig(),
		ClusterConfig:      DefaultClusterConfig(),
		TitleConfig:        DefaultTitleConfig(),
		AssignerConfig:     DefaultAssignerConfig(),
		FilterHeaderFooter: true,
		MergeLines:         true,
	}
}

// Analyzer orchestrates the outline pipeline: line building, header/footer
// filtering, font clustering, title detection, and heading assignment.
//
// An Analyzer is stateless between calls and safe for concurrent use as
// long as the configured Diagnostics sink is; every Analyze call works on
// fresh per-document state.
type Analyzer struct {
	config       AnalyzerConfig
	lines        *LineBuilder
	headerFooter *HeaderFooterDetector
	clusterer    *FontClusterer
	title        *TitleDetector
	assigner     *HeadingAssigner
	diag         Diagnostics
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	diag := config.Diagnostics
	if diag == nil {
		diag = NopDiagnostics{}
	}

	assignerConfig := config.AssignerConfig
	if assignerConfig.Diagnostics == nil {
		assignerConfig.Diagnostics = diag
	}

	return &Analyzer{
		config:       config,
		lines:        NewLineBuilderWithConfig(config.LineConfig),
		headerFooter: NewHeaderFooterDetectorWithConfig(config.HeaderFooterConfig),
		clusterer:    NewFontClustererWithConfig(config.ClusterConfig),
		title:        NewTitleDetectorWithConfig(config.TitleConfig),
		assigner:     NewHeadingAssignerWithConfig(assignerConfig),
		diag:         diag,
	}
}

// AnalysisStats summarizes an analysis run.
type AnalysisStats struct {
	// RawRuns is the number of styled runs in the input
	RawRuns int

	// Elements is the number of line-level elements after filtering and
	// merging
	Elements int

	// RemovedHeaderFooter is the number of elements struck as headers or
	// footers
	RemovedHeaderFooter int

	// Clusters is the number of font size clusters
	Clusters int

	// Headings is the number of outline entries emitted
	Headings int

	// TitleFound reports whether a non-empty title was detected
	TitleFound bool
}

// AnalysisResult holds the complete results of an analysis: the title, the
// outline entries, and the intermediate structures each stage produced.
type AnalysisResult struct {
	// Title is the detected document title, possibly empty
	Title string

	// TitleInfo carries the full title detection result
	TitleInfo TitleResult

	// Entries are the outline entries in reading order
	Entries []model.OutlineEntry

	// Clusters is the font size hierarchy, descending
	Clusters []FontCluster

	// Elements are the text elements the assigner saw, after filtering
	// and merging
	Elements []model.TextElement

	// HeaderFooter is the header/footer detection result, nil when the
	// stage was disabled
	HeaderFooter *HeaderFooterResult

	// PageCount is the number of pages in the input layout
	PageCount int

	// Stats summarizes the run
	Stats AnalysisStats
}

// Outline assembles the title and entries into an outline record.
func (r *AnalysisResult) Outline() *model.Outline {
	if r == nil {
		return model.NewOutline("", nil)
	}
	return model.NewOutline(r.Title, r.Entries)
}

// JSON renders the outline record as indented JSON.
func (r *AnalysisResult) JSON() ([]byte, error) {
	return r.Outline().JSON()
}

// HeadingCount returns the number of outline entries.
func (r *AnalysisResult) HeadingCount() int {
	if r == nil {
		return 0
	}
	return len(r.Entries)
}

// HasTitle reports whether a non-empty title was detected.
func (r *AnalysisResult) HasTitle() bool {
	return r != nil && r.Title != ""
}

// Analyze runs the pipeline over a document layout.
//
// The pipeline is synchronous and purely functional over the input: no
// state survives between calls, so a caller can analyze documents from
// multiple goroutines with one Analyzer. A document with no text yields an
// empty title and outline, not an error; the only error condition is a nil
// layout.
func (a *Analyzer) Analyze(doc *model.Layout) (*AnalysisResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil layout", model.ErrInvalidInput)
	}

	pageCount := doc.PageCount()
	pageWidth, pageHeight := a.pageGeometry(doc)

	result := &AnalysisResult{
		PageCount: pageCount,
		Stats:     AnalysisStats{RawRuns: doc.RunCount()},
	}

	elements := a.lines.Build(doc.Runs())

	if a.config.FilterHeaderFooter {
		var hf *HeaderFooterResult
		elements, hf = a.headerFooter.Filter(elements, pageCount, pageHeight)
		result.HeaderFooter = hf
		result.Stats.RemovedHeaderFooter = hf.RemovedElements
		a.diag.HeaderFooterRemoved(hf)
	}

	if a.config.MergeLines {
		elements = a.lines.MergeAdjacent(elements)
	}
	a.diag.LinesBuilt(len(elements))

	clusters := a.clusterer.Cluster(elements)
	a.diag.ClustersComputed(clusters)

	title := a.title.Detect(elements, pageWidth)
	a.diag.TitleDetected(title)

	entries := a.assigner.Assign(elements, clusters, title, pageCount)

	result.Title = title.Text
	result.TitleInfo = title
	result.Entries = entries
	result.Clusters = clusters
	result.Elements = elements
	result.Stats.Elements = len(elements)
	result.Stats.Clusters = len(clusters)
	result.Stats.Headings = len(entries)
	result.Stats.TitleFound = title.Found()

	return result, nil
}

// pageGeometry returns the dimensions of page 1, falling back to the
// configured defaults and then to A4 when the layout does not carry them.
func (a *Analyzer) pageGeometry(doc *model.Layout) (width, height float64) {
	width, height = a.config.PageWidth, a.config.PageHeight
	if width <= 0 {
		width = model.DefaultPageWidth
	}
	if height <= 0 {
		height = model.DefaultPageHeight
	}
	if p := doc.Page(1); p != nil {
		if p.Width > 0 {
			width = p.Width
		}
		if p.Height > 0 {
			height = p.Height
		}
	}
	return width, height
}
