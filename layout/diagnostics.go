package layout

import (
	"log/slog"

	"github.com/tsawler/rubrica/model"
)

// RejectReason explains why the heading assigner dropped a candidate element.
type RejectReason string

const (
	// ReasonTitlePage means the element sits on the first page, which is
	// reserved for the title.
	ReasonTitlePage RejectReason = "title-page"

	// ReasonTooShort means the trimmed text is below the minimum length.
	ReasonTooShort RejectReason = "too-short"

	// ReasonNotHeadingLike means the text failed the content check (bare
	// digits, boilerplate markers, no positive heading signal).
	ReasonNotHeadingLike RejectReason = "not-heading-like"

	// ReasonSentenceLike means the text reads like body prose (trailing
	// period or too many words).
	ReasonSentenceLike RejectReason = "sentence-like"

	// ReasonNoCluster means no heading-level font cluster was available.
	ReasonNoCluster RejectReason = "no-cluster"

	// ReasonClusterDistance means the element's font size is too far from
	// every heading-level cluster.
	ReasonClusterDistance RejectReason = "cluster-distance"

	// ReasonLevelRegression means the strict structural guard suppressed a
	// jump back to a shallower level.
	ReasonLevelRegression RejectReason = "level-regression"
)

// Diagnostics receives events from the pipeline stages. Implementations must
// be safe for use from a single goroutine; the analyzer never calls a sink
// concurrently.
//
// All methods are fire-and-forget. A sink must not retain the element or
// cluster slices past the call.
type Diagnostics interface {
	// LinesBuilt reports the number of line-level elements produced by the
	// line builder, after merging.
	LinesBuilt(count int)

	// HeaderFooterRemoved reports the result of header/footer filtering.
	HeaderFooterRemoved(result *HeaderFooterResult)

	// ClustersComputed reports the font size hierarchy.
	ClustersComputed(clusters []FontCluster)

	// TitleDetected reports the title detection result.
	TitleDetected(title TitleResult)

	// ElementAccepted reports an element emitted into the outline.
	ElementAccepted(el model.TextElement, entry model.OutlineEntry)

	// ElementRejected reports an element dropped by the assigner.
	ElementRejected(el model.TextElement, reason RejectReason)
}

// NopDiagnostics discards all events. It is the default sink.
type NopDiagnostics struct{}

func (NopDiagnostics) LinesBuilt(int)                                        {}
func (NopDiagnostics) HeaderFooterRemoved(*HeaderFooterResult)               {}
func (NopDiagnostics) ClustersComputed([]FontCluster)                        {}
func (NopDiagnostics) TitleDetected(TitleResult)                             {}
func (NopDiagnostics) ElementAccepted(model.TextElement, model.OutlineEntry) {}
func (NopDiagnostics) ElementRejected(model.TextElement, RejectReason)       {}

// SlogDiagnostics logs pipeline events at debug level through log/slog.
type SlogDiagnostics struct {
	logger *slog.Logger
}

// NewSlogDiagnostics creates a diagnostics sink backed by the given logger.
// A nil logger uses slog.Default.
func NewSlogDiagnostics(logger *slog.Logger) *SlogDiagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogDiagnostics{logger: logger}
}

func (d *SlogDiagnostics) LinesBuilt(count int) {
	d.logger.Debug("lines built", "count", count)
}

func (d *SlogDiagnostics) HeaderFooterRemoved(result *HeaderFooterResult) {
	d.logger.Debug("header/footer filtered",
		"patterns", len(result.Patterns),
		"removed", result.RemovedElements)
}

func (d *SlogDiagnostics) ClustersComputed(clusters []FontCluster) {
	sizes := make([]float64, len(clusters))
	for i, c := range clusters {
		sizes[i] = c.Size
	}
	d.logger.Debug("font clusters computed", "count", len(clusters), "sizes", sizes)
}

func (d *SlogDiagnostics) TitleDetected(title TitleResult) {
	d.logger.Debug("title detected",
		"title", title.Text,
		"size", title.Size,
		"lines", len(title.Lines))
}

func (d *SlogDiagnostics) ElementAccepted(el model.TextElement, entry model.OutlineEntry) {
	d.logger.Debug("heading accepted",
		"level", entry.Level.String(),
		"text", entry.Text,
		"page", entry.Page)
}

func (d *SlogDiagnostics) ElementRejected(el model.TextElement, reason RejectReason) {
	d.logger.Debug("element rejected",
		"reason", string(reason),
		"text", el.Text,
		"page", el.Page,
		"size", el.FontSize)
}
