// Package layout infers the heading structure of a document from its
// page layout.
//
// The input is a [model.Layout]: positioned, styled text runs produced by an
// external text-extraction library. The output is a document title and an
// ordered outline of H1 to H3 headings with page numbers.
//
// # Pipeline
//
// The [Analyzer] runs a fixed sequence of stages:
//
//  1. [LineBuilder] - groups styled runs into line-level text elements and
//     merges adjacent same-style lines within a block
//  2. [HeaderFooterDetector] - removes text that repeats near the page
//     margins across most pages
//  3. [FontClusterer] - groups observed font sizes into an ordered size
//     hierarchy
//  4. [TitleDetector] - finds the document title among the largest text on
//     the first page
//  5. [HeadingAssigner] - maps the remaining elements to heading levels
//     using the size hierarchy, numbering prefixes, and content checks
//
// Typical use:
//
//	analyzer := layout.NewAnalyzer()
//	result, err := analyzer.Analyze(doc)
//	if err != nil {
//		return err
//	}
//	outline := result.Outline()
//
// # Configuration
//
// Each stage can be configured independently:
//
//	config := layout.DefaultAnalyzerConfig()
//	config.ClusterConfig.Tolerance = 0.3
//	config.AssignerConfig.Guard = layout.GuardPermissive
//	analyzer := layout.NewAnalyzerWithConfig(config)
//
// # Diagnostics
//
// A [Diagnostics] sink receives stage events (clusters computed, element
// accepted or rejected with a reason). The default sink discards everything;
// [SlogDiagnostics] logs events through log/slog:
//
//	config.Diagnostics = layout.NewSlogDiagnostics(logger)
//
// # Numbering
//
// [NumberingLevel] recognizes numeric heading prefixes ("1.", "2.1",
// "3.1.4") and derives a nesting depth that overrides the font-size signal
// during assignment.
package layout
