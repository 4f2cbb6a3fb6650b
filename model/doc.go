// Package model provides the data model for document outline inference.
//
// This package defines the types that flow through the inference pipeline:
// the input units supplied by a text-extraction collaborator, the working
// units the pipeline operates on, and the outline produced at the end.
// All adapters and analysis operations ultimately consume and produce
// these types, making them the primary API for working with results.
//
// # Input
//
// A [Layout] is the page-layout description of one document: a list of
// [Page] records, each carrying its dimensions and the [StyledRun] values
// reported for it. A StyledRun is one contiguous run of identically-styled
// characters with its font size, font name, derived bold/italic flags,
// bounding box, and block/line grouping identifiers:
//
//	layout := &model.Layout{
//	    Pages: []model.Page{{
//	        Number: 1,
//	        Width:  595,
//	        Height: 842,
//	        Runs: []model.StyledRun{
//	            {Text: "Annual Report", FontSize: 24, FontName: "Helvetica-Bold", Page: 1},
//	        },
//	    }},
//	}
//
// Coordinates use a top-left origin with Y increasing downward, the
// convention of layout dumps produced by extraction libraries. Page
// numbers are 1-based.
//
// # Working units
//
// The pipeline aggregates runs into [TextElement] values, one per visual
// line (or merged multi-line block). An element's style fields come from
// the first non-empty run that formed it, never from an average.
//
// # Output
//
// An [Outline] holds the detected document title and an ordered list of
// [OutlineEntry] values, each a heading with its [HeadingLevel] (H1-H3)
// and page number. Outline.JSON renders the serialized form with
// non-ASCII text preserved literally.
//
// # Geometry
//
// [BBox] and [Point] support the position arithmetic the pipeline needs:
// margin-band membership, vertical adjacency, and horizontal centering.
package model
