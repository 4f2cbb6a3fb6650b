// Package hocr parses hOCR documents into document layouts.
//
// hOCR is the HTML-based interchange format OCR engines use to report
// recognized text with its position. The parser follows the format's
// class hierarchy: ocr_page elements hold ocr_carea content areas, which
// hold ocr_line text lines composed of ocrx_word words. Header, caption,
// and float lines (ocr_header, ocr_caption, ocr_textfloat) are treated
// as ordinary lines.
//
// One styled run is produced per line: its words space-joined, its font
// size from the x_size property, its face name from x_font when the
// engine reports one. Lines without a usable size keep a zero size and
// are dropped later during line building. A document with no ocr_page
// element fails with an error wrapping model.ErrInvalidInput.
package hocr

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/rubrica/model"
)

// hOCR class names recognized by the parser.
const (
	classPage = "ocr_page"
	classArea = "ocr_carea"
)

// lineClasses are the class names treated as text lines.
var lineClasses = map[string]bool{
	"ocr_line":      true,
	"ocr_header":    true,
	"ocr_caption":   true,
	"ocr_textfloat": true,
}

const classWord = "ocrx_word"

// Parse decodes an hOCR document, returning the layout it describes.
func Parse(data []byte) (*model.Layout, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader decodes an hOCR document from a reader.
func ParseReader(r io.Reader) (*model.Layout, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing hOCR: %v", model.ErrInvalidInput, err)
	}

	var pageNodes []*html.Node
	collectByClass(doc, classPage, &pageNodes)
	if len(pageNodes) == 0 {
		return nil, fmt.Errorf("%w: no ocr_page elements", model.ErrInvalidInput)
	}

	out := &model.Layout{}
	for i, n := range pageNodes {
		out.Pages = append(out.Pages, buildPage(n, i))
	}
	return out, nil
}

// buildPage converts one ocr_page element. The page number comes from the
// ppageno property (0-based) when present, the element's document position
// otherwise.
func buildPage(n *html.Node, position int) model.Page {
	props := parseTitle(attrValue(n, "title"))

	number := position + 1
	if ppage, ok := propInt(props, "ppageno"); ok {
		number = ppage + 1
	}

	page := model.Page{Number: number}
	if box, ok := propBBox(props); ok {
		page.Width = box.Width
		page.Height = box.Height
	}

	b := &pageBuilder{page: &page, number: number}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
	return page
}

// pageBuilder accumulates runs while walking one page subtree. Each
// ocr_carea starts a new block; lines outside any area share the block
// that was current when they appeared.
type pageBuilder struct {
	page    *model.Page
	number  int
	block   int
	line    int
	emitted bool
}

func (b *pageBuilder) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if hasClass(n, classArea) {
			b.startBlock()
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				b.walk(c)
			}
			return
		}
		if isLineNode(n) {
			b.addLine(n)
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
}

// startBlock opens a new block unless the current one is still empty.
func (b *pageBuilder) startBlock() {
	if b.emitted {
		b.block++
		b.line = 0
		b.emitted = false
	}
}

func (b *pageBuilder) addLine(n *html.Node) {
	props := parseTitle(attrValue(n, "title"))

	size, _ := propFloat(props, "x_size")
	fontName := props["x_font"]
	if fontName == "" {
		fontName = firstWordFont(n)
	}

	bold, italic := model.StyleFromFontName(fontName)
	if markupBold(n) {
		bold = true
	}
	if markupItalic(n) {
		italic = true
	}

	var box model.BBox
	if parsed, ok := propBBox(props); ok {
		box = parsed
	}

	b.page.Runs = append(b.page.Runs, model.StyledRun{
		Text:     lineText(n),
		FontSize: size,
		FontName: fontName,
		Bold:     bold,
		Italic:   italic,
		BBox:     box,
		Page:     b.number,
		Block:    b.block,
		Line:     b.line,
	})
	b.line++
	b.emitted = true
}

// lineText joins the line's words with single spaces. Lines without
// ocrx_word children fall back to their raw text content.
func lineText(n *html.Node) string {
	var words []string
	var collect func(*html.Node)
	collect = func(c *html.Node) {
		if c.Type == html.ElementNode && hasClass(c, classWord) {
			if w := textContent(c); w != "" {
				words = append(words, w)
			}
			return
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			collect(gc)
		}
	}
	collect(n)

	if len(words) == 0 {
		return textContent(n)
	}
	return strings.Join(words, " ")
}

// firstWordFont returns the x_font of the first word that carries one.
func firstWordFont(n *html.Node) string {
	var font string
	var search func(*html.Node)
	search = func(c *html.Node) {
		if font != "" {
			return
		}
		if c.Type == html.ElementNode && hasClass(c, classWord) {
			props := parseTitle(attrValue(c, "title"))
			if f := props["x_font"]; f != "" {
				font = f
				return
			}
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			search(gc)
		}
	}
	search(n)
	return font
}

// markupBold reports whether the line wraps its text in strong/b tags,
// which engines emit when font attributes are enabled.
func markupBold(n *html.Node) bool {
	return hasDescendantElement(n, "strong") || hasDescendantElement(n, "b")
}

func markupItalic(n *html.Node) bool {
	return hasDescendantElement(n, "em") || hasDescendantElement(n, "i")
}

func hasDescendantElement(n *html.Node, tag string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return true
		}
		if hasDescendantElement(c, tag) {
			return true
		}
	}
	return false
}

// textContent extracts the trimmed text of a node and its descendants.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// collectByClass appends all element nodes carrying the class, in
// document order.
func collectByClass(n *html.Node, class string, out *[]*html.Node) {
	if n.Type == html.ElementNode && hasClass(n, class) {
		*out = append(*out, n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectByClass(c, class, out)
	}
}

func isLineNode(n *html.Node) bool {
	for _, f := range strings.Fields(attrValue(n, "class")) {
		if lineClasses[f] {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attrValue(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
