// Package format provides input format detection for layout dumps.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported layout dump format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// LayoutJSON indicates a structured-text JSON dump.
	LayoutJSON
	// HOCR indicates an hOCR (HTML OCR layout) document.
	HOCR
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case LayoutJSON:
		return "LayoutJSON"
	case HOCR:
		return "hOCR"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case LayoutJSON:
		return ".json"
	case HOCR:
		return ".hocr"
	default:
		return ""
	}
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return LayoutJSON
	case ".hocr", ".html", ".htm":
		return HOCR
	default:
		return Unknown
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFromMagic inspects leading content to determine the format.
// This is more reliable than extension-based detection: a structured-text
// dump opens with a JSON value, an hOCR document with HTML markup.
// Returns Unknown if the content matches neither.
func DetectFromMagic(data []byte) Format {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	switch data[0] {
	case '{', '[':
		return LayoutJSON
	case '<':
		if detectHOCRMagic(data) {
			return HOCR
		}
	}
	return Unknown
}

// detectHOCRMagic checks if the data looks like an hOCR or HTML document.
// Any HTML document qualifies; documents without ocr_page elements are
// rejected later by the hOCR parser.
func detectHOCRMagic(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	upper := strings.ToUpper(string(head))

	if strings.Contains(upper, "OCR_PAGE") || strings.Contains(upper, "OCR-SYSTEM") {
		return true
	}
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}
	return false
}

// Sniff combines content and extension detection: magic bytes win, the
// filename extension breaks ties when the content is inconclusive.
func Sniff(filename string, data []byte) Format {
	if f := DetectFromMagic(data); f != Unknown {
		return f
	}
	return Detect(filename)
}
