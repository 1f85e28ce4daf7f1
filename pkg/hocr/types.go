package hocr

import "github.com/gardar/ocrview/pkg/ocrpage"

// Document is an entire hOCR document
type Document struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // ocr-system, ocr-capabilities and friends
	Pages    []Page            // Pages in the document
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string      // Unique identifier
	PageNumber int         // ppageno, zero based as written by Tesseract
	ImageName  string      // Source image filename
	BBox       BoundingBox // Page coordinates, i.e. the image size
	Lines      []Line      // Lines in reading order
}

// Class assign 'ocr_page' to 'Page' struct
func (Page) Class() string { return "ocr_page" }

// Line is a line of text
// Corresponds to hOCR element with class: 'ocr_line'
type Line struct {
	ID    string      // Unique identifier
	BBox  BoundingBox // Line coordinates
	Words []Word      // Words in this line
}

// Class assign 'ocr_line' to 'Line' struct
func (Line) Class() string { return "ocr_line" }

// lineClasses are the hOCR classes Tesseract uses for text lines
var lineClasses = []string{"ocr_line", "ocr_caption", "ocr_header", "ocr_textfloat"}

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string      // Unique identifier
	Text       string      // The actual text content
	BBox       BoundingBox // Word coordinates
	Confidence float64     // x_wconf (0-100), negative when absent
	Lang       string      // Language code, inherited from the enclosing paragraph or area
}

// Class assign 'ocrx_word' to 'Word' struct
func (Word) Class() string { return "ocrx_word" }

// HasConfidence reports whether the word carried an x_wconf
func (w Word) HasConfidence() bool {
	return w.Confidence >= 0
}

// BoundingBox represents a rectangle in the document
// Used to store hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// NewBoundingBox creates a bounding box from the x1, y1, x2, y2
// coordinates of an hOCR 'bbox' property
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

// IsZero reports whether no bbox was given
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

// Width of the box
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height of the box
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// Quad returns the box as a quadrilateral with its corners clockwise from
// the top-left
func (b BoundingBox) Quad() ocrpage.BoundingBox {
	return ocrpage.BoundingBox{
		X1: b.X1, Y1: b.Y1,
		X2: b.X2, Y2: b.Y1,
		X3: b.X2, Y3: b.Y2,
		X4: b.X1, Y4: b.Y2,
	}
}
