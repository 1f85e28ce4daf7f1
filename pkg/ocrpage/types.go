package ocrpage

import (
	"math"
	"strconv"
	"strings"
)

// BoundingBox is a quadrilateral in source-image pixel coordinates.
// Corners run clockwise from the top-left: (X1,Y1) top-left, (X2,Y2)
// top-right, (X3,Y3) bottom-right, (X4,Y4) bottom-left.
type BoundingBox struct {
	X1, Y1 float64
	X2, Y2 float64
	X3, Y3 float64
	X4, Y4 float64
}

// Height is the vertical distance between the first and third corners
func (b BoundingBox) Height() float64 {
	return math.Abs(b.Y3 - b.Y1)
}

// MinX returns the left edge
func (b BoundingBox) MinX() float64 {
	return math.Min(b.X1, b.X4)
}

// MinY returns the top edge
func (b BoundingBox) MinY() float64 {
	return math.Min(b.Y1, b.Y2)
}

// Points serializes the box as an SVG polygon points list. Coordinates
// are rounded to one decimal and the fourth X is pinned to the first X so
// the polygon closes as a rectangle.
func (b BoundingBox) Points() string {
	pairs := [4][2]float64{
		{b.X1, b.Y1},
		{b.X2, b.Y2},
		{b.X3, b.Y3},
		{b.X1, b.Y4},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, FormatCoord(p[0])+","+FormatCoord(p[1]))
	}
	return strings.Join(parts, " ")
}

// Round1 rounds half away from zero to one decimal
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatCoord rounds to one decimal and formats without trailing zeros
func FormatCoord(v float64) string {
	r := Round1(v)
	if r == 0 {
		// avoid "-0"
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// WordData is one recognized word
type WordData struct {
	Text       string
	Confidence float64      // 0..1
	Index      int          // index attribute within the line
	Box        *BoundingBox // nil when the word has no usable polygon
}

// LineData is one segment of a page
type LineData struct {
	ID    int          // zero-based position in the page
	Box   *BoundingBox // segment polygon, when the producer emitted one
	Words []WordData
}

// Metadata holds the per-page scalars
type Metadata struct {
	Filename          string
	ImageWidth        int
	ImageHeight       int
	Angle             float64
	AverageConfidence float64
	TotalWords        int
	TotalLines        int
}

// PageModel is the immutable model of one page
type PageModel struct {
	Metadata   Metadata
	Lines      []LineData
	Background string // background image reference, "" when unknown
}

// HasBackground reports whether a background image is known
func (p PageModel) HasBackground() bool {
	return p.Background != ""
}

// WordCount counts the words actually present in the model
func (p PageModel) WordCount() int {
	n := 0
	for _, l := range p.Lines {
		n += len(l.Words)
	}
	return n
}

// DocumentMetadata holds the document-level declarations
type DocumentMetadata struct {
	PageCount         int
	TotalWords        int
	TotalSegments     int
	AverageConfidence float64
	Date              string
}
