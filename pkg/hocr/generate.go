package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/ocrpage"
)

//go:embed templates/xhtml.tmpl
var templateFS embed.FS

type attr struct {
	Name  string
	Value string
}

type xhtmlWord struct {
	Text       string
	Confidence string
	Index      int
	Polygon    string
	Lang       string
}

type xhtmlLine struct {
	Polygon string
	Words   []xhtmlWord
}

type xhtmlPage struct {
	Attrs []attr
	Lines []xhtmlLine
}

type xhtmlDocument struct {
	Title    string
	Language string
	Meta     []attr
	Pages    []xhtmlPage
}

// RenderXHTML writes doc as an XHTML document of win11OneOcrPage
// sections. Confidences become p (x_wconf / 100), boxes become b
// polygons, and document totals go into meta declarations.
func RenderXHTML(doc *Document) (string, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return "", ErrNoPages
	}

	tmpl, err := template.New("xhtml.tmpl").Funcs(template.FuncMap{
		"esc": html.EscapeString,
	}).ParseFS(templateFS, "templates/xhtml.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing XHTML template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildView(doc)); err != nil {
		return "", fmt.Errorf("error rendering XHTML template: %w", err)
	}
	return buf.String(), nil
}

func buildView(doc *Document) xhtmlDocument {
	view := xhtmlDocument{
		Title:    doc.Title,
		Language: doc.Language,
	}
	if view.Title == "" {
		view.Title = "OCR"
	}

	var sum float64
	var rated int
	for i, p := range doc.Pages {
		view.Pages = append(view.Pages, pageView(p, i+1))
		for _, line := range p.Lines {
			for _, w := range line.Words {
				if w.HasConfidence() {
					sum += confidence(w.Confidence)
					rated++
				}
			}
		}
	}

	view.Meta = []attr{
		{"pagesCount", strconv.Itoa(len(doc.Pages))},
		{"totalWords", strconv.Itoa(doc.WordCount())},
		{"totalSegments", strconv.Itoa(doc.LineCount())},
	}
	if rated > 0 {
		view.Meta = append(view.Meta, attr{"averageConfidence", formatNumber(sum / float64(rated))})
	}
	for _, key := range slices.Sorted(maps.Keys(doc.Metadata)) {
		view.Meta = append(view.Meta, attr{key, doc.Metadata[key]})
	}
	return view
}

func pageView(p Page, number int) xhtmlPage {
	view := xhtmlPage{
		Attrs: []attr{{"pageNum", strconv.Itoa(number)}},
	}
	if p.ImageName != "" {
		view.Attrs = append(view.Attrs, attr{"srcName", p.ImageName})
	}
	if !p.BBox.IsZero() {
		view.Attrs = append(view.Attrs,
			attr{"imgWidth", formatNumber(p.BBox.Width())},
			attr{"imgHeight", formatNumber(p.BBox.Height())},
		)
	}
	if avg, ok := p.AverageConfidence(); ok {
		view.Attrs = append(view.Attrs, attr{"averageConfidence", formatNumber(avg)})
	}
	view.Attrs = append(view.Attrs,
		attr{"ocrWordsCount", strconv.Itoa(p.WordCount())},
		attr{"ocrSegmentsCount", strconv.Itoa(len(p.Lines))},
	)

	for _, line := range p.Lines {
		lv := xhtmlLine{Polygon: polygon(line.BBox)}
		for i, w := range line.Words {
			wv := xhtmlWord{
				Text:    w.Text,
				Index:   i,
				Polygon: polygon(w.BBox),
				Lang:    w.Lang,
			}
			if w.HasConfidence() {
				wv.Confidence = formatNumber(confidence(w.Confidence))
			}
			lv.Words = append(lv.Words, wv)
		}
		view.Lines = append(view.Lines, lv)
	}
	return view
}

// polygon renders the box corners as a b attribute value, or "" for a
// missing box
func polygon(b BoundingBox) string {
	if b.IsZero() {
		return ""
	}
	q := b.Quad()
	coords := []float64{q.X1, q.Y1, q.X2, q.Y2, q.X3, q.Y3, q.X4, q.Y4}
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = ocrpage.FormatCoord(c)
	}
	return strings.Join(parts, ",")
}

// formatNumber keeps at most four decimals
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
