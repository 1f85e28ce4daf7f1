package hocr

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/logging"
	"github.com/gardar/ocrview/pkg/multipage"
	"github.com/gardar/ocrview/pkg/ocrpage"
)

const tesseractOutput = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
 <head>
  <title>scan</title>
  <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
  <meta name='ocr-system' content='tesseract 5.3.0' />
  <meta name='ocr-capabilities' content='ocr_page ocr_carea ocr_par ocr_line ocrx_word'/>
 </head>
 <body>
  <div class='ocr_page' id='page_1' title='image "scan 1.png"; bbox 0 0 1000 800; ppageno 0'>
   <div class='ocr_carea' id='block_1_1' title="bbox 10 20 220 90">
    <p class='ocr_par' id='par_1_1' lang='eng' title="bbox 10 20 220 90">
     <span class='ocr_line' id='line_1_1' title="bbox 10 20 220 60; baseline 0 -5; x_size 40">
      <span class='ocrx_word' id='word_1_1' title='bbox 10 20 110 60; x_wconf 96'>Hello</span>
      <span class='ocrx_word' id='word_1_2' title='bbox 120 20 220 60; x_wconf 61'>World</span>
     </span>
     <span class='ocr_header' id='line_1_2' title="bbox 10 70 130 90">
      <span class='ocrx_word' id='word_1_3' title='bbox 10 70 60 90; x_wconf 30'>Foo</span>
      <span class='ocrx_word' id='word_1_4' title='bbox 70 70 130 90; x_wconf 85'><strong>Bar</strong></span>
      <span class='ocrx_word' id='word_1_5' title='bbox 140 70 150 90; x_wconf 10'> </span>
     </span>
    </p>
   </div>
  </div>
  <div class='ocr_page' id='page_2' title='bbox 0 0 400 300; ppageno 1'>
   <p class='ocr_par'>
    <span class='ocrx_word' title='bbox 1 1 20 10'>loose</span>
    <span class='ocrx_word' title='bbox 21 1 40 10; x_wconf 50'>a&lt;b&amp;"c</span>
   </p>
  </div>
 </body>
</html>`

func parseFixture(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(tesseractOutput))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return doc
}

func TestParse(t *testing.T) {
	doc := parseFixture(t)

	if doc.Title != "scan" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.Language != "en" {
		t.Errorf("Language = %q", doc.Language)
	}
	if got := doc.Metadata["ocr-system"]; got != "tesseract 5.3.0" {
		t.Errorf("ocr-system = %q", got)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(doc.Pages))
	}

	p := doc.Pages[0]
	if p.ID != "page_1" || p.PageNumber != 0 || p.ImageName != "scan 1.png" {
		t.Errorf("page 1 = %q %d %q", p.ID, p.PageNumber, p.ImageName)
	}
	if p.BBox != NewBoundingBox(0, 0, 1000, 800) {
		t.Errorf("page 1 bbox = %+v", p.BBox)
	}
	if len(p.Lines) != 2 {
		t.Fatalf("page 1 has %d lines, want 2", len(p.Lines))
	}
	w := p.Lines[0].Words[1]
	if w.ID != "word_1_2" || w.Text != "World" || w.Confidence != 61 || w.Lang != "eng" {
		t.Errorf("word = %+v", w)
	}
	if w.BBox != NewBoundingBox(120, 20, 220, 60) {
		t.Errorf("word bbox = %+v", w.BBox)
	}
	if got := p.Lines[1].Words[1].Text; got != "Bar" {
		t.Errorf("nested word text = %q", got)
	}
	if avg, ok := p.AverageConfidence(); !ok || math.Abs(avg-0.68) > 1e-9 {
		t.Errorf("AverageConfidence() = %v, %v", avg, ok)
	}

	loose := doc.Pages[1]
	if loose.PageNumber != 1 || len(loose.Lines) != 1 {
		t.Fatalf("page 2 = %+v", loose)
	}
	if got := loose.Lines[0].Words; len(got) != 2 || got[0].HasConfidence() || got[1].Text != `a<b&"c` || got[0].Lang != "" {
		t.Errorf("loose words = %+v", got)
	}
	if doc.WordCount() != 6 || doc.LineCount() != 3 {
		t.Errorf("counts = %d words, %d lines", doc.WordCount(), doc.LineCount())
	}
}

func TestParseNoPages(t *testing.T) {
	_, err := Parse([]byte(`<html><body><p>plain</p></body></html>`))
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("Parse() error = %v, want ErrNoPages", err)
	}
	if _, err := RenderXHTML(&Document{}); !errors.Is(err, ErrNoPages) {
		t.Errorf("RenderXHTML() error = %v, want ErrNoPages", err)
	}
}

func TestParseLatin1(t *testing.T) {
	src := "<html><head><meta charset=\"iso-8859-1\"></head><body>" +
		"<div class='ocr_page' title='bbox 0 0 10 10'><span class='ocr_line'>" +
		"<span class='ocrx_word'>caf\xe9</span></span></div></body></html>"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got := doc.Pages[0].Lines[0].Words[0].Text; got != "café" {
		t.Errorf("text = %q, want café", got)
	}
}

func TestParseTitle(t *testing.T) {
	got := ParseTitle(`image "a b.png"; bbox 1 2 3 4;  ; x_wconf 95`)
	want := map[string][]string{
		"image":   {`"a`, `b.png"`},
		"bbox":    {"1", "2", "3", "4"},
		"x_wconf": {"95"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTitle() = %v, want %v", got, want)
	}

	tests := []struct {
		title string
		want  *BoundingBox
	}{
		{"bbox 1 2 3 4", &BoundingBox{1, 2, 3, 4}},
		{"x_wconf 9; bbox 10 20 30 40", &BoundingBox{10, 20, 30, 40}},
		{"bbox 1 2 3", nil},
		{"bbox 1 2 x 4", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseBoundingBoxFromTitle(tt.title); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseBoundingBoxFromTitle(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestRenderXHTMLRoundTrip(t *testing.T) {
	out, err := RenderXHTML(parseFixture(t))
	if err != nil {
		t.Fatalf("RenderXHTML() failed: %v", err)
	}
	d, err := dom.ParseString(out)
	if err != nil {
		t.Fatalf("ParseString() failed: %v", err)
	}

	coord := multipage.New(d.Root, logging.Discard())
	pages := coord.Pages()
	if len(pages) != 2 {
		t.Fatalf("got %d page sections, want 2", len(pages))
	}
	if coord.PageByNumber(2) != pages[1] {
		t.Error("page 2 not found by number")
	}

	meta := coord.DocumentMetadata()
	if meta.PageCount != 2 || meta.TotalWords != 6 || meta.TotalSegments != 3 {
		t.Errorf("document metadata = %+v", meta)
	}
	if math.Abs(meta.AverageConfidence-0.644) > 1e-9 {
		t.Errorf("average confidence = %v, want 0.644", meta.AverageConfidence)
	}

	first := ocrpage.BuildPageModel(pages[0], logging.Discard())
	if first.Background != "scan 1.png" || first.Metadata.ImageWidth != 1000 || first.Metadata.ImageHeight != 800 {
		t.Errorf("page 1 metadata = %+v, background %q", first.Metadata, first.Background)
	}
	if first.Metadata.TotalWords != 4 || first.Metadata.TotalLines != 2 {
		t.Errorf("page 1 counts = %+v", first.Metadata)
	}
	if got := ocrpage.PageText(first); got != "Hello World\nFoo Bar" {
		t.Errorf("page 1 text = %q", got)
	}

	hello := first.Lines[0].Words[0]
	if hello.Confidence != 0.96 || hello.Index != 0 {
		t.Errorf("Hello = %+v", hello)
	}
	if lang, _ := dom.Attr(dom.QueryFirst(pages[0], "w"), "lang"); lang != "eng" {
		t.Errorf("Hello lang = %q, want eng", lang)
	}
	if _, ok := dom.Attr(dom.QueryFirst(pages[1], "w"), "lang"); ok {
		t.Error("word outside a tagged paragraph carries a lang")
	}
	wantBox := ocrpage.BoundingBox{X1: 10, Y1: 20, X2: 110, Y2: 20, X3: 110, Y3: 60, X4: 10, Y4: 60}
	if hello.Box == nil || *hello.Box != wantBox {
		t.Errorf("Hello box = %+v, want %+v", hello.Box, wantBox)
	}
	if first.Lines[0].Box == nil || first.Lines[0].Box.X3 != 220 {
		t.Errorf("line box = %+v", first.Lines[0].Box)
	}

	second := ocrpage.BuildPageModel(pages[1], logging.Discard())
	if got := second.Lines[0].Words[1].Text; got != `a<b&"c` {
		t.Errorf("escaped word = %q", got)
	}
	if second.Lines[0].Box != nil {
		t.Error("loose line should have no box")
	}
	if second.HasBackground() {
		t.Error("page without image has a background")
	}
}
