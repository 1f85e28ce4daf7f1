package styler

import (
	"math"
	"strconv"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/ocrpage"
)

// Identifiers and classes of the SVG section
const (
	SectionClass         = "svg-content"
	LayerClass           = "svg-layer"
	HiddenClass          = "hidden"
	BackgroundID         = "svg-background-layer"
	LineBoxesID          = "svg-line-boxes"
	WordBoxesID          = "svg-word-boxes"
	TextLayerID          = "svg-text-layer"
	WordTextClass        = "word-text"
	LineBoxClass         = "line-box"
	BackgroundImageClass = "background-image"
)

const svgNamespace = "http://www.w3.org/2000/svg"

const (
	sectionStyle = "position: relative; margin-top: 20px; border-top: 2px solid #ddd; padding: 20px; background: #fafafa; overflow: auto; max-width: 100%;"
	svgStyle     = "border: 1px solid #ccc; background: white; width: 100%; height: auto;"
)

// BuildSVG applies phase B to one page: it inserts the SVG section right
// after the page's ocrContent element and returns the section.
func (s *Styler) BuildSVG(page *html.Node, model ocrpage.PageModel, pageIndex, pageNumber int) (*html.Node, error) {
	content := dom.QueryFirst(page, "."+ocrpage.ContentClass)
	if content == nil {
		s.log.Error("missing ocrContent, no SVG section", "page", pageNumber)
		return nil, ErrNoContent
	}

	section := s.doc.CreateElement("div")
	dom.SetClass(section, SectionClass)
	dom.SetAttr(section, "data-page", strconv.Itoa(pageNumber))
	dom.SetStyle(section, sectionStyle)

	width := strconv.Itoa(model.Metadata.ImageWidth)
	height := strconv.Itoa(model.Metadata.ImageHeight)
	svg := s.doc.CreateSVGElement("svg")
	dom.SetAttr(svg, "xmlns", svgNamespace)
	dom.SetAttr(svg, "width", width)
	dom.SetAttr(svg, "height", height)
	dom.SetAttr(svg, "viewBox", "0 0 "+width+" "+height)
	dom.SetStyle(svg, svgStyle)

	defs := s.doc.CreateSVGElement("defs")
	style := s.doc.CreateSVGElement("style")
	dom.SetText(style, s.css)
	defs.AppendChild(style)
	svg.AppendChild(defs)

	svg.AppendChild(s.backgroundLayer(model))
	if lines := s.lineBoxLayer(model); lines != nil {
		svg.AppendChild(lines)
	}
	boxes := s.layer(WordBoxesID, true)
	texts := s.layer(TextLayerID, false)
	emitted := 0
	for _, line := range model.Lines {
		for j, word := range line.Words {
			if word.Box == nil {
				continue
			}
			boxes.AppendChild(s.wordPolygon(word, line.ID, j))
			texts.AppendChild(s.wordText(word, pageIndex, line.ID, j))
			emitted++
		}
	}
	svg.AppendChild(boxes)
	svg.AppendChild(texts)

	section.AppendChild(svg)
	dom.InsertAfter(content, section)
	s.log.Debug("built SVG section", "page", pageNumber, "words", emitted)
	return section, nil
}

func (s *Styler) layer(id string, hidden bool) *html.Node {
	g := s.doc.CreateSVGElement("g")
	dom.SetAttr(g, "id", id)
	if hidden {
		dom.SetClass(g, LayerClass, HiddenClass)
	} else {
		dom.SetClass(g, LayerClass)
	}
	return g
}

func (s *Styler) backgroundLayer(model ocrpage.PageModel) *html.Node {
	g := s.layer(BackgroundID, true)
	if !model.HasBackground() {
		return g
	}
	img := s.doc.CreateSVGElement("image")
	dom.SetClass(img, BackgroundImageClass)
	dom.SetAttr(img, "href", model.Background)
	dom.SetAttr(img, "x", "0")
	dom.SetAttr(img, "y", "0")
	dom.SetAttr(img, "width", strconv.Itoa(model.Metadata.ImageWidth))
	dom.SetAttr(img, "height", strconv.Itoa(model.Metadata.ImageHeight))
	dom.SetAttr(img, "preserveAspectRatio", "none")
	g.AppendChild(img)
	return g
}

// lineBoxLayer is only built when at least one line carries its own
// polygon.
func (s *Styler) lineBoxLayer(model ocrpage.PageModel) *html.Node {
	var g *html.Node
	for _, line := range model.Lines {
		if line.Box == nil {
			continue
		}
		if g == nil {
			g = s.layer(LineBoxesID, true)
		}
		p := s.doc.CreateSVGElement("polygon")
		dom.SetAttr(p, "id", "line-"+strconv.Itoa(line.ID))
		dom.SetAttr(p, "points", line.Box.Points())
		dom.SetClass(p, LineBoxClass)
		g.AppendChild(p)
	}
	return g
}

func (s *Styler) wordPolygon(word ocrpage.WordData, lineID, pos int) *html.Node {
	p := s.doc.CreateSVGElement("polygon")
	dom.SetAttr(p, "id", wordID(lineID, pos))
	dom.SetAttr(p, "points", word.Box.Points())
	dom.SetClass(p, s.thresholds.Classify(word.Confidence).SVGClass())
	return p
}

func (s *Styler) wordText(word ocrpage.WordData, pageIndex, lineID, pos int) *html.Node {
	x, y, size := TextPlacement(*word.Box)
	t := s.doc.CreateSVGElement("text")
	dom.SetAttr(t, "x", ocrpage.FormatCoord(x))
	dom.SetAttr(t, "y", ocrpage.FormatCoord(y))
	dom.SetClass(t, WordTextClass)
	dom.SetAttr(t, "style", "font-size: "+ocrpage.FormatCoord(size)+"px;")
	dom.SetAttr(t, "title", "Confidence: "+ocrpage.Percent(word.Confidence))
	dom.SetAttr(t, "data-word", wordID(lineID, pos))
	dom.SetText(t, word.Text)
	if s.interaction != nil {
		s.doc.AddEventListener(t, "click", func(dom.Event) {
			s.interaction.ShowWordDetails(pageIndex, lineID, pos)
		})
	}
	return t
}

// TextPlacement returns the baseline position and font size of a word's
// SVG text, each rounded to one decimal
func TextPlacement(box ocrpage.BoundingBox) (x, y, size float64) {
	h := box.Height()
	x = ocrpage.Round1(box.MinX() + 2)
	y = ocrpage.Round1(box.MinY() + 0.75*h)
	size = ocrpage.Round1(math.Max(8, math.Min(0.7*h, 24)))
	return x, y, size
}

func wordID(lineID, pos int) string {
	return "word-" + strconv.Itoa(lineID) + "-" + strconv.Itoa(pos)
}
