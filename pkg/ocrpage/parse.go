package ocrpage

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/logging"
)

// Default page dimensions used when a page omits or garbles them
const (
	DefaultImageWidth  = 800
	DefaultImageHeight = 600
)

// Element and attribute names of the producer's markup
const (
	PageClass    = "win11OneOcrPage"
	PageSelector = "section." + PageClass
	ContentClass = "ocrContent"
	SegmentTag   = "segment"
	WordTag      = "w"

	AttrSrcName          = "srcName"
	AttrImgWidth         = "imgWidth"
	AttrImgHeight        = "imgHeight"
	AttrAngle            = "angle"
	AttrAvgConfidence    = "averageConfidence"
	AttrAvgOcrConfidence = "averageOcrConfidence"
	AttrWordsCount       = "ocrWordsCount"
	AttrSegmentsCount    = "ocrSegmentsCount"
	AttrPageNum          = "pageNum"

	AttrConfidence = "p"
	AttrIndex      = "i"
	AttrPolygon    = "b"
)

// EmptyPageModel is the model of a missing page: default dimensions and
// no lines
func EmptyPageModel() PageModel {
	return PageModel{
		Metadata: Metadata{
			ImageWidth:  DefaultImageWidth,
			ImageHeight: DefaultImageHeight,
		},
	}
}

// BuildPageModel reads one page section into a PageModel. Unreadable
// attributes fall back to defaults and are reported at debug level. A nil
// page yields EmptyPageModel.
func BuildPageModel(page *html.Node, log *logging.Logger) PageModel {
	if page == nil {
		log.Error("no page element, using empty model")
		return EmptyPageModel()
	}

	b := builder{log: log}
	meta := b.metadata(page)

	segments := dom.QueryAll(page, SegmentTag)
	lines := make([]LineData, 0, len(segments))
	for i, seg := range segments {
		lines = append(lines, b.line(seg, i))
	}

	model := PageModel{
		Metadata: meta,
		Lines:    lines,
	}
	if src, ok := dom.Attr(page, AttrSrcName); ok && strings.TrimSpace(src) != "" {
		model.Background = src
	}
	return model
}

type builder struct {
	log *logging.Logger
}

func (b builder) metadata(page *html.Node) Metadata {
	width := b.intAttr(page, AttrImgWidth, DefaultImageWidth)
	if width <= 0 {
		b.log.Debug("non-positive image width, using default", "value", width)
		width = DefaultImageWidth
	}
	height := b.intAttr(page, AttrImgHeight, DefaultImageHeight)
	if height <= 0 {
		b.log.Debug("non-positive image height, using default", "value", height)
		height = DefaultImageHeight
	}

	// averageOcrConfidence is the legacy name; the newer one wins
	avg := b.numberAttr(page, AttrAvgOcrConfidence, 0)
	if _, ok := dom.Attr(page, AttrAvgConfidence); ok {
		avg = b.numberAttr(page, AttrAvgConfidence, avg)
	}

	return Metadata{
		Filename:          ReadString(page, AttrSrcName, "Unknown"),
		ImageWidth:        width,
		ImageHeight:       height,
		Angle:             b.numberAttr(page, AttrAngle, 0),
		AverageConfidence: clamp01(avg),
		TotalWords:        b.intAttr(page, AttrWordsCount, 0),
		TotalLines:        b.intAttr(page, AttrSegmentsCount, 0),
	}
}

func (b builder) line(seg *html.Node, id int) LineData {
	line := LineData{ID: id}
	if raw, ok := dom.Attr(seg, AttrPolygon); ok {
		line.Box = b.polygon(raw, "line", id)
	}

	for i, w := range dom.QueryAll(seg, WordTag) {
		word := WordData{
			Text:       strings.TrimSpace(dom.TextContent(w)),
			Confidence: clamp01(b.numberAttr(w, AttrConfidence, 0)),
			Index:      b.intAttr(w, AttrIndex, i),
		}
		if raw, ok := dom.Attr(w, AttrPolygon); ok {
			word.Box = b.polygon(raw, "word", i)
		}
		line.Words = append(line.Words, word)
	}
	return line
}

func (b builder) polygon(raw, kind string, index int) *BoundingBox {
	box, ok := ReadPolygon(raw)
	if !ok {
		b.log.Debug("unreadable polygon", "kind", kind, "index", index, "value", raw)
		return nil
	}
	return box
}

func (b builder) intAttr(n *html.Node, name string, def int) int {
	raw, ok := dom.Attr(n, name)
	if !ok {
		return def
	}
	if _, err := strconv.Atoi(strings.TrimSpace(raw)); err != nil {
		b.log.Debug("unreadable integer attribute", "name", name, "value", raw)
		return def
	}
	return ReadInt(n, name, def)
}

func (b builder) numberAttr(n *html.Node, name string, def float64) float64 {
	raw, ok := dom.Attr(n, name)
	if !ok {
		return def
	}
	if _, ok := parseFinite(raw); !ok {
		b.log.Debug("unreadable number attribute", "name", name, "value", raw)
		return def
	}
	return ReadNumber(n, name, def)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
