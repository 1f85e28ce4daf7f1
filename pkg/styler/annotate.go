package styler

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/ocrpage"
)

// Class names of the elements Annotate adds to a page
const (
	CopyButtonClass = "page-copy-btn"
	BadgeClass      = "confidence-badge"
)

const (
	singleCopyButtonStyle = "position: absolute; top: 10px; right: 10px; background: rgba(0, 0, 0, 0.8); color: white; " +
		"border: 1px solid rgba(255, 255, 255, 0.3); padding: 5px 10px; border-radius: 4px; cursor: pointer; font-size: 11px; z-index: 40;"
	multiCopyButtonStyle = "position: absolute; top: 5px; right: 5px; background: rgba(0, 0, 0, 0.7); color: white; " +
		"border: none; padding: 3px 6px; border-radius: 3px; cursor: pointer; font-size: 10px; z-index: 30;"
	badgeStyle = "display: inline-block; padding: 2px 8px; border-radius: 10px; color: white; font-size: 11px; font-family: monospace;"
)

// Annotate applies phase A to one page: line numbers, word confidence
// classes, hover hooks, the page copy button and the confidence badge.
// pageIndex is the zero-based position used for callbacks, pageNumber the
// label shown to the user.
func (s *Styler) Annotate(page *html.Node, model ocrpage.PageModel, pageIndex, pageNumber int, multi bool) {
	if page == nil {
		s.log.Error("cannot annotate missing page", "page", pageNumber)
		return
	}

	segments := dom.QueryAll(page, ocrpage.SegmentTag)
	for i, seg := range segments {
		if i >= len(model.Lines) {
			break
		}
		dom.SetAttr(seg, "data-line-number", strconv.Itoa(i+1))
		s.classifyWords(seg, model.Lines[i])
		s.hookSegment(seg, pageIndex, i)
	}
	if len(segments) != len(model.Lines) {
		s.log.Warn("segment count differs from model", "page", pageNumber,
			"segments", len(segments), "lines", len(model.Lines))
	}

	if multi {
		dom.SetAttr(page, "data-processed-page", strconv.Itoa(pageNumber))
	}
	page.AppendChild(s.copyButton(pageIndex, pageNumber, multi))

	if model.Metadata.AverageConfidence > 0 {
		dom.Prepend(page, s.badge(model.Metadata.AverageConfidence))
	}
	s.log.Debug("annotated page", "page", pageNumber, "lines", len(model.Lines), "words", model.WordCount())
}

func (s *Styler) classifyWords(seg *html.Node, line ocrpage.LineData) {
	for j, w := range dom.QueryAll(seg, ocrpage.WordTag) {
		if j >= len(line.Words) {
			return
		}
		level := s.thresholds.Classify(line.Words[j].Confidence)
		dom.SetClass(w, level.HTMLClass())
	}
}

// hookSegment replaces the segment's hover listeners, so annotating a page
// twice leaves a single pair.
func (s *Styler) hookSegment(seg *html.Node, pageIndex, line int) {
	s.doc.ClearEventListeners(seg, "mouseenter")
	s.doc.ClearEventListeners(seg, "mouseleave")
	if s.interaction == nil {
		return
	}
	s.doc.AddEventListener(seg, "mouseenter", func(dom.Event) {
		s.interaction.EnterLine(pageIndex, line, seg)
	})
	s.doc.AddEventListener(seg, "mouseleave", func(dom.Event) {
		s.interaction.LeaveLine(pageIndex, line)
	})
}

func (s *Styler) copyButton(pageIndex, pageNumber int, multi bool) *html.Node {
	btn := s.doc.CreateElement("button")
	dom.SetClass(btn, CopyButtonClass)
	if multi {
		dom.SetText(btn, fmt.Sprintf("📄 %d", pageNumber))
		dom.SetAttr(btn, "title", fmt.Sprintf("Copy page %d text", pageNumber))
		dom.SetStyle(btn, multiCopyButtonStyle)
	} else {
		dom.SetText(btn, "📄 Copy Page")
		dom.SetAttr(btn, "title", "Copy page text")
		dom.SetStyle(btn, singleCopyButtonStyle)
	}
	if s.interaction != nil {
		s.doc.AddEventListener(btn, "click", func(dom.Event) {
			s.interaction.CopyPage(pageIndex)
		})
	}
	return btn
}

func (s *Styler) badge(avg float64) *html.Node {
	level := s.thresholds.Classify(avg)
	badge := s.doc.CreateElement("span")
	dom.SetClass(badge, BadgeClass, "badge-"+level.String())
	dom.SetAttr(badge, "title", "Average confidence")
	dom.SetStyle(badge, badgeStyle)
	dom.SetStyleProperty(badge, "background", level.Color())
	dom.SetText(badge, ocrpage.Percent(avg))
	return badge
}
