package viewer

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/ocrpage"
)

const (
	controlBarID       = "top-control-bar"
	pinButtonID        = "pin-toggle-btn"
	metadataStripClass = "ocr-metadata-strip"
	legendClass        = "confidence-legend"

	pinnedClass   = "sticky-pinned"
	unpinnedClass = "sticky-unpinned"

	pinnedIcon    = "📌"
	unpinnedIcon  = "📍"
	pinnedTitle   = "Click to unpin (scroll with content)"
	unpinnedTitle = "Click to pin (stay at top while scrolling)"
)

const (
	controlBarStyle = "position: sticky; top: 0; z-index: 1000; background: linear-gradient(135deg, #2c3e50, #34495e); color: white; " +
		"padding: 8px 16px; border-bottom: 2px solid #3498db; box-shadow: 0 2px 8px rgba(0,0,0,0.3); display: flex; flex-wrap: wrap; " +
		"align-items: center; gap: 12px; font-family: -apple-system, BlinkMacSystemFont, Roboto, sans-serif; font-size: 13px;"
	pinButtonStyle = "background: rgba(52, 152, 219, 0.2); border: 1px solid rgba(52, 152, 219, 0.5); color: #3498db; " +
		"padding: 4px 8px; border-radius: 4px; cursor: pointer; font-size: 14px;"
	separatorStyle   = "width: 1px; height: 20px; background: rgba(255,255,255,0.3); margin: 0 4px;"
	controlGroupCSS  = "display: flex; align-items: center; gap: 6px; padding: 2px 6px; border-radius: 4px; background: rgba(255,255,255,0.1); cursor: pointer; user-select: none;"
	switchStyle      = "position: relative; width: 32px; height: 16px; background: rgba(255,255,255,0.2); border-radius: 16px; cursor: pointer;"
	hiddenInputStyle = "position: absolute; opacity: 0; pointer-events: none;"
	sliderStyle      = "position: absolute; top: 2px; left: 2px; width: 12px; height: 12px; background: white; border-radius: 50%; transform: translateX(0px);"
	legendStyle      = "display: flex; align-items: center; gap: 8px; font-size: 11px;"
	stripStyle       = "background: #ecf0f1; color: #2c3e50; padding: 4px 16px; font-size: 12px; border-bottom: 1px solid #bdc3c7;"

	switchOnBackground  = "#3498db"
	switchOffBackground = "rgba(255,255,255,0.2)"
)

// buildControls is stage 4: the sticky control bar and the metadata strip
// go to the top of the body
func (c *Controller) buildControls() {
	body := c.doc.Body()
	if body == nil {
		c.log.Error("document has no body, no control bar")
		return
	}
	bar := c.controlBar()
	dom.Prepend(body, bar)
	if strip := c.metadataStrip(); strip != nil {
		dom.InsertAfter(bar, strip)
	}
}

func (c *Controller) controlBar() *html.Node {
	bar := c.doc.CreateElement("div")
	dom.SetAttr(bar, "id", controlBarID)
	dom.SetClass(bar, "control-bar", pinnedClass)
	dom.SetStyle(bar, controlBarStyle)

	pin := c.doc.CreateElement("button")
	dom.SetAttr(pin, "id", pinButtonID)
	dom.SetAttr(pin, "title", pinnedTitle)
	dom.SetText(pin, pinnedIcon)
	dom.SetStyle(pin, pinButtonStyle)
	c.doc.AddEventListener(pin, "click", func(dom.Event) { c.TogglePin() })
	bar.AppendChild(pin)

	sep := c.doc.CreateElement("div")
	dom.SetStyle(sep, separatorStyle)
	bar.AppendChild(sep)

	for _, t := range Toggles {
		bar.AppendChild(c.toggleGroup(t, c.state.Get(t)))
	}
	bar.AppendChild(c.legend())
	return bar
}

func (c *Controller) toggleGroup(t Toggle, checked bool) *html.Node {
	group := c.doc.CreateElement("label")
	dom.SetAttr(group, "for", t.ID())
	dom.SetClass(group, "compact-control-group")
	dom.SetStyle(group, controlGroupCSS)

	text := c.doc.CreateElement("span")
	dom.SetText(text, t.Label())
	dom.SetStyle(text, "font-size: 12px;")
	group.AppendChild(text)

	sw := c.doc.CreateElement("div")
	dom.SetClass(sw, "compact-toggle-switch")
	dom.SetStyle(sw, switchStyle)

	input := c.doc.CreateElement("input")
	dom.SetAttr(input, "type", "checkbox")
	dom.SetAttr(input, "id", t.ID())
	dom.SetStyle(input, hiddenInputStyle)
	dom.SetChecked(input, checked)

	slider := c.doc.CreateElement("span")
	dom.SetClass(slider, "compact-slider")
	dom.SetStyle(slider, sliderStyle)

	sw.AppendChild(input)
	sw.AppendChild(slider)
	group.AppendChild(sw)

	paintSwitch(sw, slider, checked)
	c.doc.AddEventListener(input, "change", func(dom.Event) {
		paintSwitch(sw, slider, dom.Checked(input))
	})
	return group
}

// paintSwitch moves the slider to match the checkbox
func paintSwitch(sw, slider *html.Node, checked bool) {
	if checked {
		dom.SetStyleProperty(sw, "background", switchOnBackground)
		dom.SetStyleProperty(slider, "transform", "translateX(16px)")
	} else {
		dom.SetStyleProperty(sw, "background", switchOffBackground)
		dom.SetStyleProperty(slider, "transform", "translateX(0px)")
	}
}

func (c *Controller) legend() *html.Node {
	legend := c.doc.CreateElement("div")
	dom.SetClass(legend, legendClass)
	dom.SetStyle(legend, legendStyle)
	for _, level := range ocrpage.Levels {
		item := c.doc.CreateElement("span")
		dom.SetClass(item, "legend-item", "legend-"+strings.TrimPrefix(level.HTMLClass(), "confidence-"))
		swatch := c.doc.CreateElement("span")
		dom.SetClass(swatch, "legend-color")
		dom.SetStyle(swatch, "display: inline-block; width: 10px; height: 10px; margin-right: 4px;")
		dom.SetStyleProperty(swatch, "background", level.Color())
		item.AppendChild(swatch)
		item.AppendChild(&html.Node{Type: html.TextNode, Data: legendText(level, c.cfg.Thresholds)})
		legend.AppendChild(item)
	}
	return legend
}

// legendText renders e.g. "High (≥80%)", "Medium (50-79%)", "Low (<50%)"
func legendText(level ocrpage.ConfidenceLevel, th ocrpage.Thresholds) string {
	high := ocrpage.FormatCoord(th.High * 100)
	med := ocrpage.FormatCoord(th.Medium * 100)
	switch level {
	case ocrpage.High:
		return "High (≥" + high + "%)"
	case ocrpage.Medium:
		return "Medium (" + med + "-" + ocrpage.FormatCoord(th.High*100-1) + "%)"
	default:
		return "Low (<" + med + "%)"
	}
}

// metadataStrip summarizes the document. Documents without declarations
// fall back to the page models. Returns nil when there is nothing to
// show.
func (c *Controller) metadataStrip() *html.Node {
	meta := c.documentSummary()
	if meta.TotalWords == 0 && meta.AverageConfidence == 0 {
		return nil
	}
	parts := []string{
		fmt.Sprintf("%d %s", meta.PageCount, plural(meta.PageCount, "page", "pages")),
		fmt.Sprintf("%d words", meta.TotalWords),
		fmt.Sprintf("%d segments", meta.TotalSegments),
	}
	if meta.AverageConfidence > 0 {
		parts = append(parts, "avg confidence "+ocrpage.Percent(meta.AverageConfidence))
	}
	if meta.Date != "" {
		parts = append(parts, meta.Date)
	}
	strip := c.doc.CreateElement("div")
	dom.SetClass(strip, metadataStripClass)
	dom.SetStyle(strip, stripStyle)
	dom.SetText(strip, strings.Join(parts, " · "))
	return strip
}

func (c *Controller) documentSummary() ocrpage.DocumentMetadata {
	meta := c.coord.DocumentMetadata()
	if meta.TotalWords != 0 || meta.AverageConfidence != 0 {
		return meta
	}
	var sum float64
	var rated int
	for _, m := range c.models {
		meta.TotalWords += declaredOr(m.Metadata.TotalWords, m.WordCount())
		meta.TotalSegments += declaredOr(m.Metadata.TotalLines, len(m.Lines))
		if m.Metadata.AverageConfidence > 0 {
			sum += m.Metadata.AverageConfidence
			rated++
		}
	}
	if rated > 0 {
		meta.AverageConfidence = sum / float64(rated)
	}
	return meta
}

// declaredOr prefers a page's declared count over the counted one
func declaredOr(declared, counted int) int {
	if declared > 0 {
		return declared
	}
	return counted
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// TogglePin switches the control bar between sticky and static
// positioning
func (c *Controller) TogglePin() {
	bar := dom.ElementByID(c.doc.Root, controlBarID)
	pin := dom.ElementByID(c.doc.Root, pinButtonID)
	if bar == nil || pin == nil {
		return
	}
	if dom.HasClass(bar, pinnedClass) {
		dom.RemoveClass(bar, pinnedClass)
		dom.AddClass(bar, unpinnedClass)
		dom.SetStyleProperty(bar, "position", "static")
		dom.SetText(pin, unpinnedIcon)
		dom.SetAttr(pin, "title", unpinnedTitle)
		dom.SetStyleProperty(pin, "color", "#e74c3c")
		return
	}
	dom.RemoveClass(bar, unpinnedClass)
	dom.AddClass(bar, pinnedClass)
	dom.SetStyleProperty(bar, "position", "sticky")
	dom.SetText(pin, pinnedIcon)
	dom.SetAttr(pin, "title", pinnedTitle)
	dom.SetStyleProperty(pin, "color", "#3498db")
}

// Pinned reports whether the control bar sticks to the top
func (c *Controller) Pinned() bool {
	return dom.HasClass(dom.ElementByID(c.doc.Root, controlBarID), pinnedClass)
}

// bindToggles is stage 6: every checkbox change yields a successor state
// and a projection pass
func (c *Controller) bindToggles() {
	for _, t := range Toggles {
		input := dom.ElementByID(c.doc.Root, t.ID())
		if input == nil {
			c.log.Warn("toggle not found", "id", t.ID())
			continue
		}
		c.doc.AddEventListener(input, "change", func(dom.Event) {
			on := dom.Checked(input)
			c.state = c.state.With(t, on)
			c.log.Debug("toggle changed", "toggle", t, "on", on)
			if t == ToggleHoverControls && !on {
				c.hideFloating()
			}
			c.requestPass()
		})
	}
}

// SetToggle drives a toggle the way a user would: it sets the checkbox
// and fires its change event
func (c *Controller) SetToggle(t Toggle, on bool) error {
	input := dom.ElementByID(c.doc.Root, t.ID())
	if input == nil {
		return fmt.Errorf("toggle %s: %w", t, ErrNoControlBar)
	}
	dom.SetChecked(input, on)
	c.doc.Dispatch(input, "change")
	return nil
}
