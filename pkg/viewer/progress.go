package viewer

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
)

const (
	progressOverlayID = "progress-overlay"
	progressValueAttr = "data-progress"

	progressOverlayStyle = "position: fixed; top: 0; left: 0; width: 100%; height: 100%; background: rgba(0, 0, 0, 0.4); " +
		"display: flex; align-items: center; justify-content: center; z-index: 2000;"
	progressRingStyle = "width: 96px; height: 96px; border-radius: 50%; display: flex; align-items: center; justify-content: center; " +
		"color: white; font-family: monospace; font-size: 18px;"
)

// Progress returns the value shown by the progress overlay and whether
// the overlay is present
func (c *Controller) Progress() (int, bool) {
	overlay := dom.ElementByID(c.doc.Root, progressOverlayID)
	if overlay == nil {
		return 0, false
	}
	v := 0
	if raw, ok := dom.Attr(overlay, progressValueAttr); ok {
		v, _ = strconv.Atoi(raw)
	}
	return v, true
}

func (c *Controller) showProgress(value int) {
	if dom.ElementByID(c.doc.Root, progressOverlayID) == nil {
		body := c.doc.Body()
		if body == nil {
			return
		}
		overlay := c.doc.CreateElement("div")
		dom.SetAttr(overlay, "id", progressOverlayID)
		dom.SetStyle(overlay, progressOverlayStyle)
		ring := c.doc.CreateElement("div")
		dom.SetClass(ring, "progress-ring")
		dom.SetStyle(ring, progressRingStyle)
		overlay.AppendChild(ring)
		body.AppendChild(overlay)
	}
	c.setProgress(value)
}

// setProgress updates the glyph: a conic ring filled to value percent
func (c *Controller) setProgress(value int) {
	overlay := dom.ElementByID(c.doc.Root, progressOverlayID)
	if overlay == nil {
		return
	}
	value = max(0, min(100, value))
	dom.SetAttr(overlay, progressValueAttr, strconv.Itoa(value))
	ring := progressRing(overlay)
	if ring == nil {
		return
	}
	pct := strconv.Itoa(value)
	dom.SetStyleProperty(ring, "background", "conic-gradient(#3498db "+pct+"%, rgba(255,255,255,0.2) 0)")
	dom.SetText(ring, pct+"%")
	c.log.Debug("progress", "value", value)
}

func (c *Controller) hideProgress() {
	c.doc.Remove(dom.ElementByID(c.doc.Root, progressOverlayID))
}

func progressRing(overlay *html.Node) *html.Node {
	return dom.QueryFirst(overlay, ".progress-ring")
}
