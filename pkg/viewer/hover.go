package viewer

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/host"
	"github.com/gardar/ocrview/pkg/ocrpage"
)

const (
	floatingControlsID = "floating-controls"

	floatingControlsStyle = "position: absolute; background: rgba(0, 0, 0, 0.9); color: white; padding: 5px 10px; border-radius: 4px; " +
		"font-size: 11px; z-index: 1000; white-space: nowrap; pointer-events: auto;"
	lineCopyButtonStyle = "background: none; border: none; color: white; cursor: pointer; font-size: 12px; padding: 2px 4px; border-radius: 2px;"
)

// HoverPhase is the state of the floating line control
type HoverPhase int

const (
	HoverIdle HoverPhase = iota
	HoverShowing
	HoverHidePending
)

func (p HoverPhase) String() string {
	switch p {
	case HoverShowing:
		return "showing"
	case HoverHidePending:
		return "hide-pending"
	default:
		return "idle"
	}
}

type hoverMachine struct {
	phase HoverPhase
	timer host.Handle
	page  int
	line  int
}

// HoverPhase returns the current hover state
func (c *Controller) HoverPhase() HoverPhase {
	return c.hover.phase
}

// EnterLine shows the floating copy control for a line when hover
// controls are enabled. It cancels a pending hide.
func (c *Controller) EnterLine(pageIndex, line int, segment *html.Node) {
	if !c.state.HoverControls {
		return
	}
	c.cancelHide()
	c.removeFloating()

	controls := c.doc.CreateElement("div")
	dom.SetAttr(controls, "id", floatingControlsID)
	dom.SetStyle(controls, floatingControlsStyle)

	btn := c.doc.CreateElement("button")
	dom.SetText(btn, "📋")
	dom.SetAttr(btn, "title", fmt.Sprintf("Copy line %d", line+1))
	dom.SetStyle(btn, lineCopyButtonStyle)
	c.doc.AddEventListener(btn, "click", func(dom.Event) { c.CopyLine(pageIndex, line) })
	controls.AppendChild(btn)

	// moving onto the control itself must not hide it
	c.doc.AddEventListener(controls, "mouseenter", func(dom.Event) { c.cancelHide() })
	c.doc.AddEventListener(controls, "mouseleave", func(dom.Event) { c.LeaveLine(pageIndex, line) })

	rect := c.env.Layout.ClientRect(segment)
	sx, sy := c.env.Layout.Scroll()
	dom.SetStyleProperty(controls, "left", ocrpage.FormatCoord(rect.Right()+sx-25)+"px")
	dom.SetStyleProperty(controls, "top", ocrpage.FormatCoord(rect.Top+sy+rect.Height/2-10)+"px")

	if body := c.doc.Body(); body != nil {
		body.AppendChild(controls)
	}
	c.hover.phase = HoverShowing
	c.hover.page = pageIndex
	c.hover.line = line
}

// LeaveLine schedules the floating control's removal
func (c *Controller) LeaveLine(pageIndex, line int) {
	if c.hover.phase == HoverIdle {
		return
	}
	c.cancelHide()
	c.hover.timer = c.env.Scheduler.Schedule(c.cfg.hoverHideDelay(), c.hideFloating)
	c.hover.phase = HoverHidePending
}

func (c *Controller) cancelHide() {
	if c.hover.timer != 0 {
		c.env.Scheduler.Cancel(c.hover.timer)
		c.hover.timer = 0
	}
	if c.hover.phase == HoverHidePending {
		c.hover.phase = HoverShowing
	}
}

func (c *Controller) hideFloating() {
	if c.hover.timer != 0 {
		c.env.Scheduler.Cancel(c.hover.timer)
	}
	c.removeFloating()
	c.hover = hoverMachine{}
}

func (c *Controller) removeFloating() {
	c.doc.Remove(dom.ElementByID(c.doc.Root, floatingControlsID))
}
