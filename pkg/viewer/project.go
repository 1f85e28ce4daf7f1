package viewer

import (
	"math"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/ocrpage"
	"github.com/gardar/ocrview/pkg/styler"
)

// Classes the projection toggles
const (
	ShowLineBoxesClass = "show-line-boxes"
	ShowWordBoxesClass = "show-word-boxes"
	HideTextClass      = "hide-text"
)

// requestPass projects the current state onto every page. A request that
// arrives while a pass is running is folded into one follow-up pass.
func (c *Controller) requestPass() {
	if c.passing {
		c.rerun = true
		return
	}
	c.startPass()
}

func (c *Controller) startPass() {
	state := c.state
	pages := c.coord.Pages()
	if len(pages) <= c.cfg.LargeDocumentPages {
		c.projectPages(pages, state)
		return
	}

	c.passing = true
	gen := c.generation
	c.showProgress(0)
	c.log.Debug("batched projection", "pages", len(pages), "batch", c.cfg.BatchSize)
	c.env.Scheduler.Schedule(YieldDelay, func() { c.runBatch(gen, pages, state, 0) })
}

func (c *Controller) runBatch(gen int, pages []*html.Node, state DisplayState, start int) {
	if gen != c.generation {
		return
	}
	end := min(start+c.cfg.BatchSize, len(pages))
	c.projectPages(pages[start:end], state)
	c.setProgress(int(math.Round(float64(end) * 100 / float64(len(pages)))))

	if end < len(pages) {
		c.env.Scheduler.Schedule(YieldDelay, func() { c.runBatch(gen, pages, state, end) })
		return
	}
	// leave 100% on screen for one yield
	c.env.Scheduler.Schedule(YieldDelay, func() {
		if gen != c.generation {
			return
		}
		c.hideProgress()
		c.passing = false
		if c.rerun {
			c.rerun = false
			c.startPass()
		}
	})
}

func (c *Controller) projectPages(pages []*html.Node, state DisplayState) {
	for _, page := range pages {
		ProjectPage(page, state)
	}
}

// ProjectPage applies state to one page: segment line-box classes, then
// page classes, then SVG layer classes, then the SVG section display.
// Only class presence and the section's display style change, so
// projecting the same state twice is a no-op.
func ProjectPage(page *html.Node, state DisplayState) {
	for _, seg := range dom.QueryAll(page, ocrpage.SegmentTag) {
		dom.SetClassPresence(seg, ShowLineBoxesClass, state.LineBoxes)
	}

	dom.SetClassPresence(page, ShowWordBoxesClass, state.WordBoxes)
	dom.SetClassPresence(page, HideTextClass, !state.XHTMLText)

	layers := []struct {
		id      string
		visible bool
	}{
		{styler.BackgroundID, state.SVGBackground},
		{styler.LineBoxesID, state.LineBoxes},
		{styler.WordBoxesID, state.WordBoxes},
		{styler.TextLayerID, state.SVGText},
	}
	for _, l := range layers {
		if g := dom.ElementByID(page, l.id); g != nil {
			dom.SetClassPresence(g, styler.HiddenClass, !l.visible)
		}
	}

	if section := dom.QueryFirst(page, "."+styler.SectionClass); section != nil {
		display := "none"
		if state.SVGSection {
			display = "block"
		}
		dom.SetStyleProperty(section, "display", display)
	}
}
