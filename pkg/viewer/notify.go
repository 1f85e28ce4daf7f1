package viewer

import (
	"errors"
	"fmt"
	"time"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/host"
	"github.com/gardar/ocrview/pkg/ocrpage"
)

// CopiedMessage is the text of the copy notification
const CopiedMessage = "Copied to clipboard!"

const (
	notificationClass = "copy-notification"
	wordDetailsClass  = "word-details"

	wordDetailsDelay = 3 * time.Second

	notificationStyle = "position: fixed; top: 50%; left: 50%; transform: translate(-50%, -50%); background: rgba(0, 0, 0, 0.8); " +
		"color: white; padding: 10px 20px; border-radius: 4px; z-index: 1000; font-size: 12px;"
	wordDetailsStyle = "position: fixed; background: rgba(0, 0, 0, 0.9); color: white; padding: 10px 15px; border-radius: 5px; " +
		"font-size: 12px; font-family: monospace; z-index: 1000; max-width: 250px; pointer-events: none;"
)

// CopyLine copies one line's words, joined by spaces
func (c *Controller) CopyLine(pageIndex, line int) {
	model, ok := c.model(pageIndex)
	if !ok || line < 0 || line >= len(model.Lines) {
		c.log.Warn("copy of unknown line", "page", pageIndex, "line", line)
		return
	}
	c.copyText(ocrpage.LineText(model.Lines[line]))
}

// CopyPage copies a page's text: words joined by spaces, lines by line
// feeds
func (c *Controller) CopyPage(pageIndex int) {
	model, ok := c.model(pageIndex)
	if !ok {
		c.log.Warn("copy of unknown page", "page", pageIndex)
		return
	}
	c.copyText(ocrpage.PageText(model))
}

func (c *Controller) model(pageIndex int) (ocrpage.PageModel, bool) {
	if pageIndex < 0 || pageIndex >= len(c.models) {
		return ocrpage.PageModel{}, false
	}
	return c.models[pageIndex], true
}

// copyText writes to the clipboard and always shows the notification
func (c *Controller) copyText(text string) {
	var err error
	if c.env.Clipboard == nil {
		err = host.ErrClipboardUnavailable
	} else {
		err = c.env.Clipboard.WriteText(text)
	}
	if err != nil {
		if !errors.Is(err, host.ErrClipboardUnavailable) {
			err = fmt.Errorf("error writing to clipboard: %w", err)
		}
		c.log.Warn("copy failed", "err", err)
	} else {
		c.log.Debug("copied text", "chars", len(text))
	}
	c.notify(CopiedMessage)
}

// notify shows a centered message that removes itself after
// Config.NotificationMS
func (c *Controller) notify(message string) {
	body := c.doc.Body()
	if body == nil {
		return
	}
	n := c.doc.CreateElement("div")
	dom.SetClass(n, notificationClass)
	dom.SetStyle(n, notificationStyle)
	dom.SetText(n, message)
	body.AppendChild(n)
	c.env.Scheduler.Schedule(c.cfg.notificationDelay(), func() { c.doc.Remove(n) })
}

// ShowWordDetails pops up a word's text, confidence, index and bounds
// next to its SVG text for three seconds
func (c *Controller) ShowWordDetails(pageIndex, line, word int) {
	model, ok := c.model(pageIndex)
	if !ok || line < 0 || line >= len(model.Lines) || word < 0 || word >= len(model.Lines[line].Words) {
		return
	}
	w := model.Lines[line].Words[word]
	body := c.doc.Body()
	if body == nil {
		return
	}
	c.doc.RemoveAll(c.doc.Root, "."+wordDetailsClass)

	popup := c.doc.CreateElement("div")
	dom.SetClass(popup, wordDetailsClass)
	dom.SetStyle(popup, wordDetailsStyle)
	bounds := "N/A"
	if w.Box != nil {
		bounds = ocrpage.FormatCoord(w.Box.X1) + "," + ocrpage.FormatCoord(w.Box.Y1) + " to " +
			ocrpage.FormatCoord(w.Box.X2) + "," + ocrpage.FormatCoord(w.Box.Y2)
	}
	for _, row := range []string{
		fmt.Sprintf("Word: %q", w.Text),
		"Confidence: " + ocrpage.Percent(w.Confidence),
		fmt.Sprintf("Index: %d", w.Index),
		"Bounds: " + bounds,
	} {
		div := c.doc.CreateElement("div")
		dom.SetText(div, row)
		popup.AppendChild(div)
	}

	if pageIndex < len(c.pages) {
		target := dom.QueryFirst(c.pages[pageIndex], fmt.Sprintf(`text[data-word="word-%d-%d"]`, line, word))
		if target != nil {
			rect := c.env.Layout.ClientRect(target)
			dom.SetStyleProperty(popup, "left", ocrpage.FormatCoord(rect.Left+10)+"px")
			dom.SetStyleProperty(popup, "top", ocrpage.FormatCoord(rect.Bottom()+10)+"px")
		}
	}
	body.AppendChild(popup)
	c.env.Scheduler.Schedule(wordDetailsDelay, func() { c.doc.Remove(popup) })
}
