// Package styler enriches one page section of a win11OneOcr document.
//
// Annotate (phase A) decorates the existing XHTML: line numbers on
// segments, a confidence class on every word, hover hooks, a page copy
// button and a confidence badge. BuildSVG (phase B) inserts an SVG
// rendition of the page, sized to the source image, right after the
// page's ocrContent element.
//
// Every query is rooted at the page element, so positional selectors
// count within the page and never reach a neighbouring page.
package styler

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"text/template"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/logging"
	"github.com/gardar/ocrview/pkg/ocrpage"
)

//go:embed templates/layer.css.tmpl
var templateFS embed.FS

// ErrNoContent is returned when a page has no ocrContent element
var ErrNoContent = errors.New("page has no ocrContent element")

// Interaction receives the user gestures the styler wires into a page.
// The viewer controller implements it.
type Interaction interface {
	EnterLine(pageIndex, line int, segment *html.Node)
	LeaveLine(pageIndex, line int)
	CopyPage(pageIndex int)
	ShowWordDetails(pageIndex, line, word int)
}

// Styler applies both phases to pages of one document
type Styler struct {
	doc         *dom.Document
	thresholds  ocrpage.Thresholds
	log         *logging.Logger
	interaction Interaction
	css         string
}

// New renders the SVG layer stylesheet and returns a Styler. A nil
// Interaction leaves pages without event hooks.
func New(doc *dom.Document, thresholds ocrpage.Thresholds, log *logging.Logger, interaction Interaction) (*Styler, error) {
	css, err := LayerStylesheet()
	if err != nil {
		return nil, err
	}
	return &Styler{
		doc:         doc,
		thresholds:  thresholds,
		log:         log,
		interaction: interaction,
		css:         css,
	}, nil
}

// LayerStylesheet renders the stylesheet embedded in every page's SVG
func LayerStylesheet() (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layer.css.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing layer stylesheet template: %w", err)
	}
	var buf bytes.Buffer
	data := struct{ Levels []ocrpage.ConfidenceLevel }{ocrpage.Levels}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering layer stylesheet: %w", err)
	}
	return buf.String(), nil
}
