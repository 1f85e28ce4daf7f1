// Package multipage locates the page sections of a document and drives
// per-page processing.
package multipage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/logging"
	"github.com/gardar/ocrview/pkg/ocrpage"
)

// ErrNoPages is returned by ForEachPage when the document has no page
// sections
var ErrNoPages = errors.New("document has no OCR pages")

// Document-level meta declarations
const (
	MetaPagesCount        = "pagesCount"
	MetaTotalWords        = "totalWords"
	MetaTotalSegments     = "totalSegments"
	MetaAverageConfidence = "averageConfidence"
	MetaDate              = "date"
)

// Processor handles one page. number is the page's pageNum attribute, or
// its one-based position when the attribute is missing.
type Processor func(page *html.Node, number int, multi bool) error

// Coordinator answers page questions about one document
type Coordinator struct {
	root *html.Node
	log  *logging.Logger
}

// New returns a Coordinator rooted at root (usually the document root)
func New(root *html.Node, log *logging.Logger) *Coordinator {
	return &Coordinator{root: root, log: log}
}

// Pages returns the page sections in document order
func (c *Coordinator) Pages() []*html.Node {
	return dom.QueryAll(c.root, ocrpage.PageSelector)
}

// PageCount returns the declared page count, or the number of page
// sections when no declaration exists
func (c *Coordinator) PageCount() int {
	if meta := c.meta(MetaPagesCount); meta != nil {
		return ocrpage.ReadInt(meta, "content", 1)
	}
	return len(c.Pages())
}

// IsMultiPage reports whether the document has more than one page
func (c *Coordinator) IsMultiPage() bool {
	return c.PageCount() > 1
}

// PageByNumber returns the page whose pageNum equals n, falling back to
// the n-th page (one-based) in document order
func (c *Coordinator) PageByNumber(n int) *html.Node {
	pages := c.Pages()
	for _, p := range pages {
		if v, ok := dom.Attr(p, ocrpage.AttrPageNum); ok && strings.TrimSpace(v) == strconv.Itoa(n) {
			return p
		}
	}
	if n >= 1 && n <= len(pages) {
		return pages[n-1]
	}
	return nil
}

// DocumentMetadata reads the document-level declarations. Missing values
// are zero.
func (c *Coordinator) DocumentMetadata() ocrpage.DocumentMetadata {
	return ocrpage.DocumentMetadata{
		PageCount:         c.PageCount(),
		TotalWords:        ocrpage.ReadInt(c.meta(MetaTotalWords), "content", 0),
		TotalSegments:     ocrpage.ReadInt(c.meta(MetaTotalSegments), "content", 0),
		AverageConfidence: ocrpage.ReadNumber(c.meta(MetaAverageConfidence), "content", 0),
		Date:              ocrpage.ReadString(c.meta(MetaDate), "content", ""),
	}
}

// PageNumber returns the pageNum attribute of page, or position+1
func PageNumber(page *html.Node, position int) int {
	return ocrpage.ReadInt(page, ocrpage.AttrPageNum, position+1)
}

// ForEachPage runs fn on every page in document order. A page whose
// processor fails or panics is logged and skipped. The returned error
// joins the per-page failures.
func (c *Coordinator) ForEachPage(fn Processor) error {
	pages := c.Pages()
	if len(pages) == 0 {
		c.log.Error("no page sections found")
		return ErrNoPages
	}
	multi := c.IsMultiPage()
	c.log.Debug("processing pages", "count", len(pages), "multi", multi)

	var errs []error
	for i, page := range pages {
		number := PageNumber(page, i)
		if err := c.process(fn, page, number, multi); err != nil {
			c.log.Error("page failed", "page", number, "src", ocrpage.ReadString(page, ocrpage.AttrSrcName, "unknown"), "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Coordinator) process(fn Processor, page *html.Node, number int, multi bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic processing page %d: %v", number, r)
		}
	}()
	if err := fn(page, number, multi); err != nil {
		return fmt.Errorf("error processing page %d: %w", number, err)
	}
	return nil
}

func (c *Coordinator) meta(name string) *html.Node {
	for _, m := range dom.QueryAll(c.root, "meta") {
		if v, ok := dom.Attr(m, "name"); ok && v == name {
			return m
		}
	}
	return nil
}
