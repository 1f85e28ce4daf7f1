package hocr

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
)

// ErrNoPages is returned for input without any ocr_page element
var ErrNoPages = errors.New("no ocr_page elements found in hOCR data")

// Parse converts raw hOCR data into a Document. The character encoding is
// detected from the XML prolog, BOM or meta declaration.
func Parse(data []byte) (*Document, error) {
	d, err := dom.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error reading hOCR: %w", err)
	}

	result := &Document{Metadata: make(map[string]string)}
	extractDocumentMeta(result, d)

	for _, n := range dom.QueryAll(d.Root, "."+Page{}.Class()) {
		result.Pages = append(result.Pages, processPage(n))
	}
	if len(result.Pages) == 0 {
		return result, ErrNoPages
	}
	return result, nil
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string.
// Returns nil unless all four coordinates parse.
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	bbox, ok := ParseTitle(title)["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var c [4]float64
	for i := range c {
		v, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		c[i] = v
	}
	result := NewBoundingBox(c[0], c[1], c[2], c[3])
	return &result
}

// extractDocumentMeta reads the title, language and ocr-* declarations
func extractDocumentMeta(result *Document, d *dom.Document) {
	if root := dom.QueryFirst(d.Root, "html"); root != nil {
		for _, key := range []string{"lang", "xml:lang"} {
			if v, ok := dom.Attr(root, key); ok && v != "" {
				result.Language = v
				break
			}
		}
	}
	if title := dom.QueryFirst(d.Root, "title"); title != nil {
		result.Title = strings.TrimSpace(dom.TextContent(title))
	}

	for _, meta := range dom.QueryAll(d.Root, "meta[name]") {
		name, _ := dom.Attr(meta, "name")
		content, _ := dom.Attr(meta, "content")
		if content == "" {
			continue
		}
		switch name = strings.ToLower(name); {
		case strings.HasPrefix(name, "ocr-"):
			result.Metadata[name] = content
		case name == "dc.language" && result.Language == "":
			result.Language = content
		}
	}
}

// processPage extracts page information and its lines
func processPage(n *html.Node) Page {
	page := Page{}
	page.ID, _ = dom.Attr(n, "id")

	if title, ok := dom.Attr(n, "title"); ok {
		if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
			page.BBox = *bbox
		}
		props := ParseTitle(title)
		if image, ok := props["image"]; ok && len(image) > 0 {
			page.ImageName = strings.Trim(strings.Join(image, " "), `"'`)
		}
		if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
			page.PageNumber, _ = strconv.Atoi(ppageno[0])
		}
	}

	page.Lines = collectLines(n)
	return page
}

// collectLines walks the page in document order. Line elements become
// lines; words found outside any line are grouped per parent element.
func collectLines(page *html.Node) []Line {
	var lines []Line
	loose := make(map[*html.Node]int)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch {
			case isLine(c):
				lines = append(lines, processLine(c))
			case dom.HasClass(c, Word{}.Class()):
				word, ok := processWord(c)
				if !ok {
					continue
				}
				i, seen := loose[n]
				if !seen {
					lines = append(lines, Line{})
					i = len(lines) - 1
					loose[n] = i
				}
				lines[i].Words = append(lines[i].Words, word)
			default:
				walk(c)
			}
		}
	}
	walk(page)
	return lines
}

func isLine(n *html.Node) bool {
	return slices.ContainsFunc(lineClasses, func(class string) bool {
		return dom.HasClass(n, class)
	})
}

// processLine extracts line information and its words
func processLine(n *html.Node) Line {
	line := Line{}
	line.ID, _ = dom.Attr(n, "id")

	if title, ok := dom.Attr(n, "title"); ok {
		if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
			line.BBox = *bbox
		}
	}

	for _, wn := range dom.QueryAll(n, "."+Word{}.Class()) {
		if word, ok := processWord(wn); ok {
			line.Words = append(line.Words, word)
		}
	}
	return line
}

// processWord extracts a word's text and properties. Words without text
// are dropped.
func processWord(n *html.Node) (Word, bool) {
	word := Word{Confidence: -1}
	word.ID, _ = dom.Attr(n, "id")
	word.Lang = inheritedLang(n)

	if title, ok := dom.Attr(n, "title"); ok {
		if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
			word.BBox = *bbox
		}
		props := ParseTitle(title)
		if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
			if v, err := strconv.ParseFloat(conf[0], 64); err == nil {
				word.Confidence = v
			}
		}
		if lang, ok := props["lang"]; ok && len(lang) > 0 {
			word.Lang = lang[0]
		}
	}

	word.Text = strings.Join(strings.Fields(dom.TextContent(n)), " ")
	return word, word.Text != ""
}

// inheritedLang returns the lang of n or its nearest ancestor inside the
// page
func inheritedLang(n *html.Node) string {
	for p := n; p != nil; p = p.Parent {
		if lang, ok := dom.Attr(p, "lang"); ok && lang != "" {
			return lang
		}
		if dom.HasClass(p, Page{}.Class()) {
			break
		}
	}
	return ""
}
