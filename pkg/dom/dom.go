// Package dom is the small document layer the viewer runs on.
//
// It wraps a golang.org/x/net/html tree with the handful of browser
// facilities the viewer needs: scoped CSS selector queries, class lists,
// inline styles, checkbox state and event listeners. All queries take an
// explicit root so page-level code can never reach into another page.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
)

// Event is delivered to listeners by Dispatch
type Event struct {
	Type   string
	Target *html.Node
}

// Listener handles a dispatched event
type Listener func(Event)

// Document is a parsed XHTML document plus its event listeners
type Document struct {
	Root      *html.Node
	listeners map[*html.Node]map[string][]Listener
}

// NewDocument wraps an existing tree
func NewDocument(root *html.Node) *Document {
	return &Document{
		Root:      root,
		listeners: make(map[*html.Node]map[string][]Listener),
	}
}

var xmlEncodingRe = regexp.MustCompile(`^\s*<\?xml[^>]*encoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// Parse converts raw (X)HTML into a Document. The character encoding is
// taken from an XML prolog when present, otherwise from a BOM or meta
// declaration, falling back to UTF-8 for valid UTF-8 input.
func Parse(data []byte) (*Document, error) {
	decoded, err := decode(data)
	if err != nil {
		return nil, err
	}
	root, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return NewDocument(root), nil
}

// ParseString is Parse for string input
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

func decode(data []byte) ([]byte, error) {
	if m := xmlEncodingRe.FindSubmatch(data); m != nil {
		enc, err := htmlindex.Get(string(m[1]))
		if err == nil {
			if name, _ := htmlindex.Name(enc); name == "utf-8" {
				return data, nil
			}
			decoded, err := enc.NewDecoder().Bytes(data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", m[1], err)
			}
			return decoded, nil
		}
	}

	enc, name, _ := charset.DetermineEncoding(data, "")
	if name == "utf-8" {
		return data, nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return decoded, nil
}

// Render writes the document as HTML
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.Root)
}

// String renders the document, returning "" on failure
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Body returns the body element, or nil
func (d *Document) Body() *html.Node {
	return findElement(d.Root, "body")
}

// Head returns the head element, or nil
func (d *Document) Head() *html.Node {
	return findElement(d.Root, "head")
}

func findElement(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// CreateElement creates a detached HTML element
func (d *Document) CreateElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateSVGElement creates a detached element in the SVG namespace
func (d *Document) CreateSVGElement(tag string) *html.Node {
	n := d.CreateElement(tag)
	n.Namespace = "svg"
	return n
}

// AddEventListener registers fn for events of type typ on n
func (d *Document) AddEventListener(n *html.Node, typ string, fn Listener) {
	if n == nil || fn == nil {
		return
	}
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]Listener)
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], fn)
}

// ClearEventListeners drops the listeners of type typ on n. An empty typ
// drops them all.
func (d *Document) ClearEventListeners(n *html.Node, typ string) {
	if typ == "" {
		delete(d.listeners, n)
		return
	}
	if byType, ok := d.listeners[n]; ok {
		delete(byType, typ)
		if len(byType) == 0 {
			delete(d.listeners, n)
		}
	}
}

// ListenerTargets reports how many nodes have listeners registered
func (d *Document) ListenerTargets() int {
	return len(d.listeners)
}

// Remove detaches n and drops the listeners of n and its descendants
func (d *Document) Remove(n *html.Node) {
	if n == nil {
		return
	}
	d.clearTree(n)
	RemoveSafely(n)
}

func (d *Document) clearTree(n *html.Node) {
	delete(d.listeners, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.clearTree(c)
	}
}

// RemoveAll is the package RemoveAll for nodes that may carry listeners
func (d *Document) RemoveAll(root *html.Node, selector string) int {
	matches := QueryAll(root, selector)
	for _, n := range matches {
		d.Remove(n)
	}
	return len(matches)
}

// ListenerCount reports how many listeners of type typ n has
func (d *Document) ListenerCount(n *html.Node, typ string) int {
	return len(d.listeners[n][typ])
}

// Dispatch delivers an event of type typ to the listeners on n, in
// registration order. Events do not bubble.
func (d *Document) Dispatch(n *html.Node, typ string) {
	if n == nil {
		return
	}
	// Listeners may register or clear listeners while we iterate.
	fns := append([]Listener(nil), d.listeners[n][typ]...)
	for _, fn := range fns {
		fn(Event{Type: typ, Target: n})
	}
}

// Checked reports the checked state of a checkbox input
func Checked(n *html.Node) bool {
	_, ok := Attr(n, "checked")
	return ok
}

// SetChecked sets the checked state of a checkbox input
func SetChecked(n *html.Node, checked bool) {
	if checked {
		SetAttr(n, "checked", "checked")
	} else {
		RemoveAttr(n, "checked")
	}
}

// Attr returns an attribute value. Names match case-insensitively because
// the HTML parser lowercases names such as imgWidth.
func Attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute
func SetAttr(n *html.Node, name, val string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
}

// RemoveAttr deletes an attribute if present
func RemoveAttr(n *html.Node, name string) {
	if n == nil {
		return
	}
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if !strings.EqualFold(a.Key, name) {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// TextContent concatenates all descendant text
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(TextContent(c))
	}
	return sb.String()
}

// SetText replaces the children of n with a single text node
func SetText(n *html.Node, text string) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// InsertAfter places n immediately after ref
func InsertAfter(ref, n *html.Node) {
	if ref == nil || ref.Parent == nil || n == nil {
		return
	}
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// Prepend places n as the first child of parent
func Prepend(parent, n *html.Node) {
	if parent == nil || n == nil {
		return
	}
	parent.InsertBefore(n, parent.FirstChild)
}
