package host

import "golang.org/x/net/html"

// Rect is an element's client rectangle in CSS pixels
type Rect struct {
	Left, Top, Width, Height float64
}

// Right returns the right edge
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Layout answers geometry questions the DOM tree alone cannot
type Layout interface {
	ClientRect(n *html.Node) Rect
	Scroll() (x, y float64)
}

// StaticLayout returns preset rectangles. Unknown nodes get a zero Rect.
type StaticLayout struct {
	Rects   map[*html.Node]Rect
	ScrollX float64
	ScrollY float64
}

// ClientRect implements Layout
func (s *StaticLayout) ClientRect(n *html.Node) Rect {
	if s == nil || s.Rects == nil {
		return Rect{}
	}
	return s.Rects[n]
}

// Scroll implements Layout
func (s *StaticLayout) Scroll() (float64, float64) {
	if s == nil {
		return 0, 0
	}
	return s.ScrollX, s.ScrollY
}

// Place records the rectangle for n
func (s *StaticLayout) Place(n *html.Node, r Rect) {
	if s.Rects == nil {
		s.Rects = make(map[*html.Node]Rect)
	}
	s.Rects[n] = r
}
