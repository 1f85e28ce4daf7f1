package ocrpage

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
)

// ReadString returns the attribute value, or def when absent
func ReadString(n *html.Node, name, def string) string {
	if v, ok := dom.Attr(n, name); ok {
		return v
	}
	return def
}

// ReadInt parses an integer attribute, returning def when the attribute
// is absent or unparsable
func ReadInt(n *html.Node, name string, def int) int {
	v, ok := dom.Attr(n, name)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// ReadNumber parses a fractional attribute, returning def when the
// attribute is absent, unparsable or not finite
func ReadNumber(n *html.Node, name string, def float64) float64 {
	v, ok := dom.Attr(n, name)
	if !ok {
		return def
	}
	f, ok := parseFinite(v)
	if !ok {
		return def
	}
	return f
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

var polygonSep = regexp.MustCompile(`\s*,\s*|\s+`)

// ReadPolygon parses eight coordinates separated by commas and/or
// whitespace, so both the producer's "x1,y1,...,y4" form and the
// serialized points form are accepted. An empty coordinate fails the
// whole polygon. Values past the eighth are ignored but must still
// parse.
func ReadPolygon(s string) (*BoundingBox, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	fields := polygonSep.Split(s, -1)
	if len(fields) < 8 {
		return nil, false
	}
	var c [8]float64
	for i, field := range fields {
		f, ok := parseFinite(field)
		if !ok {
			return nil, false
		}
		if i < len(c) {
			c[i] = f
		}
	}
	return &BoundingBox{
		X1: c[0], Y1: c[1],
		X2: c[2], Y2: c[3],
		X3: c[4], Y3: c[5],
		X4: c[6], Y4: c[7],
	}, true
}
