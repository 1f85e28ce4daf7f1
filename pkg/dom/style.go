package dom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// parseStyle reads an inline declaration list. Declarations the CSS
// parser cannot read are dropped; the ones before them are kept.
func parseStyle(s string) []*css.Declaration {
	parsed, _ := parser.ParseDeclarations(s)
	decls := parsed[:0]
	for _, d := range parsed {
		if d == nil {
			continue
		}
		d.Property = strings.ToLower(strings.TrimSpace(d.Property))
		d.Value = strings.Join(strings.Fields(d.Value), " ")
		if d.Property == "" {
			continue
		}
		decls = append(decls, d)
	}
	return decls
}

func formatStyle(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		val := d.Value
		if d.Important {
			val += " !important"
		}
		parts = append(parts, d.Property+": "+val+";")
	}
	return strings.Join(parts, " ")
}

// SetStyle replaces the inline style of n. Multi-line CSS text is
// normalized into a single declaration list.
func SetStyle(n *html.Node, text string) {
	decls := parseStyle(text)
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", formatStyle(decls))
}

// StyleProperty returns the inline value of prop, or ""
func StyleProperty(n *html.Node, prop string) string {
	v, _ := Attr(n, "style")
	prop = strings.ToLower(prop)
	for _, d := range parseStyle(v) {
		if d.Property == prop {
			return d.Value
		}
	}
	return ""
}

// SetStyleProperty sets a single inline property, keeping the others in
// place
func SetStyleProperty(n *html.Node, prop, val string) {
	if n == nil {
		return
	}
	v, _ := Attr(n, "style")
	decls := parseStyle(v)
	prop = strings.ToLower(prop)
	for _, d := range decls {
		if d.Property == prop {
			d.Value = val
			d.Important = false
			SetAttr(n, "style", formatStyle(decls))
			return
		}
	}
	decls = append(decls, &css.Declaration{Property: prop, Value: val})
	SetAttr(n, "style", formatStyle(decls))
}
