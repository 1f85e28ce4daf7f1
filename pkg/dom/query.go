package dom

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ErrInvalidSelector wraps selector compilation failures
var ErrInvalidSelector = errors.New("invalid selector")

var (
	selectorMu    sync.Mutex
	selectorCache = make(map[string]cascadia.Matcher)
)

// Compile parses a selector group, caching the result
func Compile(selector string) (cascadia.Matcher, error) {
	selectorMu.Lock()
	defer selectorMu.Unlock()

	if m, ok := selectorCache[selector]; ok {
		return m, nil
	}
	m, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	selectorCache[selector] = m
	return m, nil
}

// QueryFirst returns the first descendant of root matching selector, or
// nil. Invalid selectors match nothing.
func QueryFirst(root *html.Node, selector string) *html.Node {
	if root == nil {
		return nil
	}
	m, err := Compile(selector)
	if err != nil {
		return nil
	}
	return cascadia.Query(root, m)
}

// QueryAll returns the descendants of root matching selector in document
// order. The result is a snapshot; later tree edits do not change it.
func QueryAll(root *html.Node, selector string) []*html.Node {
	if root == nil {
		return nil
	}
	m, err := Compile(selector)
	if err != nil {
		return nil
	}
	return cascadia.QueryAll(root, m)
}

// idMatcher matches elements by exact id. Ids are matched without going
// through selector syntax, so any id value is accepted.
type idMatcher string

func (m idMatcher) Match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	v, ok := Attr(n, "id")
	return ok && v == string(m)
}

// ElementByID finds the first descendant of root with the given id
func ElementByID(root *html.Node, id string) *html.Node {
	if root == nil {
		return nil
	}
	return cascadia.Query(root, idMatcher(id))
}

// RemoveSafely detaches n. Nil or unparented nodes are ignored.
func RemoveSafely(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveFirst removes the first match of selector under root
func RemoveFirst(root *html.Node, selector string) {
	RemoveSafely(QueryFirst(root, selector))
}

// RemoveAll removes every match of selector under root and returns how
// many were removed
func RemoveAll(root *html.Node, selector string) int {
	matches := QueryAll(root, selector)
	for _, n := range matches {
		RemoveSafely(n)
	}
	return len(matches)
}

// Classes returns the class list of n
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n carries class
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds class to n unless already present
func AddClass(n *html.Node, class string) {
	if n == nil || HasClass(n, class) {
		return
	}
	SetClass(n, append(Classes(n), class)...)
}

// RemoveClass removes every occurrence of class from n
func RemoveClass(n *html.Node, class string) {
	if n == nil || !HasClass(n, class) {
		return
	}
	var kept []string
	for _, c := range Classes(n) {
		if c != class {
			kept = append(kept, c)
		}
	}
	SetClass(n, kept...)
}

// SetClass replaces the class list of n. An empty list removes the
// attribute.
func SetClass(n *html.Node, classes ...string) {
	if len(classes) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(classes, " "))
}

// SetClassPresence adds class when condition holds and removes it otherwise
func SetClassPresence(n *html.Node, class string, condition bool) {
	if condition {
		AddClass(n, class)
	} else {
		RemoveClass(n, class)
	}
}
