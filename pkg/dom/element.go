// Package dom provides an in-memory container element that row renderers
// write into. Markup is parsed with the HTML5 fragment algorithm in the
// context of the container tag, so table cells land where a browser would
// put them.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoMatch is returned when a selector matches no descendant.
var ErrNoMatch = errors.New("dom: selector matched no element")

// Option configures an Element.
type Option func(*Element)

// WithSanitizer runs every markup string through policy before parsing.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(e *Element) {
		e.sanitizer = policy
	}
}

// Element is a mutable container node. It is not safe for concurrent use.
type Element struct {
	root      *html.Node
	sanitizer *bluemonday.Policy
}

// New creates an empty container with the given tag name, e.g. "tr".
func New(tag string, opts ...Option) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		tag = "div"
	}
	e := &Element{
		root: &html.Node{
			Type:     html.ElementNode,
			Data:     tag,
			DataAtom: atom.Lookup([]byte(tag)),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Tag returns the container tag name.
func (e *Element) Tag() string {
	return e.root.Data
}

// SetInnerHTML replaces the container contents with markup.
func (e *Element) SetInnerHTML(markup string) error {
	return e.replaceChildren(e.root, markup)
}

// SetChildHTML replaces the contents of the first descendant matching
// selector. Supported selectors are ".class", "#id" and a bare tag name.
func (e *Element) SetChildHTML(selector, markup string) error {
	target := e.query(selector)
	if target == nil {
		return fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}
	return e.replaceChildren(target, markup)
}

// InnerHTML serializes the container contents.
func (e *Element) InnerHTML() (string, error) {
	return renderChildren(e.root)
}

// ChildHTML serializes the contents of the first descendant matching
// selector.
func (e *Element) ChildHTML(selector string) (string, error) {
	target := e.query(selector)
	if target == nil {
		return "", fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}
	return renderChildren(target)
}

// Texts returns the text content of every descendant matching selector, in
// document order.
func (e *Element) Texts(selector string) []string {
	var out []string
	walk(e.root, func(n *html.Node) bool {
		if n != e.root && matches(n, selector) {
			out = append(out, textContent(n))
		}
		return false
	})
	return out
}

func (e *Element) replaceChildren(parent *html.Node, markup string) error {
	if e.sanitizer != nil {
		markup = e.sanitizer.Sanitize(markup)
	}

	context := &html.Node{
		Type:     html.ElementNode,
		Data:     parent.Data,
		DataAtom: parent.DataAtom,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("dom: parse fragment: %w", err)
	}

	for child := parent.FirstChild; child != nil; {
		next := child.NextSibling
		parent.RemoveChild(child)
		child = next
	}
	for _, node := range nodes {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
		parent.AppendChild(node)
	}
	return nil
}

func (e *Element) query(selector string) *html.Node {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil
	}
	var found *html.Node
	walk(e.root, func(n *html.Node) bool {
		if n != e.root && matches(n, selector) {
			found = n
			return true
		}
		return false
	})
	return found
}

// walk visits n and its descendants depth first until visit returns true.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if visit(n) {
		return true
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if walk(child, visit) {
			return true
		}
	}
	return false
}

func matches(n *html.Node, selector string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch {
	case strings.HasPrefix(selector, "."):
		want := selector[1:]
		for _, class := range strings.Fields(attr(n, "class")) {
			if class == want {
				return true
			}
		}
		return false
	case strings.HasPrefix(selector, "#"):
		return attr(n, "id") == selector[1:]
	default:
		return strings.EqualFold(n.Data, selector)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return false
	})
	return b.String()
}

func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return "", fmt.Errorf("dom: render: %w", err)
		}
	}
	return buf.String(), nil
}
