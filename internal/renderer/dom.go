package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a mutable node in the widget's HTML tree.
type Element struct {
	n *html.Node
}

// NewElement creates a detached element with the given tag.
func NewElement(tag string) *Element {
	return &Element{n: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

func wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{n: n}
}

// Node exposes the underlying html node.
func (e *Element) Node() *html.Node { return e.n }

// Tag returns the element name.
func (e *Element) Tag() string { return e.n.Data }

// Attr returns the value of an attribute.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(key, val string) *Element {
	for i, a := range e.n.Attr {
		if a.Key == key {
			e.n.Attr[i].Val = val
			return e
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: key, Val: val})
	return e
}

func (e *Element) removeAttr(key string) {
	attrs := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	e.n.Attr = attrs
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether class is in the class list.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class to the class list if it is not already there.
func (e *Element) AddClass(class string) *Element {
	if class == "" || e.HasClass(class) {
		return e
	}
	return e.SetAttr("class", strings.Join(append(e.Classes(), class), " "))
}

type styleDecl struct {
	prop  string
	value string
}

func parseStyle(s string) []styleDecl {
	var decls []styleDecl
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, styleDecl{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []styleDecl) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+":"+d.value)
	}
	return strings.Join(parts, ";")
}

// Style returns the inline value of a style property.
func (e *Element) Style(prop string) string {
	v, _ := e.Attr("style")
	for _, d := range parseStyle(v) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// SetStyle sets an inline style property, keeping declaration order.
// An empty value removes the property.
func (e *Element) SetStyle(prop, value string) *Element {
	v, _ := e.Attr("style")
	decls := parseStyle(v)

	out := decls[:0]
	replaced := false
	for _, d := range decls {
		if d.prop != prop {
			out = append(out, d)
			continue
		}
		if value != "" && !replaced {
			out = append(out, styleDecl{prop: prop, value: value})
			replaced = true
		}
	}
	if value != "" && !replaced {
		out = append(out, styleDecl{prop: prop, value: value})
	}

	if len(out) == 0 {
		e.removeAttr("style")
		return e
	}
	return e.SetAttr("style", formatStyle(out))
}

// Empty removes all children.
func (e *Element) Empty() *Element {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	return e
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Append adds child as the last child.
func (e *Element) Append(child *Element) *Element {
	detach(child.n)
	e.n.AppendChild(child.n)
	return e
}

// Prepend adds child as the first child.
func (e *Element) Prepend(child *Element) *Element {
	detach(child.n)
	e.n.InsertBefore(child.n, e.n.FirstChild)
	return e
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) *Element {
	e.Empty()
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return e
}

// AppendHTML parses fragment in the context of e and appends the result.
func (e *Element) AppendHTML(fragment string) error {
	context := &html.Node{Type: html.ElementNode, Data: e.n.Data, DataAtom: e.n.DataAtom}
	if context.DataAtom == 0 {
		context.Data, context.DataAtom = "div", atom.Div
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return fmt.Errorf("failed to parse HTML fragment: %w", err)
	}
	for _, n := range nodes {
		detach(n)
		e.n.AppendChild(n)
	}
	return nil
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element { return wrap(e.n.Parent) }

// Children returns the element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, wrap(c))
		}
	}
	return out
}

// FirstChild returns the first element child, or nil.
func (e *Element) FirstChild() *Element {
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return wrap(c)
		}
	}
	return nil
}

// Find returns the first descendant carrying class, depth first.
func (e *Element) Find(class string) *Element {
	for _, c := range e.Children() {
		if c.HasClass(class) {
			return c
		}
		if found := c.Find(class); found != nil {
			return found
		}
	}
	return nil
}

// FindTag returns every descendant with the given tag, in document order.
func (e *Element) FindTag(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children() {
		if c.Tag() == tag {
			out = append(out, c)
		}
		out = append(out, c.FindTag(tag)...)
	}
	return out
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return sb.String()
}

// String renders the element and its subtree.
func (e *Element) String() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.n); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders the children of e.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}
