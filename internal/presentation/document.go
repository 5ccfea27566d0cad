package presentation

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed page. Renderers mutate it in place.
type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("html.Parse: %w", err)
	}
	return &Document{root: root}, nil
}

func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("html.Render: %w", err)
	}
	return nil
}

func (d *Document) String() string {
	var b strings.Builder
	_ = d.Render(&b)
	return b.String()
}

// ByID returns every element with the given id; pages may repeat an id.
func (d *Document) ByID(id string) []*html.Node {
	return d.findAll(func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
}

func (d *Document) FirstByID(id string) *html.Node {
	found := d.ByID(id)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func (d *Document) ByClass(class string) []*html.Node {
	return d.findAll(func(n *html.Node) bool {
		return hasClass(n, class)
	})
}

func (d *Document) WithAttr(key string) []*html.Node {
	return d.findAll(func(n *html.Node) bool {
		_, ok := attr(n, key)
		return ok
	})
}

func (d *Document) First(a atom.Atom) *html.Node {
	found := d.findAll(func(n *html.Node) bool {
		return n.DataAtom == a
	})
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func (d *Document) findAll(match func(*html.Node) bool) []*html.Node {
	return findAll(d.root, match)
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var result []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			result = append(result, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return result
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// textOf concatenates the text nodes under n.
func textOf(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return b.String()
}

// setText replaces the children of n with a single text node.
func setText(n *html.Node, text string) {
	removeChildren(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func removeChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textElement(a atom.Atom, text string, attrs ...string) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func appendChildren(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}
