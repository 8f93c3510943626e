// Package document provides a read-only tree view over parsed finding-aid XML.
//
// Nodes wrap xmlquery nodes and expose name-keyed access to children and
// attributes, so hyphenated and prefixed names (add-data, xlink:href) are
// matched exactly. Every accessor tolerates a nil receiver: a missing optional
// sub-tree reads as empty instead of panicking, which keeps field derivations
// free of presence checks.
package document

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Node is one element of a parsed document.
type Node struct {
	n *xmlquery.Node
}

// Parse reads an XML document and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return &Node{n: c}, nil
		}
	}
	return nil, fmt.Errorf("parsing XML: no root element")
}

// ParseString is Parse for in-memory documents.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// DefaultRecordElements are the element names treated as records when
// splitting a document.
var DefaultRecordElements = []string{"archdesc", "c"}

// ParseRecords reads an XML document and returns every outermost element whose
// name is one of names. Matches are not searched for nested records, so a
// stream of pre-split components or an OAI-PMH response both work. With no
// names, DefaultRecordElements is used.
func ParseRecords(r io.Reader, names ...string) ([]*Node, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return root.Records(names...), nil
}

// Records returns the outermost elements at or below n named one of names.
func (n *Node) Records(names ...string) []*Node {
	if n == nil {
		return []*Node{}
	}
	if len(names) == 0 {
		names = DefaultRecordElements
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[name] = true
	}

	records := []*Node{}
	var walk func(x *xmlquery.Node)
	walk = func(x *xmlquery.Node) {
		if x.Type == xmlquery.ElementNode && want[x.Data] {
			records = append(records, &Node{n: x})
			return
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
	return records
}

// Name returns the local tag name.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.n.Data
}

// Raw exposes the underlying xmlquery node.
func (n *Node) Raw() *xmlquery.Node {
	if n == nil {
		return nil
	}
	return n.n
}

// Attr looks up an attribute by exact name. A "prefix:local" name matches only
// attributes with that prefix; a bare name matches unprefixed attributes first
// and then any attribute with that local name.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	prefix, local := splitName(name)
	var fallback *xmlquery.Attr
	for i := range n.n.Attr {
		a := &n.n.Attr[i]
		if a.Name.Local != local {
			continue
		}
		if prefix != "" {
			if a.Name.Space == prefix {
				return a.Value, true
			}
			continue
		}
		if a.Name.Space == "" {
			return a.Value, true
		}
		if fallback == nil && a.Name.Space != "xmlns" {
			fallback = a
		}
	}
	if fallback != nil {
		return fallback.Value, true
	}
	return "", false
}

// AttrValue returns the attribute value or "".
func (n *Node) AttrValue(name string) string {
	v, _ := n.Attr(name)
	return v
}

// HasAttr reports whether the attribute is present with a non-empty value.
func (n *Node) HasAttr(name string) bool {
	return n.AttrValue(name) != ""
}

// Attrs returns the attributes keyed by their qualified name. Namespace
// declarations are left out.
func (n *Node) Attrs() map[string]string {
	attrs := make(map[string]string)
	if n == nil {
		return attrs
	}
	for _, a := range n.n.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		key := a.Name.Local
		if a.Name.Space != "" {
			key = a.Name.Space + ":" + key
		}
		attrs[key] = a.Value
	}
	return attrs
}

// Children returns the child elements in document order.
func (n *Node) Children() []*Node {
	children := []*Node{}
	if n == nil {
		return children
	}
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			children = append(children, &Node{n: c})
		}
	}
	return children
}

// ChildrenNamed returns the child elements with the given local name.
func (n *Node) ChildrenNamed(name string) []*Node {
	children := []*Node{}
	if n == nil {
		return children
	}
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			children = append(children, &Node{n: c})
		}
	}
	return children
}

// Child returns the first child element with the given local name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			return &Node{n: c}
		}
	}
	return nil
}

// Path follows a chain of child names, taking the first match at each step.
func (n *Node) Path(names ...string) *Node {
	cur := n
	for _, name := range names {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Text returns the node's direct text content, without descendant elements.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// InnerText returns the text content of the whole subtree.
func (n *Node) InnerText() string {
	if n == nil {
		return ""
	}
	return n.n.InnerText()
}

// Descendants returns every element below n in document order.
func (n *Node) Descendants() []*Node {
	out := []*Node{}
	if n == nil {
		return out
	}
	var walk func(x *xmlquery.Node)
	walk = func(x *xmlquery.Node) {
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode {
				out = append(out, &Node{n: c})
				walk(c)
			}
		}
	}
	walk(n.n)
	return out
}

// OutputXML serializes the node including its own tag.
func (n *Node) OutputXML() string {
	if n == nil {
		return ""
	}
	return n.n.OutputXML(true)
}

var interTagSpace = regexp.MustCompile(`>\s+<`)

// TrimmedXML serializes the node with whitespace between tags removed.
func (n *Node) TrimmedXML() string {
	return TrimXMLWhitespace(n.OutputXML())
}

// TrimXMLWhitespace removes whitespace between tags and at both ends.
func TrimXMLWhitespace(s string) string {
	return strings.TrimSpace(interTagSpace.ReplaceAllString(s, "><"))
}

func splitName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
