// Package value provides primitives for turning document nodes into field
// values.
//
// These helpers solve common problems:
//   - Choosing the full text or the term text of a node
//   - Whitespace trimming and collapsing
//   - Placeholder filtering ("-" entered where a term is unknown)
//   - Keeping document order and duplicates
package value

import (
	"strings"

	"github.com/lehigh-university-libraries/findingaid/document"
	"github.com/lehigh-university-libraries/findingaid/helpers"
)

// Extractor reads a string from a node.
type Extractor func(*document.Node) string

// FullText reads the text of the whole subtree.
func FullText(n *document.Node) string {
	return n.InnerText()
}

// TermText reads a controlled-access term. EAD3 terms carry their value in
// part children; those are joined with a space. Terms written as plain text
// fall back to the node's own text.
func TermText(n *document.Node) string {
	parts := n.ChildrenNamed("part")
	if len(parts) == 0 {
		return n.Text()
	}
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p.InnerText()); s != "" {
			texts = append(texts, s)
		}
	}
	return strings.Join(texts, " ")
}

// Attr returns an Extractor reading the named attribute.
func Attr(name string) Extractor {
	return func(n *document.Node) string {
		return n.AttrValue(name)
	}
}

// TextOption configures value cleanup.
type TextOption func(*textConfig)

type textConfig struct {
	trimSpace          bool
	collapseWhitespace bool
	keepEmpty          bool
	placeholder        string
}

// WithoutTrim keeps leading and trailing whitespace.
func WithoutTrim() TextOption {
	return func(c *textConfig) {
		c.trimSpace = false
	}
}

// WithCollapseWhitespace normalizes inner whitespace to single spaces.
func WithCollapseWhitespace() TextOption {
	return func(c *textConfig) {
		c.collapseWhitespace = true
	}
}

// WithoutPlaceholder drops values that equal p after trimming.
func WithoutPlaceholder(p string) TextOption {
	return func(c *textConfig) {
		c.placeholder = p
	}
}

// WithKeepEmpty keeps empty values.
func WithKeepEmpty() TextOption {
	return func(c *textConfig) {
		c.keepEmpty = true
	}
}

func newConfig(opts []TextOption) *textConfig {
	cfg := &textConfig{trimSpace: true}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *textConfig) clean(s string) (string, bool) {
	if c.placeholder != "" && strings.TrimSpace(s) == c.placeholder {
		return "", false
	}
	if c.collapseWhitespace {
		s = helpers.NormalizeWhitespace(s)
	} else if c.trimSpace {
		s = strings.TrimSpace(s)
	}
	if s == "" && !c.keepEmpty {
		return "", false
	}
	return s, true
}

// Clean applies the options to a single string. The boolean is false when the
// value should be dropped.
func Clean(s string, opts ...TextOption) (string, bool) {
	return newConfig(opts).clean(s)
}

// Collect extracts and cleans a value from every node, preserving order and
// duplicates. It returns nil when nothing survives.
func Collect(nodes []*document.Node, extract Extractor, opts ...TextOption) []string {
	cfg := newConfig(opts)
	var result []string
	for _, n := range nodes {
		if s, ok := cfg.clean(extract(n)); ok {
			result = append(result, s)
		}
	}
	return result
}

// First extracts and cleans the value of the first node, or "".
func First(nodes []*document.Node, extract Extractor, opts ...TextOption) string {
	if len(nodes) == 0 {
		return ""
	}
	s, _ := newConfig(opts).clean(extract(nodes[0]))
	return s
}
