package document

import (
	"fmt"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

var exprCache sync.Map // string -> *xpath.Expr

// Compile compiles and caches an XPath expression.
func Compile(path string) (*xpath.Expr, error) {
	if cached, ok := exprCache.Load(path); ok {
		return cached.(*xpath.Expr), nil
	}
	expr, err := xpath.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("compiling path %q: %w", path, err)
	}
	exprCache.Store(path, expr)
	return expr, nil
}

// MustCompile is Compile for package-level path constants.
func MustCompile(path string) *xpath.Expr {
	expr, err := Compile(path)
	if err != nil {
		panic(err)
	}
	return expr
}

// Query evaluates an XPath expression relative to n and returns the matching
// elements in document order. It never returns nil; an invalid path or a nil
// node yields an empty result.
func (n *Node) Query(path string) []*Node {
	expr, err := Compile(path)
	if err != nil {
		return []*Node{}
	}
	return n.Select(expr)
}

// Select is Query for a precompiled expression.
func (n *Node) Select(expr *xpath.Expr) []*Node {
	out := []*Node{}
	if n == nil || expr == nil {
		return out
	}
	for _, m := range xmlquery.QuerySelectorAll(n.n, expr) {
		if m.Type == xmlquery.ElementNode {
			out = append(out, &Node{n: m})
		}
	}
	return out
}

// QueryOne returns the first element matching path, or nil.
func (n *Node) QueryOne(path string) *Node {
	if nodes := n.Query(path); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}
