package ast

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/sixc"
)

// Kind names the syntactic category of a node ("unit", "fun", "constant",
// "let", "identifier", "call", ...). There is no fixed enumeration: grammars
// mint whatever kinds their MakeNodeFunc produces.
type Kind string

// Attrs is a node's bag of named, dynamically typed properties.
type Attrs map[string]interface{}

// AstNode is a single tree node: a kind, the source span it was parsed
// from, its attributes, and its children in order. Trees are logically
// immutable — passes never mutate a node's Attrs or Children in place, they
// build a modified node via Clone.
type AstNode struct {
	Kind     Kind
	Position sixc.Span
	Attrs    Attrs
	Children []*AstNode
}

// NewNode builds a node. A nil attrs is replaced with an empty map.
func NewNode(kind Kind, pos sixc.Span, attrs Attrs, children ...*AstNode) *AstNode {
	if attrs == nil {
		attrs = Attrs{}
	}
	return &AstNode{Kind: kind, Position: pos, Attrs: attrs, Children: append([]*AstNode(nil), children...)}
}

// Attr returns a named attribute and whether it was present.
func (n *AstNode) Attr(name string) (interface{}, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// CloneOption overrides a field of the node produced by Clone.
type CloneOption func(*AstNode)

// WithChildren replaces the cloned node's children.
func WithChildren(children []*AstNode) CloneOption {
	return func(n *AstNode) { n.Children = children }
}

// WithAttr sets (or overwrites) a single attribute on the cloned node.
func WithAttr(name string, value interface{}) CloneOption {
	return func(n *AstNode) { n.Attrs[name] = value }
}

// WithoutAttr removes a single attribute from the cloned node, if present.
func WithoutAttr(name string) CloneOption {
	return func(n *AstNode) { delete(n.Attrs, name) }
}

// Clone returns a structural copy of n: same Kind and Position, a copied
// Attrs map (so the clone's attributes can diverge from n's), and the same
// Children slice — since the tree is logically immutable, sharing child
// pointers between a node and its clone is safe — unless overridden by
// WithChildren.
func (n *AstNode) Clone(opts ...CloneOption) *AstNode {
	c := &AstNode{Kind: n.Kind, Position: n.Position, Attrs: make(Attrs, len(n.Attrs)), Children: n.Children}
	for k, v := range n.Attrs {
		c.Attrs[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (n *AstNode) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *AstNode) write(b *strings.Builder, depth int) {
	fmt.Fprintf(b, "%s%s", strings.Repeat("  ", depth), n.Kind)
	if len(n.Attrs) > 0 {
		fmt.Fprintf(b, " %s", n.sortedAttrString())
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}

// sortedAttrString renders Attrs in a stable key order, so two structurally
// equal nodes always print identically regardless of Go's randomized map
// iteration — relied on by tests that compare a pass's output textually.
func (n *AstNode) sortedAttrString() string {
	keys := maps.Keys(n.Attrs)
	slices.Sort(keys)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s:%v", k, n.Attrs[k])
	}
	b.WriteByte('}')
	return b.String()
}
