package pattern

import (
	"github.com/npillmayer/sixc/ast"
)

// Var names a variable a pattern element captures into Bindings.
type Var string

// Bindings holds the captured variables of a successful match: a Var bound
// by a node element holds a *ast.AstNode, a Var bound by a run element
// holds a []*ast.AstNode.
type Bindings map[Var]interface{}

// Node returns the single node bound to v, panicking with a *PatternError
// if v was never declared by the pattern that produced b — the "pattern
// failed to bind a variable it declared" condition from §7.
func (b Bindings) Node(v Var) *ast.AstNode {
	val, ok := b[v]
	if !ok {
		panic(&PatternError{Var: v})
	}
	n, ok := val.(*ast.AstNode)
	if !ok {
		panic(&PatternError{Var: v, Msg: "bound to a node sequence, not a single node"})
	}
	return n
}

// Nodes returns the node sequence bound to v. An undeclared or never-taken
// run variable is treated as an empty sequence, matching "zero or more".
func (b Bindings) Nodes(v Var) []*ast.AstNode {
	val, ok := b[v]
	if !ok {
		return nil
	}
	n, ok := val.([]*ast.AstNode)
	if !ok {
		panic(&PatternError{Var: v, Msg: "bound to a single node, not a node sequence"})
	}
	return n
}

// Elem is one element of a sequence Pattern, matched against a run of a
// node's children.
type Elem interface {
	tryMatch(children []*ast.AstNode, ci int, rest []Elem, b Bindings) (int, bool)
}

// Pattern is an ordered sequence of Elem, matched in full against a node's
// entire Children slice (see MatchChildren).
type Pattern []Elem

// nodeElem is the literal/any_node element: AnyNode and NodeKind both
// produce one of these; Kind == "" matches any node kind.
type nodeElem struct {
	kind     ast.Kind
	v        Var
	children Pattern
}

func (e nodeElem) tryMatch(children []*ast.AstNode, ci int, rest []Elem, b Bindings) (int, bool) {
	if ci >= len(children) {
		return 0, false
	}
	node := children[ci]
	if e.kind != "" && node.Kind != e.kind {
		return 0, false
	}
	sub := Bindings{}
	if e.children != nil {
		if !matchFrom(e.children, node.Children, 0, sub) {
			return 0, false
		}
	}
	trial := cloneBindings(b)
	for k, v := range sub {
		trial[k] = v
	}
	if e.v != "" {
		trial[e.v] = node
	}
	if !matchFrom(rest, children, ci+1, trial) {
		return 0, false
	}
	for k, v := range trial {
		b[k] = v
	}
	return 1, true
}

// runElem is zero_or_more_nodes: a greedy, backtracking run of consecutive
// children whose kind is not in exclude.
type runElem struct {
	v       Var
	exclude map[ast.Kind]bool
}

func (e runElem) tryMatch(children []*ast.AstNode, ci int, rest []Elem, b Bindings) (int, bool) {
	max := 0
	for ci+max < len(children) && !e.excluded(children[ci+max].Kind) {
		max++
	}
	for n := max; n >= 0; n-- {
		trial := cloneBindings(b)
		if e.v != "" {
			trial[e.v] = append([]*ast.AstNode(nil), children[ci:ci+n]...)
		}
		if matchFrom(rest, children, ci+n, trial) {
			for k, v := range trial {
				b[k] = v
			}
			return n, true
		}
	}
	return 0, false
}

func (e runElem) excluded(k ast.Kind) bool { return e.exclude[k] }

func cloneBindings(b Bindings) Bindings {
	c := make(Bindings, len(b))
	for k, v := range b {
		c[k] = v
	}
	return c
}

// AnyNode matches a single node of any kind, capturing it under v (empty v
// captures nothing). withChildren, if non-nil, additionally requires the
// matched node's own children to fully match that sub-pattern.
func AnyNode(v Var, withChildren Pattern) Elem {
	return nodeElem{v: v, children: withChildren}
}

// NodeKind matches a single node of exactly kind, capturing it under v
// (empty v captures nothing), analogous to "AstNode(kind, var_pos,
// children=[...])" in §4.6.
func NodeKind(kind ast.Kind, v Var, withChildren Pattern) Elem {
	return nodeElem{kind: kind, v: v, children: withChildren}
}

// ZeroOrMoreNodes greedily matches a run of consecutive children whose kind
// is not among exclude, capturing the run under v.
func ZeroOrMoreNodes(v Var, exclude ...ast.Kind) Elem {
	ex := make(map[ast.Kind]bool, len(exclude))
	for _, k := range exclude {
		ex[k] = true
	}
	return runElem{v: v, exclude: ex}
}

// matchFrom tries to match pat[0:] against children[ci:], requiring the
// match to reach exactly the end of children.
func matchFrom(pat []Elem, children []*ast.AstNode, ci int, b Bindings) bool {
	if len(pat) == 0 {
		return ci == len(children)
	}
	consumed, ok := pat[0].tryMatch(children, ci, pat[1:], b)
	_ = consumed
	return ok
}

// MatchChildren tries pat against the entire children slice, returning the
// captured Bindings on success.
func MatchChildren(pat Pattern, children []*ast.AstNode) (Bindings, bool) {
	b := Bindings{}
	if !matchFrom(pat, children, 0, b) {
		return nil, false
	}
	return b, true
}

func (v Var) String() string { return string(v) }
