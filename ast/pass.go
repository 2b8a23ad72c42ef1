package ast

import "fmt"

// EnterFunc is called on the way down the tree, before a node's children
// are visited. It may return a different node (e.g. one with an attribute
// added); the returned node's Children are what get recursed into.
type EnterFunc func(node *AstNode) *AstNode

// ExitFunc is called on the way back up, after a node's children have
// already been replaced by whatever its own ExitFunc calls produced. It
// returns the list of nodes to splice into the parent's children in this
// node's place — nil to delete the node, multiple to split it.
type ExitFunc func(node *AstNode) []*AstNode

// Pass dispatches Enter/Exit by node kind.
type Pass interface {
	Enter(kind Kind, node *AstNode) *AstNode
	Exit(kind Kind, node *AstNode) []*AstNode
}

// DispatchPass routes Enter/Exit calls through kind-keyed maps, a
// string-keyed dispatch table in place of per-kind virtual methods.
type DispatchPass struct {
	Enters map[Kind]EnterFunc
	Exits  map[Kind]ExitFunc
}

// NewDispatchPass returns an empty DispatchPass.
func NewDispatchPass() *DispatchPass {
	return &DispatchPass{Enters: map[Kind]EnterFunc{}, Exits: map[Kind]ExitFunc{}}
}

// OnEnter registers f to run on entering nodes of kind.
func (p *DispatchPass) OnEnter(kind Kind, f EnterFunc) { p.Enters[kind] = f }

// OnExit registers f to run on exiting nodes of kind.
func (p *DispatchPass) OnExit(kind Kind, f ExitFunc) { p.Exits[kind] = f }

// Enter implements Pass.
func (p *DispatchPass) Enter(kind Kind, node *AstNode) *AstNode {
	if f, ok := p.Enters[kind]; ok {
		return f(node)
	}
	return node
}

// Exit implements Pass.
func (p *DispatchPass) Exit(kind Kind, node *AstNode) []*AstNode {
	if f, ok := p.Exits[kind]; ok {
		return f(node)
	}
	return []*AstNode{node}
}

// Run drives pass over node in pre-order/post-order and returns the list of
// nodes node was replaced by in its parent (ordinarily exactly one).
func Run(pass Pass, node *AstNode) []*AstNode {
	tracer().Debugf("enter %s", node.Kind)
	node = pass.Enter(node.Kind, node)
	var newChildren []*AstNode
	for _, child := range node.Children {
		newChildren = append(newChildren, Run(pass, child)...)
	}
	node = node.Clone(WithChildren(newChildren))
	out := pass.Exit(node.Kind, node)
	tracer().Debugf("exit %s -> %d node(s)", node.Kind, len(out))
	return out
}

// RunUnit runs pass over root and returns the single resulting node. It
// panics if the pass spliced the root itself into zero or several nodes,
// which would leave no well-defined tree root.
func RunUnit(pass Pass, root *AstNode) *AstNode {
	tracer().Debugf("=== run pass over %s ===", root.Kind)
	out := Run(pass, root)
	if len(out) != 1 {
		panic(fmt.Sprintf("ast: pass produced %d root nodes for %s, want exactly 1", len(out), root.Kind))
	}
	return out[0]
}
