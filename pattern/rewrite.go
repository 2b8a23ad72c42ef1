package pattern

import "github.com/npillmayer/sixc/ast"

// Order selects when a rewrite's result is itself offered to further
// matching relative to descending into the node's (possibly rewritten)
// children, per §4.6.
type Order int

const (
	// Ascending rewrites children first, then repeatedly re-applies the
	// rule to the node built from the rewritten children until no further
	// match is found.
	Ascending Order = iota
	// Descending repeatedly re-applies the rule to a node before
	// descending into its (rewritten) children — required when a rewrite
	// produces a new structural scope (e.g. a nested let_scoped) that
	// should itself be offered to the same rule again.
	Descending
)

// Apply builds the replacement children for a node whose Children matched
// Pattern, given the Bindings the match captured. It must not return an
// error except for conditions an author cannot have prevented by writing
// a correct pattern — use Bindings.Node/Nodes, which panic on a
// genuinely unbound variable, for that case instead.
type Apply func(children []*ast.AstNode, b Bindings) ([]*ast.AstNode, error)

// Rule pairs a children-shape Pattern with the rewrite it triggers.
type Rule struct {
	Name    string
	Pattern Pattern
	Apply   Apply
}

// Rewrite applies rule to node and, recursively, to its descendants,
// honoring order. A *PatternError panic surfacing from rule.Apply's use of
// Bindings is recovered and returned as an error instead — per §7, a
// PatternError indicates a programming error in the rule, not a condition
// callers are expected to recover from structurally. Any other panic is
// re-raised unchanged.
func Rewrite(rule Rule, order Order, node *ast.AstNode) (out *ast.AstNode, err error) {
	tracer().Debugf("=== rewrite %q over %s (order %v) ===", rule.Name, node.Kind, order)
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*PatternError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()
	switch order {
	case Descending:
		return rewriteDescending(rule, node)
	default:
		return rewriteAscending(rule, node)
	}
}

func applyOnce(rule Rule, node *ast.AstNode) (*ast.AstNode, bool, error) {
	b, ok := MatchChildren(rule.Pattern, node.Children)
	if !ok {
		return node, false, nil
	}
	tracer().Debugf("%q matched %s, applying", rule.Name, node.Kind)
	children, err := rule.Apply(node.Children, b)
	if err != nil {
		return nil, false, err
	}
	return node.Clone(ast.WithChildren(children)), true, nil
}

func fixpoint(rule Rule, node *ast.AstNode) (*ast.AstNode, error) {
	for {
		next, matched, err := applyOnce(rule, node)
		if err != nil {
			return nil, err
		}
		if !matched {
			return node, nil
		}
		node = next
	}
}

func rewriteDescending(rule Rule, node *ast.AstNode) (*ast.AstNode, error) {
	node, err := fixpoint(rule, node)
	if err != nil {
		return nil, err
	}
	newChildren := make([]*ast.AstNode, len(node.Children))
	for i, c := range node.Children {
		rc, err := rewriteDescending(rule, c)
		if err != nil {
			return nil, err
		}
		newChildren[i] = rc
	}
	return node.Clone(ast.WithChildren(newChildren)), nil
}

func rewriteAscending(rule Rule, node *ast.AstNode) (*ast.AstNode, error) {
	newChildren := make([]*ast.AstNode, len(node.Children))
	for i, c := range node.Children {
		rc, err := rewriteAscending(rule, c)
		if err != nil {
			return nil, err
		}
		newChildren[i] = rc
	}
	node = node.Clone(ast.WithChildren(newChildren))
	return fixpoint(rule, node)
}
