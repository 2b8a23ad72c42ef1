package passes

import (
	"github.com/npillmayer/sixc/ast"
	"github.com/npillmayer/sixc/pattern"
)

// explicitScopeRule matches a run of non-let children, a let, and the rest
// of the sequence, and nests the let's own children followed by the rest
// under a single "let_scoped" node, per §4.7.
var explicitScopeRule = pattern.Rule{
	Name: "explicit-scope",
	Pattern: pattern.Pattern{
		pattern.ZeroOrMoreNodes("before", "let"),
		pattern.NodeKind("let", "let", nil),
		pattern.ZeroOrMoreNodes("after"),
	},
	Apply: func(_ []*ast.AstNode, b pattern.Bindings) ([]*ast.AstNode, error) {
		before := b.Nodes("before")
		let := b.Node("let")
		after := b.Nodes("after")
		inner := append(append([]*ast.AstNode{}, let.Children...), after...)
		scoped := ast.NewNode("let_scoped", let.Position, nil, inner...)
		return append(append([]*ast.AstNode{}, before...), scoped), nil
	},
}

// ExplicitScopes turns a flat run of sibling "let" declarations into
// explicitly nested "let_scoped" nodes, per §4.7: for any node whose
// children contain a "let" child, it splits children into "before"
// (everything preceding the first let) and "after" (everything following
// it), and replaces the let and "after" with a single let_scoped wrapping
// the let's own body followed by "after". It does not apply at the
// top-level "unit" node, whose declarations are globally in scope for the
// whole unit rather than lexically nested.
//
// The rewrite runs in pattern.Descending order: a produced let_scoped's
// children may themselves start with another "let" (the next declaration
// in the original run), so the rule is re-applied to it before recursing
// further, producing the fully nested chain.
func ExplicitScopes(root *ast.AstNode) (*ast.AstNode, error) {
	if root.Kind != "unit" {
		return pattern.Rewrite(explicitScopeRule, pattern.Descending, root)
	}
	children := make([]*ast.AstNode, len(root.Children))
	for i, c := range root.Children {
		rc, err := pattern.Rewrite(explicitScopeRule, pattern.Descending, c)
		if err != nil {
			return nil, err
		}
		children[i] = rc
	}
	return root.Clone(ast.WithChildren(children)), nil
}
