package passes

import "github.com/npillmayer/sixc/ast"

// shadowed marks a name bound by ShadowNames; it carries no value of its
// own, it only occupies the slot so BindNamesToTypes and later passes can
// detect that a constant's name already shadows an enclosing binding.
type shadowed struct{ name string }

// ShadowNames binds every "constant" node's name to a placeholder in its
// enclosing scope, per §4.7, so later passes can detect shadowing of an
// outer name by a nested constant declaration.
func ShadowNames() *ScopedPass {
	p := NewScopedPass()
	p.OnExit("constant", func(node *ast.AstNode) []*ast.AstNode {
		name, _ := node.Attr("name")
		if n, ok := name.(string); ok {
			p.BindName(n, shadowed{name: n})
		}
		return []*ast.AstNode{node}
	})
	return p
}

// RunShadowNames runs ShadowNames over root and returns the resulting tree.
func RunShadowNames(root *ast.AstNode) *ast.AstNode {
	return ast.RunUnit(ShadowNames(), root)
}
