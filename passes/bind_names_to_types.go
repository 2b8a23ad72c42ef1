package passes

import "github.com/npillmayer/sixc/ast"

// BindNamesToTypes binds every "constant" node's name to its declared type
// in the enclosing scope, per §4.7, so downstream passes can answer
// "what type does this name have" without re-walking declarations.
func BindNamesToTypes() *ScopedPass {
	p := NewScopedPass()
	p.OnExit("constant", func(node *ast.AstNode) []*ast.AstNode {
		name, _ := node.Attr("name")
		typ, _ := node.Attr("type")
		if n, ok := name.(string); ok {
			p.BindName(n, typ)
		}
		return []*ast.AstNode{node}
	})
	return p
}

// RunBindNamesToTypes runs BindNamesToTypes over root and returns the
// resulting tree.
func RunBindNamesToTypes(root *ast.AstNode) *ast.AstNode {
	return ast.RunUnit(BindNamesToTypes(), root)
}
