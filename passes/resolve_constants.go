package passes

import "github.com/npillmayer/sixc/ast"

// ResolveConstants replaces "identifier" nodes with the value bound to
// their name by an enclosing "constant" declaration, per §4.7. It treats
// absence from the known_constants map as "not found" and leaves the
// identifier unchanged in that case, deliberately diverging from a
// truthiness check on the looked-up value (see §9's Open Questions): a
// constant bound to a falsy-but-present value (the integer 0, an empty
// string) must still resolve, which only an explicit "found" flag from
// LookupConstant can tell apart from "never declared".
//
// On leaving a scope, it strips known_constants from that scope's attrs so
// the binding information — needed only within this pass — does not leak
// to passes that run afterward.
func ResolveConstants() *ScopedPass {
	p := NewScopedPass()
	p.OnExit("identifier", func(node *ast.AstNode) []*ast.AstNode {
		name, _ := node.Attr("name")
		n, ok := name.(string)
		if !ok {
			return []*ast.AstNode{node}
		}
		value, found := p.LookupConstant(n)
		if !found {
			return []*ast.AstNode{node}
		}
		resolved, ok := value.(*ast.AstNode)
		if !ok {
			return []*ast.AstNode{node}
		}
		return []*ast.AstNode{resolved}
	})
	strip := func(node *ast.AstNode) []*ast.AstNode {
		return []*ast.AstNode{node.Clone(ast.WithoutAttr("known_constants"))}
	}
	p.OnExit("unit", strip)
	p.OnExit("fun", strip)
	return p
}

// RunResolveConstants runs ResolveConstants over root and returns the
// resulting tree.
func RunResolveConstants(root *ast.AstNode) *ast.AstNode {
	return ast.RunUnit(ResolveConstants(), root)
}
