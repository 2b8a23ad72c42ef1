package codegen

import "github.com/npillmayer/sixc/ast"

// FlattenSymbol builds an ast.Pass implementing §4.8's FlattenSymbol:
// exit_fun concatenates every child's "data" byte sequence (with no
// inter-instruction padding, per §6) into a single "fun_symbol" node
// carrying the function's name, declared type and emitted bytes; exit_unit
// clones the unit node and strips its "known_names" attribute, the last
// step of the pipeline that needs it.
func FlattenSymbol() *ast.DispatchPass {
	p := ast.NewDispatchPass()

	p.OnExit("fun", func(node *ast.AstNode) []*ast.AstNode {
		var text []byte
		for _, child := range node.Children {
			if v, ok := child.Attr("data"); ok {
				if b, ok := v.([]byte); ok {
					text = append(text, b...)
				}
			}
		}
		name, _ := node.Attr("name")
		typ, _ := node.Attr("type")
		attrs := ast.Attrs{"name": name, "type": typ, "text": text}
		if ra, ok := node.Attr("return_addr"); ok {
			attrs["return_addr"] = ra
		}
		sym := ast.NewNode("fun_symbol", node.Position, attrs)
		return []*ast.AstNode{sym}
	})

	p.OnExit("unit", func(node *ast.AstNode) []*ast.AstNode {
		return []*ast.AstNode{node.Clone(ast.WithoutAttr("known_names"))}
	})

	return p
}

// Flatten runs FlattenSymbol over root and returns the resulting tree.
func Flatten(root *ast.AstNode) *ast.AstNode {
	return ast.RunUnit(FlattenSymbol(), root)
}
