package passes

import "github.com/npillmayer/sixc/ast"

// CallTarget is a compile-time-known function a "call" node's "target"
// attribute may hold: given the call's argument nodes, it produces the
// node the call evaluates to.
type CallTarget func(args []*ast.AstNode) (*ast.AstNode, error)

// EvaluateConstants evaluates "constant" declarations at compile time, per
// §4.7: on entering a constant node it marks it "evaluating" (the flag is
// not read anywhere, and the node does not survive the pass, so no cycle
// detection happens); on exiting, it binds the constant's name to its
// first child in known_constants and removes the declaration node from the
// tree (splicing in no replacement). It also evaluates "call" nodes whose
// "target" attribute holds a known CallTarget, replacing the call with its
// result.
func EvaluateConstants() (*ScopedPass, error) {
	p := NewScopedPass()
	p.OnEnter("constant", func(node *ast.AstNode) *ast.AstNode {
		return node.Clone(ast.WithAttr("evaluating", true))
	})
	p.OnExit("constant", func(node *ast.AstNode) []*ast.AstNode {
		name, _ := node.Attr("name")
		if n, ok := name.(string); ok && len(node.Children) > 0 {
			p.BindConstant(n, node.Children[0])
		}
		return nil
	})
	p.OnExit("call", func(node *ast.AstNode) []*ast.AstNode {
		target, ok := node.Attr("target")
		if !ok {
			return []*ast.AstNode{node}
		}
		fn, ok := target.(CallTarget)
		if !ok {
			return []*ast.AstNode{node}
		}
		result, err := fn(node.Children)
		if err != nil {
			panic(&CallEvaluationError{Node: node, Err: err})
		}
		return []*ast.AstNode{result}
	})
	return p, nil
}

// CallEvaluationError wraps a CallTarget's error, recovered and returned
// by RunEvaluateConstants rather than left to propagate as a bare panic.
type CallEvaluationError struct {
	Node *ast.AstNode
	Err  error
}

func (e *CallEvaluationError) Error() string {
	return "passes: evaluating call to " + string(e.Node.Kind) + ": " + e.Err.Error()
}

func (e *CallEvaluationError) Unwrap() error { return e.Err }

// RunEvaluateConstants runs EvaluateConstants over root, returning the
// resulting tree or a *CallEvaluationError raised by a CallTarget.
func RunEvaluateConstants(root *ast.AstNode) (out *ast.AstNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*CallEvaluationError); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()
	p, perr := EvaluateConstants()
	if perr != nil {
		return nil, perr
	}
	out = ast.RunUnit(p, root)
	return out, nil
}
