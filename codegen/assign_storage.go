package codegen

import (
	"fmt"

	"github.com/npillmayer/sixc/ast"
	"github.com/npillmayer/sixc/codegen/layout"
	"github.com/npillmayer/sixc/storage"
)

// Option configures AssignStorage.
type Option func(*layoutState)

type layoutState struct {
	tree *layout.ScopeTree
	next int
}

// WithBaseAddress sets the first address AssignStorage allocates to a
// mutable variable; later variables are allocated sequentially above it.
// The default is 0x0200, the start of page two on a typical 6502 memory
// map, chosen to stay clear of the zero page and the stack page.
func WithBaseAddress(addr int) Option {
	return func(s *layoutState) { s.next = addr }
}

func typeWidth(typ interface{}) int {
	if s, ok := typ.(string); ok && s == "word" {
		return 2
	}
	return 1
}

func intAttr(node *ast.AstNode, name string) (int, bool) {
	v, ok := node.Attr(name)
	if !ok {
		return 0, false
	}
	i, ok := v.(int)
	return i, ok
}

// AssignStorage walks the unit/fun scope nesting assigning storage to
// every "constant" and "let_set!" declaration, in the declaration order
// the tree visits them, per SPEC_FULL.md's storage-assignment supplement
// to §4.8: a "constant" gets an ImmediateStorage holding its (already
// compile-time-evaluated) value, width taken from its declared type; a
// "let_set!" variable gets an AbsoluteStorage sequentially allocated from
// the configured base address. Instruction nodes (lda/sta/jmp) whose sole
// child is a "literal" or a resolvable "identifier" inherit the
// corresponding storage directly, so AssembleWithRelocations never has to
// chase a name through scopes itself.
func AssignStorage(root *ast.AstNode, opts ...Option) *ast.AstNode {
	st := &layoutState{tree: layout.NewScopeTree(), next: 0x0200}
	for _, opt := range opts {
		opt(st)
	}
	tracer().Debugf("=== assign storage over %s, base address $%04X ===", root.Kind, st.next)

	p := ast.NewDispatchPass()
	p.OnEnter("unit", func(n *ast.AstNode) *ast.AstNode {
		tracer().Debugf("push scope unit")
		st.tree.Push("unit")
		return n
	})
	p.OnEnter("fun", func(n *ast.AstNode) *ast.AstNode {
		name, _ := n.Attr("name")
		tracer().Debugf("push scope fun %v", name)
		st.tree.Push(fmt.Sprintf("fun %v", name))
		return n
	})
	p.OnExit("unit", func(n *ast.AstNode) []*ast.AstNode {
		tracer().Debugf("pop scope unit")
		st.tree.Pop()
		return []*ast.AstNode{n}
	})
	p.OnExit("fun", func(n *ast.AstNode) []*ast.AstNode {
		tracer().Debugf("pop scope fun")
		st.tree.Pop()
		return []*ast.AstNode{n}
	})

	p.OnExit("constant", func(n *ast.AstNode) []*ast.AstNode {
		name, _ := n.Attr("name")
		width := typeWidth(mustAttr(n, "type"))
		value, _ := valueOf(n)
		s := storage.NewImmediate(value, width)
		if nm, ok := name.(string); ok {
			st.tree.Current().Define(&layout.Slot{Name: nm, Storage: s})
		}
		tracer().Debugf("assign constant %v = immediate(%d, width %d)", name, value, width)
		return []*ast.AstNode{n.Clone(ast.WithAttr("storage", s))}
	})

	p.OnExit("let_set!", func(n *ast.AstNode) []*ast.AstNode {
		name, _ := n.Attr("name")
		width := typeWidth(mustAttr(n, "type"))
		addr := st.next
		st.next += width
		s := storage.NewAbsolute(addr, width)
		if nm, ok := name.(string); ok {
			st.tree.Current().Define(&layout.Slot{Name: nm, Storage: s})
		}
		tracer().Debugf("assign let_set! %v = absolute($%04X, width %d)", name, addr, width)
		return []*ast.AstNode{n.Clone(ast.WithAttr("storage", s))}
	})

	instrExit := func(n *ast.AstNode) []*ast.AstNode {
		if len(n.Children) != 1 {
			return []*ast.AstNode{n}
		}
		operand := n.Children[0]
		var s storage.Storage
		switch operand.Kind {
		case "literal":
			if v, ok := valueOf(operand); ok {
				s = storage.NewImmediate(v, 1)
			}
		case "identifier":
			if name, ok := operand.Attr("name"); ok {
				if slot, _ := st.tree.Current().Resolve(fmt.Sprint(name)); slot != nil {
					s = slot.Storage
				}
			}
		}
		if s == nil {
			tracer().Debugf("%s: no resolvable operand storage", n.Kind)
			return []*ast.AstNode{n}
		}
		tracer().Debugf("%s operand resolved to %v", n.Kind, s)
		return []*ast.AstNode{n.Clone(ast.WithAttr("storage", s))}
	}
	p.OnExit("lda", instrExit)
	p.OnExit("sta", instrExit)
	p.OnExit("jmp", instrExit)

	return ast.RunUnit(p, root)
}

func mustAttr(n *ast.AstNode, name string) interface{} {
	v, _ := n.Attr(name)
	return v
}

func valueOf(n *ast.AstNode) (int, bool) {
	if len(n.Children) == 0 {
		return intAttr(n, "value")
	}
	return intAttr(n.Children[0], "value")
}
