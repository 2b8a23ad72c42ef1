package codegen

import (
	"github.com/npillmayer/sixc/ast"
	"github.com/npillmayer/sixc/storage"
)

// InstructionSizes gives the declared byte size of each supported opcode,
// per §4.8 — used by upstream storage-layout passes to resolve absolute
// addresses before emission runs; AssembleWithRelocations itself relies
// only on each node's "storage" attribute already being filled in.
var InstructionSizes = map[ast.Kind]int{
	"lda": 2,
	"sta": 3,
	"jmp": 3,
	"rts": 1,
}

func readStorage(node *ast.AstNode) storage.Storage {
	v, ok := node.Attr("storage")
	if !ok {
		return nil
	}
	s, _ := v.(storage.Storage)
	return s
}

func littleEndian(addr int) (lo, hi byte) {
	return byte(addr & 0xFF), byte((addr >> 8) & 0xFF)
}

// AssembleWithRelocations builds an ast.Pass that emits machine-code bytes
// for the four supported opcodes (lda, sta, jmp, rts), per §4.8. Every
// emitted node receives a "data" attribute holding its []byte encoding; an
// instruction whose operand storage doesn't match what the opcode requires
// raises an *AssemblyError (for a storage kind/width the opcode simply
// cannot take) or a *NotImplementedError (for a combination the grammar
// allows but whose handling was never wired up), recovered and returned by
// Assemble rather than left to propagate as a bare panic.
func AssembleWithRelocations() *ast.DispatchPass {
	p := ast.NewDispatchPass()

	p.OnExit("lda", func(node *ast.AstNode) []*ast.AstNode {
		s := readStorage(node)
		imm, ok := s.(storage.ImmediateStorage)
		if !ok {
			panic(&AssemblyError{Opcode: node.Kind, Storage: s, Expected: "immediate, width 1"})
		}
		if imm.Width() != 1 {
			panic(&AssemblyError{Opcode: node.Kind, Storage: s, Expected: "immediate, width 1"})
		}
		data := []byte{0xA9, byte(imm.Value)}
		tracer().Debugf("lda %v -> % X", imm.Value, data)
		return []*ast.AstNode{node.Clone(ast.WithAttr("data", data))}
	})

	p.OnExit("sta", func(node *ast.AstNode) []*ast.AstNode {
		s := readStorage(node)
		abs, ok := s.(storage.AbsoluteStorage)
		if !ok || abs.Width() != 1 {
			panic(&AssemblyError{Opcode: node.Kind, Storage: s, Expected: "absolute, width 1"})
		}
		if !abs.Resolved() {
			panic(&NotImplementedError{Opcode: node.Kind, Detail: "unresolved absolute address"})
		}
		lo, hi := littleEndian(abs.Address)
		data := []byte{0x8D, lo, hi}
		tracer().Debugf("sta $%04X -> % X", abs.Address, data)
		return []*ast.AstNode{node.Clone(ast.WithAttr("data", data))}
	})

	p.OnExit("jmp", func(node *ast.AstNode) []*ast.AstNode {
		s := readStorage(node)
		abs, ok := s.(storage.AbsoluteStorage)
		if !ok {
			panic(&AssemblyError{Opcode: node.Kind, Storage: s, Expected: "absolute"})
		}
		if !abs.Resolved() {
			panic(&NotImplementedError{Opcode: node.Kind, Detail: "unresolved absolute address"})
		}
		lo, hi := littleEndian(abs.Address)
		data := []byte{0x4C, lo, hi}
		tracer().Debugf("jmp $%04X -> % X", abs.Address, data)
		return []*ast.AstNode{node.Clone(ast.WithAttr("data", data))}
	})

	p.OnExit("rts", func(node *ast.AstNode) []*ast.AstNode {
		tracer().Debugf("rts -> 60")
		return []*ast.AstNode{node.Clone(ast.WithAttr("data", []byte{0x60}))}
	})

	return p
}

// Assemble runs AssembleWithRelocations over root, converting a recovered
// *AssemblyError/*NotImplementedError panic into a returned error.
func Assemble(root *ast.AstNode) (out *ast.AstNode, err error) {
	tracer().Debugf("=== assemble %s ===", root.Kind)
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *AssemblyError:
				tracer().Debugf("assemble failed: %v", e)
				err = e
			case *NotImplementedError:
				tracer().Debugf("assemble failed: %v", e)
				err = e
			default:
				panic(r)
			}
		}
	}()
	out = ast.RunUnit(AssembleWithRelocations(), root)
	return out, nil
}
