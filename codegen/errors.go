package codegen

import (
	"fmt"

	"github.com/npillmayer/sixc/ast"
	"github.com/npillmayer/sixc/storage"
)

// AssemblyError reports that an instruction received an operand of
// unsupported storage kind or width, per §4.8/§7. It is fatal to the
// current unit's emission.
type AssemblyError struct {
	Opcode   ast.Kind
	Storage  storage.Storage
	Expected string
}

func (e *AssemblyError) Error() string {
	if e.Storage == nil {
		return fmt.Sprintf("codegen: %s: no storage assigned to operand", e.Opcode)
	}
	return fmt.Sprintf("codegen: %s: expected %s, got %s", e.Opcode, e.Expected, e.Storage)
}

// NotImplementedError marks an instruction/storage combination §7 names as
// a distinct error kind from AssemblyError: one the grammar declares but
// whose handling isn't wired up, as opposed to one that is wired but was
// given operands it can never accept.
type NotImplementedError struct {
	Opcode ast.Kind
	Detail string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("codegen: %s: not implemented: %s", e.Opcode, e.Detail)
}
