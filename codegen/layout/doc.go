/*
Package layout implements the scope/slot bookkeeping AssignStorage drives:
a stack of named scopes, each holding named Slots. It plays the same role
an interpreter's variable-binding runtime would (a Tag/Scope/ScopeTree for
name resolution), adapted to the codegen domain — a binding becomes a Slot
carrying a storage.Storage instead of a runtime value, and ScopeTree walks
the same unit/fun nesting passes.ScopedPass walks over the AST rather than
an interpreter's call stack.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sixc.codegen.layout'.
func tracer() tracing.Trace {
	return tracing.Select("sixc.codegen.layout")
}
