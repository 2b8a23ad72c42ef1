/*
Package passes implements the scoped name- and constant-binding passes of
§4.7: ExplicitScopes, ShadowNames, BindNamesToTypes, EvaluateConstants and
ResolveConstants, built atop ast.Pass/ast.DispatchPass for traversal and
pattern.Rewrite for the explicit-scoping rewrite.

ScopedPass tracks a stack of open scopes, growing on entry to a "unit"
or "fun" node and shrinking on exit, binding directly into an
ast.AstNode's own attrs rather than a separate runtime data structure —
binding the Scope's accumulated known_names/known_constants onto the
scope-owning node's Attrs at the moment its scope closes, so a later pass
can read them (a ScopedPass seeds each scope it opens from them).
ResolveConstants strips known_constants and codegen's FlattenSymbol strips
known_names from the unit node, per §3's "Scope
attribute maps are populated during a pass and stripped before the tree
leaves the pass that owns them."

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package passes

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sixc.passes'.
func tracer() tracing.Trace {
	return tracing.Select("sixc.passes")
}
