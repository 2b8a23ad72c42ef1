/*
Package codegen implements §4.8's machine-code emission pass
(AssembleWithRelocations), the symbol-flattening pass that concatenates an
emitted function's bytes (FlattenSymbol), and AssignStorage, the storage
assignment pass §4.8 assumes has already run ("relies only on the storage
attribute already being filled in"), supplementing the distilled spec per
SPEC_FULL.md.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package codegen

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sixc.codegen'.
func tracer() tracing.Trace {
	return tracing.Select("sixc.codegen")
}
