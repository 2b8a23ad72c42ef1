/*
Package ast implements a dynamic abstract syntax tree: nodes carry a string
kind, a source span and a bag of named attributes rather than a fixed Go
struct per node type, the way a cons-cell tree carries its shape in its
data rather than in per-kind Go types, adapted here to a conventional
children-slice tree. Nodes are logically immutable; passes produce modified
copies via Clone rather than mutating in place.

Run and RunUnit drive a Pass over a tree in pre-order/post-order: Enter is
called on the way down, children are recursed into, and Exit is called on
the way up with the node's children already replaced by whatever its own
Exit calls produced — allowing a single node to be deleted (return nil) or
split into several (return multiple) as it is spliced back into its parent.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sixc.ast'.
func tracer() tracing.Trace {
	return tracing.Select("sixc.ast")
}
