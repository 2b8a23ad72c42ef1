/*
Package pattern implements a small declarative pattern-match rewriter over
ast.AstNode trees: a Rule pairs a children-shape Pattern with an Apply
function, and Rewrite walks a tree applying the rule wherever its pattern
matches a node's children.

This is the usual pattern × rewriter × environment shape of a term
rewriter (Rewriter/RewriteRule/Match/RewriteWith), adapted from
term-rewriting over Lisp-like cons cells to matching over ast.AstNode's
Kind/Children shape.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pattern

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sixc.pattern'.
func tracer() tracing.Trace {
	return tracing.Select("sixc.pattern")
}
