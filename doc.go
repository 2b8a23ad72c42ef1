/*
Package sixc is the core of a compiler front-end and code-generation
pipeline for a small systems-oriented language targeting the MOS 6502.

The module is organized as follows:

■ lex: a line-oriented, mode- and channel-aware regex lexer.

■ lr: an LALR(1)-style parser generator and runtime — grammar and item-set
construction, FIRST/FOLLOW computation, extended-grammar table assembly
with precedence/associativity conflict resolution, and a shift/reduce
driver supporting reentrant hidden-channel parsing.

■ ast: a dynamic, attribute-bag abstract syntax tree and a pre/post-order
visitor.

■ pattern: a declarative pattern-matching tree rewriter.

■ passes: scoped name/constant binding passes built atop ast and pattern.

■ storage, codegen: storage descriptors and machine-code emission for a
small 6502 instruction subset.

The base package contains data types used throughout all the other
packages: source spans, tokens and token types.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sixc
