/*
Command sixc is a thin driver around the sixc core, exploring a small demo
grammar (arithmetic with a comment side-channel) rather than any full
surface-language grammar, which §1 explicitly leaves to a collaborator.

Subcommands:

    sixc tables          dump the demo grammar's CFSM as a tree
    sixc explain EXPR     parse EXPR, printing a caret diagram on a syntax error
    sixc repl             interactively tokenize/parse lines against it
    sixc lex EXPR         tokenize EXPR with the lexmachine DFA backend

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sixc.cmd'.
func tracer() tracing.Trace {
	return tracing.Select("sixc.cmd")
}
