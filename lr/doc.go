/*
Package lr implements an LALR(1)-style parser generator and runtime.

Construction proceeds in the stages of the "extended grammar" method
(Pager/DeRemer): build the LR(0) characteristic finite-state machine (CFSM)
via item-set closure and goto, derive a translation table of state
transitions, use that table to annotate every symbol of every rule with the
states it connects (the extended grammar), compute FIRST/FOLLOW over the
extended grammar so FOLLOW sets are state-context-sensitive rather than
global, merge extended rules that land on the same final state, and
assemble ACTION/GOTO tables with precedence- and associativity-driven
conflict resolution.

The resulting tables drive a shift/reduce Parser that supports reentrant
parsing of hidden channels (e.g. comments): on encountering a token whose
channel does not match, the parser rewinds it and hands the stream to an
auxiliary parser for that channel before resuming.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sixc.lr'.
func tracer() tracing.Trace {
	return tracing.Select("sixc.lr")
}
