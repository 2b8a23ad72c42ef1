/*
Package lex implements a line-oriented, mode- and channel-aware lexer.

A Stream wraps a line-based input source and tracks a cursor (line, column).
A Lexer holds rules grouped by mode; calling it with a stream and a mode
tries that mode's rules in order at the current cursor position and
produces a Token on the rule's channel. Tokens on a non-default channel are
meant to be handed to an auxiliary grammar/parser (see the lr package's
hidden-channel dispatch); rewinding the single most recently produced token
back onto the stream makes that handoff possible.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lex
