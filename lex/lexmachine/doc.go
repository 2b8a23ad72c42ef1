/*
Package lexmachine adapts github.com/timtadh/lexmachine as an alternative
scanner backend for grammars whose lexical rules are stable across modes,
trading the line-oriented regex lexer's per-call rule scan for an
upfront-compiled DFA.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmachine
