package lex

import (
	"fmt"

	"github.com/npillmayer/sixc"
)

// LexError is raised when no rule in the active mode matches at the
// current stream position and the stream is not exhausted. It is fatal to
// the current parse.
type LexError struct {
	Pos  sixc.Span
	Mode Mode
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex: no rule matches at %s (mode %d)", e.Pos, e.Mode)
}
