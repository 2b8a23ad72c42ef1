package lr

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/sixc"
)

// GeneratorError reports a structural problem with a grammar or its derived
// tables: an ambiguous or missing starting rule, an unresolvable
// reduce/reduce or shift/reduce conflict, or a state whose partial items
// disagree on lexer mode.
type GeneratorError struct {
	Msg string
}

func (e *GeneratorError) Error() string { return "lr: " + e.Msg }

// ParseError reports a syntax error encountered while parsing: the input
// span where it occurred, the offending token text, and the set of
// terminals that would have been acceptable there.
type ParseError struct {
	Span       sixc.Span
	GotText    string
	Acceptable []*Symbol
}

func (e *ParseError) Error() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "syntax error at %s: unexpected %q", e.Span, e.GotText)
	if len(e.Acceptable) > 0 {
		b.WriteString(", expected one of ")
		for i, s := range e.Acceptable {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.Name)
		}
	}
	return b.String()
}
