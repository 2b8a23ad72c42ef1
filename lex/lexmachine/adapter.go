package lexmachine

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sixc"
	lm "github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

func tracer() tracing.Trace {
	return tracing.Select("sixc.lex.lexmachine")
}

// Adapter wraps a compiled lexmachine DFA and exposes it as a scanner
// builder. Unlike the line-oriented lex.Lexer, a single Adapter covers one
// mode only: grammars that require genuine mode switching should stay on
// lex.Lexer, reserving this adapter for single-mode lexical sets (e.g. a
// hidden-channel comment grammar) where DFA compile-once cost pays off.
type Adapter struct {
	lexer   *lm.Lexer
	errfunc func(error)
}

// NewAdapter compiles a DFA from rules: a list of (pattern, token type,
// channel) triples. Patterns are lexmachine regular expressions (POSIX-ish,
// not Go's regexp syntax).
func NewAdapter(rules []Rule) (*Adapter, error) {
	a := &Adapter{lexer: lm.NewLexer(), errfunc: func(error) {}}
	for _, r := range rules {
		r := r
		a.lexer.Add([]byte(r.Pattern), func(s *lm.Scanner, m *machines.Match) (interface{}, error) {
			return r, nil
		})
	}
	if err := a.lexer.Compile(); err != nil {
		return nil, err
	}
	return a, nil
}

// Rule is a single lexmachine rule: match Pattern, produce a token of Type
// on Channel.
type Rule struct {
	Pattern string
	Type    sixc.TokType
	Channel sixc.Channel
}

// SetErrorHandler installs a handler invoked for unconsumed-input errors
// encountered while scanning.
func (a *Adapter) SetErrorHandler(h func(error)) {
	if h == nil {
		h = func(error) {}
	}
	a.errfunc = h
}

// Scan runs the compiled DFA over input and returns every token produced,
// in source order, stopping at EOF. sourceID names input for diagnostics
// reported by the caller's error handler (see SetErrorHandler); the scanner
// itself does not inspect it.
func (a *Adapter) Scan(sourceID string, input []byte) ([]sixc.Token, error) {
	scanner, err := a.lexer.Scanner(input)
	if err != nil {
		return nil, err
	}
	var out []sixc.Token
	for {
		tok, err, eof := scanner.Next()
		if err != nil {
			a.errfunc(err)
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				scanner.TC = ui.FailTC
				continue
			}
			return out, err
		}
		if eof {
			return out, nil
		}
		mtok := tok.(*lm.Token)
		rule := mtok.Type.(Rule)
		span := sixc.NewSpan(mtok.StartLine, mtok.StartColumn, mtok.EndLine, mtok.EndColumn)
		tracer().Debugf("lexmachine matched %q as %v", string(mtok.Lexeme), rule.Type)
		out = append(out, lexToken{rule: rule, lexeme: string(mtok.Lexeme), span: span})
	}
}

type lexToken struct {
	rule   Rule
	lexeme string
	span   sixc.Span
}

var _ sixc.Token = lexToken{}

func (t lexToken) Type() sixc.TokType    { return t.rule.Type }
func (t lexToken) Text() string          { return t.lexeme }
func (t lexToken) Channel() sixc.Channel { return t.rule.Channel }
func (t lexToken) Span() sixc.Span       { return t.span }
func (t lexToken) Value() interface{}    { return nil }
