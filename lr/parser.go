package lr

import (
	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/lex"
)

// TokenSource supplies tokens to a Parser and allows exactly one token —
// the one most recently produced — to be pushed back, the mechanism the
// parser uses to hand a hidden-channel token over to an auxiliary parser
// and resume afterwards. *lex.Stream paired with a *lex.Lexer satisfies
// this via LexerSource.
type TokenSource interface {
	Next(mode lex.Mode) (sixc.Token, error)
	Rewind(tok sixc.Token)
}

// LexerSource adapts a Lexer/Stream pair to TokenSource.
type LexerSource struct {
	Lexer  *lex.Lexer
	Stream *lex.Stream
}

// Next implements TokenSource.
func (s *LexerSource) Next(mode lex.Mode) (sixc.Token, error) {
	return s.Lexer.Next(s.Stream, mode)
}

// Rewind implements TokenSource.
func (s *LexerSource) Rewind(tok sixc.Token) { s.Stream.Rewind(tok) }

// MakeNodeFunc builds whatever value a reduction by rule produces, given
// the values previously produced for its RHS symbols (by shift, for
// terminals, or by an earlier MakeNodeFunc call, for nonterminals) and the
// span covering them. It is also called for the accepting reduction of the
// grammar's starting rule, whose result becomes Parse's return value.
type MakeNodeFunc func(rule Rule, children []interface{}, span sixc.Span) (interface{}, error)

// Parse drives the shift/reduce automaton described by t, pulling tokens
// from src and building values via makeNode. Tokens on a hidden channel are
// rewound and handed to that channel's registered sub-table (see
// WithHiddenChannel) before the driver resumes on the visible stream. On
// accept, the lookahead token that followed the accepted input is rewound
// onto src, so a sub-parser consumes only the tokens of its own input.
func (t *ActionGotoTable) Parse(src TokenSource, makeNode MakeNodeFunc) (interface{}, error) {
	stateStack := []uint{t.StartState()}
	var valueStack []interface{}
	var spanStack []sixc.Span

	lookahead, err := nextSkippingHidden(src, t, t.Mode(t.StartState()))
	if err != nil {
		return nil, err
	}

	for {
		state := stateStack[len(stateStack)-1]
		sym, ok := t.G.TerminalForToken(lookahead.Type())
		if !ok {
			return nil, t.parseErrorAt(state, lookahead)
		}
		action, ok := t.Action(state, sym)
		if !ok {
			return nil, t.parseErrorAt(state, lookahead)
		}

		switch action.Kind {
		case ActionShift:
			stateStack = append(stateStack, action.State)
			valueStack = append(valueStack, lookahead.Value())
			spanStack = append(spanStack, lookahead.Span())
			lookahead, err = nextSkippingHidden(src, t, t.Mode(action.State))
			if err != nil {
				return nil, err
			}

		case ActionReduce, ActionAccept:
			rule := t.G.Rules[action.Rule]
			n := len(rule.RHS)
			var children []interface{}
			var span sixc.Span
			if n > 0 {
				children = append([]interface{}(nil), valueStack[len(valueStack)-n:]...)
				span = sixc.Cover(spanStack[len(spanStack)-n:]...)
				stateStack = stateStack[:len(stateStack)-n]
				valueStack = valueStack[:len(valueStack)-n]
				spanStack = spanStack[:len(spanStack)-n]
			} else {
				span = epsilonSpan(spanStack, lookahead)
			}
			value, err := makeNode(rule, children, span)
			if err != nil {
				return nil, err
			}
			if action.Kind == ActionAccept {
				src.Rewind(lookahead)
				return value, nil
			}
			back := stateStack[len(stateStack)-1]
			gotoAction, ok := t.Action(back, rule.LHS)
			if !ok || gotoAction.Kind != ActionGoto {
				return nil, &GeneratorError{Msg: "internal: no goto from state after reducing rule " + rule.String()}
			}
			stateStack = append(stateStack, gotoAction.State)
			valueStack = append(valueStack, value)
			spanStack = append(spanStack, span)

		default:
			return nil, t.parseErrorAt(state, lookahead)
		}
	}
}

// epsilonSpan computes the (zero-width) span for a reduction of an empty
// RHS: it starts where the most recently pushed value's span ended, or, if
// nothing has been pushed yet, where the lookahead token begins.
func epsilonSpan(spanStack []sixc.Span, lookahead sixc.Token) sixc.Span {
	if len(spanStack) > 0 {
		last := spanStack[len(spanStack)-1]
		return sixc.NewSpan(last.EndLine, last.EndCol, last.EndLine, last.EndCol)
	}
	s := lookahead.Span()
	return sixc.NewSpan(s.StartLine, s.StartCol, s.StartLine, s.StartCol)
}

// nextSkippingHidden fetches the next visible-channel token, transparently
// running any hidden-channel content it encounters through that channel's
// registered sub-parser first.
func nextSkippingHidden(src TokenSource, t *ActionGotoTable, mode lex.Mode) (sixc.Token, error) {
	for {
		tok, err := src.Next(mode)
		if err != nil {
			return nil, err
		}
		if !tok.Channel().IsHidden() {
			return tok, nil
		}
		ht, ok := t.Hidden[tok.Channel()]
		if !ok {
			return tok, nil
		}
		src.Rewind(tok)
		noop := func(Rule, []interface{}, sixc.Span) (interface{}, error) { return nil, nil }
		if _, err := ht.Parse(src, noop); err != nil {
			return nil, err
		}
	}
}

func (t *ActionGotoTable) parseErrorAt(state uint, tok sixc.Token) *ParseError {
	return &ParseError{Span: tok.Span(), GotText: tok.Text(), Acceptable: t.AcceptableSymbols(state)}
}
