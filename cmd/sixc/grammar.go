package main

import (
	"strconv"

	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/ast"
	"github.com/npillmayer/sixc/lex"
	"github.com/npillmayer/sixc/lr"
)

// The demo grammar is a small expression language with a hidden comment
// channel, used by 'tables', 'explain' and 'repl' to exercise the core
// packages without committing to any full surface-language grammar (§1
// explicitly leaves that to a collaborator):
//
//	Start  ➞ Expr
//	Expr   ➞ Expr + Term  |  Expr - Term  |  Term
//	Term   ➞ Term * Factor  |  Term / Factor  |  Factor
//	Factor ➞ number  |  identifier  |  ( Expr )
//
// Whitespace and line comments starting with '#' (running to end of line)
// go to a hidden channel, demonstrating the hidden-channel reentrant parsing
// machinery with a trivial single-token auxiliary grammar.
const (
	tokNumber sixc.TokType = iota + 1
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokComment
	tokWS
)

func demoLexer() *lex.Lexer {
	return lex.NewLexer(sixc.EOF,
		lex.WithRule(lex.NormalMode, `\s+`, tokWS, sixc.ChannelHidden),
		lex.WithRule(lex.NormalMode, `#[^\n]*`, tokComment, sixc.ChannelHidden),
		lex.WithRule(lex.NormalMode, `[0-9]+`, tokNumber, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `[A-Za-z_][A-Za-z0-9_]*`, tokIdent, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\+`, tokPlus, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `-`, tokMinus, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\*`, tokStar, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `/`, tokSlash, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\(`, tokLParen, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\)`, tokRParen, sixc.ChannelDefault),
	)
}

// demoGrammar builds the expression grammar described above, with + - at
// precedence 1 (left-assoc) and * / at precedence 2 (left-assoc), so the
// generator's shift/reduce resolution (see lr.resolveShiftReduce) gives the
// conventional binding.
func demoGrammar() (*lr.Grammar, error) {
	b := lr.NewBuilder("demo")

	number := b.Terminal("number", tokNumber)
	ident := b.Terminal("identifier", tokIdent)
	plus := b.Terminal("+", tokPlus)
	minus := b.Terminal("-", tokMinus)
	star := b.Terminal("*", tokStar)
	slash := b.Terminal("/", tokSlash)
	lparen := b.Terminal("(", tokLParen)
	rparen := b.Terminal(")", tokRParen)
	eof := b.Terminal("eof", sixc.EOF)

	b.TerminalPrecedence(plus, 1, false)
	b.TerminalPrecedence(minus, 1, false)
	b.TerminalPrecedence(star, 2, false)
	b.TerminalPrecedence(slash, 2, false)

	start := b.NonTerminal("Start")
	expr := b.NonTerminal("Expr")
	term := b.NonTerminal("Term")
	factor := b.NonTerminal("Factor")

	b.Rule(start, []*lr.Symbol{expr})
	b.Rule(expr, []*lr.Symbol{expr, plus, term}, lr.Precedence(1))
	b.Rule(expr, []*lr.Symbol{expr, minus, term}, lr.Precedence(1))
	b.Rule(expr, []*lr.Symbol{term})
	b.Rule(term, []*lr.Symbol{term, star, factor}, lr.Precedence(2))
	b.Rule(term, []*lr.Symbol{term, slash, factor}, lr.Precedence(2))
	b.Rule(term, []*lr.Symbol{factor})
	b.Rule(factor, []*lr.Symbol{number})
	b.Rule(factor, []*lr.Symbol{ident})
	b.Rule(factor, []*lr.Symbol{lparen, expr, rparen})

	return b.Build(start, eof)
}

// demoMakeNode builds an *ast.AstNode for every reduction, so 'repl' can
// render a real parse tree. Terminal values are those demoTermValue
// produces: leaf AST nodes for numbers and identifiers, the token text for
// everything else.
func demoMakeNode(rule lr.Rule, children []interface{}, span sixc.Span) (interface{}, error) {
	switch len(rule.RHS) {
	case 1:
		if n, ok := children[0].(*ast.AstNode); ok {
			return n, nil
		}
		return children[0], nil
	case 3:
		op, ok := children[1].(string)
		if !ok {
			// a parenthesized factor: ( Expr ) — drop the parens, keep Expr
			return children[1], nil
		}
		return ast.NewNode(ast.Kind(op), span, nil, asNode(children[0]), asNode(children[2])), nil
	default:
		return nil, nil
	}
}

func asNode(v interface{}) *ast.AstNode {
	if n, ok := v.(*ast.AstNode); ok {
		return n
	}
	return ast.NewNode("literal", sixc.Span{}, ast.Attrs{"value": v})
}

// demoHiddenGrammar builds the single-token auxiliary grammar for the
// hidden whitespace/comment channel: "HiddenStart -> Skip" with "Skip -> ws"
// or "Skip -> comment", with every terminal of either channel listed as an
// end symbol so that FOLLOW(Skip) accepts whatever token happens to come
// next (the sub-parser only ever consumes the one hidden token it was
// rewound onto).
func demoHiddenGrammar() (*lr.Grammar, error) {
	b := lr.NewBuilder("demo-hidden")
	ws := b.Terminal("ws", tokWS)
	comment := b.Terminal("comment", tokComment)
	start := b.NonTerminal("HiddenStart")
	skip := b.NonTerminal("Skip")
	b.Rule(start, []*lr.Symbol{skip})
	b.Rule(skip, []*lr.Symbol{ws})
	b.Rule(skip, []*lr.Symbol{comment})

	follow := []*lr.Symbol{
		ws,
		comment,
		b.Terminal("number", tokNumber),
		b.Terminal("identifier", tokIdent),
		b.Terminal("+", tokPlus),
		b.Terminal("-", tokMinus),
		b.Terminal("*", tokStar),
		b.Terminal("/", tokSlash),
		b.Terminal("(", tokLParen),
		b.Terminal(")", tokRParen),
		b.Terminal("eof", sixc.EOF),
	}
	return b.Build(start, follow...)
}

// valueSource wraps a Lexer/Stream pair, filling in each visible token's
// Value() with demoTermValue's AST-friendly representation before handing
// it to the parser; *lr.LexerSource leaves Value() nil since the core
// lexer has no notion of a grammar-specific value.
type valueSource struct {
	lexer  *lex.Lexer
	stream *lex.Stream
}

func (v *valueSource) Next(mode lex.Mode) (sixc.Token, error) {
	tok, err := v.lexer.Next(v.stream, mode)
	if err != nil {
		return nil, err
	}
	return lex.NewToken(tok.Type(), tok.Text(), tok.Channel(), tok.Span(), demoTermValue(tok)), nil
}

func (v *valueSource) Rewind(tok sixc.Token) { v.stream.Rewind(tok) }

// demoTermValue converts a shifted terminal's text into the value handed to
// demoMakeNode: numbers become "literal" leaf AST nodes holding the parsed
// int, identifiers become "identifier" leaf AST nodes, and everything else
// (operators, parentheses) passes through as its text.
func demoTermValue(tok sixc.Token) interface{} {
	switch tok.Type() {
	case tokNumber:
		v, _ := strconv.Atoi(tok.Text())
		return ast.NewNode("literal", tok.Span(), ast.Attrs{"value": v})
	case tokIdent:
		return ast.NewNode("identifier", tok.Span(), ast.Attrs{"name": tok.Text()})
	default:
		return tok.Text()
	}
}
