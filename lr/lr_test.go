package lr_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/ast"
	"github.com/npillmayer/sixc/lex"
	"github.com/npillmayer/sixc/lr"
)

const (
	tokNum sixc.TokType = iota + 1
	tokPlus
	tokStar
	tokLParen
	tokRParen
)

// buildArithGrammar mirrors the demo grammar cmd/sixc builds, at a scale
// small enough to hand-check: Expr -> Expr + Term | Term, Term -> Term *
// num | num | ( Expr ), with '*' binding tighter than '+'.
func buildArithGrammar(t *testing.T) *lr.Grammar {
	t.Helper()
	b := lr.NewBuilder("arith")
	num := b.Terminal("num", tokNum)
	plus := b.Terminal("+", tokPlus)
	star := b.Terminal("*", tokStar)
	lparen := b.Terminal("(", tokLParen)
	rparen := b.Terminal(")", tokRParen)
	eof := b.Terminal("eof", sixc.EOF)
	b.TerminalPrecedence(plus, 1, false)
	b.TerminalPrecedence(star, 2, false)

	start := b.NonTerminal("Start")
	expr := b.NonTerminal("Expr")
	term := b.NonTerminal("Term")

	b.Rule(start, []*lr.Symbol{expr})
	b.Rule(expr, []*lr.Symbol{expr, plus, term}, lr.Precedence(1))
	b.Rule(expr, []*lr.Symbol{term})
	b.Rule(term, []*lr.Symbol{term, star, num}, lr.Precedence(2))
	b.Rule(term, []*lr.Symbol{num})
	b.Rule(term, []*lr.Symbol{lparen, expr, rparen})

	g, err := b.Build(start, eof)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestBuild_NoStartRuleIsError(t *testing.T) {
	b := lr.NewBuilder("empty")
	s := b.NonTerminal("S")
	a := b.NonTerminal("A")
	b.Rule(a, nil)
	if _, err := b.Build(s); err == nil {
		t.Fatalf("expected error for a grammar with no rule for the start symbol")
	}
}

func TestBuild_MultipleStartRulesIsError(t *testing.T) {
	b := lr.NewBuilder("dup")
	s := b.NonTerminal("S")
	a := b.NonTerminal("A")
	b.Rule(s, []*lr.Symbol{a})
	b.Rule(s, []*lr.Symbol{a})
	if _, err := b.Build(s); err == nil {
		t.Fatalf("expected error for two rules with the start symbol as LHS")
	}
}

func TestBuild_StartRuleMustBeSingleSymbol(t *testing.T) {
	b := lr.NewBuilder("bad-start")
	s := b.NonTerminal("S")
	a, c := b.NonTerminal("A"), b.NonTerminal("C")
	b.Rule(s, []*lr.Symbol{a, c})
	if _, err := b.Build(s); err == nil {
		t.Fatalf("expected error for a starting rule with more than one RHS symbol")
	}
}

func countingLexer() *lex.Lexer {
	return lex.NewLexer(sixc.EOF,
		lex.WithRule(lex.NormalMode, `\s+`, 0, sixc.ChannelHidden),
		lex.WithRule(lex.NormalMode, `[0-9]+`, tokNum, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\+`, tokPlus, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\*`, tokStar, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\(`, tokLParen, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\)`, tokRParen, sixc.ChannelDefault),
	)
}

// sumValues reduces by summing children for + rules and multiplying for *
// rules, so the test can assert on the computed arithmetic value rather
// than inspecting a tree.
func sumValues(rule lr.Rule, children []interface{}, span sixc.Span) (interface{}, error) {
	switch len(rule.RHS) {
	case 1:
		return children[0], nil
	case 3:
		switch op := children[1]; op {
		case "+":
			return children[0].(int) + children[2].(int), nil
		case "*":
			return children[0].(int) * children[2].(int), nil
		default:
			return children[1], nil // ( Expr )
		}
	default:
		return nil, nil
	}
}

func parseArith(t *testing.T, table *lr.ActionGotoTable, input string) (interface{}, error) {
	t.Helper()
	stream, err := lex.NewStream("<test>", strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	lx := countingLexer()
	src := &tokenValueSource{lexer: lx, stream: stream}
	return table.Parse(src, sumValues)
}

// tokenValueSource fills in each terminal's Value() (its text, or a parsed
// int for numbers) before handing it to the parser, since the plain lexer
// always produces a nil value.
type tokenValueSource struct {
	lexer  *lex.Lexer
	stream *lex.Stream
}

func (v *tokenValueSource) Next(mode lex.Mode) (sixc.Token, error) {
	tok, err := v.lexer.Next(v.stream, mode)
	if err != nil {
		return nil, err
	}
	var value interface{} = tok.Text()
	if tok.Type() == tokNum {
		n := 0
		for _, r := range tok.Text() {
			n = n*10 + int(r-'0')
		}
		value = n
	}
	return lex.NewToken(tok.Type(), tok.Text(), tok.Channel(), tok.Span(), value), nil
}

func (v *tokenValueSource) Rewind(tok sixc.Token) { v.stream.Rewind(tok) }

func TestGenerate_PrecedenceBindsStarTighterThanPlus(t *testing.T) {
	g := buildArithGrammar(t)
	table, err := lr.NewTableGenerator(g).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	value, err := parseArith(t, table, "2+3*4")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if value != 14 {
		t.Fatalf("2 + 3 * 4 = %v, want 14 (precedence not honored)", value)
	}
}

func TestGenerate_ParenthesesOverridePrecedence(t *testing.T) {
	g := buildArithGrammar(t)
	table, err := lr.NewTableGenerator(g).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	value, err := parseArith(t, table, "(2+3)*4")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if value != 20 {
		t.Fatalf("(2 + 3) * 4 = %v, want 20", value)
	}
}

// buildAmbiguousSumGrammar mirrors spec.md §8 Concrete Scenarios 1/2
// directly: "S -> E; E -> E + n | n" is genuinely ambiguous on its own (a
// run of '+'s has no unique parse), so the generator's every shift/reduce
// on '+' is resolved purely by precedence/associativity, and the resulting
// tree shape is a direct readout of which rule rightAssoc picks.
func buildAmbiguousSumGrammar(t *testing.T, rightAssoc bool) *lr.Grammar {
	t.Helper()
	b := lr.NewBuilder("ambiguous-sum")
	num := b.Terminal("num", tokNum)
	plus := b.Terminal("+", tokPlus)
	eof := b.Terminal("eof", sixc.EOF)
	b.TerminalPrecedence(plus, 10, rightAssoc)

	start := b.NonTerminal("Start")
	expr := b.NonTerminal("Expr")

	b.Rule(start, []*lr.Symbol{expr})
	opts := []lr.RuleOption{lr.Precedence(10)}
	if rightAssoc {
		opts = append(opts, lr.RightAssociative())
	}
	b.Rule(expr, []*lr.Symbol{expr, plus, expr}, opts...)
	b.Rule(expr, []*lr.Symbol{num})

	g, err := b.Build(start, eof)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

// makeSumTree builds a "+"/"num" ast.AstNode tree for every reduction, so
// the test can read off the parse's associativity from its shape instead of
// its (associativity-blind, since '+' commutes) arithmetic value.
func makeSumTree(rule lr.Rule, children []interface{}, span sixc.Span) (interface{}, error) {
	if len(rule.RHS) == 1 {
		return children[0], nil
	}
	left, _ := children[0].(*ast.AstNode)
	right, _ := children[2].(*ast.AstNode)
	return ast.NewNode("+", span, nil, left, right), nil
}

// parenthesize renders a makeSumTree result as a fully-parenthesized
// expression, e.g. "(n+(n+n))", so the associativity a parse chose is
// visible directly in the string.
func parenthesize(v interface{}) string {
	n, ok := v.(*ast.AstNode)
	if !ok || n.Kind != "+" {
		return "n"
	}
	return "(" + parenthesize(n.Children[0]) + "+" + parenthesize(n.Children[1]) + ")"
}

func TestGenerate_LeftAssociativeSumNestsToTheLeft(t *testing.T) {
	g := buildAmbiguousSumGrammar(t, false)
	table, err := lr.NewTableGenerator(g).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	tree := parseSumTree(t, table, "1+2+3")
	if got, want := parenthesize(tree), "((n+n)+n)"; got != want {
		t.Fatalf("left-associative '+' parsed as %s, want %s", got, want)
	}
}

func TestGenerate_RightAssociativeSumNestsToTheRight(t *testing.T) {
	g := buildAmbiguousSumGrammar(t, true)
	table, err := lr.NewTableGenerator(g).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	tree := parseSumTree(t, table, "1+2+3")
	if got, want := parenthesize(tree), "(n+(n+n))"; got != want {
		t.Fatalf("right-associative '+' parsed as %s, want %s", got, want)
	}
}

// parseSumTree parses input against table using makeSumTree, with leaf
// terminals carrying a "num" ast.AstNode so the tree's shape (not its
// value) can be inspected.
func parseSumTree(t *testing.T, table *lr.ActionGotoTable, input string) *ast.AstNode {
	t.Helper()
	stream, err := lex.NewStream("<test>", strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	src := &sumTreeValueSource{lexer: countingLexer(), stream: stream}
	value, err := table.Parse(src, makeSumTree)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	node, ok := value.(*ast.AstNode)
	if !ok {
		t.Fatalf("Parse result is %T, want *ast.AstNode", value)
	}
	return node
}

// sumTreeValueSource fills in each "num" terminal's Value() with a leaf
// ast.AstNode, so makeSumTree's type assertions on children[0]/children[2]
// succeed uniformly whether a child came from a shift or an earlier reduce.
type sumTreeValueSource struct {
	lexer  *lex.Lexer
	stream *lex.Stream
}

func (v *sumTreeValueSource) Next(mode lex.Mode) (sixc.Token, error) {
	tok, err := v.lexer.Next(v.stream, mode)
	if err != nil {
		return nil, err
	}
	var value interface{} = tok.Text()
	if tok.Type() == tokNum {
		value = ast.NewNode("num", tok.Span(), ast.Attrs{"text": tok.Text()})
	}
	return lex.NewToken(tok.Type(), tok.Text(), tok.Channel(), tok.Span(), value), nil
}

func (v *sumTreeValueSource) Rewind(tok sixc.Token) { v.stream.Rewind(tok) }

func TestParse_SyntaxErrorReportsSortedAcceptableSymbols(t *testing.T) {
	g := buildArithGrammar(t)
	table, err := lr.NewTableGenerator(g).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	_, err = parseArith(t, table, "2+")
	if err == nil {
		t.Fatalf("expected a syntax error for a dangling '+'")
	}
	perr, ok := err.(*lr.ParseError)
	if !ok {
		t.Fatalf("want *lr.ParseError, got %T: %v", err, err)
	}
	if len(perr.Acceptable) == 0 {
		t.Fatalf("expected at least one acceptable symbol to be reported")
	}
	for i := 1; i < len(perr.Acceptable); i++ {
		if perr.Acceptable[i-1].Name > perr.Acceptable[i].Name {
			t.Fatalf("Acceptable not sorted: %v", perr.Acceptable)
		}
	}
}

func TestFingerprint_StableAcrossRegeneration(t *testing.T) {
	g := buildArithGrammar(t)
	fp1, err := lr.NewTableGenerator(g).Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	fp2, err := lr.NewTableGenerator(g).Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fp1 != fp2 {
		t.Fatalf("fingerprint changed across regenerations of the same grammar: %s != %s", fp1, fp2)
	}
}
