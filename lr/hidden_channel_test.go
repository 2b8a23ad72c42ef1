package lr_test

import (
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/lex"
	"github.com/npillmayer/sixc/lr"
)

const (
	tokComment sixc.TokType = 100
	tokWS      sixc.TokType = 101
)

// commentLexer is countingLexer extended with a '#'-to-end-of-line comment
// on the hidden channel, exercising the reentrant hidden-channel machinery
// described in §4.7.
func commentLexer() *lex.Lexer {
	return lex.NewLexer(sixc.EOF,
		lex.WithRule(lex.NormalMode, `\s+`, tokWS, sixc.ChannelHidden),
		lex.WithRule(lex.NormalMode, `#[^\n]*`, tokComment, sixc.ChannelHidden),
		lex.WithRule(lex.NormalMode, `[0-9]+`, tokNum, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\+`, tokPlus, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\*`, tokStar, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\(`, tokLParen, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\)`, tokRParen, sixc.ChannelDefault),
	)
}

func commentHiddenGrammar(t *testing.T) *lr.Grammar {
	t.Helper()
	b := lr.NewBuilder("comment-hidden")
	comment := b.Terminal("comment", tokComment)
	ws := b.Terminal("ws", tokWS)
	start := b.NonTerminal("HiddenStart")
	skip := b.NonTerminal("Skip")
	b.Rule(start, []*lr.Symbol{skip})
	b.Rule(skip, []*lr.Symbol{comment})
	b.Rule(skip, []*lr.Symbol{ws})
	follow := []*lr.Symbol{
		comment,
		ws,
		b.Terminal("num", tokNum),
		b.Terminal("+", tokPlus),
		b.Terminal("*", tokStar),
		b.Terminal("(", tokLParen),
		b.Terminal(")", tokRParen),
		b.Terminal("eof", sixc.EOF),
	}
	g, err := b.Build(start, follow...)
	if err != nil {
		t.Fatalf("Build hidden grammar: %v", err)
	}
	return g
}

// fixtures bundles a table of "expression (as the file name) => expected
// value (as the file body)" cases in a single txtar archive, the format
// the corpus uses throughout for grammar/source/golden-output test
// fixtures (see SPEC_FULL.md's test-tooling section).
const fixtures = `
-- 2+3 --
5
-- 2+3*4 --
14
-- (2+3)*4 --
20
-- 1+2 # trailing line comment --
3
`

func TestHiddenChannel_SkipsCommentsAcrossFixtures(t *testing.T) {
	arch := txtar.Parse([]byte(fixtures))
	if len(arch.Files) == 0 {
		t.Fatalf("fixture archive has no files")
	}
	g := buildArithGrammar(t)
	hg := commentHiddenGrammar(t)
	table, err := lr.NewTableGenerator(g, lr.WithHiddenChannel(sixc.ChannelHidden, hg)).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, f := range arch.Files {
		input := f.Name
		want, err := strconv.Atoi(strings.TrimSpace(string(f.Data)))
		if err != nil {
			t.Fatalf("fixture %q: bad expected value %q: %v", input, f.Data, err)
		}
		stream, err := lex.NewStream("<fixture>", strings.NewReader(input))
		if err != nil {
			t.Fatalf("fixture %q: NewStream: %v", input, err)
		}
		src := &tokenValueSource{lexer: commentLexer(), stream: stream}
		got, err := table.Parse(src, sumValues)
		if err != nil {
			t.Fatalf("fixture %q: Parse: %v", input, err)
		}
		if got != want {
			t.Fatalf("fixture %q = %v, want %d", input, got, want)
		}
	}
}
