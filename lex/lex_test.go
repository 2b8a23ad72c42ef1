package lex_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/lex"
)

const (
	tokNum sixc.TokType = iota + 1
	tokPlus
	tokWS
)

func arithLexer() *lex.Lexer {
	return lex.NewLexer(sixc.EOF,
		lex.WithRule(lex.NormalMode, `\s+`, tokWS, sixc.ChannelHidden),
		lex.WithRule(lex.NormalMode, `[0-9]+`, tokNum, sixc.ChannelDefault),
		lex.WithRule(lex.NormalMode, `\+`, tokPlus, sixc.ChannelDefault),
	)
}

func TestLexer_Next_TokenizesAndProducesEOF(t *testing.T) {
	stream, err := lex.NewStream("<test>", strings.NewReader("12+3"))
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	lx := arithLexer()

	var kinds []sixc.TokType
	for {
		tok, err := lx.Next(stream, lex.NormalMode)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		kinds = append(kinds, tok.Type())
		if tok.Type() == sixc.EOF {
			break
		}
	}
	want := []sixc.TokType{tokNum, tokPlus, tokNum, sixc.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %v", len(kinds), kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestLexer_Next_NoRuleMatchIsLexError(t *testing.T) {
	stream, err := lex.NewStream("<test>", strings.NewReader("@"))
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	_, err = arithLexer().Next(stream, lex.NormalMode)
	if err == nil {
		t.Fatalf("expected a LexError for an unmatched character")
	}
	if _, ok := err.(*lex.LexError); !ok {
		t.Fatalf("want *lex.LexError, got %T: %v", err, err)
	}
}

func TestStream_RewindRestoresCursor(t *testing.T) {
	stream, err := lex.NewStream("<test>", strings.NewReader("12+3"))
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	lx := arithLexer()

	first, err := lx.Next(stream, lex.NormalMode)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if first.Type() != tokNum || first.Text() != "12" {
		t.Fatalf("first token = %v %q, want tokNum \"12\"", first.Type(), first.Text())
	}
	stream.Rewind(first)

	again, err := lx.Next(stream, lex.NormalMode)
	if err != nil {
		t.Fatalf("Next after Rewind: %v", err)
	}
	if again.Type() != tokNum || again.Text() != "12" {
		t.Fatalf("token after rewind = %v %q, want the same tokNum \"12\"", again.Type(), again.Text())
	}
}

func TestStream_RewindOfStaleTokenPanics(t *testing.T) {
	stream, err := lex.NewStream("<test>", strings.NewReader("12+3"))
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	lx := arithLexer()

	first, err := lx.Next(stream, lex.NormalMode)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := lx.Next(stream, lex.NormalMode); err != nil {
		t.Fatalf("Next: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Rewind of a non-most-recent token to panic")
		}
	}()
	stream.Rewind(first)
}

func TestStream_HiddenChannelTokensAreReported(t *testing.T) {
	stream, err := lex.NewStream("<test>", strings.NewReader(" 1"))
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	tok, err := arithLexer().Next(stream, lex.NormalMode)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if tok.Type() != tokWS || !tok.Channel().IsHidden() {
		t.Fatalf("leading whitespace should come back as a hidden-channel token, got type %v channel %v", tok.Type(), tok.Channel())
	}
}

func TestNewToken_RoundTripsFields(t *testing.T) {
	span := sixc.NewSpan(1, 1, 1, 3)
	tok := lex.NewToken(tokNum, "42", sixc.ChannelDefault, span, 42)
	if tok.Type() != tokNum || tok.Text() != "42" || tok.Channel() != sixc.ChannelDefault || tok.Span() != span || tok.Value() != 42 {
		t.Fatalf("NewToken did not round-trip its fields: %+v", tok)
	}
}
