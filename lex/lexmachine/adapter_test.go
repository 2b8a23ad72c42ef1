package lexmachine_test

import (
	"testing"

	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/lex/lexmachine"
)

const (
	tokNum sixc.TokType = iota + 1
	tokPlus
	tokWS
)

func arithRules() []lexmachine.Rule {
	return []lexmachine.Rule{
		{Pattern: `[ \t\n]+`, Type: tokWS, Channel: sixc.ChannelHidden},
		{Pattern: `[0-9]+`, Type: tokNum, Channel: sixc.ChannelDefault},
		{Pattern: `\+`, Type: tokPlus, Channel: sixc.ChannelDefault},
	}
}

func TestAdapter_Scan_TokenizesAndTagsChannels(t *testing.T) {
	a, err := lexmachine.NewAdapter(arithRules())
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	toks, err := a.Scan("<test>", []byte("12 + 3"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []struct {
		typ    sixc.TokType
		text   string
		hidden bool
	}{
		{tokNum, "12", false},
		{tokWS, " ", true},
		{tokPlus, "+", false},
		{tokWS, " ", true},
		{tokNum, "3", false},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type() != w.typ || toks[i].Text() != w.text || toks[i].Channel().IsHidden() != w.hidden {
			t.Fatalf("token %d = %v %q hidden=%v, want type %v %q hidden=%v",
				i, toks[i].Type(), toks[i].Text(), toks[i].Channel().IsHidden(), w.typ, w.text, w.hidden)
		}
	}
}

func TestAdapter_Scan_UnconsumedInputInvokesErrorHandler(t *testing.T) {
	a, err := lexmachine.NewAdapter(arithRules())
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	var reported error
	a.SetErrorHandler(func(e error) { reported = e })
	toks, err := a.Scan("<test>", []byte("1@2"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if reported == nil {
		t.Fatalf("expected the error handler to be invoked for the unmatched '@'")
	}
	if len(toks) != 2 || toks[0].Text() != "1" || toks[1].Text() != "2" {
		t.Fatalf("Scan should recover past the bad byte and keep tokenizing, got %v", toks)
	}
}
