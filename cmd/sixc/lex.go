package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/lex/lexmachine"
)

// demoLexmachineRules mirrors demoLexer's token set, translated into
// lexmachine's POSIX-ish pattern syntax, so 'sixc lex' exercises the
// DFA-compiled Adapter as an alternate backend over the very same tokens
// the line-oriented lex.Lexer produces for every other subcommand.
func demoLexmachineRules() []lexmachine.Rule {
	return []lexmachine.Rule{
		{Pattern: `[ \t\n]+`, Type: tokWS, Channel: sixc.ChannelHidden},
		{Pattern: `#[^\n]*`, Type: tokComment, Channel: sixc.ChannelHidden},
		{Pattern: `[0-9]+`, Type: tokNumber, Channel: sixc.ChannelDefault},
		{Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Type: tokIdent, Channel: sixc.ChannelDefault},
		{Pattern: `\+`, Type: tokPlus, Channel: sixc.ChannelDefault},
		{Pattern: `-`, Type: tokMinus, Channel: sixc.ChannelDefault},
		{Pattern: `\*`, Type: tokStar, Channel: sixc.ChannelDefault},
		{Pattern: `/`, Type: tokSlash, Channel: sixc.ChannelDefault},
		{Pattern: `\(`, Type: tokLParen, Channel: sixc.ChannelDefault},
		{Pattern: `\)`, Type: tokRParen, Channel: sixc.ChannelDefault},
	}
}

// runLex tokenizes source with the lexmachine-backed Adapter rather than the
// line-oriented lex.Lexer used by 'explain'/'repl', and renders every token
// lexmachine's DFA produced, hidden-channel ones included, as a table.
func runLex(source string) error {
	adapter, err := lexmachine.NewAdapter(demoLexmachineRules())
	if err != nil {
		return fmt.Errorf("compiling lexmachine DFA: %w", err)
	}
	toks, err := adapter.Scan("<input>", []byte(source))
	if err != nil {
		return err
	}
	data := pterm.TableData{{"type", "text", "channel"}}
	for _, t := range toks {
		data = append(data, []string{tokTypeName(t.Type()), t.Text(), channelName(t.Channel())})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func tokTypeName(t sixc.TokType) string {
	switch t {
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "+"
	case tokMinus:
		return "-"
	case tokStar:
		return "*"
	case tokSlash:
		return "/"
	case tokLParen:
		return "("
	case tokRParen:
		return ")"
	case tokComment:
		return "comment"
	case tokWS:
		return "ws"
	default:
		return fmt.Sprintf("tok(%d)", t)
	}
}

func channelName(c sixc.Channel) string {
	if c.IsHidden() {
		return "hidden"
	}
	return "default"
}
