package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/npillmayer/sixc/lex"
	"github.com/npillmayer/sixc/lr"
)

// runExplain parses source against the demo grammar and, on a syntax
// error, prints a caret diagram under the offending column alongside the
// set of terminals that would have been acceptable there.
func runExplain(source string) error {
	table, err := buildDemoTable()
	if err != nil {
		return err
	}
	_, err = parseDemo(table, source)
	if err == nil {
		pterm.Info.Println("parsed without error")
		return nil
	}
	perr, ok := err.(*lr.ParseError)
	if !ok {
		pterm.Error.Println(err.Error())
		return err
	}
	printCaret(source, perr)
	return nil
}

func printCaret(source string, perr *lr.ParseError) {
	lines := strings.Split(source, "\n")
	line := perr.Span.StartLine - 1
	col := perr.Span.StartCol - 1
	pterm.Error.Println(fmt.Sprintf("syntax error at line %d, column %d: unexpected %q",
		perr.Span.StartLine, perr.Span.StartCol, perr.GotText))
	if line >= 0 && line < len(lines) {
		pterm.Println(lines[line])
		if col >= 0 {
			pterm.Println(strings.Repeat(" ", col) + "^")
		}
	}
	if len(perr.Acceptable) > 0 {
		names := make([]string, len(perr.Acceptable))
		for i, s := range perr.Acceptable {
			names[i] = s.Name
		}
		pterm.Info.Println(fmt.Sprintf("expected one of: %s", strings.Join(names, ", ")))
	}
}

// parseDemo tokenizes source and drives table's Parse, using demoMakeNode
// to build an AST and a valueSource to fill in token values.
func parseDemo(table *lr.ActionGotoTable, source string) (interface{}, error) {
	stream, err := lex.NewStream("<input>", strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	src := &valueSource{lexer: demoLexer(), stream: stream}
	return table.Parse(src, demoMakeNode)
}
