package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/tracing"
)

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  sixc",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func main() {
	initDisplay()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Usage = usage
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "tables":
		err = runTables()
	case "explain":
		err = runExplain(strings.Join(args[1:], " "))
	case "repl":
		err = runREPL()
	case "lex":
		err = runLex(strings.Join(args[1:], " "))
	default:
		fmt.Fprintf(os.Stderr, "sixc: unknown subcommand %q\n", args[0])
		usage()
		os.Exit(2)
	}
	exitOnError(err)
}

func usage() {
	fmt.Fprintln(os.Stderr, `sixc explores the core lexer/parser/pass/codegen packages against a small
built-in demo grammar (arithmetic with a hidden comment channel), not any
full surface-language grammar.

Usage:

    sixc tables              dump the demo grammar's CFSM as a tree
    sixc explain EXPR        parse EXPR, printing a caret diagram on error
    sixc repl                interactively tokenize/parse lines against it
    sixc lex EXPR            tokenize EXPR with the lexmachine DFA backend
`)
}
