package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/sixc/ast"
)

// runREPL starts an interactive loop that tokenizes and parses each line
// against the demo grammar, printing the resulting AST as a tree. It is a
// sandbox for manually exercising hidden-channel skipping ('#...' comments)
// and the shift/reduce conflict resolution baked into the demo grammar's
// precedence declarations (e.g. "1 + 2 * 3" vs "(1 + 2) * 3").
func runREPL() error {
	table, err := buildDemoTable()
	if err != nil {
		return err
	}
	repl, err := readline.New("sixc> ")
	if err != nil {
		return err
	}
	defer repl.Close()

	pterm.Info.Println("sixc demo REPL — enter an expression, quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF, or ctrl-C
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		value, err := parseDemo(table, line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		node, ok := value.(*ast.AstNode)
		if !ok {
			pterm.Info.Println(fmt.Sprintf("%v", value))
			continue
		}
		root := treeNodeFrom(node)
		if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	println("Good bye!")
	return nil
}

// treeNodeFrom plays the role of an indentedListFrom/leveledElem pair,
// rendering an ast.AstNode tree as a pterm.TreeNode tree instead of an
// s-expression's leveled list.
func treeNodeFrom(n *ast.AstNode) pterm.TreeNode {
	node := pterm.TreeNode{Text: describeNode(n)}
	for _, c := range n.Children {
		child := treeNodeFrom(c)
		node.Children = append(node.Children, child)
	}
	return node
}

func describeNode(n *ast.AstNode) string {
	switch n.Kind {
	case "literal":
		v, _ := n.Attr("value")
		return fmt.Sprintf("%v", v)
	case "identifier":
		name, _ := n.Attr("name")
		return fmt.Sprintf("%v", name)
	default:
		return string(n.Kind)
	}
}

func exitOnError(err error) {
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
