package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/lr"
)

// buildDemoTable wires the demo grammar together with its hidden
// whitespace/comment channel, the combination every other subcommand
// shares.
func buildDemoTable() (*lr.ActionGotoTable, error) {
	g, err := demoGrammar()
	if err != nil {
		return nil, fmt.Errorf("building demo grammar: %w", err)
	}
	hg, err := demoHiddenGrammar()
	if err != nil {
		return nil, fmt.Errorf("building hidden-channel grammar: %w", err)
	}
	tg := lr.NewTableGenerator(g, lr.WithHiddenChannel(sixc.ChannelHidden, hg))
	table, err := tg.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating tables: %w", err)
	}
	return table, nil
}

// runTables renders the demo grammar's CFSM as a tree: one branch per
// state, naming its item set and the transitions leaving it.
func runTables() error {
	table, err := buildDemoTable()
	if err != nil {
		return err
	}
	fp, err := lr.NewTableGenerator(table.G).Fingerprint()
	if err == nil {
		pterm.Info.Println(fmt.Sprintf("grammar %q, fingerprint %s", table.G.Name, fp))
	}

	edgesFrom := make(map[uint][]lr.Edge)
	for _, e := range table.Edges() {
		edgesFrom[e.From] = append(edgesFrom[e.From], e)
	}

	var root pterm.TreeNode
	root.Text = fmt.Sprintf("CFSM(%s)", table.G.Name)
	for _, s := range table.States() {
		label := fmt.Sprintf("s%d  %s", s.ID, table.DescribeState(s))
		if s.Accept {
			label += "  [accept]"
		}
		node := pterm.TreeNode{Text: label}
		for _, e := range edgesFrom[s.ID] {
			node.Children = append(node.Children, pterm.TreeNode{
				Text: fmt.Sprintf("--%s--> s%d", e.Label.Name, e.To),
			})
		}
		root.Children = append(root.Children, node)
	}
	return pterm.DefaultTree.WithRoot(root).Render()
}
