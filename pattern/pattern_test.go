package pattern_test

import (
	"testing"

	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/ast"
	"github.com/npillmayer/sixc/pattern"
)

func leaf(kind ast.Kind, attrs ast.Attrs) *ast.AstNode {
	return ast.NewNode(kind, sixc.Span{}, attrs)
}

func TestMatchChildren_RunThenLiteralThenRun(t *testing.T) {
	children := []*ast.AstNode{
		leaf("print", nil),
		leaf("let", ast.Attrs{"name": "x"}),
		leaf("print", nil),
		leaf("print", nil),
	}
	pat := pattern.Pattern{
		pattern.ZeroOrMoreNodes("before", "let"),
		pattern.NodeKind("let", "theLet", nil),
		pattern.ZeroOrMoreNodes("after"),
	}
	b, ok := pattern.MatchChildren(pat, children)
	if !ok {
		t.Fatalf("expected match")
	}
	if got := len(b.Nodes("before")); got != 1 {
		t.Fatalf("before: got %d nodes, want 1", got)
	}
	if got := len(b.Nodes("after")); got != 2 {
		t.Fatalf("after: got %d nodes, want 2", got)
	}
	if b.Node("theLet").Kind != "let" {
		t.Fatalf("theLet: got kind %s", b.Node("theLet").Kind)
	}
}

func TestMatchChildren_NoLetFails(t *testing.T) {
	children := []*ast.AstNode{leaf("print", nil)}
	pat := pattern.Pattern{
		pattern.ZeroOrMoreNodes("before", "let"),
		pattern.NodeKind("let", "theLet", nil),
		pattern.ZeroOrMoreNodes("after"),
	}
	if _, ok := pattern.MatchChildren(pat, children); ok {
		t.Fatalf("expected no match")
	}
}

func TestBindings_NodesOfUnboundVarIsEmpty(t *testing.T) {
	b := pattern.Bindings{}
	if got := b.Nodes("missing"); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestBindings_NodeOfUnboundVarPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic")
		} else if _, ok := r.(*pattern.PatternError); !ok {
			t.Fatalf("expected *PatternError, got %T", r)
		}
	}()
	pattern.Bindings{}.Node("missing")
}

// letScopeRule mirrors passes.ExplicitScopes: it nests a "let" node and
// everything after it under a single "let_scoped" node, leaving anything
// before the let untouched.
var letScopeRule = pattern.Rule{
	Name: "let-scope",
	Pattern: pattern.Pattern{
		pattern.ZeroOrMoreNodes("before", "let"),
		pattern.NodeKind("let", "let", nil),
		pattern.ZeroOrMoreNodes("after"),
	},
	Apply: func(children []*ast.AstNode, b pattern.Bindings) ([]*ast.AstNode, error) {
		before := b.Nodes("before")
		let := b.Node("let")
		after := b.Nodes("after")
		scoped := ast.NewNode("let_scoped", let.Position, nil, append(append([]*ast.AstNode{}, let.Children...), after...)...)
		return append(append([]*ast.AstNode{}, before...), scoped), nil
	},
}

func TestRewrite_Descending_NestsConsecutiveLets(t *testing.T) {
	x := leaf("let", ast.Attrs{"name": "x"})
	x.Children = []*ast.AstNode{leaf("literal", ast.Attrs{"value": 1})}
	y := leaf("let", ast.Attrs{"name": "y"})
	y.Children = []*ast.AstNode{leaf("identifier", ast.Attrs{"name": "x"})}
	body := ast.NewNode("fun", sixc.Span{}, nil, x, y, leaf("print", ast.Attrs{"name": "y"}))

	out, err := pattern.Rewrite(letScopeRule, pattern.Descending, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Children) != 1 || out.Children[0].Kind != "let_scoped" {
		t.Fatalf("want single let_scoped child, got %v", out)
	}
	outer := out.Children[0]
	if len(outer.Children) != 2 || outer.Children[1].Kind != "let_scoped" {
		t.Fatalf("want nested let_scoped, got %v", outer)
	}
}

func TestRewrite_DescendingIsIdempotent(t *testing.T) {
	x := leaf("let", ast.Attrs{"name": "x"})
	x.Children = []*ast.AstNode{leaf("literal", ast.Attrs{"value": 1})}
	body := ast.NewNode("fun", sixc.Span{}, nil, x, leaf("print", nil))

	once, err := pattern.Rewrite(letScopeRule, pattern.Descending, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := pattern.Rewrite(letScopeRule, pattern.Descending, once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if once.String() != twice.String() {
		t.Fatalf("rewrite not idempotent:\n%s\nvs\n%s", once, twice)
	}
}
