package lr

import (
	"fmt"

	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/lex"
)

// Symbol is either a terminal, whose identity is a token type value, or a
// nonterminal, whose identity is an interned name. Use Grammar.Terminal /
// Grammar.NonTerminal to obtain Symbols so that equal names/token types map
// to the same *Symbol (identity comparison via == is used throughout item
// construction).
type Symbol struct {
	Name       string
	terminal   bool
	tok        sixc.TokType
	Prec       int
	HasPrec    bool
	RightAssoc bool
}

// IsTerminal reports whether s is a terminal symbol.
func (s *Symbol) IsTerminal() bool { return s.terminal }

// TokenType returns the token type a terminal symbol corresponds to. It
// panics if called on a nonterminal.
func (s *Symbol) TokenType() sixc.TokType {
	if !s.terminal {
		panic(fmt.Sprintf("lr: TokenType() of non-terminal %q", s.Name))
	}
	return s.tok
}

func (s *Symbol) String() string { return s.Name }

// Rule is a production lhs → rhs, optionally carrying a precedence, a
// right-associativity flag and a lexer mode. Pointer marks an LR item's dot
// position when >= 0; -1 means "this is a bare rule, not an item".
type Rule struct {
	Serial     int
	LHS        *Symbol
	RHS        []*Symbol
	Prec       int
	HasPrec    bool
	RightAssoc bool
	Mode       lex.Mode
	Pointer    int
}

func notAnItem(serial int, lhs *Symbol, rhs []*Symbol) Rule {
	return Rule{Serial: serial, LHS: lhs, RHS: rhs, Pointer: -1}
}

// AsItem returns r with the dot placed at position 0.
func (r Rule) AsItem() Rule {
	r.Pointer = 0
	return r
}

// IsItem reports whether r carries a dot position.
func (r Rule) IsItem() bool { return r.Pointer >= 0 }

// AtEnd reports whether the dot has reached the end of the RHS.
func (r Rule) AtEnd() bool {
	return r.Pointer >= len(r.RHS)
}

// NextSymbol returns the symbol immediately after the dot, or nil if r is
// not an item or the dot is at the end.
func (r Rule) NextSymbol() *Symbol {
	if !r.IsItem() || r.AtEnd() {
		return nil
	}
	return r.RHS[r.Pointer]
}

// Advance returns a copy of r with the dot moved one position to the
// right. Panics if r is not an item or the dot is already at the end.
func (r Rule) Advance() Rule {
	if !r.IsItem() || r.AtEnd() {
		panic("lr: Advance() of a rule with no next symbol")
	}
	r.Pointer++
	return r
}

// Prefix returns the RHS symbols already shifted over (before the dot).
func (r Rule) Prefix() []*Symbol {
	return r.RHS[:r.Pointer]
}

func (r Rule) String() string {
	rhs := ""
	for i, s := range r.RHS {
		if r.IsItem() && i == r.Pointer {
			rhs += "."
		}
		rhs += s.Name + " "
	}
	if r.IsItem() && r.Pointer == len(r.RHS) {
		rhs += "."
	}
	return fmt.Sprintf("%s -> %s", r.LHS.Name, rhs)
}

// Grammar is an immutable collection of rules over a set of terminal and
// nonterminal symbols, with a single starting rule and a set of
// end-of-input symbols.
type Grammar struct {
	Name        string
	Start       *Symbol
	EndSymbols  []*Symbol
	Rules       []Rule
	symbols     map[string]*Symbol
	tokIndex    map[sixc.TokType]*Symbol
	startRuleNo int
}

// TerminalForToken looks up the grammar's terminal symbol corresponding to a
// lexer token type, as produced by Builder.Terminal. Used by the parser
// runtime to map an incoming token to a grammar symbol before consulting the
// ACTION table.
func (g *Grammar) TerminalForToken(tok sixc.TokType) (*Symbol, bool) {
	s, ok := g.tokIndex[tok]
	return s, ok
}

// Builder accumulates rules for a Grammar before Build validates and
// finalizes them.
type Builder struct {
	name     string
	symbols  map[string]*Symbol
	tokIndex map[sixc.TokType]*Symbol
	rules    []Rule
}

// NewBuilder creates an empty grammar builder named name (used only for
// diagnostics; Fingerprint does not hash it).
func NewBuilder(name string) *Builder {
	return &Builder{name: name, symbols: make(map[string]*Symbol), tokIndex: make(map[sixc.TokType]*Symbol)}
}

// Terminal interns and returns the terminal symbol for token type tok,
// named name for diagnostics.
func (b *Builder) Terminal(name string, tok sixc.TokType) *Symbol {
	key := "T:" + name
	if s, ok := b.symbols[key]; ok {
		return s
	}
	s := &Symbol{Name: name, terminal: true, tok: tok}
	b.symbols[key] = s
	b.tokIndex[tok] = s
	return s
}

// TerminalPrecedence declares a precedence level and associativity for a
// terminal, mirroring yacc's %left/%right token declarations: higher values
// bind tighter. Rules that don't declare their own precedence inherit it
// from their rightmost such terminal (see Build).
func (b *Builder) TerminalPrecedence(sym *Symbol, prec int, rightAssoc bool) {
	sym.Prec, sym.HasPrec, sym.RightAssoc = prec, true, rightAssoc
}

// NonTerminal interns and returns the nonterminal symbol named name.
func (b *Builder) NonTerminal(name string) *Symbol {
	key := "N:" + name
	if s, ok := b.symbols[key]; ok {
		return s
	}
	s := &Symbol{Name: name, terminal: false}
	b.symbols[key] = s
	return s
}

// Rule adds a production lhs → rhs to the grammar under construction.
// Precedence and associativity are optional and set via RuleOption.
func (b *Builder) Rule(lhs *Symbol, rhs []*Symbol, opts ...RuleOption) {
	r := notAnItem(len(b.rules), lhs, append([]*Symbol(nil), rhs...))
	for _, opt := range opts {
		opt(&r)
	}
	b.rules = append(b.rules, r)
}

// RuleOption configures optional rule attributes.
type RuleOption func(*Rule)

// Precedence sets a rule's precedence level, used to resolve shift/reduce
// conflicts against rules it competes with.
func Precedence(p int) RuleOption {
	return func(r *Rule) { r.Prec = p; r.HasPrec = true }
}

// RightAssociative marks a rule right-associative: at equal precedence,
// right-associative rules bind more tightly than left-associative ones
// (see resolveShiftReduce in generator.go).
func RightAssociative() RuleOption {
	return func(r *Rule) { r.RightAssoc = true }
}

// Mode tags a rule with the lexer mode that applies while it is being
// recognized.
func Mode(m lex.Mode) RuleOption {
	return func(r *Rule) { r.Mode = m }
}

// Build validates and returns the finished Grammar. start must have
// exactly one rule, whose RHS has exactly one symbol (the augmenting
// rule S' → S); this is how the generator identifies the unique starting
// production.
func (b *Builder) Build(start *Symbol, endSymbols ...*Symbol) (*Grammar, error) {
	startNo := -1
	for i, r := range b.rules {
		if r.LHS == start {
			if startNo >= 0 {
				return nil, &GeneratorError{Msg: fmt.Sprintf("grammar %s: multiple starting rules for %q", b.name, start.Name)}
			}
			startNo = i
		}
	}
	if startNo < 0 {
		return nil, &GeneratorError{Msg: fmt.Sprintf("grammar %s: no starting rule for %q", b.name, start.Name)}
	}
	if len(b.rules[startNo].RHS) != 1 {
		return nil, &GeneratorError{Msg: fmt.Sprintf("grammar %s: starting rule must have exactly one RHS symbol", b.name)}
	}
	g := &Grammar{
		Name: b.name, Start: start, EndSymbols: append([]*Symbol(nil), endSymbols...),
		Rules: append([]Rule(nil), b.rules...), symbols: b.symbols, tokIndex: b.tokIndex, startRuleNo: startNo,
	}
	for i := range g.Rules {
		r := &g.Rules[i]
		if r.HasPrec {
			continue
		}
		for j := len(r.RHS) - 1; j >= 0; j-- {
			if s := r.RHS[j]; s.terminal && s.HasPrec {
				r.Prec, r.HasPrec, r.RightAssoc = s.Prec, true, s.RightAssoc
				break
			}
		}
	}
	return g, nil
}

// StartRule returns the grammar's unique starting rule.
func (g *Grammar) StartRule() Rule { return g.Rules[g.startRuleNo] }

// StartItem returns the starting rule as an item with the dot at 0.
func (g *Grammar) StartItem() Rule { return g.StartRule().AsItem() }

// IsEndSymbol reports whether sym is one of the grammar's end-of-input
// symbols.
func (g *Grammar) IsEndSymbol(sym *Symbol) bool {
	for _, e := range g.EndSymbols {
		if e == sym {
			return true
		}
	}
	return false
}

// EachSymbol calls f once for every distinct symbol (terminal or
// nonterminal) appearing anywhere in the grammar.
func (g *Grammar) EachSymbol(f func(*Symbol)) {
	seen := make(map[*Symbol]bool)
	visit := func(s *Symbol) {
		if !seen[s] {
			seen[s] = true
			f(s)
		}
	}
	for _, r := range g.Rules {
		visit(r.LHS)
		for _, s := range r.RHS {
			visit(s)
		}
	}
}

// FindNonTermRules returns, as items with the dot at 0, every rule whose
// LHS is A.
func (g *Grammar) FindNonTermRules(A *Symbol) []Rule {
	var out []Rule
	for _, r := range g.Rules {
		if r.LHS == A {
			out = append(out, r.AsItem())
		}
	}
	return out
}

// MatchesRHS finds the rule with the given LHS and RHS (ignoring any dot
// position), returning its index, or -1 if none matches.
func (g *Grammar) MatchesRHS(lhs *Symbol, rhs []*Symbol) int {
outer:
	for i, r := range g.Rules {
		if r.LHS != lhs || len(r.RHS) != len(rhs) {
			continue
		}
		for k := range rhs {
			if r.RHS[k] != rhs[k] {
				continue outer
			}
		}
		return i
	}
	return -1
}
