package lr

import (
	"fmt"
	"io"

	"github.com/cnf/structhash"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/sixc"
	"github.com/npillmayer/sixc/lex"
	"github.com/npillmayer/sixc/lr/sparse"
)

// ActionKind classifies a single cell of an ActionGotoTable.
type ActionKind uint8

const (
	ActionError ActionKind = iota
	ActionShift
	ActionReduce
	ActionGoto
	ActionAccept
)

func (k ActionKind) String() string {
	switch k {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionGoto:
		return "goto"
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Action is a single parser action: shift to or goto State, or reduce/accept
// by Rule (an index into Grammar.Rules).
type Action struct {
	Kind  ActionKind
	State uint
	Rule  int
}

// GeneratorOption configures a TableGenerator.
type GeneratorOption func(*TableGenerator)

// WithHiddenChannel registers an auxiliary grammar for a hidden channel
// (e.g. comments): Generate will build and attach its own ActionGotoTable
// under Hidden[ch], for the parser runtime to switch to on rewind.
func WithHiddenChannel(ch sixc.Channel, g *Grammar) GeneratorOption {
	return func(tg *TableGenerator) { tg.hiddenGrammars[ch] = g }
}

// WithGraphvizDump causes Generate to additionally write the grammar's CFSM
// to w in Graphviz dot format, for diagnostics.
func WithGraphvizDump(w io.Writer) GeneratorOption {
	return func(tg *TableGenerator) { tg.dot = w }
}

// TableGenerator builds an ActionGotoTable for a Grammar, following the
// extended-grammar (Pager/DeRemer) method described in the package doc.
type TableGenerator struct {
	g              *Grammar
	hiddenGrammars map[sixc.Channel]*Grammar
	dot            io.Writer

	cfsm *CFSM
	ext  []extRule
	ana  *analysis
}

// NewTableGenerator creates a generator for g.
func NewTableGenerator(g *Grammar, opts ...GeneratorOption) *TableGenerator {
	tg := &TableGenerator{g: g, hiddenGrammars: make(map[sixc.Channel]*Grammar)}
	for _, opt := range opts {
		opt(tg)
	}
	return tg
}

// Fingerprint content-hashes the grammar's rule set (LHS/RHS/precedence),
// so a cached, previously generated table can be checked for staleness
// without re-running Generate.
func (tg *TableGenerator) Fingerprint() (string, error) {
	type ruleSummary struct {
		Serial     int
		LHS        string
		RHS        []string
		Prec       int
		HasPrec    bool
		RightAssoc bool
	}
	rs := make([]ruleSummary, len(tg.g.Rules))
	for i, r := range tg.g.Rules {
		rhs := make([]string, len(r.RHS))
		for j, s := range r.RHS {
			rhs[j] = s.Name
		}
		rs[i] = ruleSummary{Serial: r.Serial, LHS: r.LHS.Name, RHS: rhs, Prec: r.Prec, HasPrec: r.HasPrec, RightAssoc: r.RightAssoc}
	}
	return structhash.Hash(rs, 1)
}

type cellKey struct {
	state uint
	sym   *Symbol
}

func startExtSymbol(g *Grammar, ext []extRule) extSymbol {
	for _, r := range ext {
		if r.parent == g.startRuleNo {
			return r.lhs
		}
	}
	panic("lr: no extended rule derived for the starting production")
}

// computeStateMode determines the single lexer mode applicable while in
// state s: every rule with a non-default mode contributing an item to s
// must agree, or the grammar is rejected.
func computeStateMode(s *CFSMState, g *Grammar) (lex.Mode, error) {
	mode := lex.NormalMode
	set := false
	for _, v := range s.Items.Values() {
		it := v.(Item)
		r := g.Item(it)
		if r.Mode == lex.NormalMode {
			continue
		}
		if set && r.Mode != mode {
			return 0, &GeneratorError{Msg: fmt.Sprintf("state %d: conflicting lexer modes %v and %v", s.ID, mode, r.Mode)}
		}
		mode, set = r.Mode, true
	}
	if set {
		tracer().Debugf("state %d: lexer mode %v", s.ID, mode)
	}
	return mode, nil
}

// resolveShiftReduce resolves a shift/reduce conflict at a cell labeled by
// the terminal sym, between the shift already present and a candidate
// reduce by reduceRule. Per §4.4: the shift's target state must contain
// exactly one partially-applied rule, and both it and reduceRule must carry
// a declared precedence; any failure there is a hard GeneratorError rather
// than a silent default. At equal precedence, right-associative rules shift
// (so the next occurrence binds first, giving the rightmost operand
// priority) while left-associative rules reduce.
func resolveShiftReduce(cfsm *CFSM, g *Grammar, sym *Symbol, shift Action, reduceRule Rule, reduce Action) (Action, error) {
	target := cfsm.stateByID(shift.State)
	if target == nil {
		return Action{}, &GeneratorError{Msg: fmt.Sprintf(
			"internal: shift/reduce conflict on %s: shift target state %d not found", sym.Name, shift.State)}
	}
	shiftRule, ok := target.singlePartialRule(g)
	if !ok {
		return Action{}, &GeneratorError{Msg: fmt.Sprintf(
			"shift/reduce conflict on %s between rule %d and state %d: state does not hold a single partially-applied rule",
			sym.Name, reduceRule.Serial, shift.State)}
	}
	if !shiftRule.HasPrec || !reduceRule.HasPrec {
		return Action{}, &GeneratorError{Msg: fmt.Sprintf(
			"unresolved shift/reduce conflict on %s between rule %d and rule %d: no precedence declared on one or both sides",
			sym.Name, shiftRule.Serial, reduceRule.Serial)}
	}
	switch {
	case shiftRule.Prec > reduceRule.Prec:
		tracer().Debugf("shift/reduce on %s: shift wins (rule %d prec %d > rule %d prec %d)",
			sym.Name, shiftRule.Serial, shiftRule.Prec, reduceRule.Serial, reduceRule.Prec)
		return shift, nil
	case shiftRule.Prec < reduceRule.Prec:
		tracer().Debugf("shift/reduce on %s: reduce wins (rule %d prec %d > rule %d prec %d)",
			sym.Name, reduceRule.Serial, reduceRule.Prec, shiftRule.Serial, shiftRule.Prec)
		return reduce, nil
	case shiftRule.RightAssoc:
		tracer().Debugf("shift/reduce on %s: equal precedence %d, shift wins (right-associative)", sym.Name, shiftRule.Prec)
		return shift, nil
	default:
		tracer().Debugf("shift/reduce on %s: equal precedence %d, reduce wins (left-associative)", sym.Name, shiftRule.Prec)
		return reduce, nil
	}
}

// Generate builds the ActionGotoTable for the generator's grammar: the
// CFSM, the extended grammar, FIRST/FOLLOW, then the ACTION/GOTO table
// itself, plus one recursively generated table per registered hidden
// channel.
func (tg *TableGenerator) Generate() (*ActionGotoTable, error) {
	tracer().Debugf("=== generate tables for grammar %q ===", tg.g.Name)
	cfsm := buildCFSM(tg.g)
	tracer().Debugf("CFSM for %q: %d states, %d edges", tg.g.Name, len(cfsm.allStates()), len(cfsm.allEdges()))
	ext := buildExtendedGrammar(tg.g, cfsm)
	tracer().Debugf("extended grammar for %q: %d rules", tg.g.Name, len(ext))
	ana := newAnalysis(tg.g, ext)
	ana.buildFirstSets()
	ana.buildFollowSets(startExtSymbol(tg.g, ext))
	tg.cfsm, tg.ext, tg.ana = cfsm, ext, ana

	if tg.dot != nil {
		dumpGraphviz(tg.dot, tg.g, cfsm)
	}

	agtable := make(map[cellKey]Action)

	// Shifts and gotos come straight from CFSM transitions.
	for _, e := range cfsm.allEdges() {
		var a Action
		if e.label.IsTerminal() {
			a = Action{Kind: ActionShift, State: e.to.ID}
		} else {
			a = Action{Kind: ActionGoto, State: e.to.ID}
		}
		agtable[cellKey{e.from.ID, e.label}] = a
	}

	// Reduces (and accept) come from extended rules' final states, spread
	// over FOLLOW of the extended LHS occurrence.
	for _, r := range ext {
		final := uint(r.finalState())
		rule := tg.g.Rules[r.parent]
		isStart := r.parent == tg.g.startRuleNo
		var reduceAction Action
		if isStart {
			reduceAction = Action{Kind: ActionAccept, Rule: r.parent}
		} else {
			reduceAction = Action{Kind: ActionReduce, Rule: r.parent}
		}
		for _, a := range ana.Follow(r.lhs) {
			key := cellKey{final, a}
			existing, has := agtable[key]
			if !has {
				agtable[key] = reduceAction
				continue
			}
			switch existing.Kind {
			case ActionShift:
				resolved, err := resolveShiftReduce(cfsm, tg.g, a, existing, rule, reduceAction)
				if err != nil {
					return nil, err
				}
				agtable[key] = resolved
			case ActionReduce, ActionAccept:
				if existing.Kind == reduceAction.Kind && existing.Rule == reduceAction.Rule {
					// extended rules of the same parent merge at a shared final state
					continue
				}
				return nil, &GeneratorError{Msg: fmt.Sprintf(
					"reduce/reduce conflict in state %d on %s between rule %d and rule %d",
					final, a.Name, existing.Rule, r.parent)}
			default:
				return nil, &GeneratorError{Msg: fmt.Sprintf(
					"internal: reduce action on a goto cell (state %d, symbol %s)", final, a.Name)}
			}
		}
	}

	symIndex := make(map[*Symbol]int32)
	tg.g.EachSymbol(func(s *Symbol) {
		symIndex[s] = int32(len(symIndex))
	})
	// end symbols need a column too, even when no rule mentions them
	for _, e := range tg.g.EndSymbols {
		if _, ok := symIndex[e]; !ok {
			symIndex[e] = int32(len(symIndex))
		}
	}

	states := cfsm.allStates()
	cells := sparse.NewIntMatrix(len(states), len(symIndex), sparse.DefaultNullValue)
	entries := make([]Action, 0, len(agtable))
	for key, act := range agtable {
		idx := int32(len(entries))
		entries = append(entries, act)
		cells.Set(int(key.state), int(symIndex[key.sym]), idx)
	}

	modes := make(map[uint]lex.Mode, len(states))
	for _, s := range states {
		m, err := computeStateMode(s, tg.g)
		if err != nil {
			return nil, err
		}
		modes[s.ID] = m
	}

	hidden := make(map[sixc.Channel]*ActionGotoTable, len(tg.hiddenGrammars))
	for ch, hg := range tg.hiddenGrammars {
		tracer().Debugf("generating hidden-channel table for channel %d (grammar %q)", ch, hg.Name)
		ht, err := NewTableGenerator(hg).Generate()
		if err != nil {
			return nil, fmt.Errorf("lr: hidden channel %d: %w", ch, err)
		}
		hidden[ch] = ht
	}

	tracer().Debugf("table for %q assembled: %d states, %d cells", tg.g.Name, len(states), len(entries))
	return &ActionGotoTable{
		G:        tg.g,
		cfsm:     cfsm,
		symIndex: symIndex,
		cells:    cells,
		entries:  entries,
		modes:    modes,
		Hidden:   hidden,
	}, nil
}

// ActionGotoTable is the finished output of table generation: for every
// (state, symbol) pair, at most one Action, plus the per-state lexer mode
// and any hidden-channel sub-tables.
type ActionGotoTable struct {
	G        *Grammar
	cfsm     *CFSM
	symIndex map[*Symbol]int32
	cells    *sparse.IntMatrix
	entries  []Action
	modes    map[uint]lex.Mode
	Hidden   map[sixc.Channel]*ActionGotoTable
}

// StartState returns the table's initial CFSM state ID.
func (t *ActionGotoTable) StartState() uint { return t.cfsm.S0.ID }

// Edge is an exported view of one CFSM transition, for diagnostics (e.g.
// cmd/sixc's "tables" subcommand).
type Edge struct {
	From, To uint
	Label    *Symbol
}

// States returns every CFSM state discovered while generating t, in
// discovery order.
func (t *ActionGotoTable) States() []*CFSMState { return t.cfsm.allStates() }

// Edges returns every CFSM transition discovered while generating t.
func (t *ActionGotoTable) Edges() []Edge {
	es := t.cfsm.allEdges()
	out := make([]Edge, len(es))
	for i, e := range es {
		out[i] = Edge{From: e.from.ID, To: e.to.ID, Label: e.label}
	}
	return out
}

// DescribeState renders a state's item set as a human-readable string.
func (t *ActionGotoTable) DescribeState(s *CFSMState) string { return t.G.dumpSet(s.Items) }

// Action looks up the action for state on symbol sym.
func (t *ActionGotoTable) Action(state uint, sym *Symbol) (Action, bool) {
	col, ok := t.symIndex[sym]
	if !ok {
		return Action{}, false
	}
	idx := t.cells.Value(int(state), int(col))
	if idx == t.cells.NullValue() {
		return Action{}, false
	}
	return t.entries[idx], true
}

// Mode returns the lexer mode active while in state.
func (t *ActionGotoTable) Mode(state uint) lex.Mode { return t.modes[uint(state)] }

// AcceptableSymbols returns every terminal with a defined action in state,
// for syntax-error diagnostics. The result is sorted by symbol name: the
// backing map iterates in randomized order, and a ParseError's message
// should not vary between runs for the same input.
func (t *ActionGotoTable) AcceptableSymbols(state uint) []*Symbol {
	var out []*Symbol
	for sym, col := range t.symIndex {
		if !sym.IsTerminal() {
			continue
		}
		if v := t.cells.Value(int(state), int(col)); v != t.cells.NullValue() {
			out = append(out, sym)
		}
	}
	slices.SortFunc(out, func(a, b *Symbol) bool { return a.Name < b.Name })
	return out
}

func dumpGraphviz(w io.Writer, g *Grammar, cfsm *CFSM) {
	fmt.Fprintf(w, "digraph %s {\n", g.Name)
	for _, s := range cfsm.allStates() {
		shape := "box"
		if s.Accept {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "  s%d [label=%q shape=%s];\n", s.ID, g.dumpSet(s.Items), shape)
	}
	for _, e := range cfsm.allEdges() {
		fmt.Fprintf(w, "  s%d -> s%d [label=%q];\n", e.from.ID, e.to.ID, e.label.Name)
	}
	fmt.Fprintln(w, "}")
}
