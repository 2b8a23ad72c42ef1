package lr

import "fmt"

// end is the sentinel "after" state of an extended symbol that has no
// outgoing transition — it marks the start symbol of the extended grammar.
const end = -1

// extSymbol is a grammar symbol annotated with the states it connects:
// (state_before, symbol, state_after). Terminal occurrences carry no
// meaningful state annotation (FIRST/FOLLOW of a terminal never depends on
// context), so terminal keys collapse to the bare symbol.
type extSymbol struct {
	before int
	sym    *Symbol
	after  int
}

func (e extSymbol) key() extSymbol {
	if e.sym.IsTerminal() {
		return extSymbol{sym: e.sym, before: 0, after: 0}
	}
	return e
}

func (e extSymbol) String() string {
	if e.sym.IsTerminal() {
		return e.sym.Name
	}
	return fmt.Sprintf("(%d,%s,%d)", e.before, e.sym.Name, e.after)
}

// extRule is a production of the extended grammar: every symbol annotated
// with the states it connects, plus the index of the original (parent)
// rule it was derived from.
type extRule struct {
	lhs    extSymbol
	rhs    []extSymbol
	parent int // Grammar.Rules index
}

func (r extRule) finalState() int {
	if len(r.rhs) == 0 {
		return r.lhs.before
	}
	return r.rhs[len(r.rhs)-1].after
}

func translation(cfsm *CFSM, state uint, sym *Symbol) (uint, bool) {
	for _, e := range cfsm.allEdges() {
		if e.from.ID == state && e.label == sym {
			return e.to.ID, true
		}
	}
	return 0, false
}

// buildExtendedGrammar derives the extended grammar from a CFSM: for every
// state and every item in it with the dot at position 0, walk the RHS
// tracking (state_before, symbol, state_after) triples via the CFSM's
// transitions.
func buildExtendedGrammar(g *Grammar, cfsm *CFSM) []extRule {
	seen := make(map[string]bool)
	var out []extRule
	for _, s := range cfsm.allStates() {
		for _, v := range s.Items.Values() {
			it := v.(Item)
			if it.Pointer != 0 {
				continue
			}
			rule := g.Rules[it.Rule]
			cur := s.ID
			rhs := make([]extSymbol, 0, len(rule.RHS))
			for _, sym := range rule.RHS {
				next, ok := translation(cfsm, cur, sym)
				if !ok {
					panic(fmt.Sprintf("lr: no transition from state %d on symbol %s; CFSM is inconsistent", cur, sym))
				}
				rhs = append(rhs, extSymbol{before: int(cur), sym: sym, after: int(next)})
				cur = next
			}
			after := end
			if a, ok := translation(cfsm, s.ID, rule.LHS); ok {
				after = int(a)
			}
			er := extRule{lhs: extSymbol{before: int(s.ID), sym: rule.LHS, after: after}, rhs: rhs, parent: rule.Serial}
			key := fmt.Sprintf("%v<-%v", er.lhs, er.rhs)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, er)
		}
	}
	return out
}

// --- FIRST / FOLLOW over the extended grammar ------------------------------

// symSet is a small terminal-or-epsilon set, keyed by Symbol identity.
type symSet map[*Symbol]bool

var epsilon = &Symbol{Name: "ε"}

func (s symSet) add(sym *Symbol) bool {
	if s[sym] {
		return false
	}
	s[sym] = true
	return true
}

func (s symSet) addAll(other symSet, skipEpsilon bool) bool {
	changed := false
	for sym := range other {
		if skipEpsilon && sym == epsilon {
			continue
		}
		if s.add(sym) {
			changed = true
		}
	}
	return changed
}

// analysis holds the FIRST/FOLLOW sets computed over an extended grammar.
type analysis struct {
	g       *Grammar
	ext     []extRule
	first   map[extSymbol]symSet
	follow  map[extSymbol]symSet
}

func newAnalysis(g *Grammar, ext []extRule) *analysis {
	return &analysis{g: g, ext: ext, first: map[extSymbol]symSet{}, follow: map[extSymbol]symSet{}}
}

func (a *analysis) firstSet(e extSymbol) symSet {
	k := e.key()
	if e.sym.IsTerminal() {
		return symSet{e.sym: true}
	}
	s, ok := a.first[k]
	if !ok {
		s = symSet{}
		a.first[k] = s
	}
	return s
}

func (a *analysis) followSet(e extSymbol) symSet {
	k := e.key()
	s, ok := a.follow[k]
	if !ok {
		s = symSet{}
		a.follow[k] = s
	}
	return s
}

// buildFirstSets computes FIRST over the extended grammar, per §4.3: rule
// V → ε adds ε to FIRST(V); rule V → t… adds t; rule V → A B C … folds
// FIRST(A) minus ε, continuing through B, C… while each is ε-derivable,
// adding ε to FIRST(V) only if the whole RHS is.
func (a *analysis) buildFirstSets() {
	for changed := true; changed; {
		changed = false
		for _, r := range a.ext {
			lhsKey := r.lhs.key()
			lhsFirst := a.firstSet(r.lhs)
			if len(r.rhs) == 0 {
				if lhsFirst.add(epsilon) {
					changed = true
				}
				a.first[lhsKey] = lhsFirst
				continue
			}
			nullableSoFar := true
			for _, sym := range r.rhs {
				if !nullableSoFar {
					break
				}
				sfirst := a.firstSet(sym)
				if lhsFirst.addAll(sfirst, true) {
					changed = true
				}
				if !sfirst[epsilon] {
					nullableSoFar = false
				}
			}
			if nullableSoFar {
				if lhsFirst.add(epsilon) {
					changed = true
				}
			}
			a.first[lhsKey] = lhsFirst
		}
	}
}

// firstOfSequence computes FIRST of a symbol sequence (beta): the union of
// FIRST(beta[0]) minus ε, continuing while each prefix is ε-derivable, and
// whether the whole sequence is ε-derivable.
func (a *analysis) firstOfSequence(beta []extSymbol) (symSet, bool) {
	out := symSet{}
	nullable := true
	for _, sym := range beta {
		if !nullable {
			break
		}
		sfirst := a.firstSet(sym)
		out.addAll(sfirst, true)
		if !sfirst[epsilon] {
			nullable = false
		}
	}
	return out, nullable
}

// buildFollowSets computes FOLLOW over the extended grammar, per §4.3.
// startKey is the extended-grammar key for the grammar's starting
// nonterminal, seeded with the grammar's end symbols.
func (a *analysis) buildFollowSets(startKey extSymbol) {
	startFollow := a.followSet(startKey)
	for _, e := range a.g.EndSymbols {
		startFollow.add(e)
	}
	a.follow[startKey.key()] = startFollow

	for changed := true; changed; {
		changed = false
		for _, r := range a.ext {
			for i, sym := range r.rhs {
				if sym.sym.IsTerminal() {
					continue
				}
				beta := r.rhs[i+1:]
				firstBeta, nullable := a.firstOfSequence(beta)
				dfollow := a.followSet(sym)
				if dfollow.addAll(firstBeta, true) {
					changed = true
				}
				if nullable {
					if dfollow.addAll(a.followSet(r.lhs), false) {
						changed = true
					}
				}
				a.follow[sym.key()] = dfollow
			}
		}
	}
}

// Follow returns the FOLLOW set (terminal symbols only) of an extended
// symbol, as a slice.
func (a *analysis) Follow(e extSymbol) []*Symbol {
	set := a.followSet(e)
	out := make([]*Symbol, 0, len(set))
	for s := range set {
		if s != epsilon {
			out = append(out, s)
		}
	}
	return out
}
