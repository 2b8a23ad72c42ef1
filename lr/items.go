package lr

import (
	"bytes"
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/sixc/lr/iteratable"
)

// Item identifies an LR(0) item as a (rule, dot-position) pair. Item values
// are small and comparable, so they can live directly in an iteratable.Set
// or as map keys; Grammar.Item resolves one back to a full Rule.
type Item struct {
	Rule    int
	Pointer int
}

// Item resolves an Item back to the underlying Rule-with-dot.
func (g *Grammar) Item(it Item) Rule {
	r := g.Rules[it.Rule]
	r.Pointer = it.Pointer
	return r
}

func (g *Grammar) itemString(it Item) string {
	return g.Item(it).String()
}

// newItemSet creates an empty set of items.
func newItemSet() *iteratable.Set {
	return iteratable.New()
}

// closure computes the closure of an initial item set: repeatedly, for
// every item whose dot precedes a nonterminal A, add every rule producing
// A at pointer 0, until the set is stable.
func (g *Grammar) closure(S *iteratable.Set) *iteratable.Set {
	C := S.Copy()
	C.IterateOnce()
	for C.Next() {
		it := C.Item().(Item)
		rule := g.Item(it)
		A := rule.NextSymbol()
		if A != nil && !A.IsTerminal() {
			for _, r := range g.FindNonTermRules(A) {
				C.Add(Item{Rule: r.Serial, Pointer: 0})
			}
		}
	}
	return C
}

// gotoSet advances every item in closure whose next symbol is A.
func (g *Grammar) gotoSet(closure *iteratable.Set, A *Symbol) *iteratable.Set {
	out := newItemSet()
	for _, v := range closure.Values() {
		it := v.(Item)
		rule := g.Item(it)
		if rule.NextSymbol() == A {
			out.Add(Item{Rule: it.Rule, Pointer: it.Pointer + 1})
		}
	}
	return out
}

// gotoClosure is goto followed by closure.
func (g *Grammar) gotoClosure(closure *iteratable.Set, A *Symbol) *iteratable.Set {
	next := g.gotoSet(closure, A)
	c := g.closure(next)
	tracer().Debugf("goto(%s) --%s--> %s", g.dumpSet(closure), A, g.dumpSet(c))
	return c
}

func (g *Grammar) dumpSet(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, v := range S.Values() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.itemString(v.(Item)))
	}
	b.WriteString("}")
	return b.String()
}

// --- CFSM -------------------------------------------------------------

// CFSMState is a state of the characteristic finite-state machine: a
// closed item set plus bookkeeping.
type CFSMState struct {
	ID     uint
	Items  *iteratable.Set
	Accept bool
}

func (s *CFSMState) isErrorState() bool { return s.Items.Size() == 0 }

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.Items.Size())
}

// cfsmEdge is a directed, symbol-labeled edge between two CFSM states.
type cfsmEdge struct {
	from, to *CFSMState
	label    *Symbol
}

// CFSM is the characteristic finite-state machine for a grammar: the set
// of LR(0) states and the transitions between them. States and edges are
// held in gods' arraylist.List, the same container gorgo/lr/tables.go
// reaches for to back its CFSM, rather than bare Go slices.
type CFSM struct {
	g       *Grammar
	states  *arraylist.List
	edges   *arraylist.List
	S0      *CFSMState
	cfsmIDs uint
}

func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{g: g, states: arraylist.New(), edges: arraylist.New()}
}

// allStates returns every discovered CFSM state, in discovery order.
func (c *CFSM) allStates() []*CFSMState {
	vals := c.states.Values()
	out := make([]*CFSMState, len(vals))
	for i, v := range vals {
		out[i] = v.(*CFSMState)
	}
	return out
}

// allEdges returns every discovered CFSM transition, in discovery order.
func (c *CFSM) allEdges() []cfsmEdge {
	vals := c.edges.Values()
	out := make([]cfsmEdge, len(vals))
	for i, v := range vals {
		out[i] = v.(cfsmEdge)
	}
	return out
}

// stateByID returns the state with the given ID, or nil if none was
// discovered under that ID.
func (c *CFSM) stateByID(id uint) *CFSMState {
	for _, v := range c.states.Values() {
		s := v.(*CFSMState)
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (c *CFSM) findStateByItems(items *iteratable.Set) *CFSMState {
	for _, v := range c.states.Values() {
		s := v.(*CFSMState)
		if s.Items.Equals(items) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addState(items *iteratable.Set) *CFSMState {
	if s := c.findStateByItems(items); s != nil {
		return s
	}
	s := &CFSMState{ID: c.cfsmIDs, Items: items}
	c.cfsmIDs++
	c.states.Add(s)
	return s
}

func (c *CFSM) addEdge(from, to *CFSMState, label *Symbol) {
	c.edges.Add(cfsmEdge{from: from, to: to, label: label})
}

func (c *CFSM) edgesFrom(s *CFSMState) []cfsmEdge {
	var out []cfsmEdge
	for _, v := range c.edges.Values() {
		e := v.(cfsmEdge)
		if e.from == s {
			out = append(out, e)
		}
	}
	return out
}

// singlePartialRule returns the one rule-with-dot in s whose pointer is
// greater than zero (a "partially applied" item), for shift/reduce conflict
// resolution (see resolveShiftReduce). Returns ok=false if s has zero or
// more than one such item.
func (s *CFSMState) singlePartialRule(g *Grammar) (rule Rule, ok bool) {
	found := false
	for _, v := range s.Items.Values() {
		it := v.(Item)
		r := g.Item(it)
		if r.Pointer > 0 {
			if found {
				return Rule{}, false
			}
			rule, found = r, true
		}
	}
	return rule, found
}

// containsCompletedStartRule reports whether s contains the starting rule
// fully reduced (dot at the end).
func (s *CFSMState) containsCompletedStartRule(g *Grammar) bool {
	for _, v := range s.Items.Values() {
		it := v.(Item)
		if it.Rule == g.startRuleNo && g.Item(it).AtEnd() {
			return true
		}
	}
	return false
}

// buildCFSM constructs the CFSM for g by worklist state enumeration: start
// from the closure of the starting item, then repeatedly compute the
// goto-closure for every symbol from every discovered state, deduplicating
// states by their (already closed) item set.
func buildCFSM(g *Grammar) *CFSM {
	tracer().Debugf("=== build CFSM ===")
	cfsm := emptyCFSM(g)
	start := newItemSet()
	start.Add(Item{Rule: g.startRuleNo, Pointer: 0})
	closure0 := g.closure(start)
	cfsm.S0 = cfsm.addState(closure0)

	worklist := []*CFSMState{cfsm.S0}
	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		g.EachSymbol(func(A *Symbol) {
			next := g.gotoClosure(s.Items, A)
			if next.Empty() {
				return
			}
			existing := cfsm.findStateByItems(next)
			snew := cfsm.addState(next)
			if existing == nil {
				worklist = append(worklist, snew)
				if snew.containsCompletedStartRule(g) {
					snew.Accept = true
				}
			}
			cfsm.addEdge(s, snew, A)
		})
	}
	return cfsm
}
