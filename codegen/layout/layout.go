package layout

import (
	"fmt"

	"github.com/npillmayer/sixc/storage"
)

// Slot is a single named storage allocation within a Scope: a constant's
// immediate value or a variable's assigned absolute address.
type Slot struct {
	Name    string
	Storage storage.Storage
}

func (s *Slot) String() string {
	return fmt.Sprintf("<slot %s: %s>", s.Name, s.Storage)
}

// Scope holds the Slots declared directly within it and links to its
// parent, forming a tree mirroring the unit/fun nesting of the AST.
type Scope struct {
	Name   string
	Parent *Scope
	slots  map[string]*Slot
}

func newScope(name string, parent *Scope) *Scope {
	return &Scope{Name: name, Parent: parent, slots: make(map[string]*Slot)}
}

func (s *Scope) String() string { return fmt.Sprintf("<scope %s>", s.Name) }

// Define records slot in s, overwriting and returning any previous slot of
// the same name.
func (s *Scope) Define(slot *Slot) *Slot {
	old := s.slots[slot.Name]
	s.slots[slot.Name] = slot
	tracer().Debugf("scope %s: define %s", s.Name, slot)
	return old
}

// Resolve looks up name in s, then in each ancestor scope in turn,
// returning the slot and the scope it was found in, or (nil, nil).
func (s *Scope) Resolve(name string) (*Slot, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if slot, ok := sc.slots[name]; ok {
			return slot, sc
		}
	}
	return nil, nil
}

// ScopeTree is a stack of Scopes, growing on Push and shrinking on Pop,
// used to track the currently open unit/fun nesting during storage
// assignment.
type ScopeTree struct {
	base, top *Scope
}

// NewScopeTree returns an empty ScopeTree.
func NewScopeTree() *ScopeTree { return &ScopeTree{} }

// Current returns the innermost open scope. It panics if called with no
// scope open: an assertion failure for a stack-discipline violation, not a
// user-facing error.
func (t *ScopeTree) Current() *Scope {
	if t.top == nil {
		panic("layout: no scope is open")
	}
	return t.top
}

// Globals returns the outermost scope. It panics if no scope has ever been
// pushed.
func (t *ScopeTree) Globals() *Scope {
	if t.base == nil {
		panic("layout: no global scope has been pushed")
	}
	return t.base
}

// Push opens a new innermost scope named name and returns it.
func (t *ScopeTree) Push(name string) *Scope {
	sc := newScope(name, t.top)
	if t.top == nil {
		t.base = sc
	}
	t.top = sc
	tracer().Debugf("push scope %s", name)
	return sc
}

// Pop closes and returns the innermost scope. It panics if no scope is
// open.
func (t *ScopeTree) Pop() *Scope {
	sc := t.Current()
	tracer().Debugf("pop scope %s", sc.Name)
	t.top = sc.Parent
	return sc
}
