package iteratable

// Set is a destructive, iterable set of arbitrary values, identified by
// their Go equality. It is tailored to the worklist-style algorithms used
// throughout grammar analysis: closures and goto-sets are built by
// repeatedly unioning in new elements until the set stabilizes, which is
// exactly the access pattern IterateOnce/Next/Item supports — a snapshot
// of the set taken once, walked while new elements may be appended behind
// the cursor.
//
// Add and Union mutate the receiver in place; Difference and Copy return
// a new, independent set and leave the receiver unchanged.
type Set struct {
	items []interface{}
	index map[interface{}]int
	cursor int
	snapshot []interface{}
}

// New creates an empty Set.
func New() *Set {
	return &Set{index: make(map[interface{}]int)}
}

// Of creates a Set containing the given values.
func Of(values ...interface{}) *Set {
	s := New()
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v into the set if not already present. Returns the set, for
// chaining.
func (s *Set) Add(v interface{}) *Set {
	if _, ok := s.index[v]; ok {
		return s
	}
	s.index[v] = len(s.items)
	s.items = append(s.items, v)
	return s
}

// Contains reports whether v is a member of the set.
func (s *Set) Contains(v interface{}) bool {
	_, ok := s.index[v]
	return ok
}

// Size returns the number of elements in the set.
func (s *Set) Size() int { return len(s.items) }

// Empty reports whether the set has no elements.
func (s *Set) Empty() bool { return len(s.items) == 0 }

// Values returns all elements of the set, in insertion order. The returned
// slice must not be mutated.
func (s *Set) Values() []interface{} { return s.items }

// Equals reports whether s and other contain exactly the same elements,
// irrespective of order.
func (s *Set) Equals(other *Set) bool {
	if other == nil || s.Size() != other.Size() {
		return false
	}
	for v := range s.index {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of s.
func (s *Set) Copy() *Set {
	c := New()
	for _, v := range s.items {
		c.Add(v)
	}
	return c
}

// Union adds every element of other into s.
func (s *Set) Union(other *Set) *Set {
	for _, v := range other.items {
		s.Add(v)
	}
	return s
}

// Difference returns a new set containing the elements of other that are
// not already in s.
func (s *Set) Difference(other *Set) *Set {
	d := New()
	for _, v := range other.items {
		if !s.Contains(v) {
			d.Add(v)
		}
	}
	return d
}

// AppendTo appends every element of s to slice and returns the result.
func (s *Set) AppendTo(slice []interface{}) []interface{} {
	return append(slice, s.items...)
}

// IterateOnce takes a snapshot of the set's current contents and resets the
// iteration cursor to just before the first element. Elements added to the
// set after IterateOnce (e.g. by Union inside the loop body) are picked up
// by later calls to Next, since closures typically grow the very set being
// iterated; the snapshot only freezes the iteration order already seen.
func (s *Set) IterateOnce() {
	s.snapshot = s.items
	s.cursor = -1
}

// Next advances the iteration cursor. It returns false once the cursor has
// passed every element added to the set so far (including ones appended
// during iteration).
func (s *Set) Next() bool {
	s.cursor++
	// pick up items appended to s.items since the snapshot was taken
	if len(s.items) > len(s.snapshot) {
		s.snapshot = s.items
	}
	return s.cursor < len(s.snapshot)
}

// Item returns the element at the current iteration cursor. Valid only
// after a call to Next that returned true.
func (s *Set) Item() interface{} {
	return s.snapshot[s.cursor]
}

// Each calls f for every element of the set, in insertion order.
func (s *Set) Each(f func(interface{})) {
	for _, v := range s.items {
		f(v)
	}
}
