/*
Package sparse implements a sparse integer matrix, used to back LR parser
tables (ACTION and GOTO tables are overwhelmingly empty: most state/symbol
combinations are errors).

Every entry is a pair of int32 values, so that a single cell can hold both
a primary value and a conflicting second value (see Add). The lr table
generator detects its conflicts before filling the matrix and stores one
value per cell with Set.

This implementation uses the COO (triplet) sparse-matrix encoding, kept
sorted by (row, col) so lookups can stop scanning as soon as they pass the
sought position.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import "fmt"

// DefaultNullValue is the default empty-value for matrices.
const DefaultNullValue int32 = -2147483648

// IntMatrix is a sparse m×n matrix of (up to) pairs of int32 values.
//
//	m := NewIntMatrix(10, 10, -1)  // -1 is the null-value
//	m.Set(2, 3, 4711)
//	m.Value(2, 3)                 // 4711
//	m.Add(2, 3, 123)              // records a second value at (2,3)
//	m.Value(10, 10)                // -1, the null-value
//
// Values cannot be deleted, only overwritten with the null-value; space
// for null-values is not reclaimed.
type IntMatrix struct {
	cells   []cell
	rowcnt  int
	colcnt  int
	nullval int32
}

type cell struct {
	row, col int
	a, b     int32
}

// NewIntMatrix creates an m×n matrix with the given null-value.
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{rowcnt: m, colcnt: n, nullval: nullValue}
}

// M returns the row count.
func (m *IntMatrix) M() int { return m.rowcnt }

// N returns the column count.
func (m *IntMatrix) N() int { return m.colcnt }

// NullValue returns this matrix' null value.
func (m *IntMatrix) NullValue() int32 { return m.nullval }

// ValueCount returns the number of occupied cells.
func (m *IntMatrix) ValueCount() int { return len(m.cells) }

func (m *IntMatrix) find(i, j int) int {
	for k, c := range m.cells {
		if c.row == i && c.col == j {
			return k
		}
		if c.row > i || (c.row == i && c.col > j) {
			break
		}
	}
	return -1
}

// Value returns the primary value at (i,j), or the null-value.
func (m *IntMatrix) Value(i, j int) int32 {
	if k := m.find(i, j); k >= 0 {
		return m.cells[k].a
	}
	return m.nullval
}

// Values returns both values stored at (i,j), or (null,null).
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if k := m.find(i, j); k >= 0 {
		return m.cells[k].a, m.cells[k].b
	}
	return m.nullval, m.nullval
}

// Set overwrites the primary value at (i,j).
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	if k := m.find(i, j); k >= 0 {
		m.cells[k].a, m.cells[k].b = value, m.nullval
		return m
	}
	m.insert(i, j, value, m.nullval)
	return m
}

// Add records value at (i,j): if the primary slot is free it is filled,
// otherwise the secondary slot is filled (overwriting any prior secondary
// value). This is how a conflicting second action ends up alongside a
// first one at the same cell.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	if k := m.find(i, j); k >= 0 {
		if m.cells[k].a == m.nullval {
			m.cells[k].a = value
		} else if m.cells[k].b == m.nullval {
			m.cells[k].b = value
		} else {
			m.cells[k].b = value
		}
		return m
	}
	m.insert(i, j, value, m.nullval)
	return m
}

func (m *IntMatrix) insert(i, j int, a, b int32) {
	at := len(m.cells)
	for k, c := range m.cells {
		if c.row > i || (c.row == i && c.col > j) {
			at = k
			break
		}
	}
	m.cells = append(m.cells, cell{})
	copy(m.cells[at+1:], m.cells[at:])
	m.cells[at] = cell{row: i, col: j, a: a, b: b}
}

func (c cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.a, c.b)
}
