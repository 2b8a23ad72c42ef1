package sparse_test

import (
	"testing"

	"github.com/npillmayer/sixc/lr/sparse"
)

func TestIntMatrix_SetAndValue(t *testing.T) {
	m := sparse.NewIntMatrix(10, 10, -1)
	m.Set(2, 3, 4711)
	if got := m.Value(2, 3); got != 4711 {
		t.Fatalf("Value(2,3) = %d, want 4711", got)
	}
	if got := m.Value(5, 5); got != -1 {
		t.Fatalf("Value of an unset cell = %d, want the null-value -1", got)
	}
	if got := m.ValueCount(); got != 1 {
		t.Fatalf("ValueCount() = %d, want 1", got)
	}
}

func TestIntMatrix_SetOverwritesAndClearsSecondary(t *testing.T) {
	m := sparse.NewIntMatrix(5, 5, -1)
	m.Add(1, 1, 10)
	m.Add(1, 1, 20)
	if a, b := m.Values(1, 1); a != 10 || b != 20 {
		t.Fatalf("Values(1,1) = (%d,%d), want (10,20)", a, b)
	}
	m.Set(1, 1, 99)
	if a, b := m.Values(1, 1); a != 99 || b != -1 {
		t.Fatalf("Set should overwrite the primary and clear the secondary: got (%d,%d)", a, b)
	}
}

func TestIntMatrix_AddRecordsConflictingSecondValue(t *testing.T) {
	m := sparse.NewIntMatrix(5, 5, -1)
	m.Add(0, 0, 1)
	m.Add(0, 0, 2)
	a, b := m.Values(0, 0)
	if a != 1 || b != 2 {
		t.Fatalf("Values(0,0) = (%d,%d), want (1,2)", a, b)
	}
}

func TestIntMatrix_CellsStayOrderedAcrossOutOfOrderInserts(t *testing.T) {
	m := sparse.NewIntMatrix(5, 5, -1)
	m.Set(3, 0, 30)
	m.Set(1, 0, 10)
	m.Set(2, 0, 20)
	for i, want := range []int32{10, 20, 30} {
		if got := m.Value(i+1, 0); got != want {
			t.Fatalf("Value(%d,0) = %d, want %d", i+1, got, want)
		}
	}
	if m.ValueCount() != 3 {
		t.Fatalf("ValueCount() = %d, want 3", m.ValueCount())
	}
}
