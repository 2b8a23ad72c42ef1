package storage_test

import (
	"testing"

	"github.com/npillmayer/sixc/storage"
)

func TestImmediateStorage(t *testing.T) {
	s := storage.NewImmediate(42, 1)
	if s.Kind() != storage.Immediate {
		t.Fatalf("Kind() = %v, want Immediate", s.Kind())
	}
	if s.Width() != 1 {
		t.Fatalf("Width() = %d, want 1", s.Width())
	}
	if s.String() != "immediate(42, width=1)" {
		t.Fatalf("String() = %q", s.String())
	}
}

func TestAbsoluteStorage_UnresolvedThenRelocated(t *testing.T) {
	s := storage.Unresolved(2)
	if s.Resolved() {
		t.Fatalf("Unresolved() storage reports Resolved()")
	}
	s = s.Relocated(0xD020)
	if !s.Resolved() {
		t.Fatalf("Relocated() storage still reports unresolved")
	}
	if s.Address != 0xD020 {
		t.Fatalf("Address = 0x%X, want 0xD020", s.Address)
	}
	if s.Width() != 2 {
		t.Fatalf("Width() = %d, want 2", s.Width())
	}
}

func TestAbsoluteStorage_RelocatedDoesNotMutateOriginal(t *testing.T) {
	orig := storage.Unresolved(1)
	_ = orig.Relocated(0x0300)
	if orig.Resolved() {
		t.Fatalf("Relocated() mutated the receiver; AbsoluteStorage should be a value type")
	}
}
