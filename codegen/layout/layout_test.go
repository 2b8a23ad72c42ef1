package layout_test

import (
	"testing"

	"github.com/npillmayer/sixc/codegen/layout"
	"github.com/npillmayer/sixc/storage"
)

func TestScopeTree_PushCurrentPop(t *testing.T) {
	tree := layout.NewScopeTree()
	tree.Push("unit")
	tree.Current().Define(&layout.Slot{Name: "K", Storage: storage.NewImmediate(1, 1)})
	tree.Push("fun main")
	if tree.Current().Name != "fun main" {
		t.Fatalf("Current() = %q, want %q", tree.Current().Name, "fun main")
	}
	tree.Pop()
	if tree.Current().Name != "unit" {
		t.Fatalf("after Pop(), Current() = %q, want %q", tree.Current().Name, "unit")
	}
}

func TestScope_ResolveFallsThroughToParent(t *testing.T) {
	tree := layout.NewScopeTree()
	unit := tree.Push("unit")
	unit.Define(&layout.Slot{Name: "K", Storage: storage.NewImmediate(7, 1)})
	fn := tree.Push("fun main")

	slot, foundIn := fn.Resolve("K")
	if slot == nil {
		t.Fatalf("Resolve(K) from inner scope found nothing")
	}
	if foundIn != unit {
		t.Fatalf("Resolve(K) reported scope %v, want the unit scope", foundIn)
	}
	imm := slot.Storage.(storage.ImmediateStorage)
	if imm.Value != 7 {
		t.Fatalf("resolved slot value = %d, want 7", imm.Value)
	}
}

func TestScope_ResolveUnknownNameReturnsNil(t *testing.T) {
	tree := layout.NewScopeTree()
	tree.Push("unit")
	slot, sc := tree.Current().Resolve("nonexistent")
	if slot != nil || sc != nil {
		t.Fatalf("Resolve of an unknown name should return (nil, nil), got (%v, %v)", slot, sc)
	}
}

func TestScope_DefineShadowsInInnerScope(t *testing.T) {
	tree := layout.NewScopeTree()
	unit := tree.Push("unit")
	unit.Define(&layout.Slot{Name: "x", Storage: storage.NewAbsolute(0x0200, 1)})
	fn := tree.Push("fun main")
	fn.Define(&layout.Slot{Name: "x", Storage: storage.NewAbsolute(0x0300, 1)})

	slot, foundIn := fn.Resolve("x")
	if foundIn != fn {
		t.Fatalf("Resolve(x) from fun scope should find the shadowing definition in fun, found in %v", foundIn)
	}
	if slot.Storage.(storage.AbsoluteStorage).Address != 0x0300 {
		t.Fatalf("shadowed resolve returned the outer definition")
	}
}

func TestScopeTree_CurrentPanicsWithNoScopeOpen(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Current() to panic with no scope open")
		}
	}()
	layout.NewScopeTree().Current()
}
