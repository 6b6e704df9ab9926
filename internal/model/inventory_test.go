package model

import "testing"

func TestInventoryAddStacks(t *testing.T) {
	inv := Inventory{}
	inv.Add(1, 1)
	inv.Add(1, 1)
	inv.Add(2, 1)
	inv.Add(3, 0)

	if inv.Quantity(1) != 2 {
		t.Errorf("expected 2 of item 1, got %d", inv.Quantity(1))
	}
	if len(inv) != 2 {
		t.Errorf("expected 2 stacks, got %d", len(inv))
	}
}

func TestInventoryTakeRemovesEmptyStack(t *testing.T) {
	inv := Inventory{5: 1}

	if !inv.Take(5) {
		t.Fatal("expected take to succeed")
	}
	if _, ok := inv[5]; ok {
		t.Error("expected stack to be removed at zero")
	}
	if inv.Take(5) {
		t.Error("expected take on missing item to fail")
	}
}

func TestInventoryTakeDecrements(t *testing.T) {
	inv := Inventory{5: 3}
	inv.Take(5)
	if inv.Quantity(5) != 2 {
		t.Errorf("expected 2, got %d", inv.Quantity(5))
	}
}

func TestInventoryEntriesSorted(t *testing.T) {
	inv := Inventory{9: 1, 2: 4, 5: 2}
	entries := inv.Entries()

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []int64{2, 5, 9} {
		if entries[i].ItemID != want {
			t.Errorf("entry %d: expected item %d, got %d", i, want, entries[i].ItemID)
		}
	}
}
