package model

import "testing"

func TestBagpackCapacityRefusesExtra(t *testing.T) {
	b := NewBagpack(1)

	if !b.Add(&Loot{ID: 1, Value: 5}) {
		t.Fatal("expected first add to succeed")
	}
	if b.Add(&Loot{ID: 2, Value: 5}) {
		t.Fatal("expected second add to be silently refused at capacity")
	}
	if b.Len() != 1 {
		t.Fatalf("expected len 1, got %d", b.Len())
	}
}

func TestBagpackClearReturnsItems(t *testing.T) {
	b := NewBagpack(3)
	b.Add(&Loot{ID: 1, Value: 5})
	b.Add(&Loot{ID: 2, Value: 10})

	if total := b.TotalValue(); total != 15 {
		t.Fatalf("expected total value 15, got %d", total)
	}

	cleared := b.Clear()
	if len(cleared) != 2 {
		t.Fatalf("expected 2 cleared items, got %d", len(cleared))
	}
	if b.Len() != 0 {
		t.Fatalf("expected bagpack empty after clear, got len %d", b.Len())
	}
}
