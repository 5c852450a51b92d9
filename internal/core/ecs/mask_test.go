package ecs

import "testing"

func TestMaskSetHasClear(t *testing.T) {
	var m Mask
	for _, id := range []ComponentID{0, 5, 63, 64, 130, 255} {
		if m.Has(id) {
			t.Fatalf("fresh mask has bit %d", id)
		}
		m.Set(id)
		if !m.Has(id) {
			t.Fatalf("bit %d not set", id)
		}
	}
	if m.Count() != 6 {
		t.Fatalf("expected 6 bits, got %d", m.Count())
	}
	m.Clear(64)
	if m.Has(64) {
		t.Fatal("bit 64 still set after clear")
	}
	if m.Count() != 5 {
		t.Fatalf("expected 5 bits, got %d", m.Count())
	}
}

func TestMaskWithWithoutCopy(t *testing.T) {
	var m Mask
	m.Set(3)
	plus := m.With(70)
	if !plus.Has(3) || !plus.Has(70) {
		t.Fatalf("With lost bits: %v", plus)
	}
	if m.Has(70) {
		t.Fatal("With mutated the receiver")
	}
	minus := plus.Without(3)
	if minus.Has(3) || !minus.Has(70) {
		t.Fatalf("Without produced wrong mask: %v", minus)
	}
	if !plus.Has(3) {
		t.Fatal("Without mutated the receiver")
	}
}

func TestMaskAsMapKey(t *testing.T) {
	var a, b Mask
	a.Set(1)
	a.Set(200)
	b.Set(200)
	b.Set(1)

	seen := map[Mask]int{}
	seen[a]++
	seen[b]++
	if len(seen) != 1 || seen[a] != 2 {
		t.Fatalf("equal compositions did not collapse to one key: %v", seen)
	}
}
