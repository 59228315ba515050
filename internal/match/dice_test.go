package match

import "testing"

func TestNewDice_Range(t *testing.T) {
	d := NewDice(7)

	seen := make(map[int]bool)
	for i := 0; i < 600; i++ {
		v := d.Roll()
		if v < 1 || v > 6 {
			t.Fatalf("Roll() = %d, out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected all six faces in 600 rolls, saw %v", seen)
	}
}

func TestNewDice_Seeded(t *testing.T) {
	a, b := NewDice(42), NewDice(42)

	for i := 0; i < 50; i++ {
		if a.Roll() != b.Roll() {
			t.Fatal("dice with the same seed diverged")
		}
		if a.Coin() != b.Coin() {
			t.Fatal("coins with the same seed diverged")
		}
	}
}

func TestSequenceDice(t *testing.T) {
	d := &SequenceDice{Rolls: []int{2, 5}, Coins: []bool{false}}

	got := []int{d.Roll(), d.Roll(), d.Roll()}
	want := []int{2, 5, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("roll %d = %d, want %d", i, got[i], want[i])
		}
	}
	if d.Coin() || d.Coin() {
		t.Error("Coin() should replay false")
	}

	empty := &SequenceDice{}
	if empty.Roll() != 1 || !empty.Coin() {
		t.Error("empty SequenceDice should roll 1 and flip true")
	}
}
