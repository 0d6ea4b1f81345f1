package game

import "testing"

func TestCanAfford(t *testing.T) {
	r := Resources{Food: 100, Wood: 50, Stone: 30, Gold: 0}

	if !r.CanAfford(Resources{Food: 100, Wood: 50}) {
		t.Error("exact cost should be affordable")
	}
	if !r.CanAfford(Resources{}) {
		t.Error("zero cost should always be affordable")
	}
	if r.CanAfford(Resources{Gold: 1}) {
		t.Error("should not afford gold with empty treasury")
	}
	if r.CanAfford(Resources{Food: 100.01}) {
		t.Error("should not afford cost above balance")
	}
}

func TestSubtractNoMutationOnFailure(t *testing.T) {
	r := Resources{Food: 50, Wood: 20}
	before := r

	if r.Subtract(Resources{Food: 40, Stone: 5}) {
		t.Fatal("subtract should fail on unaffordable cost")
	}
	if r != before {
		t.Errorf("failed subtract mutated resources: %+v -> %+v", before, r)
	}

	if !r.Subtract(Resources{Food: 40, Wood: 20}) {
		t.Fatal("affordable subtract should succeed")
	}
	want := Resources{Food: 10}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
}

func TestScale(t *testing.T) {
	r := Resources{Food: 4, Wood: 2, Stone: 1, Gold: 0.5}
	got := r.Scale(1.5)
	want := Resources{Food: 6, Wood: 3, Stone: 1.5, Gold: 0.75}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
