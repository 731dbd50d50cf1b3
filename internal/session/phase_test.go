package session

import "testing"

func TestPhaseGateAdvanceSequential(t *testing.T) {
	g := NewPhaseGate()
	if g.Current() != Registration {
		t.Fatalf("expected Registration, got %s", g.Current())
	}
	if err := g.Advance(Placement); err != nil {
		t.Fatalf("Advance(Placement): %v", err)
	}
	if err := g.Advance(Playing); err != nil {
		t.Fatalf("Advance(Playing): %v", err)
	}
	if err := g.Advance(Finished); err != nil {
		t.Fatalf("Advance(Finished): %v", err)
	}
}

func TestPhaseGateRejectsSkip(t *testing.T) {
	g := NewPhaseGate()
	if err := g.Advance(Playing); err == nil {
		t.Fatal("expected error skipping Placement")
	}
	if g.Current() != Registration {
		t.Fatal("phase must not move on a rejected transition")
	}
}

func TestPhaseGateRejectsReverse(t *testing.T) {
	g := NewPhaseGate()
	_ = g.Advance(Placement)
	if err := g.Advance(Registration); err == nil {
		t.Fatal("expected error reversing to Registration")
	}
}

func TestPhaseGateAbortFromAnyPhase(t *testing.T) {
	for _, start := range []Phase{Registration, Placement, Playing} {
		g := NewPhaseGate()
		for p := Registration; p < start; p++ {
			_ = g.Advance(p + 1)
		}
		g.Abort()
		if g.Current() != Finished {
			t.Fatalf("Abort from %s: expected Finished, got %s", start, g.Current())
		}
	}
}
