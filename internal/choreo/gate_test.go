package choreo

import "testing"

func TestGateFiresOncePerScene(t *testing.T) {
	fired := 0
	g := NewGate(func() { fired++ })

	if g.LastActivated() != -1 {
		t.Fatalf("LastActivated() = %d, expected -1", g.LastActivated())
	}

	if !g.Activate(0, true) {
		t.Error("first Activate() = false, expected true")
	}
	for i := 0; i < 10; i++ {
		if g.Activate(0, true) {
			t.Errorf("repeat Activate() #%d = true, expected false", i)
		}
	}
	if fired != 1 {
		t.Fatalf("callback fired %d times, expected 1", fired)
	}

	if !g.Activate(1, true) {
		t.Error("Activate() after scene change = false, expected true")
	}
	if fired != 2 {
		t.Errorf("callback fired %d times, expected 2", fired)
	}
	if g.LastActivated() != 1 {
		t.Errorf("LastActivated() = %d, expected 1", g.LastActivated())
	}
}

func TestGateIgnoresWhenNotRequired(t *testing.T) {
	fired := 0
	g := NewGate(func() { fired++ })

	if g.Activate(0, false) {
		t.Error("Activate() without pending interaction = true, expected false")
	}
	if fired != 0 || g.LastActivated() != -1 {
		t.Errorf("fired = %d, LastActivated() = %d, expected untouched gate", fired, g.LastActivated())
	}
}

func TestGateReturnToEarlierScene(t *testing.T) {
	fired := 0
	g := NewGate(func() { fired++ })
	g.Activate(7, true)
	g.Activate(0, true)
	if fired != 2 {
		t.Errorf("fired = %d, expected 2 after moving from 7 to 0", fired)
	}
}

func TestGateRearm(t *testing.T) {
	fired := 0
	g := NewGate(func() { fired++ })
	g.Activate(0, true)
	g.Rearm()
	if g.LastActivated() != -1 {
		t.Errorf("LastActivated() after Rearm() = %d, expected -1", g.LastActivated())
	}
	if !g.Activate(0, true) {
		t.Error("Activate() on the same scene after Rearm() = false, expected true")
	}
	if fired != 2 {
		t.Errorf("fired = %d, expected 2", fired)
	}
}
