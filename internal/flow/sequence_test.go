package flow

import "testing"

func TestSequenceEightSceneEndToEnd(t *testing.T) {
	q := NewSequence(8)
	s := q.InitialState()

	for i := 1; i <= 7; i++ {
		s = q.Transition(s, EventPrimaryAction)
		if s.Index() != i {
			t.Fatalf("after %d actions Index() = %d, expected %d", i, s.Index(), i)
		}
	}
	if !q.IsFinal(s) {
		t.Error("IsFinal() = false at scene 7, expected true")
	}

	again := q.Transition(s, EventPrimaryAction)
	if again != s {
		t.Errorf("PRIMARY_ACTION at final scene = %v, expected %v", again, s)
	}

	s = q.Transition(s, EventReplay)
	if s.Index() != 0 {
		t.Errorf("after REPLAY Index() = %d, expected 0", s.Index())
	}
}

func TestSequenceReplayFromAnyScene(t *testing.T) {
	q := NewSequence(8)
	s := q.InitialState()
	for i := 0; i < 8; i++ {
		if got := q.Transition(s, EventReplay); got != q.InitialState() {
			t.Errorf("REPLAY at scene %d = %v, expected initial", s.Index(), got)
		}
		s = q.Transition(s, EventPrimaryAction)
	}
}

func TestSequenceUnknownEvent(t *testing.T) {
	q := NewSequence(3)
	s := q.Transition(q.InitialState(), EventPrimaryAction)
	if got := q.Transition(s, SceneEvent("SKIP")); got != s {
		t.Errorf("Transition(SKIP) = %v, expected %v", got, s)
	}
}

func TestNewSequenceMinimumLength(t *testing.T) {
	q := NewSequence(0)
	if q.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", q.Len())
	}
	if !q.IsFinal(q.InitialState()) {
		t.Error("single scene sequence should start final")
	}
}
