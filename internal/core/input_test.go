package core

import "testing"

func TestInputFrameSequence(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	f.Set(ActionLeft)
	f.Set(ActionUp)
	f.Set(ActionLeft)

	if !f.Has(ActionPause) || !f.Has(ActionUp) {
		t.Error("Has should report every set action")
	}
	if f.Has(ActionRestart) {
		t.Error("Has should be false for actions never set")
	}

	want := []Direction{DirLeft, DirUp, DirLeft}
	got := f.Directions()
	if len(got) != len(want) {
		t.Fatalf("Directions() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Directions()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionDown)
	f.Clear()

	if !f.Empty() || f.Has(ActionDown) || len(f.Directions()) != 0 {
		t.Error("Clear should remove all actions")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestActionDirectionRoundTrip(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if got := ActionFor(d).Direction(); got != d {
			t.Errorf("ActionFor(%v).Direction() = %v", d, got)
		}
	}
	if ActionPause.Direction() != DirNone {
		t.Error("non-movement actions should map to DirNone")
	}
}
