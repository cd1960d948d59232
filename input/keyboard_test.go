package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func newTestKeyboard(players int) (*Keyboard, *stepClock) {
	clk := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewKeyboard(nil, players, clk), clk
}

func TestKeyboardSnapshotConsumesPresses(t *testing.T) {
	kb, _ := newTestKeyboard(2)
	kb.HandleEvent(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone))

	s := kb.Snapshot()
	if !s.Pressed(KeyF1) {
		t.Fatal("F1 should be pressed in first snapshot")
	}
	s = kb.Snapshot()
	if s.Pressed(KeyF1) {
		t.Error("F1 press must be consumed by the first snapshot")
	}
	if !s.Held(KeyF1) {
		t.Error("F1 should still be held within the hold window")
	}
}

func TestKeyboardHoldWindowExpires(t *testing.T) {
	kb, clk := newTestKeyboard(1)
	kb.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone))
	kb.Snapshot()

	clk.now = clk.now.Add(DefaultHoldWindow + time.Millisecond)
	if kb.Snapshot().Held(Key3) {
		t.Error("key should no longer be held after the hold window")
	}
}

func TestKeyboardShiftModifier(t *testing.T) {
	kb, _ := newTestKeyboard(1)
	kb.HandleEvent(tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModShift))
	s := kb.Snapshot()
	if !s.Pressed(KeyF2) || !s.Held(KeyLShift) {
		t.Errorf("shift+F2 should press F2 and hold shift")
	}
}

func TestKeyboardReadDrivesPlayerZero(t *testing.T) {
	kb, _ := newTestKeyboard(2)
	kb.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	kb.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))

	in := kb.Read(0)
	if len(in) != 2 {
		t.Fatalf("len = %d, want 2", len(in))
	}
	if !in[0].Start.Press {
		t.Error("player 0 start should be pressed")
	}
	if in[0].StickX != 1 {
		t.Errorf("player 0 stick x = %v, want 1", in[0].StickX)
	}
	if in[1].Start.Press || in[1].StickX != 0 {
		t.Errorf("player 1 should be idle, got %+v", in[1])
	}

	// Start is edge-only: the next read without a new Enter is released
	in = kb.Read(1)
	if in[0].Start.Value {
		t.Error("start should not remain held")
	}

	// Pad and debug presses are consumed independently
	if !kb.Snapshot().Pressed(KeyEnter) {
		t.Error("debug snapshot should still see Enter")
	}
}

func TestKeyboardQuitKeys(t *testing.T) {
	kb, _ := newTestKeyboard(1)
	quits := 0
	kb.OnQuit(func() { quits++ })
	kb.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	kb.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if quits != 2 {
		t.Errorf("quit callbacks = %d, want 2", quits)
	}
	if kb.Snapshot().Pressed(KeyEscape) {
		t.Error("quit keys are not reported as presses")
	}
}

func TestKeyboardIgnoresNonKeyEvents(t *testing.T) {
	kb, _ := newTestKeyboard(1)
	kb.HandleEvent(tcell.NewEventResize(80, 24))
	s := kb.Snapshot()
	for k := Key(1); k < keyCount; k++ {
		if s.Held(k) {
			t.Fatalf("unexpected held key %v", k)
		}
	}
}
