package input

import "testing"

func TestParseKeyRoundTrip(t *testing.T) {
	for k := Key(0); k < keyCount; k++ {
		got, err := ParseKey(k.String())
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKey(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if _, err := ParseKey("f1"); err != nil {
		t.Errorf("lowercase name should parse: %v", err)
	}
	if _, err := ParseKey("Hyper"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestKeySnapshotPressedImpliesHeld(t *testing.T) {
	s := NewKeySnapshot([]Key{KeyF1}, []Key{KeyLShift})
	if !s.Pressed(KeyF1) || !s.Held(KeyF1) {
		t.Error("F1 should be pressed and held")
	}
	if s.Pressed(KeyLShift) {
		t.Error("LShift only held, not pressed")
	}
	if !s.Held(KeyLShift) {
		t.Error("LShift should be held")
	}
	if s.Pressed(Key(200)) || s.Held(Key(200)) {
		t.Error("out of range key must read false")
	}
}

func TestDebugBindingsOverride(t *testing.T) {
	b := DefaultDebugBindings()
	err := b.Override(map[string]string{"frame_advance": "Enter", "clear": "F4", "focus2": ""})
	if err != nil {
		t.Fatalf("Override: %v", err)
	}
	if b.FrameAdvance != KeyEnter || b.Clear != KeyF4 {
		t.Errorf("overrides not applied: %+v", b)
	}
	if b.Focus[1] != Key2 {
		t.Errorf("empty override should keep default, got %v", b.Focus[1])
	}

	if err := b.Override(map[string]string{"warp": "F1"}); err == nil {
		t.Error("expected error for unknown binding")
	}
	if err := b.Override(map[string]string{"physics": "F99"}); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestShiftHeld(t *testing.T) {
	b := DefaultDebugBindings()
	if b.ShiftHeld(NewKeySnapshot(nil, nil)) {
		t.Error("no shift held")
	}
	if !b.ShiftHeld(NewKeySnapshot(nil, []Key{KeyRShift})) {
		t.Error("right shift should count")
	}
}
