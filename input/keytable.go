package input

import "fmt"

// DebugBindings maps pause/debug controller commands to keys
type DebugBindings struct {
	FrameAdvance Key
	Focus        [4]Key
	Physics      Key
	Input        Key // With a shift key held, toggles the input-diff view instead
	Action       Key
	Frame        Key
	Clear        Key
	Shift        []Key
}

// DefaultDebugBindings returns the stock layout: Space, 1-4, F1-F5, either shift
func DefaultDebugBindings() DebugBindings {
	return DebugBindings{
		FrameAdvance: KeySpace,
		Focus:        [4]Key{Key1, Key2, Key3, Key4},
		Physics:      KeyF1,
		Input:        KeyF2,
		Action:       KeyF3,
		Frame:        KeyF4,
		Clear:        KeyF5,
		Shift:        []Key{KeyLShift, KeyRShift},
	}
}

// ShiftHeld reports whether any configured shift key is held
func (b DebugBindings) ShiftHeld(keys KeyState) bool {
	for _, k := range b.Shift {
		if keys.Held(k) {
			return true
		}
	}
	return false
}

// Override applies name->key overrides, e.g. from a [Debug] config section
// Recognised names: frame_advance, focus1..focus4, physics, input, action, frame, clear
func (b *DebugBindings) Override(overrides map[string]string) error {
	for name, keyName := range overrides {
		if keyName == "" {
			continue
		}
		k, err := ParseKey(keyName)
		if err != nil {
			return fmt.Errorf("binding %q: %w", name, err)
		}
		switch name {
		case "frame_advance":
			b.FrameAdvance = k
		case "focus1":
			b.Focus[0] = k
		case "focus2":
			b.Focus[1] = k
		case "focus3":
			b.Focus[2] = k
		case "focus4":
			b.Focus[3] = k
		case "physics":
			b.Physics = k
		case "input":
			b.Input = k
		case "action":
			b.Action = k
		case "frame":
			b.Frame = k
		case "clear":
			b.Clear = k
		default:
			return fmt.Errorf("unknown binding %q", name)
		}
	}
	return nil
}
