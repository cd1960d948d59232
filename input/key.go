package input

import (
	"fmt"
	"strings"
)

// Key identifies a debug/device key independent of the terminal backend
type Key uint8

const (
	KeyNone Key = iota
	KeySpace
	Key1
	Key2
	Key3
	Key4
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyLShift
	KeyRShift
	KeyEnter
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyZ
	KeyX
	KeyC
	KeyV
	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:   "None",
	KeySpace:  "Space",
	Key1:      "1",
	Key2:      "2",
	Key3:      "3",
	Key4:      "4",
	KeyF1:     "F1",
	KeyF2:     "F2",
	KeyF3:     "F3",
	KeyF4:     "F4",
	KeyF5:     "F5",
	KeyLShift: "LShift",
	KeyRShift: "RShift",
	KeyEnter:  "Enter",
	KeyEscape: "Escape",
	KeyLeft:   "Left",
	KeyRight:  "Right",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyZ:      "Z",
	KeyX:      "X",
	KeyC:      "C",
	KeyV:      "V",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// ParseKey resolves a key name (case-insensitive) as used in config files
func ParseKey(name string) (Key, error) {
	name = strings.TrimSpace(name)
	for k := Key(0); k < keyCount; k++ {
		if strings.EqualFold(keyNames[k], name) {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("unknown key name %q", name)
}

// KeyState answers per-tick queries about the raw debug device
type KeyState interface {
	// Pressed reports whether k went down during this tick
	Pressed(k Key) bool
	// Held reports whether k is currently down
	Held(k Key) bool
}

// KeyReader supplies one KeyState snapshot per tick
type KeyReader interface {
	Snapshot() KeyState
}

// KeySnapshot is an immutable KeyState value
type KeySnapshot struct {
	pressed [keyCount]bool
	held    [keyCount]bool
}

// NewKeySnapshot builds a snapshot; pressed keys are also reported as held
func NewKeySnapshot(pressed []Key, held []Key) KeySnapshot {
	var s KeySnapshot
	for _, k := range pressed {
		if k < keyCount {
			s.pressed[k] = true
			s.held[k] = true
		}
	}
	for _, k := range held {
		if k < keyCount {
			s.held[k] = true
		}
	}
	return s
}

// Pressed implements KeyState
func (s KeySnapshot) Pressed(k Key) bool {
	return k < keyCount && s.pressed[k]
}

// Held implements KeyState
func (s KeySnapshot) Held(k Key) bool {
	return k < keyCount && s.held[k]
}

// NoKeys is the empty snapshot
var NoKeys = KeySnapshot{}

// StaticKeys is a KeyReader returning the same snapshot every tick
type StaticKeys struct {
	State KeySnapshot
}

// Snapshot implements KeyReader
func (s StaticKeys) Snapshot() KeyState {
	return s.State
}
