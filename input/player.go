// Package input defines the structured per-frame input consumed by the match
// core and the device collaborators that produce it.
package input

import (
	"fmt"
	"strings"
)

// Button is the per-frame state of a digital control
// Value is held this frame, Press is the down edge on this frame only
type Button struct {
	Value bool `msgpack:"v"`
	Press bool `msgpack:"p"`
}

// Next derives the following frame's button state from the raw down flag
func (b Button) Next(down bool) Button {
	return Button{Value: down, Press: down && !b.Value}
}

// PlayerInput is one player's structured input sample for a single tick
type PlayerInput struct {
	Plugged bool    `msgpack:"plugged"`
	Start   Button  `msgpack:"start"`
	A       Button  `msgpack:"a"`
	B       Button  `msgpack:"b"`
	Jump    Button  `msgpack:"jump"`
	Shield  Button  `msgpack:"shield"`
	StickX  float64 `msgpack:"sx"`
	StickY  float64 `msgpack:"sy"`
}

// Idle returns a plugged-in sample with no buttons held
func Idle() PlayerInput {
	return PlayerInput{Plugged: true}
}

// String renders the raw sample on a single line
func (in PlayerInput) String() string {
	return fmt.Sprintf("plugged=%t start=%s a=%s b=%s jump=%s shield=%s stick=(%.2f,%.2f)",
		in.Plugged, in.Start, in.A, in.B, in.Jump, in.Shield, in.StickX, in.StickY)
}

// String renders a button as value/press flags
func (b Button) String() string {
	switch {
	case b.Press:
		return "press"
	case b.Value:
		return "held"
	default:
		return "up"
	}
}

// Diff lists fields that changed from prev to in, in declaration order
func (in PlayerInput) Diff(prev PlayerInput) []string {
	var out []string
	if in.Plugged != prev.Plugged {
		out = append(out, fmt.Sprintf("plugged:%t->%t", prev.Plugged, in.Plugged))
	}
	buttons := []struct {
		name      string
		cur, prev Button
	}{
		{"start", in.Start, prev.Start},
		{"a", in.A, prev.A},
		{"b", in.B, prev.B},
		{"jump", in.Jump, prev.Jump},
		{"shield", in.Shield, prev.Shield},
	}
	for _, b := range buttons {
		if b.cur != b.prev {
			out = append(out, fmt.Sprintf("%s:%s->%s", b.name, b.prev, b.cur))
		}
	}
	if in.StickX != prev.StickX {
		out = append(out, fmt.Sprintf("stick_x:%.2f->%.2f", prev.StickX, in.StickX))
	}
	if in.StickY != prev.StickY {
		out = append(out, fmt.Sprintf("stick_y:%.2f->%.2f", prev.StickY, in.StickY))
	}
	return out
}

// DiffString joins Diff output, "none" when nothing changed
func (in PlayerInput) DiffString(prev PlayerInput) string {
	d := in.Diff(prev)
	if len(d) == 0 {
		return "none"
	}
	return strings.Join(d, " ")
}

// Pad turns raw held flags into edge-detected samples across frames
type Pad struct {
	last PlayerInput
}

// PadState is the raw device state for one player on one frame
type PadState struct {
	Start, A, B, Jump, Shield bool
	StickX, StickY            float64
}

// Sample advances the pad by one frame
func (p *Pad) Sample(raw PadState) PlayerInput {
	next := PlayerInput{
		Plugged: true,
		Start:   p.last.Start.Next(raw.Start),
		A:       p.last.A.Next(raw.A),
		B:       p.last.B.Next(raw.B),
		Jump:    p.last.Jump.Next(raw.Jump),
		Shield:  p.last.Shield.Next(raw.Shield),
		StickX:  clampAxis(raw.StickX),
		StickY:  clampAxis(raw.StickY),
	}
	p.last = next
	return next
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
