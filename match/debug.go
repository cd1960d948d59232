package match

import (
	"fmt"
	"io"

	"github.com/tidwall/sjson"

	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/input"
)

// DebugKind selects a diagnostic view of one player
type DebugKind int

const (
	DebugPhysics DebugKind = iota
	DebugInput
	DebugInputDiff
	DebugAction
	DebugFrame
)

func (k DebugKind) String() string {
	switch k {
	case DebugPhysics:
		return "physics"
	case DebugInput:
		return "input"
	case DebugInputDiff:
		return "input-diff"
	case DebugAction:
		return "action"
	case DebugFrame:
		return "frame"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DebugOutput is a registered (kind, player) diagnostic descriptor
type DebugOutput struct {
	Kind   DebugKind
	Player int
}

// FrameView is the read-only post-step state diagnostics render against
// Valid only while the step holds its locks
type FrameView struct {
	Frame      uint64
	Players    []Player
	Inputs     []input.PlayerInput
	PrevInputs []input.PlayerInput
	Fighters   []catalog.Fighter
	Selected   []int
	Stage      *catalog.Stage
}

func (v *FrameView) fighter(player int) *catalog.Fighter {
	return &v.Fighters[v.Selected[player]]
}

// Render produces the view text for d, without the frame/player/kind prefix
func (d DebugOutput) Render(v *FrameView) string {
	if d.Player < 0 || d.Player >= len(v.Players) {
		panic(fmt.Sprintf("match: debug output for player %d with %d players", d.Player, len(v.Players)))
	}
	p := &v.Players[d.Player]

	switch d.Kind {
	case DebugPhysics:
		return p.PhysicsString()
	case DebugInput:
		return v.Inputs[d.Player].String()
	case DebugInputDiff:
		var prev input.PlayerInput
		if d.Player < len(v.PrevInputs) {
			prev = v.PrevInputs[d.Player]
		}
		return v.Inputs[d.Player].DiffString(prev)
	case DebugAction:
		return p.ActionString(v.fighter(d.Player))
	case DebugFrame:
		return frameDump(v, d.Player)
	}
	return ""
}

// frameDump builds the full per-player JSON record for one frame
func frameDump(v *FrameView, idx int) string {
	p := &v.Players[idx]
	f := v.fighter(idx)
	in := v.Inputs[idx]

	fields := []struct {
		path  string
		value any
	}{
		{"frame", v.Frame},
		{"player", idx},
		{"fighter", f.Name},
		{"stage", v.Stage.Name},
		{"pos", []float64{p.Pos.X(), p.Pos.Y()}},
		{"vel", []float64{p.Vel.X(), p.Vel.Y()}},
		{"stocks", p.Stocks},
		{"action", p.Action.String()},
		{"action_frame", p.ActionFrame},
		{"airborne", p.Airborne},
		{"facing", p.Facing()},
		{"respawn_timer", p.RespawnTimer},
		{"input.plugged", in.Plugged},
		{"input.start", in.Start.String()},
		{"input.a", in.A.String()},
		{"input.b", in.B.String()},
		{"input.jump", in.Jump.String()},
		{"input.shield", in.Shield.String()},
		{"input.stick", []float64{in.StickX, in.StickY}},
	}

	doc := "{}"
	for _, fld := range fields {
		next, err := sjson.Set(doc, fld.path, fld.value)
		if err != nil {
			// Paths are static, a failure here is a programming error
			panic(fmt.Sprintf("match: frame dump %s: %v", fld.path, err))
		}
		doc = next
	}
	return doc
}

// Overlay is the ordered, append-only set of active debug outputs
type Overlay struct {
	outputs []DebugOutput
}

// Push appends a descriptor
func (o *Overlay) Push(d DebugOutput) {
	o.outputs = append(o.outputs, d)
}

// Clear empties the overlay
func (o *Overlay) Clear() {
	o.outputs = nil
}

// Len returns the number of registered descriptors
func (o *Overlay) Len() int {
	return len(o.outputs)
}

// Outputs returns a copy of the registered descriptors in order
func (o *Overlay) Outputs() []DebugOutput {
	out := make([]DebugOutput, len(o.outputs))
	copy(out, o.outputs)
	return out
}

// Render writes one line per descriptor, preceded by a frame header
// Nothing is written when the overlay is empty
func (o *Overlay) Render(w io.Writer, v *FrameView, header string) error {
	if len(o.outputs) == 0 || w == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\nFrame %d\n", header, v.Frame); err != nil {
		return err
	}
	for _, d := range o.outputs {
		if _, err := fmt.Fprintf(w, "frame=%d player=%d kind=%s %s\n", v.Frame, d.Player, d.Kind, d.Render(v)); err != nil {
			return err
		}
	}
	return nil
}
