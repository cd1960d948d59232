package input

// Source supplies one ordered input sample per player for a tick
// Read may block briefly but must not perform simulation
type Source interface {
	Read(frame uint64) []PlayerInput
}

// SourceFunc adapts a function to Source
type SourceFunc func(frame uint64) []PlayerInput

// Read implements Source
func (f SourceFunc) Read(frame uint64) []PlayerInput {
	return f(frame)
}

// IdleSource reports every player plugged in with nothing pressed
type IdleSource struct {
	Players int
}

// Read implements Source
func (s IdleSource) Read(uint64) []PlayerInput {
	out := make([]PlayerInput, s.Players)
	for i := range out {
		out[i] = Idle()
	}
	return out
}
