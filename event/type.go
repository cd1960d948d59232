// Package event names the discrete inputs that drive the match state machine.
package event

// EventType represents the type of match event
type EventType int

const (
	// EventTick is the implicit per-frame evaluation, used for guarded auto-transitions
	EventTick EventType = iota

	// EventPausePressed is raised when any player presses start while running
	// Trigger: step loop | Consumer: match FSM (Running -> Paused)
	EventPausePressed

	// EventResumePressed is raised when any player presses start while paused
	// Trigger: pause controller | Consumer: match FSM (Paused -> Running)
	EventResumePressed

	// EventFrameAdvance is raised when the debug frame-advance key steps a paused match
	// Trigger: pause controller | Consumer: FSM tick evaluation, metrics
	EventFrameAdvance

	// EventMatchEnd is raised once when the match enters Results
	// Trigger: FSM enter action | Consumer: session loop, audio cues
	EventMatchEnd
)
