package fsm

import (
	"fmt"

	"github.com/lixenwraith/pf-sandbox/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters InitialStateID, running OnEnter from Root down
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}
	if node.Path == nil {
		return fmt.Errorf("state %q has no compiled path", node.Name)
	}

	m.activeStateID = node.ID
	m.activePath = append(m.activePath[:0], node.Path...)
	m.ticksInState = 0

	for _, id := range m.activePath {
		m.run(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Update runs the leaf's OnUpdate actions then evaluates tick transitions, bubbling up
// Returns true if a transition fired
func (m *Machine[T]) Update(ctx T) bool {
	if m.activeStateID == StateNone {
		return false
	}
	m.ticksInState++

	m.run(ctx, m.nodes[m.activeStateID].OnUpdate)
	return m.fire(ctx, event.EventTick)
}

// HandleEvent routes an external event from the active leaf towards Root
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, et event.EventType) bool {
	if m.activeStateID == StateNone || et == event.EventTick {
		return false
	}
	return m.fire(ctx, et)
}

func (m *Machine[T]) fire(ctx T, et event.EventType) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != et {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition exits up to the LCA and enters down to target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}
	target, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("fsm: transition to unknown state ID %d", targetID))
	}

	lca := -1
	for i := 0; i < len(m.activePath) && i < len(target.Path); i++ {
		if m.activePath[i] != target.Path[i] {
			break
		}
		lca = i
	}

	for i := len(m.activePath) - 1; i > lca; i-- {
		m.run(ctx, m.nodes[m.activePath[i]].OnExit)
	}

	// Committed before enter actions so they observe the new state
	m.activeStateID = targetID
	m.activePath = append(m.activePath[:0], target.Path...)
	m.ticksInState = 0

	for i := lca + 1; i < len(target.Path); i++ {
		m.run(ctx, m.nodes[target.Path[i]].OnEnter)
	}
}

func (m *Machine[T]) run(ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}

// ActiveStateID returns the current leaf
func (m *Machine[T]) ActiveStateID() StateID {
	return m.activeStateID
}

// ActiveStateName returns the current leaf's name
func (m *Machine[T]) ActiveStateName() string {
	return m.StateName(m.activeStateID)
}

// IsActive reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) IsActive(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// TicksInState returns Update calls since the last transition
func (m *Machine[T]) TicksInState() uint64 {
	return m.ticksInState
}

// StateName returns the name of id, empty when unknown
func (m *Machine[T]) StateName(id StateID) string {
	if n, ok := m.nodes[id]; ok {
		return n.Name
	}
	return ""
}

// GetStateID resolves a state name to ID
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	for id, node := range m.nodes {
		if node.Name == name {
			return id, true
		}
	}
	return StateNone, false
}
