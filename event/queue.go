package event

// Queue collects events raised during a step so they are dispatched after it
// Owned by the simulation goroutine, not safe for concurrent use
type Queue struct {
	pending []EventType
}

// Push appends et
func (q *Queue) Push(et EventType) {
	q.pending = append(q.pending, et)
}

// PushOnce appends et unless it is already pending
func (q *Queue) PushOnce(et EventType) {
	for _, p := range q.pending {
		if p == et {
			return
		}
	}
	q.pending = append(q.pending, et)
}

// Len returns the number of pending events
func (q *Queue) Len() int {
	return len(q.pending)
}

// Drain returns pending events in FIFO order and empties the queue
func (q *Queue) Drain() []EventType {
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}
