package match

import "sync"

// Roster is the lock-guarded player collection shared with other goroutines
// It is the first lock in the Players -> Fighters -> Stages order
type Roster struct {
	mu      sync.Mutex
	players []Player
}

func newRoster(players []Player) *Roster {
	return &Roster{players: players}
}

func (r *Roster) lock() []Player {
	r.mu.Lock()
	return r.players
}

func (r *Roster) unlock() {
	r.mu.Unlock()
}

// View calls fn with the live players under the roster lock
// fn must not mutate or retain the slice; a caller that also needs catalog
// locks must take them inside fn to honour the lock order
func (r *Roster) View(fn func(players []Player)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.players)
}

// Snapshot returns a copy of every player
func (r *Roster) Snapshot() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}

// Len returns the number of players
func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}
