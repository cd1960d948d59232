package input

import (
	"fmt"
	"io"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Recording is the per-tick input log of one match
// Ticks holds one entry per Read call, paused ticks included
type Recording struct {
	Version int             `msgpack:"version"`
	Players int             `msgpack:"players"`
	Ticks   [][]PlayerInput `msgpack:"ticks"`
}

const recordingVersion = 1

// Recorder wraps a Source and logs everything it returns
type Recorder struct {
	src Source

	mu  sync.Mutex
	rec Recording
}

// NewRecorder creates a recorder in front of src
func NewRecorder(src Source, players int) *Recorder {
	return &Recorder{
		src: src,
		rec: Recording{Version: recordingVersion, Players: players},
	}
}

// Read implements Source
func (r *Recorder) Read(frame uint64) []PlayerInput {
	in := r.src.Read(frame)
	dup := make([]PlayerInput, len(in))
	copy(dup, in)

	r.mu.Lock()
	r.rec.Ticks = append(r.rec.Ticks, dup)
	r.mu.Unlock()
	return in
}

// Len returns the number of recorded ticks
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rec.Ticks)
}

// Save encodes the recording as msgpack
func (r *Recorder) Save(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := msgpack.NewEncoder(w).Encode(&r.rec); err != nil {
		return fmt.Errorf("encode recording: %w", err)
	}
	return nil
}

// LoadRecording decodes a msgpack recording
func LoadRecording(rd io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(rd).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}
	if rec.Version != recordingVersion {
		return nil, fmt.Errorf("unsupported recording version %d", rec.Version)
	}
	return &rec, nil
}

// Replay plays a recording back as a Source
// Once exhausted every player reads idle
type Replay struct {
	mu   sync.Mutex
	rec  *Recording
	next int
}

// NewReplay creates a replay source
func NewReplay(rec *Recording) *Replay {
	return &Replay{rec: rec}
}

// Read implements Source
func (r *Replay) Read(uint64) []PlayerInput {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.next < len(r.rec.Ticks) {
		tick := r.rec.Ticks[r.next]
		r.next++
		out := make([]PlayerInput, len(tick))
		copy(out, tick)
		return out
	}
	return IdleSource{Players: r.rec.Players}.Read(0)
}

// Exhausted reports whether every recorded tick has been returned
func (r *Replay) Exhausted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next >= len(r.rec.Ticks)
}
