// Package audio plays short tones for match events through the beep speaker.
// Audio is optional: when the device cannot be opened cues are counted and dropped.
package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/pf-sandbox/event"
	"github.com/lixenwraith/pf-sandbox/status"
)

const defaultSampleRate = 48000

// Config controls cue playback
type Config struct {
	Enabled    bool
	Volume     float64 // 0.0 - 1.0
	SampleRate int
}

// DefaultConfig returns enabled cues at moderate volume
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: 0.5, SampleRate: defaultSampleRate}
}

// Cues implements match.CueSink
type Cues struct {
	cfg  Config
	rate beep.SampleRate

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool

	// play hands a streamer to the output; replaced in tests
	play func(beep.Streamer)

	statPlayed  *atomic.Int64
	statDropped *atomic.Int64
}

// NewCues creates a cue player; call Start to open the speaker
func NewCues(cfg Config, reg *status.Registry) *Cues {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	cfg.Volume = min(max(cfg.Volume, 0), 1)
	if reg == nil {
		reg = status.NewRegistry()
	}
	c := &Cues{
		cfg:         cfg,
		rate:        beep.SampleRate(cfg.SampleRate),
		mixer:       &beep.Mixer{},
		statPlayed:  reg.Ints.Get("audio.played"),
		statDropped: reg.Ints.Get("audio.dropped"),
	}
	c.play = c.playSpeaker
	return c
}

// Start opens the speaker; failure leaves cues silent and is returned for logging only
func (c *Cues) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cfg.Enabled || c.initialized {
		return nil
	}
	if err := speaker.Init(c.rate, c.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cue plays the tone for et without blocking the caller
func (c *Cues) Cue(et event.EventType) {
	s := c.Sound(et)
	if s == nil || !c.cfg.Enabled {
		c.statDropped.Add(1)
		return
	}
	c.play(newVolume(s, c.cfg.Volume))
}

// Sound builds the streamer for an event, nil when the event has no cue
func (c *Cues) Sound(et event.EventType) beep.Streamer {
	switch et {
	case event.EventPausePressed:
		return sequence(c.rate,
			note{freq: 880, dur: 60 * time.Millisecond, wave: WaveSquare},
			note{freq: 660, dur: 90 * time.Millisecond, wave: WaveSquare})
	case event.EventResumePressed:
		return sequence(c.rate,
			note{freq: 660, dur: 60 * time.Millisecond, wave: WaveSquare},
			note{freq: 880, dur: 90 * time.Millisecond, wave: WaveSquare})
	case event.EventMatchEnd:
		return chord(c.rate,
			note{freq: 523.25, dur: 400 * time.Millisecond, wave: WaveTriangle},
			note{freq: 659.25, dur: 400 * time.Millisecond, wave: WaveTriangle},
			note{freq: 783.99, dur: 400 * time.Millisecond, wave: WaveTriangle})
	}
	return nil
}

func (c *Cues) playSpeaker(s beep.Streamer) {
	c.mu.Lock()
	ready := c.initialized
	c.mu.Unlock()
	if !ready {
		c.statDropped.Add(1)
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
	c.statPlayed.Add(1)
}

// Close silences pending cues
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
	log.Printf("[AUDIO] closed")
}
