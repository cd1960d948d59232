package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock tracks match wall time with pause duration accounting
// Now freezes while paused; RealTime keeps moving
type PausableClock struct {
	mu sync.RWMutex

	src       TimeProvider
	startTime time.Time

	isPaused        atomic.Bool
	pauseStartTime  time.Time     // When current pause started (real time)
	totalPausedTime time.Duration // Cumulative completed pauses
	pauseCount      int
}

// NewPausableClock creates a clock reading from src, the system clock when nil
func NewPausableClock(src TimeProvider) *PausableClock {
	if src == nil {
		src = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		src:       src,
		startTime: src.Now(),
	}
}

// Now returns match time: start + real elapsed - paused time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.startTime.Add(pc.pauseStartTime.Sub(pc.startTime) - pc.totalPausedTime)
	}
	return pc.startTime.Add(pc.src.Now().Sub(pc.startTime) - pc.totalPausedTime)
}

// RealTime returns the underlying wall clock reading
func (pc *PausableClock) RealTime() time.Time {
	return pc.src.Now()
}

// Elapsed returns match time since the clock was created
func (pc *PausableClock) Elapsed() time.Duration {
	return pc.Now().Sub(pc.startTime)
}

// Pause stops match time advancement, no-op when already paused
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		pc.pauseStartTime = pc.src.Now()
		pc.pauseCount++
		pc.mu.Unlock()
	}
}

// Resume continues match time advancement, no-op when running
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		if !pc.pauseStartTime.IsZero() {
			pc.totalPausedTime += pc.src.Now().Sub(pc.pauseStartTime)
			pc.pauseStartTime = time.Time{}
		}
	}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including the current pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.src.Now().Sub(pc.pauseStartTime)
	}
	return total
}

// PauseCount returns how many times the clock was paused
func (pc *PausableClock) PauseCount() int {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.pauseCount
}
