package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrStopped is returned by Run after Stop
var ErrStopped = errors.New("frame clock stopped")

// TickFunc runs one frame; returning false ends the loop
type TickFunc func() bool

// FrameClock drives a tick function at a fixed cadence
// It sleeps a full interval after every tick without drift correction, so
// the effective rate is interval plus tick cost
type FrameClock struct {
	interval time.Duration
	sleeper  Sleeper

	ticks   atomic.Uint64
	running atomic.Bool

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewFrameClock creates a clock with the given interval, sleeping on the system clock when sleeper is nil
func NewFrameClock(interval time.Duration, sleeper Sleeper) *FrameClock {
	if sleeper == nil {
		sleeper = NewMonotonicTimeProvider()
	}
	return &FrameClock{
		interval: interval,
		sleeper:  sleeper,
		stopChan: make(chan struct{}),
	}
}

// Interval returns the sleep between ticks
func (fc *FrameClock) Interval() time.Duration {
	return fc.interval
}

// Ticks returns the number of completed ticks
func (fc *FrameClock) Ticks() uint64 {
	return fc.ticks.Load()
}

// Run calls tick then sleeps, until tick returns false, ctx is done or Stop is called
// Cancellation is observed between ticks only, never inside tick
func (fc *FrameClock) Run(ctx context.Context, tick TickFunc) error {
	if !fc.running.CompareAndSwap(false, true) {
		return errors.New("frame clock already running")
	}
	defer fc.running.Store(false)

	sleepCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-fc.stopChan:
			cancel()
		case <-sleepCtx.Done():
		}
	}()

	for {
		select {
		case <-fc.stopChan:
			return ErrStopped
		default:
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cont := tick()
		fc.ticks.Add(1)
		if !cont {
			return nil
		}

		if err := fc.sleeper.Sleep(sleepCtx, fc.interval); err != nil {
			select {
			case <-fc.stopChan:
				return ErrStopped
			default:
			}
			return err
		}
	}
}

// Stop ends a running loop after its current tick; safe to call repeatedly
func (fc *FrameClock) Stop() {
	fc.stopOnce.Do(func() {
		close(fc.stopChan)
	})
}
