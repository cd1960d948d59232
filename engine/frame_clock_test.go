package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFrameClockSleepsFixedIntervalAfterEachTick(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	fc := NewFrameClock(16*time.Millisecond, mock)

	n := 0
	err := fc.Run(context.Background(), func() bool {
		n++
		return n < 5
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fc.Ticks() != 5 {
		t.Errorf("ticks = %d, want 5", fc.Ticks())
	}

	// No sleep after the final tick
	sleeps := mock.Sleeps()
	if len(sleeps) != 4 {
		t.Fatalf("sleeps = %d, want 4", len(sleeps))
	}
	for i, d := range sleeps {
		if d != 16*time.Millisecond {
			t.Errorf("sleep %d = %v, want 16ms", i, d)
		}
	}
}

func TestFrameClockContextCancelBetweenTicks(t *testing.T) {
	mock := NewMockTimeProvider(time.Now())
	fc := NewFrameClock(16*time.Millisecond, mock)

	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	err := fc.Run(ctx, func() bool {
		n++
		if n == 3 {
			cancel()
		}
		return true
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if n != 3 {
		t.Errorf("tick ran %d times, want 3 (cancel observed after the tick)", n)
	}
}

func TestFrameClockStop(t *testing.T) {
	fc := NewFrameClock(time.Millisecond, nil)

	n := 0
	err := fc.Run(context.Background(), func() bool {
		n++
		if n == 2 {
			fc.Stop()
			fc.Stop()
		}
		return true
	})
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("err = %v, want ErrStopped", err)
	}
	if n != 2 {
		t.Errorf("ticks = %d, want 2", n)
	}
}

func TestFrameClockRejectsConcurrentRun(t *testing.T) {
	fc := NewFrameClock(time.Millisecond, NewMockTimeProvider(time.Now()))
	inner := make(chan error, 1)
	_ = fc.Run(context.Background(), func() bool {
		inner <- fc.Run(context.Background(), func() bool { return false })
		return false
	})
	if err := <-inner; err == nil {
		t.Error("nested Run should fail")
	}
}
