package match

import (
	"context"
	"errors"
	"log"

	"github.com/lixenwraith/pf-sandbox/engine"
	"github.com/lixenwraith/pf-sandbox/input"
)

// Run drives the match on a fixed-interval clock until it enters Results
// Each tick reads input and keys before any lock is taken, steps the current
// mode, then sleeps. Cancellation is observed between ticks only; the outcome
// is returned alongside ctx's error in that case
func (m *Match) Run(ctx context.Context, src input.Source, keys input.KeyReader) (Outcome, error) {
	if keys == nil {
		keys = input.StaticKeys{}
	}
	reason := EndTimeUp

	clock := engine.NewFrameClock(m.opts.TickInterval, m.opts.Sleeper)
	err := clock.Run(ctx, func() bool {
		inputs := src.Read(m.frames)
		ks := keys.Snapshot()
		m.Tick(inputs, ks)

		if m.mode == ModeResults {
			return false
		}
		if m.opts.MaxFrames > 0 && m.frames >= m.opts.MaxFrames {
			reason = EndFrameLimit
			return false
		}
		return true
	})

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			reason = EndCancelled
		}
		log.Printf("[MATCH] run stopped at frame=%d: %v", m.frames, err)
		return m.Outcome(reason), err
	}

	log.Printf("[MATCH] run finished at frame=%d mode=%s reason=%s", m.frames, m.mode, reason)
	return m.Outcome(reason), nil
}
