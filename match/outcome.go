package match

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// EndReason says why Run returned
type EndReason string

const (
	EndTimeUp     EndReason = "time_up"
	EndFrameLimit EndReason = "frame_limit"
	EndCancelled  EndReason = "cancelled"
)

// PlayerResult is a player's final standing
type PlayerResult struct {
	Index    int        `yaml:"index"`
	Fighter  string     `yaml:"fighter"`
	Stocks   int        `yaml:"stocks"`
	Action   string     `yaml:"action"`
	Position [2]float64 `yaml:"position,flow"`
}

// Outcome is the terminal result handed back to the session
type Outcome struct {
	ID        string         `yaml:"id"`
	Reason    EndReason      `yaml:"reason"`
	Mode      string         `yaml:"mode"`
	Frames    uint64         `yaml:"frames"`
	EndFrame  uint64         `yaml:"end_frame,omitempty"`
	Stage     string         `yaml:"stage"`
	Players   []PlayerResult `yaml:"players"`
	Leaders   []int          `yaml:"leaders,flow"`
	PausedFor time.Duration  `yaml:"paused_for"`
	Metrics   map[string]any `yaml:"metrics,omitempty"`
}

// Outcome snapshots the match into a result
func (m *Match) Outcome(reason EndReason) Outcome {
	out := Outcome{
		ID:        uuid.NewString(),
		Reason:    reason,
		Mode:      m.mode.String(),
		Frames:    m.frames,
		EndFrame:  m.endFrame,
		Stage:     m.stageName,
		PausedFor: m.clock.TotalPauseDuration(),
	}

	best := -1
	for i, p := range m.roster.Snapshot() {
		out.Players = append(out.Players, PlayerResult{
			Index:    i,
			Fighter:  m.fighterNames[i],
			Stocks:   p.Stocks,
			Action:   p.Action.String(),
			Position: [2]float64{p.Pos.X(), p.Pos.Y()},
		})
		switch {
		case p.Stocks > best:
			best = p.Stocks
			out.Leaders = []int{i}
		case p.Stocks == best:
			out.Leaders = append(out.Leaders, i)
		}
	}

	m.metrics.Floats.Get("match.paused_seconds").Store(out.PausedFor.Seconds())
	out.Metrics = m.metrics.Snapshot()
	return out
}

// WriteYAML writes the outcome as a YAML document
func (o Outcome) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	return enc.Close()
}
