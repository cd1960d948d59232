package constants

import "time"

// Match Loop Timing Constants
const (
	// TickInterval is the fixed sleep between simulation ticks (~60 Hz)
	TickInterval = 16 * time.Millisecond

	// TicksPerSecond converts the frame counter into match seconds for the time limit
	TicksPerSecond = 60
)

// Match Defaults
const (
	// MaxPlayers is the number of focusable player slots in the debug controller
	MaxPlayers = 4

	// DefaultStockCount is used when the package rules omit a stock count
	DefaultStockCount = 3

	// DefaultTimeLimit is the match length in seconds
	DefaultTimeLimit = 480
)

// Diagnostics
const (
	// FrameHeaderRule separates per-frame diagnostic blocks
	FrameHeaderRule = "-------------------------------------------"
)
