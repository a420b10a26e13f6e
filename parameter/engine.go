package parameter

import "time"

// Frame & Clock Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~30 FPS, terminal bound)
	FrameUpdateInterval = 33 * time.Millisecond

	// TweenStepInterval is the resolution at which tweened properties are advanced
	TweenStepInterval = 16 * time.Millisecond

	// DefaultFrameRate is used for animations whose manifest omits frame_rate
	DefaultFrameRate = 10.0

	// SimulationSpeed is the clock scale used by headless simulation
	SimulationSpeed = 50.0

	// SimulationMaxRounds ends a headless match without a winner
	// Overshooting damage under the exact-zero rule can otherwise fight forever
	SimulationMaxRounds = 500
)

// Event Feed Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
