package parameter

// Layout
const (
	// ArenaWidth and ArenaHeight are the arena size in cells; stage manifests use these coordinates
	ArenaWidth  = 48
	ArenaHeight = 16

	// HUDHeight is the rows above the arena (names and health bars)
	HUDHeight = 2
	// FooterHeight is the rows below the arena (prompt and event log)
	FooterHeight = 4

	// HealthBarWidth is the number of cells in a health bar
	HealthBarWidth = 20

	// DieGap is the number of rows between a fighter's head and its die
	DieGap = 2

	// EventLogLines is the number of recent fight events shown
	EventLogLines = 2

	// MinScreenWidth and MinScreenHeight below which the arena is not drawn
	MinScreenWidth  = ArenaWidth
	MinScreenHeight = HUDHeight + ArenaHeight + FooterHeight
)

// Text
const (
	RoundTriggerText = "[space] roll"
	RematchText      = "[r] rematch  [q] quit"
	OptionsHelpText  = "[h]p [d]amage [c]rit [m]usic [s]fx [0] reset"
	TooSmallText     = "terminal too small"
)

// Particle rise speed in cells per second
const ParticleRiseSpeed = 4.0
