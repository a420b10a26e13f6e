package parameter

import "time"

// Die Visuals (DieActor defaults)
const (
	// DieShakeCount is the number of down/up cycles played before a reveal
	DieShakeCount = 3

	// DieShakeDistance is the vertical displacement of one shake, in cells
	DieShakeDistance = 1.0

	// DieTextMoveDistance is how far the result text rises above the die
	DieTextMoveDistance = 2.0

	// DieFailDistance is how far a losing die drops
	DieFailDistance = 2.0

	DieShakeDuration  = 60 * time.Millisecond
	DieTextDuration   = 150 * time.Millisecond
	DieFailDuration   = 250 * time.Millisecond
	DieReturnDuration = 50 * time.Millisecond
)
