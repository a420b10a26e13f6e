// Package clock provides the deferred one-shot calls the animation layer is
// scheduled on. Real wraps the runtime timers; Manual is advanced explicitly
// by tests; Scaled speeds a clock up for headless simulation.
package clock

import "time"

// Clock is a time source that can defer a call
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending deferred call
type Timer interface {
	// Stop prevents the call from firing, returns false if it already fired or was stopped
	Stop() bool
}

// Real is the wall clock with monotonic readings
type Real struct{}

// NewReal creates a wall clock
func NewReal() *Real {
	return &Real{}
}

// Now returns the current time with monotonic clock reading
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on its own goroutine after d
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Scaled divides every deferred duration by a speed factor
type Scaled struct {
	base  Clock
	speed float64
}

// NewScaled wraps base so that deferred calls run speed times faster
// Speeds <= 0 are treated as 1
func NewScaled(base Clock, speed float64) *Scaled {
	if speed <= 0 {
		speed = 1
	}
	return &Scaled{base: base, speed: speed}
}

func (s *Scaled) Now() time.Time {
	return s.base.Now()
}

func (s *Scaled) AfterFunc(d time.Duration, f func()) Timer {
	return s.base.AfterFunc(time.Duration(float64(d)/s.speed), f)
}
