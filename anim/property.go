package anim

import (
	"math"
	"sync/atomic"
)

// Property is a tweenable float64 read by renderers and written by tweens
// Zero value is ready to use (represents 0.0)
type Property struct {
	bits atomic.Uint64
}

// Set stores a value atomically
func (p *Property) Set(val float64) {
	p.bits.Store(math.Float64bits(val))
}

// Get loads the value atomically
func (p *Property) Get() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Ease maps linear progress in [0,1] to eased progress
type Ease func(t float64) float64

// Linear is constant speed
func Linear(t float64) float64 { return t }

// Power2 decelerates towards the end (cubic ease-out)
func Power2(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// Sine eases in and out
func Sine(t float64) float64 {
	return 0.5 - math.Cos(t*math.Pi)/2
}
