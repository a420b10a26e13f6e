package status

import (
	"math"
	"sync/atomic"
)

// Gauge is a float64 level such as a volume, kept as raw bits
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

func (g *Gauge) Get() float64 { return math.Float64frombits(g.bits.Load()) }

// MaxLabelLen fits a uuid with room to spare
const MaxLabelLen = 40

// Label is a short text metric: the fight phase, the current match id
type Label struct {
	ptr atomic.Pointer[string]
}

// Store replaces the label; longer values are cut at MaxLabelLen bytes
func (l *Label) Store(s string) {
	if len(s) > MaxLabelLen {
		s = s[:MaxLabelLen]
	}
	l.ptr.Store(&s)
}

// Load returns "" before the first Store
func (l *Label) Load() string {
	p := l.ptr.Load()
	if p == nil {
		return ""
	}
	return *p
}
