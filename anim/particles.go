package anim

import (
	"sort"
	"sync"
	"time"

	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/platform"
)

// Particle is a running particle effect
type Particle struct {
	Handle  platform.ParticleHandle
	ID      string
	Config  platform.ParticleConfig
	Follow  platform.Anchor
	Started time.Time
}

// Particles is the in-memory particle host renderers draw from
// Implements platform.ParticleHost
type Particles struct {
	clock clock.Clock

	mu     sync.RWMutex
	next   platform.ParticleHandle
	active map[platform.ParticleHandle]Particle
}

// NewParticles creates an empty particle host
func NewParticles(c clock.Clock) *Particles {
	return &Particles{
		clock:  c,
		active: make(map[platform.ParticleHandle]Particle),
	}
}

// StartParticle registers a new effect following the anchor
func (p *Particles) StartParticle(id string, cfg platform.ParticleConfig, follow platform.Anchor) platform.ParticleHandle {
	if follow == nil {
		follow = platform.FixedAnchor{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.next++
	h := p.next
	p.active[h] = Particle{
		Handle:  h,
		ID:      id,
		Config:  cfg,
		Follow:  follow,
		Started: p.clock.Now(),
	}
	return h
}

// StopParticle removes the effect, unknown handles are ignored
func (p *Particles) StopParticle(h platform.ParticleHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.active, h)
}

// Active returns running effects ordered by start
func (p *Particles) Active() []Particle {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Particle, 0, len(p.active))
	for _, pt := range p.active {
		out = append(out, pt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Len returns the number of running effects
func (p *Particles) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.active)
}
