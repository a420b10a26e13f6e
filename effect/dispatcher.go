package effect

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/platform"
	"github.com/lixenwraith/dice-duel/status"
)

// Owner is the actor a dispatcher fires effects for
type Owner interface {
	platform.Anchor
	// OpponentAnchor is read at fire time and may be nil before the fight is set up
	OpponentAnchor() platform.Anchor
}

// Config wires a dispatcher to its collaborators
type Config struct {
	Table     *Table
	Clock     clock.Clock
	Sounds    platform.SoundPlayer
	Particles platform.ParticleHost
	Owner     Owner
	Status    *status.Registry
	Logger    *slog.Logger
}

// Dispatcher arms an animation's triggers and fires them as time passes or frames advance
//
// Triggers are one-shot per Arm; arming the same key again schedules an
// independent set and leaves earlier pending triggers alone. Particles stop
// after their duration; there is no path to stop them earlier
type Dispatcher struct {
	table     *Table
	clock     clock.Clock
	sounds    platform.SoundPlayer
	particles platform.ParticleHost
	owner     Owner
	logger    *slog.Logger

	volume status.Gauge

	soundCount    *atomic.Int64
	particleCount *atomic.Int64

	mu       sync.Mutex
	watchers map[platform.RequestID][]Trigger
}

// NewDispatcher creates a dispatcher; Table, Clock and Owner are required
func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.Clock == nil || cfg.Owner == nil {
		panic("effect: dispatcher needs a clock and an owner")
	}
	if cfg.Sounds == nil {
		cfg.Sounds = platform.NopSound{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}

	d := &Dispatcher{
		table:         cfg.Table,
		clock:         cfg.Clock,
		sounds:        cfg.Sounds,
		particles:     cfg.Particles,
		owner:         cfg.Owner,
		logger:        cfg.Logger,
		soundCount:    cfg.Status.Ints.Get("effect.sounds"),
		particleCount: cfg.Status.Ints.Get("effect.particles"),
		watchers:      make(map[platform.RequestID][]Trigger),
	}
	d.volume.Set(1)
	return d
}

// SetVolume sets the volume of subsequently fired sounds
func (d *Dispatcher) SetVolume(v float64) {
	d.volume.Set(v)
}

// Volume returns the current sound volume
func (d *Dispatcher) Volume() float64 {
	return d.volume.Get()
}

// Arm schedules the time triggers of key and registers its frame triggers against req
func (d *Dispatcher) Arm(req platform.RequestID, key string) {
	var frames []Trigger
	for _, tr := range d.table.Triggers(key) {
		if tr.Type == ElapsedTime {
			d.clock.AfterFunc(tr.Delay(), func() { d.fire(tr) })
			continue
		}
		frames = append(frames, tr)
	}

	if len(frames) == 0 {
		return
	}
	d.mu.Lock()
	d.watchers[req] = frames
	d.mu.Unlock()
}

// FrameAdvanced fires every watcher of req whose threshold frame has been reached
func (d *Dispatcher) FrameAdvanced(req platform.RequestID, frame int) {
	d.mu.Lock()
	pending := d.watchers[req]
	var due []Trigger
	if len(pending) > 0 {
		kept := pending[:0]
		for _, tr := range pending {
			if frame >= tr.Value {
				due = append(due, tr)
			} else {
				kept = append(kept, tr)
			}
		}
		if len(kept) == 0 {
			delete(d.watchers, req)
		} else {
			d.watchers[req] = kept
		}
	}
	d.mu.Unlock()

	for _, tr := range due {
		d.fire(tr)
	}
}

// Release drops the unfired frame watchers of a finished request
func (d *Dispatcher) Release(req platform.RequestID) {
	d.mu.Lock()
	delete(d.watchers, req)
	d.mu.Unlock()
}

// Watching returns the number of requests with unfired frame triggers
func (d *Dispatcher) Watching() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.watchers)
}

func (d *Dispatcher) fire(tr Trigger) {
	switch tr.Kind {
	case KindSound:
		d.sounds.PlaySound(tr.EffectID, d.volume.Get())
		d.soundCount.Add(1)

	case KindParticle:
		if d.particles == nil {
			return
		}
		follow := d.follow(tr.Target)
		h := d.particles.StartParticle(tr.EffectID, tr.Config, follow)
		d.particleCount.Add(1)
		d.clock.AfterFunc(tr.Duration, func() { d.particles.StopParticle(h) })
	}

	d.logger.Debug("effect fired", "actor", d.owner.AnchorID(), "anim", tr.Key, "kind", tr.Kind, "id", tr.EffectID)
}

func (d *Dispatcher) follow(t Target) platform.Anchor {
	switch t {
	case TargetSelf:
		return d.owner
	case TargetOpponent:
		if opp := d.owner.OpponentAnchor(); opp != nil {
			return opp
		}
	}
	return platform.FixedAnchor{}
}
