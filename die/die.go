// Package die implements the visual state machine of a rolled die:
// shake, reveal, fail and return to origin.
package die

import (
	"context"
	"sync"
	"time"

	"github.com/lixenwraith/dice-duel/anim"
	"github.com/lixenwraith/dice-duel/future"
	"github.com/lixenwraith/dice-duel/parameter"
	"github.com/lixenwraith/dice-duel/platform"
)

// State is the visual state of a die
type State int

const (
	Idle State = iota
	Shaking
	Revealed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Shaking:
		return "Shaking"
	case Revealed:
		return "Revealed"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// SoundID is played once at the start of every roll
const SoundID = "dice"

// Tweener animates a property and reports when it lands
type Tweener interface {
	Tween(p *anim.Property, to float64, d time.Duration, ease anim.Ease) *future.Future
}

// Config holds the die motion; zero fields take the parameter defaults
type Config struct {
	ShakeCount       int
	ShakeDistance    float64
	TextMoveDistance float64
	FailDistance     float64
	ShakeDuration    time.Duration
	TextDuration     time.Duration
	FailDuration     time.Duration
	ReturnDuration   time.Duration

	Sounds platform.SoundPlayer
	// Volume is read when the roll sound plays, nil means full volume
	Volume func() float64
}

func (c *Config) applyDefaults() {
	if c.ShakeCount <= 0 {
		c.ShakeCount = parameter.DieShakeCount
	}
	if c.ShakeDistance == 0 {
		c.ShakeDistance = parameter.DieShakeDistance
	}
	if c.TextMoveDistance == 0 {
		c.TextMoveDistance = parameter.DieTextMoveDistance
	}
	if c.FailDistance == 0 {
		c.FailDistance = parameter.DieFailDistance
	}
	if c.ShakeDuration == 0 {
		c.ShakeDuration = parameter.DieShakeDuration
	}
	if c.TextDuration == 0 {
		c.TextDuration = parameter.DieTextDuration
	}
	if c.FailDuration == 0 {
		c.FailDuration = parameter.DieFailDuration
	}
	if c.ReturnDuration == 0 {
		c.ReturnDuration = parameter.DieReturnDuration
	}
	if c.Sounds == nil {
		c.Sounds = platform.NopSound{}
	}
	if c.Volume == nil {
		c.Volume = func() float64 { return 1 }
	}
}

// Die shows one combatant's roll
// Offset is the vertical displacement of the die body; TextOffset that of the value above it
type Die struct {
	tw  Tweener
	cfg Config

	offset     anim.Property
	textOffset anim.Property

	mu        sync.Mutex
	value     int
	hasValue  bool
	state     State
	displaced bool
}

// New creates a blank die at its origin
func New(tw Tweener, cfg Config) *Die {
	cfg.applyDefaults()
	return &Die{tw: tw, cfg: cfg}
}

// Roll hides any shown value, shakes ShakeCount times and reveals v
func (d *Die) Roll(ctx context.Context, v int) *future.Future {
	return future.Go(func() error {
		d.mu.Lock()
		shown := d.hasValue
		d.state = Shaking
		d.mu.Unlock()

		d.cfg.Sounds.PlaySound(SoundID, d.cfg.Volume())

		if shown {
			if err := d.tween(ctx, &d.textOffset, -d.cfg.TextMoveDistance, d.cfg.TextDuration, anim.Linear); err != nil {
				return err
			}
			d.mu.Lock()
			d.hasValue = false
			d.mu.Unlock()
		}

		for i := 0; i < d.cfg.ShakeCount; i++ {
			if err := d.tween(ctx, &d.offset, d.cfg.ShakeDistance, d.cfg.ShakeDuration, anim.Sine); err != nil {
				return err
			}
			if err := d.tween(ctx, &d.offset, 0, d.cfg.ShakeDuration, anim.Sine); err != nil {
				return err
			}
		}

		d.mu.Lock()
		d.value = v
		d.hasValue = true
		d.mu.Unlock()

		// Value rises into place from below
		d.textOffset.Set(d.cfg.TextMoveDistance)
		if err := d.tween(ctx, &d.textOffset, 0, d.cfg.TextDuration, anim.Power2); err != nil {
			return err
		}

		d.mu.Lock()
		d.state = Revealed
		d.mu.Unlock()
		return nil
	})
}

// Fail plays the losing-die drop and leaves the die displaced
func (d *Die) Fail(ctx context.Context) *future.Future {
	d.mu.Lock()
	d.state = Failed
	d.displaced = true
	d.mu.Unlock()

	return future.Go(func() error {
		return d.tween(ctx, &d.offset, d.cfg.FailDistance, d.cfg.FailDuration, anim.Power2)
	})
}

// ResetAfterFail returns a displaced die to its origin
// A die at its origin resolves immediately
func (d *Die) ResetAfterFail(ctx context.Context) *future.Future {
	d.mu.Lock()
	displaced := d.displaced
	d.mu.Unlock()
	if !displaced {
		return future.Resolved(nil)
	}

	return future.Go(func() error {
		if err := d.tween(ctx, &d.offset, 0, d.cfg.ReturnDuration, anim.Power2); err != nil {
			return err
		}
		d.mu.Lock()
		d.displaced = false
		d.state = Idle
		d.mu.Unlock()
		return nil
	})
}

// Reset clears the value and snaps back to origin without animating
func (d *Die) Reset() {
	// Supersede running tweens so they cannot move the die afterwards
	d.tw.Tween(&d.offset, 0, 0, nil)
	d.tw.Tween(&d.textOffset, 0, 0, nil)

	d.mu.Lock()
	d.hasValue = false
	d.value = 0
	d.displaced = false
	d.state = Idle
	d.mu.Unlock()
}

// Value returns the shown value, ok is false while blank
func (d *Die) Value() (v int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.hasValue
}

// State returns the visual state
func (d *Die) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Displaced reports whether the die is away from its origin after a fail
func (d *Die) Displaced() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.displaced
}

// Offset returns the vertical displacement of the die body
func (d *Die) Offset() float64 {
	return d.offset.Get()
}

// TextOffset returns the vertical displacement of the value
func (d *Die) TextOffset() float64 {
	return d.textOffset.Get()
}

func (d *Die) tween(ctx context.Context, p *anim.Property, to float64, dur time.Duration, ease anim.Ease) error {
	return d.tw.Tween(p, to, dur, ease).Wait(ctx)
}
