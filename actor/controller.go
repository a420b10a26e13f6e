// Package actor implements the per-combatant animation controller: HP
// bookkeeping, animation state, effect dispatch and completion futures.
package actor

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/effect"
	"github.com/lixenwraith/dice-duel/future"
	"github.com/lixenwraith/dice-duel/platform"
	"github.com/lixenwraith/dice-duel/status"
)

var (
	ErrNegativeDamage = errors.New("negative damage")
	ErrInvalidMaxHP   = errors.New("max hp must be positive")
	ErrOpponentSet    = errors.New("opponent already set")
)

// Config wires a controller to the platform
type Config struct {
	ID        string
	MaxHP     int
	Animator  platform.Animator
	Effects   *effect.Table
	Clock     clock.Clock
	Sounds    platform.SoundPlayer
	Particles platform.ParticleHost
	Status    *status.Registry
	Logger    *slog.Logger
}

// Controller drives one combatant
// HP and state are only changed through its own methods; the opponent is a non-owning reference
type Controller struct {
	id         string
	animator   platform.Animator
	dispatcher *effect.Dispatcher
	logger     *slog.Logger

	mu       sync.Mutex
	maxHP    int
	damage   int
	state    State
	opponent *Controller
	pending  map[platform.RequestID]*playRequest
}

type playRequest struct {
	key  string
	done *future.Future
}

// New creates a controller at full health in the Idle state
func New(cfg Config) (*Controller, error) {
	if cfg.MaxHP <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxHP, cfg.MaxHP)
	}
	if cfg.Animator == nil || cfg.Clock == nil {
		return nil, errors.New("actor: animator and clock are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	c := &Controller{
		id:       cfg.ID,
		animator: cfg.Animator,
		logger:   cfg.Logger.With("actor", cfg.ID),
		maxHP:    cfg.MaxHP,
		pending:  make(map[platform.RequestID]*playRequest),
	}
	c.dispatcher = effect.NewDispatcher(effect.Config{
		Table:     cfg.Effects,
		Clock:     cfg.Clock,
		Sounds:    cfg.Sounds,
		Particles: cfg.Particles,
		Owner:     c,
		Status:    cfg.Status,
		Logger:    cfg.Logger,
	})
	return c, nil
}

// ID returns the actor id
func (c *Controller) ID() string {
	return c.id
}

// AnchorID identifies the actor to particle renderers
func (c *Controller) AnchorID() string {
	return c.id
}

// OpponentAnchor returns the opponent or nil before SetOpponent
func (c *Controller) OpponentAnchor() platform.Anchor {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.opponent == nil {
		return nil
	}
	return c.opponent
}

// SetOpponent links the opponent once; it is used only to target particles
func (c *Controller) SetOpponent(o *Controller) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.opponent != nil && c.opponent != o {
		return ErrOpponentSet
	}
	c.opponent = o
	return nil
}

// Opponent returns the linked opponent
func (c *Controller) Opponent() *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opponent
}

// PlayAnimation starts key and arms its effect triggers
// Effects fire asynchronously; nobody is notified of completion
func (c *Controller) PlayAnimation(key string) {
	c.play(key, nil)
}

// PlayAnimationFuture starts key and returns a future resolved by the
// completion of exactly this request. It never resolves if the platform
// never reports completion
func (c *Controller) PlayAnimationFuture(key string) *future.Future {
	done := future.New()
	c.play(key, done)
	return done
}

func (c *Controller) play(key string, done *future.Future) {
	req := platform.NextRequestID()

	c.mu.Lock()
	c.pending[req] = &playRequest{key: key, done: done}
	if s, ok := stateFor(key); ok {
		c.state = s
	}
	c.mu.Unlock()

	c.logger.Debug("play", "key", key, "req", req)
	c.dispatcher.Arm(req, key)
	c.animator.Play(c.id, req, key, c)
}

// FrameAdvanced forwards frame signals to the effect dispatcher
func (c *Controller) FrameAdvanced(req platform.RequestID, key string, frame int) {
	c.dispatcher.FrameAdvanced(req, frame)
}

// AnimationComplete resolves the request's future; unknown or repeated requests are ignored
func (c *Controller) AnimationComplete(req platform.RequestID, key string, err error) {
	c.mu.Lock()
	pr, ok := c.pending[req]
	delete(c.pending, req)
	c.mu.Unlock()

	c.dispatcher.Release(req)
	if !ok {
		return
	}
	if err != nil && !errors.Is(err, platform.ErrInterrupted) {
		c.logger.Warn("animation failed", "key", pr.key, "req", req, "error", err)
	}
	if pr.done != nil {
		pr.done.Resolve(err)
	}
}

// AddDamage adds v to the accumulated damage without clamping
func (c *Controller) AddDamage(v int) error {
	if v < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDamage, v)
	}
	c.mu.Lock()
	c.damage += v
	c.mu.Unlock()
	return nil
}

// ResetHP restores full health
func (c *Controller) ResetHP() {
	c.mu.Lock()
	c.damage = 0
	c.mu.Unlock()
}

// SetMaxHP changes max health, keeping accumulated damage
func (c *Controller) SetMaxHP(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxHP, n)
	}
	c.mu.Lock()
	c.maxHP = n
	c.mu.Unlock()
	return nil
}

// HP returns max health minus damage, which can be negative
func (c *Controller) HP() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxHP - c.damage
}

// MaxHP returns max health
func (c *Controller) MaxHP() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxHP
}

// Damage returns accumulated damage
func (c *Controller) Damage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.damage
}

// State returns the animation state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetVolume sets the volume of this actor's sound effects
func (c *Controller) SetVolume(v float64) {
	c.dispatcher.SetVolume(v)
}

// Pending returns the number of requests awaiting completion
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
