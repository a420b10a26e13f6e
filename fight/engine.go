// Package fight runs the turn protocol of a match: roll both dice, reveal
// them in order, play the outcome, apply damage and check for a winner.
package fight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/dice-duel/actor"
	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/event"
	"github.com/lixenwraith/dice-duel/future"
	"github.com/lixenwraith/dice-duel/options"
	"github.com/lixenwraith/dice-duel/status"
)

var (
	ErrRoundInFlight = errors.New("round already in flight")
	ErrMatchOver     = errors.New("match is over")
	ErrStalled       = errors.New("round stalled")
)

// Fighter is the part of an actor controller the engine drives
type Fighter interface {
	ID() string
	PlayAnimation(key string)
	PlayAnimationFuture(key string) *future.Future
	AddDamage(v int) error
	ResetHP()
	SetMaxHP(n int) error
	HP() int
}

// Die is the part of a die the engine drives
type Die interface {
	Roll(ctx context.Context, v int) *future.Future
	Fail(ctx context.Context) *future.Future
	ResetAfterFail(ctx context.Context) *future.Future
	Reset()
}

// UI is the collaborator showing the round trigger and the post-match menu
type UI interface {
	ShowRoundTrigger(visible bool)
	ShowPostMatch(winnerID string)
}

// SnapshotSource supplies the options read at the start of each round
type SnapshotSource interface {
	Snapshot() options.Snapshot
}

// Config wires an engine; fighters, dice, rollers, UI and options are required
type Config struct {
	P1, P2       Fighter
	Die1, Die2   Die
	Roll1, Roll2 Roller
	UI           UI
	Options      SnapshotSource

	Events *event.Queue
	Status *status.Registry
	Clock  clock.Clock
	Logger *slog.Logger

	// StallTimeout bounds every wait of a round, 0 waits forever
	StallTimeout time.Duration
	DeathRule    DeathRule
}

// Engine owns the round protocol of one match
type Engine struct {
	cfg    Config
	logger *slog.Logger

	// Admission gate: set for the whole duration of a round or rematch
	inFlight atomic.Bool

	mu      sync.Mutex
	matchID string
	phase   Phase
	round   int
	winner  string

	rounds     *atomic.Int64
	crits      *atomic.Int64
	ties       *atomic.Int64
	stalls     *atomic.Int64
	phaseLabel *status.Label
	matchLabel *status.Label
}

// New validates the config and creates an engine awaiting Start
func New(cfg Config) (*Engine, error) {
	switch {
	case cfg.P1 == nil || cfg.P2 == nil:
		return nil, errors.New("fight: both fighters are required")
	case cfg.Die1 == nil || cfg.Die2 == nil:
		return nil, errors.New("fight: both dice are required")
	case cfg.Roll1 == nil || cfg.Roll2 == nil:
		return nil, errors.New("fight: both rollers are required")
	case cfg.UI == nil || cfg.Options == nil:
		return nil, errors.New("fight: ui and options are required")
	}
	if cfg.Events == nil {
		cfg.Events = event.NewQueue()
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	e := &Engine{
		cfg:        cfg,
		rounds:     cfg.Status.Ints.Get("fight.rounds"),
		crits:      cfg.Status.Ints.Get("fight.crits"),
		ties:       cfg.Status.Ints.Get("fight.ties"),
		stalls:     cfg.Status.Ints.Get("fight.stalls"),
		phaseLabel: cfg.Status.Strings.Get("fight.phase"),
		matchLabel: cfg.Status.Strings.Get("fight.match_id"),
	}
	e.newMatch()
	return e, nil
}

// Start readies a fresh match: full health, idle animations, trigger visible
func (e *Engine) Start() error {
	if !e.inFlight.CompareAndSwap(false, true) {
		return ErrRoundInFlight
	}
	defer e.inFlight.Store(false)

	if err := e.resetFighters(); err != nil {
		return err
	}
	e.cfg.P1.PlayAnimation(actor.KeyIdle)
	e.cfg.P2.PlayAnimation(actor.KeyIdle)
	e.setPhase(AwaitingInput)
	e.cfg.UI.ShowRoundTrigger(true)
	e.logger.Info("match started", "p1", e.cfg.P1.ID(), "p2", e.cfg.P2.ID(), "death_rule", e.cfg.DeathRule)
	return nil
}

// Rematch resets both fighters and dice and starts a new match
func (e *Engine) Rematch(ctx context.Context) error {
	if !e.inFlight.CompareAndSwap(false, true) {
		return ErrRoundInFlight
	}
	defer e.inFlight.Store(false)
	if err := ctx.Err(); err != nil {
		return err
	}

	e.newMatch()
	if err := e.resetFighters(); err != nil {
		return err
	}
	e.cfg.Die1.Reset()
	e.cfg.Die2.Reset()
	e.cfg.P1.PlayAnimation(actor.KeyIdle)
	e.cfg.P2.PlayAnimation(actor.KeyIdle)
	e.setPhase(AwaitingInput)
	e.cfg.UI.ShowRoundTrigger(true)

	e.push(event.EventRematch, &event.MatchPayload{})
	e.logger.Info("rematch")
	return nil
}

// TriggerRound runs one full round on the calling goroutine
// A second call while a round is running fails with ErrRoundInFlight
func (e *Engine) TriggerRound(ctx context.Context) (RoundState, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return RoundState{}, ErrRoundInFlight
	}
	defer e.inFlight.Store(false)

	if e.Phase() == Ended {
		return RoundState{}, ErrMatchOver
	}

	e.cfg.UI.ShowRoundTrigger(false)
	snap := e.cfg.Options.Snapshot()

	e.mu.Lock()
	e.round++
	rs := RoundState{Number: e.round}
	e.mu.Unlock()
	e.rounds.Add(1)

	e.push(event.EventRoundStarted, rs.payload(e.cfg.P1.HP(), e.cfg.P2.HP(), nil))
	e.logger.Debug("round started", "round", rs.Number)

	rs, err := e.runRound(ctx, rs, snap)
	if err != nil {
		rs.TimedOut = errors.Is(err, ErrStalled)
		e.abortRound(rs, err)
		return rs, err
	}
	return rs, nil
}

func (e *Engine) runRound(ctx context.Context, rs RoundState, snap options.Snapshot) (RoundState, error) {
	p1, p2 := e.cfg.P1, e.cfg.P2
	d1, d2 := e.cfg.Die1, e.cfg.Die2

	e.setPhase(Rolling)
	if err := e.await(ctx, "reset dice", d1.ResetAfterFail(ctx), d2.ResetAfterFail(ctx)); err != nil {
		return rs, err
	}
	rs.Roll1 = e.cfg.Roll1.Roll()
	rs.Roll2 = e.cfg.Roll2.Roll()

	// Reveals are strictly sequential
	e.setPhase(Revealing)
	if err := e.await(ctx, "reveal die 1", d1.Roll(ctx, rs.Roll1)); err != nil {
		return rs, err
	}
	if err := e.await(ctx, "reveal die 2", d2.Roll(ctx, rs.Roll2)); err != nil {
		return rs, err
	}
	e.push(event.EventDiceRevealed, rs.payload(p1.HP(), p2.HP(), nil))

	e.setPhase(Resolving)
	rs.Outcome, rs.Damage, rs.Crit = Resolve(rs.Roll1, rs.Roll2, snap)
	if rs.Crit {
		e.crits.Add(1)
	}

	e.setPhase(ApplyingOutcome)
	var err error
	switch rs.Outcome {
	case P1Wins:
		err = e.playOutcome(ctx, d2, p1, p2, rs.Damage)
	case P2Wins:
		err = e.playOutcome(ctx, d1, p2, p1, rs.Damage)
	default:
		e.ties.Add(1)
		err = e.await(ctx, "tie",
			d1.Fail(ctx), d2.Fail(ctx),
			p1.PlayAnimationFuture(actor.KeyAttack), p2.PlayAnimationFuture(actor.KeyAttack))
	}
	if err != nil {
		return rs, err
	}
	e.push(event.EventOutcomeApplied, rs.payload(p1.HP(), p2.HP(), nil))

	e.setPhase(CheckingDeath)
	rs.P1Dead = e.cfg.DeathRule.Dead(p1.HP())
	rs.P2Dead = e.cfg.DeathRule.Dead(p2.HP())

	switch {
	case rs.P1Dead:
		return rs, e.finishMatch(ctx, rs, p1, p2)
	case rs.P2Dead:
		return rs, e.finishMatch(ctx, rs, p2, p1)
	}

	if err := e.await(ctx, "idle", p1.PlayAnimationFuture(actor.KeyIdle), p2.PlayAnimationFuture(actor.KeyIdle)); err != nil {
		return rs, err
	}

	e.setPhase(AwaitingInput)
	e.push(event.EventRoundEnded, rs.payload(p1.HP(), p2.HP(), nil))
	e.cfg.UI.ShowRoundTrigger(true)
	e.logger.Info("round ended", "round", rs.Number, "rolls", [2]int{rs.Roll1, rs.Roll2},
		"outcome", rs.Outcome, "damage", rs.Damage, "crit", rs.Crit, "hp", [2]int{p1.HP(), p2.HP()})
	return rs, nil
}

// playOutcome joins the loser's die fail with the attack and damage animations, then applies damage
func (e *Engine) playOutcome(ctx context.Context, loserDie Die, winner, loser Fighter, damage int) error {
	err := e.await(ctx, "outcome",
		loserDie.Fail(ctx),
		winner.PlayAnimationFuture(actor.KeyAttack),
		loser.PlayAnimationFuture(actor.KeyDamage))
	if err != nil {
		return err
	}
	return loser.AddDamage(damage)
}

// finishMatch plays defeat then victory, in that order, and ends the match
func (e *Engine) finishMatch(ctx context.Context, rs RoundState, loser, winner Fighter) error {
	e.push(event.EventCombatantDefeated, &event.DefeatPayload{ActorID: loser.ID(), HP: loser.HP()})

	if err := e.await(ctx, "defeat", loser.PlayAnimationFuture(actor.KeyDefeat)); err != nil {
		return err
	}
	if err := e.await(ctx, "victory", winner.PlayAnimationFuture(actor.KeyVictory)); err != nil {
		return err
	}

	e.endMatch(rs, loser, winner)
	return nil
}

func (e *Engine) endMatch(rs RoundState, loser, winner Fighter) {
	e.mu.Lock()
	e.winner = winner.ID()
	e.mu.Unlock()
	e.setPhase(Ended)

	e.push(event.EventRoundEnded, rs.payload(e.cfg.P1.HP(), e.cfg.P2.HP(), nil))
	e.push(event.EventMatchEnded, &event.MatchPayload{WinnerID: winner.ID(), LoserID: loser.ID(), Rounds: rs.Number})
	e.cfg.UI.ShowPostMatch(winner.ID())
	e.logger.Info("match ended", "winner", winner.ID(), "rounds", rs.Number)
}

// abortRound settles the engine after a failed round
// A combatant already dead still ends the match; otherwise input is re-enabled
func (e *Engine) abortRound(rs RoundState, err error) {
	if rs.TimedOut {
		e.stalls.Add(1)
		e.logger.Warn("round stalled", "round", rs.Number, "phase", e.Phase(), "error", err)
		e.push(event.EventRoundStalled, &event.StallPayload{Phase: e.Phase().String(), Timeout: e.cfg.StallTimeout})
	} else {
		e.logger.Warn("round aborted", "round", rs.Number, "error", err)
	}

	p1, p2 := e.cfg.P1, e.cfg.P2
	switch {
	case rs.P1Dead:
		e.endMatch(rs, p1, p2)
		return
	case rs.P2Dead:
		e.endMatch(rs, p2, p1)
		return
	}

	e.setPhase(AwaitingInput)
	e.push(event.EventRoundEnded, rs.payload(p1.HP(), p2.HP(), err))
	e.cfg.UI.ShowRoundTrigger(true)
}

// await joins futures, bounded by the stall timeout when one is set
// Animations that end with an error are logged and count as finished
func (e *Engine) await(ctx context.Context, step string, fs ...*future.Future) error {
	wctx := ctx
	if e.cfg.StallTimeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(ctx, e.cfg.StallTimeout)
		defer cancel()
	}

	err := future.All(wctx, fs...)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case wctx.Err() != nil:
		return fmt.Errorf("%w: %s after %s", ErrStalled, step, e.cfg.StallTimeout)
	default:
		e.logger.Warn("animation ended with error", "step", step, "error", err)
		return nil
	}
}

func (e *Engine) resetFighters() error {
	snap := e.cfg.Options.Snapshot()
	for _, f := range []Fighter{e.cfg.P1, e.cfg.P2} {
		if err := f.SetMaxHP(snap.MaxHP); err != nil {
			return err
		}
		f.ResetHP()
	}
	return nil
}

func (e *Engine) newMatch() {
	id := uuid.NewString()
	e.mu.Lock()
	e.matchID = id
	e.round = 0
	e.winner = ""
	e.mu.Unlock()

	e.matchLabel.Store(id)
	e.logger = e.cfg.Logger.With("match", id)
}

func (e *Engine) setPhase(p Phase) {
	e.mu.Lock()
	e.phase = p
	e.mu.Unlock()
	e.phaseLabel.Store(p.String())
}

func (e *Engine) push(t event.EventType, payload any) {
	e.mu.Lock()
	id, round := e.matchID, e.round
	e.mu.Unlock()

	e.cfg.Events.Push(event.FightEvent{
		Type:    t,
		MatchID: id,
		Round:   round,
		At:      e.cfg.Clock.Now(),
		Payload: payload,
	})
}

// Phase returns the current protocol phase
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Round returns the number of rounds started in this match
func (e *Engine) Round() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.round
}

// MatchID returns the id of the current match
func (e *Engine) MatchID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matchID
}

// Winner returns the winner's id once the match has ended
func (e *Engine) Winner() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.winner
}

// InFlight reports whether a round or rematch is running
func (e *Engine) InFlight() bool {
	return e.inFlight.Load()
}

// Events returns the feed the engine pushes to
func (e *Engine) Events() *event.Queue {
	return e.cfg.Events
}
