package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dice-duel/audio"
	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/core"
	"github.com/lixenwraith/dice-duel/event"
	"github.com/lixenwraith/dice-duel/fight"
	"github.com/lixenwraith/dice-duel/match"
	"github.com/lixenwraith/dice-duel/options"
	"github.com/lixenwraith/dice-duel/parameter"
	"github.com/lixenwraith/dice-duel/platform"
)

// Config wires the terminal app
type Config struct {
	Screen  tcell.Screen
	Match   *match.Match
	Scene   *Scene
	Options *options.Store
	Sounds  platform.SoundPlayer
	Clock   clock.Clock

	FrameInterval time.Duration
	Logger        *slog.Logger
}

// App runs the input and render loop of one match
type App struct {
	screen  tcell.Screen
	match   *match.Match
	scene   *Scene
	options *options.Store
	sounds  platform.SoundPlayer
	clock   clock.Clock
	router  *event.Router[*App]
	logger  *slog.Logger

	frameInterval time.Duration
}

// New creates the app and registers its fight event handlers
func New(cfg Config) *App {
	if cfg.Sounds == nil {
		cfg.Sounds = platform.NopSound{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewReal()
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = parameter.FrameUpdateInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	a := &App{
		screen:        cfg.Screen,
		match:         cfg.Match,
		scene:         cfg.Scene,
		options:       cfg.Options,
		sounds:        cfg.Sounds,
		clock:         cfg.Clock,
		router:        event.NewRouter[*App](cfg.Match.Events),
		logger:        cfg.Logger,
		frameInterval: cfg.FrameInterval,
	}
	a.scene.Attach(cfg.Match)
	registerHandlers(a.router)
	return a
}

func registerHandlers(r *event.Router[*App]) {
	r.Register(event.HandlerFunc[*App]{
		Types: []event.EventType{
			event.EventDiceRevealed,
			event.EventOutcomeApplied,
			event.EventCombatantDefeated,
			event.EventMatchEnded,
			event.EventRoundStalled,
			event.EventRematch,
		},
		Fn: func(a *App, ev event.FightEvent) {
			if line := a.describe(ev); line != "" {
				a.scene.Log(line)
			}
		},
	})

	r.Register(event.HandlerFunc[*App]{
		Types: []event.EventType{event.EventOutcomeApplied},
		Fn: func(a *App, ev event.FightEvent) {
			if p, ok := ev.Payload.(*event.RoundPayload); ok && p.Crit {
				a.sounds.PlaySound(audio.SoundCrit, a.options.Snapshot().SFXVolume)
			}
		},
	})

	r.Register(event.HandlerFunc[*App]{
		Types: []event.EventType{event.EventRoundStalled, event.EventRoundStarted},
		Fn: func(a *App, ev event.FightEvent) {
			if ev.Type == event.EventRoundStalled {
				a.scene.SetStatus("round stalled")
			} else {
				a.scene.SetStatus("")
			}
		},
	})
}

// describe renders a fight event as an event log line
func (a *App) describe(ev event.FightEvent) string {
	switch p := ev.Payload.(type) {
	case *event.RoundPayload:
		switch ev.Type {
		case event.EventDiceRevealed:
			return fmt.Sprintf("round %d: %d vs %d", ev.Round, p.Roll1, p.Roll2)
		case event.EventOutcomeApplied:
			switch p.Outcome {
			case event.Tie:
				return fmt.Sprintf("round %d: tie", ev.Round)
			case event.P1Wins:
				return a.hitLine(ev.Round, match.P1, match.P2, p)
			default:
				return a.hitLine(ev.Round, match.P2, match.P1, p)
			}
		}
	case *event.DefeatPayload:
		return fmt.Sprintf("%s is defeated", a.match.DisplayName(p.ActorID))
	case *event.MatchPayload:
		if ev.Type == event.EventRematch {
			return "rematch"
		}
		return fmt.Sprintf("%s wins in %d rounds", a.match.DisplayName(p.WinnerID), p.Rounds)
	case *event.StallPayload:
		return fmt.Sprintf("round %d stalled in %s", ev.Round, p.Phase)
	}
	return ""
}

func (a *App) hitLine(round int, winner, loser string, p *event.RoundPayload) string {
	crit := ""
	if p.Crit {
		crit = " critical"
	}
	return fmt.Sprintf("round %d: %s deals %d%s to %s",
		round, a.match.DisplayName(winner), p.Damage, crit, a.match.DisplayName(loser))
}

// Run polls input and redraws until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(a.frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	a.Tick()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.HandleKey(ctx, ev) {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		case <-ticker.C:
			a.Tick()
		}
	}
}

// Tick routes pending fight events and draws one frame
func (a *App) Tick() {
	a.router.DispatchAll(a)
	a.scene.Draw(a.screen, a.clock.Now(), a.options.Snapshot())
}

// HandleKey applies one key press, returning false to quit
func (a *App) HandleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	var err error
	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		if a.scene.TriggerVisible() {
			a.startRound(ctx)
		}
	case 'r':
		if a.scene.PostMatch() != "" {
			core.Go(func() {
				if err := a.match.Engine.Rematch(ctx); err != nil {
					a.logger.Warn("rematch failed", "error", err)
				}
			})
		}
	case 'h':
		err = a.options.CycleMaxHP()
	case 'd':
		err = a.options.CycleBaseDamage()
	case 'c':
		err = a.options.CycleCritDamage()
	case 'm':
		err = a.options.CycleMusicVolume()
	case 's':
		err = a.options.CycleSFXVolume()
	case '0':
		err = a.options.ResetFightDefaults()
	}
	if err != nil {
		a.logger.Warn("option change rejected", "error", err)
		a.scene.SetStatus(err.Error())
	}
	return true
}

// startRound runs a round off the input loop
func (a *App) startRound(ctx context.Context) {
	core.Go(func() {
		_, err := a.match.Engine.TriggerRound(ctx)
		switch {
		case err == nil, errors.Is(err, fight.ErrRoundInFlight), errors.Is(err, context.Canceled):
		default:
			a.logger.Warn("round failed", "error", err)
		}
	})
}
