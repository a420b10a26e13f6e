// Package match assembles a playable match from the catalog: two actor
// controllers with their effect tables, two dice, the animation timing
// host and the turn engine, all sharing one clock.
package match

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lixenwraith/dice-duel/actor"
	"github.com/lixenwraith/dice-duel/anim"
	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/die"
	"github.com/lixenwraith/dice-duel/effect"
	"github.com/lixenwraith/dice-duel/event"
	"github.com/lixenwraith/dice-duel/fight"
	"github.com/lixenwraith/dice-duel/manifest"
	"github.com/lixenwraith/dice-duel/options"
	"github.com/lixenwraith/dice-duel/parameter"
	"github.com/lixenwraith/dice-duel/platform"
	"github.com/lixenwraith/dice-duel/status"
)

// Actor ids; particles anchored to a fighter report these ids
const (
	P1 = "p1"
	P2 = "p2"
)

// MusicPlayer is the stage music side of the audio layer
type MusicPlayer interface {
	PlayMusic(id string)
	SetMusicVolume(v float64)
}

// Setup names the fighters and stage and supplies the platform
type Setup struct {
	Catalog          *manifest.Catalog
	Player1, Player2 string
	// Stage may be empty for a bare arena
	Stage string

	Options *options.Store
	Clock   clock.Clock
	UI      fight.UI
	Sounds  platform.SoundPlayer
	Music   MusicPlayer

	// Roll1 and Roll2 default to random rollers
	Roll1, Roll2 fight.Roller
	Events       *event.Queue
	Status       *status.Registry
	Logger       *slog.Logger

	StallTimeout time.Duration
	DeathRule    fight.DeathRule
}

// Match owns the assembled components of one fight
type Match struct {
	Engine    *fight.Engine
	P1, P2    *actor.Controller
	Die1      *die.Die
	Die2      *die.Die
	Sequencer *anim.Sequencer
	Tweener   *anim.Tweener
	Particles *anim.Particles
	Events    *event.Queue
	Status    *status.Registry

	Stage    manifest.Stage
	Fighters [2]manifest.Character

	unsubscribe func()
}

// New wires a match; the engine is ready for Start
func New(s Setup) (*Match, error) {
	if s.Catalog == nil || s.Options == nil || s.UI == nil {
		return nil, errors.New("match: catalog, options and ui are required")
	}
	if s.Clock == nil {
		s.Clock = clock.NewReal()
	}
	if s.Sounds == nil {
		s.Sounds = platform.NopSound{}
	}
	if s.Events == nil {
		s.Events = event.NewQueue()
	}
	if s.Status == nil {
		s.Status = status.NewRegistry()
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Roll1 == nil || s.Roll2 == nil {
		s.Roll1, s.Roll2 = fight.NewRollers(0)
	}

	ch1, err := s.Catalog.Character(s.Player1)
	if err != nil {
		return nil, fmt.Errorf("player 1: %w", err)
	}
	ch2, err := s.Catalog.Character(s.Player2)
	if err != nil {
		return nil, fmt.Errorf("player 2: %w", err)
	}
	stage, err := resolveStage(s.Catalog, s.Stage)
	if err != nil {
		return nil, err
	}

	m := &Match{
		Sequencer: anim.NewSequencer(s.Clock),
		Tweener:   anim.NewTweener(s.Clock),
		Particles: anim.NewParticles(s.Clock),
		Events:    s.Events,
		Status:    s.Status,
		Stage:     stage,
		Fighters:  [2]manifest.Character{ch1, ch2},
	}
	m.Sequencer.Register(P1, Clips(ch1))
	m.Sequencer.Register(P2, Clips(ch2))

	snap := s.Options.Snapshot()
	controller := func(id string, ch manifest.Character) (*actor.Controller, error) {
		return actor.New(actor.Config{
			ID:        id,
			MaxHP:     snap.MaxHP,
			Animator:  m.Sequencer,
			Effects:   effect.BuildTable(ch),
			Clock:     s.Clock,
			Sounds:    s.Sounds,
			Particles: m.Particles,
			Status:    s.Status,
			Logger:    s.Logger.With("character", ch.Name),
		})
	}
	if m.P1, err = controller(P1, ch1); err != nil {
		return nil, err
	}
	if m.P2, err = controller(P2, ch2); err != nil {
		return nil, err
	}
	if err := m.P1.SetOpponent(m.P2); err != nil {
		return nil, err
	}
	if err := m.P2.SetOpponent(m.P1); err != nil {
		return nil, err
	}

	sfx := func() float64 { return s.Options.Snapshot().SFXVolume }
	m.Die1 = die.New(m.Tweener, die.Config{Sounds: s.Sounds, Volume: sfx})
	m.Die2 = die.New(m.Tweener, die.Config{Sounds: s.Sounds, Volume: sfx})

	m.Engine, err = fight.New(fight.Config{
		P1: m.P1, P2: m.P2,
		Die1: m.Die1, Die2: m.Die2,
		Roll1: s.Roll1, Roll2: s.Roll2,
		UI:           s.UI,
		Options:      s.Options,
		Events:       s.Events,
		Status:       s.Status,
		Clock:        s.Clock,
		Logger:       s.Logger,
		StallTimeout: s.StallTimeout,
		DeathRule:    s.DeathRule,
	})
	if err != nil {
		return nil, err
	}

	m.applyVolumes(snap, s.Music)
	m.unsubscribe = s.Options.Subscribe(func(next options.Snapshot) {
		m.applyVolumes(next, s.Music)
	})
	if s.Music != nil && stage.BGM != "" {
		s.Music.PlayMusic(stage.BGM)
	}
	return m, nil
}

func (m *Match) applyVolumes(snap options.Snapshot, music MusicPlayer) {
	m.P1.SetVolume(snap.SFXVolume)
	m.P2.SetVolume(snap.SFXVolume)
	if music != nil {
		music.SetMusicVolume(snap.MusicVolume)
	}
}

// Close drops the options subscription
func (m *Match) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Controller returns the controller for an actor id
func (m *Match) Controller(id string) (*actor.Controller, bool) {
	switch id {
	case P1:
		return m.P1, true
	case P2:
		return m.P2, true
	}
	return nil, false
}

// Fighter returns the character playing an actor id
func (m *Match) Fighter(id string) (manifest.Character, bool) {
	switch id {
	case P1:
		return m.Fighters[0], true
	case P2:
		return m.Fighters[1], true
	}
	return manifest.Character{}, false
}

// DisplayName returns the menu name of the character playing id
func (m *Match) DisplayName(id string) string {
	ch, ok := m.Fighter(id)
	if !ok {
		return id
	}
	return manifest.DisplayName(ch.Name)
}

// Clips converts a character's animations into sequencer clips
func Clips(ch manifest.Character) []anim.Clip {
	clips := make([]anim.Clip, 0, len(ch.Animations))
	for _, a := range ch.Animations {
		clips = append(clips, anim.Clip{
			Key:       a.Key,
			Frames:    a.FrameNames(),
			FrameRate: a.FrameRate,
			Repeat:    a.Repeat,
		})
	}
	return clips
}

func resolveStage(cat *manifest.Catalog, name string) (manifest.Stage, error) {
	if name != "" {
		return cat.Stage(name)
	}
	return manifest.Stage{
		PlayerPositions: []manifest.Position{
			{X: parameter.ArenaWidth / 4, Y: parameter.ArenaHeight / 2},
			{X: parameter.ArenaWidth * 3 / 4, Y: parameter.ArenaHeight / 2, Flip: true},
		},
	}, nil
}
