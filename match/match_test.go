package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dice-duel/actor"
	"github.com/lixenwraith/dice-duel/asset"
	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/fight"
	"github.com/lixenwraith/dice-duel/manifest"
	"github.com/lixenwraith/dice-duel/options"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type stubUI struct {
	mu      sync.Mutex
	trigger bool
	winner  string
}

func (u *stubUI) ShowRoundTrigger(v bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.trigger = v
}

func (u *stubUI) ShowPostMatch(w string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.winner = w
}

type soundLog struct {
	mu     sync.Mutex
	ids    []string
	volume []float64
}

func (s *soundLog) PlaySound(id string, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
	s.volume = append(s.volume, v)
}

func (s *soundLog) played() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

type musicLog struct {
	track  string
	volume float64
}

func (m *musicLog) PlayMusic(id string)        { m.track = id }
func (m *musicLog) SetMusicVolume(v float64) { m.volume = v }

type fixedRoller int

func (r fixedRoller) Roll() int { return int(r) }

func loadCatalog(t *testing.T) *manifest.Catalog {
	t.Helper()
	cat, err := manifest.Load(asset.FS(), asset.Root)
	require.NoError(t, err)
	return cat
}

// drive advances the manual clock until fn returns
func drive(t *testing.T, clk *clock.Manual, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()

	deadline := time.Now().Add(5 * time.Second)
	for {
		select {
		case <-done:
			return
		default:
		}
		if time.Now().After(deadline) {
			t.Fatal("round did not finish")
		}
		clk.Advance(5 * time.Millisecond)
		time.Sleep(50 * time.Microsecond)
	}
}

func newTestMatch(t *testing.T, r1, r2 int) (*Match, *clock.Manual, *stubUI, *soundLog, *musicLog, *options.Store) {
	t.Helper()
	store, err := options.NewStore(options.Defaults())
	require.NoError(t, err)

	clk := clock.NewManual(epoch)
	ui := &stubUI{}
	sounds := &soundLog{}
	music := &musicLog{}

	m, err := New(Setup{
		Catalog: loadCatalog(t),
		Player1: "knight",
		Player2: "rogue",
		Stage:   "dojo",
		Options: store,
		Clock:   clk,
		UI:      ui,
		Sounds:  sounds,
		Music:   music,
		Roll1:   fixedRoller(r1),
		Roll2:   fixedRoller(r2),
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	require.NoError(t, m.Engine.Start())
	return m, clk, ui, sounds, music, store
}

func TestNew_WiresFighters(t *testing.T) {
	m, _, ui, _, music, _ := newTestMatch(t, 1, 1)

	assert.Same(t, m.P2, m.P1.Opponent())
	assert.Same(t, m.P1, m.P2.Opponent())
	assert.Equal(t, 5, m.P1.HP())
	assert.Equal(t, "dojo", music.track)
	assert.Equal(t, 0.75, music.volume)
	assert.True(t, ui.trigger)
	assert.Equal(t, "Knight", m.DisplayName(P1))
	assert.Equal(t, "Rogue", m.DisplayName(P2))

	key, _, ok := m.Sequencer.Current(P1)
	require.True(t, ok)
	assert.Equal(t, actor.KeyIdle, key)
}

func TestNew_UnknownCharacter(t *testing.T) {
	store, err := options.NewStore(options.Defaults())
	require.NoError(t, err)

	_, err = New(Setup{Catalog: loadCatalog(t), Player1: "wizard", Player2: "rogue", Options: store, UI: &stubUI{}})
	assert.ErrorIs(t, err, manifest.ErrUnknownCharacter)

	_, err = New(Setup{Catalog: loadCatalog(t), Player1: "knight", Player2: "rogue", Stage: "moon", Options: store, UI: &stubUI{}})
	assert.ErrorIs(t, err, manifest.ErrUnknownStage)
}

func TestRound_PlaysThroughPlatform(t *testing.T) {
	m, clk, ui, sounds, _, _ := newTestMatch(t, 9, 4)

	var rs fight.RoundState
	var err error
	drive(t, clk, func() { rs, err = m.Engine.TriggerRound(context.Background()) })
	require.NoError(t, err)

	assert.Equal(t, fight.P1Wins, rs.Outcome)
	assert.Equal(t, 4, m.P2.HP())
	assert.True(t, ui.trigger)

	v1, ok := m.Die1.Value()
	require.True(t, ok)
	assert.Equal(t, 9, v1)
	assert.True(t, m.Die2.Displaced())
	assert.False(t, m.Die1.Displaced())

	played := sounds.played()
	assert.Contains(t, played, "dice")
	assert.Contains(t, played, "swing")
	assert.Contains(t, played, "hit")
}

func TestRound_MatchToVictory(t *testing.T) {
	m, clk, ui, _, _, _ := newTestMatch(t, 20, 3)

	var err error
	drive(t, clk, func() { _, err = m.Engine.TriggerRound(context.Background()) })
	require.NoError(t, err)

	assert.Equal(t, fight.Ended, m.Engine.Phase())
	assert.Equal(t, P1, ui.winner)
	assert.False(t, ui.trigger)
	assert.Equal(t, actor.Defeated, m.P2.State())
	assert.Equal(t, actor.Victorious, m.P1.State())

	drive(t, clk, func() { err = m.Engine.Rematch(context.Background()) })
	require.NoError(t, err)
	assert.Equal(t, 5, m.P2.HP())
	_, shown := m.Die1.Value()
	assert.False(t, shown)
	assert.True(t, ui.trigger)
}

func TestOptions_VolumesFollowStore(t *testing.T) {
	m, clk, _, sounds, music, store := newTestMatch(t, 9, 4)

	require.NoError(t, store.Update(func(s *options.Snapshot) {
		s.SFXVolume = 0.5
		s.MusicVolume = 0.25
	}))
	assert.Equal(t, 0.25, music.volume)

	drive(t, clk, func() { _, _ = m.Engine.TriggerRound(context.Background()) })

	sounds.mu.Lock()
	defer sounds.mu.Unlock()
	require.NotEmpty(t, sounds.volume)
	for _, v := range sounds.volume {
		assert.Equal(t, 0.5, v)
	}
}

func TestClips(t *testing.T) {
	cat := loadCatalog(t)
	knight, err := cat.Character("knight")
	require.NoError(t, err)

	clips := Clips(knight)
	require.Len(t, clips, len(knight.Animations))
	for _, c := range clips {
		assert.NotEmpty(t, c.Frames, c.Key)
	}
	assert.Equal(t, -1, clips[0].Repeat)
}

func TestResolveStage_Bare(t *testing.T) {
	stage, err := resolveStage(loadCatalog(t), "")
	require.NoError(t, err)
	require.Len(t, stage.PlayerPositions, 2)
	assert.True(t, stage.PlayerPositions[1].Flip)
}
