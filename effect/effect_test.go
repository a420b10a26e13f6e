package effect

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dice-duel/anim"
	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/manifest"
	"github.com/lixenwraith/dice-duel/platform"
	"github.com/lixenwraith/dice-duel/status"
)

type played struct {
	id     string
	volume float64
}

type soundSpy struct {
	mu    sync.Mutex
	sound []played
}

func (s *soundSpy) PlaySound(id string, volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sound = append(s.sound, played{id, volume})
}

func (s *soundSpy) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, p := range s.sound {
		out = append(out, p.id)
	}
	return out
}

type testOwner struct {
	id  string
	opp platform.Anchor
}

func (o *testOwner) AnchorID() string                 { return o.id }
func (o *testOwner) OpponentAnchor() platform.Anchor { return o.opp }

func newTestDispatcher(t *testing.T, triggers ...Trigger) (*Dispatcher, *clock.Manual, *soundSpy, *anim.Particles, *testOwner) {
	t.Helper()
	c := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	sounds := &soundSpy{}
	particles := anim.NewParticles(c)
	owner := &testOwner{id: "p1", opp: &testOwner{id: "p2"}}
	d := NewDispatcher(Config{
		Table:     NewTable(triggers...),
		Clock:     c,
		Sounds:    sounds,
		Particles: particles,
		Owner:     owner,
	})
	return d, c, sounds, particles, owner
}

func TestBuildTable(t *testing.T) {
	ch := manifest.Character{
		Sounds: []manifest.SoundTrigger{
			{Animation: "attack", Trigger: "frame", Value: 2, Sound: "swing"},
			{Animation: "damage", Trigger: "time", Value: 50, Sound: "hit"},
		},
		Particles: []manifest.ParticleTrigger{
			{Animation: "attack", Trigger: "time", Value: 100, Particle: "spark", Target: "opponent", DurationMS: 300, Quantity: 2},
		},
	}

	table := BuildTable(ch)
	assert.Equal(t, 3, table.Len())

	attack := table.Triggers("attack")
	require.Len(t, attack, 2)
	assert.Equal(t, KindSound, attack[0].Kind)
	assert.Equal(t, FrameIndex, attack[0].Type)
	assert.Equal(t, KindParticle, attack[1].Kind)
	assert.Equal(t, TargetOpponent, attack[1].Target)
	assert.Equal(t, 300*time.Millisecond, attack[1].Duration)
	assert.Equal(t, 2, attack[1].Config.Quantity)

	damage := table.Triggers("damage")
	require.Len(t, damage, 1)
	assert.Equal(t, ElapsedTime, damage[0].Type)
	assert.Equal(t, 50*time.Millisecond, damage[0].Delay())

	assert.Nil(t, table.Triggers("idle"))
}

func TestDispatcher_TimeTriggerFiresAfterDelay(t *testing.T) {
	d, c, sounds, _, _ := newTestDispatcher(t,
		Trigger{Key: "attack", Kind: KindSound, Type: ElapsedTime, Value: 100, EffectID: "swing"})
	d.SetVolume(0.5)

	d.Arm(1, "attack")
	c.Advance(99 * time.Millisecond)
	assert.Empty(t, sounds.ids())

	c.Advance(time.Millisecond)
	require.Equal(t, []string{"swing"}, sounds.ids())
	assert.Equal(t, 0.5, sounds.sound[0].volume)
}

func TestDispatcher_FrameTriggerFiresOnceAtThreshold(t *testing.T) {
	d, _, sounds, _, _ := newTestDispatcher(t,
		Trigger{Key: "attack", Kind: KindSound, Type: FrameIndex, Value: 2, EffectID: "swing"})

	d.Arm(1, "attack")
	d.FrameAdvanced(1, 0)
	d.FrameAdvanced(1, 1)
	assert.Empty(t, sounds.ids())

	// A skipped frame still satisfies index >= threshold
	d.FrameAdvanced(1, 3)
	d.FrameAdvanced(1, 4)
	assert.Equal(t, []string{"swing"}, sounds.ids())
	assert.Zero(t, d.Watching())
}

func TestDispatcher_RequestsAreIndependent(t *testing.T) {
	d, _, sounds, _, _ := newTestDispatcher(t,
		Trigger{Key: "attack", Kind: KindSound, Type: FrameIndex, Value: 1, EffectID: "swing"})

	d.Arm(1, "attack")
	d.Arm(2, "attack")
	d.FrameAdvanced(2, 1)
	assert.Equal(t, []string{"swing"}, sounds.ids())

	d.FrameAdvanced(1, 1)
	assert.Equal(t, []string{"swing", "swing"}, sounds.ids())
}

func TestDispatcher_ReleaseDropsUnfiredWatchers(t *testing.T) {
	d, _, sounds, _, _ := newTestDispatcher(t,
		Trigger{Key: "attack", Kind: KindSound, Type: FrameIndex, Value: 5, EffectID: "swing"})

	d.Arm(1, "attack")
	assert.Equal(t, 1, d.Watching())
	d.Release(1)
	d.FrameAdvanced(1, 9)
	assert.Empty(t, sounds.ids())
}

func TestDispatcher_ParticleFollowsTargetAndStops(t *testing.T) {
	d, c, _, particles, owner := newTestDispatcher(t,
		Trigger{Key: "attack", Kind: KindParticle, Type: ElapsedTime, Value: 0, EffectID: "spark", Target: TargetOpponent, Duration: 300 * time.Millisecond},
		Trigger{Key: "attack", Kind: KindParticle, Type: ElapsedTime, Value: 0, EffectID: "dust", Target: TargetSelf, Duration: 100 * time.Millisecond},
		Trigger{Key: "attack", Kind: KindParticle, Type: ElapsedTime, Value: 0, EffectID: "smoke", Target: TargetNone, Duration: 100 * time.Millisecond},
	)

	d.Arm(1, "attack")
	c.Advance(0)

	active := particles.Active()
	require.Len(t, active, 3)
	assert.Equal(t, owner.opp, active[0].Follow)
	assert.Equal(t, owner, active[1].Follow)
	assert.Equal(t, platform.FixedAnchor{}, active[2].Follow)

	c.Advance(100 * time.Millisecond)
	require.Equal(t, 1, particles.Len())
	assert.Equal(t, "spark", particles.Active()[0].ID)

	c.Advance(200 * time.Millisecond)
	assert.Zero(t, particles.Len())
}

func TestDispatcher_OpponentReadAtFireTime(t *testing.T) {
	d, c, _, particles, owner := newTestDispatcher(t,
		Trigger{Key: "attack", Kind: KindParticle, Type: ElapsedTime, Value: 50, EffectID: "spark", Target: TargetOpponent, Duration: time.Second})
	owner.opp = nil

	d.Arm(1, "attack")
	replacement := &testOwner{id: "p3"}
	owner.opp = replacement
	c.Advance(50 * time.Millisecond)

	require.Equal(t, 1, particles.Len())
	assert.Equal(t, replacement, particles.Active()[0].Follow)
}

func TestDispatcher_CountsEffects(t *testing.T) {
	reg := status.NewRegistry()
	c := clock.NewManual(time.Time{})
	d := NewDispatcher(Config{
		Table:  NewTable(Trigger{Key: "idle", Kind: KindSound, Type: FrameIndex, EffectID: "x"}),
		Clock:  c,
		Owner:  &testOwner{id: "p1"},
		Status: reg,
	})

	d.Arm(1, "idle")
	d.FrameAdvanced(1, 0)
	assert.Equal(t, int64(1), reg.Ints.Get("effect.sounds").Load())
}
