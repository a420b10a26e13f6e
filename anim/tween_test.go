package anim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/platform"
)

func TestTweener_ReachesTarget(t *testing.T) {
	c := clock.NewManual(epoch)
	tw := NewTweener(c)
	var p Property

	done := tw.Tween(&p, 4, 64*time.Millisecond, Linear)
	assert.False(t, done.IsResolved())

	c.Advance(32 * time.Millisecond)
	assert.InDelta(t, 2.0, p.Get(), 0.01)

	c.Advance(32 * time.Millisecond)
	require.True(t, done.IsResolved())
	assert.NoError(t, done.Wait(context.Background()))
	assert.Equal(t, 4.0, p.Get())
	assert.Zero(t, tw.Active())
}

func TestTweener_ZeroDurationIsImmediate(t *testing.T) {
	tw := NewTweener(clock.NewManual(epoch))
	var p Property
	p.Set(3)

	done := tw.Tween(&p, -1, 0, nil)
	assert.True(t, done.IsResolved())
	assert.Equal(t, -1.0, p.Get())
}

func TestTweener_NewTweenSupersedes(t *testing.T) {
	c := clock.NewManual(epoch)
	tw := NewTweener(c)
	var p Property

	first := tw.Tween(&p, 10, time.Second, Linear)
	second := tw.Tween(&p, 0, 32*time.Millisecond, Power2)

	require.True(t, first.IsResolved())
	assert.ErrorIs(t, first.Err(), platform.ErrInterrupted)

	c.Advance(time.Second)
	assert.True(t, second.IsResolved())
	assert.Equal(t, 0.0, p.Get())
}

func TestEases_Endpoints(t *testing.T) {
	for name, ease := range map[string]Ease{"linear": Linear, "power2": Power2, "sine": Sine} {
		assert.InDelta(t, 0, ease(0), 1e-9, name)
		assert.InDelta(t, 1, ease(1), 1e-9, name)
	}
}

func TestParticles_StartStop(t *testing.T) {
	p := NewParticles(clock.NewManual(epoch))
	a := p.StartParticle("spark", platform.ParticleConfig{}, nil)
	b := p.StartParticle("dust", platform.ParticleConfig{OffsetY: -1}, platform.FixedAnchor{X: 3, Y: 4})

	active := p.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "spark", active[0].ID)
	assert.Equal(t, platform.FixedAnchor{}, active[0].Follow)

	p.StopParticle(a)
	p.StopParticle(a)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, b, p.Active()[0].Handle)
}
