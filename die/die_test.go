package die

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dice-duel/anim"
	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/future"
)

type tweenCall struct {
	prop *anim.Property
	to   float64
	dur  time.Duration
}

// instantTweener lands every tween immediately and records it
type instantTweener struct {
	mu    sync.Mutex
	calls []tweenCall
}

func (tw *instantTweener) Tween(p *anim.Property, to float64, d time.Duration, _ anim.Ease) *future.Future {
	tw.mu.Lock()
	tw.calls = append(tw.calls, tweenCall{p, to, d})
	tw.mu.Unlock()
	p.Set(to)
	return future.Resolved(nil)
}

func (tw *instantTweener) take() []tweenCall {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	out := tw.calls
	tw.calls = nil
	return out
}

type soundCount struct {
	mu sync.Mutex
	n  int
}

func (s *soundCount) PlaySound(id string, _ float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == SoundID {
		s.n++
	}
}

func TestRoll_ShakesThenReveals(t *testing.T) {
	tw := &instantTweener{}
	sounds := &soundCount{}
	d := New(tw, Config{Sounds: sounds})
	ctx := context.Background()

	_, ok := d.Value()
	require.False(t, ok)

	require.NoError(t, d.Roll(ctx, 7).Wait(ctx))

	calls := tw.take()
	require.Len(t, calls, 2*3+1, "three down/up shakes then one reveal")
	for i := 0; i < 6; i += 2 {
		assert.Same(t, &d.offset, calls[i].prop)
		assert.Equal(t, 1.0, calls[i].to)
		assert.Equal(t, 0.0, calls[i+1].to)
	}
	assert.Same(t, &d.textOffset, calls[6].prop)
	assert.Equal(t, 0.0, calls[6].to)

	v, ok := d.Value()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, Revealed, d.State())
	assert.Equal(t, 1, sounds.n)
}

func TestRoll_HidesPreviousValueFirst(t *testing.T) {
	tw := &instantTweener{}
	d := New(tw, Config{ShakeCount: 1})
	ctx := context.Background()

	require.NoError(t, d.Roll(ctx, 4).Wait(ctx))
	tw.take()

	require.NoError(t, d.Roll(ctx, 12).Wait(ctx))
	calls := tw.take()
	require.Len(t, calls, 1+2+1)
	assert.Same(t, &d.textOffset, calls[0].prop)
	assert.Equal(t, -d.cfg.TextMoveDistance, calls[0].to)

	v, _ := d.Value()
	assert.Equal(t, 12, v)
}

func TestFailAndResetAfterFail(t *testing.T) {
	tw := &instantTweener{}
	d := New(tw, Config{})
	ctx := context.Background()

	// Not displaced: nothing to animate
	f := d.ResetAfterFail(ctx)
	assert.True(t, f.IsResolved())
	assert.Empty(t, tw.take())

	require.NoError(t, d.Fail(ctx).Wait(ctx))
	assert.True(t, d.Displaced())
	assert.Equal(t, Failed, d.State())
	assert.Equal(t, d.cfg.FailDistance, d.Offset())
	tw.take()

	require.NoError(t, d.ResetAfterFail(ctx).Wait(ctx))
	calls := tw.take()
	require.Len(t, calls, 1)
	assert.Equal(t, 50*time.Millisecond, calls[0].dur)
	assert.False(t, d.Displaced())
	assert.Equal(t, 0.0, d.Offset())
	assert.Equal(t, Idle, d.State())
}

func TestReset_ClearsImmediately(t *testing.T) {
	tw := &instantTweener{}
	d := New(tw, Config{})
	ctx := context.Background()

	require.NoError(t, d.Roll(ctx, 20).Wait(ctx))
	require.NoError(t, d.Fail(ctx).Wait(ctx))

	d.Reset()
	_, ok := d.Value()
	assert.False(t, ok)
	assert.False(t, d.Displaced())
	assert.Equal(t, Idle, d.State())
	assert.Equal(t, 0.0, d.Offset())
	assert.Equal(t, 0.0, d.TextOffset())
}

func TestRoll_ContextCancelled(t *testing.T) {
	d := New(anim.NewTweener(stoppedClock{}), Config{})
	ctx, cancel := context.WithCancel(context.Background())
	f := d.Roll(ctx, 3)
	cancel()

	assert.ErrorIs(t, f.Wait(context.Background()), context.Canceled)
	_, ok := d.Value()
	assert.False(t, ok)
}

// stoppedClock never fires deferred calls
type stoppedClock struct{}

func (stoppedClock) Now() time.Time { return time.Time{} }

func (stoppedClock) AfterFunc(time.Duration, func()) clock.Timer { return stoppedTimer{} }

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return true }
