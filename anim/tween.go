package anim

import (
	"sync"
	"time"

	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/future"
	"github.com/lixenwraith/dice-duel/parameter"
	"github.com/lixenwraith/dice-duel/platform"
)

// Tweener drives properties towards target values over time
// One tween per property; a new tween supersedes the running one
type Tweener struct {
	clock clock.Clock
	step  time.Duration

	mu     sync.Mutex
	active map[*Property]*tween
}

type tween struct {
	prop     *Property
	from, to float64
	duration time.Duration
	elapsed  time.Duration
	ease     Ease
	done     *future.Future
	timer    clock.Timer
}

// NewTweener creates a tweener stepping at parameter.TweenStepInterval
func NewTweener(c clock.Clock) *Tweener {
	return &Tweener{
		clock:  c,
		step:   parameter.TweenStepInterval,
		active: make(map[*Property]*tween),
	}
}

// Tween moves p to `to` over d and resolves when the value lands
// A nil ease is Linear; d <= 0 sets the value immediately
func (tw *Tweener) Tween(p *Property, to float64, d time.Duration, ease Ease) *future.Future {
	if ease == nil {
		ease = Linear
	}

	t := &tween{
		prop:     p,
		from:     p.Get(),
		to:       to,
		duration: d,
		ease:     ease,
		done:     future.New(),
	}

	tw.mu.Lock()
	prev := tw.active[p]
	if prev != nil {
		prev.timer.Stop()
		delete(tw.active, p)
	}
	if d <= 0 {
		tw.mu.Unlock()
		if prev != nil {
			prev.done.Resolve(platform.ErrInterrupted)
		}
		p.Set(to)
		t.done.Resolve(nil)
		return t.done
	}
	tw.active[p] = t
	t.timer = tw.clock.AfterFunc(tw.step, func() { tw.advance(t) })
	tw.mu.Unlock()

	if prev != nil {
		prev.done.Resolve(platform.ErrInterrupted)
	}
	return t.done
}

// Active returns the number of running tweens
func (tw *Tweener) Active() int {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return len(tw.active)
}

func (tw *Tweener) advance(t *tween) {
	tw.mu.Lock()
	if tw.active[t.prop] != t {
		tw.mu.Unlock()
		return
	}

	t.elapsed += tw.step
	progress := float64(t.elapsed) / float64(t.duration)
	finished := progress >= 1
	if finished {
		delete(tw.active, t.prop)
		t.prop.Set(t.to)
	} else {
		t.prop.Set(t.from + (t.to-t.from)*t.ease(progress))
		t.timer = tw.clock.AfterFunc(tw.step, func() { tw.advance(t) })
	}
	tw.mu.Unlock()

	if finished {
		t.done.Resolve(nil)
	}
}
