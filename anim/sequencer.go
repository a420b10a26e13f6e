package anim

import (
	"fmt"
	"sync"
	"time"

	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/parameter"
	"github.com/lixenwraith/dice-duel/platform"
)

// Clip is a frame sequence an actor can play
type Clip struct {
	Key       string
	Frames    []string
	FrameRate float64
	// Repeat is the number of extra passes, -1 loops forever
	Repeat int
}

func (c Clip) frameDuration() time.Duration {
	rate := c.FrameRate
	if rate <= 0 {
		rate = parameter.DefaultFrameRate
	}
	return time.Duration(float64(time.Second) / rate)
}

// Sequencer advances frame-based animations on a clock and implements platform.Animator
//
// Signals:
//   - FrameAdvanced for frame 0 on Play, then once per frame interval
//   - AnimationComplete after the last pass; looping clips complete after their first pass
//     and keep cycling silently
//   - A playback superseded before completing ends with platform.ErrInterrupted
//   - Unknown keys end immediately with platform.ErrUnknownAnimation
type Sequencer struct {
	clock clock.Clock

	mu     sync.Mutex
	clips  map[string]map[string]Clip
	active map[string]*playback
}

type playback struct {
	req       platform.RequestID
	clip      Clip
	listener  platform.AnimationListener
	frame     int
	pass      int
	completed bool
	timer     clock.Timer
}

// NewSequencer creates a sequencer on the given clock
func NewSequencer(c clock.Clock) *Sequencer {
	return &Sequencer{
		clock:  c,
		clips:  make(map[string]map[string]Clip),
		active: make(map[string]*playback),
	}
}

// Register installs the clips an actor can play, replacing earlier ones
func (s *Sequencer) Register(actorID string, clips []Clip) {
	byKey := make(map[string]Clip, len(clips))
	for _, c := range clips {
		byKey[c.Key] = c
	}

	s.mu.Lock()
	s.clips[actorID] = byKey
	s.mu.Unlock()
}

// Unregister drops an actor, its running playback is abandoned without signals
func (s *Sequencer) Unregister(actorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pb := s.active[actorID]; pb != nil && pb.timer != nil {
		pb.timer.Stop()
	}
	delete(s.active, actorID)
	delete(s.clips, actorID)
}

// Play starts key on the actor, superseding whatever it was playing
func (s *Sequencer) Play(actorID string, req platform.RequestID, key string, l platform.AnimationListener) {
	s.mu.Lock()
	prev := s.active[actorID]
	if prev != nil {
		if prev.timer != nil {
			prev.timer.Stop()
		}
		delete(s.active, actorID)
	}

	clip, ok := s.clips[actorID][key]
	if !ok || len(clip.Frames) == 0 {
		s.mu.Unlock()
		s.interrupt(prev)
		l.AnimationComplete(req, key, fmt.Errorf("%w: %q on %s", platform.ErrUnknownAnimation, key, actorID))
		return
	}

	pb := &playback{req: req, clip: clip, listener: l}
	s.active[actorID] = pb
	pb.timer = s.clock.AfterFunc(clip.frameDuration(), func() { s.advance(actorID, pb) })
	s.mu.Unlock()

	s.interrupt(prev)
	l.FrameAdvanced(req, key, 0)
}

// Current returns the clip key and frame name displayed by the actor
func (s *Sequencer) Current(actorID string) (key, frame string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pb := s.active[actorID]
	if pb == nil {
		return "", "", false
	}
	return pb.clip.Key, pb.clip.Frames[pb.frame], true
}

func (s *Sequencer) interrupt(pb *playback) {
	if pb == nil || pb.completed {
		return
	}
	pb.listener.AnimationComplete(pb.req, pb.clip.Key, platform.ErrInterrupted)
}

func (s *Sequencer) advance(actorID string, pb *playback) {
	s.mu.Lock()
	if s.active[actorID] != pb {
		s.mu.Unlock()
		return
	}

	wasCompleted := pb.completed
	complete := false
	next := pb.frame + 1

	if next >= len(pb.clip.Frames) {
		if pb.clip.Repeat >= 0 && pb.pass >= pb.clip.Repeat {
			// Final pass done, hold on the last frame
			pb.completed = true
			pb.timer = nil
			s.mu.Unlock()
			if !wasCompleted {
				pb.listener.AnimationComplete(pb.req, pb.clip.Key, nil)
			}
			return
		}
		if pb.clip.Repeat < 0 && !pb.completed {
			pb.completed = true
			complete = true
		}
		pb.pass++
		next = 0
	}

	pb.frame = next
	pb.timer = s.clock.AfterFunc(pb.clip.frameDuration(), func() { s.advance(actorID, pb) })
	s.mu.Unlock()

	if complete {
		pb.listener.AnimationComplete(pb.req, pb.clip.Key, nil)
		return
	}
	if !wasCompleted {
		pb.listener.FrameAdvanced(pb.req, pb.clip.Key, next)
	}
}
