// Package platform holds the vocabulary shared between the fight core and the
// audio/visual layer it calls into: playback request ids, animation signals,
// particle anchors and handles.
package platform

import (
	"errors"
	"sync/atomic"
	"time"
)

// RequestID correlates one animation playback with its signals
type RequestID uint64

var lastRequest atomic.Uint64

// NextRequestID returns a process-unique request id
func NextRequestID() RequestID {
	return RequestID(lastRequest.Add(1))
}

// AnimationListener receives the signals of one playback request
// Calls for a request stop after AnimationComplete
type AnimationListener interface {
	// FrameAdvanced reports the zero-based frame index now displayed
	FrameAdvanced(req RequestID, key string, frame int)
	// AnimationComplete reports the end of the request, err is nil on a normal finish
	AnimationComplete(req RequestID, key string, err error)
}

// Animator plays named animations on actor sprites
type Animator interface {
	Play(actorID string, req RequestID, key string, l AnimationListener)
}

// Animator completion errors
var (
	ErrUnknownAnimation = errors.New("unknown animation")
	ErrInterrupted      = errors.New("animation interrupted")
)

// Anchor is something a particle can follow
type Anchor interface {
	AnchorID() string
}

// FixedAnchor pins a particle to a point in arena coordinates
type FixedAnchor struct {
	X, Y int
}

func (FixedAnchor) AnchorID() string { return "" }

// ParticleConfig describes where a particle is emitted relative to its anchor
type ParticleConfig struct {
	OffsetX int
	OffsetY int
	// Quantity is the number of glyphs emitted, 0 means one
	Quantity int
	// Lifetime is how long the emitter expects to run, used for fading
	Lifetime time.Duration
}

// ParticleHandle identifies a running particle effect
type ParticleHandle uint64

// SoundPlayer plays one-shot sound effects
type SoundPlayer interface {
	PlaySound(id string, volume float64)
}

// ParticleHost starts and stops particle effects
type ParticleHost interface {
	StartParticle(id string, cfg ParticleConfig, follow Anchor) ParticleHandle
	StopParticle(h ParticleHandle)
}

// NopSound discards every sound
type NopSound struct{}

func (NopSound) PlaySound(string, float64) {}
