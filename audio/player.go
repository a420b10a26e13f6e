// Package audio synthesizes the fight's sound effects and stage music with
// beep and plays them through the system speaker. Every call degrades to a
// no-op when the speaker was never initialized.
package audio

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/dice-duel/parameter"
	"github.com/lixenwraith/dice-duel/status"
)

// Player mixes one-shot sounds and one looping stage track
// Implements platform.SoundPlayer
type Player struct {
	rate   beep.SampleRate
	logger *slog.Logger

	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	musicVolume *effects.Volume
	musicGain   float64
	track       string
	initialized bool

	played     *atomic.Int64
	unknown    *atomic.Int64
	muted      *atomic.Bool
	musicGauge *status.Gauge
}

// NewPlayer creates an uninitialized player; metrics go to reg when non-nil
func NewPlayer(reg *status.Registry, logger *slog.Logger) *Player {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Player{
		rate:       beep.SampleRate(parameter.AudioSampleRate),
		logger:     logger,
		mixer:      &beep.Mixer{},
		musicGain:  parameter.DefaultMusicVolume,
		played:     reg.Ints.Get("audio.played"),
		unknown:    reg.Ints.Get("audio.unknown"),
		muted:      reg.Bools.Get("audio.muted"),
		musicGauge: reg.Floats.Get("audio.music_volume"),
	}
	p.musicGauge.Set(p.musicGain)
	p.muted.Store(true)
	return p
}

// Initialize opens the speaker; a second call is a no-op
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	p.muted.Store(false)
	return nil
}

// Initialized reports whether sounds reach the speaker
func (p *Player) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// PlaySound plays a one-shot sound at a linear volume in [0,1]
func (p *Player) PlaySound(id string, volume float64) {
	s := NewSound(id, p.rate)
	if s == nil {
		p.unknown.Add(1)
		p.logger.Debug("unknown sound", "id", id)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized || volume <= 0 {
		return
	}

	p.played.Add(1)
	speaker.Lock()
	p.mixer.Add(newVolume(s, volume))
	speaker.Unlock()
}

// PlayMusic starts the loop for a stage bgm id, replacing the current one
// Unknown ids stop the music
func (p *Player) PlayMusic(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.track == id && p.music != nil {
		return
	}
	p.stopMusicLocked()
	p.track = id

	if !p.initialized {
		return
	}
	s := NewTrack(id, p.rate)
	if s == nil {
		p.logger.Debug("no music for stage", "bgm", id)
		return
	}

	p.musicVolume = newVolume(s, p.musicGain)
	p.music = &beep.Ctrl{Streamer: p.musicVolume}
	speaker.Lock()
	p.mixer.Add(p.music)
	speaker.Unlock()
}

// StopMusic silences the stage loop
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopMusicLocked()
	p.track = ""
}

func (p *Player) stopMusicLocked() {
	if p.music == nil {
		return
	}
	if p.initialized {
		speaker.Lock()
	}
	p.music.Paused = true
	p.music.Streamer = nil // Mixer drops a drained ctrl
	if p.initialized {
		speaker.Unlock()
	}
	p.music = nil
	p.musicVolume = nil
}

// SetMusicVolume changes the gain of the running and future stage loops
func (p *Player) SetMusicVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.musicGain = v
	p.musicGauge.Set(v)
	if p.musicVolume == nil {
		return
	}
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	if v <= 0 {
		p.musicVolume.Silent = true
		return
	}
	p.musicVolume.Silent = false
	p.musicVolume.Volume = math.Log2(v)
}

// MusicVolume returns the current stage loop gain
func (p *Player) MusicVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.musicGain
}

// Track returns the bgm id last requested
func (p *Player) Track() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// Cleanup stops every sound; the player can be initialized again
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.stopMusicLocked()
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	// beep has no speaker Close; clearing streamers stops all output
	p.initialized = false
	p.muted.Store(true)
}
