package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Default Volumes
const (
	DefaultMusicVolume = 0.75
	DefaultSFXVolume   = 1.0

	// VolumeStep is the increment applied when cycling a volume option
	VolumeStep = 0.25
)

// Impact Sound ("hit")
const (
	HitSoundDuration = 120 * time.Millisecond
	HitSoundAttack   = 2 * time.Millisecond
	HitSoundRelease  = 90 * time.Millisecond
)

// Swing Sound ("swing")
const (
	SwingSoundDuration = 220 * time.Millisecond
	SwingSoundAttack   = 80 * time.Millisecond
	SwingSoundRelease  = 120 * time.Millisecond
)

// Dice Rattle ("dice")
const (
	DiceSoundClickDuration = 25 * time.Millisecond
	DiceSoundGap           = 35 * time.Millisecond
	DiceSoundClicks        = 4
)

// Crit Chime ("crit")
const (
	CritSoundNoteDuration = 90 * time.Millisecond
	CritSoundAttack       = 3 * time.Millisecond
	CritSoundRelease      = 60 * time.Millisecond
)

// Fanfare ("fanfare") and Defeat ("defeat")
const (
	FanfareNoteDuration = 140 * time.Millisecond
	FanfareAttack       = 5 * time.Millisecond
	FanfareRelease      = 80 * time.Millisecond

	DefeatSoundDuration = 700 * time.Millisecond
	DefeatSoundAttack   = 10 * time.Millisecond
	DefeatSoundRelease  = 500 * time.Millisecond
)

// Stage Music
const (
	// MusicBeatDuration is one beat of the generated stage loop (100 BPM)
	MusicBeatDuration = 600 * time.Millisecond
)
