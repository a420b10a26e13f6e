// Package options holds the player-adjustable game options
//
// Readers take an immutable Snapshot; changes go through a Store, which
// notifies subscribers with the new snapshot. Fight settings are consumed
// once per round, volumes by the audio layer as soon as they change.
package options

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/dice-duel/parameter"
)

var ErrInvalid = errors.New("invalid options")

// Snapshot is one immutable set of option values
type Snapshot struct {
	MaxHP       int     `toml:"max_hp"`
	BaseDamage  int     `toml:"base_damage"`
	CritDamage  int     `toml:"crit_damage"`
	MusicVolume float64 `toml:"music_volume"`
	SFXVolume   float64 `toml:"sfx_volume"`
}

// Defaults returns the options a fresh install starts with
func Defaults() Snapshot {
	return Snapshot{
		MaxHP:       parameter.DefaultMaxHP,
		BaseDamage:  parameter.DefaultBaseDamage,
		CritDamage:  parameter.DefaultCritDamage,
		MusicVolume: parameter.DefaultMusicVolume,
		SFXVolume:   parameter.DefaultSFXVolume,
	}
}

// Validate checks every field is in range
func (s Snapshot) Validate() error {
	switch {
	case s.MaxHP <= 0:
		return fmt.Errorf("%w: max_hp %d must be positive", ErrInvalid, s.MaxHP)
	case s.BaseDamage < 0:
		return fmt.Errorf("%w: base_damage %d is negative", ErrInvalid, s.BaseDamage)
	case s.CritDamage < 0:
		return fmt.Errorf("%w: crit_damage %d is negative", ErrInvalid, s.CritDamage)
	case s.MusicVolume < 0 || s.MusicVolume > 1:
		return fmt.Errorf("%w: music_volume %.2f outside [0,1]", ErrInvalid, s.MusicVolume)
	case s.SFXVolume < 0 || s.SFXVolume > 1:
		return fmt.Errorf("%w: sfx_volume %.2f outside [0,1]", ErrInvalid, s.SFXVolume)
	}
	return nil
}

// WithFightDefaults returns s with HP and damage restored, volumes kept
func (s Snapshot) WithFightDefaults() Snapshot {
	d := Defaults()
	s.MaxHP = d.MaxHP
	s.BaseDamage = d.BaseDamage
	s.CritDamage = d.CritDamage
	return s
}

// NextMaxHP cycles 5, 10, 15, 20, 5
func NextMaxHP(v int) int {
	v += parameter.MaxHPStep
	if v > parameter.MaxHPLimit {
		return parameter.MaxHPStep
	}
	return v
}

// NextDamage cycles 1, 5, 10, 15, 20, 1
func NextDamage(v int) int {
	if v >= parameter.DamageLimit {
		return 1
	}
	return (v/5 + 1) * 5
}

// NextVolume cycles 0, 0.25, 0.5, 0.75, 1, 0
func NextVolume(v float64) float64 {
	next := math.Round((v+parameter.VolumeStep)/parameter.VolumeStep) * parameter.VolumeStep
	if next > 1 {
		return 0
	}
	return next
}
