package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/dice-duel/parameter"
)

// Sound ids referenced by character manifests and the die
const (
	SoundHit     = "hit"
	SoundSwing   = "swing"
	SoundDice    = "dice"
	SoundCrit    = "crit"
	SoundFanfare = "fanfare"
	SoundDefeat  = "defeat"
)

// SoundIDs lists every sound the bank can generate
var SoundIDs = []string{SoundHit, SoundSwing, SoundDice, SoundCrit, SoundFanfare, SoundDefeat}

// NewSound returns a fresh unity-gain streamer for id, nil when id is unknown
func NewSound(id string, rate beep.SampleRate) beep.Streamer {
	switch id {
	case SoundHit:
		return hitSound(rate)
	case SoundSwing:
		return swingSound(rate)
	case SoundDice:
		return diceSound(rate)
	case SoundCrit:
		return critSound(rate)
	case SoundFanfare:
		return fanfareSound(rate)
	case SoundDefeat:
		return defeatSound(rate)
	default:
		return nil
	}
}

// hitSound is a noise burst over a low thump
func hitSound(rate beep.SampleRate) beep.Streamer {
	d, a, r := parameter.HitSoundDuration, parameter.HitSoundAttack, parameter.HitSoundRelease
	return mixFor(d, rate,
		newVolume(tone(0, WaveNoise, d, a, r, rate), 0.5),
		newVolume(tone(90, WaveSine, d, a, r, rate), 0.6),
	)
}

// swingSound is a swelling noise whoosh
func swingSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.SwingSoundDuration
	return newVolume(tone(0, WaveNoise, d, parameter.SwingSoundAttack, parameter.SwingSoundRelease, rate), 0.35)
}

// diceSound is a handful of short square clicks
func diceSound(rate beep.SampleRate) beep.Streamer {
	click := parameter.DiceSoundClickDuration
	parts := make([]beep.Streamer, 0, parameter.DiceSoundClicks*2)
	for i := 0; i < parameter.DiceSoundClicks; i++ {
		freq := 1800.0 + 300*float64(i%2)
		parts = append(parts,
			tone(freq, WaveSquare, click, time.Millisecond, click/2, rate),
			beep.Silence(rate.N(parameter.DiceSoundGap)),
		)
	}
	return newVolume(beep.Seq(parts...), 0.25)
}

// critSound is a rising two-note chime
func critSound(rate beep.SampleRate) beep.Streamer {
	d, a, r := parameter.CritSoundNoteDuration, parameter.CritSoundAttack, parameter.CritSoundRelease
	return newVolume(beep.Seq(
		tone(987.77, WaveSquare, d, a, r, rate), // B5
		tone(1318.51, WaveSquare, d, a, r, rate), // E6
	), 0.4)
}

// fanfareSound is an ascending major arpeggio
func fanfareSound(rate beep.SampleRate) beep.Streamer {
	d, a, r := parameter.FanfareNoteDuration, parameter.FanfareAttack, parameter.FanfareRelease
	notes := []float64{523.25, 659.25, 783.99, 1046.50} // C5 E5 G5 C6
	parts := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		parts[i] = mixFor(d, rate,
			newVolume(tone(f, WaveSquare, d, a, r, rate), 0.6),
			newVolume(tone(f*2, WaveSine, d, a, r, rate), 0.3),
		)
	}
	return newVolume(beep.Seq(parts...), 0.5)
}

// defeatSound is a long saw drone with a slow release
func defeatSound(rate beep.SampleRate) beep.Streamer {
	d, a, r := parameter.DefeatSoundDuration, parameter.DefeatSoundAttack, parameter.DefeatSoundRelease
	return mixFor(d, rate,
		newVolume(tone(110, WaveSaw, d, a, r, rate), 0.35),
		newVolume(tone(82.41, WaveSine, d, a, r, rate), 0.5),
	)
}

// mixFor mixes streams and cuts the result at d
func mixFor(d time.Duration, rate beep.SampleRate, s ...beep.Streamer) beep.Streamer {
	return beep.Take(rate.N(d), beep.Mix(s...))
}
