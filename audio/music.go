package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/dice-duel/parameter"
)

// stageTracks maps a stage bgm id to the root frequency of its loop
var stageTracks = map[string]float64{
	"dojo":   110.00, // A2
	"bridge": 98.00,  // G2
}

// HasTrack reports whether id names a generated stage loop
func HasTrack(id string) bool {
	_, ok := stageTracks[id]
	return ok
}

// beatGenerator is an endless kick and bass loop
type beatGenerator struct {
	sr      beep.SampleRate
	root    float64
	pos     int
	samples int
	kick    int
}

// NewTrack returns the endless loop for a stage bgm id, nil when unknown
func NewTrack(id string, rate beep.SampleRate) beep.Streamer {
	root, ok := stageTracks[id]
	if !ok {
		return nil
	}
	return &beatGenerator{
		sr:      rate,
		root:    root,
		samples: rate.N(parameter.MusicBeatDuration),
		kick:    rate.N(100 * time.Millisecond),
	}
}

func (g *beatGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		beatPos := g.pos % g.samples
		bar := (g.pos / g.samples) % 4
		t := float64(beatPos) / float64(g.sr)

		kick := 0.0
		if beatPos < g.kick {
			env := 1.0 - float64(beatPos)/float64(g.kick)
			kick = 0.4 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}

		// Bass walks root, root, fifth, root
		freq := g.root
		if bar == 2 {
			freq *= 1.5
		}
		bass := 0.15 * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = kick + bass
		samples[i][1] = kick + bass
		g.pos++
	}
	return len(samples), true
}

func (g *beatGenerator) Err() error { return nil }
