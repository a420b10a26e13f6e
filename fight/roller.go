package fight

import (
	"math/rand/v2"

	"github.com/lixenwraith/dice-duel/parameter"
)

// Roller produces one combatant's die rolls
type Roller interface {
	// Roll returns a uniform value in [1, parameter.DieFaces]
	Roll() int
}

// RandRoller is a Roller with its own PCG source
// Not safe for concurrent use; the engine rolls from a single round at a time
type RandRoller struct {
	r *rand.Rand
}

// NewRandRoller creates a roller seeded with seed
func NewRandRoller(seed uint64) *RandRoller {
	return &RandRoller{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRollers returns two independent rollers; a zero seed draws random seeds
func NewRollers(seed uint64) (*RandRoller, *RandRoller) {
	if seed == 0 {
		return NewRandRoller(rand.Uint64()), NewRandRoller(rand.Uint64())
	}
	return NewRandRoller(seed), NewRandRoller(seed + 1)
}

func (r *RandRoller) Roll() int {
	return r.r.IntN(parameter.DieFaces) + 1
}
