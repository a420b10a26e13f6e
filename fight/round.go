package fight

import (
	"github.com/lixenwraith/dice-duel/event"
	"github.com/lixenwraith/dice-duel/options"
	"github.com/lixenwraith/dice-duel/parameter"
)

// Outcome of a round, shared with the event feed
type Outcome = event.Outcome

const (
	P1Wins = event.P1Wins
	P2Wins = event.P2Wins
	Tie    = event.Tie
)

// RoundState is created for one round and discarded after it
type RoundState struct {
	Number       int
	Roll1, Roll2 int
	Outcome      Outcome
	Damage       int
	Crit         bool
	P1Dead       bool
	P2Dead       bool
	TimedOut     bool
}

func (rs RoundState) payload(hp1, hp2 int, err error) *event.RoundPayload {
	return &event.RoundPayload{
		Roll1:   rs.Roll1,
		Roll2:   rs.Roll2,
		Outcome: rs.Outcome,
		Damage:  rs.Damage,
		Crit:    rs.Crit,
		HP1:     hp1,
		HP2:     hp2,
		P1Dead:  rs.P1Dead,
		P2Dead:  rs.P2Dead,
		Err:     err,
	}
}

// Resolve compares two rolls; damage goes to the loser and is
// crit damage when the winning roll is the top face
func Resolve(r1, r2 int, snap options.Snapshot) (outcome Outcome, damage int, crit bool) {
	switch {
	case r1 > r2:
		crit = r1 == parameter.DieFaces
		outcome = P1Wins
	case r1 < r2:
		crit = r2 == parameter.DieFaces
		outcome = P2Wins
	default:
		return Tie, 0, false
	}

	if crit {
		return outcome, snap.CritDamage, true
	}
	return outcome, snap.BaseDamage, false
}

// DeathRule decides when a combatant's HP ends the match
type DeathRule int

const (
	// DeathAtOrBelowZero ends the match once HP <= 0
	DeathAtOrBelowZero DeathRule = iota
	// DeathExactZero only ends the match at HP == 0; overshooting damage leaves the combatant fighting
	DeathExactZero
)

// Dead applies the rule to an HP value
func (r DeathRule) Dead(hp int) bool {
	if r == DeathExactZero {
		return hp == 0
	}
	return hp <= 0
}

func (r DeathRule) String() string {
	if r == DeathExactZero {
		return "exact-zero"
	}
	return "at-or-below-zero"
}

// ParseDeathRule accepts the String forms
func ParseDeathRule(s string) (DeathRule, bool) {
	switch s {
	case "", "at-or-below-zero":
		return DeathAtOrBelowZero, true
	case "exact-zero":
		return DeathExactZero, true
	default:
		return 0, false
	}
}
