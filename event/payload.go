package event

import "time"

// FightEvent is one entry of the event feed
type FightEvent struct {
	Type    EventType
	MatchID string
	Round   int
	At      time.Time
	Payload any
}

// Outcome of a round
type Outcome int

const (
	P1Wins Outcome = iota
	P2Wins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case P1Wins:
		return "P1Wins"
	case P2Wins:
		return "P2Wins"
	case Tie:
		return "Tie"
	default:
		return "Unknown"
	}
}

// RoundPayload carries the round state at the time of the event
type RoundPayload struct {
	Roll1, Roll2 int
	Outcome      Outcome
	Damage       int
	Crit         bool
	HP1, HP2     int
	P1Dead       bool
	P2Dead       bool
	Err          error
}

// DefeatPayload names the defeated combatant
type DefeatPayload struct {
	ActorID string
	HP      int
}

// MatchPayload names the winner of a match
type MatchPayload struct {
	WinnerID string
	LoserID  string
	Rounds   int
}

// StallPayload describes the wait that timed out
type StallPayload struct {
	Phase   string
	Timeout time.Duration
}
