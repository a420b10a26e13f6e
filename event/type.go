package event

// EventType identifies a fight event
type EventType int

const (
	// EventRoundStarted marks admission of a new round
	// Trigger: Engine.TriggerRound | Payload: *RoundPayload
	EventRoundStarted EventType = iota

	// EventDiceRevealed follows the second die reveal
	// Trigger: Engine after both reveals | Payload: *RoundPayload
	EventDiceRevealed

	// EventOutcomeApplied follows the joined outcome animations and damage
	// Trigger: Engine | Payload: *RoundPayload
	EventOutcomeApplied

	// EventCombatantDefeated reports a combatant that met the death rule
	// Trigger: Engine death check | Payload: *DefeatPayload
	EventCombatantDefeated

	// EventRoundEnded closes every admitted round, stalled or not
	// Trigger: Engine | Payload: *RoundPayload
	EventRoundEnded

	// EventMatchEnded reports the winner once a combatant is defeated
	// Trigger: Engine | Payload: *MatchPayload
	EventMatchEnded

	// EventRoundStalled reports a round abandoned after the stall timeout
	// Trigger: Engine | Payload: *StallPayload
	EventRoundStalled

	// EventRematch reports a reset to full health
	// Trigger: Engine.Rematch | Payload: *MatchPayload
	EventRematch
)

var typeNames = map[EventType]string{
	EventRoundStarted:      "RoundStarted",
	EventDiceRevealed:      "DiceRevealed",
	EventOutcomeApplied:    "OutcomeApplied",
	EventCombatantDefeated: "CombatantDefeated",
	EventRoundEnded:        "RoundEnded",
	EventMatchEnded:        "MatchEnded",
	EventRoundStalled:      "RoundStalled",
	EventRematch:           "Rematch",
}

func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}
