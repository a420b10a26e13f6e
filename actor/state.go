package actor

// Animation keys every character provides
const (
	KeyIdle    = "idle"
	KeyAttack  = "attack"
	KeyDamage  = "damage"
	KeyDefeat  = "defeat"
	KeyVictory = "victory"
)

// State is the animation state of a combatant
type State int

const (
	Idle State = iota
	Attacking
	Damaged
	Defeated
	Victorious
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Attacking:
		return "Attacking"
	case Damaged:
		return "Damaged"
	case Defeated:
		return "Defeated"
	case Victorious:
		return "Victorious"
	default:
		return "Unknown"
	}
}

// stateFor maps an animation key to the state it puts the actor in
func stateFor(key string) (State, bool) {
	switch key {
	case KeyIdle:
		return Idle, true
	case KeyAttack:
		return Attacking, true
	case KeyDamage:
		return Damaged, true
	case KeyDefeat:
		return Defeated, true
	case KeyVictory:
		return Victorious, true
	default:
		return 0, false
	}
}
