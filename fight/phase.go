package fight

// Phase of the round protocol
type Phase int

const (
	AwaitingInput Phase = iota
	Rolling
	Revealing
	Resolving
	ApplyingOutcome
	CheckingDeath
	Ended
)

func (p Phase) String() string {
	switch p {
	case AwaitingInput:
		return "AwaitingInput"
	case Rolling:
		return "Rolling"
	case Revealing:
		return "Revealing"
	case Resolving:
		return "Resolving"
	case ApplyingOutcome:
		return "ApplyingOutcome"
	case CheckingDeath:
		return "CheckingDeath"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}
