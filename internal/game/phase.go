package game

// Phase is the top-level state of a game session.
type Phase int

const (
	PhaseBoot Phase = iota // awaiting host init or a standalone start
	PhaseTitle
	PhasePlaying
	PhasePaused
	PhaseRoundComplete
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseBoot:
		return "boot"
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseRoundComplete:
		return "round_complete"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Outcome is how a run ended. OutcomeNone is only valid outside PhaseResult.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
	OutcomeAbort
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomeAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// OutcomeRecord is the final tally of a run, produced once per arming of the
// outcome latch.
type OutcomeRecord struct {
	Outcome         Outcome
	Score           int
	TimeSurvivedMs  int64
	MaxAssimilation float64 // rounded to one decimal
	BeaconCharge    float64 // rounded to one decimal
	Round           int
	Seed            uint32
}
