package board

type Phase uint8

const (
	NotStarted Phase = iota
	InProgress
	Ended
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome is only meaningful once the phase is [Ended].
type Outcome uint8

const (
	Undecided Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Undecided:
		return "undecided"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Observer receives game-level notifications. GameStarted fires once per
// game on the first accepted interaction, GameEnded once when the game is
// decided.
type Observer interface {
	GameStarted()
	GameEnded(won bool)
}

// ObserverFuncs adapts plain functions to [Observer]. Nil fields are skipped.
type ObserverFuncs struct {
	Started func()
	Ended   func(won bool)
}

func (f ObserverFuncs) GameStarted() {
	if f.Started != nil {
		f.Started()
	}
}

func (f ObserverFuncs) GameEnded(won bool) {
	if f.Ended != nil {
		f.Ended(won)
	}
}
