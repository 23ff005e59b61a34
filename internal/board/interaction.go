package board

import (
	"fmt"
	"strings"
)

type Interaction uint8

const (
	Reveal Interaction = iota + 1
	ToggleFlag
)

func (i Interaction) String() string {
	switch i {
	case Reveal:
		return "reveal"
	case ToggleFlag:
		return "flag"
	default:
		return fmt.Sprintf("Interaction(%d)", uint8(i))
	}
}

func (i Interaction) valid() bool {
	return i == Reveal || i == ToggleFlag
}

// ParseInteraction accepts "reveal"/"open"/"r" and "flag"/"toggle-flag"/"f",
// case-insensitively.
func ParseInteraction(s string) (Interaction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reveal", "open", "r":
		return Reveal, nil
	case "flag", "toggle-flag", "f":
		return ToggleFlag, nil
	default:
		return 0, fmt.Errorf(
			"%w %q: must be one of 'reveal', 'flag'", ErrUnknownInteraction, s,
		)
	}
}
