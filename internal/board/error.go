package board

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig      = errors.New("invalid board config")
	ErrOutOfBounds        = errors.New("tile position out of bounds")
	ErrUnknownInteraction = errors.New("unknown interaction")
)

// ConfigError describes why a [Config] cannot produce a playable board.
// It unwraps to [ErrInvalidConfig].
type ConfigError struct {
	Config Config
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Config, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// AssertionError signals a broken internal invariant, e.g. a [Placer]
// returning a layout the board cannot accept.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
