package board

import "fmt"

// safeZoneMax is the largest possible safe zone: the first revealed tile
// and its eight neighbors.
const safeZoneMax = 9

// MaxSide bounds both dimensions so that width*height can neither
// overflow nor allocate an unreasonable grid.
const MaxSide = 256

type Config struct {
	Width, Height, HazardCount int
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%d(%d)", c.Width, c.Height, c.HazardCount)
}

// Validate reports a [*ConfigError] unless both sides are within
// [1, MaxSide] and the hazard count fits outside the largest safe zone.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{c, fmt.Sprintf("width must be positive, got %d", c.Width)}
	}
	if c.Height <= 0 {
		return &ConfigError{c, fmt.Sprintf("height must be positive, got %d", c.Height)}
	}
	if c.Width > MaxSide || c.Height > MaxSide {
		return &ConfigError{c, fmt.Sprintf(
			"width and height must not exceed %d, got %dx%d", MaxSide, c.Width, c.Height,
		)}
	}
	if c.HazardCount <= 0 {
		return &ConfigError{c, fmt.Sprintf("hazard count must be positive, got %d", c.HazardCount)}
	}
	if limit := c.Width*c.Height - safeZoneMax; c.HazardCount > limit {
		return &ConfigError{c, fmt.Sprintf(
			"hazard count must not exceed %d (width*height - %d), got %d",
			max(limit, 0), safeZoneMax, c.HazardCount,
		)}
	}
	return nil
}

func (c Config) InBounds(row, col int) bool {
	return 0 <= row && row < c.Height && 0 <= col && col < c.Width
}

func (c Config) index(row, col int) int {
	return row*c.Width + col
}
