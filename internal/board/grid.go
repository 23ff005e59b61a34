package board

import (
	"strconv"
	"strings"
)

// Symbol renders what a player may know about the tile: "#" hidden,
// "F" flagged, "*" an exposed hazard, otherwise the surrounding count.
func (t *Tile) Symbol() string {
	switch t.status {
	case Hidden:
		return "#"
	case Flagged:
		return "F"
	}
	if t.hazard {
		return "*"
	}
	return strconv.Itoa(t.surrounding)
}

// Grid returns the tile symbols row by row.
func (b *Board) Grid() [][]string {
	grid := make([][]string, b.cfg.Height)
	for row := range b.cfg.Height {
		grid[row] = make([]string, b.cfg.Width)
		for col := range b.cfg.Width {
			grid[row][col] = b.tiles[b.cfg.index(row, col)].Symbol()
		}
	}
	return grid
}

func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.Grid() {
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
