package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/tilesweeper/internal/board"
)

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	hudStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	hiddenStyle = cellStyle.Foreground(lipgloss.Color("244"))
	flagStyle   = cellStyle.Foreground(lipgloss.Color("214")).Bold(true)
	hazardStyle = cellStyle.Foreground(lipgloss.Color("196")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	wonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	lostStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	countColors = [...]string{"240", "39", "34", "196", "21", "88", "37", "255", "245"}
)

func tileStyle(t *board.Tile) lipgloss.Style {
	switch t.Status() {
	case board.Hidden:
		return hiddenStyle
	case board.Flagged:
		return flagStyle
	}
	if hazard, _ := t.Hazard(); hazard {
		return hazardStyle
	}
	n, _ := t.SurroundingHazards()
	return cellStyle.Foreground(lipgloss.Color(countColors[n]))
}

func tileText(t *board.Tile) string {
	switch sym := t.Symbol(); sym {
	case "#":
		return "·"
	case "0":
		return " "
	default:
		return sym
	}
}

func (m Model) status() string {
	b := m.game.board
	switch b.Phase() {
	case board.NotStarted:
		return "reveal a tile to start"
	case board.InProgress:
		return "in progress"
	}
	if b.Outcome() == board.Won {
		return wonStyle.Render("cleared!")
	}
	return lostStyle.Render("boom")
}

func (m Model) hud() string {
	b := m.game.board
	return hudStyle.Render(fmt.Sprintf(
		"hazards %d  flags %d  time %s  %s",
		b.HazardCount(),
		b.FlaggedCount(),
		m.game.elapsed().Truncate(time.Second),
		m.status(),
	))
}

func (m Model) grid() string {
	b := m.game.board
	var sb strings.Builder
	for row := range b.Height() {
		cells := make([]string, 0, b.Width())
		for col := range b.Width() {
			t, _ := b.Tile(row, col)
			style := tileStyle(t)
			if m.cursor == (board.Point{Row: row, Col: col}) {
				style = style.Inherit(cursorStyle)
			}
			cells = append(cells, style.Render(tileText(t)))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		if row < b.Height()-1 {
			sb.WriteByte('\n')
		}
	}
	return boardStyle.Render(sb.String())
}

func (m Model) View() string {
	parts := []string{m.hud(), m.grid()}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
