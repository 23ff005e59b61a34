package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/tilesweeper/internal/board"
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// game is shared by every copy of [Model]. It follows the board's
// notifications to time the current game.
type game struct {
	board   *board.Board
	log     *logrus.Logger
	now     func() time.Time
	started time.Time
	ended   time.Time
}

// [game] implements [board.Observer]
func (g *game) GameStarted() {
	g.started = g.now()
	g.ended = time.Time{}
	g.log.WithField("board", g.board.Config()).Info("game started")
}

func (g *game) GameEnded(won bool) {
	g.ended = g.now()
	g.log.WithFields(logrus.Fields{
		"won":      won,
		"duration": g.ended.Sub(g.started).String(),
	}).Info("game ended")
}

func (g *game) elapsed() time.Duration {
	switch {
	case g.started.IsZero():
		return 0
	case !g.ended.IsZero():
		return g.ended.Sub(g.started)
	default:
		return g.now().Sub(g.started)
	}
}

type Model struct {
	game   *game
	cursor board.Point
	keys   keyMap
	help   help.Model
	err    error
}

// NewModel plays b, starting with the cursor in the middle of the board.
func NewModel(b *board.Board, log *logrus.Logger) Model {
	g := &game{board: b, log: log, now: time.Now}
	b.Subscribe(g)

	return Model{
		game:   g,
		cursor: board.Point{Row: b.Height() / 2, Col: b.Width() / 2},
		keys:   keys,
		help:   help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1, 0)
		case key.Matches(msg, m.keys.Left):
			m.moveCursor(0, -1)
		case key.Matches(msg, m.keys.Right):
			m.moveCursor(0, 1)
		case key.Matches(msg, m.keys.Reveal):
			m.report(board.Reveal)
		case key.Matches(msg, m.keys.Flag):
			m.report(board.ToggleFlag)
		case key.Matches(msg, m.keys.New):
			m.game.board.NewGame()
			m.game.started = time.Time{}
			m.game.ended = time.Time{}
			m.err = nil
			m.game.log.Debug("new game")
		}
	}
	return m, nil
}

// moveCursor stops at the edges of the board.
func (m *Model) moveCursor(dRow, dCol int) {
	b := m.game.board
	m.cursor.Row = min(max(m.cursor.Row+dRow, 0), b.Height()-1)
	m.cursor.Col = min(max(m.cursor.Col+dCol, 0), b.Width()-1)
}

func (m *Model) report(kind board.Interaction) {
	entry := m.game.log.WithFields(logrus.Fields{
		"row":  m.cursor.Row,
		"col":  m.cursor.Col,
		"move": kind,
	})
	m.err = m.game.board.Report(m.cursor.Row, m.cursor.Col, kind)
	if m.err != nil {
		entry.WithError(m.err).Error("move rejected")
		return
	}
	entry.Debug("move")
}
