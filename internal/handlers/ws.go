package handlers

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/tilesweeper/internal/board"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

var ErrBadCommand = errors.New("bad command")

// command is one line of the websocket protocol:
//
//	g              fetch the session
//	n              start a new game
//	r <row> <col>  reveal
//	f <row> <col>  toggle a flag
type command struct {
	name     string
	row, col int
}

var commandNargs = map[string]int{
	"g": 0,
	"n": 0,
	"r": 2,
	"f": 2,
}

func parseCommand(line string) (command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return command{}, fmt.Errorf("%w: empty", ErrBadCommand)
	}

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return command{}, fmt.Errorf("%w: unknown command %q", ErrBadCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return command{}, fmt.Errorf(
			"%w: %q takes %d arguments, got %d", ErrBadCommand, parts[0], nargs, len(parts)-1,
		)
	}

	c := command{name: parts[0]}
	if nargs == 2 {
		var err error
		if c.row, err = strconv.Atoi(parts[1]); err != nil {
			return command{}, fmt.Errorf("%w: row must be an int", ErrBadCommand)
		}
		if c.col, err = strconv.Atoi(parts[2]); err != nil {
			return command{}, fmt.Errorf("%w: col must be an int", ErrBadCommand)
		}
	}
	return c, nil
}

func parseCommands(text string) ([]command, error) {
	var commands []command
	for i, line := range iterBySep(strings.TrimSpace(text), "\n") {
		c, err := parseCommand(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		commands = append(commands, c)
	}
	return commands, nil
}

func (c command) apply(b *board.Board) error {
	switch c.name {
	case "n":
		b.NewGame()
	case "r":
		return b.Report(c.row, c.col, board.Reveal)
	case "f":
		return b.Report(c.row, c.col, board.ToggleFlag)
	}
	return nil
}

// ConnectWS serves a text protocol: every message holds one or more
// newline-separated commands that are applied in order. The reply is the
// session after the batch, preceded by an error object if a command failed.
// A batch that does not parse is rejected as a whole.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	c.SetReadLimit(g.ws.ReadLimit)
	logger := g.logger.With(slog.Int64("session", s.ID))

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			_ = c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "text messages only"))
			return
		}
		logger.Debug("ws batch", slog.String("text", string(message)))

		commands, err := parseCommands(string(message))
		if err != nil {
			if err := c.WriteJSON(wrapError(err)); err != nil {
				logger.Error("unable to write json", slog.Any("error", err))
				return
			}
			continue
		}

		snap, err := s.Update(func(b *board.Board) error {
			for _, cmd := range commands {
				if err := cmd.apply(b); err != nil {
					return fmt.Errorf("%s %d %d: %w", cmd.name, cmd.row, cmd.col, err)
				}
			}
			return nil
		})
		if err != nil {
			if err := c.WriteJSON(wrapError(err)); err != nil {
				logger.Error("unable to write json", slog.Any("error", err))
				return
			}
		}

		if err := c.WriteJSON(NewGameSessionDTO(snap)); err != nil {
			logger.Error("unable to write json", slog.Any("error", err))
			return
		}
	}
}
