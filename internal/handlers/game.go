package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vancomm/tilesweeper/internal/board"
	"github.com/vancomm/tilesweeper/internal/config"
	"github.com/vancomm/tilesweeper/internal/session"
)

type GameHandler struct {
	logger   *slog.Logger
	store    *session.Store
	ws       *config.WebSocket
	defaults board.Config
}

func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	ws *config.WebSocket,
	defaults board.Config,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		store:    store,
		ws:       ws,
		defaults: defaults,
	}

	return handler
}

// session resolves the {id} path value, answering 400 or 404 itself when
// it cannot.
func (g GameHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, fmt.Errorf("invalid game session id"))
		return nil, false
	}

	s, err := g.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session", "error", err)
		return nil, false
	}
	return s, true
}

// moveStatus maps an error from [board.Board.Report] to a response status.
func moveStatus(err error) int {
	if errors.Is(err, board.ErrOutOfBounds) || errors.Is(err, board.ErrUnknownInteraction) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query(), g.defaults)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s, err := g.store.Create(board.Config(dto))
	switch {
	case errors.Is(err, board.ErrInvalidConfig):
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	case errors.Is(err, session.ErrStoreFull):
		sendErrorOrLog(w, g.logger, http.StatusServiceUnavailable, err)
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	g.logger.Debug("created game session", "id", s.ID, "board", board.Config(dto))
	sendJSONOrLog(w, g.logger, http.StatusCreated, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := ParsePageDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	list := GameSessionListDTO{
		Sessions: []*GameSessionDTO{},
		Total:    g.store.Len(),
	}
	for _, s := range g.store.List(page.Offset, page.Limit) {
		list.Sessions = append(list.Sessions, NewGameSessionDTO(s.Snapshot()))
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, list)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	kind, err := board.ParseInteraction(dto.Move)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s, ok := g.session(w, r)
	if !ok {
		return
	}

	snap, err := s.Move(dto.Row, dto.Col, kind)
	if err != nil {
		status := moveStatus(err)
		if status == http.StatusInternalServerError {
			g.logger.Error("unable to apply move", "id", s.ID, "move", kind, "error", err)
		}
		sendErrorOrLog(w, g.logger, status, err)
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(snap))
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(s.Reset()))
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	if err := g.store.Delete(s.ID); err != nil {
		// lost a race with another delete
		sendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
