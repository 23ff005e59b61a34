package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/tilesweeper/internal/board"
	"github.com/vancomm/tilesweeper/internal/session"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type NewGameDTO struct {
	Width       int `schema:"width"`
	Height      int `schema:"height"`
	HazardCount int `schema:"hazard_count"`
}

// ParseNewGameDTO fills the fields missing from src with defaults.
func ParseNewGameDTO(src map[string][]string, defaults board.Config) (NewGameDTO, error) {
	dto := NewGameDTO(defaults)
	err := newDecoder().Decode(&dto, src)
	return dto, err
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	Row  int    `schema:"row,required"`
	Col  int    `schema:"col,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	err := newDecoder().Decode(&dto, src)
	return dto, err
}

type PageDTO struct {
	Offset int `schema:"offset"`
	Limit  int `schema:"limit"`
}

func ParsePageDTO(src map[string][]string) (PageDTO, error) {
	dto := PageDTO{Limit: defaultPageLimit}
	if err := newDecoder().Decode(&dto, src); err != nil {
		return dto, err
	}
	if dto.Offset < 0 {
		return dto, fmt.Errorf("offset must not be negative")
	}
	if dto.Limit <= 0 || dto.Limit > maxPageLimit {
		return dto, fmt.Errorf("limit must be between 1 and %d", maxPageLimit)
	}
	return dto, nil
}

type GameSessionDTO struct {
	GameSessionId string     `json:"game_session_id"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	HazardCount   int        `json:"hazard_count"`
	FlaggedCount  int        `json:"flagged_count"`
	Phase         string     `json:"phase"`
	Outcome       string     `json:"outcome,omitempty"`
	Grid          [][]string `json:"grid"`
	Events        []string   `json:"events,omitempty"`
	CreatedAt     int64      `json:"created_at"`
	StartedAt     *int64     `json:"started_at,omitempty"`
	EndedAt       *int64     `json:"ended_at,omitempty"`
}

func unixMilli(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func NewGameSessionDTO(s session.Snapshot) *GameSessionDTO {
	dto := &GameSessionDTO{
		GameSessionId: strconv.FormatInt(s.ID, 10),
		Width:         s.Config.Width,
		Height:        s.Config.Height,
		HazardCount:   s.Config.HazardCount,
		FlaggedCount:  s.FlaggedCount,
		Phase:         s.Phase.String(),
		Grid:          s.Grid,
		Events:        s.Events,
		CreatedAt:     s.CreatedAt.UnixMilli(),
		StartedAt:     unixMilli(s.StartedAt),
		EndedAt:       unixMilli(s.EndedAt),
	}
	if s.Phase == board.Ended {
		dto.Outcome = s.Outcome.String()
	}
	return dto
}

type GameSessionListDTO struct {
	Sessions []*GameSessionDTO `json:"sessions"`
	Total    int               `json:"total"`
}
