package session

import (
	"sync"
	"time"

	"github.com/vancomm/tilesweeper/internal/board"
)

// Game notifications recorded in [Snapshot.Events].
const (
	EventStarted   = "started"
	EventEndedWon  = "ended:won"
	EventEndedLost = "ended:lost"
)

// Session is one live game. All access to its board goes through the
// session lock.
type Session struct {
	ID int64

	mu        sync.Mutex
	board     *board.Board
	createdAt time.Time
	startedAt *time.Time
	endedAt   *time.Time
	events    []string
	now       func() time.Time
}

// Snapshot is a consistent copy of a session taken under its lock.
type Snapshot struct {
	ID           int64
	Config       board.Config
	FlaggedCount int
	Phase        board.Phase
	Outcome      board.Outcome
	Grid         [][]string
	Events       []string
	CreatedAt    time.Time
	StartedAt    *time.Time
	EndedAt      *time.Time
}

// [Session] implements [board.Observer]
func (s *Session) GameStarted() {
	t := s.now()
	s.startedAt = &t
	s.endedAt = nil
	s.events = append(s.events, EventStarted)
}

func (s *Session) GameEnded(won bool) {
	t := s.now()
	s.endedAt = &t
	if won {
		s.events = append(s.events, EventEndedWon)
	} else {
		s.events = append(s.events, EventEndedLost)
	}
}

// Update runs fn against the board under the session lock and returns the
// resulting snapshot. Events in the snapshot are the ones raised by fn.
func (s *Session) Update(fn func(b *board.Board) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
	err := fn(s.board)
	return s.snapshot(), err
}

func (s *Session) Move(row, col int, kind board.Interaction) (Snapshot, error) {
	return s.Update(func(b *board.Board) error {
		return b.Report(row, col, kind)
	})
}

func (s *Session) Reset() Snapshot {
	snap, _ := s.Update(func(b *board.Board) error {
		b.NewGame()
		return nil
	})
	return snap
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:           s.ID,
		Config:       s.board.Config(),
		FlaggedCount: s.board.FlaggedCount(),
		Phase:        s.board.Phase(),
		Outcome:      s.board.Outcome(),
		Grid:         s.board.Grid(),
		CreatedAt:    s.createdAt,
	}
	if len(s.events) > 0 {
		snap.Events = append([]string(nil), s.events...)
	}
	// timestamps of a previous game stay behind until the next one starts
	if snap.Phase != board.NotStarted {
		snap.StartedAt = s.startedAt
		snap.EndedAt = s.endedAt
	}
	return snap
}
