package session

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/vancomm/tilesweeper/internal/board"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrStoreFull = errors.New("too many live sessions")
)

// Store keeps live sessions in memory. Game state is never persisted.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	nextID   int64
	max      int

	rndMu sync.Mutex
	rnd   *rand.Rand

	now       func() time.Time
	boardOpts []board.Option
}

type Option func(*Store)

// WithClock replaces time.Now for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithBoardOptions applies opts to every board after the store's own
// options, e.g. to replace hazard placement.
func WithBoardOptions(opts ...board.Option) Option {
	return func(s *Store) {
		s.boardOpts = append(s.boardOpts, opts...)
	}
}

// NewStore holds at most limit sessions. Every session gets its own random
// source derived from rnd.
func NewStore(rnd *rand.Rand, limit int, opts ...Option) *Store {
	st := &Store{
		sessions: make(map[int64]*Session),
		max:      limit,
		rnd:      rnd,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

func (st *Store) sessionRand() *rand.Rand {
	st.rndMu.Lock()
	defer st.rndMu.Unlock()
	return rand.New(rand.NewPCG(st.rnd.Uint64(), st.rnd.Uint64()))
}

// Create starts a new session. Invalid configs are reported as
// [board.ErrInvalidConfig].
func (st *Store) Create(cfg board.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if st.Len() >= st.max {
		return nil, st.errFull()
	}

	s := &Session{now: st.now, createdAt: st.now()}
	opts := append([]board.Option{
		board.WithRand(st.sessionRand()),
		board.WithObserver(s),
	}, st.boardOpts...)
	b, err := board.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	s.board = b

	st.mu.Lock()
	defer st.mu.Unlock()

	// another create may have filled the store meanwhile
	if len(st.sessions) >= st.max {
		return nil, st.errFull()
	}
	st.nextID++
	s.ID = st.nextID
	st.sessions[s.ID] = s
	return s, nil
}

func (st *Store) errFull() error {
	return fmt.Errorf("%w: limit is %d", ErrStoreFull, st.max)
}

func (st *Store) Get(id int64) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return s, nil
}

func (st *Store) Delete(id int64) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// List returns up to limit sessions ordered by id, skipping the first
// offset of them.
func (st *Store) List(offset, limit int) []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(st.sessions))
	if offset >= len(ids) || limit <= 0 {
		return nil
	}
	ids = ids[max(offset, 0):min(max(offset, 0)+limit, len(ids))]

	sessions := make([]*Session, 0, len(ids))
	for _, id := range ids {
		sessions = append(sessions, st.sessions[id])
	}
	return sessions
}
