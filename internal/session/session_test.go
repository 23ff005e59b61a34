package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/tilesweeper/internal/board"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func singleHazard(p board.Point) board.Option {
	return board.WithPlacer(board.PlacerFunc(func(board.Config, board.Point) []board.Point {
		return []board.Point{p}
	}))
}

func newTestStore(limit int, opts ...Option) *Store {
	return NewStore(rand.New(rand.NewPCG(1, 2)), limit, opts...)
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	st := newTestStore(10, WithClock(c.now), WithBoardOptions(singleHazard(board.Point{Row: 8, Col: 8})))

	s, err := st.Create(board.Config{Width: 9, Height: 9, HazardCount: 1})
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, board.NotStarted, snap.Phase)
	assert.Nil(t, snap.StartedAt)
	assert.Nil(t, snap.Events)
	assert.Equal(t, "#", snap.Grid[0][0])

	snap, err = s.Move(0, 0, board.Reveal)
	require.NoError(t, err)
	assert.Equal(t, []string{EventStarted}, snap.Events)
	assert.Equal(t, board.InProgress, snap.Phase)
	require.NotNil(t, snap.StartedAt)
	assert.Nil(t, snap.EndedAt)
	assert.Equal(t, "0", snap.Grid[0][0])
	assert.Equal(t, "#", snap.Grid[8][8])

	snap, err = s.Move(8, 8, board.ToggleFlag)
	require.NoError(t, err)
	assert.Equal(t, []string{EventEndedWon}, snap.Events)
	assert.Equal(t, board.Ended, snap.Phase)
	assert.Equal(t, board.Won, snap.Outcome)
	assert.Equal(t, 1, snap.FlaggedCount)
	require.NotNil(t, snap.EndedAt)
	assert.True(t, snap.EndedAt.After(*snap.StartedAt))

	snap, err = s.Move(8, 8, board.ToggleFlag)
	require.NoError(t, err)
	assert.Nil(t, snap.Events)
	assert.Equal(t, 1, snap.FlaggedCount)

	snap = s.Reset()
	assert.Equal(t, board.NotStarted, snap.Phase)
	assert.Equal(t, board.Undecided, snap.Outcome)
	assert.Nil(t, snap.StartedAt)
	assert.Nil(t, snap.EndedAt)
	assert.Zero(t, snap.FlaggedCount)

	snap, err = s.Move(0, 0, board.Reveal)
	require.NoError(t, err)
	assert.Equal(t, []string{EventStarted}, snap.Events)
	assert.Nil(t, snap.EndedAt)

	snap, err = s.Move(8, 8, board.Reveal)
	require.NoError(t, err)
	assert.Equal(t, []string{EventEndedLost}, snap.Events)
	assert.Equal(t, "*", snap.Grid[8][8])
}

func TestSessionMoveOutOfBounds(t *testing.T) {
	t.Parallel()

	s, err := newTestStore(1).Create(board.Config{Width: 9, Height: 9, HazardCount: 10})
	require.NoError(t, err)

	snap, err := s.Move(9, 0, board.Reveal)
	assert.ErrorIs(t, err, board.ErrOutOfBounds)
	assert.Equal(t, board.NotStarted, snap.Phase)
	assert.Equal(t, s.ID, snap.ID)
}

func TestSessionConcurrentMoves(t *testing.T) {
	t.Parallel()

	s, err := newTestStore(1).Create(board.Config{Width: 16, Height: 16, HazardCount: 40})
	require.NoError(t, err)

	var g errgroup.Group
	for row := range 16 {
		g.Go(func() error {
			for col := range 16 {
				if _, err := s.Move(row, col, board.ToggleFlag); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	snap := s.Snapshot()
	assert.Equal(t, 256, snap.FlaggedCount)
	assert.Equal(t, board.InProgress, snap.Phase)
}

func TestStore(t *testing.T) {
	t.Parallel()

	st := newTestStore(3)
	cfg := board.Config{Width: 9, Height: 9, HazardCount: 10}

	_, err := st.Create(board.Config{Width: 3, Height: 3, HazardCount: 1})
	assert.ErrorIs(t, err, board.ErrInvalidConfig)
	assert.Zero(t, st.Len())

	var ids []int64
	for range 3 {
		s, err := st.Create(cfg)
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = st.Create(cfg)
	assert.ErrorIs(t, err, ErrStoreFull)

	s, err := st.Get(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.ID)

	_, err = st.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Delete(2))
	assert.ErrorIs(t, st.Delete(2), ErrNotFound)
	assert.Equal(t, 2, st.Len())

	s, err = st.Create(cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.ID)
}

func TestStoreFullBuildsNoBoard(t *testing.T) {
	t.Parallel()

	built := 0
	count := func(*board.Board) { built++ }
	st := newTestStore(1, WithBoardOptions(count))
	cfg := board.Config{Width: 9, Height: 9, HazardCount: 10}

	_, err := st.Create(cfg)
	require.NoError(t, err)
	require.Equal(t, 1, built)

	for range 3 {
		_, err = st.Create(cfg)
		assert.ErrorIs(t, err, ErrStoreFull)
	}
	assert.Equal(t, 1, built)

	// config errors still win over a full store
	_, err = st.Create(board.Config{Width: board.MaxSide + 1, Height: 9, HazardCount: 10})
	assert.ErrorIs(t, err, board.ErrInvalidConfig)
}

func TestStoreList(t *testing.T) {
	t.Parallel()

	st := newTestStore(100)
	for range 10 {
		_, err := st.Create(board.Config{Width: 9, Height: 9, HazardCount: 10})
		require.NoError(t, err)
	}

	ids := func(sessions []*Session) []int64 {
		var out []int64
		for _, s := range sessions {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(st.List(0, 3)))
	assert.Equal(t, []int64{9, 10}, ids(st.List(8, 5)))
	assert.Empty(t, st.List(10, 5))
	assert.Empty(t, st.List(0, 0))
	assert.Len(t, st.List(-5, 100), 10)
}

func TestStoreSessionsGetDistinctLayouts(t *testing.T) {
	t.Parallel()

	st := newTestStore(2)
	cfg := board.Config{Width: 30, Height: 16, HazardCount: 99}

	var grids [][][]string
	for range 2 {
		s, err := st.Create(cfg)
		require.NoError(t, err)
		snap, err := s.Update(func(b *board.Board) error {
			if err := b.Report(8, 15, board.Reveal); err != nil {
				return err
			}
			for col := range cfg.Width {
				if err := b.Report(0, col, board.Reveal); err != nil {
					return err
				}
			}
			return nil
		})
		require.NoError(t, err)
		grids = append(grids, snap.Grid)
	}
	assert.NotEqual(t, grids[0], grids[1])
}
