package board

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

// Board owns the grid of a single game and runs its rules. A Board is
// not safe for concurrent use.
type Board struct {
	cfg   Config
	tiles []Tile

	flagged         int
	phase           Phase
	outcome         Outcome
	layoutGenerated bool
	layout          []Point

	placer    Placer
	observers []Observer

	pending   []Point
	cascading bool
}

type Option func(*Board)

// WithRand places hazards uniformly at random using r.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) {
		b.placer = RandomPlacer{Rand: r}
	}
}

func WithPlacer(p Placer) Option {
	return func(b *Board) {
		b.placer = p
	}
}

func WithObserver(o Observer) Option {
	return func(b *Board) {
		b.Subscribe(o)
	}
}

// New validates cfg and returns a board with every tile hidden and no
// hazards placed yet.
func New(cfg Config, opts ...Option) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		cfg:   cfg,
		tiles: make([]Tile, cfg.Width*cfg.Height),
	}
	for row := range cfg.Height {
		for col := range cfg.Width {
			b.tiles[cfg.index(row, col)] = Tile{row: row, col: col, listener: b}
		}
	}

	for _, opt := range opts {
		opt(b)
	}
	if b.placer == nil {
		b.placer = RandomPlacer{Rand: newRand()}
	}

	return b, nil
}

func (b *Board) Config() Config { return b.cfg }

func (b *Board) Width() int { return b.cfg.Width }

func (b *Board) Height() int { return b.cfg.Height }

func (b *Board) HazardCount() int { return b.cfg.HazardCount }

func (b *Board) FlaggedCount() int { return b.flagged }

func (b *Board) Phase() Phase { return b.phase }

// Outcome is [Undecided] until the phase is [Ended].
func (b *Board) Outcome() Outcome { return b.outcome }

func (b *Board) LayoutGenerated() bool { return b.layoutGenerated }

// Subscribe registers o for game notifications. Subscriptions survive
// [Board.NewGame].
func (b *Board) Subscribe(o Observer) {
	b.observers = append(b.observers, o)
}

// Tile returns the tile at (row, col) or an error wrapping [ErrOutOfBounds].
func (b *Board) Tile(row, col int) (*Tile, error) {
	if !b.cfg.InBounds(row, col) {
		return nil, fmt.Errorf(
			"%w: (%d, %d) on %dx%d board",
			ErrOutOfBounds, row, col, b.cfg.Width, b.cfg.Height,
		)
	}
	return &b.tiles[b.cfg.index(row, col)], nil
}

// Tiles yields every tile in row-major order.
func (b *Board) Tiles() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for i := range b.tiles {
			if !yield(&b.tiles[i]) {
				return
			}
		}
	}
}

// Report applies a player interaction to the tile at (row, col) and runs
// every consequence before returning. Interactions that do not apply to
// the tile's current status, and any interaction after the game has
// ended, are silently ignored.
func (b *Board) Report(row, col int, kind Interaction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ae AssertionError
			if e, ok := r.(error); ok && errors.As(e, &ae) {
				err = ae
				return
			}
			panic(r)
		}
	}()

	if !kind.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownInteraction, kind)
	}
	t, err := b.Tile(row, col)
	if err != nil {
		return err
	}
	if b.phase == Ended {
		return nil
	}

	// a bad layout must fail before the tile or the phase change
	if kind == Reveal && t.status == Hidden && !b.layoutGenerated {
		b.layout = b.drawLayout(t.point())
	}

	switch kind {
	case Reveal:
		t.reveal()
	case ToggleFlag:
		t.toggleFlag()
	}
	return nil
}

// NewGame puts every tile back to hidden with no hazards and returns the
// board to [NotStarted].
func (b *Board) NewGame() {
	for i := range b.tiles {
		b.tiles[i].reset()
	}
	b.flagged = 0
	b.phase = NotStarted
	b.outcome = Undecided
	b.layoutGenerated = false
	b.layout = nil
	b.pending = b.pending[:0]
	b.cascading = false
}

func (b *Board) tileStatusChanged(t *Tile, status Status) {
	if b.phase == Ended {
		return
	}

	if b.phase == NotStarted {
		b.phase = InProgress
		Log.Debug("game started", "board", b.cfg)
		for _, o := range b.observers {
			o.GameStarted()
		}
	}

	b.flagged = b.countFlagged()

	if status == Exposed {
		if !b.layoutGenerated {
			b.placeHazards(t.point())
		}
		if t.hazard {
			b.end(Lost)
			return
		}
		if t.surrounding == 0 {
			b.cascade(t)
			if b.phase == Ended {
				return
			}
		}
	}

	if b.won() {
		b.end(Won)
	}
}

// cascade queues the neighbors of a zero-count tile for reveal. Tiles
// exposed while the queue drains add their own neighbors to the same
// queue instead of starting a nested drain.
func (b *Board) cascade(origin *Tile) {
	b.pending = append(b.pending, b.cfg.Neighbors(origin.row, origin.col)...)
	if b.cascading {
		return
	}

	b.cascading = true
	defer func() {
		b.cascading = false
		b.pending = b.pending[:0]
	}()

	revealed := 0
	for len(b.pending) > 0 && b.phase != Ended {
		p := b.pending[len(b.pending)-1]
		b.pending = b.pending[:len(b.pending)-1]
		if t := b.at(p); !t.hazard && t.reveal() {
			revealed++
		}
	}

	Log.Debug("cascade finished", "origin", origin.point(), "revealed", revealed)
}

func (b *Board) end(outcome Outcome) {
	b.phase = Ended
	b.outcome = outcome
	Log.Debug("game ended", "board", b.cfg, "outcome", outcome)
	for _, o := range b.observers {
		o.GameEnded(outcome == Won)
	}
}

func (b *Board) countFlagged() int {
	n := 0
	for i := range b.tiles {
		if b.tiles[i].status == Flagged {
			n++
		}
	}
	return n
}

func (b *Board) won() bool {
	for i := range b.tiles {
		if !b.tiles[i].settled() {
			return false
		}
	}
	return true
}

func (b *Board) at(p Point) *Tile {
	return &b.tiles[b.cfg.index(p.Row, p.Col)]
}
