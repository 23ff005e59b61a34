package board

type Status uint8

const (
	Hidden Status = iota
	Flagged
	Exposed
)

func (s Status) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Exposed:
		return "exposed"
	default:
		return "unknown"
	}
}

type statusListener interface {
	tileStatusChanged(t *Tile, status Status)
}

// Tile is a single cell of a [Board]. Its state only changes through
// [Board.Report]; callers get read access only.
type Tile struct {
	row, col    int
	hazard      bool
	surrounding int
	status      Status
	listener    statusListener
}

func (t *Tile) Row() int { return t.row }

func (t *Tile) Col() int { return t.col }

func (t *Tile) Status() Status { return t.status }

// Hazard reports whether an exposed tile is a hazard. ok is false while
// the tile is not exposed.
func (t *Tile) Hazard() (hazard, ok bool) {
	if t.status != Exposed {
		return false, false
	}
	return t.hazard, true
}

// SurroundingHazards reports the number of hazards adjacent to an
// exposed tile. ok is false while the tile is not exposed.
func (t *Tile) SurroundingHazards() (n int, ok bool) {
	if t.status != Exposed {
		return 0, false
	}
	return t.surrounding, true
}

func (t *Tile) reveal() bool {
	if t.status != Hidden {
		return false
	}
	t.setStatus(Exposed)
	return true
}

func (t *Tile) toggleFlag() bool {
	switch t.status {
	case Hidden:
		t.setStatus(Flagged)
	case Flagged:
		t.setStatus(Hidden)
	default:
		return false
	}
	return true
}

func (t *Tile) setStatus(status Status) {
	t.status = status
	if t.listener != nil {
		t.listener.tileStatusChanged(t, status)
	}
}

// settled is the per-tile win condition.
func (t *Tile) settled() bool {
	if t.hazard {
		return t.status == Flagged
	}
	return t.status == Exposed
}

func (t *Tile) reset() {
	t.hazard = false
	t.surrounding = 0
	t.status = Hidden
}

func (t *Tile) point() Point {
	return Point{t.row, t.col}
}
