package board

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
)

// Placer decides where the hazards of a game go. Place is called once per
// game, on the first reveal at origin, and must return exactly
// cfg.HazardCount distinct in-bounds positions, none of them origin or a
// neighbor of origin.
type Placer interface {
	Place(cfg Config, origin Point) []Point
}

type PlacerFunc func(cfg Config, origin Point) []Point

func (f PlacerFunc) Place(cfg Config, origin Point) []Point {
	return f(cfg, origin)
}

// RandomPlacer draws hazards uniformly from every tile outside the safe
// zone around origin.
type RandomPlacer struct {
	Rand *rand.Rand
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (p RandomPlacer) Place(cfg Config, origin Point) []Point {
	r := p.Rand
	if r == nil {
		r = newRand()
	}

	/*
	 * Write down the list of possible hazard locations, then pick
	 * HazardCount of them off the list at random.
	 */
	candidates := make([]Point, 0, cfg.Width*cfg.Height)
	for row := range cfg.Height {
		for col := range cfg.Width {
			if pt := (Point{row, col}); !adjacent(origin, pt) {
				candidates = append(candidates, pt)
			}
		}
	}

	hazards := make([]Point, 0, cfg.HazardCount)
	k := len(candidates)
	for range min(cfg.HazardCount, k) {
		i := r.IntN(k)
		hazards = append(hazards, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return hazards
}

// drawLayout asks the placer for a layout around origin and checks it.
//
// panics [AssertionError]
func (b *Board) drawLayout(origin Point) []Point {
	hazards := b.placer.Place(b.cfg, origin)
	if len(hazards) != b.cfg.HazardCount {
		panic(AssertionError{fmt.Sprintf(
			"placer returned %d hazards, want %d", len(hazards), b.cfg.HazardCount,
		)})
	}

	seen := make([]bool, len(b.tiles))
	for _, p := range hazards {
		if !b.cfg.InBounds(p.Row, p.Col) {
			panic(AssertionError{fmt.Sprintf("hazard %v out of bounds", p)})
		}
		if adjacent(origin, p) {
			panic(AssertionError{fmt.Sprintf("hazard %v in safe zone of %v", p, origin)})
		}
		i := b.cfg.index(p.Row, p.Col)
		if seen[i] {
			panic(AssertionError{fmt.Sprintf("hazard %v placed twice", p)})
		}
		seen[i] = true
	}
	return hazards
}

// placeHazards applies the layout drawn for origin, drawing it first if
// [Board.Report] has not.
func (b *Board) placeHazards(origin Point) {
	hazards := b.layout
	if hazards == nil {
		hazards = b.drawLayout(origin)
	}
	b.layout = nil

	for _, p := range hazards {
		b.at(p).hazard = true
		for _, n := range b.cfg.Neighbors(p.Row, p.Col) {
			b.at(n).surrounding++
		}
	}
	b.layoutGenerated = true

	Log.Debug("hazards placed", "board", b.cfg, "origin", origin)
}
