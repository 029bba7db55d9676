package game

import "math/rand"

// adversarySteps are the equally likely choices for one walker step: the
// four cardinal directions plus staying put.
var adversarySteps = [5]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}, {0, 0}}

// AdversarySet is a fixed group of random walkers sharing one step timer.
// Walkers never consult the entropy source and never coordinate or path
// toward the agents.
type AdversarySet struct {
	Delay   int
	Cells   []Point
	counter int
}

// WalkerStep reports one committed walker move.
type WalkerStep struct {
	Index    int
	From, To Point
}

// NewAdversarySet groups walkers at the given cells with an empty timer, so
// a fresh set always waits a full delay before its first step.
func NewAdversarySet(cells []Point, delay int) *AdversarySet {
	return &AdversarySet{Delay: delay, Cells: cells}
}

// Advance ticks the shared timer. When it fills it resets, and every walker
// independently draws one of the five steps from rng, committing only when
// the destination is an open in-bounds cell. Returns the committed moves.
func (as *AdversarySet) Advance(g *Grid, rng *rand.Rand) []WalkerStep {
	as.counter++
	if as.counter < as.Delay {
		return nil
	}
	as.counter = 0
	var moved []WalkerStep
	for i, from := range as.Cells {
		step := adversarySteps[rng.Intn(len(adversarySteps))]
		next := Point{from.X + step.X, from.Y + step.Y}
		if next == from || !g.Open(next) {
			continue
		}
		as.Cells[i] = next
		moved = append(moved, WalkerStep{Index: i, From: from, To: next})
	}
	return moved
}
