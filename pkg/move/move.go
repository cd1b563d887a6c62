package move

import (
	"fmt"
	"log"
	"math/rand/v2"
)

// DefaultCeiling is the largest neighbourhood that is materialised; larger ones are sampled
const DefaultCeiling = 1 << 20

// Move is a pair of indices into a neighbourhood's domains
type Move struct {
	I, J int
}

func (move Move) String() string {
	return fmt.Sprintf("(%d, %d)", move.I, move.J)
}

type Generator interface {
	// Draws the next move. In materialised mode it never repeats a move until Restart
	GetMove() Move
	// Reports whether the materialised pool still holds moves; always true when sampling
	HasMove() bool
	// Refills the materialised pool; no-op when sampling
	Restart()
	Sampling() bool
	// Number of distinct moves of the neighbourhood
	Size() int
}

// pool is a materialised list of moves whose live region shrinks as moves are drawn
type pool struct {
	moves []Move
	n     int
	rng   *rand.Rand
}

func (p *pool) draw() Move {
	if p.n == 0 {
		log.Panicf("move pool is exhausted")
	}
	i := p.rng.IntN(p.n)
	p.n--
	p.moves[i], p.moves[p.n] = p.moves[p.n], p.moves[i]
	return p.moves[p.n]
}

func (p *pool) restart() {
	p.n = len(p.moves)
}
