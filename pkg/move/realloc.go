package move

import (
	"fmt"
	"math/rand/v2"
)

// Realloc generates ordered pairs (i, j) from domains of sizes n and m
type Realloc struct {
	n, m     int
	sampling bool
	pool     pool
	rng      *rand.Rand
}

func NewRealloc(n, m, ceiling int, rng *rand.Rand) (*Realloc, error) {
	if n <= 0 || m <= 0 {
		return nil, fmt.Errorf("realloc neighbourhood needs positive domain sizes: %d x %d", n, m)
	}
	generator := &Realloc{
		n:        n,
		m:        m,
		sampling: n*m > ceiling,
		rng:      rng,
	}
	if !generator.sampling {
		moves := make([]Move, 0, n*m)
		for i := range n {
			for j := range m {
				moves = append(moves, Move{I: i, J: j})
			}
		}
		generator.pool = pool{moves: moves, n: len(moves), rng: rng}
	}
	return generator, nil
}

func (generator *Realloc) GetMove() Move {
	if !generator.sampling {
		return generator.pool.draw()
	}
	return Move{I: generator.rng.IntN(generator.n), J: generator.rng.IntN(generator.m)}
}

func (generator *Realloc) HasMove() bool {
	return generator.sampling || generator.pool.n != 0
}

func (generator *Realloc) Restart() {
	if !generator.sampling {
		generator.pool.restart()
	}
}

func (generator *Realloc) Sampling() bool { return generator.sampling }

func (generator *Realloc) Size() int { return generator.n * generator.m }
