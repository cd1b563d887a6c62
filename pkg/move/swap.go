package move

import (
	"fmt"
	"math/rand/v2"
)

// Swap generates unordered pairs i < j over a domain of size n
type Swap struct {
	n        int
	sampling bool
	pool     pool
	rng      *rand.Rand
}

func NewSwap(n, ceiling int, rng *rand.Rand) (*Swap, error) {
	if n <= 0 {
		return nil, fmt.Errorf("swap neighbourhood needs a positive domain size: %d", n)
	}
	generator := &Swap{
		n:        n,
		sampling: n*(n-1)/2 > ceiling,
		rng:      rng,
	}
	if !generator.sampling {
		moves := make([]Move, 0, n*(n-1)/2)
		for i := range n - 1 {
			for j := i + 1; j < n; j++ {
				moves = append(moves, Move{I: i, J: j})
			}
		}
		generator.pool = pool{moves: moves, n: len(moves), rng: rng}
	}
	return generator, nil
}

func (generator *Swap) GetMove() Move {
	if !generator.sampling {
		return generator.pool.draw()
	}
	for {
		i, j := generator.rng.IntN(generator.n), generator.rng.IntN(generator.n)
		if i == j {
			continue
		} else if i > j {
			i, j = j, i
		}
		return Move{I: i, J: j}
	}
}

func (generator *Swap) HasMove() bool {
	return generator.sampling || generator.pool.n != 0
}

func (generator *Swap) Restart() {
	if !generator.sampling {
		generator.pool.restart()
	}
}

func (generator *Swap) Sampling() bool { return generator.sampling }

func (generator *Swap) Size() int { return generator.n * (generator.n - 1) / 2 }
