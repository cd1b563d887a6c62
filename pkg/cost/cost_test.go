package cost

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, New(0, 100).Compare(New(1, 0)))
	assert.Equal(t, 1, New(2, 0).Compare(New(1, 50)))
	assert.Equal(t, -1, New(1, 2).Compare(New(1, 3)))
	assert.Equal(t, 0, New(4, 4).Compare(New(4, 4)))
}

func TestOrderingIsTotalAndConsistent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	random := func() Cost { return New(rng.Uint64N(4), rng.Uint64N(4)) }

	for range 500 {
		//** Arrange
		a, b, c := random(), random(), random()

		//** Assert
		// Exactly one of a<b, a==b, b<a
		outcomes := 0
		for _, holds := range []bool{a.Less(b), a == b, b.Less(a)} {
			if holds {
				outcomes++
			}
		}
		assert.Equal(t, 1, outcomes)

		// IsBetter agrees with Less and is irreflexive and transitive
		assert.Equal(t, a.Less(b), IsBetter(a, b))
		assert.False(t, IsBetter(a, a))
		if IsBetter(a, b) && IsBetter(b, c) {
			assert.True(t, IsBetter(a, c))
		}

		// Consistent with componentwise <=
		if a.Hard <= b.Hard && a.Soft <= b.Soft {
			assert.LessOrEqual(t, a.Compare(b), 0)
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := New(3, 7)
	assert.Equal(t, a, a.Add(Zero))
	assert.Equal(t, New(4, 9), a.Add(New(1, 2)))
	assert.Equal(t, New(2, 5), a.Sub(New(1, 2)))
	assert.True(t, Zero.IsZero())
	assert.False(t, Soft(1).IsZero())
	assert.Panics(t, func() { a.Sub(New(4, 0)) })
}

func TestDelta(t *testing.T) {
	assert.Equal(t, 0.0, Delta(New(1, 1), New(1, 1), 1000))
	assert.Equal(t, 1000.0-5, Delta(New(1, 10), New(2, 5), 1000))
	assert.Equal(t, -3.0, Delta(New(0, 5), New(0, 2), 1000))
}
