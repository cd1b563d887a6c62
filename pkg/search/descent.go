package search

import "github.com/limaJavier/hstt/pkg/cost"

func notWorse(before, after cost.Cost) bool {
	return !cost.IsBetter(before, after)
}

// descent keeps every non-worsening move and stops after patience consecutive moves without
// a strict improvement, after limit moves when limit is positive, or when time runs out
func (ctx *SearchContext[S]) descent(patience, limit int) {
	stale := 0
	for moves := 0; stale < patience && (limit <= 0 || moves < limit); moves++ {
		if ctx.Expired() {
			return
		}
		before := ctx.current.Cost()
		if _, accepted := ctx.step(ctx.pick(), notWorse); accepted && cost.IsBetter(ctx.current.Cost(), before) {
			stale = 0
			ctx.updateBest()
		} else {
			stale++
		}
	}
	ctx.publishCurrent()
}
