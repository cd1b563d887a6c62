package search

import "github.com/limaJavier/hstt/pkg/cost"

// variableNeighborhoodSearch shakes with k moves of the k-th neighbourhood (cyclically), then
// descends. A strict improvement resets k; anything worse than the best is dropped for a clone
// of the best, and k widens up to PertMax before wrapping back
func (ctx *SearchContext[S]) variableNeighborhoodSearch() {
	ctx.descent(ctx.config.DescentMax, 0)

	k := ctx.config.PertIni
	for range ctx.config.VnsMax {
		if ctx.Expired() {
			break
		}
		ctx.perturb(k, (k-1)%len(ctx.neighborhoods))
		ctx.descent(ctx.config.DescentMax, ctx.config.BlMax)

		if ctx.updateBest() {
			k = ctx.config.PertIni
			continue
		}
		if cost.IsBetter(ctx.best.Cost(), ctx.current.Cost()) {
			ctx.restoreBest()
		}
		if k++; k > ctx.config.PertMax {
			k = ctx.config.PertIni
		}
	}

	if cost.IsBetter(ctx.best.Cost(), ctx.current.Cost()) {
		ctx.restoreBest()
	}
}
