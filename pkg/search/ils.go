package search

import "github.com/limaJavier/hstt/pkg/cost"

// iteratedLocalSearch alternates perturbation and bounded descent. A result not worse than
// the best is kept; otherwise the search goes back to a clone of the best. The perturbation
// grows from PertIni up to PertMax while the best does not improve
func (ctx *SearchContext[S]) iteratedLocalSearch() {
	ctx.descent(ctx.config.DescentMax, 0)

	strength := ctx.config.PertIni
	for range ctx.config.IlsMax {
		if ctx.Expired() {
			break
		}
		ctx.perturb(strength, -1)
		ctx.descent(ctx.config.DescentMax, ctx.config.BlMax)

		if ctx.acceptLocalOptimum() {
			strength = ctx.config.PertIni
		} else {
			strength = min(strength+1, ctx.config.PertMax)
		}
	}

	if cost.IsBetter(ctx.best.Cost(), ctx.current.Cost()) {
		ctx.restoreBest()
	}
}

// acceptLocalOptimum makes the current solution the best when it is not worse, and goes
// back to a clone of the best otherwise. It reports whether the best strictly improved
func (ctx *SearchContext[S]) acceptLocalOptimum() bool {
	if ctx.updateBest() {
		return true
	}
	if !cost.IsBetter(ctx.best.Cost(), ctx.current.Cost()) {
		ctx.best = ctx.current.Clone()
		return false
	}
	ctx.restoreBest()
	return false
}
