package search

import (
	"math"

	"github.com/limaJavier/hstt/pkg/cost"
)

// metropolis accepts improving moves always and worsening ones with probability exp(-delta/temperature)
func (ctx *SearchContext[S]) metropolis(temperature float64) func(before, after cost.Cost) bool {
	return func(before, after cost.Cost) bool {
		delta := cost.Delta(before, after, ctx.config.HardWeight)
		if delta <= 0 {
			return true
		}
		return ctx.rng.Float64() < math.Exp(-delta/temperature)
	}
}

// anneal cools geometrically from TempIni to TempMin, SaMax moves per temperature, and starts
// over from TempIni Reheats times. The best solution seen is restored at the end
func (ctx *SearchContext[S]) anneal() {
	for heat := 0; heat <= ctx.config.Reheats; heat++ {
		for temperature := ctx.config.TempIni; temperature > ctx.config.TempMin; temperature *= ctx.config.Alpha {
			accept := ctx.metropolis(temperature)
			for range ctx.config.SaMax {
				if ctx.Expired() {
					ctx.finishAnneal()
					return
				}
				ctx.step(ctx.pick(), accept)
				ctx.updateBest()
			}
			ctx.publishCurrent()
			ctx.logger.Debug("cooling", "temperature", temperature, "cost", ctx.current.Cost().String())
		}
		ctx.logger.Debug("reheat", "heat", heat, "best", ctx.best.Cost().String())
	}
	ctx.finishAnneal()
}

func (ctx *SearchContext[S]) finishAnneal() {
	if cost.IsBetter(ctx.best.Cost(), ctx.current.Cost()) {
		ctx.restoreBest()
	}
}
