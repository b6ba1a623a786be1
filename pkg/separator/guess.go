package separator

import (
	"sort"

	"github.com/rs/zerolog"
)

// generateInitialGuess assigns g.partition at the coarsest level per
// opts.GuessCutType, then recomputes cut metrics and runs one full
// FM pass to settle the initial boundary.
func generateInitialGuess(g *Graph, opts Options, rg *rng, logger zerolog.Logger) error {
	switch opts.GuessCutType {
	case GuessNaturalOrder:
		naturalOrderGuess(g, opts, idOrder(g.n))
	case GuessRandom:
		order := idOrder(g.n)
		rg.shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		naturalOrderGuess(g, opts, order)
	case GuessQP:
		naturalOrderGuess(g, opts, idOrder(g.n))
		g.recomputeCutMetrics()
		// Warm-start the relaxation from the natural-order guess's 0/1
		// split rather than a uniform targetSplit, so projected gradient
		// starts from an already-reasonable boundary instead of the flat
		// saddle point at x==targetSplit everywhere.
		x := make([]float64, g.n)
		for v := range x {
			x[v] = float64(g.partition[v])
		}
		if err := runQP(g, opts, x, logger); err != nil {
			return err
		}
		roundQPSolution(g, opts, x)
	default:
		naturalOrderGuess(g, opts, idOrder(g.n))
	}

	g.recomputeCutMetrics()
	if opts.UseFM {
		if _, err := runFMPass(g, opts, logger); err != nil {
			return err
		}
	}
	return nil
}

func idOrder(n int) []int {
	order := make([]int, n)
	for v := range order {
		order[v] = v
	}
	return order
}

// naturalOrderGuess assigns vertices to side 0 in the given order until
// cumulative weight exceeds targetSplit*W, then side 1.
func naturalOrderGuess(g *Graph, opts Options, order []int) {
	threshold := opts.TargetSplit * g.W
	cum := 0.0
	for _, v := range order {
		if cum < threshold {
			g.partition[v] = 0
		} else {
			g.partition[v] = 1
		}
		cum += g.w[v]
	}
}

// roundQPSolution thresholds the relaxed QP solution x at 0.5 (ties go to
// side 0), then sweeps boundary vertices one at a time to bring the side
// weights back within [lo,hi] if thresholding alone violated it.
func roundQPSolution(g *Graph, opts Options, x []float64) {
	for v := 0; v < g.n; v++ {
		if x[v] > 0.5 {
			g.partition[v] = 1
		} else {
			g.partition[v] = 0
		}
	}
	lo, hi := softSplitBounds(g, opts)
	w0 := 0.0
	for v := 0; v < g.n; v++ {
		if g.partition[v] == 0 {
			w0 += g.w[v]
		}
	}
	if w0 >= lo && w0 <= hi {
		return
	}

	type cand struct {
		v    int
		dist float64
	}
	cands := make([]cand, g.n)
	for v := 0; v < g.n; v++ {
		cands[v] = cand{v, abs(x[v] - 0.5)}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })

	for _, c := range cands {
		if w0 >= lo && w0 <= hi {
			break
		}
		v := c.v
		if w0 < lo && g.partition[v] == 1 {
			g.partition[v] = 0
			w0 += g.w[v]
		} else if w0 > hi && g.partition[v] == 0 {
			g.partition[v] = 1
			w0 -= g.w[v]
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
