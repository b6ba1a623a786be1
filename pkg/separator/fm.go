package separator

import (
	"math"

	"github.com/rs/zerolog"
)

// runFMPass runs up to opts.FMMaxNumRefinements Fiduccia-Mattheyses
// passes against g's current partition and boundary heaps,
// stopping as soon as a pass fails to improve heuCost. Returns whether
// any pass improved the partition.
func runFMPass(g *Graph, opts Options, logger zerolog.Logger) (bool, error) {
	anyImproved := false
	for pass := 0; pass < opts.FMMaxNumRefinements; pass++ {
		improved, err := runOneFMPass(g, opts, logger, pass)
		if err != nil {
			return anyImproved, err
		}
		if !improved {
			break
		}
		anyImproved = true
	}
	return anyImproved, nil
}

// runOneFMPass performs one full FM pass: repeated vertex flips driven by
// the boundary heaps, locking each moved vertex for the rest of the pass,
// tracking the best-seen heuCost, and rolling back to it at the end.
func runOneFMPass(g *Graph, opts Options, logger zerolog.Logger, passIdx int) (bool, error) {
	n := g.n
	startCut := g.heuCost
	bestCut := g.heuCost
	bestPartition := make([]int8, n)
	copy(bestPartition, g.partition)

	locked := make([]bool, n)
	nonImproving := 0
	numMoves := 0

	for step := 0; step < n; step++ {
		v, ok := selectFMMove(g, opts)
		if !ok {
			break
		}
		if locked[v] {
			return false, newError(InternalInvariantBroken, "fm: heap offered already-locked vertex %d", v)
		}

		flipVertex(g, v, locked)
		locked[v] = true
		numMoves++

		if g.heuCost < bestCut-1e-12 {
			bestCut = g.heuCost
			copy(bestPartition, g.partition)
			nonImproving = 0
		} else {
			nonImproving++
			if nonImproving > opts.FMSearchDepth {
				break
			}
		}
	}

	improved := bestCut < startCut-1e-12
	if numMoves > 0 {
		copy(g.partition, bestPartition)
		g.recomputeCutMetrics()
	}

	logger.Debug().
		Int("pass", passIdx).
		Int("moves", numMoves).
		Float64("heuCost", g.heuCost).
		Msg("fm pass")

	return improved, nil
}

// selectFMMove peeks the top fmConsiderCount boundary-heap entries on
// both sides and picks the best candidate under the balance-aware score:
// the move that strictly improves heuCost if one exists,
// else the largest vertexGains[v] among candidates on the currently
// heavier side, ties broken by lower id.
func selectFMMove(g *Graph, opts Options) (int, bool) {
	var candidates []int
	for side := 0; side < 2; side++ {
		candidates = append(candidates, g.bhPeekTopK(side, opts.FMConsiderCount)...)
	}
	if len(candidates) == 0 {
		return -1, false
	}

	bestV := -1
	bestHeu := math.Inf(1)
	for _, v := range candidates {
		heu := simulateFlipHeuCost(g, v)
		if heu >= g.heuCost {
			continue
		}
		if bestV == -1 || heu < bestHeu || (heu == bestHeu && v < bestV) {
			bestV = v
			bestHeu = heu
		}
	}
	if bestV != -1 {
		return bestV, true
	}

	heavier := int8(0)
	if g.w1 > g.w0 {
		heavier = 1
	}
	bestGain := math.Inf(-1)
	for _, v := range candidates {
		if g.partition[v] != heavier {
			continue
		}
		if v2 := g.vertexGains[v]; v2 > bestGain || (v2 == bestGain && v < bestV) {
			bestGain = v2
			bestV = v
		}
	}
	if bestV != -1 {
		return bestV, true
	}

	// No candidate sits on the heavier side this round; fall back to the
	// largest gain among all candidates so the pass can still make
	// progress (ties broken by lower id).
	for _, v := range candidates {
		if v2 := g.vertexGains[v]; bestV == -1 || v2 > bestGain || (v2 == bestGain && v < bestV) {
			bestGain = v2
			bestV = v
		}
	}
	return bestV, bestV != -1
}

// simulateFlipHeuCost returns the heuCost g would have if v were flipped,
// without mutating g, so selectFMMove can compare candidates cheaply.
func simulateFlipHeuCost(g *Graph, v int) float64 {
	newCut := g.cutCost - g.vertexGains[v]
	var newW0 float64
	if g.partition[v] == 0 {
		newW0 = g.w0 - g.w[v]
	} else {
		newW0 = g.w0 + g.w[v]
	}
	imbalance := math.Abs(0.5 - newW0/g.W)
	return newCut + g.H*penalty(imbalance)
}

// flipVertex moves v to the opposite side, updating W0/W1, cutCost, every
// neighbor's vertexGains/externalDegree and (for unlocked neighbors) their
// boundary-heap placement, then v's own gain. v always leaves the heaps on
// a flip, before its side changes; the caller marks it locked.
func flipVertex(g *Graph, v int, locked []bool) {
	// bhRemove locates v through partition[v], so v must leave its old
	// side's heap before the side is switched.
	if g.bhIndex[v] != 0 {
		g.bhRemove(v)
	}
	old := g.partition[v]
	g.partition[v] = 1 - old
	if old == 0 {
		g.w0 -= g.w[v]
		g.w1 += g.w[v]
	} else {
		g.w1 -= g.w[v]
		g.w0 += g.w[v]
	}
	g.cutCost -= g.vertexGains[v]

	ids, ws := g.neighborRange(v)
	for k, u := range ids {
		wt := ws[k]
		if g.partition[u] == old {
			// u shared v's old side; the edge now crosses the cut.
			g.vertexGains[u] += 2 * wt
			g.externalDegree[u]++
		} else {
			// u was already on v's new side; the edge no longer crosses.
			g.vertexGains[u] -= 2 * wt
			g.externalDegree[u]--
		}
		if locked[u] {
			continue
		}
		switch {
		case g.externalDegree[u] > 0 && g.bhIndex[u] != 0:
			g.bhUpdate(u, g.vertexGains[u])
		case g.externalDegree[u] > 0:
			g.bhInsert(u)
		case g.bhIndex[u] != 0:
			g.bhRemove(u)
		}
	}

	g.vertexGains[v] = -g.vertexGains[v]
	g.recomputeImbalanceAndHeuCost()
}
