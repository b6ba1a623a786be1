package separator

import "github.com/rs/zerolog"

// maxCoarseningLevels is the hard ceiling on V-cycle depth, guarding
// against pathological graphs where matching keeps barely reducing n.
const maxCoarseningLevels = 128

// coarsenOnce runs the matching engine once and builds the coarse graph.
// It sets fine.matching, fine.matchmap, fine.invmatchmap,
// fine.matchtype, fine.cn on the finer graph and returns the new coarse
// Graph linked back via parent.
func coarsenOnce(fine *Graph, opts Options, rg *rng) (*Graph, error) {
	matching, matchtype, groupOf := matchVertices(fine, opts, rg)

	// Assign coarse ids to group representatives in id order, so that
	// matchmap is surjective onto [0,cn) and deterministic given the
	// matching.
	repToCoarse := make(map[int]int)
	cn := 0
	matchmap := make([]int, fine.n)
	invmatchmap := make([]int, 0)
	for v := 0; v < fine.n; v++ {
		rep := groupOf[v]
		cid, ok := repToCoarse[rep]
		if !ok {
			cid = cn
			repToCoarse[rep] = cid
			invmatchmap = append(invmatchmap, rep)
			cn++
		}
		matchmap[v] = cid
	}

	fine.matching = matching
	fine.matchtype = matchtype
	fine.matchmap = matchmap
	fine.invmatchmap = invmatchmap
	fine.cn = cn

	coarseW := make([]float64, cn)
	for v := 0; v < fine.n; v++ {
		coarseW[matchmap[v]] += fine.w[v]
	}

	// group[mu] lists the fine vertices mapped to coarse id mu, built in a
	// single O(n) pass so the scatter below never re-scans fine vertices
	// outside the current coarse row.
	group := make([][]int, cn)
	for v := 0; v < fine.n; v++ {
		group[matchmap[v]] = append(group[matchmap[v]], v)
	}

	// Dense scatter accumulation of coalesced coarse edges, O(nz) total:
	// for every fine edge (u,v) with mu != mv, add its weight into the
	// coarse edge (mu,mv).
	scatter := make([]float64, cn)
	touched := make([]int, 0, cn)
	mark := make([]bool, cn)

	coarseAdj := make([][]int, cn)
	coarseWt := make([][]float64, cn)

	for mu := 0; mu < cn; mu++ {
		touched = touched[:0]
		for _, v := range group[mu] {
			ids, ws := fine.neighborRange(v)
			for k, u := range ids {
				mv := matchmap[u]
				if mv == mu {
					continue
				}
				if !mark[mv] {
					mark[mv] = true
					touched = append(touched, mv)
				}
				scatter[mv] += ws[k]
			}
		}
		for _, mv := range touched {
			coarseAdj[mu] = append(coarseAdj[mu], mv)
			coarseWt[mu] = append(coarseWt[mu], scatter[mv])
			scatter[mv] = 0
			mark[mv] = false
		}
	}

	nz := 0
	for _, adj := range coarseAdj {
		nz += len(adj)
	}
	coarse := newCoarseGraph(cn, nz)
	copy(coarse.w, coarseW)
	pos := 0
	for c := 0; c < cn; c++ {
		coarse.p[c] = pos
		for k, nb := range coarseAdj[c] {
			coarse.i[pos] = nb
			coarse.x[pos] = coarseWt[c][k]
			pos++
		}
	}
	coarse.p[cn] = pos

	coarse.parent = fine
	coarse.clevel = fine.clevel + 1
	coarse.initialize()
	return coarse, nil
}

// buildCoarseStack repeatedly coarsens until cn <= coarsenLimit, cn >=
// 0.9*n (no useful reduction), or maxCoarseningLevels is hit. Returns the
// chain [g0, g1, ..., gk] with each entry's parent pointing to the
// previous (finer) entry.
func buildCoarseStack(g0 *Graph, opts Options, rg *rng, logger zerolog.Logger) ([]*Graph, error) {
	stack := []*Graph{g0}
	cur := g0
	for level := 0; level < maxCoarseningLevels; level++ {
		if cur.n <= opts.CoarsenLimit {
			break
		}
		coarse, err := coarsenOnce(cur, opts, rg)
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Int("level", level+1).
			Int("fine_n", cur.n).
			Int("coarse_n", coarse.n).
			Msg("coarsening level")
		if coarse.n >= cur.n || float64(coarse.n) >= 0.9*float64(cur.n) {
			// No useful reduction: keep the finer graph and stop, the
			// (unlinked) coarse attempt is discarded.
			break
		}
		stack = append(stack, coarse)
		cur = coarse
	}
	return stack, nil
}
