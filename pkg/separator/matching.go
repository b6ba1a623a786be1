package separator

// matchVertices runs one matching pass over g per the active strategy,
// producing a cyclic-group assignment (matching), a per-vertex
// classification (matchtype) and each vertex's group representative
// (groupOf, the minimum id in its group; see computeGroups). Ties between
// equally-weighted candidate partners break on lower vertex id, per spec.
//
// matching[v] forms cyclic linked groups of size 1 (orphan, matching[v]==v),
// 2 (standard pair) or 3 (brotherly/community triple).
func matchVertices(g *Graph, opts Options, rg *rng) (matching []int, matchtype []MatchType, groupOf []int) {
	n := g.n
	matching = make([]int, n)
	matchtype = make([]MatchType, n)
	matched := make([]bool, n)
	for v := 0; v < n; v++ {
		matching[v] = v
	}

	order := rg.perm(n)
	for _, v := range order {
		if matched[v] {
			continue
		}
		matchOneVertex(g, opts, v, matched, matching, matchtype)
	}

	groupOf = computeGroups(matching)
	return matching, matchtype, groupOf
}

// heaviestNeighbor returns the neighbor of v with maximum edge weight
// among all neighbors (matched or not), breaking ties on lower id. ok is
// false if v has no neighbors.
func heaviestNeighbor(g *Graph, v int) (u int, weight float64, ok bool) {
	ids, ws := g.neighborRange(v)
	best := -1
	bestW := 0.0
	for k, nb := range ids {
		wt := ws[k]
		if best == -1 || wt > bestW || (wt == bestW && nb < best) {
			best = nb
			bestW = wt
		}
	}
	if best == -1 {
		return -1, 0, false
	}
	return best, bestW, true
}

// unmatchedNeighborsDesc returns the unmatched neighbors of v sorted by
// descending edge weight (ties: lower id first).
func unmatchedNeighborsDesc(g *Graph, v int, matched []bool) []int {
	ids, ws := g.neighborRange(v)
	type cand struct {
		id int
		wt float64
	}
	cands := make([]cand, 0, len(ids))
	for k, nb := range ids {
		if !matched[nb] && nb != v {
			cands = append(cands, cand{nb, ws[k]})
		}
	}
	for i := 1; i < len(cands); i++ {
		j := i
		for j > 0 && (cands[j].wt > cands[j-1].wt || (cands[j].wt == cands[j-1].wt && cands[j].id < cands[j-1].id)) {
			cands[j], cands[j-1] = cands[j-1], cands[j]
			j--
		}
	}
	out := make([]int, len(cands))
	for i, c := range cands {
		out[i] = c.id
	}
	return out
}

func edgeWeight(g *Graph, v, u int) float64 {
	ids, ws := g.neighborRange(v)
	for k, nb := range ids {
		if nb == u {
			return ws[k]
		}
	}
	return 0
}

func pairMatch(matching []int, matchtype []MatchType, matched []bool, a, b int, mt MatchType) {
	matching[a] = b
	matching[b] = a
	matchtype[a] = mt
	matchtype[b] = mt
	matched[a] = true
	matched[b] = true
}

func tripleMatch(matching []int, matchtype []MatchType, matched []bool, a, b, c int, mt MatchType) {
	matching[a] = b
	matching[b] = c
	matching[c] = a
	matchtype[a] = mt
	matchtype[b] = mt
	matchtype[c] = mt
	matched[a] = true
	matched[b] = true
	matched[c] = true
}

func matchOneVertex(g *Graph, opts Options, v int, matched []bool, matching []int, matchtype []MatchType) {
	if matched[v] {
		return
	}

	switch opts.MatchingStrategy {
	case Random:
		cands := unmatchedNeighborsDesc(g, v, matched)
		if len(cands) == 0 {
			matchtype[v] = MatchOrphan
			return
		}
		pairMatch(matching, matchtype, matched, v, cands[0], MatchStandard)

	case HEM:
		cands := unmatchedNeighborsDesc(g, v, matched)
		if len(cands) == 0 {
			matchtype[v] = MatchOrphan
			return
		}
		pairMatch(matching, matchtype, matched, v, cands[0], MatchStandard)

	case HEMPA:
		heavy, _, hasHeavy := heaviestNeighbor(g, v)
		cands := unmatchedNeighborsDesc(g, v, matched)
		if len(cands) == 0 {
			matchtype[v] = MatchOrphan
			return
		}
		if opts.DoCommunityMatching && hasHeavy && matched[heavy] && len(cands) >= 2 {
			// The heavy-edge partner is unavailable; extend into a
			// 3-group with the two best remaining unmatched neighbors
			// instead of settling for a single pair.
			tripleMatch(matching, matchtype, matched, v, cands[0], cands[1], MatchCommunity)
			return
		}
		pairMatch(matching, matchtype, matched, v, cands[0], MatchStandard)

	case HEMDavisPA:
		cands := unmatchedNeighborsDesc(g, v, matched)
		if len(cands) == 0 {
			matchtype[v] = MatchOrphan
			return
		}
		partner := cands[0]
		pairMatch(matching, matchtype, matched, v, partner, MatchStandard)
		if len(cands) >= 2 {
			_, heavyW, hasHeavy := heaviestNeighbor(g, v)
			if !hasHeavy || heavyW == 0 {
				return
			}
			for _, w := range cands[1:] {
				if w == partner || matched[w] {
					continue
				}
				if edgeWeight(g, v, w) >= opts.DavisBrotherlyThreshold*heavyW {
					// Grow the existing pair into a brotherly triple.
					matching[partner] = w
					matching[w] = v
					matchtype[v] = MatchBrotherly
					matchtype[partner] = MatchBrotherly
					matchtype[w] = MatchBrotherly
					matched[w] = true
					break
				}
			}
		}

	default:
		matchtype[v] = MatchOrphan
	}
}

// computeGroups walks the cyclic matching lists and returns, for each
// vertex, a representative id (the minimum id in its group) so that all
// members of a group share the same value, a requirement of
// MatchingState's invariants.
func computeGroups(matching []int) []int {
	n := len(matching)
	groupOf := make([]int, n)
	visited := make([]bool, n)
	for v := 0; v < n; v++ {
		if visited[v] {
			continue
		}
		members := []int{v}
		visited[v] = true
		cur := matching[v]
		for cur != v {
			members = append(members, cur)
			visited[cur] = true
			cur = matching[cur]
		}
		rep := members[0]
		for _, m := range members {
			if m < rep {
				rep = m
			}
		}
		for _, m := range members {
			groupOf[m] = rep
		}
	}
	return groupOf
}
