package separator

// Boundary heap: a pair of indexed binary max-heaps (one per partition
// side), keyed on vertexGains. bhIndex[v] is 0 when v is not in either
// heap, else (position+1) within bhHeap[partition[v]]; this lets remove
// and update locate a vertex in O(1) before sifting in O(log n).
//
// Invariant maintained by every mutator here: v is present in
// bhHeap[partition[v]] iff externalDegree[v] > 0, with key vertexGains[v].

func (g *Graph) bhLess(a, b int) bool {
	return g.vertexGains[a] < g.vertexGains[b]
}

func (g *Graph) bhSwap(side int, i, j int) {
	h := g.bhHeap[side]
	h[i], h[j] = h[j], h[i]
	g.bhIndex[h[i]] = i + 1
	g.bhIndex[h[j]] = j + 1
}

func (g *Graph) bhSiftUp(side int, pos int) {
	h := g.bhHeap[side]
	for pos > 0 {
		parent := (pos - 1) / 2
		if g.bhLess(h[parent], h[pos]) {
			g.bhSwap(side, parent, pos)
			pos = parent
		} else {
			break
		}
	}
}

func (g *Graph) bhSiftDown(side int, pos int) {
	h := g.bhHeap[side]
	n := len(h)
	for {
		left := 2*pos + 1
		right := 2*pos + 2
		largest := pos
		if left < n && g.bhLess(h[largest], h[left]) {
			largest = left
		}
		if right < n && g.bhLess(h[largest], h[right]) {
			largest = right
		}
		if largest == pos {
			break
		}
		g.bhSwap(side, pos, largest)
		pos = largest
	}
}

// bhInsert adds v to the heap for its current side. v must not already be
// present.
func (g *Graph) bhInsert(v int) {
	side := int(g.partition[v])
	g.bhHeap[side] = append(g.bhHeap[side], v)
	pos := len(g.bhHeap[side]) - 1
	g.bhIndex[v] = pos + 1
	g.bhSize[side] = len(g.bhHeap[side])
	g.bhSiftUp(side, pos)
}

// bhRemove deletes v from the heap for its current side. A no-op if v is
// not present.
func (g *Graph) bhRemove(v int) {
	if g.bhIndex[v] == 0 {
		return
	}
	side := int(g.partition[v])
	pos := g.bhIndex[v] - 1
	h := g.bhHeap[side]
	last := len(h) - 1
	g.bhIndex[v] = 0
	if pos != last {
		h[pos] = h[last]
		g.bhIndex[h[pos]] = pos + 1
	}
	g.bhHeap[side] = h[:last]
	g.bhSize[side] = len(g.bhHeap[side])
	if pos < len(g.bhHeap[side]) {
		g.bhSiftDown(side, pos)
		g.bhSiftUp(side, pos)
	}
}

// bhUpdate changes v's key to newGain and re-heaps it. v must currently be
// in the heap.
func (g *Graph) bhUpdate(v int, newGain float64) {
	side := int(g.partition[v])
	old := g.vertexGains[v]
	g.vertexGains[v] = newGain
	pos := g.bhIndex[v] - 1
	if newGain > old {
		g.bhSiftUp(side, pos)
	} else if newGain < old {
		g.bhSiftDown(side, pos)
	}
}

// bhTop returns the highest-gain vertex on the given side without
// removing it.
func (g *Graph) bhTop(side int) (int, bool) {
	if len(g.bhHeap[side]) == 0 {
		return -1, false
	}
	return g.bhHeap[side][0], true
}

// bhPop removes and returns the highest-gain vertex on the given side.
func (g *Graph) bhPop(side int) (int, bool) {
	v, ok := g.bhTop(side)
	if !ok {
		return -1, false
	}
	g.bhRemove(v)
	return v, true
}

// bhPeekTopK returns up to k highest-gain vertices on the given side, in
// descending gain order, without mutating the heap; used by FM's
// considerCount lookahead.
func (g *Graph) bhPeekTopK(side int, k int) []int {
	h := g.bhHeap[side]
	if len(h) == 0 {
		return nil
	}
	if k > len(h) {
		k = len(h)
	}
	candidates := make([]int, 0, k)
	seen := make(map[int]bool, k)
	// Best-first walk from the root: the largest-gain frontier node is
	// taken next and its children join the frontier, so by the heap
	// property the i-th node taken is the i-th largest.
	frontier := []int{0}
	for len(candidates) < k && len(frontier) > 0 {
		// pick the largest-gain index currently in frontier
		bestIdx := 0
		for idx := 1; idx < len(frontier); idx++ {
			if g.bhLess(h[frontier[bestIdx]], h[frontier[idx]]) {
				bestIdx = idx
			}
		}
		pos := frontier[bestIdx]
		frontier = append(frontier[:bestIdx], frontier[bestIdx+1:]...)
		v := h[pos]
		if seen[v] {
			continue
		}
		seen[v] = true
		candidates = append(candidates, v)
		if left := 2*pos + 1; left < len(h) {
			frontier = append(frontier, left)
		}
		if right := 2*pos + 2; right < len(h) {
			frontier = append(frontier, right)
		}
	}
	return candidates
}
