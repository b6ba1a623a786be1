package separator

import "math"

// Graph is an in-memory CSR representation of a symmetric, self-loop-free,
// edge-weighted graph, together with the partition state and matching
// state that accumulate on it during a partitioning run.
//
// p, i, x form the standard column-pointer / row-index / value CSR triple:
// the neighbors of vertex v are i[p[v]:p[v+1]] with weights x[p[v]:p[v+1]].
type Graph struct {
	n, nz int
	p     []int
	i     []int
	x     []float64
	w     []float64
	X, W  float64
	H     float64

	// Partition state.
	partition      []int8
	vertexGains    []float64
	externalDegree []int
	bhIndex        []int
	bhHeap         [2][]int
	bhSize         [2]int

	cutCost, heuCost  float64
	w0, w1, imbalance float64

	// Matching / coarsening state.
	parent      *Graph
	clevel      int
	cn          int
	matching    []int
	matchmap    []int
	invmatchmap []int
	matchtype   []MatchType
	// singleton is always -1: an orphan vertex becomes its own coarse
	// vertex instead of joining a shared singleton sink.
	singleton int
}

// NewGraph builds a Graph from caller-supplied CSR arrays. Vertex weights
// default to 1 when w is nil. The graph is validated and initialized
// (X, W, H cached; partition arrays zeroed) before being returned.
func NewGraph(n int, p, i []int, x, w []float64) (*Graph, error) {
	if n < 0 {
		return nil, newError(InvalidInput, "negative vertex count %d", n)
	}
	if len(p) != n+1 {
		return nil, newError(InvalidInput, "p must have length n+1=%d, got %d", n+1, len(p))
	}
	nz := 0
	if n > 0 {
		nz = p[n]
	}
	if len(i) != nz || len(x) != nz {
		return nil, newError(InvalidInput, "i and x must have length nz=%d, got %d and %d", nz, len(i), len(x))
	}
	if w == nil {
		w = make([]float64, n)
		for v := range w {
			w[v] = 1
		}
	}
	if len(w) != n {
		return nil, newError(InvalidInput, "w must have length n=%d, got %d", n, len(w))
	}

	g := &Graph{
		n: n, nz: nz,
		p: p, i: i, x: x, w: w,
		singleton: -1,
	}
	if err := g.validateCSR(); err != nil {
		return nil, err
	}
	g.initialize()
	return g, nil
}

// validateCSR checks the invariants the core requires:
// monotone column pointers, no self-loops, symmetric weighted adjacency,
// strictly positive edge and vertex weights, and a single connected
// component.
func (g *Graph) validateCSR() error {
	if g.n == 0 {
		return newError(InvalidInput, "graph has no vertices")
	}
	if g.p[0] != 0 {
		return newError(InvalidInput, "p[0] must be 0, got %d", g.p[0])
	}
	if g.p[g.n] != g.nz {
		return newError(InvalidInput, "p[n] must equal nz=%d, got %d", g.nz, g.p[g.n])
	}
	for v := 0; v < g.n; v++ {
		if g.p[v] > g.p[v+1] {
			return newError(InvalidInput, "p is not monotone at index %d", v)
		}
	}
	for v := 0; v < g.n; v++ {
		for k := g.p[v]; k < g.p[v+1]; k++ {
			u := g.i[k]
			if u < 0 || u >= g.n {
				return newError(InvalidInput, "neighbor %d of vertex %d out of range", u, v)
			}
			if u == v {
				return newError(InvalidInput, "self-loop at vertex %d not allowed", v)
			}
			if g.x[k] <= 0 {
				return newError(InvalidInput, "non-positive edge weight %g on edge (%d,%d)", g.x[k], v, u)
			}
		}
		if g.w[v] <= 0 {
			return newError(InvalidInput, "non-positive vertex weight %g at vertex %d", g.w[v], v)
		}
	}
	for v := 0; v < g.n; v++ {
		for k := g.p[v]; k < g.p[v+1]; k++ {
			u := g.i[k]
			wt := g.x[k]
			if !g.hasEdge(u, v, wt) {
				return newError(InvalidInput, "edge (%d,%d) missing symmetric counterpart or weight mismatch", v, u)
			}
		}
	}
	if !g.isConnected() {
		return newError(InvalidInput, "graph has more than one connected component")
	}
	return nil
}

func (g *Graph) hasEdge(from, to int, weight float64) bool {
	for k := g.p[from]; k < g.p[from+1]; k++ {
		if g.i[k] == to && g.x[k] == weight {
			return true
		}
	}
	return false
}

func (g *Graph) isConnected() bool {
	if g.n <= 1 {
		return true
	}
	visited := make([]bool, g.n)
	stack := []int{0}
	visited[0] = true
	count := 1
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for k := g.p[v]; k < g.p[v+1]; k++ {
			u := g.i[k]
			if !visited[u] {
				visited[u] = true
				count++
				stack = append(stack, u)
			}
		}
	}
	return count == g.n
}

// initialize recomputes X, W, H and zeros the partition arrays; the
// matching state is left as it is. H is the heuristic balance-penalty scale: the maximum incident
// edge weight times the total vertex weight, so that a fully-imbalanced
// partition's penalty term is comparable in magnitude to the cut cost of a
// densely-connected graph. See DESIGN.md for the derivation.
func (g *Graph) initialize() {
	g.X = 0
	for _, wt := range g.x {
		g.X += wt
	}
	g.W = 0
	for _, vw := range g.w {
		g.W += vw
	}
	maxEdge := 0.0
	for _, wt := range g.x {
		if wt > maxEdge {
			maxEdge = wt
		}
	}
	g.H = maxEdge * g.W
	if g.H == 0 {
		g.H = g.W
	}

	g.partition = make([]int8, g.n)
	g.vertexGains = make([]float64, g.n)
	g.externalDegree = make([]int, g.n)
	g.bhIndex = make([]int, g.n)
	g.bhHeap[0] = nil
	g.bhHeap[1] = nil
	g.bhSize[0], g.bhSize[1] = 0, 0
	g.cutCost, g.heuCost = 0, 0
	g.w0, g.w1, g.imbalance = 0, 0, 0
}

// neighborRange returns the CSR slice range for vertex v's adjacency.
func (g *Graph) neighborRange(v int) (ids []int, weights []float64) {
	return g.i[g.p[v]:g.p[v+1]], g.x[g.p[v]:g.p[v+1]]
}

func (g *Graph) degree(v int) float64 {
	d := 0.0
	_, ws := g.neighborRange(v)
	for _, wt := range ws {
		d += wt
	}
	return d
}

// penalty is the balance penalty term used in heuCost = cutCost +
// H*penalty(imbalance): quadratic in the imbalance, zero at perfect
// balance.
func penalty(imbalance float64) float64 {
	return imbalance * imbalance
}

// recomputeCutMetrics recomputes vertexGains, externalDegree, cutCost, w0,
// w1, imbalance, heuCost from scratch against the current partition
// assignment, and rebuilds the boundary heaps. Used after partition is
// freshly assigned (initial guess, or projected onto a finer graph) since
// incremental updates only apply during FM's vertex flips.
func (g *Graph) recomputeCutMetrics() {
	g.cutCost = 0
	g.w0, g.w1 = 0, 0
	for v := 0; v < g.n; v++ {
		if g.partition[v] == 0 {
			g.w0 += g.w[v]
		} else {
			g.w1 += g.w[v]
		}
	}
	for v := 0; v < g.n; v++ {
		ids, ws := g.neighborRange(v)
		gain := 0.0
		ext := 0
		for k, u := range ids {
			wt := ws[k]
			if g.partition[u] != g.partition[v] {
				gain += wt
				ext++
			} else {
				gain -= wt
			}
		}
		g.vertexGains[v] = gain
		g.externalDegree[v] = ext
	}
	cut := 0.0
	for v := 0; v < g.n; v++ {
		ids, ws := g.neighborRange(v)
		for k, u := range ids {
			if u > v && g.partition[u] != g.partition[v] {
				cut += ws[k]
			}
		}
	}
	g.cutCost = cut

	g.bhIndex = make([]int, g.n)
	g.bhHeap[0] = make([]int, 0, g.n)
	g.bhHeap[1] = make([]int, 0, g.n)
	g.bhSize[0], g.bhSize[1] = 0, 0
	for v := 0; v < g.n; v++ {
		if g.externalDegree[v] > 0 {
			g.bhInsert(v)
		}
	}
	g.recomputeImbalanceAndHeuCost()
}

func (g *Graph) recomputeImbalanceAndHeuCost() {
	g.imbalance = math.Abs(0.5 - g.w0/g.W)
	g.heuCost = g.cutCost + g.H*penalty(g.imbalance)
}

// newCoarseGraph allocates the CSR arrays of an n-vertex, nz-entry coarse
// graph for the coarsening driver; coarsenOnce fills them and sets the
// parent link to the finer graph (which owns matchmap/matching).
func newCoarseGraph(n, nz int) *Graph {
	return &Graph{
		n: n, nz: nz,
		p:         make([]int, n+1),
		i:         make([]int, nz),
		x:         make([]float64, nz),
		w:         make([]float64, n),
		singleton: -1,
	}
}
