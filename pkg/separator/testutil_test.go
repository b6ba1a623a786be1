package separator

import (
	"sort"
	"testing"

	"github.com/rs/zerolog"
)

func testNopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// edgeSpec is a shorthand undirected-edge declaration used to build CSR
// test fixtures without writing out p/i/x by hand.
type edgeSpec struct {
	u, v int
	w    float64
}

func buildCSR(n int, edges []edgeSpec) (p []int, i []int, x []float64) {
	adj := make([]map[int]float64, n)
	for v := range adj {
		adj[v] = make(map[int]float64)
	}
	for _, e := range edges {
		adj[e.u][e.v] = e.w
		adj[e.v][e.u] = e.w
	}
	p = make([]int, n+1)
	for v := 0; v < n; v++ {
		p[v] = len(i)
		ids := make([]int, 0, len(adj[v]))
		for u := range adj[v] {
			ids = append(ids, u)
		}
		sort.Ints(ids)
		for _, u := range ids {
			i = append(i, u)
			x = append(x, adj[v][u])
		}
	}
	p[n] = len(i)
	return p, i, x
}

func mustNewGraph(t *testing.T, n int, edges []edgeSpec, w []float64) *Graph {
	t.Helper()
	p, i, x := buildCSR(n, edges)
	g, err := NewGraph(n, p, i, x, w)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

// triangleBridgeEdges is the classic "two triangles joined by a bridge"
// separator fixture: {0,1,2} and {3,4,5} are each a K3, joined by the
// single light edge (2,3). The only sane 2-way cut severs that bridge.
func triangleBridgeEdges() []edgeSpec {
	return []edgeSpec{
		{0, 1, 5}, {1, 2, 5}, {0, 2, 5},
		{3, 4, 5}, {4, 5, 5}, {3, 5, 5},
		{2, 3, 1},
	}
}

func pathEdges(n int) []edgeSpec {
	edges := make([]edgeSpec, 0, n-1)
	for v := 0; v < n-1; v++ {
		edges = append(edges, edgeSpec{v, v + 1, 1})
	}
	return edges
}

func completeGraphEdges(n int) []edgeSpec {
	var edges []edgeSpec
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			edges = append(edges, edgeSpec{u, v, 1})
		}
	}
	return edges
}

// gridEdges builds a rows x cols grid graph with unit-weight edges
// between orthogonal neighbors, vertex id = row*cols+col.
func gridEdges(rows, cols int) []edgeSpec {
	var edges []edgeSpec
	id := func(r, c int) int { return r*cols + c }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				edges = append(edges, edgeSpec{id(r, c), id(r, c+1), 1})
			}
			if r+1 < rows {
				edges = append(edges, edgeSpec{id(r, c), id(r+1, c), 1})
			}
		}
	}
	return edges
}

func starEdges(leaves int) []edgeSpec {
	edges := make([]edgeSpec, 0, leaves)
	for leaf := 1; leaf <= leaves; leaf++ {
		edges = append(edges, edgeSpec{0, leaf, 1})
	}
	return edges
}
