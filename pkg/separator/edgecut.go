package separator

import "github.com/rs/zerolog"

// EdgeCut is the output of a partitioning run: the final side assignment
// and the associated cost/balance metrics.
type EdgeCut struct {
	Partition []int8
	CutCost   float64
	CutSize   int
	W0, W1    float64
	Imbalance float64
}

// ComputeEdgeCut partitions g using DefaultOptions() and a no-op logger.
func ComputeEdgeCut(g *Graph) (*EdgeCut, error) {
	return ComputeEdgeCutWithLogger(g, DefaultOptions(), zerolog.Nop())
}

// ComputeEdgeCutWithOptions partitions g under the given options, with a
// no-op logger.
func ComputeEdgeCutWithOptions(g *Graph, opts Options) (*EdgeCut, error) {
	return ComputeEdgeCutWithLogger(g, opts, zerolog.Nop())
}

// ComputeEdgeCutWithLogger is the full entry point: opts and logger are
// both caller-supplied (used by the config/cmd packages to wire a real
// logger through). There is no explicit destroy/free counterpart here:
// every value returned is plain Go memory with
// no external handles, so the garbage collector is the release mechanism.
func ComputeEdgeCutWithLogger(g *Graph, opts Options, logger zerolog.Logger) (*EdgeCut, error) {
	if g == nil {
		return nil, newError(InvalidInput, "graph is nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rg := newRNG(opts.RandomSeed)
	result, err := runVCycle(g, opts, rg, logger)
	if err != nil {
		return nil, err
	}

	cutSize := 0
	for v := 0; v < result.n; v++ {
		ids, _ := result.neighborRange(v)
		for _, u := range ids {
			if u > v && result.partition[u] != result.partition[v] {
				cutSize++
			}
		}
	}

	partition := make([]int8, result.n)
	copy(partition, result.partition)

	return &EdgeCut{
		Partition: partition,
		CutCost:   result.cutCost,
		CutSize:   cutSize,
		W0:        result.w0,
		W1:        result.w1,
		Imbalance: result.imbalance,
	}, nil
}
