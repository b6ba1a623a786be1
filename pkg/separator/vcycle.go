package separator

import "github.com/rs/zerolog"

// runVCycle drives the full multilevel partitioning of g0: build
// the coarse-graph stack, seed an initial guess at the coarsest level,
// then uncoarsen level by level, projecting the partition down and
// running numDances alternating QP/FM passes at each level. Returns the
// finest-level Graph (g0 itself) carrying the final partition.
func runVCycle(g0 *Graph, opts Options, rg *rng, logger zerolog.Logger) (*Graph, error) {
	stack, err := buildCoarseStack(g0, opts, rg, logger)
	if err != nil {
		return nil, err
	}

	top := stack[len(stack)-1]
	if err := generateInitialGuess(top, opts, rg, logger); err != nil {
		return nil, err
	}

	for lvl := len(stack) - 1; lvl > 0; lvl-- {
		coarse := stack[lvl]
		fine := stack[lvl-1]

		projectPartitionToFiner(fine, coarse)
		fine.recomputeCutMetrics()

		if err := runWaterdance(fine, opts, logger); err != nil {
			return nil, err
		}
	}

	return stack[0], nil
}

// projectPartitionToFiner assigns each fine vertex the partition side of
// its coarse group representative: partition_fine[v] =
// partition_coarse[matchmap[v]].
func projectPartitionToFiner(fine, coarse *Graph) {
	for v := 0; v < fine.n; v++ {
		fine.partition[v] = coarse.partition[fine.matchmap[v]]
	}
}

// runWaterdance runs opts.numDances iterations of QP-then-FM refinement
// against g's current partition, each enabled independently by
// opts.UseQPGradProj / opts.UseFM.
func runWaterdance(g *Graph, opts Options, logger zerolog.Logger) error {
	for dance := 0; dance < opts.NumDances; dance++ {
		if opts.UseQPGradProj {
			x := make([]float64, g.n)
			for v := range x {
				x[v] = float64(g.partition[v])
			}
			if err := runQP(g, opts, x, logger); err != nil {
				return err
			}
			roundQPSolution(g, opts, x)
			g.recomputeCutMetrics()
		}
		if opts.UseFM {
			if _, err := runFMPass(g, opts, logger); err != nil {
				return err
			}
		}
	}
	return nil
}
