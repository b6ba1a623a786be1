package separator

import (
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// softSplitBounds returns the [lo,hi] window on w0 = w'x that a soft split
// of targetSplit +/- softSplitTolerance around the graph's total vertex
// weight allows.
func softSplitBounds(g *Graph, opts Options) (lo, hi float64) {
	lo = (opts.TargetSplit - opts.SoftSplitTolerance) * g.W
	hi = (opts.TargetSplit + opts.SoftSplitTolerance) * g.W
	return lo, hi
}

// quadForm evaluates v'(D-A)v for any vector v over g's adjacency: the sum
// of degree(u)*v[u]^2 less the sum of w_uv*v[u]*v[v] over every directed
// CSR entry. Used both for the QP objective f(x) = x'(D-A)x and, with the
// search direction in place of x, for the line search's denominator
// d'(D-A)d.
func quadForm(g *Graph, v []float64) float64 {
	f := 0.0
	for u := 0; u < g.n; u++ {
		f += g.degree(u) * v[u] * v[u]
		ids, ws := g.neighborRange(u)
		for k, nb := range ids {
			f -= ws[k] * v[u] * v[nb]
		}
	}
	return f
}

// qpGradient fills grad with the sparse gradient of f(x) = x'(D-A)x:
// grad[v] = 2*(degree(v)*x[v] - sum_{u~v} w_uv*x[u]).
func qpGradient(g *Graph, x []float64, grad []float64) {
	for v := 0; v < g.n; v++ {
		ids, ws := g.neighborRange(v)
		s := 0.0
		for k, u := range ids {
			s += ws[k] * x[u]
		}
		grad[v] = 2 * (g.degree(v)*x[v] - s)
	}
}

// runQP relaxes x to the box-and-slab constrained minimizer of
// f(x) = x'(D-A)x via projected gradient: each iteration takes an
// exact-line-search step along the negative gradient restricted to the
// free set, then reprojects through napsack. x is both the starting point
// and the output; FreeSet_status carries across iterations only to
// warm-start napsack's lambda guess.
func runQP(g *Graph, opts Options, x []float64, logger zerolog.Logger) error {
	n := g.n
	if n == 0 {
		return nil
	}
	lo, hi := softSplitBounds(g, opts)

	freeSetStatus := make([]int8, n)
	classify := func() {
		for v := 0; v < n; v++ {
			switch {
			case x[v] <= 0:
				x[v] = 0
				freeSetStatus[v] = -1
			case x[v] >= 1:
				x[v] = 1
				freeSetStatus[v] = 1
			default:
				freeSetStatus[v] = 0
			}
		}
	}
	classify()

	grad := make([]float64, n)
	d := make([]float64, n)
	y := make([]float64, n)
	lambda := 0.0
	prevF := quadForm(g, x)

	for iter := 0; iter < opts.GradProjIterationLimit; iter++ {
		qpGradient(g, x, grad)

		alphaMax := math.Inf(1)
		anyFree := false
		for v := 0; v < n; v++ {
			if freeSetStatus[v] != 0 {
				d[v] = 0
				continue
			}
			anyFree = true
			d[v] = -grad[v]
			switch {
			case d[v] > 0:
				if bp := (1 - x[v]) / d[v]; bp < alphaMax {
					alphaMax = bp
				}
			case d[v] < 0:
				if bp := -x[v] / d[v]; bp < alphaMax {
					alphaMax = bp
				}
			}
		}
		if !anyFree || math.IsInf(alphaMax, 1) {
			break
		}

		denom := quadForm(g, d)
		gd := floats.Dot(grad, d)
		alpha := alphaMax
		if denom > 0 {
			alpha = -gd / denom
		}
		alpha = clip(alpha, 0, alphaMax)
		if alpha <= 0 {
			break
		}

		xVec := mat.NewVecDense(n, x)
		dVec := mat.NewVecDense(n, d)
		yVec := mat.NewVecDense(n, y)
		yVec.AddScaledVec(xVec, alpha, dVec)

		lambda = napsack(y, g.w, lo, hi, lambda, freeSetStatus)
		copy(x, y)
		classify()

		f := quadForm(g, x)
		logger.Debug().
			Int("iteration", iter).
			Float64("objective", f).
			Float64("alpha", alpha).
			Msg("qp gradient step")

		if prevF != 0 && math.Abs(prevF-f)/math.Abs(prevF) < opts.GradProjTolerance {
			prevF = f
			break
		}
		prevF = f
	}

	return checkatx(x, g.w, lo, hi)
}
