package separator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftSplitBounds_ZeroToleranceCollapsesToSinglePoint(t *testing.T) {
	g := mustNewGraph(t, 4, pathEdges(4), nil)
	opts := DefaultOptions()
	opts.TargetSplit = 0.5
	opts.SoftSplitTolerance = 0

	lo, hi := softSplitBounds(g, opts)
	assert.Equal(t, lo, hi)
	assert.InDelta(t, 2.0, lo, 1e-9)
}

func TestSoftSplitBounds_ToleranceWidensWindow(t *testing.T) {
	g := mustNewGraph(t, 4, pathEdges(4), nil)
	opts := DefaultOptions()
	opts.TargetSplit = 0.5
	opts.SoftSplitTolerance = 0.1

	lo, hi := softSplitBounds(g, opts)
	assert.Less(t, lo, hi)
}

func TestQuadForm_ZeroOnUniformVector(t *testing.T) {
	g := mustNewGraph(t, 6, triangleBridgeEdges(), nil)
	v := []float64{1, 1, 1, 1, 1, 1}
	// (D-A) is a graph Laplacian: it annihilates the all-ones vector.
	assert.InDelta(t, 0.0, quadForm(g, v), 1e-9)
}

func TestQuadForm_PositiveOnNonUniformVector(t *testing.T) {
	g := mustNewGraph(t, 6, triangleBridgeEdges(), nil)
	v := []float64{0, 0, 0, 1, 1, 1}
	assert.Greater(t, quadForm(g, v), 0.0)
}

func TestQPGradient_MatchesFiniteDifference(t *testing.T) {
	g := mustNewGraph(t, 6, triangleBridgeEdges(), nil)
	x := []float64{0.2, 0.4, 0.6, 0.3, 0.5, 0.7}
	grad := make([]float64, 6)
	qpGradient(g, x, grad)

	const eps = 1e-6
	for v := 0; v < 6; v++ {
		xPlus := append([]float64(nil), x...)
		xMinus := append([]float64(nil), x...)
		xPlus[v] += eps
		xMinus[v] -= eps
		fPlus := quadForm(g, xPlus)
		fMinus := quadForm(g, xMinus)
		numeric := (fPlus - fMinus) / (2 * eps)
		assert.InDeltaf(t, numeric, grad[v], 1e-3, "grad[%d]", v)
	}
}

func TestRunQP_ReducesObjectiveFromUniformStart(t *testing.T) {
	g := mustNewGraph(t, 6, triangleBridgeEdges(), nil)
	opts := DefaultOptions()
	x := make([]float64, 6)
	for v := range x {
		x[v] = opts.TargetSplit
	}
	startF := quadForm(g, x)

	err := runQP(g, opts, x, testNopLogger())
	require.NoError(t, err)

	endF := quadForm(g, x)
	assert.LessOrEqual(t, endF, startF+1e-9)
}

func TestRunQP_RespectsSlabConstraintAtExit(t *testing.T) {
	g := mustNewGraph(t, 6, triangleBridgeEdges(), nil)
	opts := DefaultOptions()
	opts.SoftSplitTolerance = 0.05
	x := []float64{0.9, 0.9, 0.9, 0.1, 0.1, 0.1}

	err := runQP(g, opts, x, testNopLogger())
	require.NoError(t, err)

	lo, hi := softSplitBounds(g, opts)
	sum := 0.0
	for v := range x {
		sum += g.w[v] * x[v]
	}
	assert.GreaterOrEqual(t, sum, lo-1e-3)
	assert.LessOrEqual(t, sum, hi+1e-3)
}

func TestRunQP_NoOpWithZeroIterationLimit(t *testing.T) {
	g := mustNewGraph(t, 2, []edgeSpec{{0, 1, 1}}, nil)
	opts := DefaultOptions()
	opts.GradProjIterationLimit = 0
	x := []float64{0.5, 0.5}
	err := runQP(g, opts, x, testNopLogger())
	require.NoError(t, err)
	assert.Equal(t, 0.5, x[0])
	assert.Equal(t, 0.5, x[1])
}
