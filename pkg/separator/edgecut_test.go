package separator

import "testing"

func TestComputeEdgeCut_RejectsNilGraph(t *testing.T) {
	if _, err := ComputeEdgeCut(nil); err == nil {
		t.Fatal("expected an error for a nil graph")
	}
}

func TestComputeEdgeCut_RejectsInvalidOptions(t *testing.T) {
	g := mustNewGraph(t, 2, []edgeSpec{{0, 1, 1}}, nil)
	opts := DefaultOptions()
	opts.TargetSplit = 1.5
	if _, err := ComputeEdgeCutWithOptions(g, opts); err == nil {
		t.Fatal("expected an error for an out-of-range targetSplit")
	}
}

func TestComputeEdgeCut_TwoTrianglesSeverOnlyTheBridge(t *testing.T) {
	g := mustNewGraph(t, 6, triangleBridgeEdges(), nil)
	result, err := ComputeEdgeCut(g)
	if err != nil {
		t.Fatalf("ComputeEdgeCut: %v", err)
	}
	if result.CutSize != 1 {
		t.Fatalf("CutSize = %d, want 1", result.CutSize)
	}
	if result.CutCost != 1 {
		t.Fatalf("CutCost = %g, want 1", result.CutCost)
	}
	if result.W0 != 3 || result.W1 != 3 {
		t.Fatalf("W0=%g W1=%g, want 3 and 3", result.W0, result.W1)
	}
}

func TestComputeEdgeCut_PathTenSplitsNearTheMiddle(t *testing.T) {
	g := mustNewGraph(t, 10, pathEdges(10), nil)
	result, err := ComputeEdgeCut(g)
	if err != nil {
		t.Fatalf("ComputeEdgeCut: %v", err)
	}
	if result.CutSize != 1 {
		t.Fatalf("CutSize = %d, want 1 (a path has only single-edge cuts)", result.CutSize)
	}
	if result.W0 != 5 || result.W1 != 5 {
		t.Fatalf("W0=%g W1=%g, want an exact 5/5 split", result.W0, result.W1)
	}
	if result.Imbalance != 0 {
		t.Fatalf("Imbalance = %g, want 0 for an exact 5/5 split", result.Imbalance)
	}
}

func TestComputeEdgeCut_CompleteGraphSixIsBalancedBySymmetry(t *testing.T) {
	g := mustNewGraph(t, 6, completeGraphEdges(6), nil)
	result, err := ComputeEdgeCut(g)
	if err != nil {
		t.Fatalf("ComputeEdgeCut: %v", err)
	}
	// K6 split 3/3 cuts 9 of the 15 edges; every balanced split costs the
	// same by symmetry, so this is also the optimum.
	if result.CutSize != 9 {
		t.Fatalf("CutSize = %d, want 9 for a balanced 3/3 split of K6", result.CutSize)
	}
	if result.W0 != 3 || result.W1 != 3 {
		t.Fatalf("W0=%g W1=%g, want a balanced 3/3 split", result.W0, result.W1)
	}
}

func TestComputeEdgeCut_FourByFourGridSplitsAlongAnAxis(t *testing.T) {
	g := mustNewGraph(t, 16, gridEdges(4, 4), nil)
	result, err := ComputeEdgeCut(g)
	if err != nil {
		t.Fatalf("ComputeEdgeCut: %v", err)
	}
	// The minimum balanced bisection of a 4x4 grid cuts exactly 4 edges,
	// a straight line through the middle.
	if result.CutSize > 4 {
		t.Fatalf("CutSize = %d, want <= 4 for a 4x4 grid bisection", result.CutSize)
	}
	if result.W0 != 8 || result.W1 != 8 {
		t.Fatalf("W0=%g W1=%g, want a balanced 8/8 split", result.W0, result.W1)
	}
}

func TestComputeEdgeCut_StarFiveSplitsHubAndTwoLeavesFromThreeLeaves(t *testing.T) {
	g := mustNewGraph(t, 6, starEdges(5), nil)
	result, err := ComputeEdgeCut(g)
	if err != nil {
		t.Fatalf("ComputeEdgeCut: %v", err)
	}
	// Every balanced 3/3 split of a star puts the hub with two leaves
	// against three leaves, which cuts the hub's edges to those three
	// leaves; no balanced split cuts fewer than 3 edges.
	if result.CutSize < 3 {
		t.Fatalf("CutSize = %d, want >= 3 (a star cannot do better)", result.CutSize)
	}
}

func TestComputeEdgeCut_DeterministicAcrossRepeatedRunsWithSameSeed(t *testing.T) {
	g1 := mustNewGraph(t, 16, gridEdges(4, 4), nil)
	g2 := mustNewGraph(t, 16, gridEdges(4, 4), nil)
	opts := DefaultOptions()

	r1, err := ComputeEdgeCutWithOptions(g1, opts)
	if err != nil {
		t.Fatalf("ComputeEdgeCutWithOptions: %v", err)
	}
	r2, err := ComputeEdgeCutWithOptions(g2, opts)
	if err != nil {
		t.Fatalf("ComputeEdgeCutWithOptions: %v", err)
	}
	if r1.CutSize != r2.CutSize || r1.CutCost != r2.CutCost {
		t.Fatalf("two runs with the same seed diverged: %+v vs %+v", r1, r2)
	}
	for v := range r1.Partition {
		if r1.Partition[v] != r2.Partition[v] {
			t.Fatalf("partition diverged at vertex %d: %d vs %d", v, r1.Partition[v], r2.Partition[v])
		}
	}
}
