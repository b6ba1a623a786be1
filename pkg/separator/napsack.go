package separator

// napsack projects y (passed in x on entry) onto the feasible region of a
// knapsack-style box-and-slab constraint: given weights a (the node
// weights, strictly positive), bounds lo <= hi and an initial guess
// lambda, it returns the x minimizing ||x-y|| subject to 0<=x<=1,
// lo <= a'x <= hi, overwriting x in place, and returns the final lambda.
//
// freeSetStatus, if non-nil, holds +1/-1/0 for x_i == 1 / 0 / free from a
// previous call and is used only to refine the starting lambda guess; it
// is never modified.
func napsack(x []float64, a []float64, lo, hi float64, lambdaGuess float64, freeSetStatus []int8) float64 {
	n := len(x)
	lambda := lambdaGuess

	if freeSetStatus != nil && lambda != 0 {
		asum := -hi
		if lambda <= 0 {
			asum = -lo
		}
		a2sum := 0.0
		for k := 0; k < n; k++ {
			switch freeSetStatus[k] {
			case 1:
				asum += a[k]
			case 0:
				ai := a[k]
				asum += x[k] * ai
				a2sum += ai * ai
			}
		}
		if a2sum != 0 {
			lambda = asum / a2sum
		}
	}

	slope := 0.0
	for k := 0; k < n; k++ {
		xi := x[k] - a[k]*lambda
		if xi >= 1 {
			slope += a[k]
		} else if xi > 0 {
			slope += a[k] * xi
		}
	}

	switch {
	case lambda >= 0 && slope >= hi: // case 1
		if slope > hi {
			lambda = napup(x, a, lambda, hi)
			lambda = maxF(0, lambda)
		}

	case lambda <= 0 && slope <= lo: // case 2
		if slope < lo {
			lambda = napdown(x, a, lambda, lo)
			lambda = minF(lambda, 0)
		}

	default: // case 3 or 4
		if lambda != 0 {
			slope0 := 0.0
			for k := 0; k < n; k++ {
				xi := x[k]
				if xi >= 1 {
					slope0 += a[k]
				} else if xi > 0 {
					slope0 += a[k] * xi
				}
			}

			if lambda >= 0 && slope < hi { // case 3
				switch {
				case slope0 < lo:
					lambda = napdown(x, a, 0, lo)
					if lambda > 0 {
						lambda = 0
					}
				case slope0 > hi:
					lambda = napdown(x, a, lambda, hi)
					if lambda < 0 {
						lambda = 0
					}
				default:
					lambda = 0
				}
			} else { // case 4: lambda <= 0 && slope > lo
				switch {
				case slope0 > hi:
					lambda = napup(x, a, 0, hi)
					lambda = maxF(lambda, 0)
				case slope0 < lo:
					lambda = napup(x, a, lambda, lo)
					lambda = minF(0, lambda)
				default:
					lambda = 0
				}
			}
		} else { // lambda == 0
			if slope < hi { // case 3
				if slope < lo {
					lambda = napdown(x, a, lambda, lo)
					lambda = minF(0, lambda)
				}
			} else { // case 4: slope > lo
				if slope > hi {
					lambda = napup(x, a, lambda, hi)
					lambda = maxF(lambda, 0)
				}
			}
		}
	}

	if lambda == 0 {
		for k := 0; k < n; k++ {
			x[k] = clip(x[k], 0, 1)
		}
	} else {
		for k := 0; k < n; k++ {
			x[k] = clip(x[k]-a[k]*lambda, 0, 1)
		}
	}
	return lambda
}

// clip is the explicit box-projection helper.
func clip(z, lo, hi float64) float64 {
	if z < lo {
		return lo
	}
	if z > hi {
		return hi
	}
	return z
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// breakpoint is one candidate lambda at which variable k changes free/
// saturated state as lambda moves monotonically away from the starting
// point. kind records which transition it is, since the update to the
// running sum of squares ss differs by direction.
type breakpoint struct {
	lambda float64
	k      int
	kind   bpKind
}

// bpKind distinguishes the two transition directions a variable can make
// as lambda walks monotonically in one direction.
type bpKind int8

const (
	// napup transitions: a saturated-high variable falls back into the
	// free interval, or a free variable falls through to saturated-low.
	bpHighToFree bpKind = iota
	bpFreeToLow
	// napdown transitions: a free variable rises to saturated-high, or a
	// saturated-low variable rises back into the free interval.
	bpFreeToHigh
	bpLowToFree
)

type bpHeap struct {
	items []breakpoint
	less  func(a, b breakpoint) bool
}

func (h *bpHeap) Len() int { return len(h.items) }
func (h *bpHeap) push(bp breakpoint) {
	h.items = append(h.items, bp)
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.less(h.items[i], h.items[parent]) {
			h.items[i], h.items[parent] = h.items[parent], h.items[i]
			i = parent
		} else {
			break
		}
	}
}
func (h *bpHeap) pop() (breakpoint, bool) {
	if len(h.items) == 0 {
		return breakpoint{}, false
	}
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	i := 0
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < len(h.items) && h.less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < len(h.items) && h.less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
	return top, true
}

// napup walks lambda upward from the starting guess until the slope
// a'proj(x(lambda)) falls to target (hi, usually), used when the dual's
// slope at the starting lambda exceeds target. The slope is piecewise
// linear in lambda: between breakpoints it falls at the constant rate ss,
// the sum of a[k]^2 over currently free (0<x_k<1) variables, so each
// segment is solved by direct linear interpolation rather than by
// stepping lambda to each breakpoint in turn. Runs in O(n + h log n)
// where h is the number of status changes.
func napup(x []float64, a []float64, lambdaStart float64, target float64) float64 {
	n := len(x)
	lambda := lambdaStart
	slope := 0.0
	ss := 0.0
	h := &bpHeap{less: func(p, q breakpoint) bool { return p.lambda < q.lambda }}

	for k := 0; k < n; k++ {
		xi := x[k] - a[k]*lambda
		switch {
		case xi >= 1:
			slope += a[k]
			// Falls from saturated-high back into the free interval at
			// x[k]-a[k]*l = 1 => l = (x[k]-1)/a[k].
			bl := (x[k] - 1) / a[k]
			if bl >= lambda {
				h.push(breakpoint{bl, k, bpHighToFree})
			}
		case xi > 0:
			slope += a[k] * xi
			ss += a[k] * a[k]
			// Falls through to saturated-low at x[k]-a[k]*l = 0.
			bl := x[k] / a[k]
			if bl > lambda {
				h.push(breakpoint{bl, k, bpFreeToLow})
			}
		}
	}

	for {
		if slope <= target {
			return lambda
		}
		bp, ok := h.pop()
		if !ok {
			if ss > 0 {
				return lambda + (slope-target)/ss
			}
			return lambda
		}
		// Linear extrapolation of the current segment's slope to bp.lambda.
		slopeAtBp := slope - ss*(bp.lambda-lambda)
		if slopeAtBp <= target {
			// The root lies within this segment; ss > 0 here because
			// slope > target entering the loop but slopeAtBp <= target.
			return lambda + (slope-target)/ss
		}
		lambda = bp.lambda
		slope = slopeAtBp
		switch bp.kind {
		case bpHighToFree:
			ss += a[bp.k] * a[bp.k]
			bl := x[bp.k] / a[bp.k]
			if bl > lambda {
				h.push(breakpoint{bl, bp.k, bpFreeToLow})
			}
		case bpFreeToLow:
			ss -= a[bp.k] * a[bp.k]
		}
	}
}

// napdown is the mirror of napup, walking lambda downward until the slope
// rises to target (lo, usually); see napup for the piecewise-linear
// reasoning this shares.
func napdown(x []float64, a []float64, lambdaStart float64, target float64) float64 {
	n := len(x)
	lambda := lambdaStart
	slope := 0.0
	ss := 0.0
	h := &bpHeap{less: func(p, q breakpoint) bool { return p.lambda > q.lambda }}

	for k := 0; k < n; k++ {
		xi := x[k] - a[k]*lambda
		switch {
		case xi >= 1:
			// Saturated-high stays saturated as lambda decreases further;
			// no breakpoint in this direction.
			slope += a[k]
		case xi > 0:
			slope += a[k] * xi
			ss += a[k] * a[k]
			// Rises to saturated-high at x[k]-a[k]*l = 1 => l = (x[k]-1)/a[k].
			bl := (x[k] - 1) / a[k]
			if bl < lambda {
				h.push(breakpoint{bl, k, bpFreeToHigh})
			}
		default:
			// Saturated-low rises into the free interval at
			// x[k]-a[k]*l = 0 => l = x[k]/a[k].
			bl := x[k] / a[k]
			if bl <= lambda {
				h.push(breakpoint{bl, k, bpLowToFree})
			}
		}
	}

	for {
		if slope >= target {
			return lambda
		}
		bp, ok := h.pop()
		if !ok {
			if ss > 0 {
				return lambda - (target-slope)/ss
			}
			return lambda
		}
		slopeAtBp := slope + ss*(lambda-bp.lambda)
		if slopeAtBp >= target {
			return lambda - (target-slope)/ss
		}
		lambda = bp.lambda
		slope = slopeAtBp
		switch bp.kind {
		case bpFreeToHigh:
			ss -= a[bp.k] * a[bp.k]
		case bpLowToFree:
			ss += a[bp.k] * a[bp.k]
			bl := (x[bp.k] - 1) / a[bp.k]
			if bl < lambda {
				h.push(breakpoint{bl, bp.k, bpFreeToHigh})
			}
		}
	}
}

// checkatx validates that x satisfies the box and slab constraints within
// tolerance eps. Summation is in index order to preserve fixed-order-sum
// determinism across runs.
func checkatx(x []float64, a []float64, lo, hi float64) error {
	const eps = 1e-3
	atx := 0.0
	for k := range x {
		if x[k] < -eps || x[k] > 1+eps {
			return newError(NumericFailure, "napsack: x[%d]=%g out of [0,1]", k, x[k])
		}
		atx += a[k] * x[k]
	}
	if atx < lo-eps || atx > hi+eps {
		return newError(NumericFailure, "napsack: a'x=%g outside [%g,%g]", atx, lo, hi)
	}
	return nil
}
