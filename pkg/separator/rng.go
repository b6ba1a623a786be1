package separator

import "math/rand"

// rng is the single seeded random source for one partitioning call.
// Matching permutations and GuessRandom shuffles both draw from it; it is
// never backed by the package-level math/rand source, so concurrent
// partitioning calls cannot interfere with each other's determinism.
type rng struct {
	r *rand.Rand
}

func newRNG(seed int64) *rng {
	return &rng{r: rand.New(rand.NewSource(seed))}
}

// perm returns a random permutation of [0,n), used to order vertices
// before a matching pass.
func (g *rng) perm(n int) []int {
	return g.r.Perm(n)
}

// shuffle randomizes the order of a slice of length n via swap.
func (g *rng) shuffle(n int, swap func(i, j int)) {
	g.r.Shuffle(n, swap)
}
