package separator

// MatchingStrategy selects how the matching engine pairs vertices during
// coarsening.
type MatchingStrategy int

const (
	// Random matches any unmatched neighbor.
	Random MatchingStrategy = iota
	// HEM (Heavy-Edge Matching) matches the unmatched neighbor with
	// maximum edge weight.
	HEM
	// HEMPA is HEM with a community-matching extension into 3-groups.
	HEMPA
	// HEMDavisPA is HEM with a brotherly-matching extension into 3-groups.
	HEMDavisPA
)

func (m MatchingStrategy) String() string {
	switch m {
	case Random:
		return "random"
	case HEM:
		return "hem"
	case HEMPA:
		return "hempa"
	case HEMDavisPA:
		return "hemdavispa"
	default:
		return "unknown"
	}
}

// GuessCutType selects the initial-guess generator used at the coarsest
// level.
type GuessCutType int

const (
	// GuessQP seeds the guess with the natural-order split, runs QP
	// refinement from that 0/1 vector and rounds the result; it does not
	// start QP from a uniform x = targetSplit.
	GuessQP GuessCutType = iota
	// GuessRandom shuffles vertex order then applies the natural-order
	// rule.
	GuessRandom
	// GuessNaturalOrder assigns vertices in id order until cumulative
	// weight crosses targetSplit*W.
	GuessNaturalOrder
)

// MatchType classifies how a vertex was absorbed into its coarse group.
type MatchType int8

const (
	// MatchOrphan: vertex had no unmatched neighbor at its turn.
	MatchOrphan MatchType = iota
	// MatchStandard: ordinary pair match (random, HEM).
	MatchStandard
	// MatchBrotherly: 3-group formed by the HEMDavisPA extension.
	MatchBrotherly
	// MatchCommunity: 3-group formed by the HEMPA extension.
	MatchCommunity
)

// Options is an immutable record configuring one partitioning run. Use
// DefaultOptions to get sane defaults, then override individual fields.
type Options struct {
	// RandomSeed makes matching permutations and GuessRandom shuffles
	// reproducible.
	RandomSeed int64

	// Coarsening options.
	CoarsenLimit            int
	MatchingStrategy        MatchingStrategy
	DoCommunityMatching     bool
	DavisBrotherlyThreshold float64

	// Guess partitioning options.
	GuessCutType GuessCutType

	// Waterdance options.
	NumDances int

	// Fiduccia-Mattheyses options.
	UseFM               bool
	FMSearchDepth       int
	FMConsiderCount     int
	FMMaxNumRefinements int

	// Quadratic programming options.
	UseQPGradProj          bool
	GradProjTolerance      float64
	GradProjIterationLimit int

	// Final partition target metrics.
	TargetSplit        float64
	SoftSplitTolerance float64
}

// DefaultOptions returns reasonable defaults for a general-purpose run.
func DefaultOptions() Options {
	return Options{
		RandomSeed:              1,
		CoarsenLimit:            64,
		MatchingStrategy:        HEMDavisPA,
		DoCommunityMatching:     true,
		DavisBrotherlyThreshold: 2.0,
		GuessCutType:            GuessQP,
		NumDances:               1,
		UseFM:                   true,
		FMSearchDepth:           50,
		FMConsiderCount:         3,
		FMMaxNumRefinements:     20,
		UseQPGradProj:           true,
		GradProjTolerance:       1e-3,
		GradProjIterationLimit:  50,
		TargetSplit:             0.5,
		SoftSplitTolerance:      0,
	}
}

// Validate rejects invalid or contradictory option combinations before
// coarsening begins.
func (o Options) Validate() error {
	if o.CoarsenLimit < 2 {
		return newError(InvalidOption, "coarsenLimit must be >= 2, got %d", o.CoarsenLimit)
	}
	if o.TargetSplit <= 0 || o.TargetSplit >= 1 {
		return newError(InvalidOption, "targetSplit must be in (0,1), got %g", o.TargetSplit)
	}
	if o.SoftSplitTolerance < 0 {
		return newError(InvalidOption, "softSplitTolerance must be >= 0, got %g", o.SoftSplitTolerance)
	}
	if o.SoftSplitTolerance >= o.TargetSplit || o.SoftSplitTolerance >= 1-o.TargetSplit {
		return newError(InvalidOption, "softSplitTolerance %g leaves no feasible split around targetSplit %g", o.SoftSplitTolerance, o.TargetSplit)
	}
	if o.DavisBrotherlyThreshold < 1 {
		return newError(InvalidOption, "davisBrotherlyThreshold must be >= 1, got %g", o.DavisBrotherlyThreshold)
	}
	if o.NumDances < 0 {
		return newError(InvalidOption, "numDances must be >= 0, got %d", o.NumDances)
	}
	if o.FMSearchDepth < 0 {
		return newError(InvalidOption, "fmSearchDepth must be >= 0, got %d", o.FMSearchDepth)
	}
	if o.FMConsiderCount < 1 {
		return newError(InvalidOption, "fmConsiderCount must be >= 1, got %d", o.FMConsiderCount)
	}
	if o.FMMaxNumRefinements < 0 {
		return newError(InvalidOption, "fmMaxNumRefinements must be >= 0, got %d", o.FMMaxNumRefinements)
	}
	if o.GradProjTolerance < 0 {
		return newError(InvalidOption, "gradProjTolerance must be >= 0, got %g", o.GradProjTolerance)
	}
	if o.GradProjIterationLimit < 0 {
		return newError(InvalidOption, "gradprojIterationLimit must be >= 0, got %d", o.GradProjIterationLimit)
	}
	return nil
}
