package domain

import (
	"errors"
	"slices"
)

// Default relevance parameters.
const (
	DefaultRelevanceThresholdKm = 500.0
	DefaultInclusionProbability = 0.7
)

// RelevanceRules controls which candidates survive selection.
type RelevanceRules struct {
	// ThresholdKm retains every candidate strictly closer than this.
	ThresholdKm float64
	// InclusionProbability is the chance a distant, non-affine candidate is kept.
	InclusionProbability float64
}

// DefaultRelevanceRules returns the built-in relevance rules.
func DefaultRelevanceRules() RelevanceRules {
	return RelevanceRules{
		ThresholdKm:          DefaultRelevanceThresholdKm,
		InclusionProbability: DefaultInclusionProbability,
	}
}

// Validate checks the rule parameters.
func (r RelevanceRules) Validate() error {
	if r.ThresholdKm <= 0 {
		return errors.New("relevance threshold must be positive")
	}
	if r.InclusionProbability < 0 || r.InclusionProbability > 1 {
		return errors.New("inclusion probability must be within [0, 1]")
	}
	return nil
}

// SelectRelevant filters candidates by geographic affinity, distance and
// random inclusion. rng is consulted only for candidates that neither rule
// retains, one draw per such candidate in input order.
func SelectRelevant(candidates []ThreatCandidate, city City, rules RelevanceRules, rng Rand) []ThreatCandidate {
	out := make([]ThreatCandidate, 0, len(candidates))
	for _, c := range candidates {
		switch {
		case c.affinity != "" && city.HasTag(c.affinity):
			out = append(out, c)
		case c.DistanceKm < rules.ThresholdKm:
			out = append(out, c)
		case rng.Float64() < rules.InclusionProbability:
			out = append(out, c)
		}
	}
	return out
}

// PickBest returns the closest retained candidate. Distance ties go to the
// template declared first in the catalog. ok is false when retained is empty.
func PickBest(retained []ThreatCandidate) (best ThreatCandidate, ok bool) {
	if len(retained) == 0 {
		return ThreatCandidate{}, false
	}
	best = slices.MinFunc(retained, func(a, b ThreatCandidate) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		}
		return a.order - b.order
	})
	return best, true
}
