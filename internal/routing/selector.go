package routing

import (
	"sort"

	"github.com/HendryAvila/switchboard/internal/registry"
)

// Selector filters a ScoreMap down to the domains that matter and fixes
// their order. The order is the contract the rest of the pipeline and
// the output format rely on: descending score, with registry declaration
// order breaking ties, so identical input always yields identical output.
type Selector struct {
	order     []string
	threshold int
}

// NewSelector creates a Selector using the registry's domain declaration
// order and the given significance threshold.
func NewSelector(reg *registry.Registry, threshold int) *Selector {
	return &Selector{order: reg.DomainNames(), threshold: threshold}
}

// Significant returns the domains whose score meets the threshold.
func (s *Selector) Significant(scores ScoreMap) []string {
	return s.rank(scores, s.threshold)
}

// Detected returns the domains with any signal at all (score > 0), in
// the same deterministic order as Significant.
func (s *Selector) Detected(scores ScoreMap) []string {
	return s.rank(scores, 1)
}

// rank returns the domains scoring at least min, descending by score.
// Candidates are collected in declaration order and the sort is stable,
// which is what makes ties deterministic.
func (s *Selector) rank(scores ScoreMap, min int) []string {
	picked := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if scores[name] >= min {
			picked = append(picked, name)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return scores[picked[i]] > scores[picked[j]]
	})
	return picked
}
