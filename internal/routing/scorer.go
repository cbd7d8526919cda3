package routing

import (
	"strings"

	"github.com/HendryAvila/switchboard/internal/registry"
)

// Scorer counts keyword occurrences per domain. Matching is plain
// case-insensitive substring counting: "APIs" matches the keyword "api",
// and a keyword appearing three times scores three. No stemming, no word
// boundaries, no weights.
type Scorer struct {
	domains []registry.Domain
}

// NewScorer creates a Scorer over the registry's domains. Keywords are
// already lowercased by the registry.
func NewScorer(reg *registry.Registry) *Scorer {
	return &Scorer{domains: reg.Domains()}
}

// Score returns the full score map for text: for every declared domain,
// the sum of occurrences of each of its keywords in the lowercased text.
// Every domain gets an entry, zeros included.
func (s *Scorer) Score(text string) ScoreMap {
	lowered := strings.ToLower(text)
	scores := make(ScoreMap, len(s.domains))
	for _, d := range s.domains {
		total := 0
		for _, kw := range d.Keywords {
			total += strings.Count(lowered, kw)
		}
		scores[d.Name] = total
	}
	return scores
}

// KeywordHit records one keyword that matched and how many times.
type KeywordHit struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Explain reports the keywords that matched per domain. Only keywords
// with at least one occurrence appear, in keyword declaration order;
// domains with no hits are omitted entirely.
func (s *Scorer) Explain(text string) map[string][]KeywordHit {
	lowered := strings.ToLower(text)
	hits := make(map[string][]KeywordHit)
	for _, d := range s.domains {
		for _, kw := range d.Keywords {
			if n := strings.Count(lowered, kw); n > 0 {
				hits[d.Name] = append(hits[d.Name], KeywordHit{Keyword: kw, Count: n})
			}
		}
	}
	return hits
}
