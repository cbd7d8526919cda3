package routing

import (
	"reflect"
	"testing"

	"github.com/HendryAvila/switchboard/internal/registry"
)

// testRegistry builds a small registry with hand-checkable keyword lists.
// The ops domain is deliberately covered by no agent.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.New(registry.File{
		Domains: []registry.Domain{
			{Name: "frontend", Keywords: []string{"react", "component", "spinner"}},
			{Name: "backend", Keywords: []string{"api", "server", "jwt"}},
			{Name: "database", Keywords: []string{"sql", "schema", "storage"}},
			{Name: "ops", Keywords: []string{"deploy", "rollback"}},
		},
		Agents: []registry.Agent{
			{Name: "frontend-dev", Department: "engineering", Domains: []string{"frontend"}},
			{Name: "backend-dev", Department: "engineering", Domains: []string{"backend"}},
			{Name: "database-dev", Department: "data", Domains: []string{"database"}},
			{Name: "fullstack", Department: "engineering", Domains: []string{"frontend", "backend"}},
			{Name: "lead", Department: "coordination"},
		},
		Coordinator: "lead",
	})
	if err != nil {
		t.Fatalf("building test registry: %v", err)
	}
	return r
}

func TestScoreCountsOccurrences(t *testing.T) {
	s := NewScorer(testRegistry(t))

	got := s.Score("API server talking to another server")
	want := ScoreMap{"frontend": 0, "backend": 3, "database": 0, "ops": 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Score() = %v, want %v", got, want)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	s := NewScorer(testRegistry(t))

	lower := s.Score("react component react")
	mixed := s.Score("React COMPONENT rEaCt")
	if !reflect.DeepEqual(lower, mixed) {
		t.Errorf("case should not matter: %v vs %v", lower, mixed)
	}
	if lower["frontend"] != 3 {
		t.Errorf("frontend score = %d, want 3", lower["frontend"])
	}
}

// Matching is plain substring counting, so keywords hit inside larger
// words: "api" inside "rapid", "sql" inside "postgresql".
func TestScoreSubstringSemantics(t *testing.T) {
	s := NewScorer(testRegistry(t))

	got := s.Score("rapid postgresql rollout")
	if got["backend"] != 1 {
		t.Errorf(`backend score for "rapid" = %d, want 1`, got["backend"])
	}
	if got["database"] != 1 {
		t.Errorf(`database score for "postgresql" = %d, want 1`, got["database"])
	}
	if got["ops"] != 0 {
		t.Errorf(`ops score for "rollout" = %d, want 0`, got["ops"])
	}
}

func TestScoreEmptyText(t *testing.T) {
	reg := testRegistry(t)
	s := NewScorer(reg)

	got := s.Score("")
	if len(got) != len(reg.DomainNames()) {
		t.Fatalf("score map has %d entries, want %d", len(got), len(reg.DomainNames()))
	}
	for domain, score := range got {
		if score != 0 {
			t.Errorf("domain %q scored %d on empty text, want 0", domain, score)
		}
	}
}

func TestScoreIncludesZeroDomains(t *testing.T) {
	s := NewScorer(testRegistry(t))

	got := s.Score("react")
	for _, domain := range []string{"frontend", "backend", "database", "ops"} {
		if _, ok := got[domain]; !ok {
			t.Errorf("domain %q missing from score map", domain)
		}
	}
	if got["frontend"] != 1 {
		t.Errorf("frontend score = %d, want 1", got["frontend"])
	}
}

func TestExplainReportsOnlyHits(t *testing.T) {
	s := NewScorer(testRegistry(t))

	hits := s.Explain("component react react")
	want := map[string][]KeywordHit{
		"frontend": {
			{Keyword: "react", Count: 2},
			{Keyword: "component", Count: 1},
		},
	}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("Explain() = %v, want %v", hits, want)
	}
	if _, ok := hits["backend"]; ok {
		t.Error("backend had no hits and should be absent")
	}
}

func TestExplainCountsMatchScore(t *testing.T) {
	s := NewScorer(testRegistry(t))
	text := "deploy the api server, then deploy the sql schema"

	scores := s.Score(text)
	hits := s.Explain(text)
	for domain, domainHits := range hits {
		total := 0
		for _, h := range domainHits {
			total += h.Count
		}
		if total != scores[domain] {
			t.Errorf("domain %q: hit counts sum to %d, score is %d", domain, total, scores[domain])
		}
	}
}
