// Package routing implements the classification core: keyword scoring,
// significance selection, and the delegation decision. The pipeline for
// one request is
//
//	text → Scorer → ScoreMap → Selector → significant domains → Strategist → Decision
//
// Everything here is a pure computation over an immutable registry: no
// I/O, no logging, no shared mutable state. A Router is safe for
// concurrent use; every call builds its own ScoreMap and Result.
package routing

import (
	"fmt"

	"github.com/HendryAvila/switchboard/internal/registry"
)

// --- Delegation strategy enum ---

// Strategy is the delegation decision for a classified task.
type Strategy string

const (
	// StrategyDirect means no technical signal was detected — execute
	// the task directly without delegating.
	StrategyDirect Strategy = "direct"
	// StrategySingleAgent means one specialist should own the task.
	StrategySingleAgent Strategy = "single-agent"
	// StrategyMultiAgent means several specialists plus a coordinator
	// should collaborate.
	StrategyMultiAgent Strategy = "multi-agent"
)

// validStrategies is the set of allowed strategies.
var validStrategies = map[Strategy]bool{
	StrategyDirect:      true,
	StrategySingleAgent: true,
	StrategyMultiAgent:  true,
}

// ValidateStrategy returns an error if the strategy is not recognized.
func ValidateStrategy(s Strategy) error {
	if !validStrategies[s] {
		return fmt.Errorf("invalid strategy %q: must be one of: direct, single-agent, multi-agent", s)
	}
	return nil
}

// --- Confidence enum ---

// Confidence is a coarse reliability label on a classification result,
// derived from score margins and agent coverage.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Downgrade returns the confidence one level lower; low stays low.
// Used when a significant domain has no covering agent.
func (c Confidence) Downgrade() Confidence {
	switch c {
	case ConfidenceHigh:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// --- Result ---

// ScoreMap maps a domain name to its keyword occurrence score. Built
// fresh per classification and never shared between calls.
type ScoreMap map[string]int

// Result is the outcome of classifying one task description.
type Result struct {
	// Scores holds every declared domain's score, zeros included.
	Scores ScoreMap
	// DetectedDomains are the domains with score > 0, descending by
	// score, declaration order breaking ties.
	DetectedDomains []string
	// SignificantDomains are the domains with score >= threshold, in
	// the same deterministic order.
	SignificantDomains []string
	// Strategy is the delegation decision.
	Strategy Strategy
	// Agents are the suggested specialists, in significance order, with
	// the coordinator last for multi-agent results.
	Agents []registry.Agent
	// Confidence labels how reliable the decision is.
	Confidence Confidence
	// Unassigned lists significant domains no agent covers — the signal
	// that manual agent assignment is needed.
	Unassigned []string
	// Threshold echoes the significance threshold that was applied.
	Threshold int
}

// --- Router ---

// Router runs the full classification pipeline against one registry.
type Router struct {
	threshold  int
	scorer     *Scorer
	selector   *Selector
	strategist *Strategist
}

// Option adjusts a Router at construction time.
type Option func(*Router)

// WithThreshold overrides the registry's significance threshold for this
// router. Values below 1 are ignored — callers validate user-supplied
// thresholds before constructing a router.
func WithThreshold(n int) Option {
	return func(r *Router) {
		if n >= 1 {
			r.threshold = n
		}
	}
}

// New creates a Router over reg. The significance threshold comes from
// the registry unless overridden with WithThreshold.
func New(reg *registry.Registry, opts ...Option) *Router {
	r := &Router{threshold: reg.Threshold()}
	for _, opt := range opts {
		opt(r)
	}
	r.scorer = NewScorer(reg)
	r.selector = NewSelector(reg, r.threshold)
	r.strategist = NewStrategist(reg, r.threshold)
	return r
}

// Threshold returns the significance threshold in effect.
func (r *Router) Threshold() int {
	return r.threshold
}

// Classify scores text against every domain, selects the significant
// ones, and decides the delegation strategy. Empty or whitespace-only
// input is not an error: it yields all-zero scores and a direct, low
// confidence result.
func (r *Router) Classify(text string) Result {
	scores := r.scorer.Score(text)
	significant := r.selector.Significant(scores)
	decision := r.strategist.Decide(scores, significant)

	return Result{
		Scores:             scores,
		DetectedDomains:    r.selector.Detected(scores),
		SignificantDomains: significant,
		Strategy:           decision.Strategy,
		Agents:             decision.Agents,
		Confidence:         decision.Confidence,
		Unassigned:         decision.Unassigned,
		Threshold:          r.threshold,
	}
}

// Explain classifies text and additionally reports which keywords matched
// per domain, for the explain surfaces (CLI --explain, route_explain).
func (r *Router) Explain(text string) (Result, map[string][]KeywordHit) {
	return r.Classify(text), r.scorer.Explain(text)
}
