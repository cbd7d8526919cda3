package routing

import (
	"github.com/HendryAvila/switchboard/internal/registry"
)

// Strategist turns significant domains into a delegation decision.
type Strategist struct {
	reg       *registry.Registry
	threshold int
}

// NewStrategist creates a Strategist over reg with the given threshold.
func NewStrategist(reg *registry.Registry, threshold int) *Strategist {
	return &Strategist{reg: reg, threshold: threshold}
}

// Decision is the delegation outcome for one classification.
type Decision struct {
	Strategy   Strategy
	Agents     []registry.Agent
	Confidence Confidence
	Unassigned []string
}

// Decide maps the significant domains (already ordered by the Selector)
// to a strategy, suggested agents, and a confidence level:
//
//   - 0 domains: direct execution, no agents, low confidence.
//   - 1 domain: single agent; high confidence when the score reaches
//     twice the threshold, medium otherwise.
//   - 2 domains: single agent when both resolve to the same agent,
//     multi-agent otherwise; medium confidence.
//   - 3+ domains: multi-agent, one agent per domain plus the coordinator
//     appended last; high confidence when every significant score reaches
//     threshold+2, medium otherwise.
//
// A significant domain with no covering agent is never an error: it is
// reported in Unassigned and costs one confidence downgrade, applied once
// per decision regardless of how many domains are uncovered.
func (st *Strategist) Decide(scores ScoreMap, significant []string) Decision {
	switch len(significant) {
	case 0:
		return Decision{
			Strategy:   StrategyDirect,
			Agents:     []registry.Agent{},
			Confidence: ConfidenceLow,
		}
	case 1:
		return st.decideSingle(scores, significant[0])
	case 2:
		return st.decidePair(significant)
	default:
		return st.decideMulti(scores, significant)
	}
}

func (st *Strategist) decideSingle(scores ScoreMap, domain string) Decision {
	d := Decision{
		Strategy:   StrategySingleAgent,
		Confidence: ConfidenceMedium,
	}
	if scores[domain] >= 2*st.threshold {
		d.Confidence = ConfidenceHigh
	}

	agent, ok := st.reg.BestAgent(domain)
	if !ok {
		d.Agents = []registry.Agent{}
		d.Unassigned = []string{domain}
		d.Confidence = d.Confidence.Downgrade()
		return d
	}
	d.Agents = []registry.Agent{agent}
	return d
}

// decidePair handles exactly two significant domains. A pair that lands
// on the same agent (a generalist covering both) collapses to
// single-agent; two different agents can work in parallel without a
// coordinator, so the pair stays coordinator-free multi-agent.
func (st *Strategist) decidePair(significant []string) Decision {
	d := Decision{Confidence: ConfidenceMedium}

	first, okFirst := st.reg.BestAgent(significant[0])
	second, okSecond := st.reg.BestAgent(significant[1])

	if okFirst && okSecond && first.Name == second.Name {
		d.Strategy = StrategySingleAgent
		d.Agents = []registry.Agent{first}
		return d
	}

	d.Strategy = StrategyMultiAgent
	d.Agents = make([]registry.Agent, 0, 2)
	if okFirst {
		d.Agents = append(d.Agents, first)
	} else {
		d.Unassigned = append(d.Unassigned, significant[0])
	}
	if okSecond {
		d.Agents = append(d.Agents, second)
	} else {
		d.Unassigned = append(d.Unassigned, significant[1])
	}
	if len(d.Unassigned) > 0 {
		d.Confidence = d.Confidence.Downgrade()
	}
	return d
}

func (st *Strategist) decideMulti(scores ScoreMap, significant []string) Decision {
	d := Decision{
		Strategy:   StrategyMultiAgent,
		Confidence: ConfidenceHigh,
	}
	for _, domain := range significant {
		if scores[domain] < st.threshold+2 {
			d.Confidence = ConfidenceMedium
			break
		}
	}

	// One agent per domain, deduplicated on first appearance so a
	// generalist covering several significant domains is suggested once.
	d.Agents = make([]registry.Agent, 0, len(significant)+1)
	seen := make(map[string]bool, len(significant)+1)
	for _, domain := range significant {
		agent, ok := st.reg.BestAgent(domain)
		if !ok {
			d.Unassigned = append(d.Unassigned, domain)
			continue
		}
		if !seen[agent.Name] {
			seen[agent.Name] = true
			d.Agents = append(d.Agents, agent)
		}
	}

	coordinator := st.reg.Coordinator()
	if !seen[coordinator.Name] {
		d.Agents = append(d.Agents, coordinator)
	}

	if len(d.Unassigned) > 0 {
		d.Confidence = d.Confidence.Downgrade()
	}
	return d
}
