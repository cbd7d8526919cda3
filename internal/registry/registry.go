// Package registry defines the reference data that drives task routing:
// the domain taxonomy (each domain with its trigger keywords) and the
// agent roster (each agent with the domains it covers).
//
// A Registry is immutable after construction. Declaration order of domains
// and agents is preserved because it is the deterministic tie-break order
// for scoring and agent selection — two domains with equal scores rank in
// declaration order, and two equally specific agents resolve to the one
// declared first.
package registry

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultThreshold is the significance threshold used when a registry
// file doesn't set one. A domain counts as significant when its keyword
// score reaches the threshold.
const DefaultThreshold = 3

// ErrUnknownDomain reports a reference to a domain name that the registry
// doesn't declare: an agent covering an undeclared domain, an unknown
// coordinator target, or a lookup with a name that doesn't exist.
var ErrUnknownDomain = errors.New("unknown domain")

// --- Reference data types ---

// Domain is one category of technical work with its trigger keywords.
// Keywords match case-insensitively as substrings; multi-word phrases
// match as contiguous substrings.
type Domain struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Agent is a named specialist bound to the domains it covers. An agent
// with no domains is legal (the coordinator is one) — it can only be
// selected as the coordinating agent, never per-domain.
type Agent struct {
	Name       string   `json:"name" yaml:"name"`
	Department string   `json:"department,omitempty" yaml:"department,omitempty"`
	Domains    []string `json:"domains,omitempty" yaml:"domains,omitempty"`
}

// File is the on-disk registry shape (agent-registry.json or a YAML
// equivalent). Threshold 0 means unset and resolves to DefaultThreshold.
type File struct {
	Domains     []Domain `json:"domains" yaml:"domains"`
	Agents      []Agent  `json:"agents" yaml:"agents"`
	Coordinator string   `json:"coordinator" yaml:"coordinator"`
	Threshold   int      `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// Registry is the validated, immutable aggregate the router classifies
// against. Construct with New, LoadFile, or Default.
type Registry struct {
	domains     []Domain
	agents      []Agent
	domainIndex map[string]int
	coordinator int // index into agents
	threshold   int
}

// --- Construction & validation ---

// New builds a Registry from a File. It normalizes keywords (trimmed,
// lowercased) and validates the whole structure: at least one domain,
// unique non-empty names, at least one keyword per domain, every agent
// domain declared, and a coordinator that names a declared agent.
// Any violation is a configuration error — callers must refuse to serve
// classification requests until the file is fixed.
func New(f File) (*Registry, error) {
	if len(f.Domains) == 0 {
		return nil, errors.New("registry declares no domains")
	}

	r := &Registry{
		domains:     make([]Domain, 0, len(f.Domains)),
		agents:      make([]Agent, 0, len(f.Agents)),
		domainIndex: make(map[string]int, len(f.Domains)),
		coordinator: -1,
	}

	for _, d := range f.Domains {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, errors.New("registry has a domain with an empty name")
		}
		if _, dup := r.domainIndex[name]; dup {
			return nil, fmt.Errorf("duplicate domain %q", name)
		}
		if len(d.Keywords) == 0 {
			return nil, fmt.Errorf("domain %q has no keywords", name)
		}

		keywords := make([]string, 0, len(d.Keywords))
		for _, kw := range d.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("domain %q has an empty keyword", name)
			}
			keywords = append(keywords, kw)
		}

		r.domainIndex[name] = len(r.domains)
		r.domains = append(r.domains, Domain{Name: name, Keywords: keywords})
	}

	seenAgents := make(map[string]bool, len(f.Agents))
	for _, a := range f.Agents {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return nil, errors.New("registry has an agent with an empty name")
		}
		if seenAgents[name] {
			return nil, fmt.Errorf("duplicate agent %q", name)
		}
		seenAgents[name] = true

		domains := make([]string, 0, len(a.Domains))
		for _, dn := range a.Domains {
			dn = strings.TrimSpace(dn)
			if _, ok := r.domainIndex[dn]; !ok {
				return nil, fmt.Errorf("agent %q: %w: %q", name, ErrUnknownDomain, dn)
			}
			domains = append(domains, dn)
		}

		r.agents = append(r.agents, Agent{Name: name, Department: a.Department, Domains: domains})
	}

	coordinator := strings.TrimSpace(f.Coordinator)
	if coordinator == "" {
		return nil, errors.New("registry has no coordinator agent")
	}
	for i, a := range r.agents {
		if a.Name == coordinator {
			r.coordinator = i
			break
		}
	}
	if r.coordinator < 0 {
		return nil, fmt.Errorf("coordinator %q is not a declared agent", coordinator)
	}

	switch {
	case f.Threshold == 0:
		r.threshold = DefaultThreshold
	case f.Threshold < 0:
		return nil, fmt.Errorf("threshold must be at least 1, got %d", f.Threshold)
	default:
		r.threshold = f.Threshold
	}

	return r, nil
}

// --- Lookups ---

// Domains returns the declared domains in declaration order. The returned
// slices are copies — mutating them doesn't affect the registry.
func (r *Registry) Domains() []Domain {
	out := make([]Domain, len(r.domains))
	for i, d := range r.domains {
		out[i] = Domain{Name: d.Name, Keywords: append([]string(nil), d.Keywords...)}
	}
	return out
}

// DomainNames returns all domain names in declaration order.
func (r *Registry) DomainNames() []string {
	names := make([]string, len(r.domains))
	for i, d := range r.domains {
		names[i] = d.Name
	}
	return names
}

// HasDomain reports whether name is a declared domain.
func (r *Registry) HasDomain(name string) bool {
	_, ok := r.domainIndex[name]
	return ok
}

// KeywordsFor returns the normalized keyword list for a domain.
// Unknown names fail with an error wrapping ErrUnknownDomain.
func (r *Registry) KeywordsFor(name string) ([]string, error) {
	i, ok := r.domainIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, name)
	}
	return append([]string(nil), r.domains[i].Keywords...), nil
}

// Agents returns the declared agents in declaration order. The returned
// slices are copies — mutating them doesn't affect the registry.
func (r *Registry) Agents() []Agent {
	out := make([]Agent, len(r.agents))
	for i, a := range r.agents {
		out[i] = Agent{Name: a.Name, Department: a.Department, Domains: append([]string(nil), a.Domains...)}
	}
	return out
}

// AgentsFor returns every agent covering the domain, in declaration order.
// Unknown names fail with an error wrapping ErrUnknownDomain; a declared
// domain that no agent covers returns an empty slice and no error.
func (r *Registry) AgentsFor(domain string) ([]Agent, error) {
	if !r.HasDomain(domain) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	var out []Agent
	for _, a := range r.agents {
		if a.covers(domain) {
			out = append(out, Agent{Name: a.Name, Department: a.Department, Domains: append([]string(nil), a.Domains...)})
		}
	}
	return out, nil
}

// BestAgent picks the agent for a domain: the covering agent with the
// fewest total domains wins (specialists over generalists), declaration
// order breaking ties. The second return is false when no agent covers
// the domain — callers treat that as a confidence downgrade, never an
// error, because partial routing results remain useful.
func (r *Registry) BestAgent(domain string) (Agent, bool) {
	best := -1
	for i, a := range r.agents {
		if !a.covers(domain) {
			continue
		}
		if best < 0 || len(a.Domains) < len(r.agents[best].Domains) {
			best = i
		}
	}
	if best < 0 {
		return Agent{}, false
	}
	a := r.agents[best]
	return Agent{Name: a.Name, Department: a.Department, Domains: append([]string(nil), a.Domains...)}, true
}

// Coordinator returns the designated coordinating agent. Validation
// guarantees it exists.
func (r *Registry) Coordinator() Agent {
	a := r.agents[r.coordinator]
	return Agent{Name: a.Name, Department: a.Department, Domains: append([]string(nil), a.Domains...)}
}

// Threshold returns the significance threshold this registry was
// configured with.
func (r *Registry) Threshold() int {
	return r.threshold
}

func (a Agent) covers(domain string) bool {
	for _, d := range a.Domains {
		if d == domain {
			return true
		}
	}
	return false
}
