// Package report renders a classification result for the outside world:
// the stable JSON shape consumed by other tooling and a markdown summary
// for humans. Both renderings are pure functions of the result — no I/O,
// no logging, no mutation of the input.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/switchboard/internal/routing"
)

// Report is the wire form of one routing decision. The JSON field names
// are a public contract. Arrays are always present, never null;
// unassigned_domains is the only field omitted when empty.
type Report struct {
	DetectedDomains    []string       `json:"detected_domains"`
	DomainScores       map[string]int `json:"domain_scores"`
	SignificantDomains []string       `json:"significant_domains"`
	DelegationStrategy string         `json:"delegation_strategy"`
	SuggestedAgents    []string       `json:"suggested_agents"`
	Confidence         string         `json:"confidence"`
	UnassignedDomains  []string       `json:"unassigned_domains,omitempty"`
}

// Build converts a routing result into its reportable form. Slices are
// copied so the report stays stable even if the caller reuses the result.
func Build(res routing.Result) Report {
	rep := Report{
		DetectedDomains:    append([]string{}, res.DetectedDomains...),
		DomainScores:       make(map[string]int, len(res.Scores)),
		SignificantDomains: append([]string{}, res.SignificantDomains...),
		DelegationStrategy: string(res.Strategy),
		SuggestedAgents:    make([]string, 0, len(res.Agents)),
		Confidence:         string(res.Confidence),
	}
	for domain, score := range res.Scores {
		rep.DomainScores[domain] = score
	}
	for _, agent := range res.Agents {
		rep.SuggestedAgents = append(rep.SuggestedAgents, agent.Name)
	}
	if len(res.Unassigned) > 0 {
		rep.UnassignedDomains = append([]string{}, res.Unassigned...)
	}
	return rep
}

// JSON serializes the report with two-space indentation. encoding/json
// sorts map keys, so the same report always yields the same bytes.
func (r Report) JSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(data), nil
}

// Markdown renders the report as a short human-readable summary.
func (r Report) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Routing Decision\n\n")
	fmt.Fprintf(&sb, "**Strategy**: %s\n", r.DelegationStrategy)
	fmt.Fprintf(&sb, "**Confidence**: %s\n\n", r.Confidence)

	sb.WriteString("## Significant Domains\n\n")
	if len(r.SignificantDomains) > 0 {
		for _, domain := range r.SignificantDomains {
			fmt.Fprintf(&sb, "- **%s** (score %d)\n", domain, r.DomainScores[domain])
		}
	} else {
		sb.WriteString("_No domain reached the significance threshold. Execute the task directly._\n")
	}
	sb.WriteString("\n")

	if weak := r.weakSignals(); len(weak) > 0 {
		sb.WriteString("## Weak Signals\n\n")
		for _, domain := range weak {
			fmt.Fprintf(&sb, "- %s (score %d)\n", domain, r.DomainScores[domain])
		}
		sb.WriteString("\n")
	}

	if len(r.SuggestedAgents) > 0 {
		sb.WriteString("## Suggested Agents\n\n")
		for i, agent := range r.SuggestedAgents {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, agent)
		}
		sb.WriteString("\n")
	}

	if len(r.UnassignedDomains) > 0 {
		sb.WriteString("## Needs Manual Assignment\n\n")
		for _, domain := range r.UnassignedDomains {
			fmt.Fprintf(&sb, "- %s (no agent covers this domain)\n", domain)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// weakSignals returns the detected domains that fell short of the
// significance threshold, preserving detection order.
func (r Report) weakSignals() []string {
	significant := make(map[string]bool, len(r.SignificantDomains))
	for _, domain := range r.SignificantDomains {
		significant[domain] = true
	}
	weak := make([]string, 0, len(r.DetectedDomains))
	for _, domain := range r.DetectedDomains {
		if !significant[domain] {
			weak = append(weak, domain)
		}
	}
	return weak
}
