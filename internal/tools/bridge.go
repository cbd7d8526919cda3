package tools

import (
	"log"

	"github.com/HendryAvila/switchboard/internal/history"
	"github.com/HendryAvila/switchboard/internal/routing"
)

// RouteObserver is notified after a routing decision has been made.
// It is an optional dependency; tools work fine with a nil observer.
type RouteObserver interface {
	// OnRouteDecided is called after a task has been classified. task is
	// the raw description, res the full classification result, and source
	// names the surface that asked (e.g. "mcp").
	OnRouteDecided(task string, res routing.Result, source string)
}

// HistoryBridge records routing decisions to the history store so past
// delegations can be searched with route_history and aggregated with
// route_stats.
type HistoryBridge struct {
	store *history.Store
}

// NewHistoryBridge creates a bridge that records decisions to the
// history store. Returns nil if store is nil; callers should check
// before assigning it to a RouteObserver variable.
func NewHistoryBridge(store *history.Store) *HistoryBridge {
	if store == nil {
		return nil
	}
	return &HistoryBridge{store: store}
}

// OnRouteDecided persists the decision.
//
// This method is best-effort: save failures are logged but don't
// propagate errors, because answering the routing request is the
// primary concern.
func (b *HistoryBridge) OnRouteDecided(task string, res routing.Result, source string) {
	agents := make([]string, 0, len(res.Agents))
	for _, a := range res.Agents {
		agents = append(agents, a.Name)
	}

	_, err := b.store.Record(history.Entry{
		Task:       task,
		Strategy:   string(res.Strategy),
		Confidence: string(res.Confidence),
		Domains:    res.SignificantDomains,
		Agents:     agents,
		Scores:     res.Scores,
		Source:     source,
	})
	if err != nil {
		log.Printf("WARNING: history bridge: record routing for %q: %v", truncate(task, 80), err)
	}
}

// notifyObserver is a nil-safe helper called from tool Handle methods.
// If observer is nil, this is a no-op.
func notifyObserver(obs RouteObserver, task string, res routing.Result, source string) {
	if obs == nil {
		return
	}
	obs.OnRouteDecided(task, res, source)
}
