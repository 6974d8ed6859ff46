// Package tui provides the interactive terminal user interface for
// provo. It is a driving adapter: everything it does goes through the
// driving ports, never the stores directly.
package tui

import (
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the TUI needs. A single
// injection point keeps wiring in one place.
type Ports struct {
	// Fragment serves the timeline and the fragment detail view.
	Fragment driving.FragmentService

	// Link creates links from the detail view's link creator.
	Link driving.LinkService

	// Graph is reserved for the graph overlay.
	Graph driving.GraphService

	// Search serves the search view.
	Search driving.SearchService

	// Decision and Assumption hydrate the detail view sections.
	Decision   driving.DecisionService
	Assumption driving.AssumptionService
}

// Validate ensures the ports the TUI cannot run without are set.
func (p *Ports) Validate() error {
	if p.Fragment == nil {
		return ErrMissingFragmentService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Link == nil {
		return ErrMissingLinkService
	}
	return nil
}
