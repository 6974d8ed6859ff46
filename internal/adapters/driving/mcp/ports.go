package mcp

import (
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Fragment serves capture and the fragment resources.
	Fragment driving.FragmentService

	// Link creates links between fragments.
	Link driving.LinkService

	// Graph assembles the filtered node/edge view.
	Graph driving.GraphService

	// Search provides ranked free-text search.
	Search driving.SearchService

	// Decision and Assumption serve the provenance resources. Optional;
	// the resources degrade to empty listings without them.
	Decision   driving.DecisionService
	Assumption driving.AssumptionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
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
	if p.Graph == nil {
		return ErrMissingGraphService
	}
	return nil
}
