package services

import (
	"context"
	"fmt"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
	"github.com/provo-labs/provo-cli/internal/logger"
)

// Ensure GraphService implements the interface.
var _ driving.GraphService = (*GraphService)(nil)

const (
	// DefaultGraphLimit caps the fragment selection for a graph view.
	DefaultGraphLimit = 500

	// linkScanLimit bounds the link fetch backing a graph assembly.
	linkScanLimit = 5000
)

// GraphService assembles the derived node/edge view. It is a pure
// function over a snapshot of the stores: no caching, no shared state,
// safe to re-run on every refresh.
type GraphService struct {
	fragmentStore driven.FragmentStore
	linkStore     driven.LinkStore
}

// NewGraphService creates a new graph service.
func NewGraphService(fragmentStore driven.FragmentStore, linkStore driven.LinkStore) *GraphService {
	return &GraphService{
		fragmentStore: fragmentStore,
		linkStore:     linkStore,
	}
}

// BuildGraph selects fragments matching the filter, drops every link
// with an endpoint outside that selection, and computes each node's
// connection count against the included edge set only. Degree is
// always recomputed per query: a different filter admits different
// edges, so a cached count would lie.
func (s *GraphService) BuildGraph(ctx context.Context, filter domain.Filter, limit int) (*domain.GraphData, error) {
	if limit <= 0 {
		limit = DefaultGraphLimit
	}

	fragments, err := s.fragmentStore.ListFragments(ctx, filter, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("listing fragments: %w", err)
	}

	links, err := s.linkStore.ListLinks(ctx, linkScanLimit)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}

	selected := make(map[string]bool, len(fragments))
	for _, f := range fragments {
		selected[f.ID] = true
	}

	// Keep only edges fully inside the selection; dangling edges would
	// break the rendered view.
	connections := make(map[string]int, len(fragments))
	edges := make([]domain.GraphEdge, 0, len(links))
	for _, link := range links {
		if !selected[link.SourceID] || !selected[link.TargetID] {
			continue
		}
		connections[link.SourceID]++
		connections[link.TargetID]++
		edges = append(edges, domain.GraphEdge{
			ID:       link.ID,
			Source:   link.SourceID,
			Target:   link.TargetID,
			LinkType: link.LinkType,
			Strength: link.Strength,
		})
	}

	nodes := make([]domain.GraphNode, 0, len(fragments))
	for _, f := range fragments {
		nodes = append(nodes, domain.GraphNode{
			ID:          f.ID,
			Label:       f.Content,
			SourceType:  f.SourceType,
			Project:     f.Project,
			CapturedAt:  f.CapturedAt,
			Topics:      f.Topics,
			Connections: connections[f.ID],
		})
	}

	logger.Debug("Graph assembled: %d nodes, %d edges", len(nodes), len(edges))
	return &domain.GraphData{Nodes: nodes, Edges: edges}, nil
}
