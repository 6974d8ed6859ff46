package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

// defaultSearchLimit bounds search results when the caller doesn't set
// a limit.
const defaultSearchLimit = 10

// defaultRelatedLimit bounds related-fragment results.
const defaultRelatedLimit = 20

// defaultGraphLimit bounds the graph node selection.
const defaultGraphLimit = 100

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query   string `json:"query" jsonschema:"free-text query over captured fragments"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Project string `json:"project,omitempty" jsonschema:"restrict results to a single project"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	FragmentID string   `json:"fragment_id"`
	Score      float64  `json:"score"`
	Content    string   `json:"content"`
	Project    string   `json:"project,omitempty"`
	Topics     []string `json:"topics,omitempty"`
	SourceType string   `json:"source_type"`
	CapturedAt string   `json:"captured_at"`
}

// CaptureInput is the input schema for the capture tool.
type CaptureInput struct {
	Content   string   `json:"content" jsonschema:"the fragment text to capture"`
	Project   string   `json:"project,omitempty" jsonschema:"project label"`
	Topics    []string `json:"topics,omitempty" jsonschema:"topic tags"`
	SourceRef string   `json:"source_ref,omitempty" jsonschema:"free-text reference such as a URL or file path"`
	LinkTo    string   `json:"link_to,omitempty" jsonschema:"id of an existing fragment to link the new one to"`
}

// CaptureOutput is the output schema for the capture tool.
type CaptureOutput struct {
	FragmentID string `json:"fragment_id"`
	CapturedAt string `json:"captured_at"`
	LinkedTo   string `json:"linked_to,omitempty"`
}

// RelatedInput is the input schema for the related tool.
type RelatedInput struct {
	FragmentID string `json:"fragment_id" jsonschema:"fragment whose neighbours to return"`
	LinkType   string `json:"link_type,omitempty" jsonschema:"restrict to one link type: relates_to, references, follows, contradicts, invalidates"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of neighbours to return (default 20)"`
}

// RelatedOutput is the output schema for the related tool.
type RelatedOutput struct {
	Related []RelatedFragmentOutput `json:"related"`
	Count   int                     `json:"count"`
}

// RelatedFragmentOutput pairs a neighbour with the link that reached it.
type RelatedFragmentOutput struct {
	FragmentID string  `json:"fragment_id"`
	LinkType   string  `json:"link_type"`
	Strength   float64 `json:"strength"`
	Content    string  `json:"content"`
	Project    string  `json:"project,omitempty"`
}

// GraphInput is the input schema for the graph tool.
type GraphInput struct {
	Project    string `json:"project,omitempty" jsonschema:"restrict nodes to a single project"`
	SourceType string `json:"source_type,omitempty" jsonschema:"restrict nodes to one capture channel"`
	Since      string `json:"since,omitempty" jsonschema:"inclusive lower capture-time bound, date or RFC3339"`
	Until      string `json:"until,omitempty" jsonschema:"inclusive upper capture-time bound, date or RFC3339"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of nodes to include (default 100)"`
}

// GraphOutput is the output schema for the graph tool.
type GraphOutput struct {
	Nodes     []GraphNodeOutput `json:"nodes"`
	Edges     []GraphEdgeOutput `json:"edges"`
	NodeCount int               `json:"node_count"`
	EdgeCount int               `json:"edge_count"`
}

// GraphNodeOutput is one fragment node in the assembled graph.
type GraphNodeOutput struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	SourceType  string   `json:"source_type"`
	Project     string   `json:"project,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	CapturedAt  string   `json:"captured_at"`
	Connections int      `json:"connections"`
}

// GraphEdgeOutput is one link edge in the assembled graph.
type GraphEdgeOutput struct {
	ID       string  `json:"id"`
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	LinkType string  `json:"link_type"`
	Strength float64 `json:"strength"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search captured fragments by free text, ranked by relevance",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "capture",
		Description: "Capture a new context fragment, optionally linked to an existing one",
	}, s.handleCapture)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "related",
		Description: "List fragments linked to a given fragment, strongest links first",
	}, s.handleRelated)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "graph",
		Description: "Assemble the decision-provenance graph over a filtered fragment subset",
	}, s.handleGraph)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	opts := domain.SearchOptions{Limit: limit}
	if input.Project != "" {
		project := input.Project
		opts.Project = &project
	}

	response, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(response.Results)),
		Count:   len(response.Results),
	}
	for i := range response.Results {
		f := &response.Results[i].Fragment
		output.Results[i] = SearchResultOutput{
			FragmentID: f.ID,
			Score:      response.Results[i].Score,
			Content:    f.Content,
			Project:    strDeref(f.Project),
			Topics:     f.Topics,
			SourceType: f.SourceType.String(),
			CapturedAt: f.CapturedAt.Format(time.RFC3339),
		}
	}

	return nil, output, nil
}

// handleCapture handles the capture tool invocation.
func (s *Server) handleCapture(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CaptureInput,
) (*mcp.CallToolResult, CaptureOutput, error) {
	req := driving.CaptureRequest{
		Content: input.Content,
		Topics:  input.Topics,
	}
	if input.Project != "" {
		project := input.Project
		req.Project = &project
	}
	if input.SourceRef != "" {
		ref := input.SourceRef
		req.SourceRef = &ref
	}

	fragment, err := s.ports.Fragment.Capture(ctx, req)
	if err != nil {
		return nil, CaptureOutput{}, err
	}

	output := CaptureOutput{
		FragmentID: fragment.ID,
		CapturedAt: fragment.CapturedAt.Format(time.RFC3339),
	}

	if input.LinkTo != "" {
		_, err := s.ports.Link.AddLink(ctx, driving.LinkRequest{
			SourceID: fragment.ID,
			TargetID: input.LinkTo,
		})
		if err != nil {
			return nil, CaptureOutput{}, fmt.Errorf("fragment captured but linking failed: %w", err)
		}
		output.LinkedTo = input.LinkTo
	}

	return nil, output, nil
}

// handleRelated handles the related tool invocation.
func (s *Server) handleRelated(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RelatedInput,
) (*mcp.CallToolResult, RelatedOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	var linkType *domain.LinkType
	if input.LinkType != "" {
		lt := domain.LinkType(input.LinkType)
		if !lt.IsValid() {
			return nil, RelatedOutput{}, fmt.Errorf("%w: unknown link type %q", domain.ErrValidation, input.LinkType)
		}
		linkType = &lt
	}

	related, err := s.ports.Fragment.Related(ctx, input.FragmentID, linkType, limit)
	if err != nil {
		return nil, RelatedOutput{}, err
	}

	output := RelatedOutput{
		Related: make([]RelatedFragmentOutput, len(related)),
		Count:   len(related),
	}
	for i := range related {
		output.Related[i] = RelatedFragmentOutput{
			FragmentID: related[i].Fragment.ID,
			LinkType:   related[i].LinkType.String(),
			Strength:   related[i].Strength,
			Content:    related[i].Fragment.Content,
			Project:    strDeref(related[i].Fragment.Project),
		}
	}

	return nil, output, nil
}

// handleGraph handles the graph tool invocation.
func (s *Server) handleGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GraphInput,
) (*mcp.CallToolResult, GraphOutput, error) {
	filter, err := buildGraphFilter(input)
	if err != nil {
		return nil, GraphOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultGraphLimit
	}

	graph, err := s.ports.Graph.BuildGraph(ctx, filter, limit)
	if err != nil {
		return nil, GraphOutput{}, err
	}

	output := GraphOutput{
		Nodes:     make([]GraphNodeOutput, len(graph.Nodes)),
		Edges:     make([]GraphEdgeOutput, len(graph.Edges)),
		NodeCount: len(graph.Nodes),
		EdgeCount: len(graph.Edges),
	}
	for i, node := range graph.Nodes {
		output.Nodes[i] = GraphNodeOutput{
			ID:          node.ID,
			Label:       node.Label,
			SourceType:  node.SourceType.String(),
			Project:     strDeref(node.Project),
			Topics:      node.Topics,
			CapturedAt:  node.CapturedAt.Format(time.RFC3339),
			Connections: node.Connections,
		}
	}
	for i, edge := range graph.Edges {
		output.Edges[i] = GraphEdgeOutput{
			ID:       edge.ID,
			Source:   edge.Source,
			Target:   edge.Target,
			LinkType: edge.LinkType.String(),
			Strength: edge.Strength,
		}
	}

	return nil, output, nil
}

// buildGraphFilter translates the graph tool input into a domain
// filter.
func buildGraphFilter(input GraphInput) (domain.Filter, error) {
	var filter domain.Filter

	if input.Project != "" {
		project := input.Project
		filter.Project = &project
	}
	if input.SourceType != "" {
		st := domain.SourceType(input.SourceType)
		if !st.IsValid() {
			return domain.Filter{}, fmt.Errorf("%w: unknown source type %q", domain.ErrValidation, input.SourceType)
		}
		filter.SourceType = &st
	}
	if input.Since != "" {
		since, err := domain.ParseSince(input.Since)
		if err != nil {
			return domain.Filter{}, err
		}
		filter.Since = &since
	}
	if input.Until != "" {
		until, err := domain.ParseUntil(input.Until)
		if err != nil {
			return domain.Filter{}, err
		}
		filter.Until = &until
	}

	return filter, nil
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
