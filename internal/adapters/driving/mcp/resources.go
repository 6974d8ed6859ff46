package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for provo resources.
	uriScheme = "provo://"

	// recentLimit caps the recent-fragments resource.
	recentLimit = 50

	// invalidLimit caps the invalidated-assumptions resource.
	invalidLimit = 100
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for recently captured fragments.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "fragments",
		Name:        "fragments",
		Description: "Recently captured context fragments, newest first",
		MIMEType:    "application/json",
	}, s.handleFragmentsResource)

	// Static resource for invalidated assumptions.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "assumptions/invalid",
		Name:        "invalid-assumptions",
		Description: "Assumptions marked invalid, with the fragments that broke them",
		MIMEType:    "application/json",
	}, s.handleInvalidAssumptionsResource)

	// Template for a single fragment with its provenance.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "fragments/{fragmentId}",
		Name:        "fragment",
		Description: "A single fragment with its decisions and assumptions",
		MIMEType:    "application/json",
	}, s.handleFragmentResource)
}

// handleFragmentsResource returns the most recent fragments.
func (s *Server) handleFragmentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	fragments, err := s.ports.Fragment.List(ctx, domain.Filter{}, recentLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("listing fragments: %w", err)
	}

	type fragmentInfo struct {
		ID         string   `json:"id"`
		Content    string   `json:"content"`
		Project    string   `json:"project,omitempty"`
		Topics     []string `json:"topics,omitempty"`
		SourceType string   `json:"source_type"`
		CapturedAt string   `json:"captured_at"`
	}

	infos := make([]fragmentInfo, len(fragments))
	for i := range fragments {
		infos[i] = fragmentInfo{
			ID:         fragments[i].ID,
			Content:    fragments[i].Content,
			Project:    strDeref(fragments[i].Project),
			Topics:     fragments[i].Topics,
			SourceType: fragments[i].SourceType.String(),
			CapturedAt: fragments[i].CapturedAt.Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling fragments: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handleInvalidAssumptionsResource returns assumptions marked invalid.
func (s *Server) handleInvalidAssumptionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Assumption == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	invalid := domain.ValidityInvalid
	assumptions, err := s.ports.Assumption.List(ctx, domain.AssumptionFilter{Validity: &invalid}, invalidLimit)
	if err != nil {
		return nil, fmt.Errorf("listing assumptions: %w", err)
	}

	type assumptionInfo struct {
		ID            string `json:"id"`
		FragmentID    string `json:"fragment_id"`
		Statement     string `json:"statement"`
		InvalidatedBy string `json:"invalidated_by,omitempty"`
	}

	infos := make([]assumptionInfo, len(assumptions))
	for i := range assumptions {
		infos[i] = assumptionInfo{
			ID:            assumptions[i].ID,
			FragmentID:    assumptions[i].FragmentID,
			Statement:     assumptions[i].Statement,
			InvalidatedBy: strDeref(assumptions[i].InvalidatedBy),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling assumptions: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handleFragmentResource returns one fragment with decisions and
// assumptions hydrated.
func (s *Server) handleFragmentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	fragmentID := extractFragmentID(req.Params.URI)
	if fragmentID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	fragment, err := s.ports.Fragment.Get(ctx, fragmentID)
	if err != nil {
		return nil, fmt.Errorf("getting fragment: %w", err)
	}

	type decisionInfo struct {
		What       string  `json:"what"`
		Why        string  `json:"why,omitempty"`
		Confidence float64 `json:"confidence"`
	}
	type assumptionInfo struct {
		Statement     string `json:"statement"`
		Validity      string `json:"validity"`
		InvalidatedBy string `json:"invalidated_by,omitempty"`
	}
	type fragmentDetail struct {
		ID          string           `json:"id"`
		Content     string           `json:"content"`
		Summary     string           `json:"summary,omitempty"`
		Project     string           `json:"project,omitempty"`
		Topics      []string         `json:"topics,omitempty"`
		SourceType  string           `json:"source_type"`
		SourceRef   string           `json:"source_ref,omitempty"`
		CapturedAt  string           `json:"captured_at"`
		Decisions   []decisionInfo   `json:"decisions"`
		Assumptions []assumptionInfo `json:"assumptions"`
	}

	detail := fragmentDetail{
		ID:          fragment.ID,
		Content:     fragment.Content,
		Summary:     strDeref(fragment.Summary),
		Project:     strDeref(fragment.Project),
		Topics:      fragment.Topics,
		SourceType:  fragment.SourceType.String(),
		SourceRef:   strDeref(fragment.SourceRef),
		CapturedAt:  fragment.CapturedAt.Format(time.RFC3339),
		Decisions:   make([]decisionInfo, len(fragment.Decisions)),
		Assumptions: make([]assumptionInfo, len(fragment.Assumptions)),
	}
	for i, d := range fragment.Decisions {
		detail.Decisions[i] = decisionInfo{What: d.What, Why: d.Why, Confidence: d.Confidence}
	}
	for i, a := range fragment.Assumptions {
		detail.Assumptions[i] = assumptionInfo{
			Statement:     a.Statement,
			Validity:      string(a.Validity()),
			InvalidatedBy: strDeref(a.InvalidatedBy),
		}
	}

	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling fragment: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// jsonResource wraps a JSON payload in a single-content read result.
func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractFragmentID extracts the fragment ID from a URI like
// provo://fragments/{fragmentId}.
func extractFragmentID(uri string) string {
	const prefix = uriScheme + "fragments/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
