package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()

	server, err := NewServer(ports)
	require.NoError(t, err)

	return server
}

func TestHandleSearch(t *testing.T) {
	project := "payments"
	captured := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	t.Run("returns ranked results", func(t *testing.T) {
		ports := testPorts()
		search := ports.Search.(*mockSearchService)
		search.response = &domain.SearchResponse{
			Query: "retry",
			Results: []domain.SearchResult{
				{
					Fragment: domain.Fragment{
						ID:         "frag-1",
						Content:    "decided to retry failed webhooks",
						Project:    &project,
						Topics:     []string{"reliability"},
						SourceType: domain.SourceNotes,
						CapturedAt: captured,
					},
					Score: 0.92,
				},
			},
		}
		server := newTestServer(t, ports)

		_, output, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "retry"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "frag-1", output.Results[0].FragmentID)
		assert.InDelta(t, 0.92, output.Results[0].Score, 0.001)
		assert.Equal(t, "payments", output.Results[0].Project)
		assert.Equal(t, "notes", output.Results[0].SourceType)
		assert.Equal(t, "2026-04-01T09:30:00Z", output.Results[0].CapturedAt)
	})

	t.Run("applies default limit", func(t *testing.T) {
		ports := testPorts()
		search := ports.Search.(*mockSearchService)
		server := newTestServer(t, ports)

		_, _, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "retry"})

		require.NoError(t, err)
		assert.Equal(t, defaultSearchLimit, search.gotOpts.Limit)
		assert.Nil(t, search.gotOpts.Project)
	})

	t.Run("passes project option", func(t *testing.T) {
		ports := testPorts()
		search := ports.Search.(*mockSearchService)
		server := newTestServer(t, ports)

		_, _, err := server.handleSearch(context.Background(), nil, SearchInput{
			Query:   "retry",
			Limit:   3,
			Project: "payments",
		})

		require.NoError(t, err)
		assert.Equal(t, 3, search.gotOpts.Limit)
		require.NotNil(t, search.gotOpts.Project)
		assert.Equal(t, "payments", *search.gotOpts.Project)
	})

	t.Run("propagates search error", func(t *testing.T) {
		ports := testPorts()
		ports.Search.(*mockSearchService).err = errors.New("index offline")
		server := newTestServer(t, ports)

		_, _, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "retry"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "index offline")
	})
}

func TestHandleCapture(t *testing.T) {
	t.Run("captures fragment", func(t *testing.T) {
		ports := testPorts()
		fragments := ports.Fragment.(*mockFragmentService)
		server := newTestServer(t, ports)

		_, output, err := server.handleCapture(context.Background(), nil, CaptureInput{
			Content:   "we will retry webhooks three times",
			Project:   "payments",
			Topics:    []string{"reliability", "webhooks"},
			SourceRef: "https://wiki/webhooks",
		})

		require.NoError(t, err)
		assert.Equal(t, "frag-new", output.FragmentID)
		assert.Equal(t, "2026-05-02T10:00:00Z", output.CapturedAt)
		assert.Empty(t, output.LinkedTo)

		require.NotNil(t, fragments.capturedReq)
		assert.Equal(t, "we will retry webhooks three times", fragments.capturedReq.Content)
		require.NotNil(t, fragments.capturedReq.Project)
		assert.Equal(t, "payments", *fragments.capturedReq.Project)
		require.NotNil(t, fragments.capturedReq.SourceRef)
		assert.Equal(t, "https://wiki/webhooks", *fragments.capturedReq.SourceRef)
	})

	t.Run("links to existing fragment", func(t *testing.T) {
		ports := testPorts()
		links := ports.Link.(*mockLinkService)
		server := newTestServer(t, ports)

		_, output, err := server.handleCapture(context.Background(), nil, CaptureInput{
			Content: "follow-up on the retry decision",
			LinkTo:  "frag-1",
		})

		require.NoError(t, err)
		assert.Equal(t, "frag-1", output.LinkedTo)

		require.NotNil(t, links.addedReq)
		assert.Equal(t, "frag-new", links.addedReq.SourceID)
		assert.Equal(t, "frag-1", links.addedReq.TargetID)
	})

	t.Run("wraps link failure after capture", func(t *testing.T) {
		ports := testPorts()
		ports.Link.(*mockLinkService).err = domain.ErrNotFound
		server := newTestServer(t, ports)

		_, _, err := server.handleCapture(context.Background(), nil, CaptureInput{
			Content: "follow-up on the retry decision",
			LinkTo:  "frag-missing",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "fragment captured but linking failed")
	})

	t.Run("propagates capture error", func(t *testing.T) {
		ports := testPorts()
		ports.Fragment.(*mockFragmentService).err = errors.New("store closed")
		server := newTestServer(t, ports)

		_, _, err := server.handleCapture(context.Background(), nil, CaptureInput{Content: "anything"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "store closed")
	})
}

func TestHandleRelated(t *testing.T) {
	project := "payments"

	t.Run("returns neighbours", func(t *testing.T) {
		ports := testPorts()
		ports.Fragment.(*mockFragmentService).related = []driving.RelatedFragment{
			{
				Fragment: domain.Fragment{
					ID:      "frag-2",
					Content: "webhook retries capped at three",
					Project: &project,
				},
				LinkType: domain.LinkFollows,
				Strength: 0.8,
			},
		}
		server := newTestServer(t, ports)

		_, output, err := server.handleRelated(context.Background(), nil, RelatedInput{FragmentID: "frag-1"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "frag-2", output.Related[0].FragmentID)
		assert.Equal(t, "follows", output.Related[0].LinkType)
		assert.InDelta(t, 0.8, output.Related[0].Strength, 0.001)
		assert.Equal(t, "payments", output.Related[0].Project)
	})

	t.Run("accepts valid link type filter", func(t *testing.T) {
		ports := testPorts()
		server := newTestServer(t, ports)

		_, output, err := server.handleRelated(context.Background(), nil, RelatedInput{
			FragmentID: "frag-1",
			LinkType:   "contradicts",
		})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("rejects unknown link type", func(t *testing.T) {
		ports := testPorts()
		server := newTestServer(t, ports)

		_, _, err := server.handleRelated(context.Background(), nil, RelatedInput{
			FragmentID: "frag-1",
			LinkType:   "supports",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "supports")
	})
}

func TestHandleGraph(t *testing.T) {
	t.Run("returns nodes and edges", func(t *testing.T) {
		ports := testPorts()
		graph := ports.Graph.(*mockGraphService)
		graph.graph = &domain.GraphData{
			Nodes: []domain.GraphNode{
				{
					ID:          "frag-1",
					Label:       "retry decision",
					SourceType:  domain.SourceNotes,
					CapturedAt:  time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC),
					Connections: 2,
				},
			},
			Edges: []domain.GraphEdge{
				{
					ID:       "link-1",
					Source:   "frag-1",
					Target:   "frag-2",
					LinkType: domain.LinkRelatesTo,
					Strength: 0.8,
				},
			},
		}
		server := newTestServer(t, ports)

		_, output, err := server.handleGraph(context.Background(), nil, GraphInput{})

		require.NoError(t, err)
		assert.Equal(t, 1, output.NodeCount)
		assert.Equal(t, 1, output.EdgeCount)
		assert.Equal(t, "frag-1", output.Nodes[0].ID)
		assert.Equal(t, 2, output.Nodes[0].Connections)
		assert.Equal(t, "relates_to", output.Edges[0].LinkType)
		assert.Equal(t, defaultGraphLimit, graph.gotLimit)
	})

	t.Run("builds filter from input", func(t *testing.T) {
		ports := testPorts()
		graph := ports.Graph.(*mockGraphService)
		server := newTestServer(t, ports)

		_, _, err := server.handleGraph(context.Background(), nil, GraphInput{
			Project:    "payments",
			SourceType: "notes",
			Since:      "2026-01-01",
			Until:      "2026-06-30",
			Limit:      25,
		})

		require.NoError(t, err)
		assert.Equal(t, 25, graph.gotLimit)
		require.NotNil(t, graph.gotFilter.Project)
		assert.Equal(t, "payments", *graph.gotFilter.Project)
		require.NotNil(t, graph.gotFilter.SourceType)
		assert.Equal(t, domain.SourceNotes, *graph.gotFilter.SourceType)
		require.NotNil(t, graph.gotFilter.Since)
		require.NotNil(t, graph.gotFilter.Until)
		assert.True(t, graph.gotFilter.Until.After(*graph.gotFilter.Since))
	})

	t.Run("rejects unknown source type", func(t *testing.T) {
		ports := testPorts()
		server := newTestServer(t, ports)

		_, _, err := server.handleGraph(context.Background(), nil, GraphInput{SourceType: "carrier-pigeon"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects malformed since", func(t *testing.T) {
		ports := testPorts()
		server := newTestServer(t, ports)

		_, _, err := server.handleGraph(context.Background(), nil, GraphInput{Since: "not-a-date"})

		require.Error(t, err)
	})

	t.Run("rejects malformed until", func(t *testing.T) {
		ports := testPorts()
		server := newTestServer(t, ports)

		_, _, err := server.handleGraph(context.Background(), nil, GraphInput{Until: "sometime"})

		require.Error(t, err)
	})
}
