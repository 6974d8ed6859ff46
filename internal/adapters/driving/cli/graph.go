package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

var (
	graphProject string
	graphSource  string
	graphSince   string
	graphUntil   string
	graphLimit   int
	graphJSON    bool
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the provenance graph for a fragment subset",
	Long: `Assembles the node and edge view over the fragments matching the
given filters. Only links with both endpoints inside the selection
appear, and each node's connection count reflects that included edge
set, not total stored links.

Filters combine with AND. --since and --until accept a bare date
(2024-01-10) or RFC 3339; a bare --until date means end of that day.`,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVarP(&graphProject, "project", "p", "", "restrict to a project")
	graphCmd.Flags().StringVar(&graphSource, "source", "", "restrict to a source type")
	graphCmd.Flags().StringVar(&graphSince, "since", "", "inclusive lower capture-time bound")
	graphCmd.Flags().StringVar(&graphUntil, "until", "", "inclusive upper capture-time bound")
	graphCmd.Flags().IntVar(&graphLimit, "limit", 100, "maximum number of nodes")
	graphCmd.Flags().BoolVar(&graphJSON, "json", false, "output the graph as JSON")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, _ []string) error {
	if graphService == nil {
		return errors.New("graph service not configured")
	}

	filter, err := buildGraphFilter()
	if err != nil {
		return err
	}

	graph, err := graphService.BuildGraph(cmd.Context(), filter, graphLimit)
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	if graphJSON {
		return outputGraphJSON(cmd, graph)
	}
	return outputGraphText(cmd, graph)
}

func buildGraphFilter() (domain.Filter, error) {
	filter := domain.Filter{}
	if graphProject != "" {
		filter.Project = &graphProject
	}
	if graphSource != "" {
		st := domain.SourceType(graphSource)
		if !st.IsValid() {
			return filter, fmt.Errorf("%w: unknown source type %q", domain.ErrValidation, graphSource)
		}
		filter.SourceType = &st
	}
	if graphSince != "" {
		t, err := domain.ParseSince(graphSince)
		if err != nil {
			return filter, err
		}
		filter.Since = &t
	}
	if graphUntil != "" {
		t, err := domain.ParseUntil(graphUntil)
		if err != nil {
			return filter, err
		}
		filter.Until = &t
	}
	return filter, nil
}

// graphJSONPayload is the stable --json shape.
type graphJSONPayload struct {
	Nodes []graphNodeJSON `json:"nodes"`
	Edges []graphEdgeJSON `json:"edges"`
}

type graphNodeJSON struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	SourceType  string   `json:"source_type"`
	Project     *string  `json:"project,omitempty"`
	CapturedAt  string   `json:"captured_at"`
	Topics      []string `json:"topics,omitempty"`
	Connections int      `json:"connections"`
}

type graphEdgeJSON struct {
	ID       string  `json:"id"`
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	LinkType string  `json:"link_type"`
	Strength float64 `json:"strength"`
}

func outputGraphJSON(cmd *cobra.Command, graph *domain.GraphData) error {
	payload := graphJSONPayload{
		Nodes: make([]graphNodeJSON, 0, len(graph.Nodes)),
		Edges: make([]graphEdgeJSON, 0, len(graph.Edges)),
	}
	for _, n := range graph.Nodes {
		payload.Nodes = append(payload.Nodes, graphNodeJSON{
			ID:          n.ID,
			Label:       n.Label,
			SourceType:  n.SourceType.String(),
			Project:     n.Project,
			CapturedAt:  n.CapturedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Topics:      n.Topics,
			Connections: n.Connections,
		})
	}
	for _, e := range graph.Edges {
		payload.Edges = append(payload.Edges, graphEdgeJSON{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			LinkType: e.LinkType.String(),
			Strength: e.Strength,
		})
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputGraphText(cmd *cobra.Command, graph *domain.GraphData) error {
	if len(graph.Nodes) == 0 {
		cmd.Println("No fragments match the filter.")
		return nil
	}

	cmd.Printf("Graph: %d fragments, %d links\n", len(graph.Nodes), len(graph.Edges))
	cmd.Println()
	for _, n := range graph.Nodes {
		cmd.Printf("  %s (%d links)  %s\n", shortID(n.ID), n.Connections, domain.Truncate(n.Label, snippetLength))
	}
	if len(graph.Edges) > 0 {
		cmd.Println()
		for _, e := range graph.Edges {
			cmd.Printf("  %s %s %s  %s (%.2f)\n", shortID(e.Source), e.LinkType.Icon(), shortID(e.Target), e.LinkType, e.Strength)
		}
	}
	return nil
}
