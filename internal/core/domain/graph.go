package domain

import "time"

// GraphNode wraps a fragment for the graph view. Nodes are derived,
// read-only and recomputed on every query; they are never persisted.
type GraphNode struct {
	// ID is the fragment identifier.
	ID string

	// Label is the full fragment content. Truncation is a presentation
	// concern, not part of this view.
	Label string

	// SourceType is the fragment's capture channel.
	SourceType SourceType

	// Project is the fragment's project label, if any.
	Project *string

	// CapturedAt is the fragment's capture time.
	CapturedAt time.Time

	// Topics are the fragment's topic tags.
	Topics []string

	// Connections is the fragment's degree restricted to the edge set
	// included in the same GraphData. A different filter yields a
	// different count; parallel edges each count.
	Connections int
}

// GraphEdge wraps a fragment link for the graph view.
type GraphEdge struct {
	// ID is the link identifier.
	ID string

	// Source and Target are the endpoint fragment IDs. Direction is
	// preserved in the data even though layout treats edges as
	// undirected.
	Source string
	Target string

	// LinkType is the relationship kind.
	LinkType LinkType

	// Strength is the edge weight.
	Strength float64
}

// GraphData is the assembled node/edge view for a filtered fragment
// subset. Every edge's endpoints are guaranteed to appear in Nodes.
type GraphData struct {
	Nodes []GraphNode
	Edges []GraphEdge
}
