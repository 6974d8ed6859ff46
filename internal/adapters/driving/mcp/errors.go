// Package mcp provides an MCP (Model Context Protocol) server adapter
// for provo. It lets AI assistants capture fragments and query the
// decision-provenance graph.
package mcp

import "errors"

// ErrMissingFragmentService is returned when the fragment service is not provided.
var ErrMissingFragmentService = errors.New("mcp: fragment service is required")

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingLinkService is returned when the link service is not provided.
var ErrMissingLinkService = errors.New("mcp: link service is required")

// ErrMissingGraphService is returned when the graph service is not provided.
var ErrMissingGraphService = errors.New("mcp: graph service is required")
