package driving

import (
	"context"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// GraphService assembles the node/edge view over a filtered fragment
// subset.
type GraphService interface {
	// BuildGraph selects fragments matching the filter up to limit,
	// keeps only edges with both endpoints selected, and computes each
	// node's connection count against that included edge set. The
	// result is deterministic as a set for identical inputs.
	BuildGraph(ctx context.Context, filter domain.Filter, limit int) (*domain.GraphData, error)
}
